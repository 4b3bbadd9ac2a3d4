package attemptclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizzer_backend/internal/model"
	"quizzer_backend/internal/service"
)

func textOption(id, content string) model.QuizQuestionOption {
	return model.QuizQuestionOption{ID: id, Type: model.QuizQuestionOptionTypeText, Content: content}
}

func testQuestion(id string) model.QuizQuestion {
	q := model.QuizQuestion{
		Prompt:  "prompt " + id,
		Options: []model.QuizQuestionOption{textOption("a", "right"), textOption("b", "wrong")},
	}
	q.ID = id
	return q
}

func draftWith(questions []model.QuizQuestion, results []model.QuizQuestionResult) *model.QuizSubmission {
	return &model.QuizSubmission{
		Status:    model.QuizSubmissionStatusDraft,
		Questions: questions,
		Results:   results,
		StartedAt: time.Now(),
	}
}

func TestSeedAnswersDropsOrphans(t *testing.T) {
	kept := testQuestion("q1")
	removed := testQuestion("q2")
	answer := textOption("a", "right")

	submission := draftWith(
		[]model.QuizQuestion{kept},
		[]model.QuizQuestionResult{
			{Answer: &answer, Question: kept.Snapshot()},
			// q2 was dropped from the question set; its saved answer must
			// not survive the reseed.
			{Answer: &answer, Question: removed.Snapshot()},
			// Unanswered results contribute nothing.
			{Answer: nil, Question: kept.Snapshot()},
		},
	)

	answers := seedAnswers(submission)
	if len(answers) != 1 {
		t.Fatalf("seeded %d answers, want 1", len(answers))
	}
	if got := answers["q1"]; got == nil || !got.Equal(answer) {
		t.Errorf("answer for q1 = %+v, want %+v", got, answer)
	}
	if _, ok := answers["q2"]; ok {
		t.Errorf("orphaned answer for q2 kept")
	}
}

func TestCalcRemaining(t *testing.T) {
	startedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	timer := 30

	tests := []struct {
		name      string
		timer     *int
		now       time.Time
		want      time.Duration
		wantTimed bool
	}{
		{"untimed", nil, startedAt.Add(time.Hour), 0, false},
		{"full time left", &timer, startedAt, 30 * time.Minute, true},
		{"halfway", &timer, startedAt.Add(15 * time.Minute), 15 * time.Minute, true},
		{"expired clamps to zero", &timer, startedAt.Add(45 * time.Minute), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, timed := calcRemaining(startedAt, tt.timer, tt.now)
			if timed != tt.wantTimed {
				t.Fatalf("timed = %v, want %v", timed, tt.wantTimed)
			}
			if got != tt.want {
				t.Errorf("remaining = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRunnerPagination(t *testing.T) {
	questions := make([]model.QuizQuestion, 0, 25)
	for i := 0; i < 25; i++ {
		questions = append(questions, testQuestion("q"+string(rune('a'+i))))
	}

	runner := NewRunner(nil, RunnerConfig{ConvocatoryID: "c1", PageSize: 10})
	runner.attempt = &service.QuizConvocatoryAttempt{
		Submission:  draftWith(questions, nil),
		Convocatory: &model.QuizConvocatory{},
	}

	if got := runner.PageCount(); got != 3 {
		t.Fatalf("PageCount = %d, want 3", got)
	}
	if got := len(runner.Page()); got != 10 {
		t.Errorf("page 0 has %d questions, want 10", got)
	}

	if !runner.NextPage() || !runner.NextPage() {
		t.Fatalf("could not advance to the last page")
	}
	if got := len(runner.Page()); got != 5 {
		t.Errorf("last page has %d questions, want 5", got)
	}
	if runner.NextPage() {
		t.Errorf("advanced past the last page")
	}
	if !runner.PrevPage() {
		t.Errorf("could not go back from the last page")
	}
}

func TestRunnerSetAnswerGuards(t *testing.T) {
	question := testQuestion("q1")
	runner := NewRunner(nil, RunnerConfig{ConvocatoryID: "c1"})
	runner.attempt = &service.QuizConvocatoryAttempt{
		Submission:  draftWith([]model.QuizQuestion{question}, nil),
		Convocatory: &model.QuizConvocatory{},
	}

	// Not attempting yet.
	if err := runner.SetAnswer("q1", textOption("a", "right")); err == nil {
		t.Fatalf("SetAnswer allowed in idle state")
	}

	runner.store.Dispatch(EventBegin)

	if err := runner.SetAnswer("q1", textOption("zz", "forged")); err == nil {
		t.Fatalf("SetAnswer accepted an option the question does not offer")
	}
	if err := runner.SetAnswer("missing", textOption("a", "right")); err == nil {
		t.Fatalf("SetAnswer accepted an unknown question")
	}
	if err := runner.SetAnswer("q1", textOption("a", "right")); err != nil {
		t.Fatalf("SetAnswer: %v", err)
	}
	if runner.AnsweredCount() != 1 {
		t.Errorf("AnsweredCount = %d, want 1", runner.AnsweredCount())
	}
}

// fakeServer emulates the attempt endpoints with the data/error envelope.
type fakeServer struct {
	t        *testing.T
	attempt  *service.QuizConvocatoryAttempt
	autosave int
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/convocatories/c1/attempts/current", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"data": nil, "error": "Unauthorized"})
			return
		}

		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{"data": f.attempt, "error": nil})
		case http.MethodPut:
			var req service.AutosaveAttemptRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				f.t.Errorf("autosave body: %v", err)
			}
			if req.Revision != f.attempt.Submission.Revision {
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]any{"data": nil, "error": "Autosave rejected: stale revision"})
				return
			}
			f.autosave++
			f.attempt.Submission.Revision++
			results := make([]model.QuizQuestionResult, 0, len(req.Results))
			for _, r := range req.Results {
				results = append(results, model.QuizQuestionResult{Answer: r.Answer, Question: r.Question})
			}
			f.attempt.Submission.Results = results
			json.NewEncoder(w).Encode(map[string]any{"data": f.attempt, "error": nil})
		case http.MethodDelete:
			var req service.FinalizeAttemptRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				f.t.Errorf("finalize body: %v", err)
			}
			f.attempt.Submission.Status = model.QuizSubmissionStatusSubmitted
			f.attempt.Submission.Reason = &req.Reason
			json.NewEncoder(w).Encode(map[string]any{
				"data":  map[string]any{"attempt": f.attempt, "certificate": nil},
				"error": nil,
			})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func TestRunnerFlowAgainstServer(t *testing.T) {
	question := testQuestion("q1")
	fake := &fakeServer{
		t: t,
		attempt: &service.QuizConvocatoryAttempt{
			Number:      1,
			Submission:  draftWith([]model.QuizQuestion{question}, nil),
			Convocatory: &model.QuizConvocatory{Attempts: 3},
		},
	}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	client := NewClient(server.URL, "jane@example.com", server.Client())
	runner := NewRunner(client, RunnerConfig{ConvocatoryID: "c1"})

	ctx := context.Background()
	if err := runner.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if runner.State() != StateAttempting {
		t.Fatalf("state after Begin = %s, want attempting", runner.State())
	}

	if err := runner.SetAnswer("q1", textOption("a", "right")); err != nil {
		t.Fatalf("SetAnswer: %v", err)
	}
	if err := runner.Autosave(ctx); err != nil {
		t.Fatalf("Autosave: %v", err)
	}
	if fake.autosave != 1 {
		t.Errorf("server saw %d autosaves, want 1", fake.autosave)
	}
	if runner.revision != 1 {
		t.Errorf("runner revision = %d, want 1 after autosave", runner.revision)
	}

	if err := runner.Finalize(ctx, model.QuizSubmissionReasonSubmitted); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if runner.State() != StateShowingResults {
		t.Errorf("state after Finalize = %s, want showing-results", runner.State())
	}

	// Autosave after submission is a no-op.
	before := fake.autosave
	if err := runner.Autosave(ctx); err != nil {
		t.Fatalf("post-submit Autosave: %v", err)
	}
	if fake.autosave != before {
		t.Errorf("autosave fired after submission")
	}
}

func TestRunnerAutosaveStaleRefetches(t *testing.T) {
	question := testQuestion("q1")
	fake := &fakeServer{
		t: t,
		attempt: &service.QuizConvocatoryAttempt{
			Number:      1,
			Submission:  draftWith([]model.QuizQuestion{question}, nil),
			Convocatory: &model.QuizConvocatory{Attempts: 3},
		},
	}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	client := NewClient(server.URL, "jane@example.com", server.Client())
	runner := NewRunner(client, RunnerConfig{ConvocatoryID: "c1"})

	ctx := context.Background()
	if err := runner.Begin(ctx); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	// Another client bumps the revision behind our back.
	fake.attempt.Submission.Revision = 5

	err := runner.Autosave(ctx)
	if err == nil {
		t.Fatalf("stale autosave did not error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Fatalf("err = %v, want 409 APIError", err)
	}
	// The runner refetched and adopted the server's revision.
	if runner.revision != 5 {
		t.Errorf("runner revision = %d, want 5 after refetch", runner.revision)
	}
}
