package attemptclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"quizzer_backend/internal/model"
	"quizzer_backend/internal/service"
)

const (
	defaultPageSize         = 10
	defaultAutosaveInterval = 30 * time.Second
)

// Runner drives one attempt end to end: it resumes or starts the draft,
// keeps a local answers map, autosaves it, and finalizes on submit or when
// the wall-clock deadline passes.
type Runner struct {
	client           *Client
	store            *Store
	convocatoryID    string
	pageSize         int
	autosaveInterval time.Duration
	now              func() time.Time

	attempt  *service.QuizConvocatoryAttempt
	answers  map[string]*model.QuizQuestionOption
	revision int
	page     int
}

type RunnerConfig struct {
	ConvocatoryID    string
	PageSize         int
	AutosaveInterval time.Duration
}

func NewRunner(client *Client, cfg RunnerConfig) *Runner {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	interval := cfg.AutosaveInterval
	if interval <= 0 {
		interval = defaultAutosaveInterval
	}
	return &Runner{
		client:           client,
		store:            NewStore(),
		convocatoryID:    cfg.ConvocatoryID,
		pageSize:         pageSize,
		autosaveInterval: interval,
		now:              time.Now,
		answers:          map[string]*model.QuizQuestionOption{},
	}
}

func (r *Runner) State() State {
	return r.store.State()
}

func (r *Runner) Attempt() *service.QuizConvocatoryAttempt {
	return r.attempt
}

// Begin resumes the current draft, starting a fresh one when none exists.
func (r *Runner) Begin(ctx context.Context) error {
	attempt, err := r.client.Current(ctx, r.convocatoryID)
	if err != nil {
		return err
	}

	if attempt.Submission == nil {
		attempt, err = r.client.Start(ctx, r.convocatoryID)
		if err != nil {
			return err
		}
	}
	if attempt.Submission == nil {
		return errors.New("server returned no submission for the attempt")
	}

	r.setAttempt(attempt)
	_, err = r.store.Dispatch(EventBegin)
	return err
}

func (r *Runner) setAttempt(attempt *service.QuizConvocatoryAttempt) {
	r.attempt = attempt
	r.revision = attempt.Submission.Revision
	r.answers = seedAnswers(attempt.Submission)
	if r.page >= r.PageCount() {
		r.page = 0
	}
}

// seedAnswers rebuilds the local answers map from the draft's saved results.
// Answers whose question is no longer part of the draft's question set are
// dropped.
func seedAnswers(submission *model.QuizSubmission) map[string]*model.QuizQuestionOption {
	assigned := make(map[string]bool, len(submission.Questions))
	for _, question := range submission.Questions {
		assigned[question.ID] = true
	}

	answers := make(map[string]*model.QuizQuestionOption, len(submission.Results))
	for _, result := range submission.Results {
		if result.Answer == nil || !assigned[result.Question.ID] {
			continue
		}
		answer := *result.Answer
		answers[result.Question.ID] = &answer
	}
	return answers
}

// SetAnswer records the chosen option for a question. Rejected outside the
// attempting state and for options the question does not offer.
func (r *Runner) SetAnswer(questionID string, option model.QuizQuestionOption) error {
	if !r.store.CanAnswer() {
		return fmt.Errorf("cannot answer in state %s", r.store.State())
	}

	question := r.findQuestion(questionID)
	if question == nil {
		return fmt.Errorf("question %s is not part of this attempt", questionID)
	}
	if !model.ContainsOption(question.Options, option) {
		return errors.New("chosen option is not offered by the question")
	}

	chosen := option
	r.answers[questionID] = &chosen
	return nil
}

func (r *Runner) ClearAnswer(questionID string) error {
	if !r.store.CanAnswer() {
		return fmt.Errorf("cannot answer in state %s", r.store.State())
	}
	delete(r.answers, questionID)
	return nil
}

func (r *Runner) Answer(questionID string) *model.QuizQuestionOption {
	return r.answers[questionID]
}

func (r *Runner) AnsweredCount() int {
	return len(r.answers)
}

func (r *Runner) findQuestion(questionID string) *model.QuizQuestion {
	for i := range r.attempt.Submission.Questions {
		if r.attempt.Submission.Questions[i].ID == questionID {
			return &r.attempt.Submission.Questions[i]
		}
	}
	return nil
}

// Pagination over the attempt's question set.

func (r *Runner) PageCount() int {
	if r.attempt == nil || r.attempt.Submission == nil {
		return 0
	}
	total := len(r.attempt.Submission.Questions)
	if total == 0 {
		return 0
	}
	return (total + r.pageSize - 1) / r.pageSize
}

func (r *Runner) Page() []model.QuizQuestion {
	if r.attempt == nil || r.attempt.Submission == nil {
		return nil
	}
	questions := r.attempt.Submission.Questions
	start := r.page * r.pageSize
	if start >= len(questions) {
		return nil
	}
	end := start + r.pageSize
	if end > len(questions) {
		end = len(questions)
	}
	return questions[start:end]
}

func (r *Runner) PageIndex() int {
	return r.page
}

func (r *Runner) NextPage() bool {
	if r.page+1 >= r.PageCount() {
		return false
	}
	r.page++
	return true
}

func (r *Runner) PrevPage() bool {
	if r.page == 0 {
		return false
	}
	r.page--
	return true
}

// Remaining recomputes the countdown from the wall clock: the deadline is
// startedAt plus the convocatory timer, never a client-side tick-down. The
// second return is false for untimed convocatories.
func (r *Runner) Remaining() (time.Duration, bool) {
	if r.attempt == nil || r.attempt.Submission == nil {
		return 0, false
	}
	return calcRemaining(r.attempt.Submission.StartedAt, r.attempt.Convocatory.Timer, r.now())
}

func calcRemaining(startedAt time.Time, timerMinutes *int, now time.Time) (time.Duration, bool) {
	if timerMinutes == nil {
		return 0, false
	}
	deadline := startedAt.Add(time.Duration(*timerMinutes) * time.Minute)
	remaining := deadline.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

func (r *Runner) buildResults() []service.QuizQuestionResultData {
	questions := r.attempt.Submission.Questions
	results := make([]service.QuizQuestionResultData, 0, len(questions))
	for _, question := range questions {
		results = append(results, service.QuizQuestionResultData{
			Answer:   r.answers[question.ID],
			Question: question.Snapshot(),
		})
	}
	return results
}

// Autosave pushes the local answers to the server. A stale revision means
// another client wrote in between; the draft is refetched and the local
// answers reseeded from it.
func (r *Runner) Autosave(ctx context.Context) error {
	if !r.store.CanAnswer() {
		return nil
	}

	attempt, err := r.client.Autosave(ctx, r.convocatoryID, service.AutosaveAttemptRequest{
		Revision: r.revision,
		Results:  r.buildResults(),
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
			current, currentErr := r.client.Current(ctx, r.convocatoryID)
			if currentErr != nil {
				return currentErr
			}
			if current.Submission != nil {
				r.setAttempt(current)
			}
		}
		return err
	}

	r.setAttempt(attempt)
	return nil
}

// Finalize submits the attempt with the given reason and moves the flow to
// the results screen.
func (r *Runner) Finalize(ctx context.Context, reason model.QuizSubmissionReason) error {
	attempt, err := r.client.Finalize(ctx, r.convocatoryID, service.FinalizeAttemptRequest{
		Reason:  reason,
		Results: r.buildResults(),
	})
	if err != nil {
		return err
	}

	r.attempt = attempt
	_, err = r.store.Dispatch(EventFinish)
	return err
}

func (r *Runner) Review() error {
	_, err := r.store.Dispatch(EventReview)
	return err
}

func (r *Runner) Resume() error {
	_, err := r.store.Dispatch(EventResume)
	return err
}
