package service

import (
	"errors"
	"fmt"
	"testing"

	"quizzer_backend/internal/model"
	"quizzer_backend/internal/repository"
	"quizzer_backend/internal/util"
)

func newQuizService(t *testing.T) *QuizService {
	t.Helper()
	db := newTestDB(t)
	return NewQuizService(repository.NewQuizRepository(db), db)
}

func optionPair() ([]model.QuizQuestionOption, model.QuizQuestionOption) {
	right := model.QuizQuestionOption{ID: model.GenerateUUID(), Type: model.QuizQuestionOptionTypeText, Content: "right"}
	wrong := model.QuizQuestionOption{ID: model.GenerateUUID(), Type: model.QuizQuestionOptionTypeText, Content: "wrong"}
	return []model.QuizQuestionOption{right, wrong}, right
}

func TestCreateQuizCreatesFirstVersion(t *testing.T) {
	svc := newQuizService(t)

	quiz, err := svc.CreateQuiz(CreateQuizRequest{Subject: "Networking", FirstVersionName: "v1"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if quiz.CurrentVersionID == nil {
		t.Fatal("expected current version pointer to be set")
	}

	versions, err := svc.ListVersions(quiz.ID)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != 1 || versions[0].Name != "v1" {
		t.Fatalf("expected single version v1, got %+v", versions)
	}
	if versions[0].ID != *quiz.CurrentVersionID {
		t.Fatal("current version does not point at the created version")
	}
}

func TestCreateQuestionRejectsForeignAnswer(t *testing.T) {
	svc := newQuizService(t)
	quiz, err := svc.CreateQuiz(CreateQuizRequest{Subject: "Networking", FirstVersionName: "v1"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	options, _ := optionPair()
	foreign := model.QuizQuestionOption{ID: model.GenerateUUID(), Type: model.QuizQuestionOptionTypeText, Content: "elsewhere"}
	_, err = svc.CreateQuestion(*quiz.CurrentVersionID, QuizQuestionRequest{
		Prompt:   "What is a subnet?",
		Category: "basics",
		Options:  options,
		Answer:   foreign,
	})
	if !errors.Is(err, util.ErrAnswerNotInOptions) {
		t.Fatalf("expected ErrAnswerNotInOptions, got %v", err)
	}
}

func TestUpsertQuestionsUpdatesByPrompt(t *testing.T) {
	svc := newQuizService(t)
	quiz, err := svc.CreateQuiz(CreateQuizRequest{Subject: "Networking", FirstVersionName: "v1"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	versionID := *quiz.CurrentVersionID

	var reqs []QuizQuestionRequest
	for i := 0; i < 3; i++ {
		options, right := optionPair()
		reqs = append(reqs, QuizQuestionRequest{
			Prompt:   fmt.Sprintf("question %d", i),
			Category: "basics",
			Options:  options,
			Answer:   right,
		})
	}
	if _, err := svc.UpsertQuestions(versionID, reqs); err != nil {
		t.Fatalf("initial upsert: %v", err)
	}

	// Same prompts again with a changed category: must update in place,
	// not duplicate rows.
	for i := range reqs {
		reqs[i].Category = "advanced"
	}
	bank, err := svc.UpsertQuestions(versionID, reqs)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if len(bank) != 3 {
		t.Fatalf("expected 3 questions after re-upsert, got %d", len(bank))
	}
	for _, q := range bank {
		if q.Category != "advanced" {
			t.Fatalf("question %q kept category %q", q.Prompt, q.Category)
		}
	}
}

func TestCreateAndDeleteVersion(t *testing.T) {
	svc := newQuizService(t)
	quiz, err := svc.CreateQuiz(CreateQuizRequest{Subject: "Networking", FirstVersionName: "v1"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	second, err := svc.CreateVersion(quiz.ID, QuizVersionRequest{Name: "v2"})
	if err != nil {
		t.Fatalf("create second version: %v", err)
	}

	deleted, err := svc.DeleteVersion(second.ID)
	if err != nil {
		t.Fatalf("delete version: %v", err)
	}
	if deleted.Name != "v2" {
		t.Fatalf("expected deleted version v2, got %q", deleted.Name)
	}

	versions, err := svc.ListVersions(quiz.ID)
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("expected 1 remaining version, got %d", len(versions))
	}
}
