package service

import (
	"testing"

	"quizzer_backend/internal/model"
)

func optionOf(id, content string) model.QuizQuestionOption {
	return model.QuizQuestionOption{ID: id, Type: model.QuizQuestionOptionTypeText, Content: content}
}

func resultWith(answer *model.QuizQuestionOption, expected model.QuizQuestionOption) model.QuizQuestionResult {
	return model.QuizQuestionResult{
		Answer: answer,
		Question: model.QuizQuestionSnapshot{
			ID:      "q-" + expected.ID,
			Prompt:  "prompt",
			Options: []model.QuizQuestionOption{expected, optionOf("x", "other")},
			Answer:  expected,
		},
	}
}

func TestCalcSubmissionScore(t *testing.T) {
	right := optionOf("a", "right")
	wrong := optionOf("x", "other")

	tests := []struct {
		name         string
		results      []model.QuizQuestionResult
		passingScore float64
		wantCorrect  int
		wantScore    float64
		wantPassed   bool
	}{
		{
			name:         "empty results score zero",
			results:      nil,
			passingScore: 70,
			wantCorrect:  0,
			wantScore:    0,
			wantPassed:   false,
		},
		{
			name: "all correct",
			results: []model.QuizQuestionResult{
				resultWith(&right, right),
				resultWith(&right, right),
			},
			passingScore: 70,
			wantCorrect:  2,
			wantScore:    100,
			wantPassed:   true,
		},
		{
			name: "unanswered counts as wrong",
			results: []model.QuizQuestionResult{
				resultWith(&right, right),
				resultWith(nil, right),
			},
			passingScore: 70,
			wantCorrect:  1,
			wantScore:    50,
			wantPassed:   false,
		},
		{
			name: "wrong answer counts as wrong",
			results: []model.QuizQuestionResult{
				resultWith(&wrong, right),
			},
			passingScore: 70,
			wantCorrect:  0,
			wantScore:    0,
			wantPassed:   false,
		},
		{
			name: "score exactly at threshold passes",
			results: []model.QuizQuestionResult{
				resultWith(&right, right),
				resultWith(&right, right),
				resultWith(&right, right),
				resultWith(&right, right),
				resultWith(&right, right),
				resultWith(&right, right),
				resultWith(&right, right),
				resultWith(nil, right),
				resultWith(nil, right),
				resultWith(nil, right),
			},
			passingScore: 70,
			wantCorrect:  7,
			wantScore:    70,
			wantPassed:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcSubmissionScore(tt.results, tt.passingScore)
			if got.CorrectAnswersCount != tt.wantCorrect {
				t.Errorf("CorrectAnswersCount = %d, want %d", got.CorrectAnswersCount, tt.wantCorrect)
			}
			if got.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", got.Passed, tt.wantPassed)
			}
		})
	}
}

func TestCalcSubmissionScoreComparesStructurally(t *testing.T) {
	expected := optionOf("a", "Paris")
	// Same values, rebuilt independently of the snapshot.
	answer := model.QuizQuestionOption{ID: "a", Type: model.QuizQuestionOptionTypeText, Content: "Paris"}

	got := CalcSubmissionScore([]model.QuizQuestionResult{resultWith(&answer, expected)}, 70)
	if got.CorrectAnswersCount != 1 {
		t.Fatalf("structurally equal answer not counted as correct")
	}

	// Same id but different content must not match.
	tampered := model.QuizQuestionOption{ID: "a", Type: model.QuizQuestionOptionTypeText, Content: "Lyon"}
	got = CalcSubmissionScore([]model.QuizQuestionResult{resultWith(&tampered, expected)}, 70)
	if got.CorrectAnswersCount != 0 {
		t.Fatalf("tampered answer counted as correct")
	}
}
