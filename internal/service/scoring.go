package service

import "quizzer_backend/internal/model"

const DefaultPassingScore = 70

// SubmissionScore is the outcome of grading one submission.
type SubmissionScore struct {
	CorrectAnswersCount int     `json:"correctAnswersCount"`
	Score               float64 `json:"score"`
	Passed              bool    `json:"passed"`
}

// CalcSubmissionScore grades a submission's results. A result counts as
// correct when its answer is present and structurally equal to the
// snapshot's expected answer. An empty results list scores 0 rather than
// dividing by zero.
func CalcSubmissionScore(results []model.QuizQuestionResult, passingScore float64) SubmissionScore {
	correct := 0
	for _, result := range results {
		if result.Answer != nil && result.Answer.Equal(result.Question.Answer) {
			correct++
		}
	}

	score := 0.0
	if len(results) > 0 {
		score = float64(correct) / float64(len(results)) * 100
	}

	return SubmissionScore{
		CorrectAnswersCount: correct,
		Score:               score,
		Passed:              score >= passingScore,
	}
}
