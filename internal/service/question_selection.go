package service

import (
	"math/rand"

	"quizzer_backend/internal/model"
)

// SelectQuestions draws up to quantity questions from the bank, balanced by
// category: each category contributes at most floor(quantity/categories)
// questions picked at random, then the pool is topped off at random from
// the not-yet-selected remainder. When the bank is smaller than quantity
// the whole bank is returned; category balance is best effort only. An
// empty bank yields an empty selection, which callers treat as a valid
// (empty) attempt.
func SelectQuestions(bank []model.QuizQuestion, quantity int, r *rand.Rand) []model.QuizQuestion {
	if quantity <= 0 || len(bank) == 0 {
		return nil
	}

	categories := make([]string, 0)
	byCategory := make(map[string][]model.QuizQuestion)
	for _, q := range bank {
		if _, seen := byCategory[q.Category]; !seen {
			categories = append(categories, q.Category)
		}
		byCategory[q.Category] = append(byCategory[q.Category], q)
	}

	perCategory := quantity / len(categories)

	selected := make([]model.QuizQuestion, 0, quantity)
	picked := make(map[string]bool, quantity)
	for _, category := range categories {
		group := shuffled(byCategory[category], r)
		take := perCategory
		if take > len(group) {
			take = len(group)
		}
		for _, q := range group[:take] {
			selected = append(selected, q)
			picked[q.ID] = true
		}
	}

	if len(selected) < quantity {
		remainder := make([]model.QuizQuestion, 0, len(bank)-len(selected))
		for _, q := range bank {
			if !picked[q.ID] {
				remainder = append(remainder, q)
			}
		}

		remainder = shuffled(remainder, r)
		missing := quantity - len(selected)
		if missing > len(remainder) {
			missing = len(remainder)
		}
		selected = append(selected, remainder[:missing]...)
	}

	if len(selected) > quantity {
		selected = selected[:quantity]
	}
	return selected
}

func shuffled(questions []model.QuizQuestion, r *rand.Rand) []model.QuizQuestion {
	out := append([]model.QuizQuestion(nil), questions...)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
