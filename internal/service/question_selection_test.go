package service

import (
	"fmt"
	"math/rand"
	"testing"

	"quizzer_backend/internal/model"
)

func bankQuestion(id, category string) model.QuizQuestion {
	q := model.QuizQuestion{Category: category}
	q.ID = id
	return q
}

func buildBank(perCategory map[string]int) []model.QuizQuestion {
	var bank []model.QuizQuestion
	for category, n := range perCategory {
		for i := 0; i < n; i++ {
			bank = append(bank, bankQuestion(fmt.Sprintf("%s-%d", category, i), category))
		}
	}
	return bank
}

func TestSelectQuestionsBounds(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	tests := []struct {
		name     string
		bank     []model.QuizQuestion
		quantity int
		wantLen  int
	}{
		{"empty bank", nil, 10, 0},
		{"zero quantity", buildBank(map[string]int{"go": 5}), 0, 0},
		{"bank smaller than quantity", buildBank(map[string]int{"go": 3}), 10, 3},
		{"bank equal to quantity", buildBank(map[string]int{"go": 10}), 10, 10},
		{"bank larger than quantity", buildBank(map[string]int{"go": 30}), 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectQuestions(tt.bank, tt.quantity, r)
			if len(got) != tt.wantLen {
				t.Errorf("selected %d questions, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestSelectQuestionsNoDuplicates(t *testing.T) {
	bank := buildBank(map[string]int{"go": 20, "sql": 20, "http": 20})
	r := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		selected := SelectQuestions(bank, 15, r)
		seen := make(map[string]bool, len(selected))
		for _, q := range selected {
			if seen[q.ID] {
				t.Fatalf("question %s selected twice", q.ID)
			}
			seen[q.ID] = true
		}
	}
}

func TestSelectQuestionsCategoryQuota(t *testing.T) {
	// 3 categories, quantity 9: each category contributes exactly 3.
	bank := buildBank(map[string]int{"go": 10, "sql": 10, "http": 10})
	r := rand.New(rand.NewSource(7))

	selected := SelectQuestions(bank, 9, r)
	if len(selected) != 9 {
		t.Fatalf("selected %d questions, want 9", len(selected))
	}

	counts := map[string]int{}
	for _, q := range selected {
		counts[q.Category]++
	}
	for category, n := range counts {
		if n != 3 {
			t.Errorf("category %s contributed %d questions, want 3", category, n)
		}
	}
}

func TestSelectQuestionsTopsOffFromRemainder(t *testing.T) {
	// Quota is floor(10/3)=3 per category, leaving one slot to fill from
	// anywhere.
	bank := buildBank(map[string]int{"go": 10, "sql": 10, "http": 10})
	r := rand.New(rand.NewSource(3))

	selected := SelectQuestions(bank, 10, r)
	if len(selected) != 10 {
		t.Fatalf("selected %d questions, want 10", len(selected))
	}
}

func TestSelectQuestionsUnevenCategories(t *testing.T) {
	// One category cannot meet its quota; the shortfall comes from the rest.
	bank := buildBank(map[string]int{"go": 1, "sql": 20})
	r := rand.New(rand.NewSource(11))

	selected := SelectQuestions(bank, 10, r)
	if len(selected) != 10 {
		t.Fatalf("selected %d questions, want 10", len(selected))
	}
}
