package model

import (
	"gorm.io/datatypes"
)

type QuizQuestionOptionType string

const (
	QuizQuestionOptionTypeText  QuizQuestionOptionType = "TEXT"
	QuizQuestionOptionTypeImage QuizQuestionOptionType = "IMAGE"
)

// QuizQuestionOption is the canonical option record. Options are compared
// by value (id, type, content), never by reference, because clients
// reconstruct option objects independently of the server.
type QuizQuestionOption struct {
	ID      string                 `json:"id"`
	Type    QuizQuestionOptionType `json:"type"`
	Content string                 `json:"content"`
}

func (o QuizQuestionOption) Equal(other QuizQuestionOption) bool {
	return o.ID == other.ID && o.Type == other.Type && o.Content == other.Content
}

// ContainsOption reports whether option is one of options, structurally.
func ContainsOption(options []QuizQuestionOption, option QuizQuestionOption) bool {
	for _, o := range options {
		if o.Equal(option) {
			return true
		}
	}
	return false
}

type QuizQuestion struct {
	UUIDBase
	Prompt      string                                   `gorm:"size:255;not null;uniqueIndex:idx_quiz_questions_prompt_version" json:"prompt"`
	Description *string                                  `gorm:"type:text" json:"description"`
	Category    string                                   `gorm:"size:100;not null;index" json:"category"`
	Options     datatypes.JSONSlice[QuizQuestionOption]  `json:"options"`
	Answer      datatypes.JSONType[QuizQuestionOption]   `json:"answer"`
	VersionID   string                                   `gorm:"type:varchar(36);not null;uniqueIndex:idx_quiz_questions_prompt_version;index" json:"versionId"`
	Version     *QuizVersion                             `gorm:"foreignKey:VersionID" json:"version,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// Snapshot denormalizes the question for embedding in submission results.
func (q QuizQuestion) Snapshot() QuizQuestionSnapshot {
	return QuizQuestionSnapshot{
		ID:          q.ID,
		Prompt:      q.Prompt,
		Description: q.Description,
		Options:     []QuizQuestionOption(q.Options),
		Answer:      q.Answer.Data(),
		Category:    q.Category,
	}
}

// QuizQuestionSnapshot is the denormalized copy of a question stored inside
// a submission's results, immune to later edits of the question bank.
type QuizQuestionSnapshot struct {
	ID          string               `json:"id"`
	Prompt      string               `json:"prompt"`
	Description *string              `json:"description"`
	Options     []QuizQuestionOption `json:"options"`
	Answer      QuizQuestionOption   `json:"answer"`
	Category    string               `json:"category"`
}
