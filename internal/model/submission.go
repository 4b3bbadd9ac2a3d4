package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuizSubmissionStatus string

const (
	QuizSubmissionStatusDraft     QuizSubmissionStatus = "DRAFT"
	QuizSubmissionStatusSubmitted QuizSubmissionStatus = "SUBMITTED"
)

type QuizSubmissionReason string

const (
	QuizSubmissionReasonSubmitted QuizSubmissionReason = "SUBMITTED"
	QuizSubmissionReasonTimeout   QuizSubmissionReason = "TIMEOUT"
)

// QuizQuestionResult records one answered (or unanswered) question inside a
// submission. The question snapshot is denormalized so scoring stays stable
// even if the question bank is edited afterwards.
type QuizQuestionResult struct {
	Answer   *QuizQuestionOption  `json:"answer"`
	Question QuizQuestionSnapshot `json:"question"`
}

// QuizSubmission is one attempt at a convocatory. At most one DRAFT
// submission may exist per (user, convocatory) pair at any time; the
// attempt number is derived by counting submissions, not stored.
type QuizSubmission struct {
	UUIDBase
	Status        QuizSubmissionStatus                    `gorm:"size:20;default:'DRAFT';index" json:"status"`
	Reason        *QuizSubmissionReason                   `gorm:"size:20" json:"reason"`
	Results       datatypes.JSONSlice[QuizQuestionResult] `json:"results"`
	Revision      int                                     `gorm:"default:0" json:"revision"`
	UserID        string                                  `gorm:"index;type:varchar(36);not null" json:"userId"`
	User          *User                                   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ConvocatoryID string                                  `gorm:"index;type:varchar(36);not null" json:"convocatoryId"`
	Convocatory   *QuizConvocatory                        `gorm:"foreignKey:ConvocatoryID" json:"convocatory,omitempty"`
	Questions     []QuizQuestion                          `gorm:"many2many:quiz_submission_questions" json:"questions,omitempty"`
	StartedAt     time.Time                               `json:"startedAt"`
	EndedAt       *time.Time                              `json:"endedAt"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}
