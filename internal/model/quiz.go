package model

type Quiz struct {
	UUIDBase
	Subject          string       `gorm:"size:255;unique;not null" json:"subject"`
	CurrentVersionID *string      `gorm:"type:varchar(36)" json:"currentVersionId"`
	CurrentVersion   *QuizVersion `gorm:"foreignKey:CurrentVersionID" json:"currentVersion,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizVersion struct {
	UUIDBase
	Name      string         `gorm:"size:255;not null" json:"name"`
	QuizID    string         `gorm:"index;type:varchar(36);not null" json:"quizId"`
	Quiz      *Quiz          `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	Questions []QuizQuestion `gorm:"foreignKey:VersionID" json:"questions,omitempty"`
}

func (QuizVersion) TableName() string {
	return "quiz_versions"
}
