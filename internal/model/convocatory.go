package model

import "time"

// QuizConvocatory is a scheduled window in which one quiz version is
// offered to a roster of users, with a target question count, an attempt
// limit and an optional timer in minutes.
type QuizConvocatory struct {
	UUIDBase
	Questions int          `gorm:"not null" json:"questions"`
	Attempts  int          `gorm:"not null" json:"attempts"`
	Timer     *int         `json:"timer"`
	VersionID string       `gorm:"index;type:varchar(36);not null" json:"versionId"`
	Version   *QuizVersion `gorm:"foreignKey:VersionID" json:"version,omitempty"`
	StartAt   time.Time    `gorm:"not null" json:"startAt"`
	EndAt     time.Time    `gorm:"not null" json:"endAt"`
	Users     []User       `gorm:"many2many:quiz_convocatory_users" json:"users,omitempty"`
}

func (QuizConvocatory) TableName() string {
	return "quiz_convocatories"
}

// OnTime reports whether now falls inside the scheduled [StartAt, EndAt] window.
func (c *QuizConvocatory) OnTime(now time.Time) bool {
	return !now.Before(c.StartAt) && !now.After(c.EndAt)
}
