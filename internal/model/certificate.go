package model

// Certificate is the proof-of-passing record, unique per (user,
// convocatory). Grant is an idempotent upsert; revoke deletes the row and a
// later re-grant recreates it.
type Certificate struct {
	UUIDBase
	UserID        string           `gorm:"type:varchar(36);not null;uniqueIndex:idx_certificates_user_convocatory" json:"userId"`
	User          *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ConvocatoryID string           `gorm:"type:varchar(36);not null;uniqueIndex:idx_certificates_user_convocatory" json:"convocatoryId"`
	Convocatory   *QuizConvocatory `gorm:"foreignKey:ConvocatoryID" json:"convocatory,omitempty"`
}

func (Certificate) TableName() string {
	return "certificates"
}
