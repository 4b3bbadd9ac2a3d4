package repository

import (
	"quizzer_backend/internal/model"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) ListByConvocatory(convocatoryID string) ([]model.Certificate, error) {
	var certificates []model.Certificate
	err := r.DB.
		Preload("User").
		Preload("Convocatory.Version.Quiz").
		Where("convocatory_id = ?", convocatoryID).
		Find(&certificates).Error
	return certificates, err
}

func (r *CertificateRepository) FindByID(id string) (*model.Certificate, error) {
	var c model.Certificate
	err := r.DB.
		Preload("User").
		Preload("Convocatory.Version.Quiz").
		First(&c, "id = ?", id).Error
	return &c, err
}

// Upsert issues a certificate for (user, convocatory). Re-granting an
// already issued certificate returns the existing one unchanged.
func (r *CertificateRepository) Upsert(userID, convocatoryID string) (*model.Certificate, error) {
	return UpsertCertificateTx(r.DB, userID, convocatoryID)
}

// UpsertCertificateTx is the transaction-composable variant used by the
// attempt finalizer.
func UpsertCertificateTx(tx *gorm.DB, userID, convocatoryID string) (*model.Certificate, error) {
	var existing model.Certificate
	err := tx.Where("user_id = ? AND convocatory_id = ?", userID, convocatoryID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	created := model.Certificate{UserID: userID, ConvocatoryID: convocatoryID}
	if err := tx.Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete revokes a certificate. Hard delete, so the unique (user,
// convocatory) index does not block a later re-grant.
func (r *CertificateRepository) Delete(id string) error {
	return r.DB.Unscoped().Delete(&model.Certificate{}, "id = ?", id).Error
}
