package repository

import (
	"quizzer_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) ListByConvocatory(convocatoryID string) ([]model.QuizSubmission, error) {
	var submissions []model.QuizSubmission
	err := r.DB.
		Preload("User").
		Where("convocatory_id = ?", convocatoryID).
		Order("created_at desc").
		Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) FindByID(id string) (*model.QuizSubmission, error) {
	var s model.QuizSubmission
	err := r.DB.
		Preload("User").
		Preload("Questions").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *SubmissionRepository) Delete(id string) error {
	return r.DB.Delete(&model.QuizSubmission{}, "id = ?", id).Error
}
