package repository

import (
	"quizzer_backend/internal/model"

	"gorm.io/gorm"
)

type ConvocatoryRepository struct {
	DB *gorm.DB
}

func NewConvocatoryRepository(db *gorm.DB) *ConvocatoryRepository {
	return &ConvocatoryRepository{DB: db}
}

func (r *ConvocatoryRepository) Create(convocatory *model.QuizConvocatory) error {
	return r.DB.Create(convocatory).Error
}

func (r *ConvocatoryRepository) FindByID(id string) (*model.QuizConvocatory, error) {
	var c model.QuizConvocatory
	err := r.DB.
		Preload("Version.Quiz").
		Preload("Users").
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *ConvocatoryRepository) List() ([]model.QuizConvocatory, error) {
	var convocatories []model.QuizConvocatory
	err := r.DB.
		Preload("Version.Quiz").
		Preload("Users").
		Order("start_at desc").
		Find(&convocatories).Error
	return convocatories, err
}

func (r *ConvocatoryRepository) Update(convocatory *model.QuizConvocatory) error {
	return r.DB.Save(convocatory).Error
}

// ReplaceRoster swaps the invited users wholesale.
func (r *ConvocatoryRepository) ReplaceRoster(convocatory *model.QuizConvocatory, users []model.User) error {
	return r.DB.Model(convocatory).Association("Users").Replace(users)
}

func (r *ConvocatoryRepository) Delete(id string) error {
	return r.DB.Delete(&model.QuizConvocatory{}, "id = ?", id).Error
}
