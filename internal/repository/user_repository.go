package repository

import (
	"quizzer_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var u model.User
	err := r.DB.First(&u, "id = ?", id).Error
	return &u, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var u model.User
	err := r.DB.First(&u, "email = ?", email).Error
	return &u, err
}

func (r *UserRepository) List() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("created_at desc").Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) Delete(id string) error {
	return r.DB.Delete(&model.User{}, "id = ?", id).Error
}

// UpsertByEmail creates the user on first sign-in or refreshes the mutable
// profile fields on conflict.
func (r *UserRepository) UpsertByEmail(user *model.User) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "image"}),
	}).Create(user).Error
}
