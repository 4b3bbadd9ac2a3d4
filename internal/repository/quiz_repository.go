package repository

import (
	"quizzer_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var q model.Quiz
	err := r.DB.Preload("CurrentVersion").First(&q, "id = ?", id).Error
	return &q, err
}

func (r *QuizRepository) List() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id string) error {
	return r.DB.Delete(&model.Quiz{}, "id = ?", id).Error
}

// Versions

func (r *QuizRepository) CreateVersion(version *model.QuizVersion) error {
	return r.DB.Create(version).Error
}

func (r *QuizRepository) FindVersionByID(id string) (*model.QuizVersion, error) {
	var v model.QuizVersion
	err := r.DB.Preload("Quiz").First(&v, "id = ?", id).Error
	return &v, err
}

func (r *QuizRepository) ListVersions(quizID string) ([]model.QuizVersion, error) {
	var versions []model.QuizVersion
	query := r.DB.Order("created_at desc")
	if quizID != "" {
		query = query.Where("quiz_id = ?", quizID)
	} else {
		query = query.Preload("Quiz")
	}
	err := query.Find(&versions).Error
	return versions, err
}

func (r *QuizRepository) UpdateVersion(version *model.QuizVersion) error {
	return r.DB.Save(version).Error
}

func (r *QuizRepository) DeleteVersion(id string) error {
	return r.DB.Delete(&model.QuizVersion{}, "id = ?", id).Error
}

// Questions

func (r *QuizRepository) CreateQuestion(question *model.QuizQuestion) error {
	return r.DB.Create(question).Error
}

func (r *QuizRepository) FindQuestionByID(id string) (*model.QuizQuestion, error) {
	var q model.QuizQuestion
	err := r.DB.First(&q, "id = ?", id).Error
	return &q, err
}

func (r *QuizRepository) ListQuestionsByVersion(versionID string) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.Where("version_id = ?", versionID).Order("created_at asc").Find(&questions).Error
	return questions, err
}

func (r *QuizRepository) UpdateQuestion(question *model.QuizQuestion) error {
	return r.DB.Save(question).Error
}

func (r *QuizRepository) DeleteQuestion(id string) error {
	return r.DB.Delete(&model.QuizQuestion{}, "id = ?", id).Error
}

// UpsertQuestions replaces-or-creates each question by its (prompt,
// version) natural key and returns the full bank afterwards. Runs in one
// transaction so a failed row leaves the bank untouched.
func (r *QuizRepository) UpsertQuestions(versionID string, questions []model.QuizQuestion) ([]model.QuizQuestion, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range questions {
			questions[i].VersionID = versionID

			var existing model.QuizQuestion
			err := tx.Where("prompt = ? AND version_id = ?", questions[i].Prompt, versionID).
				First(&existing).Error
			switch {
			case err == nil:
				existing.Description = questions[i].Description
				existing.Category = questions[i].Category
				existing.Options = questions[i].Options
				existing.Answer = questions[i].Answer
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case err == gorm.ErrRecordNotFound:
				if err := tx.Create(&questions[i]).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.ListQuestionsByVersion(versionID)
}
