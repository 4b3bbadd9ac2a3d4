package service

import (
	"quizzer_backend/internal/model"
	"quizzer_backend/internal/repository"
	"quizzer_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo *repository.QuizRepository
	DB       *gorm.DB
}

func NewQuizService(quizRepo *repository.QuizRepository, db *gorm.DB) *QuizService {
	return &QuizService{QuizRepo: quizRepo, DB: db}
}

type CreateQuizRequest struct {
	Subject          string `json:"subject" binding:"required"`
	FirstVersionName string `json:"firstVersionName" binding:"required"`
}

type UpdateQuizRequest struct {
	Subject        *string `json:"subject"`
	CurrentVersion *string `json:"currentVersion" binding:"omitempty,uuid"`
}

type QuizVersionRequest struct {
	Name string `json:"name" binding:"required"`
}

type QuizQuestionRequest struct {
	Prompt      string                     `json:"prompt" binding:"required"`
	Description *string                    `json:"description"`
	Category    string                     `json:"category" binding:"required"`
	Options     []model.QuizQuestionOption `json:"options" binding:"required,min=1"`
	Answer      model.QuizQuestionOption   `json:"answer" binding:"required"`
}

func (s *QuizService) ListQuizzes() ([]model.Quiz, error) {
	return s.QuizRepo.List()
}

func (s *QuizService) GetQuiz(id string) (*model.Quiz, error) {
	return s.QuizRepo.FindByID(id)
}

// CreateQuiz creates the quiz together with its first version and points
// the current-version reference at it, atomically.
func (s *QuizService) CreateQuiz(req CreateQuizRequest) (*model.Quiz, error) {
	var quiz model.Quiz
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		quiz = model.Quiz{Subject: req.Subject}
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}

		version := model.QuizVersion{Name: req.FirstVersionName, QuizID: quiz.ID}
		if err := tx.Create(&version).Error; err != nil {
			return err
		}

		quiz.CurrentVersionID = &version.ID
		quiz.CurrentVersion = &version
		return tx.Save(&quiz).Error
	})
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) UpdateQuiz(id string, req UpdateQuizRequest) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil {
		quiz.Subject = *req.Subject
	}
	if req.CurrentVersion != nil {
		quiz.CurrentVersionID = req.CurrentVersion
		quiz.CurrentVersion = nil
	}

	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return s.QuizRepo.FindByID(id)
}

func (s *QuizService) DeleteQuiz(id string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.QuizRepo.Delete(id); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Versions

func (s *QuizService) ListVersions(quizID string) ([]model.QuizVersion, error) {
	return s.QuizRepo.ListVersions(quizID)
}

func (s *QuizService) GetVersion(id string) (*model.QuizVersion, error) {
	return s.QuizRepo.FindVersionByID(id)
}

func (s *QuizService) CreateVersion(quizID string, req QuizVersionRequest) (*model.QuizVersion, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		return nil, err
	}
	version := &model.QuizVersion{Name: req.Name, QuizID: quizID}
	if err := s.QuizRepo.CreateVersion(version); err != nil {
		return nil, err
	}
	return version, nil
}

func (s *QuizService) UpdateVersion(id string, req QuizVersionRequest) (*model.QuizVersion, error) {
	version, err := s.QuizRepo.FindVersionByID(id)
	if err != nil {
		return nil, err
	}
	version.Name = req.Name
	if err := s.QuizRepo.UpdateVersion(version); err != nil {
		return nil, err
	}
	return version, nil
}

func (s *QuizService) DeleteVersion(id string) (*model.QuizVersion, error) {
	version, err := s.QuizRepo.FindVersionByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.QuizRepo.DeleteVersion(id); err != nil {
		return nil, err
	}
	return version, nil
}

// Questions

func (s *QuizService) ListQuestions(versionID string) ([]model.QuizQuestion, error) {
	return s.QuizRepo.ListQuestionsByVersion(versionID)
}

func (s *QuizService) GetQuestion(id string) (*model.QuizQuestion, error) {
	return s.QuizRepo.FindQuestionByID(id)
}

func (s *QuizService) CreateQuestion(versionID string, req QuizQuestionRequest) (*model.QuizQuestion, error) {
	question, err := questionFromRequest(versionID, req)
	if err != nil {
		return nil, err
	}
	if err := s.QuizRepo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) UpdateQuestion(id string, req QuizQuestionRequest) (*model.QuizQuestion, error) {
	question, err := s.QuizRepo.FindQuestionByID(id)
	if err != nil {
		return nil, err
	}

	updated, err := questionFromRequest(question.VersionID, req)
	if err != nil {
		return nil, err
	}
	question.Prompt = updated.Prompt
	question.Description = updated.Description
	question.Category = updated.Category
	question.Options = updated.Options
	question.Answer = updated.Answer

	if err := s.QuizRepo.UpdateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuizService) DeleteQuestion(id string) (*model.QuizQuestion, error) {
	question, err := s.QuizRepo.FindQuestionByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.QuizRepo.DeleteQuestion(id); err != nil {
		return nil, err
	}
	return question, nil
}

// UpsertQuestions bulk-imports a version's bank, keyed by prompt.
func (s *QuizService) UpsertQuestions(versionID string, reqs []QuizQuestionRequest) ([]model.QuizQuestion, error) {
	questions := make([]model.QuizQuestion, 0, len(reqs))
	for _, req := range reqs {
		question, err := questionFromRequest(versionID, req)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *question)
	}
	return s.QuizRepo.UpsertQuestions(versionID, questions)
}

func questionFromRequest(versionID string, req QuizQuestionRequest) (*model.QuizQuestion, error) {
	if !model.ContainsOption(req.Options, req.Answer) {
		return nil, util.ErrAnswerNotInOptions
	}
	return &model.QuizQuestion{
		Prompt:      req.Prompt,
		Description: req.Description,
		Category:    req.Category,
		Options:     datatypes.JSONSlice[model.QuizQuestionOption](req.Options),
		Answer:      datatypes.NewJSONType(req.Answer),
		VersionID:   versionID,
	}, nil
}
