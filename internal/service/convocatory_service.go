package service

import (
	"time"

	"quizzer_backend/internal/model"
	"quizzer_backend/internal/repository"
)

type ConvocatoryService struct {
	ConvocatoryRepo *repository.ConvocatoryRepository
	SubmissionRepo  *repository.SubmissionRepository
	UserRepo        *repository.UserRepository
}

func NewConvocatoryService(
	convocatoryRepo *repository.ConvocatoryRepository,
	submissionRepo *repository.SubmissionRepository,
	userRepo *repository.UserRepository,
) *ConvocatoryService {
	return &ConvocatoryService{
		ConvocatoryRepo: convocatoryRepo,
		SubmissionRepo:  submissionRepo,
		UserRepo:        userRepo,
	}
}

type CreateConvocatoryRequest struct {
	Questions int       `json:"questions" binding:"required,min=1"`
	Attempts  int       `json:"attempts" binding:"required,min=1"`
	Timer     *int      `json:"timer" binding:"omitempty,min=1"`
	Version   string    `json:"version" binding:"required,uuid"`
	Users     []string  `json:"users" binding:"required"`
	StartAt   time.Time `json:"startAt" binding:"required"`
	EndAt     time.Time `json:"endAt" binding:"required"`
}

type UpdateConvocatoryRequest struct {
	Questions *int       `json:"questions" binding:"omitempty,min=1"`
	Attempts  *int       `json:"attempts" binding:"omitempty,min=1"`
	Timer     *int       `json:"timer" binding:"omitempty,min=1"`
	Version   *string    `json:"version" binding:"omitempty,uuid"`
	Users     *[]string  `json:"users"`
	StartAt   *time.Time `json:"startAt"`
	EndAt     *time.Time `json:"endAt"`
}

func (s *ConvocatoryService) List() ([]model.QuizConvocatory, error) {
	return s.ConvocatoryRepo.List()
}

func (s *ConvocatoryService) Get(id string) (*model.QuizConvocatory, error) {
	return s.ConvocatoryRepo.FindByID(id)
}

func (s *ConvocatoryService) Create(req CreateConvocatoryRequest) (*model.QuizConvocatory, error) {
	users, err := s.resolveRoster(req.Users)
	if err != nil {
		return nil, err
	}

	convocatory := &model.QuizConvocatory{
		Questions: req.Questions,
		Attempts:  req.Attempts,
		Timer:     req.Timer,
		VersionID: req.Version,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Users:     users,
	}
	if err := s.ConvocatoryRepo.Create(convocatory); err != nil {
		return nil, err
	}
	return s.ConvocatoryRepo.FindByID(convocatory.ID)
}

func (s *ConvocatoryService) Update(id string, req UpdateConvocatoryRequest) (*model.QuizConvocatory, error) {
	convocatory, err := s.ConvocatoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Questions != nil {
		convocatory.Questions = *req.Questions
	}
	if req.Attempts != nil {
		convocatory.Attempts = *req.Attempts
	}
	if req.Timer != nil {
		convocatory.Timer = req.Timer
	}
	if req.Version != nil {
		convocatory.VersionID = *req.Version
		convocatory.Version = nil
	}
	if req.StartAt != nil {
		convocatory.StartAt = *req.StartAt
	}
	if req.EndAt != nil {
		convocatory.EndAt = *req.EndAt
	}

	if err := s.ConvocatoryRepo.Update(convocatory); err != nil {
		return nil, err
	}

	if req.Users != nil {
		users, err := s.resolveRoster(*req.Users)
		if err != nil {
			return nil, err
		}
		if err := s.ConvocatoryRepo.ReplaceRoster(convocatory, users); err != nil {
			return nil, err
		}
	}

	return s.ConvocatoryRepo.FindByID(id)
}

func (s *ConvocatoryService) Delete(id string) (*model.QuizConvocatory, error) {
	convocatory, err := s.ConvocatoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.ConvocatoryRepo.Delete(id); err != nil {
		return nil, err
	}
	return convocatory, nil
}

// Submissions (admin reporting surface)

func (s *ConvocatoryService) ListSubmissions(convocatoryID string) ([]model.QuizSubmission, error) {
	return s.SubmissionRepo.ListByConvocatory(convocatoryID)
}

func (s *ConvocatoryService) GetSubmission(id string) (*model.QuizSubmission, error) {
	return s.SubmissionRepo.FindByID(id)
}

func (s *ConvocatoryService) DeleteSubmission(id string) (*model.QuizSubmission, error) {
	submission, err := s.SubmissionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.SubmissionRepo.Delete(id); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *ConvocatoryService) resolveRoster(ids []string) ([]model.User, error) {
	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.UserRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}
