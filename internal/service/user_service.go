package service

import (
	"quizzer_backend/internal/model"
	"quizzer_backend/internal/repository"
	"quizzer_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type CreateUserRequest struct {
	Name  string         `json:"name" binding:"required"`
	Email string         `json:"email" binding:"required,email"`
	Role  model.UserRole `json:"role" binding:"omitempty,oneof=ADMIN USER"`
}

type UpdateUserRequest struct {
	Name   *string           `json:"name"`
	Email  *string           `json:"email" binding:"omitempty,email"`
	Status *model.UserStatus `json:"status" binding:"omitempty,oneof=ENABLED DISABLED"`
	Role   *model.UserRole   `json:"role" binding:"omitempty,oneof=ADMIN USER"`
}

func (s *UserService) List() ([]model.User, error) {
	return s.UserRepo.List()
}

func (s *UserService) Get(id string) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

func (s *UserService) Create(req CreateUserRequest) (*model.User, error) {
	_, err := s.UserRepo.FindByEmail(req.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.UserRoleUser
	}

	user := &model.User{
		Name:   req.Name,
		Email:  req.Email,
		Status: model.UserStatusEnabled,
		Role:   role,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(id string, req UpdateUserRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(id string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.UserRepo.Delete(id); err != nil {
		return nil, err
	}
	return user, nil
}

// UpsertByEmail backs the first-sign-in flow: unknown emails become USER
// accounts, known ones get their profile refreshed.
func (s *UserService) UpsertByEmail(name, email, image string) (*model.User, error) {
	user := &model.User{
		Name:   name,
		Email:  email,
		Image:  image,
		Status: model.UserStatusEnabled,
		Role:   model.UserRoleUser,
	}
	if err := s.UserRepo.UpsertByEmail(user); err != nil {
		return nil, err
	}
	return s.UserRepo.FindByEmail(email)
}
