package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/nrandria/tutoria/internal/app/models"
	"github.com/nrandria/tutoria/internal/app/models/dto"
	"github.com/nrandria/tutoria/internal/app/repositories"
	"github.com/nrandria/tutoria/internal/pkg/apperrors"
	"github.com/nrandria/tutoria/internal/pkg/auth"
	"github.com/nrandria/tutoria/internal/pkg/dberrors"
)

// UserService handles account administration. Route-level authorization
// already restricts these operations to admins.
type UserService struct {
	userStore repositories.UserStore
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore repositories.UserStore, logger zerolog.Logger) *UserService {
	return &UserService{
		userStore: userStore,
		logger:    logger,
	}
}

// List returns a page of users matching the filters
func (s *UserService) List(ctx context.Context, params repositories.ListUsersParams) ([]*models.User, int64, error) {
	return s.userStore.List(ctx, params)
}

// GetByID retrieves a user
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userStore.GetByID(ctx, id)
}

// Create adds a new account with an already-decided role
func (s *UserService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	hash, err := auth.HashPassword(req.MotDePasse)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Nom:        req.Nom,
		Prenom:     req.Prenom,
		Email:      req.Email,
		MotDePasse: hash,
		Role:       req.Role,
		Telephone:  req.Telephone,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

// Update changes profile fields. Role and email are immutable here.
func (s *UserService) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nom != nil {
		user.Nom = *req.Nom
	}
	if req.Prenom != nil {
		user.Prenom = *req.Prenom
	}
	if req.Telephone != nil {
		user.Telephone = req.Telephone
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("userId", id).Msg("User deleted")
	return nil
}
