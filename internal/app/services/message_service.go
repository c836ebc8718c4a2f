package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/nrandria/tutoria/internal/app/access"
	"github.com/nrandria/tutoria/internal/app/models"
	"github.com/nrandria/tutoria/internal/app/models/dto"
	"github.com/nrandria/tutoria/internal/app/repositories"
	"github.com/nrandria/tutoria/internal/pkg/apperrors"
)

// MessageService handles direct messages between users
type MessageService struct {
	messageStore repositories.MessageStore
	userStore    repositories.UserStore
	scope        *access.ScopeService
	logger       zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageStore repositories.MessageStore,
	userStore repositories.UserStore,
	scope *access.ScopeService,
	logger zerolog.Logger,
) *MessageService {
	return &MessageService{
		messageStore: messageStore,
		userStore:    userStore,
		scope:        scope,
		logger:       logger,
	}
}

// List returns the page of messages the principal may see: only
// conversations they participate in, unless they are an admin.
func (s *MessageService) List(ctx context.Context, p access.Principal, params repositories.ListMessagesParams) ([]*models.Message, int64, error) {
	s.scope.ScopeMessages(p, &params)
	return s.messageStore.List(ctx, params)
}

// GetByID retrieves a message. A record the principal is not a party to
// is reported as not found.
func (s *MessageService) GetByID(ctx context.Context, p access.Principal, id int64) (*models.Message, error) {
	msg, err := s.messageStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.scope.CanViewMessage(p, msg) {
		return nil, apperrors.ErrMessageNotFound
	}
	return msg, nil
}

// Create sends a message. The sender is always the principal; the
// receiver must be an existing user.
func (s *MessageService) Create(ctx context.Context, p access.Principal, req *dto.CreateMessageRequest) (*models.Message, error) {
	if _, err := s.userStore.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewValidationError("receiver does not exist")
		}
		return nil, err
	}

	msg := &models.Message{
		SenderID:   p.UserID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}

	if err := s.messageStore.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("messageId", msg.ID).Int64("receiverId", msg.ReceiverID).Msg("Message sent")
	return msg, nil
}

// Update edits a message. Only the sender or an admin may.
func (s *MessageService) Update(ctx context.Context, p access.Principal, id int64, req *dto.UpdateMessageRequest) (*models.Message, error) {
	msg, err := s.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !s.scope.OwnsMessage(p, msg) {
		return nil, apperrors.ErrPermissionDenied
	}

	msg.Content = req.Content
	if err := s.messageStore.Update(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// Delete removes a message. Only the sender or an admin may.
func (s *MessageService) Delete(ctx context.Context, p access.Principal, id int64) error {
	msg, err := s.GetByID(ctx, p, id)
	if err != nil {
		return err
	}
	if !s.scope.OwnsMessage(p, msg) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.messageStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("messageId", id).Msg("Message deleted")
	return nil
}
