package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/nrandria/tutoria/internal/app/access"
	"github.com/nrandria/tutoria/internal/app/models"
	"github.com/nrandria/tutoria/internal/app/models/dto"
	"github.com/nrandria/tutoria/internal/app/repositories"
	"github.com/nrandria/tutoria/internal/pkg/apperrors"
)

type messageFixture struct {
	svc       *MessageService
	users     *fakeUserStore
	messages  *fakeMessageStore
	admin     access.Principal
	formateur access.Principal
	parent    access.Principal
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	users := newFakeUserStore()
	messages := newFakeMessageStore()
	scope := access.NewScopeService(users)
	svc := NewMessageService(messages, users, scope, zerolog.Nop())

	ctx := context.Background()
	adminUser := &models.User{Nom: "A", Prenom: "A", Email: "admin@example.com", Role: models.RoleAdmin}
	formateurUser := &models.User{Nom: "F", Prenom: "F", Email: "tutor@example.com", Role: models.RoleFormateur}
	parentUser := &models.User{Nom: "P", Prenom: "P", Email: "parent@example.com", Role: models.RoleParent}
	for _, u := range []*models.User{adminUser, formateurUser, parentUser} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	return &messageFixture{
		svc:       svc,
		users:     users,
		messages:  messages,
		admin:     access.Principal{UserID: adminUser.ID, Role: models.RoleAdmin},
		formateur: access.Principal{UserID: formateurUser.ID, Role: models.RoleFormateur},
		parent:    access.Principal{UserID: parentUser.ID, Role: models.RoleParent},
	}
}

func (fx *messageFixture) send(t *testing.T, from access.Principal, to int64, content string) *models.Message {
	t.Helper()
	msg, err := fx.svc.Create(context.Background(), from, &dto.CreateMessageRequest{
		ReceiverID: to,
		Content:    content,
	})
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	return msg
}

func TestCreateMessageStampsSender(t *testing.T) {
	fx := newMessageFixture(t)
	msg := fx.send(t, fx.formateur, fx.parent.UserID, "Bonjour")

	if msg.SenderID != fx.formateur.UserID {
		t.Fatalf("expected sender %d, got %d", fx.formateur.UserID, msg.SenderID)
	}
}

func TestCreateMessageUnknownReceiver(t *testing.T) {
	fx := newMessageFixture(t)

	_, err := fx.svc.Create(context.Background(), fx.formateur, &dto.CreateMessageRequest{
		ReceiverID: 9999,
		Content:    "Bonjour",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("unknown receiver must fail validation, got %v", err)
	}
}

func TestListMessagesIsScopedToParticipants(t *testing.T) {
	fx := newMessageFixture(t)
	ctx := context.Background()
	fx.send(t, fx.formateur, fx.parent.UserID, "Bonjour")
	fx.send(t, fx.parent, fx.formateur.UserID, "Bonsoir")
	fx.send(t, fx.formateur, fx.admin.UserID, "Rapport")

	parentMsgs, total, err := fx.svc.List(ctx, fx.parent, repositories.ListMessagesParams{})
	if err != nil {
		t.Fatalf("list as parent: %v", err)
	}
	if total != 2 || len(parentMsgs) != 2 {
		t.Fatalf("parent must see only their conversations, got %d", len(parentMsgs))
	}

	adminMsgs, total, err := fx.svc.List(ctx, fx.admin, repositories.ListMessagesParams{})
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if total != 3 || len(adminMsgs) != 3 {
		t.Fatalf("admin must see everything, got %d", len(adminMsgs))
	}
}

func TestGetMessageOutsideConversationIsNotFound(t *testing.T) {
	fx := newMessageFixture(t)
	msg := fx.send(t, fx.formateur, fx.admin.UserID, "Rapport")

	if _, err := fx.svc.GetByID(context.Background(), fx.parent, msg.ID); !errors.Is(err, apperrors.ErrMessageNotFound) {
		t.Fatalf("message outside the conversation must read as not found, got %v", err)
	}
}

func TestUpdateMessageRequiresSender(t *testing.T) {
	fx := newMessageFixture(t)
	ctx := context.Background()
	msg := fx.send(t, fx.formateur, fx.parent.UserID, "Bonjour")

	updated, err := fx.svc.Update(ctx, fx.formateur, msg.ID, &dto.UpdateMessageRequest{Content: "Bonjour, corrigé"})
	if err != nil {
		t.Fatalf("sender update: %v", err)
	}
	if updated.Content != "Bonjour, corrigé" {
		t.Fatalf("expected edited content, got %q", updated.Content)
	}

	// The receiver can read the message but not edit it.
	if _, err := fx.svc.Update(ctx, fx.parent, msg.ID, &dto.UpdateMessageRequest{Content: "détourné"}); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("receiver edit must be denied, got %v", err)
	}

	// Admins may edit any message.
	if _, err := fx.svc.Update(ctx, fx.admin, msg.ID, &dto.UpdateMessageRequest{Content: "modéré"}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestDeleteMessageRequiresSender(t *testing.T) {
	fx := newMessageFixture(t)
	ctx := context.Background()
	msg := fx.send(t, fx.formateur, fx.parent.UserID, "Bonjour")

	if err := fx.svc.Delete(ctx, fx.parent, msg.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("receiver delete must be denied, got %v", err)
	}
	if err := fx.svc.Delete(ctx, fx.formateur, msg.ID); err != nil {
		t.Fatalf("sender delete: %v", err)
	}
	if _, err := fx.svc.GetByID(ctx, fx.admin, msg.ID); !errors.Is(err, apperrors.ErrMessageNotFound) {
		t.Fatalf("deleted message must be gone, got %v", err)
	}
}
