package access

import (
	"context"

	"github.com/nrandria/tutoria/internal/app/models"
	"github.com/nrandria/tutoria/internal/app/repositories"
)

// Principal is the authenticated caller extracted from a session token.
type Principal struct {
	UserID int64
	Role   models.Role
}

// ScopeService narrows list filters and answers per-record visibility
// questions based on the caller's role. It is pure logic except for
// resolving a parent's linked-student set, which needs the user store.
type ScopeService struct {
	userStore repositories.UserStore
}

// NewScopeService creates a new ScopeService
func NewScopeService(userStore repositories.UserStore) *ScopeService {
	return &ScopeService{userStore: userStore}
}

// ScopeStudents restricts a student listing to what the principal may
// see. Admins see everything, formateurs their own students, parents
// the students linked to them.
func (s *ScopeService) ScopeStudents(p Principal, params *repositories.ListStudentsParams) {
	switch p.Role {
	case models.RoleFormateur:
		params.FormateurID = &p.UserID
	case models.RoleParent:
		params.ParentID = &p.UserID
	}
}

// ScopeNotes restricts a note listing to what the principal may see.
// For parents the linked-student set is resolved from the store; an
// empty set means an empty result and the caller must not query at all,
// signalled by the empty return value.
func (s *ScopeService) ScopeNotes(ctx context.Context, p Principal, params *repositories.ListNotesParams) (empty bool, err error) {
	switch p.Role {
	case models.RoleFormateur:
		params.FormateurID = &p.UserID
		return false, nil
	case models.RoleParent:
		user, err := s.userStore.GetByID(ctx, p.UserID)
		if err != nil {
			return false, err
		}
		if len(user.StudentIDs) == 0 {
			return true, nil
		}
		if params.StudentID != nil && !user.HasStudent(*params.StudentID) {
			return true, nil
		}
		params.StudentIDs = user.StudentIDs
		return false, nil
	default:
		return false, nil
	}
}

// ScopeMessages restricts a message listing to conversations the
// principal participates in. Admins are unrestricted.
func (s *ScopeService) ScopeMessages(p Principal, params *repositories.ListMessagesParams) {
	if p.Role != models.RoleAdmin {
		params.ParticipantID = &p.UserID
	}
}

// CanViewStudent reports whether the principal may read the student.
func (s *ScopeService) CanViewStudent(ctx context.Context, p Principal, student *models.Student) (bool, error) {
	switch p.Role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleFormateur:
		return student.FormateurID == p.UserID, nil
	case models.RoleParent:
		return student.ParentID != nil && *student.ParentID == p.UserID, nil
	}
	return false, nil
}

// CanViewNote reports whether the principal may read the note.
func (s *ScopeService) CanViewNote(ctx context.Context, p Principal, note *models.Note) (bool, error) {
	switch p.Role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleFormateur:
		return note.FormateurID == p.UserID, nil
	case models.RoleParent:
		user, err := s.userStore.GetByID(ctx, p.UserID)
		if err != nil {
			return false, err
		}
		return user.HasStudent(note.StudentID), nil
	}
	return false, nil
}

// CanViewMessage reports whether the principal may read the message.
func (s *ScopeService) CanViewMessage(p Principal, msg *models.Message) bool {
	if p.Role == models.RoleAdmin {
		return true
	}
	return msg.SenderID == p.UserID || msg.ReceiverID == p.UserID
}

// OwnsNote reports whether the principal authored the note. Admins are
// treated as owners for modification purposes.
func (s *ScopeService) OwnsNote(p Principal, note *models.Note) bool {
	if p.Role == models.RoleAdmin {
		return true
	}
	return note.FormateurID == p.UserID
}

// OwnsStudent reports whether the principal is the student's formateur.
// Admins are treated as owners for modification purposes.
func (s *ScopeService) OwnsStudent(p Principal, student *models.Student) bool {
	if p.Role == models.RoleAdmin {
		return true
	}
	return student.FormateurID == p.UserID
}

// OwnsMessage reports whether the principal may modify the message.
// Only the sender or an admin may.
func (s *ScopeService) OwnsMessage(p Principal, msg *models.Message) bool {
	if p.Role == models.RoleAdmin {
		return true
	}
	return msg.SenderID == p.UserID
}
