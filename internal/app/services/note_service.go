package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/nrandria/tutoria/internal/app/access"
	"github.com/nrandria/tutoria/internal/app/models"
	"github.com/nrandria/tutoria/internal/app/models/dto"
	"github.com/nrandria/tutoria/internal/app/repositories"
	"github.com/nrandria/tutoria/internal/pkg/apperrors"
)

// NoteService handles grade records with role-scoped visibility
type NoteService struct {
	noteStore    repositories.NoteStore
	studentStore repositories.StudentStore
	scope        *access.ScopeService
	logger       zerolog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(
	noteStore repositories.NoteStore,
	studentStore repositories.StudentStore,
	scope *access.ScopeService,
	logger zerolog.Logger,
) *NoteService {
	return &NoteService{
		noteStore:    noteStore,
		studentStore: studentStore,
		scope:        scope,
		logger:       logger,
	}
}

// List returns the page of notes the principal may see. A parent with
// no linked students gets an empty page without touching the store.
func (s *NoteService) List(ctx context.Context, p access.Principal, params repositories.ListNotesParams) ([]*models.Note, int64, error) {
	empty, err := s.scope.ScopeNotes(ctx, p, &params)
	if err != nil {
		return nil, 0, err
	}
	if empty {
		return []*models.Note{}, 0, nil
	}
	return s.noteStore.List(ctx, params)
}

// GetByID retrieves a note. A record outside the principal's scope is
// reported as not found.
func (s *NoteService) GetByID(ctx context.Context, p access.Principal, id int64) (*models.Note, error) {
	note, err := s.noteStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	visible, err := s.scope.CanViewNote(ctx, p, note)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.ErrNoteNotFound
	}

	return note, nil
}

// Create adds a grade record authored by the principal. The student
// must be within the caller's scope.
func (s *NoteService) Create(ctx context.Context, p access.Principal, req *dto.CreateNoteRequest) (*models.Note, error) {
	student, err := s.studentStore.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	visible, err := s.scope.CanViewStudent(ctx, p, student)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.ErrStudentNotFound
	}

	formateurID := p.UserID
	if p.Role == models.RoleAdmin {
		formateurID = student.FormateurID
	}

	note := &models.Note{
		StudentID:   req.StudentID,
		Matiere:     req.Matiere,
		Note:        *req.Note,
		Remarques:   req.Remarques,
		FormateurID: formateurID,
	}

	if err := s.noteStore.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("noteId", note.ID).Int64("studentId", note.StudentID).Msg("Note created")
	return note, nil
}

// Update changes a note the principal authored
func (s *NoteService) Update(ctx context.Context, p access.Principal, id int64, req *dto.UpdateNoteRequest) (*models.Note, error) {
	note, err := s.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !s.scope.OwnsNote(p, note) {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Matiere != nil {
		note.Matiere = *req.Matiere
	}
	if req.Note != nil {
		note.Note = *req.Note
	}
	if req.Remarques != nil {
		note.Remarques = req.Remarques
	}

	if err := s.noteStore.Update(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// Delete removes a note the principal authored
func (s *NoteService) Delete(ctx context.Context, p access.Principal, id int64) error {
	note, err := s.GetByID(ctx, p, id)
	if err != nil {
		return err
	}
	if !s.scope.OwnsNote(p, note) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.noteStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("noteId", id).Msg("Note deleted")
	return nil
}
