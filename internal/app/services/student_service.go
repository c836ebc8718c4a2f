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
	"github.com/nrandria/tutoria/internal/pkg/dberrors"
)

// StudentService handles student records with role-scoped visibility
type StudentService struct {
	studentStore repositories.StudentStore
	userStore    repositories.UserStore
	scope        *access.ScopeService
	logger       zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentStore repositories.StudentStore,
	userStore repositories.UserStore,
	scope *access.ScopeService,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentStore: studentStore,
		userStore:    userStore,
		scope:        scope,
		logger:       logger,
	}
}

// List returns the page of students the principal may see
func (s *StudentService) List(ctx context.Context, p access.Principal, params repositories.ListStudentsParams) ([]*models.Student, int64, error) {
	s.scope.ScopeStudents(p, &params)
	return s.studentStore.List(ctx, params)
}

// GetByID retrieves a student. A record outside the principal's scope
// is reported as not found, same as a missing one.
func (s *StudentService) GetByID(ctx context.Context, p access.Principal, id int64) (*models.Student, error) {
	student, err := s.studentStore.GetByID(ctx, id)
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

	return student, nil
}

// Create adds a student. A formateur caller who omits FormateurID
// becomes the owner; naming another formateur requires admin.
func (s *StudentService) Create(ctx context.Context, p access.Principal, req *dto.CreateStudentRequest) (*models.Student, error) {
	formateurID := req.FormateurID
	if formateurID == 0 {
		if p.Role != models.RoleFormateur {
			return nil, apperrors.NewValidationError("formateurId is required")
		}
		formateurID = p.UserID
	}
	if p.Role == models.RoleFormateur && formateurID != p.UserID {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.requireRole(ctx, formateurID, models.RoleFormateur); err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		if err := s.requireRole(ctx, *req.ParentID, models.RoleParent); err != nil {
			return nil, err
		}
	}

	student := &models.Student{
		Nom:         req.Nom,
		Prenom:      req.Prenom,
		Age:         req.Age,
		Matricule:   req.Matricule,
		FormateurID: formateurID,
		ParentID:    req.ParentID,
		Remarques:   req.Remarques,
	}

	if err := s.studentStore.Create(ctx, student); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrMatriculeAlreadyExists
		}
		return nil, err
	}

	if student.ParentID != nil {
		if err := s.userStore.LinkStudent(ctx, *student.ParentID, student.ID); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Int64("studentId", student.ID).Int64("formateurId", formateurID).Msg("Student created")
	return student, nil
}

// Update changes the mutable student fields within the caller's scope
func (s *StudentService) Update(ctx context.Context, p access.Principal, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.GetByID(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !s.scope.OwnsStudent(p, student) {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Nom != nil {
		student.Nom = *req.Nom
	}
	if req.Prenom != nil {
		student.Prenom = *req.Prenom
	}
	if req.Age != nil {
		student.Age = *req.Age
	}
	if req.Remarques != nil {
		student.Remarques = req.Remarques
	}

	if err := s.studentStore.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// Delete removes a student within the caller's scope
func (s *StudentService) Delete(ctx context.Context, p access.Principal, id int64) error {
	student, err := s.GetByID(ctx, p, id)
	if err != nil {
		return err
	}
	if !s.scope.OwnsStudent(p, student) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.studentStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("studentId", id).Msg("Student deleted")
	return nil
}

// AssignFormateur rebinds the student to another formateur. The
// referenced user must exist and hold the formateur role.
func (s *StudentService) AssignFormateur(ctx context.Context, p access.Principal, studentID, formateurID int64) (*models.Student, error) {
	student, err := s.GetByID(ctx, p, studentID)
	if err != nil {
		return nil, err
	}

	if err := s.requireRole(ctx, formateurID, models.RoleFormateur); err != nil {
		return nil, err
	}

	if err := s.studentStore.SetFormateur(ctx, studentID, formateurID); err != nil {
		return nil, err
	}

	student.FormateurID = formateurID
	return student, nil
}

// AssignParent binds the student to a parent and mirrors the link into
// the parent's linked-student set. Re-assigning the same parent is
// idempotent.
func (s *StudentService) AssignParent(ctx context.Context, p access.Principal, studentID, parentID int64) (*models.Student, error) {
	student, err := s.GetByID(ctx, p, studentID)
	if err != nil {
		return nil, err
	}

	if err := s.requireRole(ctx, parentID, models.RoleParent); err != nil {
		return nil, err
	}

	if err := s.studentStore.SetParent(ctx, studentID, parentID); err != nil {
		return nil, err
	}
	if err := s.userStore.LinkStudent(ctx, parentID, studentID); err != nil {
		return nil, err
	}

	student.ParentID = &parentID
	return student, nil
}

// requireRole checks that the referenced user exists and has the role
func (s *StudentService) requireRole(ctx context.Context, userID int64, role models.Role) error {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.NewValidationError("referenced user does not exist")
		}
		return err
	}
	if user.Role != role {
		return apperrors.NewValidationError("referenced user does not have role " + string(role))
	}
	return nil
}
