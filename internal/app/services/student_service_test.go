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

type studentFixture struct {
	svc       *StudentService
	users     *fakeUserStore
	students  *fakeStudentStore
	admin     access.Principal
	formateur access.Principal
	parent    access.Principal
}

func newStudentFixture(t *testing.T) *studentFixture {
	t.Helper()
	users := newFakeUserStore()
	students := newFakeStudentStore()
	scope := access.NewScopeService(users)
	svc := NewStudentService(students, users, scope, zerolog.Nop())

	ctx := context.Background()
	adminUser := &models.User{Nom: "A", Prenom: "A", Email: "admin@example.com", Role: models.RoleAdmin}
	formateurUser := &models.User{Nom: "F", Prenom: "F", Email: "tutor@example.com", Role: models.RoleFormateur}
	parentUser := &models.User{Nom: "P", Prenom: "P", Email: "parent@example.com", Role: models.RoleParent}
	for _, u := range []*models.User{adminUser, formateurUser, parentUser} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	return &studentFixture{
		svc:       svc,
		users:     users,
		students:  students,
		admin:     access.Principal{UserID: adminUser.ID, Role: models.RoleAdmin},
		formateur: access.Principal{UserID: formateurUser.ID, Role: models.RoleFormateur},
		parent:    access.Principal{UserID: parentUser.ID, Role: models.RoleParent},
	}
}

func (fx *studentFixture) createStudent(t *testing.T, matricule string) *models.Student {
	t.Helper()
	student, err := fx.svc.Create(context.Background(), fx.formateur, &dto.CreateStudentRequest{
		Nom:       "Petit",
		Prenom:    "Chloé",
		Age:       10,
		Matricule: matricule,
	})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	return student
}

func TestCreateStudentDefaultsToCallingFormateur(t *testing.T) {
	fx := newStudentFixture(t)
	student := fx.createStudent(t, "MAT-001")

	if student.FormateurID != fx.formateur.UserID {
		t.Fatalf("expected owner %d, got %d", fx.formateur.UserID, student.FormateurID)
	}
}

func TestCreateStudentDuplicateMatricule(t *testing.T) {
	fx := newStudentFixture(t)
	fx.createStudent(t, "MAT-001")

	_, err := fx.svc.Create(context.Background(), fx.formateur, &dto.CreateStudentRequest{
		Nom:       "Petit",
		Prenom:    "Emma",
		Age:       9,
		Matricule: "MAT-001",
	})
	if !errors.Is(err, apperrors.ErrMatriculeAlreadyExists) {
		t.Fatalf("expected ErrMatriculeAlreadyExists, got %v", err)
	}
}

func TestListStudentsIsScopedByRole(t *testing.T) {
	fx := newStudentFixture(t)
	fx.createStudent(t, "MAT-001")

	// Another formateur owns nothing and must see nothing.
	otherUser := &models.User{Nom: "G", Prenom: "G", Email: "tutor2@example.com", Role: models.RoleFormateur}
	if err := fx.users.Create(context.Background(), otherUser); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	other := access.Principal{UserID: otherUser.ID, Role: models.RoleFormateur}

	ownerList, _, err := fx.svc.List(context.Background(), fx.formateur, repositories.ListStudentsParams{})
	if err != nil {
		t.Fatalf("list as owner: %v", err)
	}
	if len(ownerList) != 1 {
		t.Fatalf("owner must see their student, got %d", len(ownerList))
	}

	otherList, _, err := fx.svc.List(context.Background(), other, repositories.ListStudentsParams{})
	if err != nil {
		t.Fatalf("list as other formateur: %v", err)
	}
	if len(otherList) != 0 {
		t.Fatalf("other formateur must see nothing, got %d", len(otherList))
	}

	adminList, _, err := fx.svc.List(context.Background(), fx.admin, repositories.ListStudentsParams{})
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if len(adminList) != 1 {
		t.Fatalf("admin must see everything, got %d", len(adminList))
	}
}

func TestListStudentsPageBeyondLastIsEmptyWithFullTotal(t *testing.T) {
	fx := newStudentFixture(t)
	fx.createStudent(t, "MAT-001")
	fx.createStudent(t, "MAT-002")

	students, total, err := fx.svc.List(context.Background(), fx.admin, repositories.ListStudentsParams{
		Page:  5,
		Limit: 10,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(students) != 0 {
		t.Fatalf("page past the end must be empty, got %d rows", len(students))
	}
	if total != 2 {
		t.Fatalf("total must count the full filtered set, got %d", total)
	}
}

func TestGetStudentOutsideScopeIsNotFound(t *testing.T) {
	fx := newStudentFixture(t)
	student := fx.createStudent(t, "MAT-001")

	if _, err := fx.svc.GetByID(context.Background(), fx.parent, student.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("scoped-out student must read as not found, got %v", err)
	}
}

func TestAssignFormateurValidatesRole(t *testing.T) {
	fx := newStudentFixture(t)
	student := fx.createStudent(t, "MAT-001")

	_, err := fx.svc.AssignFormateur(context.Background(), fx.admin, student.ID, fx.parent.UserID)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("assigning a parent as formateur must fail validation, got %v", err)
	}

	_, err = fx.svc.AssignFormateur(context.Background(), fx.admin, student.ID, 9999)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("assigning a missing user must fail validation, got %v", err)
	}
}

func TestAssignParentIsIdempotent(t *testing.T) {
	fx := newStudentFixture(t)
	student := fx.createStudent(t, "MAT-001")

	for i := 0; i < 2; i++ {
		if _, err := fx.svc.AssignParent(context.Background(), fx.formateur, student.ID, fx.parent.UserID); err != nil {
			t.Fatalf("assign parent (round %d): %v", i+1, err)
		}
	}

	parentUser, err := fx.users.GetByID(context.Background(), fx.parent.UserID)
	if err != nil {
		t.Fatalf("get parent: %v", err)
	}
	if len(parentUser.StudentIDs) != 1 {
		t.Fatalf("linked-student set must not duplicate, got %v", parentUser.StudentIDs)
	}
	if student.ParentID == nil || *student.ParentID != fx.parent.UserID {
		t.Fatalf("student parent reference not set, got %v", student.ParentID)
	}
}

func TestAssignParentValidatesRole(t *testing.T) {
	fx := newStudentFixture(t)
	student := fx.createStudent(t, "MAT-001")

	_, err := fx.svc.AssignParent(context.Background(), fx.formateur, student.ID, fx.formateur.UserID)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("assigning a formateur as parent must fail validation, got %v", err)
	}
}

func TestParentSeesLinkedStudent(t *testing.T) {
	fx := newStudentFixture(t)
	student := fx.createStudent(t, "MAT-001")

	if _, err := fx.svc.AssignParent(context.Background(), fx.formateur, student.ID, fx.parent.UserID); err != nil {
		t.Fatalf("assign parent: %v", err)
	}

	got, err := fx.svc.GetByID(context.Background(), fx.parent, student.ID)
	if err != nil {
		t.Fatalf("linked parent must see the student: %v", err)
	}
	if got.ID != student.ID {
		t.Fatalf("expected student %d, got %d", student.ID, got.ID)
	}
}

func TestUpdateStudentRequiresOwnership(t *testing.T) {
	fx := newStudentFixture(t)
	student := fx.createStudent(t, "MAT-001")

	newNom := "Renamed"
	updated, err := fx.svc.Update(context.Background(), fx.formateur, student.ID, &dto.UpdateStudentRequest{Nom: &newNom})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Nom != "Renamed" {
		t.Fatalf("expected renamed student, got %q", updated.Nom)
	}

	otherUser := &models.User{Nom: "G", Prenom: "G", Email: "tutor2@example.com", Role: models.RoleFormateur}
	if err := fx.users.Create(context.Background(), otherUser); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	other := access.Principal{UserID: otherUser.ID, Role: models.RoleFormateur}

	if _, err := fx.svc.Update(context.Background(), other, student.ID, &dto.UpdateStudentRequest{Nom: &newNom}); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("non-owner update must read as not found, got %v", err)
	}
}

func TestDeleteStudent(t *testing.T) {
	fx := newStudentFixture(t)
	student := fx.createStudent(t, "MAT-001")

	if err := fx.svc.Delete(context.Background(), fx.formateur, student.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := fx.svc.GetByID(context.Background(), fx.admin, student.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("deleted student must be gone, got %v", err)
	}
}
