package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nrandria/tutoria/internal/app/models"
	"github.com/nrandria/tutoria/internal/pkg/apperrors"
	"github.com/nrandria/tutoria/internal/pkg/dberrors"
	"github.com/nrandria/tutoria/internal/pkg/helpers"
	"github.com/nrandria/tutoria/internal/pkg/logger"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.Nom, &student.Prenom, &student.Age, &student.Matricule,
		&student.FormateurID, &student.ParentID, &student.Remarques,
		&student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student: %w", err)
	}
	return student, nil
}

// Create inserts a new student and sets its ID. A duplicate matricule
// surfaces as ErrMatriculeAlreadyExists through the unique index.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO students (nom, prenom, age, matricule, formateur_id, parent_id, remarques)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		student.Nom, student.Prenom, student.Age, student.Matricule,
		student.FormateurID, student.ParentID, student.Remarques,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrMatriculeAlreadyExists, student.Matricule)
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, nom, prenom, age, matricule, formateur_id, parent_id, remarques, created_at, updated_at
		FROM students WHERE id = $1`, id)
	return scanStudent(row)
}

// List returns a page of students matching the filters together with
// the total over the same filters. The access-scoping layer injects the
// formateur/parent restriction into params before this runs.
func (r *StudentRepository) List(ctx context.Context, params ListStudentsParams) ([]*models.Student, int64, error) {
	base := squirrel.Select().From("students").PlaceholderFormat(squirrel.Dollar)

	if params.Nom != nil {
		base = base.Where(squirrel.ILike{"nom": "%" + *params.Nom + "%"})
	}
	if params.Prenom != nil {
		base = base.Where(squirrel.ILike{"prenom": "%" + *params.Prenom + "%"})
	}
	if params.Matricule != nil {
		base = base.Where(squirrel.Eq{"matricule": *params.Matricule})
	}
	if params.FormateurID != nil {
		base = base.Where(squirrel.Eq{"formateur_id": *params.FormateurID})
	}
	if params.ParentID != nil {
		base = base.Where(squirrel.Eq{"parent_id": *params.ParentID})
	}

	countSql, countArgs, err := base.Columns("count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building student count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}
	if total == 0 {
		return []*models.Student{}, 0, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Limit)

	sortBy := "created_at"
	allowedSorts := map[string]string{
		"nom":       "nom",
		"prenom":    "prenom",
		"age":       "age",
		"matricule": "matricule",
		"createdAt": "created_at",
	}
	if col, ok := allowedSorts[params.SortBy]; ok {
		sortBy = col
	}
	sortOrder := "ASC"
	if strings.ToUpper(params.SortOrder) == "DESC" {
		sortOrder = "DESC"
	}

	sqlStr, args, err := base.
		Columns("id", "nom", "prenom", "age", "matricule", "formateur_id", "parent_id",
			"remarques", "created_at", "updated_at").
		OrderBy(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building student list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			continue
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("database iteration error: %w", err)
	}

	return students, total, nil
}

// Update overwrites the mutable student fields
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students
		SET nom = $1, prenom = $2, age = $3, remarques = $4, updated_at = now()
		WHERE id = $5`,
		student.Nom, student.Prenom, student.Age, student.Remarques, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetFormateur reassigns the student's owning tutor
func (r *StudentRepository) SetFormateur(ctx context.Context, studentID, formateurID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students SET formateur_id = $1, updated_at = now() WHERE id = $2`,
		formateurID, studentID)
	if err != nil {
		return fmt.Errorf("error assigning formateur: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetParent sets the student's parent reference
func (r *StudentRepository) SetParent(ctx context.Context, studentID, parentID int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students SET parent_id = $1, updated_at = now() WHERE id = $2`,
		parentID, studentID)
	if err != nil {
		return fmt.Errorf("error assigning parent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
