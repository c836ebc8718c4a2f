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

const userColumns = "id, nom, prenom, email, mot_de_passe, role, telephone, COALESCE(student_ids, '{}'), avatar_url, created_at, updated_at"

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Nom, &user.Prenom, &user.Email, &user.MotDePasse,
		&user.Role, &user.Telephone, &user.StudentIDs, &user.AvatarURL,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return user, nil
}

// Create inserts a new user and sets its ID. A duplicate email surfaces
// as ErrEmailAlreadyExists through the unique index, which also closes
// the register/complete-register re-check race with a clean conflict.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (nom, prenom, email, mot_de_passe, role, telephone, student_ids, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, '{}'), $8)
		RETURNING id, created_at, updated_at`,
		user.Nom, user.Prenom, user.Email, user.MotDePasse, user.Role,
		user.Telephone, user.StudentIDs, user.AvatarURL,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrEmailAlreadyExists, user.Email)
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail retrieves a user by email (case-sensitive exact match)
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// List returns a page of users matching the filters together with the
// total over the same filters.
func (r *UserRepository) List(ctx context.Context, params ListUsersParams) ([]*models.User, int64, error) {
	base := squirrel.Select().From("users").PlaceholderFormat(squirrel.Dollar)

	if params.Nom != nil {
		base = base.Where(squirrel.ILike{"nom": "%" + *params.Nom + "%"})
	}
	if params.Prenom != nil {
		base = base.Where(squirrel.ILike{"prenom": "%" + *params.Prenom + "%"})
	}
	if params.Email != nil {
		base = base.Where(squirrel.ILike{"email": "%" + *params.Email + "%"})
	}
	if params.Role != nil {
		base = base.Where(squirrel.Eq{"role": *params.Role})
	}

	countSql, countArgs, err := base.Columns("count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building user count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}
	if total == 0 {
		return []*models.User{}, 0, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Limit)

	sortBy := "created_at"
	allowedSorts := map[string]string{
		"nom":       "nom",
		"prenom":    "prenom",
		"email":     "email",
		"role":      "role",
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
		Columns("id", "nom", "prenom", "email", "mot_de_passe", "role", "telephone",
			"COALESCE(student_ids, '{}')", "avatar_url", "created_at", "updated_at").
		OrderBy(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building user list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning user row")
			continue
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("database iteration error: %w", err)
	}

	return users, total, nil
}

// Update overwrites the mutable profile fields
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET nom = $1, prenom = $2, telephone = $3, avatar_url = $4, updated_at = now()
		WHERE id = $5`,
		user.Nom, user.Prenom, user.Telephone, user.AvatarURL, user.ID)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword overwrites the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET mot_de_passe = $1, updated_at = now() WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// LinkStudent appends a student id to a parent's linked-student set.
// Idempotent: re-linking the same student leaves the set unchanged.
func (r *UserRepository) LinkStudent(ctx context.Context, parentID, studentID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET student_ids = array_append(COALESCE(student_ids, '{}'), $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(COALESCE(student_ids, '{}')))`,
		parentID, studentID)
	if err != nil {
		return fmt.Errorf("error linking student to parent: %w", err)
	}
	return nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
