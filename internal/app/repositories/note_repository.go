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
	"github.com/nrandria/tutoria/internal/pkg/helpers"
	"github.com/nrandria/tutoria/internal/pkg/logger"
)

// NoteRepository handles database operations for grade records
type NoteRepository struct {
	db *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{db: db}
}

func scanNote(row pgx.Row) (*models.Note, error) {
	note := &models.Note{}
	err := row.Scan(
		&note.ID, &note.StudentID, &note.Matiere, &note.Note, &note.Remarques,
		&note.FormateurID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, fmt.Errorf("error scanning note: %w", err)
	}
	return note, nil
}

// Create inserts a new note and sets its ID
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO notes (student_id, matiere, note, remarques, formateur_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		note.StudentID, note.Matiere, note.Note, note.Remarques, note.FormateurID,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating note: %w", err)
	}

	return nil
}

// GetByID retrieves a note by ID
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, student_id, matiere, note, remarques, formateur_id, created_at, updated_at
		FROM notes WHERE id = $1`, id)
	return scanNote(row)
}

// List returns a page of notes matching the filters together with the
// total over the same filters. Score bounds are inclusive.
func (r *NoteRepository) List(ctx context.Context, params ListNotesParams) ([]*models.Note, int64, error) {
	base := squirrel.Select().From("notes").PlaceholderFormat(squirrel.Dollar)

	if params.StudentID != nil {
		base = base.Where(squirrel.Eq{"student_id": *params.StudentID})
	}
	if len(params.StudentIDs) > 0 {
		base = base.Where(squirrel.Eq{"student_id": params.StudentIDs})
	}
	if params.Matiere != nil {
		base = base.Where(squirrel.ILike{"matiere": "%" + *params.Matiere + "%"})
	}
	if params.MinNote != nil {
		base = base.Where(squirrel.GtOrEq{"note": *params.MinNote})
	}
	if params.MaxNote != nil {
		base = base.Where(squirrel.LtOrEq{"note": *params.MaxNote})
	}
	if params.FormateurID != nil {
		base = base.Where(squirrel.Eq{"formateur_id": *params.FormateurID})
	}

	countSql, countArgs, err := base.Columns("count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building note count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting notes: %w", err)
	}
	if total == 0 {
		return []*models.Note{}, 0, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Limit)

	sortBy := "created_at"
	allowedSorts := map[string]string{
		"matiere":   "matiere",
		"note":      "note",
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
		Columns("id", "student_id", "matiere", "note", "remarques", "formateur_id",
			"created_at", "updated_at").
		OrderBy(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building note list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning note row")
			continue
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("database iteration error: %w", err)
	}

	return notes, total, nil
}

// Update overwrites the mutable note fields
func (r *NoteRepository) Update(ctx context.Context, note *models.Note) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE notes
		SET matiere = $1, note = $2, remarques = $3, updated_at = now()
		WHERE id = $4`,
		note.Matiere, note.Note, note.Remarques, note.ID)
	if err != nil {
		return fmt.Errorf("error updating note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// Delete removes a note
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}
