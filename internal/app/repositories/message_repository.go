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

// MessageRepository handles database operations for direct messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func scanMessage(row pgx.Row) (*models.Message, error) {
	msg := &models.Message{}
	err := row.Scan(
		&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.Content,
		&msg.CreatedAt, &msg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("error scanning message: %w", err)
	}
	return msg, nil
}

// Create inserts a new message and sets its ID
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO messages (sender_id, receiver_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		msg.SenderID, msg.ReceiverID, msg.Content,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}

	return nil
}

// GetByID retrieves a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, sender_id, receiver_id, content, created_at, updated_at
		FROM messages WHERE id = $1`, id)
	return scanMessage(row)
}

// List returns a page of messages matching the filters together with the
// total over the same filters. ParticipantID matches either side of the
// conversation.
func (r *MessageRepository) List(ctx context.Context, params ListMessagesParams) ([]*models.Message, int64, error) {
	base := squirrel.Select().From("messages").PlaceholderFormat(squirrel.Dollar)

	if params.SenderID != nil {
		base = base.Where(squirrel.Eq{"sender_id": *params.SenderID})
	}
	if params.ReceiverID != nil {
		base = base.Where(squirrel.Eq{"receiver_id": *params.ReceiverID})
	}
	if params.Content != nil {
		base = base.Where(squirrel.ILike{"content": "%" + *params.Content + "%"})
	}
	if params.ParticipantID != nil {
		base = base.Where(squirrel.Or{
			squirrel.Eq{"sender_id": *params.ParticipantID},
			squirrel.Eq{"receiver_id": *params.ParticipantID},
		})
	}

	countSql, countArgs, err := base.Columns("count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building message count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting messages: %w", err)
	}
	if total == 0 {
		return []*models.Message{}, 0, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(params.Page, params.Limit)

	sortBy := "created_at"
	allowedSorts := map[string]string{
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
		Columns("id", "sender_id", "receiver_id", "content", "created_at", "updated_at").
		OrderBy(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Limit(uint64(limit)).Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building message list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*models.Message, 0)
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning message row")
			continue
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("database iteration error: %w", err)
	}

	return messages, total, nil
}

// Update overwrites the message content
func (r *MessageRepository) Update(ctx context.Context, msg *models.Message) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE messages SET content = $1, updated_at = now() WHERE id = $2`,
		msg.Content, msg.ID)
	if err != nil {
		return fmt.Errorf("error updating message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}

// Delete removes a message
func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}
