package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nrandria/tutoria/internal/app/models"
	"github.com/nrandria/tutoria/internal/pkg/apperrors"
)

// OTPRepository manages one-time password codes in the database.
// Only one live code exists per email; issuing a new code replaces
// any previous one.
type OTPRepository struct {
	db *pgxpool.Pool
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{
		db: db,
	}
}

// Replace removes any existing codes for the email and stores the new
// one. Expired rows for other emails are swept in the same statement,
// standing in for the TTL eviction the Redis store gets for free.
func (r *OTPRepository) Replace(ctx context.Context, email, code string, expiresAt time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting otp transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM otps WHERE email = $1 OR expires_at <= NOW()`, email); err != nil {
		return fmt.Errorf("error clearing previous and expired otp codes: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO otps (email, code, expires_at)
		VALUES ($1, $2, $3)`,
		email, code, expiresAt)
	if err != nil {
		return fmt.Errorf("error storing otp code: %w", err)
	}

	return tx.Commit(ctx)
}

// Find retrieves the stored code for an exact email and code match
func (r *OTPRepository) Find(ctx context.Context, email, code string) (*models.OTP, error) {
	otp := &models.OTP{}
	err := r.db.QueryRow(ctx, `
		SELECT id, email, code, expires_at
		FROM otps
		WHERE email = $1 AND code = $2`,
		email, code,
	).Scan(&otp.ID, &otp.Email, &otp.Code, &otp.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidOTP
		}
		return nil, fmt.Errorf("error retrieving otp code: %w", err)
	}
	return otp, nil
}

// Delete removes all codes for the email
func (r *OTPRepository) Delete(ctx context.Context, email string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM otps WHERE email = $1`, email); err != nil {
		return fmt.Errorf("error deleting otp codes: %w", err)
	}
	return nil
}
