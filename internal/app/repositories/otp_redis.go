package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/nrandria/tutoria/internal/app/models"
	"github.com/nrandria/tutoria/internal/pkg/apperrors"
	"github.com/redis/go-redis/v9"
)

// RedisOTPRepository keeps one-time password codes in Redis with a TTL
// matching their validity window, so expired codes vanish on their own.
// Used instead of the Postgres store when a Redis address is configured.
type RedisOTPRepository struct {
	client *redis.Client
}

// NewRedisOTPRepository creates a new RedisOTPRepository
func NewRedisOTPRepository(client *redis.Client) *RedisOTPRepository {
	return &RedisOTPRepository{client: client}
}

func otpKey(email string) string {
	return "otp:" + email
}

// Replace overwrites any existing code for the email with the new one
func (r *RedisOTPRepository) Replace(ctx context.Context, email, code string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("otp expiry is not in the future")
	}
	if err := r.client.Set(ctx, otpKey(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("error storing otp code: %w", err)
	}
	return nil
}

// Find retrieves the stored code for an exact email and code match
func (r *RedisOTPRepository) Find(ctx context.Context, email, code string) (*models.OTP, error) {
	key := otpKey(email)
	stored, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.ErrInvalidOTP
		}
		return nil, fmt.Errorf("error retrieving otp code: %w", err)
	}
	if stored != code {
		return nil, apperrors.ErrInvalidOTP
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading otp ttl: %w", err)
	}

	return &models.OTP{
		Email:     email,
		Code:      stored,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// Delete removes the code for the email
func (r *RedisOTPRepository) Delete(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, otpKey(email)).Err(); err != nil {
		return fmt.Errorf("error deleting otp code: %w", err)
	}
	return nil
}
