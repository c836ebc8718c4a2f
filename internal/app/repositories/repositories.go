package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	StudentRepository *StudentRepository
	NoteRepository    *NoteRepository
	MessageRepository *MessageRepository
	OTPRepository     OTPStore
}

// NewRepositories initializes all repositories. When a Redis client is
// provided, one-time codes live in Redis; otherwise they fall back to
// the Postgres table.
func NewRepositories(db *pgxpool.Pool, redisClient *redis.Client) *Repositories {
	var otpStore OTPStore = NewOTPRepository(db)
	if redisClient != nil {
		otpStore = NewRedisOTPRepository(redisClient)
	}

	return &Repositories{
		UserRepository:    NewUserRepository(db),
		StudentRepository: NewStudentRepository(db),
		NoteRepository:    NewNoteRepository(db),
		MessageRepository: NewMessageRepository(db),
		OTPRepository:     otpStore,
	}
}
