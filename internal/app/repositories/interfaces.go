package repositories

import (
	"context"
	"time"

	"github.com/nrandria/tutoria/internal/app/models"
)

// Capability-scoped store interfaces. Services depend on these rather
// than on concrete pgx repositories so tests can substitute in-memory
// fakes.

// UserStore persists identity records.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, params ListUsersParams) ([]*models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	LinkStudent(ctx context.Context, parentID, studentID int64) error
	Delete(ctx context.Context, id int64) error
}

// StudentStore persists student records.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, params ListStudentsParams) ([]*models.Student, int64, error)
	Update(ctx context.Context, student *models.Student) error
	SetFormateur(ctx context.Context, studentID, formateurID int64) error
	SetParent(ctx context.Context, studentID, parentID int64) error
	Delete(ctx context.Context, id int64) error
}

// NoteStore persists grade records.
type NoteStore interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	List(ctx context.Context, params ListNotesParams) ([]*models.Note, int64, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id int64) error
}

// MessageStore persists inter-party messages.
type MessageStore interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	List(ctx context.Context, params ListMessagesParams) ([]*models.Message, int64, error)
	Update(ctx context.Context, message *models.Message) error
	Delete(ctx context.Context, id int64) error
}

// OTPStore persists one-time codes keyed by email. Replace supersedes
// any prior code for the address; Find matches email and code together.
type OTPStore interface {
	Replace(ctx context.Context, email, code string, expiresAt time.Time) error
	Find(ctx context.Context, email, code string) (*models.OTP, error)
	Delete(ctx context.Context, email string) error
}

// ListUsersParams holds filters and pagination for user listing.
// Nom, Prenom and Email are case-insensitive substring filters; Role is
// an exact match.
type ListUsersParams struct {
	Nom       *string
	Prenom    *string
	Email     *string
	Role      *models.Role
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// ListStudentsParams holds filters and pagination for student listing.
type ListStudentsParams struct {
	Nom         *string
	Prenom      *string
	Matricule   *string
	FormateurID *int64
	ParentID    *int64
	SortBy      string
	SortOrder   string
	Page        int
	Limit       int
}

// ListNotesParams holds filters and pagination for note listing.
// StudentIDs, when non-empty, restricts results to that set in addition
// to any StudentID filter; MinNote/MaxNote are inclusive bounds.
type ListNotesParams struct {
	StudentID   *int64
	StudentIDs  []int64
	Matiere     *string
	MinNote     *float64
	MaxNote     *float64
	FormateurID *int64
	SortBy      string
	SortOrder   string
	Page        int
	Limit       int
}

// ListMessagesParams holds filters and pagination for message listing.
// ParticipantID, when set, requires the user to be sender or receiver.
type ListMessagesParams struct {
	SenderID      *int64
	ReceiverID    *int64
	Content       *string
	ParticipantID *int64
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}
