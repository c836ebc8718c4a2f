package services

import (
	"context"
	"time"

	"github.com/nrandria/tutoria/internal/app/models"
	"github.com/nrandria/tutoria/internal/app/repositories"
	"github.com/nrandria/tutoria/internal/pkg/apperrors"
)

// In-memory stores backing the service tests. They honor the same
// sentinel-error contract and page slicing as the pgx repositories.

// paginate slices like the repositories' OFFSET/LIMIT: the total is
// counted over the full filtered set, so a page past the end comes
// back empty.
func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserStore) List(ctx context.Context, params repositories.ListUsersParams) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range f.users {
		if params.Role != nil && u.Role != *params.Role {
			continue
		}
		out = append(out, u)
	}
	return paginate(out, params.Page, params.Limit), int64(len(out)), nil
}

func (f *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, id int64, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.MotDePasse = hash
	return nil
}

func (f *fakeUserStore) LinkStudent(ctx context.Context, parentID, studentID int64) error {
	u, ok := f.users[parentID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if u.HasStudent(studentID) {
		return nil
	}
	u.StudentIDs = append(u.StudentIDs, studentID)
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeOTPStore struct {
	codes map[string]*models.OTP
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: make(map[string]*models.OTP)}
}

func (f *fakeOTPStore) Replace(ctx context.Context, email, code string, expiresAt time.Time) error {
	for e, o := range f.codes {
		if o.Expired(time.Now()) {
			delete(f.codes, e)
		}
	}
	f.codes[email] = &models.OTP{Email: email, Code: code, ExpiresAt: expiresAt}
	return nil
}

func (f *fakeOTPStore) Find(ctx context.Context, email, code string) (*models.OTP, error) {
	otp, ok := f.codes[email]
	if !ok || otp.Code != code {
		return nil, apperrors.ErrInvalidOTP
	}
	return otp, nil
}

func (f *fakeOTPStore) Delete(ctx context.Context, email string) error {
	delete(f.codes, email)
	return nil
}

type fakeStudentStore struct {
	students map[int64]*models.Student
	nextID   int64
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student), nextID: 1}
}

func (f *fakeStudentStore) Create(ctx context.Context, student *models.Student) error {
	for _, s := range f.students {
		if s.Matricule == student.Matricule {
			return apperrors.ErrMatriculeAlreadyExists
		}
	}
	student.ID = f.nextID
	f.nextID++
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudentStore) List(ctx context.Context, params repositories.ListStudentsParams) ([]*models.Student, int64, error) {
	var out []*models.Student
	for _, s := range f.students {
		if params.FormateurID != nil && s.FormateurID != *params.FormateurID {
			continue
		}
		if params.ParentID != nil && (s.ParentID == nil || *s.ParentID != *params.ParentID) {
			continue
		}
		out = append(out, s)
	}
	return paginate(out, params.Page, params.Limit), int64(len(out)), nil
}

func (f *fakeStudentStore) Update(ctx context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentStore) SetFormateur(ctx context.Context, studentID, formateurID int64) error {
	s, ok := f.students[studentID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.FormateurID = formateurID
	return nil
}

func (f *fakeStudentStore) SetParent(ctx context.Context, studentID, parentID int64) error {
	s, ok := f.students[studentID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.ParentID = &parentID
	return nil
}

func (f *fakeStudentStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

type fakeNoteStore struct {
	notes  map[int64]*models.Note
	nextID int64
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{notes: make(map[int64]*models.Note), nextID: 1}
}

func (f *fakeNoteStore) Create(ctx context.Context, note *models.Note) error {
	note.ID = f.nextID
	f.nextID++
	f.notes[note.ID] = note
	return nil
}

func (f *fakeNoteStore) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	n, ok := f.notes[id]
	if !ok {
		return nil, apperrors.ErrNoteNotFound
	}
	return n, nil
}

func (f *fakeNoteStore) List(ctx context.Context, params repositories.ListNotesParams) ([]*models.Note, int64, error) {
	inSet := func(id int64) bool {
		if len(params.StudentIDs) == 0 {
			return true
		}
		for _, v := range params.StudentIDs {
			if v == id {
				return true
			}
		}
		return false
	}

	var out []*models.Note
	for _, n := range f.notes {
		if params.StudentID != nil && n.StudentID != *params.StudentID {
			continue
		}
		if params.FormateurID != nil && n.FormateurID != *params.FormateurID {
			continue
		}
		if params.MinNote != nil && n.Note < *params.MinNote {
			continue
		}
		if params.MaxNote != nil && n.Note > *params.MaxNote {
			continue
		}
		if !inSet(n.StudentID) {
			continue
		}
		out = append(out, n)
	}
	return paginate(out, params.Page, params.Limit), int64(len(out)), nil
}

func (f *fakeNoteStore) Update(ctx context.Context, note *models.Note) error {
	if _, ok := f.notes[note.ID]; !ok {
		return apperrors.ErrNoteNotFound
	}
	f.notes[note.ID] = note
	return nil
}

func (f *fakeNoteStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.notes[id]; !ok {
		return apperrors.ErrNoteNotFound
	}
	delete(f.notes, id)
	return nil
}

type fakeMessageStore struct {
	messages map[int64]*models.Message
	nextID   int64
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{messages: make(map[int64]*models.Message), nextID: 1}
}

func (f *fakeMessageStore) Create(ctx context.Context, msg *models.Message) error {
	msg.ID = f.nextID
	f.nextID++
	f.messages[msg.ID] = msg
	return nil
}

func (f *fakeMessageStore) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, apperrors.ErrMessageNotFound
	}
	return m, nil
}

func (f *fakeMessageStore) List(ctx context.Context, params repositories.ListMessagesParams) ([]*models.Message, int64, error) {
	var out []*models.Message
	for _, m := range f.messages {
		if params.SenderID != nil && m.SenderID != *params.SenderID {
			continue
		}
		if params.ReceiverID != nil && m.ReceiverID != *params.ReceiverID {
			continue
		}
		if params.ParticipantID != nil &&
			m.SenderID != *params.ParticipantID && m.ReceiverID != *params.ParticipantID {
			continue
		}
		out = append(out, m)
	}
	return paginate(out, params.Page, params.Limit), int64(len(out)), nil
}

func (f *fakeMessageStore) Update(ctx context.Context, msg *models.Message) error {
	if _, ok := f.messages[msg.ID]; !ok {
		return apperrors.ErrMessageNotFound
	}
	f.messages[msg.ID] = msg
	return nil
}

func (f *fakeMessageStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.messages[id]; !ok {
		return apperrors.ErrMessageNotFound
	}
	delete(f.messages, id)
	return nil
}

// fakeMailer records sent codes and can simulate delivery failure.
type fakeMailer struct {
	sent    []string
	failAll bool
}

func (f *fakeMailer) SendOTPEmail(toEmail, code string, expiresAt time.Time) error {
	if f.failAll {
		return context.DeadlineExceeded
	}
	f.sent = append(f.sent, code)
	return nil
}
