package models

import (
	"time"
)

// User defines the user model based on the 'users' table.
// StudentIDs is only meaningful for role=parent: it lists the students
// linked to that parent and is kept consistent with Student.ParentID.
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`
	Nom        string    `json:"nom" db:"nom" example:"Rakoto"`
	Prenom     string    `json:"prenom" db:"prenom" example:"Jean"`
	Email      string    `json:"email" db:"email" example:"jean.rakoto@tutoria.mg"`
	MotDePasse string    `json:"-" db:"mot_de_passe"` // bcrypt hash, never serialized
	Role       Role      `json:"role" db:"role" example:"formateur"`
	Telephone  *string   `json:"telephone,omitempty" db:"telephone" example:"+261340000000"`
	StudentIDs []int64   `json:"studentIds,omitempty" db:"student_ids"`
	AvatarURL  *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// HasStudent reports whether the given student id is already linked to
// this (parent) user.
func (u *User) HasStudent(studentID int64) bool {
	for _, id := range u.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
