package models

import (
	"time"
)

// Student defines the student model based on the 'students' table.
// Each student belongs to exactly one formateur and optionally to one
// parent; Matricule is the globally unique enrollment identifier.
type Student struct {
	ID          int64     `json:"id" db:"id"`
	Nom         string    `json:"nom" db:"nom"`
	Prenom      string    `json:"prenom" db:"prenom"`
	Age         int       `json:"age" db:"age"`
	Matricule   string    `json:"matricule" db:"matricule"`
	FormateurID int64     `json:"formateurId" db:"formateur_id"`
	ParentID    *int64    `json:"parentId,omitempty" db:"parent_id"`
	Remarques   *string   `json:"remarques,omitempty" db:"remarques"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
