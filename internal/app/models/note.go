package models

import (
	"time"
)

// Note defines a grade record based on the 'notes' table.
type Note struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	Matiere     string    `json:"matiere" db:"matiere"`
	Note        float64   `json:"note" db:"note"`
	Remarques   *string   `json:"remarques,omitempty" db:"remarques"`
	FormateurID int64     `json:"formateurId" db:"formateur_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
