package dto

// CreateNoteRequest is the grade-creation payload. The authoring
// formateur is always the authenticated caller.
type CreateNoteRequest struct {
	StudentID int64    `json:"studentId" binding:"required"`
	Matiere   string   `json:"matiere" binding:"required"`
	Note      *float64 `json:"note" binding:"required"`
	Remarques *string  `json:"remarques,omitempty"`
}

// UpdateNoteRequest is the grade-update payload
type UpdateNoteRequest struct {
	Matiere   *string  `json:"matiere,omitempty"`
	Note      *float64 `json:"note,omitempty"`
	Remarques *string  `json:"remarques,omitempty"`
}
