package dto

// CreateStudentRequest is the student-creation payload. FormateurID may
// be left empty by a formateur caller, in which case it defaults to the
// caller.
type CreateStudentRequest struct {
	Nom         string  `json:"nom" binding:"required"`
	Prenom      string  `json:"prenom" binding:"required"`
	Age         int     `json:"age" binding:"required,min=1"`
	Matricule   string  `json:"matricule" binding:"required"`
	FormateurID int64   `json:"formateurId,omitempty"`
	ParentID    *int64  `json:"parentId,omitempty"`
	Remarques   *string `json:"remarques,omitempty"`
}

// UpdateStudentRequest is the student-update payload
type UpdateStudentRequest struct {
	Nom       *string `json:"nom,omitempty"`
	Prenom    *string `json:"prenom,omitempty"`
	Age       *int    `json:"age,omitempty"`
	Remarques *string `json:"remarques,omitempty"`
}

// AssignFormateurRequest binds a student to a tutor
type AssignFormateurRequest struct {
	FormateurID int64 `json:"formateurId" binding:"required"`
}

// AssignParentRequest binds a student to a parent
type AssignParentRequest struct {
	ParentID int64 `json:"parentId" binding:"required"`
}
