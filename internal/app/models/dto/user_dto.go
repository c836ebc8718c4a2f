package dto

import (
	"github.com/nrandria/tutoria/internal/app/models"
)

// CreateUserRequest is the admin user-creation payload
type CreateUserRequest struct {
	Nom        string      `json:"nom" binding:"required"`
	Prenom     string      `json:"prenom" binding:"required"`
	Email      string      `json:"email" binding:"required,email"`
	MotDePasse string      `json:"motDePasse" binding:"required,min=6"`
	Role       models.Role `json:"role" binding:"required,oneof=admin formateur parent"`
	Telephone  *string     `json:"telephone,omitempty"`
}

// UpdateUserRequest is the profile-update payload. Role is immutable
// after assignment and therefore absent here.
type UpdateUserRequest struct {
	Nom       *string `json:"nom,omitempty"`
	Prenom    *string `json:"prenom,omitempty"`
	Telephone *string `json:"telephone,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}
