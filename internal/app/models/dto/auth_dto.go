package dto

import (
	"time"

	"github.com/nrandria/tutoria/internal/app/models"
)

// RegisterRequest is the direct registration payload
type RegisterRequest struct {
	Nom        string      `json:"nom" binding:"required"`
	Prenom     string      `json:"prenom" binding:"required"`
	Email      string      `json:"email" binding:"required,email"`
	MotDePasse string      `json:"motDePasse" binding:"required,min=6"`
	Role       models.Role `json:"role" binding:"required,oneof=admin formateur parent"`
	Telephone  *string     `json:"telephone,omitempty"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	MotDePasse string `json:"motDePasse" binding:"required"`
}

// RequestOTPRequest asks for a one-time code for an existing account
type RequestOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPRequest checks a previously issued one-time code
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// ResetPasswordRequest consumes a one-time code and replaces the password
type ResetPasswordRequest struct {
	Email             string `json:"email" binding:"required,email"`
	Code              string `json:"code" binding:"required,len=6"`
	NouveauMotDePasse string `json:"nouveauMotDePasse" binding:"required,min=6"`
}

// InitiateRegisterRequest starts the two-step registration flow
type InitiateRegisterRequest struct {
	Nom    string `json:"nom" binding:"required"`
	Prenom string `json:"prenom" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
}

// CompleteRegisterRequest finishes the two-step registration flow
type CompleteRegisterRequest struct {
	Nom        string      `json:"nom" binding:"required"`
	Prenom     string      `json:"prenom" binding:"required"`
	Email      string      `json:"email" binding:"required,email"`
	Code       string      `json:"code" binding:"required,len=6"`
	MotDePasse string      `json:"motDePasse" binding:"required,min=6"`
	Role       models.Role `json:"role" binding:"required,oneof=admin formateur parent"`
	Telephone  *string     `json:"telephone,omitempty"`
}

// RegisterResponse is returned after a successful registration.
// User is the sanitized view: the password hash is never serialized.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// LoginResponse carries the signed session token and the sanitized user
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

// OTPResponse is returned by request-otp. The code is echoed to support
// non-email delivery and testing; a hardened deployment would drop it.
type OTPResponse struct {
	Message   string    `json:"message"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// InitiateRegisterResponse is returned by register/initiate
type InitiateRegisterResponse struct {
	Message   string    `json:"message"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}
