package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/nrandria/tutoria/internal/app/models"
	"github.com/nrandria/tutoria/internal/app/models/dto"
	"github.com/nrandria/tutoria/internal/app/repositories"
	"github.com/nrandria/tutoria/internal/pkg/apperrors"
	"github.com/nrandria/tutoria/internal/pkg/auth"
	"github.com/nrandria/tutoria/internal/pkg/dberrors"
	"github.com/nrandria/tutoria/internal/pkg/email"
)

// AuthService handles registration, login and the OTP flows
type AuthService struct {
	userStore  repositories.UserStore
	otpStore   repositories.OTPStore
	jwtService *auth.JWTService
	mailer     email.Mailer
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore repositories.UserStore,
	otpStore repositories.OTPStore,
	jwtService *auth.JWTService,
	mailer email.Mailer,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userStore:  userStore,
		otpStore:   otpStore,
		jwtService: jwtService,
		mailer:     mailer,
		logger:     logger,
	}
}

// Register creates a new account. The email must not be taken.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	exists, err := s.userStore.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.MotDePasse)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Nom:        req.Nom,
		Prenom:     req.Prenom,
		Email:      req.Email,
		MotDePasse: hash,
		Role:       req.Role,
		Telephone:  req.Telephone,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	user, err := s.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.MotDePasse, req.MotDePasse) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// RequestOTP issues a fresh 6-digit code for the email, replacing any
// previous one, and tries to mail it. Mail failure is logged and
// swallowed: the code is already persisted.
func (s *AuthService) RequestOTP(ctx context.Context, emailAddr string) (code string, expiresAt time.Time, err error) {
	if _, err := s.userStore.GetByEmail(ctx, emailAddr); err != nil {
		return "", time.Time{}, apperrors.ErrInvalidCredentials
	}
	return s.issueOTP(ctx, emailAddr)
}

func (s *AuthService) issueOTP(ctx context.Context, emailAddr string) (string, time.Time, error) {
	code, err := auth.GenerateOTPCode()
	if err != nil {
		return "", time.Time{}, err
	}
	expiresAt := time.Now().Add(auth.OTPValidity)

	if err := s.otpStore.Replace(ctx, emailAddr, code, expiresAt); err != nil {
		return "", time.Time{}, err
	}

	if err := s.mailer.SendOTPEmail(emailAddr, code, expiresAt); err != nil {
		s.logger.Error().Err(err).Str("email", emailAddr).Msg("Failed to send OTP email")
	}

	return code, expiresAt, nil
}

// VerifyOTP checks the code for the email and consumes it on success.
// A code exactly at its expiry instant no longer passes.
func (s *AuthService) VerifyOTP(ctx context.Context, emailAddr, code string) error {
	otp, err := s.otpStore.Find(ctx, emailAddr, code)
	if err != nil {
		return err
	}

	if otp.Expired(time.Now()) {
		if err := s.otpStore.Delete(ctx, emailAddr); err != nil {
			s.logger.Error().Err(err).Str("email", emailAddr).Msg("Failed to delete expired OTP")
		}
		return apperrors.ErrInvalidOTP
	}

	if err := s.otpStore.Delete(ctx, emailAddr); err != nil {
		return err
	}

	return nil
}

// ResetPassword verifies the code then overwrites the user's password.
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if err := s.VerifyOTP(ctx, req.Email, req.Code); err != nil {
		return err
	}

	user, err := s.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NouveauMotDePasse)
	if err != nil {
		return err
	}

	if err := s.userStore.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info().Int64("userId", user.ID).Msg("Password reset")
	return nil
}

// InitiateRegister reserves nothing: it only refuses taken emails and
// issues a verification code for the address.
func (s *AuthService) InitiateRegister(ctx context.Context, emailAddr string) (code string, expiresAt time.Time, err error) {
	exists, err := s.userStore.EmailExists(ctx, emailAddr)
	if err != nil {
		return "", time.Time{}, err
	}
	if exists {
		return "", time.Time{}, apperrors.ErrEmailAlreadyExists
	}
	return s.issueOTP(ctx, emailAddr)
}

// CompleteRegister consumes the code then creates the account. Two
// racing completions for the same email both pass the re-check, but
// the second insert lands on the unique email index and surfaces as a
// conflict.
func (s *AuthService) CompleteRegister(ctx context.Context, req *dto.CompleteRegisterRequest) (*models.User, error) {
	if err := s.VerifyOTP(ctx, req.Email, req.Code); err != nil {
		return nil, err
	}

	exists, err := s.userStore.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.MotDePasse)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Nom:        req.Nom,
		Prenom:     req.Prenom,
		Email:      req.Email,
		MotDePasse: hash,
		Role:       req.Role,
		Telephone:  req.Telephone,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("role", string(user.Role)).Msg("User registration completed")
	return user, nil
}
