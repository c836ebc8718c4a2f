package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/nrandria/tutoria/internal/app/models"
	"github.com/nrandria/tutoria/internal/app/models/dto"
	"github.com/nrandria/tutoria/internal/pkg/apperrors"
	"github.com/nrandria/tutoria/internal/pkg/auth"
)

func newTestAuthService(users *fakeUserStore, otps *fakeOTPStore, mailer *fakeMailer) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret-key-0123456789",
		TokenExp:    time.Hour,
		TokenIssuer: "test",
	})
	return NewAuthService(users, otps, jwtService, mailer, zerolog.Nop())
}

func register(t *testing.T, svc *AuthService, email string, role models.Role) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Nom:        "Durand",
		Prenom:     "Alice",
		Email:      email,
		MotDePasse: "password1",
		Role:       role,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeOTPStore(), &fakeMailer{})

	user := register(t, svc, "alice@example.com", models.RoleFormateur)
	if user.ID == 0 {
		t.Fatal("expected an assigned user id")
	}
	if user.MotDePasse == "password1" {
		t.Fatal("stored password must be hashed")
	}

	token, logged, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:      "alice@example.com",
		MotDePasse: "password1",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected an access token")
	}
	if logged.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, logged.ID)
	}
}

func TestIssuingCodeSweepsExpiredCodesOfOthers(t *testing.T) {
	users := newFakeUserStore()
	otps := newFakeOTPStore()
	svc := newTestAuthService(users, otps, &fakeMailer{})

	register(t, svc, "alice@example.com", models.RoleFormateur)
	register(t, svc, "bob@example.com", models.RoleParent)

	if err := otps.Replace(context.Background(), "bob@example.com", "111111", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("seed expired code: %v", err)
	}

	if _, _, err := svc.RequestOTP(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("request otp: %v", err)
	}

	if _, ok := otps.codes["bob@example.com"]; ok {
		t.Fatal("expired code for another email must be swept when a new code is stored")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeOTPStore(), &fakeMailer{})
	register(t, svc, "alice@example.com", models.RoleFormateur)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Nom:        "Martin",
		Prenom:     "Bob",
		Email:      "alice@example.com",
		MotDePasse: "password2",
		Role:       models.RoleParent,
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeOTPStore(), &fakeMailer{})
	register(t, svc, "alice@example.com", models.RoleFormateur)

	_, _, errUnknown := svc.Login(context.Background(), &dto.LoginRequest{
		Email:      "nobody@example.com",
		MotDePasse: "whatever1",
	})
	_, _, errBadPass := svc.Login(context.Background(), &dto.LoginRequest{
		Email:      "alice@example.com",
		MotDePasse: "wrong-pass",
	})

	if !errors.Is(errUnknown, apperrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errBadPass, apperrors.ErrInvalidCredentials) {
		t.Fatalf("bad password: expected ErrInvalidCredentials, got %v", errBadPass)
	}
	if errUnknown.Error() != errBadPass.Error() {
		t.Fatal("unknown email and bad password must yield identical errors")
	}
}

func TestRequestOTPUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeOTPStore(), &fakeMailer{})

	_, _, err := svc.RequestOTP(context.Background(), "nobody@example.com")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRequestOTPSupersedesPreviousCode(t *testing.T) {
	otps := newFakeOTPStore()
	svc := newTestAuthService(newFakeUserStore(), otps, &fakeMailer{})
	register(t, svc, "alice@example.com", models.RoleFormateur)

	first, _, err := svc.RequestOTP(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("request otp: %v", err)
	}
	second, _, err := svc.RequestOTP(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("request otp: %v", err)
	}

	if first != second {
		if err := svc.VerifyOTP(context.Background(), "alice@example.com", first); !errors.Is(err, apperrors.ErrInvalidOTP) {
			t.Fatalf("superseded code must be rejected, got %v", err)
		}
	}
	if err := svc.VerifyOTP(context.Background(), "alice@example.com", second); err != nil {
		t.Fatalf("latest code must verify, got %v", err)
	}
}

func TestVerifyOTPIsSingleUse(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeOTPStore(), &fakeMailer{})
	register(t, svc, "alice@example.com", models.RoleFormateur)

	code, _, err := svc.RequestOTP(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("request otp: %v", err)
	}

	if err := svc.VerifyOTP(context.Background(), "alice@example.com", code); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if err := svc.VerifyOTP(context.Background(), "alice@example.com", code); !errors.Is(err, apperrors.ErrInvalidOTP) {
		t.Fatalf("second verify must fail, got %v", err)
	}
}

func TestVerifyOTPExpiryBoundary(t *testing.T) {
	otps := newFakeOTPStore()
	svc := newTestAuthService(newFakeUserStore(), otps, &fakeMailer{})
	register(t, svc, "alice@example.com", models.RoleFormateur)

	// A code whose expiry instant has just been reached no longer passes.
	otps.codes["alice@example.com"] = &models.OTP{
		Email:     "alice@example.com",
		Code:      "123456",
		ExpiresAt: time.Now(),
	}
	if err := svc.VerifyOTP(context.Background(), "alice@example.com", "123456"); !errors.Is(err, apperrors.ErrInvalidOTP) {
		t.Fatalf("expired code must be rejected, got %v", err)
	}
	if _, ok := otps.codes["alice@example.com"]; ok {
		t.Fatal("expired code must be deleted on verification")
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeOTPStore(), &fakeMailer{})
	register(t, svc, "alice@example.com", models.RoleFormateur)

	if _, _, err := svc.RequestOTP(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("request otp: %v", err)
	}
	if err := svc.VerifyOTP(context.Background(), "alice@example.com", "000000"); !errors.Is(err, apperrors.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
}

func TestMailFailureIsSwallowed(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeOTPStore(), &fakeMailer{failAll: true})
	register(t, svc, "alice@example.com", models.RoleFormateur)

	code, _, err := svc.RequestOTP(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("mail failure must not surface: %v", err)
	}
	if err := svc.VerifyOTP(context.Background(), "alice@example.com", code); err != nil {
		t.Fatalf("code must be persisted despite mail failure: %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, newFakeOTPStore(), &fakeMailer{})
	register(t, svc, "alice@example.com", models.RoleFormateur)

	code, _, err := svc.RequestOTP(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("request otp: %v", err)
	}

	err = svc.ResetPassword(context.Background(), &dto.ResetPasswordRequest{
		Email:             "alice@example.com",
		Code:              code,
		NouveauMotDePasse: "fresh-pass1",
	})
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:      "alice@example.com",
		MotDePasse: "password1",
	}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("old password must be rejected, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:      "alice@example.com",
		MotDePasse: "fresh-pass1",
	}); err != nil {
		t.Fatalf("new password must work: %v", err)
	}
}

func TestInitiateRegisterRefusesTakenEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeOTPStore(), &fakeMailer{})
	register(t, svc, "alice@example.com", models.RoleFormateur)

	if _, _, err := svc.InitiateRegister(context.Background(), "alice@example.com"); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestInitiateAndCompleteRegister(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeOTPStore(), &fakeMailer{})

	code, _, err := svc.InitiateRegister(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("initiate register: %v", err)
	}

	user, err := svc.CompleteRegister(context.Background(), &dto.CompleteRegisterRequest{
		Nom:        "Martin",
		Prenom:     "Bob",
		Email:      "bob@example.com",
		Code:       code,
		MotDePasse: "password1",
		Role:       models.RoleParent,
	})
	if err != nil {
		t.Fatalf("complete register: %v", err)
	}
	if user.Role != models.RoleParent {
		t.Fatalf("expected parent role, got %q", user.Role)
	}

	// The code is consumed: a replay cannot create another account.
	if _, err := svc.CompleteRegister(context.Background(), &dto.CompleteRegisterRequest{
		Nom:        "Martin",
		Prenom:     "Bob",
		Email:      "bob@example.com",
		Code:       code,
		MotDePasse: "password1",
		Role:       models.RoleParent,
	}); !errors.Is(err, apperrors.ErrInvalidOTP) {
		t.Fatalf("replayed code must be rejected, got %v", err)
	}
}

func TestCompleteRegisterWrongCode(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), newFakeOTPStore(), &fakeMailer{})

	if _, _, err := svc.InitiateRegister(context.Background(), "bob@example.com"); err != nil {
		t.Fatalf("initiate register: %v", err)
	}

	if _, err := svc.CompleteRegister(context.Background(), &dto.CompleteRegisterRequest{
		Nom:        "Martin",
		Prenom:     "Bob",
		Email:      "bob@example.com",
		Code:       "000000",
		MotDePasse: "password1",
		Role:       models.RoleParent,
	}); !errors.Is(err, apperrors.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
}
