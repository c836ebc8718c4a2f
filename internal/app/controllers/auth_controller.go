package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nrandria/tutoria/internal/app/models/dto"
	"github.com/nrandria/tutoria/internal/app/services"
	"github.com/nrandria/tutoria/internal/middleware"
)

// AuthController handles registration, login and the OTP endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles POST /api/auth/register
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "Inscription réussie",
		User:    user,
	})
}

// Login handles POST /api/auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	token, user, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.LoginResponse{
		AccessToken: token,
		User:        user,
	})
}

// RequestOTP handles POST /api/auth/request-otp
func (c *AuthController) RequestOTP(ctx *gin.Context) {
	var req dto.RequestOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	code, expiresAt, err := c.authService.RequestOTP(ctx.Request.Context(), req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OTPResponse{
		Message:   "Code envoyé",
		Email:     req.Email,
		Code:      code,
		ExpiresAt: expiresAt,
	})
}

// VerifyOTP handles POST /api/auth/verify-otp
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.authService.VerifyOTP(ctx.Request.Context(), req.Email, req.Code); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Code vérifié"})
}

// ResetPassword handles POST /api/auth/reset-password
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Mot de passe réinitialisé"})
}

// InitiateRegister handles POST /api/auth/register/initiate
func (c *AuthController) InitiateRegister(ctx *gin.Context) {
	var req dto.InitiateRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	_, expiresAt, err := c.authService.InitiateRegister(ctx.Request.Context(), req.Email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.InitiateRegisterResponse{
		Message:   "Code envoyé",
		Email:     req.Email,
		ExpiresAt: expiresAt,
	})
}

// CompleteRegister handles POST /api/auth/register/complete
func (c *AuthController) CompleteRegister(ctx *gin.Context) {
	var req dto.CompleteRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.authService.CompleteRegister(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: "Inscription réussie",
		User:    user,
	})
}
