package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nrandria/tutoria/internal/app/models"
	"github.com/nrandria/tutoria/internal/app/models/dto"
	"github.com/nrandria/tutoria/internal/app/repositories"
	"github.com/nrandria/tutoria/internal/app/services"
	"github.com/nrandria/tutoria/internal/middleware"
	"github.com/nrandria/tutoria/internal/pkg/helpers"
)

// UserController handles account administration endpoints
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// List handles GET /api/users
func (c *UserController) List(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)
	sortBy, sortOrder := helpers.ParseSortParams(ctx)

	params := repositories.ListUsersParams{
		Nom:       helpers.QueryString(ctx, "nom"),
		Prenom:    helpers.QueryString(ctx, "prenom"),
		Email:     helpers.QueryString(ctx, "email"),
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Page:      page,
		Limit:     limit,
	}
	if raw := helpers.QueryString(ctx, "role"); raw != nil {
		role := models.Role(*raw)
		if role.Valid() {
			params.Role = &role
		}
	}

	users, total, err := c.userService.List(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PaginatedResponse{
		Data: users,
		Meta: helpers.NewPaginationMeta(total, page, limit),
	})
}

// Get handles GET /api/users/:id
func (c *UserController) Get(ctx *gin.Context) {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// Create handles POST /api/users
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.userService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// Update handles PUT /api/users/:id
func (c *UserController) Update(ctx *gin.Context) {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/users/:id
func (c *UserController) Delete(ctx *gin.Context) {
	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Utilisateur supprimé"})
}
