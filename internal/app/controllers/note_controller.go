package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nrandria/tutoria/internal/app/models/dto"
	"github.com/nrandria/tutoria/internal/app/repositories"
	"github.com/nrandria/tutoria/internal/app/services"
	"github.com/nrandria/tutoria/internal/middleware"
	"github.com/nrandria/tutoria/internal/pkg/helpers"
)

// NoteController handles grade endpoints
type NoteController struct {
	noteService *services.NoteService
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService *services.NoteService) *NoteController {
	return &NoteController{noteService: noteService}
}

// List handles GET /api/notes
func (c *NoteController) List(ctx *gin.Context) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	page, limit := helpers.ParsePaginationParams(ctx)
	sortBy, sortOrder := helpers.ParseSortParams(ctx)

	params := repositories.ListNotesParams{
		StudentID: helpers.QueryInt64(ctx, "studentId"),
		Matiere:   helpers.QueryString(ctx, "matiere"),
		MinNote:   helpers.QueryFloat64(ctx, "minNote"),
		MaxNote:   helpers.QueryFloat64(ctx, "maxNote"),
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Page:      page,
		Limit:     limit,
	}

	notes, total, err := c.noteService.List(ctx.Request.Context(), p, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PaginatedResponse{
		Data: notes,
		Meta: helpers.NewPaginationMeta(total, page, limit),
	})
}

// Get handles GET /api/notes/:id
func (c *NoteController) Get(ctx *gin.Context) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	note, err := c.noteService.GetByID(ctx.Request.Context(), p, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, note)
}

// Create handles POST /api/notes
func (c *NoteController) Create(ctx *gin.Context) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req dto.CreateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	note, err := c.noteService.Create(ctx.Request.Context(), p, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, note)
}

// Update handles PUT /api/notes/:id
func (c *NoteController) Update(ctx *gin.Context) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	var req dto.UpdateNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	note, err := c.noteService.Update(ctx.Request.Context(), p, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, note)
}

// Delete handles DELETE /api/notes/:id
func (c *NoteController) Delete(ctx *gin.Context) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, err := helpers.ParamID(ctx, "id")
	if err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.noteService.Delete(ctx.Request.Context(), p, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Note supprimée"})
}
