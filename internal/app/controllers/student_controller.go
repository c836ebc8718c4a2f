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

// StudentController handles student endpoints
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// List handles GET /api/students
func (c *StudentController) List(ctx *gin.Context) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	page, limit := helpers.ParsePaginationParams(ctx)
	sortBy, sortOrder := helpers.ParseSortParams(ctx)

	params := repositories.ListStudentsParams{
		Nom:         helpers.QueryString(ctx, "nom"),
		Prenom:      helpers.QueryString(ctx, "prenom"),
		Matricule:   helpers.QueryString(ctx, "matricule"),
		FormateurID: helpers.QueryInt64(ctx, "formateurId"),
		ParentID:    helpers.QueryInt64(ctx, "parentId"),
		SortBy:      sortBy,
		SortOrder:   sortOrder,
		Page:        page,
		Limit:       limit,
	}

	students, total, err := c.studentService.List(ctx.Request.Context(), p, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PaginatedResponse{
		Data: students,
		Meta: helpers.NewPaginationMeta(total, page, limit),
	})
}

// Get handles GET /api/students/:id
func (c *StudentController) Get(ctx *gin.Context) {
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

	student, err := c.studentService.GetByID(ctx.Request.Context(), p, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// Create handles POST /api/students
func (c *StudentController) Create(ctx *gin.Context) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.studentService.Create(ctx.Request.Context(), p, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, student)
}

// Update handles PUT /api/students/:id
func (c *StudentController) Update(ctx *gin.Context) {
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

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.studentService.Update(ctx.Request.Context(), p, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// Delete handles DELETE /api/students/:id
func (c *StudentController) Delete(ctx *gin.Context) {
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

	if err := c.studentService.Delete(ctx.Request.Context(), p, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Élève supprimé"})
}

// AssignFormateur handles POST /api/students/:id/assign-formateur
func (c *StudentController) AssignFormateur(ctx *gin.Context) {
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

	var req dto.AssignFormateurRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.studentService.AssignFormateur(ctx.Request.Context(), p, id, req.FormateurID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}

// AssignParent handles POST /api/students/:id/assign-parent
func (c *StudentController) AssignParent(ctx *gin.Context) {
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

	var req dto.AssignParentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.studentService.AssignParent(ctx.Request.Context(), p, id, req.ParentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, student)
}
