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

// MessageController handles messaging endpoints
type MessageController struct {
	messageService *services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// List handles GET /api/messages
func (c *MessageController) List(ctx *gin.Context) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	page, limit := helpers.ParsePaginationParams(ctx)
	sortBy, sortOrder := helpers.ParseSortParams(ctx)

	params := repositories.ListMessagesParams{
		SenderID:   helpers.QueryInt64(ctx, "senderId"),
		ReceiverID: helpers.QueryInt64(ctx, "receiverId"),
		Content:    helpers.QueryString(ctx, "content"),
		SortBy:     sortBy,
		SortOrder:  sortOrder,
		Page:       page,
		Limit:      limit,
	}

	messages, total, err := c.messageService.List(ctx.Request.Context(), p, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PaginatedResponse{
		Data: messages,
		Meta: helpers.NewPaginationMeta(total, page, limit),
	})
}

// Get handles GET /api/messages/:id
func (c *MessageController) Get(ctx *gin.Context) {
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

	msg, err := c.messageService.GetByID(ctx.Request.Context(), p, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, msg)
}

// Create handles POST /api/messages
func (c *MessageController) Create(ctx *gin.Context) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req dto.CreateMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	msg, err := c.messageService.Create(ctx.Request.Context(), p, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, msg)
}

// Update handles PUT /api/messages/:id
func (c *MessageController) Update(ctx *gin.Context) {
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

	var req dto.UpdateMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	msg, err := c.messageService.Update(ctx.Request.Context(), p, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, msg)
}

// Delete handles DELETE /api/messages/:id
func (c *MessageController) Delete(ctx *gin.Context) {
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

	if err := c.messageService.Delete(ctx.Request.Context(), p, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Message supprimé"})
}
