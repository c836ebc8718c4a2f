package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nrandria/tutoria/internal/app/access"
	"github.com/nrandria/tutoria/internal/app/controllers"
	"github.com/nrandria/tutoria/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	studentController *controllers.StudentController,
	noteController *controllers.NoteController,
	messageController *controllers.MessageController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/request-otp", authController.RequestOTP)
		auth.POST("/verify-otp", authController.VerifyOTP)
		auth.POST("/reset-password", authController.ResetPassword)
		auth.POST("/register/initiate", authController.InitiateRegister)
		auth.POST("/register/complete", authController.CompleteRegister)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	users := authenticated.Group("/users")
	{
		users.GET("", authMiddleware.Require(access.ActionUsersList), userController.List)
		users.GET("/:id", authMiddleware.Require(access.ActionUsersGet), userController.Get)
		users.POST("", authMiddleware.Require(access.ActionUsersCreate), userController.Create)
		users.PUT("/:id", authMiddleware.Require(access.ActionUsersUpdate), userController.Update)
		users.DELETE("/:id", authMiddleware.Require(access.ActionUsersDelete), userController.Delete)
	}

	students := authenticated.Group("/students")
	{
		students.GET("", authMiddleware.Require(access.ActionStudentsList), studentController.List)
		students.GET("/:id", authMiddleware.Require(access.ActionStudentsGet), studentController.Get)
		students.POST("", authMiddleware.Require(access.ActionStudentsCreate), studentController.Create)
		students.PUT("/:id", authMiddleware.Require(access.ActionStudentsUpdate), studentController.Update)
		students.DELETE("/:id", authMiddleware.Require(access.ActionStudentsDelete), studentController.Delete)
		students.POST("/:id/assign-formateur", authMiddleware.Require(access.ActionStudentsAssignFormateur), studentController.AssignFormateur)
		students.POST("/:id/assign-parent", authMiddleware.Require(access.ActionStudentsAssignParent), studentController.AssignParent)
	}

	notes := authenticated.Group("/notes")
	{
		notes.GET("", authMiddleware.Require(access.ActionNotesList), noteController.List)
		notes.GET("/:id", authMiddleware.Require(access.ActionNotesGet), noteController.Get)
		notes.POST("", authMiddleware.Require(access.ActionNotesCreate), noteController.Create)
		notes.PUT("/:id", authMiddleware.Require(access.ActionNotesUpdate), noteController.Update)
		notes.DELETE("/:id", authMiddleware.Require(access.ActionNotesDelete), noteController.Delete)
	}

	messages := authenticated.Group("/messages")
	{
		messages.GET("", authMiddleware.Require(access.ActionMessagesList), messageController.List)
		messages.GET("/:id", authMiddleware.Require(access.ActionMessagesGet), messageController.Get)
		messages.POST("", authMiddleware.Require(access.ActionMessagesCreate), messageController.Create)
		messages.PUT("/:id", authMiddleware.Require(access.ActionMessagesUpdate), messageController.Update)
		messages.DELETE("/:id", authMiddleware.Require(access.ActionMessagesDelete), messageController.Delete)
	}
}
