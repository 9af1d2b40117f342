package handler

import (
	"net/http"

	"campaign/backend/internal/auth"
	"campaign/backend/internal/middleware"
	"campaign/backend/internal/models"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions toggles environment dependent routes.
type RouterOptions struct {
	// Swagger mounts /swagger/*any. Off in production.
	Swagger bool
}

// NewRouter builds the gin engine with every API route mounted under /api.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(h.logger),
		middleware.Recovery(h.logger),
		middleware.SecurityHeaders(),
	)

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	requireSession := auth.AuthMiddleware(h.sessions, h.cookie.Name)
	requireAdmin := auth.RequireRole(models.RoleAdministrator)

	api := router.Group("/api")
	{
		// Auth routes
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)
		api.GET("/me", requireSession, h.GetMe)

		// Setup routes
		api.GET("/setup", h.GetSetupStatus)
		api.POST("/setup", auth.OptionalAuthMiddleware(h.sessions, h.cookie.Name), h.CreateAdmin)

		// Public registration form
		api.POST("/registrations", h.CreateRegistration)
		api.POST("/register", h.CreateRegistration)
		api.GET("/teams/options", h.GetTeamOptions)

		// Registration routes (protected)
		registrationRoutes := api.Group("/registrations")
		registrationRoutes.Use(requireSession)
		{
			registrationRoutes.GET("", h.ListRegistrations)
			registrationRoutes.PUT("/:id", h.UpdateRegistration)
			registrationRoutes.DELETE("/:id", requireAdmin, h.DeleteRegistration)
		}

		// Team routes (reads for any session, writes for administrators)
		teamRoutes := api.Group("/teams")
		teamRoutes.Use(requireSession)
		{
			teamRoutes.GET("", h.GetTeams)
			teamRoutes.POST("", requireAdmin, h.CreateTeam)
			teamRoutes.PUT("/:id", requireAdmin, h.UpdateTeam)
			teamRoutes.DELETE("/:id", requireAdmin, h.DeleteTeam)
		}

		// User routes (protected by auth and admin check)
		userRoutes := api.Group("/users")
		userRoutes.Use(requireSession, requireAdmin)
		{
			userRoutes.GET("", h.GetUsers)
			userRoutes.POST("", h.CreateUser)
			userRoutes.PUT("/:id/role", h.UpdateUserRole)
			userRoutes.PUT("/:id/password", h.UpdateUserPassword)
			userRoutes.DELETE("/:id", h.DeleteUser)
		}

		api.GET("/events", requireSession, h.StreamEvents)
	}

	return router
}
