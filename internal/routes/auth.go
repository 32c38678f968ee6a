package routes

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/handlers"
	"backoffice/internal/middlewares"
	"backoffice/internal/services"
)

type AuthRoutes struct {
	handler     *handlers.AuthHandler
	authService *services.AuthService
}

func NewAuthRoutes(handler *handlers.AuthHandler, authService *services.AuthService) *AuthRoutes {
	return &AuthRoutes{handler: handler, authService: authService}
}

func (r *AuthRoutes) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		// Public routes
		auth.POST("/signup", r.handler.Signup)
		auth.POST("/login", r.handler.Login)

		// Protected routes
		protected := auth.Group("/")
		protected.Use(middlewares.Authenticate(r.authService))
		protected.POST("/logout", r.handler.Logout)
	}
}
