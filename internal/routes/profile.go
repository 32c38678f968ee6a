package routes

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/handlers"
	"backoffice/internal/middlewares"
	"backoffice/internal/services"
)

type ProfileRoutes struct {
	profileHandler *handlers.ProfileHandler
	authService    *services.AuthService
}

func NewProfileRoutes(profileHandler *handlers.ProfileHandler, authService *services.AuthService) *ProfileRoutes {
	return &ProfileRoutes{
		profileHandler: profileHandler,
		authService:    authService,
	}
}

func (r *ProfileRoutes) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middlewares.Authenticate(r.authService))
	{
		profile.GET("", r.profileHandler.Get)
		profile.PUT("", r.profileHandler.Update)
	}
}
