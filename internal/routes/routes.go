package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/handlers"
	"backoffice/internal/services"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Inventory *handlers.InventoryHandler
	Tables    *handlers.TableHandler
	Profile   *handlers.ProfileHandler
}

func RegisterRoutes(router *gin.Engine, authService *services.AuthService, h Handlers) {
	api := router.Group("/api/v1")

	NewAuthRoutes(h.Auth, authService).RegisterRoutes(api)
	NewInventoryRoutes(h.Inventory, authService).RegisterRoutes(api)
	NewTableRoutes(h.Tables, authService).RegisterRoutes(api)
	NewProfileRoutes(h.Profile, authService).RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
