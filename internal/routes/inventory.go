package routes

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/handlers"
	"backoffice/internal/middlewares"
	"backoffice/internal/services"
)

type InventoryRoutes struct {
	inventoryHandler *handlers.InventoryHandler
	authService      *services.AuthService
}

func NewInventoryRoutes(inventoryHandler *handlers.InventoryHandler, authService *services.AuthService) *InventoryRoutes {
	return &InventoryRoutes{
		inventoryHandler: inventoryHandler,
		authService:      authService,
	}
}

func (r *InventoryRoutes) RegisterRoutes(router *gin.RouterGroup) {
	authenticated := router.Group("/")
	authenticated.Use(middlewares.Authenticate(r.authService))
	authenticated.GET("/categories", r.inventoryHandler.Categories)

	inventory := router.Group("/inventory")
	inventory.Use(middlewares.Authenticate(r.authService))
	{
		inventory.GET("", r.inventoryHandler.List)
		inventory.POST("", r.inventoryHandler.Create)
		inventory.GET("/export", r.inventoryHandler.Export)
		inventory.PUT("/:id", r.inventoryHandler.Update)
		inventory.DELETE("/:id", r.inventoryHandler.Delete)
	}
}
