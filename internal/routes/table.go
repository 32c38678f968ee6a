package routes

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/handlers"
	"backoffice/internal/middlewares"
	"backoffice/internal/services"
)

type TableRoutes struct {
	tableHandler *handlers.TableHandler
	authService  *services.AuthService
}

func NewTableRoutes(tableHandler *handlers.TableHandler, authService *services.AuthService) *TableRoutes {
	return &TableRoutes{
		tableHandler: tableHandler,
		authService:  authService,
	}
}

func (r *TableRoutes) RegisterRoutes(router *gin.RouterGroup) {
	tables := router.Group("/tables")
	tables.Use(middlewares.Authenticate(r.authService))
	{
		tables.GET("", r.tableHandler.List)
		tables.POST("", r.tableHandler.Create)
		tables.DELETE("/:id", r.tableHandler.Delete)
		tables.GET("/:id/qr", r.tableHandler.QR)
		tables.GET("/qr/archive", r.tableHandler.Archive)
	}
}
