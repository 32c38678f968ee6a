package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/middlewares"
	"backoffice/internal/models"
	"backoffice/internal/repositories"
	"backoffice/internal/responses"
	"backoffice/internal/services"
)

// Workspace builds the per-session managers. Managers hold the list they last
// loaded, so each request gets fresh ones bound to its own tenant.
type Workspace struct {
	Restaurants *repositories.RestaurantRepository
	Categories  *repositories.CategoryRepository
	Inventory   *repositories.InventoryRepository
	Tables      *repositories.TableRepository
	QRBaseURL   string
}

func (w *Workspace) inventory(session models.Session) *services.InventoryService {
	return services.NewInventoryService(w.Inventory, w.Categories, session)
}

func (w *Workspace) tables(session models.Session) *services.TableService {
	return services.NewTableService(w.Tables, session, w.QRBaseURL)
}

func (w *Workspace) profile(session models.Session) *services.ProfileService {
	return services.NewProfileService(w.Restaurants, session)
}

func (w *Workspace) dispatcher(session models.Session) *services.Dispatcher {
	return services.NewDispatcher(w.inventory(session), w.tables(session))
}

func sessionOrAbort(c *gin.Context) (models.Session, bool) {
	session, ok := middlewares.Session(c)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return models.Session{}, false
	}
	return session, true
}
