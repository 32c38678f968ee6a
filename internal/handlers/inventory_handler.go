package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/responses"
	"backoffice/internal/services"
	"backoffice/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type InventoryHandler struct {
	workspace *Workspace
}

func NewInventoryHandler(workspace *Workspace) *InventoryHandler {
	return &InventoryHandler{workspace: workspace}
}

func (h *InventoryHandler) Categories(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	categories, err := h.workspace.inventory(session).Categories(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to load categories")
		return
	}

	responses.Success(c, http.StatusOK, categories, "")
}

// List returns the inventory, narrowed by ?q= when given.
func (h *InventoryHandler) List(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	inventory := h.workspace.inventory(session)
	if _, err := inventory.LoadAll(c.Request.Context()); err != nil {
		fail(c, err, "Failed to load inventory")
		return
	}

	responses.Success(c, http.StatusOK, itemViews(inventory.Filter(c.Query("q"))), "")
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req services.ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	payload, err := json.Marshal(req)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	h.dispatch(c, services.Command{Op: services.OpAddItem, Payload: payload}, http.StatusCreated, "Item added successfully!")
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid item id")
		return
	}

	var req services.ItemPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	payload, err := json.Marshal(req)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	h.dispatch(c, services.Command{Op: services.OpUpdateItem, TargetID: id, Payload: payload}, http.StatusOK, "Item updated successfully!")
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid item id")
		return
	}

	cmd := services.Command{
		Op:        services.OpRemoveItem,
		TargetID:  id,
		Confirmed: c.Query("confirm") == "true",
	}
	h.dispatch(c, cmd, http.StatusOK, "Item deleted successfully!")
}

// Export sends the inventory as an xlsx attachment.
func (h *InventoryHandler) Export(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	data, err := h.workspace.inventory(session).ExportSheet(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to export inventory")
		return
	}

	responses.Attachment(c, http.StatusOK, "inventory.xlsx", xlsxContentType, data)
}

func (h *InventoryHandler) dispatch(c *gin.Context, cmd services.Command, status int, message string) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	result, err := h.workspace.dispatcher(session).Dispatch(c.Request.Context(), cmd)
	if err != nil {
		fail(c, err, "Inventory change failed")
		return
	}

	responses.Success(c, status, itemViews(result.Items), message)
}
