package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/models"
	"backoffice/internal/qr"
	"backoffice/internal/responses"
	"backoffice/internal/services"
	"backoffice/internal/utils"
)

type TableHandler struct {
	workspace *Workspace
}

func NewTableHandler(workspace *Workspace) *TableHandler {
	return &TableHandler{workspace: workspace}
}

func (h *TableHandler) List(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	tables, err := h.workspace.tables(session).LoadAll(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to load tables")
		return
	}

	responses.Success(c, http.StatusOK, tables, "")
}

func (h *TableHandler) Create(c *gin.Context) {
	var req struct {
		Number string `json:"table_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	payload, err := json.Marshal(req)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	h.dispatch(c, services.Command{Op: services.OpAddTable, Payload: payload}, http.StatusCreated, "Table added successfully!")
}

func (h *TableHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid table id")
		return
	}

	cmd := services.Command{
		Op:        services.OpRemoveTable,
		TargetID:  id,
		Confirmed: c.Query("confirm") == "true",
	}
	h.dispatch(c, cmd, http.StatusOK, "Table deleted successfully!")
}

// QR sends one table's code as a PNG attachment.
func (h *TableHandler) QR(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid table id")
		return
	}

	tables := h.workspace.tables(session)
	table, err := tables.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Failed to load table")
		return
	}

	image, err := tables.ExportOne(table.QRCodeData)
	if err != nil {
		fail(c, err, "Failed to render QR code")
		return
	}

	responses.Attachment(c, http.StatusOK, qr.TableFilename(table.Number), "image/png", image)
}

// Archive sends every table's code in one zip.
func (h *TableHandler) Archive(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	archive, err := h.workspace.tables(session).ExportAll(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to export QR codes")
		return
	}

	responses.Attachment(c, http.StatusOK, "table_qr_codes.zip", "application/zip", archive)
}

func (h *TableHandler) dispatch(c *gin.Context, cmd services.Command, status int, message string) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	result, err := h.workspace.dispatcher(session).Dispatch(c.Request.Context(), cmd)
	if err != nil {
		fail(c, err, "Table change failed")
		return
	}

	tables := result.Tables
	if tables == nil {
		tables = []models.Table{}
	}
	responses.Success(c, status, tables, message)
}
