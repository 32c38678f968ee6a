package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/responses"
	"backoffice/internal/services"
)

type ProfileHandler struct {
	workspace *Workspace
}

func NewProfileHandler(workspace *Workspace) *ProfileHandler {
	return &ProfileHandler{workspace: workspace}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	restaurant, err := h.workspace.profile(session).Load(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to load profile")
		return
	}

	responses.Success(c, http.StatusOK, restaurant, "")
}

func (h *ProfileHandler) Update(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}

	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	profile := h.workspace.profile(session)
	if err := profile.Update(c.Request.Context(), req); err != nil {
		fail(c, err, "Failed to update profile")
		return
	}

	restaurant, err := profile.Load(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to load profile")
		return
	}
	responses.Success(c, http.StatusOK, restaurant, "Profile updated successfully!")
}
