package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/middlewares"
	"backoffice/internal/responses"
	"backoffice/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	restaurant, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Could not sign up")
		return
	}

	responses.Success(c, http.StatusCreated, restaurant, "Signup successful! Please log in.")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"    binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Please enter both email and password")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err, "Failed to login")
		return
	}

	responses.Success(c, http.StatusOK, result, "Welcome, "+result.Session.RestaurantName+"!")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	jti, ttl := middlewares.Token(c)
	if err := h.authService.Logout(c.Request.Context(), jti, ttl); err != nil {
		fail(c, err, "Could not revoke token")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Logged out successfully")
}
