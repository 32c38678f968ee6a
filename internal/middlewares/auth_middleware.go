package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"backoffice/internal/models"
	"backoffice/internal/responses"
	"backoffice/internal/services"
)

const (
	sessionKey  = "session"
	tokenIDKey  = "tokenId"
	tokenTTLKey = "tokenTtl"
)

// Authenticate resolves the bearer token to a restaurant session and stores
// it on the context for handlers.
func Authenticate(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Missing Authorization header"})
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid Authorization format"})
			return
		}

		session, claims, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			_ = c.Error(err)
			status := responses.StatusFor(err)
			message := "Invalid or expired token"
			if status != http.StatusUnauthorized {
				message = "Could not verify token"
			}
			c.AbortWithStatusJSON(status, gin.H{"status": "error", "message": message})
			return
		}

		c.Set(sessionKey, session)
		c.Set(tokenIDKey, claims.ID)
		c.Set(tokenTTLKey, claims.TTL(time.Now()))

		c.Next()
	}
}

// Session returns the session set by Authenticate.
func Session(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return models.Session{}, false
	}
	session, ok := v.(models.Session)
	return session, ok
}

// Token returns the id and remaining lifetime of the request's access token.
func Token(c *gin.Context) (string, time.Duration) {
	return c.GetString(tokenIDKey), c.GetDuration(tokenTTLKey)
}
