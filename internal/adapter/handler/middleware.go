package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/port"
)

const sessionContextKey = "session"

// RequireSession resolves the bearer token against the session store and
// stashes the session in the request context. Requests without a valid token
// never reach the handler.
func RequireSession(sessions port.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "UNAUTHORIZED",
				Message: "Missing bearer token",
			})
			return
		}

		session, err := sessions.GetSession(c.Request.Context(), token)
		if errors.Is(err, port.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "UNAUTHORIZED",
				Message: "Invalid or expired session",
			})
			return
		}
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// RequireAdmin gates backoffice routes. Must run after RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentSession(c).Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error:   "FORBIDDEN",
				Message: "Admin access required",
			})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *domain.Session {
	return c.MustGet(sessionContextKey).(*domain.Session)
}

func currentUserID(c *gin.Context) string {
	return currentSession(c).UserID
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
