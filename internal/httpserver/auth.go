package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"electroshop/internal/domain"
)

type sessionRepo interface {
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
}

const (
	ctxEmailKey = "auth.email"
	ctxRoleKey  = "auth.role"
)

// authMiddleware resolves the bearer token against the session store and
// stashes the caller's email and role in the request context. Tokens are
// issued by the identity collaborator, not by this service.
func authMiddleware(sessions sessionRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token", "status": false})
			return
		}

		sess, err := sessions.GetByToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token", "status": false})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error", "status": false})
			return
		}

		c.Set(ctxEmailKey, sess.Email)
		c.Set(ctxRoleKey, sess.Role)
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRoleKey) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required", "status": false})
			return
		}
		c.Next()
	}
}

func callerEmail(c *gin.Context) string {
	return c.GetString(ctxEmailKey)
}
