package middleware

import (
	"errors"
	"net/http"
	"strings"

	"ast-fleet-console-api-server/config"
	"ast-fleet-console-api-server/internal/auth"
	"ast-fleet-console-api-server/internal/models"
	"ast-fleet-console-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

// Context keys set by Authenticate.
const (
	CtxUsername = "username"
	CtxUserRole = "user_role"
	CtxClaims   = "token_claims"
)

// Authenticate validates the bearer token and rejects tokens revoked
// by logout. It puts the username, role and claims into the context.
func Authenticate(cfg config.Config, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := auth.ParseJWT(cfg.JWT.Secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Tokens logged out before their expiry sit in the sessions
		// table.
		var revoked models.RevokedSession
		err = st.Get(c.Request.Context(), cfg.Tables.Sessions, store.Key{"token_id": claims.ID}, &revoked)
		if err == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify token: " + err.Error()})
			return
		}

		c.Set(CtxUsername, claims.Username)
		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxClaims, claims)

		c.Next()
	}
}

// Authorize is a middleware factory gating a route group to the given
// roles. It expects Authenticate to have run first.
func Authorize(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoleValue, exists := c.Get(CtxUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "User role not found in context"})
			return
		}

		userRole, ok := userRoleValue.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "User role has an invalid type"})
			return
		}

		for _, role := range allowedRoles {
			if role == userRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}
