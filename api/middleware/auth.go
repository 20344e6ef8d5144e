package middleware

import (
	"net/http"
	"strings"

	"storefront/api/response"
	"storefront/domain/shared"
	"storefront/pkg/auth"

	"github.com/gin-gonic/gin"
)

const (
	// AuthUserKey gin context key for the authenticated user ID
	AuthUserKey = "auth_user_id"

	// AuthRoleKey gin context key for the authenticated role
	AuthRoleKey = "auth_role"
)

func abortUnauthorized(c *gin.Context, message string) {
	requestID, _ := c.Get(response.RequestIDKey)
	reqID, _ := requestID.(string)

	c.AbortWithStatusJSON(http.StatusUnauthorized, response.Response{
		Success:   false,
		Error:     "UNAUTHORIZED",
		Message:   message,
		Code:      http.StatusUnauthorized,
		RequestID: reqID,
	})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// OptionalAuth verifies a bearer token when one is supplied. Requests without
// a token pass through anonymous; requests with a bad token are rejected.
func OptionalAuth(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := manager.Verify(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		claims, err := manager.Verify(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)
		c.Next()
	}
}

// RequireAdmin rejects authenticated requests whose role is not admin.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(AuthRoleKey) != "admin" {
			requestID, _ := c.Get(response.RequestIDKey)
			reqID, _ := requestID.(string)

			c.AbortWithStatusJSON(http.StatusForbidden, response.Response{
				Success:   false,
				Error:     "FORBIDDEN",
				Message:   "admin access required",
				Code:      http.StatusForbidden,
				RequestID: reqID,
			})
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user ID, empty for anonymous
func CurrentUserID(c *gin.Context) string {
	return c.GetString(AuthUserKey)
}

// CurrentActor builds the actor reference for the authenticated caller
func CurrentActor(c *gin.Context) shared.Actor {
	id := c.GetString(AuthUserKey)
	if id == "" {
		return shared.Actor{}
	}
	if c.GetString(AuthRoleKey) == "admin" {
		return shared.AdminActor(id)
	}
	return shared.UserActor(id)
}
