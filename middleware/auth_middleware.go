package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"team-portal/models"
	"team-portal/response"
	"team-portal/services"
)

const (
	IdentityKey = "identity"
	UserIDKey   = "userID"
	RoleKey     = "role"
)

// JWTAuthMiddleware resolves the bearer token, refreshes the caller's
// presence and stores the identity in the context.
func JWTAuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := auth.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		c.Set(IdentityKey, identity)
		c.Set(UserIDKey, identity.UserID)
		c.Set(RoleKey, identity.Role)

		c.Next()
	}
}

// RequireAdmin must run after JWTAuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			response.AbortWithError(c, fmt.Errorf("%w: not signed in", services.ErrUnauthenticated))
			return
		}
		if !identity.IsAdmin() {
			response.AbortWithError(c, fmt.Errorf("%w: admin access required", services.ErrForbidden))
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity set by JWTAuthMiddleware.
func CurrentIdentity(c *gin.Context) (*models.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*models.Identity)
	return identity, ok
}
