package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FarhanZulkarnainHarahap/bake-bliss-api/internal/respond"
)

const contextKey = "authClaims"

// RequireAuth reads the access-token cookie and aborts with 401/403 when it
// is missing or invalid.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			respond.Error(c, http.StatusUnauthorized, "token_not_found", "")
			c.Abort()
			return
		}
		claims, err := ParseToken(secret, token)
		if err != nil {
			respond.Error(c, http.StatusForbidden, "invalid_token", "")
			c.Abort()
			return
		}
		c.Set(contextKey, claims)
		c.Next()
	}
}

// RoleGuard allows only the named roles past. Must run after RequireAuth.
func RoleGuard(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := FromContext(c)
		if claims != nil {
			for _, role := range roles {
				if claims.Role == role {
					c.Next()
					return
				}
			}
		}
		respond.Error(c, http.StatusForbidden, "unauthorized_access", "")
		c.Abort()
	}
}

// FromContext returns the claims set by RequireAuth, or nil.
func FromContext(c *gin.Context) *Claims {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
