package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/progress-tracker-api/internal/errors"
)

// RequireRole lets the request through only when the authenticated user holds
// one of roles. It must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		if !slices.Contains(roles, GetRole(c)) {
			apierrors.Forbidden(c, "Insufficient permissions")
			return
		}

		c.Next()
	}
}
