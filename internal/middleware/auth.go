package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/progress-tracker-api/internal/auth"
	"github.com/yukikurage/progress-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/progress-tracker-api/internal/errors"
	"github.com/yukikurage/progress-tracker-api/pkg/logger"
)

// RequireAuth checks for a valid access token in the Authorization header,
// falling back to the token saved in the session by the login handler
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			raw = sessionToken(c)
		}
		if raw == "" {
			apierrors.Unauthorized(c, "")
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			log := logger.Get()
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("rejected access token")
			apierrors.Unauthorized(c, "Invalid or expired token")
			return
		}

		// Store identity in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUsername, claims.Username)
		c.Set(constants.ContextKeyRole, claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// sessionToken reads the session only when a session middleware is installed.
func sessionToken(c *gin.Context) string {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return ""
	}
	token, _ := sessions.Default(c).Get(constants.SessionKeyToken).(string)
	return token
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	return userID, userID != ""
}

// GetRole retrieves the current user's role from context
func GetRole(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRole)
}
