package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// extractToken pulls the session credential from the request. An
// explicit bearer header takes precedence over the cookie when both are
// present.
func extractToken(c *gin.Context, cookieName string) (string, bool) {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token != "" {
			return token, true
		}
	}

	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}
