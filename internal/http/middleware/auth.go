// README: Firebase ID token authentication for the itinerary API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"daytrip/internal/infra"
)

const (
	callerUIDKey  = "caller_uid"
	callerRoleKey = "caller_role"
)

// Auth rejects requests without a valid "Bearer <Firebase ID token>" header
// and stores the caller's uid and role claim on the context.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		idToken, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(idToken) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(idToken))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(callerUIDKey, token.UID)
		c.Set(callerRoleKey, token.Role)
		c.Next()
	}
}

// CallerUID returns the authenticated uid, or "" when Auth did not run.
func CallerUID(c *gin.Context) string {
	return c.GetString(callerUIDKey)
}

// CallerRole returns the plan role of the authenticated caller, if any.
// Logging records it next to the caller key.
func CallerRole(c *gin.Context) string {
	return c.GetString(callerRoleKey)
}

// CallerKey identifies the caller for allowances and rate limits:
// the Firebase uid when authenticated, otherwise the client IP.
func CallerKey(c *gin.Context) string {
	if uid := CallerUID(c); uid != "" {
		return "uid:" + uid
	}
	return "ip:" + c.ClientIP()
}
