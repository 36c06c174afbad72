package middlewares

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Andyflow28/SolTech-RESTAPI/apperr"
	"github.com/Andyflow28/SolTech-RESTAPI/utils"
)

// SubjectKey is the context key holding the authenticated subject (user
// email or device id).
const SubjectKey = "subject"

// RequireAuth accepts either a valid bearer token or the shared API key as
// proof of authorization. A presented X-API-Key always gets checked, never
// silently ignored.
func RequireAuth(tokens *utils.TokenService, apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if presented := c.GetHeader("X-API-Key"); presented != "" {
			if apiKey == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(apiKey)) != 1 {
				abortAuth(c, &apperr.AuthError{Kind: apperr.InvalidApiKey})
				return
			}
			c.Set(SubjectKey, "api-key")
			c.Next()
			return
		}

		var tokenString string
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		// Fallback to query parameter (e.g. ?token=abc123), used by the
		// websocket route where devices cannot set headers
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			abortAuth(c, &apperr.AuthError{Kind: apperr.InvalidToken})
			return
		}

		subject, err := tokens.Verify(tokenString)
		if err != nil {
			abortAuth(c, err)
			return
		}

		c.Set(SubjectKey, subject)
		c.Next()
	}
}

// RequireAPIKey admits only the shared API key. Used for device token
// issuance, where no bearer token exists yet.
func RequireAPIKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader("X-API-Key")
		if presented == "" || apiKey == "" ||
			subtle.ConstantTimeCompare([]byte(presented), []byte(apiKey)) != 1 {
			abortAuth(c, &apperr.AuthError{Kind: apperr.InvalidApiKey})
			return
		}
		c.Next()
	}
}

func abortAuth(c *gin.Context, err error) {
	kind := apperr.InvalidToken
	var aerr *apperr.AuthError
	if errors.As(err, &aerr) {
		kind = aerr.Kind
	}
	c.JSON(http.StatusUnauthorized, gin.H{"error": string(kind), "detail": err.Error()})
	c.Abort()
}
