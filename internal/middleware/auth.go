package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stridesense/stridesense-backend-go/internal/service"
	"github.com/stridesense/stridesense-backend-go/pkg/response"
)

const sessionKey = "session"

// TokenValidator resolves a session token
type TokenValidator interface {
	ValidateToken(token string) (*service.Session, error)
}

// RequireAuth rejects requests without a valid session token. The token is read from the
// Authorization bearer header, or from the access_token query parameter.
func RequireAuth(validator TokenValidator, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "Authorization token required")
			return
		}

		session, err := validator.ValidateToken(token)
		if err != nil {
			log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Invalid token")
			response.Abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// SessionFrom returns the session stored by RequireAuth
func SessionFrom(c *gin.Context) (*service.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*service.Session)
	return session, ok
}

func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if bearerToken != "" {
		tokenParts := strings.Split(bearerToken, " ")
		if len(tokenParts) == 2 && strings.ToLower(tokenParts[0]) == "bearer" {
			return tokenParts[1]
		}
	}
	return c.Query("access_token")
}
