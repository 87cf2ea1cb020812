package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/session"
)

// AuthMiddleware verifies the bearer token and stores the session for the
// handlers behind it.
func AuthMiddleware(issuer *session.Issuer, revoker session.Revoker, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		s, err := issuer.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "invalid_token")
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), s.TokenID)
		if err != nil {
			// Revocation store down: the token is still signed and unexpired.
			log.WithError(err).Warn("token revocation check failed")
		}
		if revoked {
			abortUnauthorized(c, "token_revoked")
			return
		}

		session.Set(c, s)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Authentication required.")
	c.Abort()
}
