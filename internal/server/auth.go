package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"accountanta/finassist/internal/logging"
)

// userIDKey is where the middleware stores the authenticated user ID.
const userIDKey = "user_id"

var errMalformedToken = errors.New("token carries no user identity")

// AuthMiddleware extracts the user identity from a Bearer JWT. Signature
// verification happens upstream at the API gateway; here only the payload's
// subject is read. Requests without a resolvable identity get 401.
func AuthMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := subjectFromJWT(token)
		if err != nil {
			logger.WithError(err).Debug("Rejected request with unreadable token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// currentUserID returns the authenticated user for a request.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// subjectFromJWT decodes the payload segment of a JWT and returns its
// user_id claim, falling back to the standard sub claim.
func subjectFromJWT(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", errMalformedToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", err
	}

	var claims struct {
		UserID  string `json:"user_id"`
		Subject string `json:"sub"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", err
	}

	switch {
	case claims.UserID != "":
		return claims.UserID, nil
	case claims.Subject != "":
		return claims.Subject, nil
	}
	return "", errMalformedToken
}
