package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/tilt-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextSessionClaims is the key used to store token claims in the Gin context.
	ContextSessionClaims = "sessionClaims"

	// SessionParam is the route parameter the token's session must match.
	SessionParam = "ID"
)

// Authoriz validates the bearer token and, on routes carrying a session ID,
// checks that the token was issued for that session.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Status(http.StatusUnauthorized) // No token found in the header.
			c.Abort()
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Status(http.StatusUnauthorized) // Malformed Authorization header.
			c.Abort()
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		if id := c.Param(SessionParam); id != "" {
			if owner, _ := claims[i.SessionIDClaim].(string); owner != id {
				c.JSON(http.StatusForbidden, gin.H{"error": "token was issued for another session"})
				c.Abort()
				return
			}
		}

		// Attach the claims to the request context for further use.
		c.Set(ContextSessionClaims, claims)
		c.Next()
	}
}
