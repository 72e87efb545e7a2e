package middleware

import (
	"net/http"                         // HTTP status codes
	"petcontest_system/internal/utils" // JWT utility functions
	"strings"                          // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// JWTAuthMiddleware resolves an optional Bearer session token. When a token
// is presented it must be valid and its email is stored in the context,
// overriding any client-supplied identity. Requests without a token pass
// through so the legacy email-based contract keeps working.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// No token presented, fall back to the client-supplied identity
		if authHeader == "" {
			c.Next()
			return
		}
		// A malformed header is rejected rather than silently ignored
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Cabeçalho de autorização inválido"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Sessão inválida ou expirada"})
			return
		}
		c.Set("userEmail", claims.Email) // Store authenticated email in context
		c.Next()                         // Proceed to the next handler
	}
}
