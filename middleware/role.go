package middleware

import (
	"net/http"

	"rentify/models"

	"github.com/gin-gonic/gin"
)

// RequireRole lets through only callers with one of the given roles. It must
// run after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "This endpoint is not available for role '" + string(actor.Role) + "'",
		})
	}
}
