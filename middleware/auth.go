package middleware

import (
	"net/http"
	"strings"

	"soulspace/models"
	"soulspace/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the actor middleware.
const (
	ContextActorID   = "actorID"
	ContextActorRole = "actorRole"
)

// RequireActor authenticates the bearer token and enforces the actor role
// for the route group. User routes never accept provider tokens and vice
// versa.
func RequireActor(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		actorID, actorRole, err := utils.ParseActorToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if actorRole != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}

		c.Set(ContextActorID, actorID)
		c.Set(ContextActorRole, actorRole)
		c.Next()
	}
}

// RequireUser guards requester-facing routes.
func RequireUser() gin.HandlerFunc {
	return RequireActor(models.ActorUser)
}

// RequireProvider guards provider-facing routes.
func RequireProvider() gin.HandlerFunc {
	return RequireActor(models.ActorProvider)
}

// ActorID returns the authenticated actor id set by RequireActor.
func ActorID(c *gin.Context) string {
	return c.GetString(ContextActorID)
}
