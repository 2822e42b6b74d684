package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
)

// AuthMiddleware resolves the requester from a bearer token and places
// the user id into the request context. Requests without a token pass
// through anonymously; handlers decide whether a requester is required
// for their operation.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		if auth == "" {
			c.Next()
			return
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(auth, bearer) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		auth = auth[len(bearer):]

		validate, err := utils.JwtValidate(auth)
		if err != nil || !validate.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		claim, ok := validate.Claims.(*utils.JwtCustomClaim)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		// the id is all downstream code resolves by; role and the rest
		// are re-read from the user store when a handler needs them
		ctx := utils.SetUserIdInContext(c.Request.Context(), claim.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
