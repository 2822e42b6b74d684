package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
)

// CorrelationIdMiddleware generates one correlation id per request (or
// adopts the caller's) and attaches it to the context so error logs
// from any layer can be tied back to the request.
func CorrelationIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Writer.Header().Set("x-correlation-id", cid)
		c.Next()
	}
}
