package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// ImmutableCache sets a long-lived Cache-Control header for published exam
// media. Handlers replace it with no-store on error responses.
func ImmutableCache(maxAgeSeconds int) gin.HandlerFunc {
	value := fmt.Sprintf("public, max-age=%d, immutable", maxAgeSeconds)
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
