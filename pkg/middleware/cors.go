package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the form client origins listed in CORS_ORIGINS
// (comma separated). An empty list allows any origin, which keeps local
// development friction-free.
func CORSMiddleware() gin.HandlerFunc {
	var allowed []string
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			allowed = append(allowed, strings.TrimSpace(origin))
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if len(allowed) == 0 {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, a := range allowed {
				if a == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
