package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HostWhitelist only lets through requests whose Host is listed. An empty
// list lets everything through.
func HostWhitelist(allowedHosts []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(allowedHosts) == 0 {
			c.Next()
			return
		}

		host := c.Request.Host
		for _, h := range allowedHosts {
			if strings.EqualFold(h, host) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"status":  http.StatusForbidden,
			"message": "Permission denied",
		})
	}
}
