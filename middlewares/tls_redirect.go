// middlewares/tls_redirect.go
package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TLSRedirect sends plain-HTTP requests to their https:// equivalent. Only
// mounted in production, where the service sits behind a TLS-terminating
// proxy that sets X-Forwarded-Proto.
func TLSRedirect() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.TLS == nil && c.GetHeader("X-Forwarded-Proto") == "http" {
			target := "https://" + c.Request.Host + c.Request.URL.RequestURI()
			c.Redirect(http.StatusMovedPermanently, target)
			c.Abort()
			return
		}
		c.Next()
	}
}
