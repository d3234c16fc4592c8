package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// Origins is the set of page origins allowed to call the API with the
// session cookie.
type Origins struct {
	allowed map[string]bool
}

// NewOrigins returns the local development origins plus extra.
func NewOrigins(extra []string) *Origins {
	o := &Origins{allowed: make(map[string]bool, len(defaultOrigins)+len(extra))}
	for _, origin := range defaultOrigins {
		o.allowed[origin] = true
	}
	for _, origin := range extra {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			o.allowed[origin] = true
		}
	}
	return o
}

// Allowed reports whether origin may send credentialed requests.
func (o *Origins) Allowed(origin string) bool {
	return origin != "" && o.allowed[origin]
}

// CORS lets the invitation page, served from another origin, call the API
// with its session cookie.
func CORS(origins *Origins) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origins.Allowed(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept, Origin, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "600")

		// Preflight ends here, before the session middleware mints a cookie.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
