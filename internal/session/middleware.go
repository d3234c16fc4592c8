package session

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CookieName = "aniversario_session"
	contextKey = "session_id"
)

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	Secure   bool
	SameSite http.SameSite
	Path     string
}

// Middleware makes sure every request carries a session id. Requests with a
// missing or invalid cookie get a new session; a valid cookie past half its
// lifetime is re-signed so an active visitor keeps their session.
func Middleware(tokens *Tokens, opts CookieOptions) gin.HandlerFunc {
	if opts.Path == "" {
		opts.Path = "/"
	}
	maxAge := int(tokens.ttl.Seconds())

	setCookie := func(c *gin.Context, token string) {
		c.SetSameSite(opts.SameSite)
		c.SetCookie(CookieName, token, maxAge, opts.Path, "", opts.Secure, true)
	}

	return func(c *gin.Context) {
		if raw, err := c.Cookie(CookieName); err == nil && raw != "" {
			if claims, err := tokens.ParseClaims(raw); err == nil {
				if tokens.NeedsRefresh(claims) {
					if token, err := tokens.Sign(claims.SessionID); err == nil {
						setCookie(c, token)
					} else {
						log.Printf("session_refresh_failed session_id=%s error=%v", claims.SessionID, err)
					}
				}
				c.Set(contextKey, claims.SessionID)
				c.Next()
				return
			}
		}

		token, id, err := tokens.Issue()
		if err != nil {
			log.Printf("session_issue_failed error=%v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SESSION_ERROR",
					"message": "Could not start session",
				},
			})
			return
		}

		setCookie(c, token)
		c.Set(contextKey, id)
		c.Next()
	}
}

// ID returns the session id set by Middleware.
func ID(c *gin.Context) string {
	return c.GetString(contextKey)
}
