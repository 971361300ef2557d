package metrics

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// untrackedPrefixes are request paths that never produce a visit row:
// asset fetches and the admin area itself.
var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin",
	"/favicon",
	"/privacy",
}

// Middleware records page views for ordinary site traffic. Visitors
// sending Do Not Track are never recorded. The insert happens off the
// request path so a slow disk can't slow the page.
func (s *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip := c.ClientIP()
		userAgent := c.GetHeader("User-Agent")
		go func() {
			if err := s.Track(ip, userAgent, path); err != nil {
				slog.Error("visit tracking failed", "error", err)
			}
		}()
		c.Next()
	}
}
