package middleware

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// SPAFallback serves files from dir and falls back to index.html for
// unknown non-API GET routes. Without an index.html in dir every unknown
// route is a JSON 404. guards run before the fallback so that protected
// prefixes can reject unauthenticated requests ahead of the 404.
func SPAFallback(r *gin.Engine, dir string, guards ...gin.HandlerFunc) {
	index := filepath.Join(dir, "index.html")
	_, statErr := os.Stat(index)
	hasSPA := dir != "" && statErr == nil
	fs := http.Dir(dir)
	fallback := func(c *gin.Context) {
		p := c.Request.URL.Path
		if !hasSPA || c.Request.Method != http.MethodGet || strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/functions/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		clean := filepath.Clean("/" + p)
		if f, err := fs.Open(clean); err == nil {
			st, statErr := f.Stat()
			_ = f.Close()
			if statErr == nil && !st.IsDir() {
				c.File(filepath.Join(dir, clean))
				return
			}
		}
		c.File(index)
	}
	r.NoRoute(append(guards, fallback)...)
}
