package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS mirrors the portal functions: any origin, shared-secret headers allowed.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(string) bool { return true },
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Authorization", "X-Client-Info", "Apikey", "Content-Type",
			"X-Portal-Token", "X-Admin-Token", "X-Request-Id",
		},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        24 * time.Hour,
	})
}
