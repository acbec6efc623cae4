package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/mys-constructora/backoffice/internal/auth"
)

const (
	HeaderPortalToken = "x-portal-token"
	HeaderAdminToken  = "x-admin-token"
)

// TokenVerifier is satisfied by *firebase auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// TokenMatches compares a presented shared secret with the expected one.
// An unset expected secret never matches.
func TokenMatches(got, expected string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(expected)) == 1
}

// SharedSecret rejects requests whose header does not carry the expected secret.
func SharedSecret(header, expected, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !TokenMatches(c.GetHeader(header), expected) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}
		c.Next()
	}
}

// ForPrefix runs mw only for paths equal to prefix or below it. Used on
// NoRoute, where group middleware does not apply.
func ForPrefix(prefix string, mw gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			mw(c)
			return
		}
		c.Next()
	}
}

// AdminAuth accepts either the x-admin-token shared secret or, when a
// verifier is configured, a Firebase ID token in the Authorization header.
func AdminAuth(adminToken string, verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if TokenMatches(c.GetHeader(HeaderAdminToken), adminToken) {
			c.Set(auth.CtxAuthMethod, auth.MethodAdminToken)
			c.Next()
			return
		}

		if verifier != nil {
			if token := extractBearer(c); token != "" {
				decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
				if err == nil {
					c.Set(auth.CtxFirebaseUID, decoded.UID)
					c.Set(auth.CtxAuthMethod, auth.MethodFirebase)
					if email, ok := decoded.Claims["email"].(string); ok {
						c.Set("email", email)
					}
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Invalid admin token"})
	}
}

func extractBearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
