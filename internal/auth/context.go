package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxAuthMethod  = "auth_method"
)

const (
	MethodAdminToken = "admin_token"
	MethodFirebase   = "firebase"
)

// UserFirebaseUID returns the Firebase UID set by the admin middleware, if any.
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// Method reports how the current request was authorized.
func Method(c *gin.Context) string {
	return c.GetString(CtxAuthMethod)
}
