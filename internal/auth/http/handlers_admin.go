package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mys-constructora/backoffice/internal/auth/domain"
	"github.com/mys-constructora/backoffice/internal/logging"
)

// Login checks the admin password.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}

	ok, err := h.passwords.Verify(c.Request.Context(), req.Password)
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("admin_login", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to verify password"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}

	err := h.passwords.Change(c.Request.Context(), req.Current, req.Next)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, domain.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "current password is incorrect"})
	case errors.Is(err, domain.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "new password must have at least 6 characters"})
	case errors.Is(err, domain.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "new password must have at most 72 bytes"})
	default:
		logging.FromContext(c.Request.Context()).LogError("admin_change_password", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to change password"})
	}
}
