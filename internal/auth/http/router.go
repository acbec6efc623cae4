package http

import "github.com/gin-gonic/gin"

// Register mounts the admin session routes. Login is public; the password
// change route should sit behind the admin middleware.
func (h *Handler) Register(public, protected *gin.RouterGroup) {
	public.POST("/admin/login", h.Login)
	protected.PUT("/admin/password", h.ChangePassword)
}
