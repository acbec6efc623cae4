package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mys-constructora/backoffice/internal/auth/middleware"
)

// Register mounts the portal functions and admin-rh under fn, normally
// the /functions/v1 group.
func (h *Handler) Register(fn *gin.RouterGroup) {
	fn.POST("/mark-attendance",
		middleware.SharedSecret(middleware.HeaderPortalToken, h.tokens.AttendanceToken, "Invalid portal token"),
		h.MarkAttendance)
	fn.POST("/submit-contract",
		middleware.SharedSecret(middleware.HeaderPortalToken, h.tokens.ApplicationsToken, "Invalid portal token"),
		h.SubmitContract)

	admin := fn.Group("/admin-rh",
		middleware.SharedSecret(middleware.HeaderAdminToken, h.tokens.AdminToken, "Invalid admin token"))
	admin.GET("", h.Health)
	admin.GET("/", h.Health)
	admin.GET("/health", h.Health)
	admin.GET("/employees", h.ListEmployees)
	admin.POST("/employees", h.HireEmployee)
	admin.PATCH("/employees/:id", h.UpdateEmployeeStatus)
	admin.GET("/applications", h.ListApplications)
	admin.PATCH("/applications/", h.DecideApplication)
	admin.PATCH("/applications/:id", h.DecideApplication)
}
