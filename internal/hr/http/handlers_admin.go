package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mys-constructora/backoffice/internal/hr/service"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.employees.List(c.Request.Context())
	if err != nil {
		writeError(c, "list_employees", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

func (h *Handler) HireEmployee(c *gin.Context) {
	var req service.HireInput
	if err := c.ShouldBindJSON(&req); err != nil {
		req = service.HireInput{}
	}
	res, err := h.employees.Hire(c.Request.Context(), req)
	if err != nil {
		writeError(c, "hire_employee", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpdateEmployeeStatus(c *gin.Context) {
	var req statusRequest
	_ = c.ShouldBindJSON(&req)
	if err := h.employees.SetStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		writeError(c, "update_employee_status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) ListApplications(c *gin.Context) {
	apps, err := h.apps.List(c.Request.Context())
	if err != nil {
		writeError(c, "list_applications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *Handler) DecideApplication(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id"})
		return
	}
	var req statusRequest
	_ = c.ShouldBindJSON(&req)
	if err := h.apps.Decide(c.Request.Context(), id, req.Status); err != nil {
		writeError(c, "decide_application", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
