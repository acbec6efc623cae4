package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mys-constructora/backoffice/internal/auth/middleware"
	"github.com/mys-constructora/backoffice/internal/hr/service"
)

// MarkAttendance handles POST /functions/v1/mark-attendance.
func (h *Handler) MarkAttendance(c *gin.Context) {
	var req markAttendanceRequest
	// A malformed body is treated as empty so validation reports the first missing field.
	if err := c.ShouldBindJSON(&req); err != nil {
		req = markAttendanceRequest{}
	}

	res, err := h.attendance.Mark(c.Request.Context(), service.MarkInput{
		OrgID:       req.OrgID,
		WorkerID:    req.WorkerID,
		Lat:         req.Lat.v,
		Lng:         req.Lng.v,
		Method:      req.Method,
		DeviceLabel: req.DeviceLabel,
		Note:        req.Note,
		AdminToken:  c.GetHeader(middleware.HeaderAdminToken),
	})
	if err != nil {
		writeError(c, "mark_attendance", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SubmitContract handles POST /functions/v1/submit-contract.
func (h *Handler) SubmitContract(c *gin.Context) {
	var req service.SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		req = service.SubmitInput{}
	}

	id, err := h.apps.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, "submit_contract", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "applicationId": id})
}
