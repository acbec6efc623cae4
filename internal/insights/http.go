package insights

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mys-constructora/backoffice/internal/budgets"
	"github.com/mys-constructora/backoffice/internal/gemini"
	"github.com/mys-constructora/backoffice/internal/logging"
	"github.com/mys-constructora/backoffice/internal/projects"
)

type Handler struct {
	svc *Service
}

// Register mounts the AI endpoints under rg, usually /api/v1/insights.
func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	rg.POST("/briefing", h.briefing)
	rg.POST("/report", h.report)
	rg.POST("/finance", h.finance)
	rg.POST("/cashflow", h.cashFlow)
	rg.POST("/projects/:id/timeline", h.timeline)
	rg.POST("/budgets/projects/:id/phases", h.phases)
	rg.POST("/purchasing", h.purchasing)
}

var errorStatus = []struct {
	err    error
	status int
}{
	{gemini.ErrNotConfigured, http.StatusServiceUnavailable},
	{gemini.ErrUpstream, http.StatusBadGateway},
	{ErrBadAnswer, http.StatusUnprocessableEntity},
	{projects.ErrNotFound, http.StatusNotFound},
	{ErrNoBudgetItems, http.StatusBadRequest},
	{ErrMessageMissing, http.StatusBadRequest},
	{gemini.ErrInvalidDataURL, http.StatusBadRequest},
	{budgets.ErrUnknownTypology, http.StatusBadRequest},
	{budgets.ErrInvalidItem, http.StatusBadRequest},
}

func writeError(c *gin.Context, op string, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			if e.status >= http.StatusInternalServerError {
				logging.FromContext(c.Request.Context()).LogError(op, err)
			}
			c.JSON(e.status, gin.H{"ok": false, "error": e.err.Error()})
			return
		}
	}
	logging.FromContext(c.Request.Context()).LogError(op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
}

func respondText(c *gin.Context, op string, out string, err error) {
	if err != nil {
		writeError(c, op, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "text": out})
}

func (h *Handler) briefing(c *gin.Context) {
	out, err := h.svc.Briefing(c.Request.Context())
	respondText(c, "insights_briefing", out, err)
}

func (h *Handler) report(c *gin.Context) {
	out, err := h.svc.Report(c.Request.Context())
	respondText(c, "insights_report", out, err)
}

func (h *Handler) finance(c *gin.Context) {
	out, err := h.svc.FinanceAnalysis(c.Request.Context(), c.Query("projectId"))
	respondText(c, "insights_finance", out, err)
}

func (h *Handler) cashFlow(c *gin.Context) {
	prediction, err := h.svc.CashFlow(c.Request.Context(), c.Query("projectId"))
	if err != nil {
		writeError(c, "insights_cashflow", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "prediction": prediction})
}

func (h *Handler) timeline(c *gin.Context) {
	ms, err := h.svc.Timeline(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "insights_timeline", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "milestones": ms})
}

func (h *Handler) phases(c *gin.Context) {
	var in PhasesInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}
	est, err := h.svc.Phases(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, "insights_phases", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "estimate": est})
}

func (h *Handler) purchasing(c *gin.Context) {
	var in PurchasingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	out, err := h.svc.Purchasing(c.Request.Context(), in)
	respondText(c, "insights_purchasing", out, err)
}
