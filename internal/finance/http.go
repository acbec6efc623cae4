package finance

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mys-constructora/backoffice/internal/logging"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc  *Service
	dash *DashboardBuilder
}

// Register mounts transactions, finance and dashboard routes on rg. dash may be nil.
func Register(rg *gin.RouterGroup, svc *Service, dash *DashboardBuilder) {
	h := &Handler{svc: svc, dash: dash}

	rg.GET("/transactions", h.list)
	rg.POST("/transactions", h.create)
	rg.DELETE("/transactions/:id", h.delete)

	rg.GET("/finance/metrics", h.metrics)
	rg.GET("/finance/series", h.series)
	rg.GET("/finance/export.xlsx", h.export)
	rg.GET("/finance/catalog", h.catalog)

	if dash != nil {
		rg.GET("/dashboard", h.dashboard)
	}
}

func isValidation(err error) bool {
	for _, e := range []error{ErrInvalidType, ErrProjectRequired, ErrUnknownProject, ErrDescriptionMissing, ErrCostInvalid,
		ErrCategoryMissing, ErrQuantityInvalid, ErrInvalidDate} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	logging.FromContext(c.Request.Context()).LogError(op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to " + op})
}

func (h *Handler) list(c *gin.Context) {
	txs, err := h.svc.List(c.Request.Context(), c.Query("projectId"), c.Query("q"))
	if err != nil {
		h.fail(c, "list transactions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "transactions": txs})
}

func (h *Handler) create(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		if isValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		h.fail(c, "create transaction", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "transaction": t})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if err != nil {
		h.fail(c, "delete transaction", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) metrics(c *gin.Context) {
	m, err := h.svc.Metrics(c.Request.Context(), c.Query("projectId"))
	if err != nil {
		h.fail(c, "compute metrics", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) series(c *gin.Context) {
	pts, err := h.svc.Series(c.Request.Context(), c.Query("projectId"))
	if err != nil {
		h.fail(c, "compute series", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "series": pts})
}

func (h *Handler) catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"units":             Units,
		"expenseCategories": ExpenseCategories,
		"incomeCategories":  IncomeCategories,
	})
}

func (h *Handler) export(c *gin.Context) {
	txs, err := h.svc.List(c.Request.Context(), c.Query("projectId"), "")
	if err != nil {
		h.fail(c, "export transactions", err)
		return
	}
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, txs); err != nil {
		h.fail(c, "export transactions", err)
		return
	}
	name := fmt.Sprintf("finanzas-%s.xlsx", h.svc.today().Format(DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *Handler) dashboard(c *gin.Context) {
	d, err := h.dash.Build(c.Request.Context())
	if err != nil {
		h.fail(c, "build dashboard", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "dashboard": d})
}
