package budgets

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mys-constructora/backoffice/internal/logging"
	"github.com/mys-constructora/backoffice/internal/projects"
)

// ProjectStore is implemented by *projects.Repo.
type ProjectStore interface {
	Get(ctx context.Context, id string) (*projects.Project, error)
	SetBudgetTotal(ctx context.Context, id string, total float64) error
}

type Handler struct {
	projects ProjectStore
}

func Register(rg *gin.RouterGroup, store ProjectStore) {
	h := &Handler{projects: store}

	rg.GET("/budgets/catalog", h.catalog)
	rg.GET("/budgets/projects/:id", h.seed)
	rg.POST("/budgets/compute", h.compute)
	rg.PUT("/budgets/projects/:id/total", h.saveTotal)
}

// ForProject loads the project and seeds its budget.
func ForProject(ctx context.Context, store ProjectStore, id, typology string) (*projects.Project, *Budget, error) {
	p, err := store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	b, err := Seed(p, typology)
	if err != nil {
		return p, nil, err
	}
	return p, b, nil
}

func (h *Handler) catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"catalog": Catalog,
		"rates": gin.H{
			"indirect": IndirectRate.InexactFloat64(),
			"utility":  UtilityRate.InexactFloat64(),
			"taxes":    TaxRate.InexactFloat64(),
		},
	})
}

func (h *Handler) seed(c *gin.Context) {
	_, b, err := ForProject(c.Request.Context(), h.projects, c.Param("id"), c.Query("typology"))
	switch {
	case errors.Is(err, projects.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, ErrUnknownTypology):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case err != nil:
		logging.FromContext(c.Request.Context()).LogError("seed_budget", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load budget"})
	default:
		c.JSON(http.StatusOK, gin.H{"ok": true, "budget": b})
	}
}

type computeRequest struct {
	Items []Item `json:"items"`
}

func (h *Handler) compute(c *gin.Context) {
	var req computeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	b, err := Compute(req.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "budget": b})
}

type totalRequest struct {
	GrandTotal *float64 `json:"grandTotal"`
}

func (h *Handler) saveTotal(c *gin.Context) {
	var req totalRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.GrandTotal == nil || !valid(*req.GrandTotal) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "grandTotal must be zero or positive"})
		return
	}
	err := h.projects.SetBudgetTotal(c.Request.Context(), c.Param("id"), *req.GrandTotal)
	if errors.Is(err, projects.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("save_budget_total", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to save budget total"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "budgetTotal": *req.GrandTotal})
}
