package projects

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mys-constructora/backoffice/internal/logging"
)

// Store is implemented by *Repo.
type Store interface {
	Create(ctx context.Context, in Input) (*Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, f Filter) ([]Project, error)
	Update(ctx context.Context, id string, in Input) (*Project, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Handler struct {
	store Store
	now   func() time.Time
}

func Register(rg *gin.RouterGroup, store Store) {
	h := &Handler{store: store, now: time.Now}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/catalog", h.catalog)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

func (h *Handler) withProgress(p *Project) {
	p.Progress = ProgressAt(p.StartDate, p.EstimatedDays, h.now())
}

func (h *Handler) catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"statuses":   Statuses,
		"typologies": Typologies,
		"coverTypes": CoverTypes,
	})
}

func badInput(c *gin.Context, err error) bool {
	if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidTypology) || errors.Is(err, ErrInvalidArea) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return true
	}
	return false
}

func (h *Handler) create(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if err := in.Normalize(true, h.now()); badInput(c, err) {
		return
	}

	p, err := h.store.Create(c.Request.Context(), in)
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("create_project", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create project"})
		return
	}
	h.withProgress(p)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p, "warnings": in.Warnings()})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.store.List(c.Request.Context(), Filter{Query: c.Query("q"), Status: c.Query("status")})
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("list_projects", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list projects"})
		return
	}
	for i := range items {
		h.withProgress(&items[i])
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("get_project", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to get project"})
		return
	}
	h.withProgress(p)
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) update(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if err := in.Normalize(false, h.now()); badInput(c, err) {
		return
	}

	p, err := h.store.Update(c.Request.Context(), c.Param("id"), in)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("update_project", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to update project"})
		return
	}
	h.withProgress(p)
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p, "warnings": in.Warnings()})
}

func (h *Handler) delete(c *gin.Context) {
	ok, err := h.store.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("delete_project", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to delete project"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
