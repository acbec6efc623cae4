package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mys-constructora/backoffice/internal/logging"
)

// Proxy serves POST /api/gemini/generate. Errors are plain text because the
// browser client surfaces the body as the error message.
type Proxy struct {
	gen     Generator
	limiter *IPLimiter
}

// NewProxy builds the proxy handler. gen may be nil, in which case every call
// answers 503.
func NewProxy(gen Generator, limiter *IPLimiter) *Proxy {
	return &Proxy{gen: gen, limiter: limiter}
}

func (p *Proxy) Register(r gin.IRouter) {
	handlers := []gin.HandlerFunc{}
	if p.limiter != nil {
		handlers = append(handlers, p.limiter.Middleware())
	}
	handlers = append(handlers, p.Generate)
	r.POST("/api/gemini/generate", handlers...)
}

type proxyRequest struct {
	Model  json.RawMessage `json:"model"`
	Prompt json.RawMessage `json:"prompt"`
	Parts  json.RawMessage `json:"parts"`
	Config json.RawMessage `json:"config"`
}

func (p *Proxy) Generate(c *gin.Context) {
	if p.gen == nil {
		c.String(http.StatusServiceUnavailable, "Gemini is not configured on this server.")
		return
	}

	var body proxyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.String(http.StatusRequestEntityTooLarge, "Request body too large.")
			return
		}
		body = proxyRequest{}
	}

	var model string
	if json.Unmarshal(body.Model, &model) != nil || !ModelAllowed(model) {
		c.String(http.StatusBadRequest, "Model not allowed.")
		return
	}

	parts, ok := requestParts(body)
	if !ok {
		c.String(http.StatusBadRequest, "Request must include prompt (string) or parts (array).")
		return
	}

	res, err := p.gen.Generate(c.Request.Context(), Request{
		Model:  model,
		Parts:  parts,
		Config: SanitizeConfig(body.Config),
	})
	if err != nil {
		logging.FromContext(c.Request.Context()).LogError("gemini_generate", err)
		c.String(http.StatusInternalServerError, "Gemini request failed.")
		return
	}
	c.JSON(http.StatusOK, res)
}

// requestParts prefers parts when it is an array, else wraps a string prompt.
func requestParts(body proxyRequest) ([]Part, bool) {
	if trimmed := bytes.TrimSpace(body.Parts); len(trimmed) > 0 && trimmed[0] == '[' {
		var parts []Part
		if json.Unmarshal(trimmed, &parts) == nil {
			return parts, true
		}
	}
	var prompt string
	if p := bytes.TrimSpace(body.Prompt); len(p) > 0 && p[0] == '"' && json.Unmarshal(p, &prompt) == nil {
		return []Part{{Text: prompt}}, true
	}
	return nil, false
}

// RunPruner prunes idle limiter buckets every interval until ctx is done.
func RunPruner(ctx context.Context, l *IPLimiter, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Prune()
		}
	}
}
