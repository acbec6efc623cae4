package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	got Request
	res *Result
	err error
}

func (f *fakeGenerator) Generate(_ context.Context, req Request) (*Result, error) {
	f.got = req
	return f.res, f.err
}

func proxyRouter(gen Generator, limiter *IPLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewProxy(gen, limiter).Register(r)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/gemini/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestProxy_NotConfigured(t *testing.T) {
	rr := post(proxyRouter(nil, nil), `{"model":"gemini-3-flash-preview","prompt":"hola"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "Gemini is not configured on this server.", rr.Body.String())
}

func TestProxy_Validation(t *testing.T) {
	r := proxyRouter(&fakeGenerator{res: &Result{}}, nil)

	cases := []struct {
		body string
		code int
		msg  string
	}{
		{`{"model":"gpt-4","prompt":"x"}`, http.StatusBadRequest, "Model not allowed."},
		{`{"prompt":"x"}`, http.StatusBadRequest, "Model not allowed."},
		{`not json`, http.StatusBadRequest, "Model not allowed."},
		{`{"model":"gemini-3-pro-preview"}`, http.StatusBadRequest, "Request must include prompt (string) or parts (array)."},
		{`{"model":"gemini-3-pro-preview","prompt":5}`, http.StatusBadRequest, "Request must include prompt (string) or parts (array)."},
		{`{"model":"gemini-3-pro-preview","prompt":null}`, http.StatusBadRequest, "Request must include prompt (string) or parts (array)."},
		{`{"model":"gemini-3-pro-preview","parts":{"text":"x"}}`, http.StatusBadRequest, "Request must include prompt (string) or parts (array)."},
	}
	for _, tc := range cases {
		rr := post(r, tc.body)
		assert.Equal(t, tc.code, rr.Code, tc.body)
		assert.Equal(t, tc.msg, rr.Body.String(), tc.body)
	}
}

func TestProxy_ForwardsPromptAndSanitizedConfig(t *testing.T) {
	text := "listo"
	gen := &fakeGenerator{res: &Result{Text: &text}}
	r := proxyRouter(gen, nil)

	rr := post(r, `{"model":"gemini-3-flash-preview","prompt":"hola","config":{"responseMimeType":"application/json","temperature":1,"tools":[{"googleSearch":{}}]}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"text":"listo"}`, rr.Body.String())

	assert.Equal(t, ModelFlash, gen.got.Model)
	assert.Equal(t, []Part{{Text: "hola"}}, gen.got.Parts)
	assert.Equal(t, &Config{ResponseMimeType: "application/json", Tools: []Tool{GoogleSearchTool()}}, gen.got.Config)
}

func TestProxy_PartsWinOverPrompt(t *testing.T) {
	gen := &fakeGenerator{res: &Result{Images: []InlineData{{Data: "AAA", MimeType: "image/png"}}}}
	r := proxyRouter(gen, nil)

	rr := post(r, `{"model":"gemini-2.5-flash-image","prompt":"ignored","parts":[{"inlineData":{"data":"QUJD","mimeType":"image/jpeg"}},{"text":"quita el fondo"}]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"text":null,"images":[{"data":"AAA","mimeType":"image/png"}]}`, rr.Body.String())

	require.Len(t, gen.got.Parts, 2)
	assert.Equal(t, "image/jpeg", gen.got.Parts[0].InlineData.MimeType)
	assert.Equal(t, "quita el fondo", gen.got.Parts[1].Text)
	assert.Nil(t, gen.got.Config)
}

func TestProxy_UpstreamFailure(t *testing.T) {
	r := proxyRouter(&fakeGenerator{err: errors.New("boom")}, nil)
	rr := post(r, `{"model":"gemini-3-flash-preview","prompt":"hola"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Gemini request failed.", rr.Body.String())
}

func TestProxy_RateLimited(t *testing.T) {
	text := "ok"
	r := proxyRouter(&fakeGenerator{res: &Result{Text: &text}}, NewIPLimiter(2, time.Minute))
	assert.Equal(t, http.StatusOK, post(r, `{"model":"gemini-3-flash-preview","prompt":"a"}`).Code)
	assert.Equal(t, http.StatusOK, post(r, `{"model":"gemini-3-flash-preview","prompt":"a"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, post(r, `{"model":"gemini-3-flash-preview","prompt":"a"}`).Code)
}

func TestProxy_ChunkedBodyOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 64)
		c.Next()
	})
	gen := &fakeGenerator{res: &Result{}}
	NewProxy(gen, nil).Register(r)

	body := `{"model":"gemini-3-flash-preview","prompt":"` + strings.Repeat("a", 512) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/gemini/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, "Request body too large.", rr.Body.String())
	assert.Empty(t, gen.got.Model)
}
