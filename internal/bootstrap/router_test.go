package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mys-constructora/backoffice/config"
	"github.com/mys-constructora/backoffice/internal/gemini"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Portal: config.PortalConfig{
			OrgID:           "org",
			TimeZone:        "America/Guatemala",
			AttendanceToken: "portal",
			AdminToken:      "admin",
		},
		Gemini: config.GeminiConfig{RateMax: 2, RateWindow: time.Minute, BodyLimitMB: 1},
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, err := NewServices(testConfig(), nil, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, svc.Notifications)
	return BuildRouter(RouterDeps{
		ServiceName: "backoffice",
		Version:     "test",
		Services:    svc,
		Limiter:     gemini.NewIPLimiter(2, time.Minute),
	})
}

func serve(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBuildRouter(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"db":"disabled"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = serve(r, http.MethodGet, "/api/v1/projects", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/budgets/catalog", map[string]string{"x-admin-token": "admin"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/finance/catalog", map[string]string{"x-admin-token": "admin"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodPost, "/api/v1/insights/briefing", map[string]string{"x-admin-token": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodPost, "/functions/v1/mark-attendance", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/functions/v1/admin-rh/health", map[string]string{"x-admin-token": "admin"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodPost, "/api/gemini/generate", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/functions/v1/admin-rh/nothing", map[string]string{"x-admin-token": "admin"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBuildRouter_AdminRHTokenBeforeRouting(t *testing.T) {
	r := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodDelete, "/functions/v1/admin-rh/unknown"},
		{http.MethodPut, "/functions/v1/admin-rh/employees"},
		{http.MethodGet, "/functions/v1/admin-rh"},
	} {
		w := serve(r, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
		assert.JSONEq(t, `{"error":"Invalid admin token"}`, w.Body.String(), tc.path)
	}

	w := serve(r, http.MethodDelete, "/functions/v1/admin-rhx", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBuildRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{
		"/api/v1/projects",
		"/functions/v1/mark-attendance",
		"/functions/v1/admin-rh/employees",
		"/api/gemini/generate",
	} {
		w := serve(r, http.MethodOptions, path, map[string]string{
			"Origin":                         "https://app.constructora.gt",
			"Access-Control-Request-Method":  "POST",
			"Access-Control-Request-Headers": "x-portal-token,x-admin-token,content-type",
		})
		assert.Less(t, w.Code, 300, path)
		assert.Equal(t, "https://app.constructora.gt", w.Header().Get("Access-Control-Allow-Origin"), path)
		allowed := w.Header().Get("Access-Control-Allow-Headers")
		assert.Contains(t, allowed, "X-Portal-Token", path)
		assert.Contains(t, allowed, "X-Admin-Token", path)
	}
}

func TestNewServices_BadZone(t *testing.T) {
	cfg := testConfig()
	cfg.Portal.TimeZone = "Mars/Olympus"
	_, err := NewServices(cfg, nil, nil, nil)
	assert.Error(t, err)
}
