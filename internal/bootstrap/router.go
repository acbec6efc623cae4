package bootstrap

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/mys-constructora/backoffice/internal/api/http"
	"github.com/mys-constructora/backoffice/internal/api/http/middleware"
	authhttp "github.com/mys-constructora/backoffice/internal/auth/http"
	authmw "github.com/mys-constructora/backoffice/internal/auth/middleware"
	"github.com/mys-constructora/backoffice/internal/budgets"
	"github.com/mys-constructora/backoffice/internal/finance"
	"github.com/mys-constructora/backoffice/internal/gemini"
	hrhttp "github.com/mys-constructora/backoffice/internal/hr/http"
	"github.com/mys-constructora/backoffice/internal/insights"
	"github.com/mys-constructora/backoffice/internal/notifications"
	"github.com/mys-constructora/backoffice/internal/projects"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Services    *Services
	Limiter     *gemini.IPLimiter
	// Verifier enables Firebase bearer tokens on /api/v1. Optional.
	Verifier authmw.TokenVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Services.Config
	svc := dep.Services

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.BodyLimit(int64(cfg.Gemini.BodyLimitMB) << 20))

	var db, cache httpapi.Pinger
	if dep.DB != nil {
		db = dep.DB
	}
	if dep.Redis != nil {
		cache = httpapi.PingFunc(func(ctx context.Context) error { return dep.Redis.Ping(ctx).Err() })
	}
	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, db, cache).RegisterRoutes(r)

	gemini.NewProxy(svc.Gemini, dep.Limiter).Register(r)

	fn := r.Group("/functions/v1")
	hrhttp.New(svc.Attendance, svc.Employees, svc.Applications, cfg.Portal).Register(fn)

	public := r.Group("/api/v1")
	api := r.Group("/api/v1", authmw.AdminAuth(cfg.Portal.AdminToken, dep.Verifier))

	authhttp.New(svc.Passwords).Register(public, api)
	projects.Register(api.Group("/projects"), svc.Projects)
	finance.Register(api, svc.Finance, svc.Dashboard)
	budgets.Register(api, svc.Projects)
	insights.Register(api.Group("/insights"), svc.Insights)
	if svc.Notifications != nil {
		notifications.Register(api.Group("/notifications"), svc.Notifications)
	}

	middleware.SPAFallback(r, cfg.Server.StaticDir,
		authmw.ForPrefix("/functions/v1/admin-rh",
			authmw.SharedSecret(authmw.HeaderAdminToken, cfg.Portal.AdminToken, "Invalid admin token")))
	return r
}
