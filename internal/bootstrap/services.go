package bootstrap

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/mys-constructora/backoffice/config"
	authrepo "github.com/mys-constructora/backoffice/internal/auth/repository"
	authsvc "github.com/mys-constructora/backoffice/internal/auth/service"
	"github.com/mys-constructora/backoffice/internal/finance"
	"github.com/mys-constructora/backoffice/internal/gemini"
	hrrepo "github.com/mys-constructora/backoffice/internal/hr/repository"
	hrsvc "github.com/mys-constructora/backoffice/internal/hr/service"
	"github.com/mys-constructora/backoffice/internal/insights"
	"github.com/mys-constructora/backoffice/internal/notifications"
	"github.com/mys-constructora/backoffice/internal/projects"
)

// Services holds every repository and service of the back office, built
// once and shared by the HTTP server, the scheduler and the CLI.
type Services struct {
	Config *config.Config
	Loc    *time.Location

	Notifications *notifications.Repo
	Projects      *projects.Repo
	Finance       *finance.Service
	Dashboard     *finance.DashboardBuilder
	Attendance    *hrsvc.AttendanceService
	Employees     *hrsvc.EmployeeService
	Applications  *hrsvc.ApplicationService
	Passwords     *authsvc.PasswordService
	Insights      *insights.Service
	Gemini        gemini.Generator
}

// NewServices wires the stores on pool and rdb. rdb and gen may be nil:
// notifications are then dropped and AI features answer 503.
func NewServices(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, gen gemini.Generator) (*Services, error) {
	loc, err := time.LoadLocation(cfg.Portal.TimeZone)
	if err != nil {
		return nil, err
	}
	org := cfg.Portal.OrgID

	s := &Services{Config: cfg, Loc: loc, Gemini: gen}

	var pusher notifications.Pusher
	if rdb != nil {
		s.Notifications = notifications.NewRepo(rdb, org)
		pusher = s.Notifications
	}

	clock := hrsvc.NewClock(loc)
	employees := hrrepo.NewEmployeeRepository(pool)
	attendance := hrrepo.NewAttendanceRepository(pool)
	applications := hrrepo.NewApplicationRepository(pool)

	s.Projects = projects.NewRepo(pool, org)
	s.Finance = finance.NewService(finance.NewRepo(pool, org), pusher, loc)
	s.Attendance = hrsvc.NewAttendanceService(employees, attendance, pusher, org, cfg.Portal.AdminToken, clock)
	s.Employees = hrsvc.NewEmployeeService(employees, attendance, org, clock)
	s.Applications = hrsvc.NewApplicationService(applications, pusher, org)
	s.Passwords = authsvc.NewPasswordService(authrepo.NewSettingsRepository(pool), org)

	s.Dashboard = &finance.DashboardBuilder{
		Finance:  s.Finance,
		Projects: s.Projects,
		Staff:    s.Employees,
		Apps:     s.Applications,
	}
	s.Insights = insights.NewService(gen, s.Dashboard, s.Finance, s.Projects)
	return s, nil
}
