package finance

import (
	"context"

	"github.com/mys-constructora/backoffice/internal/projects"
)

type ProjectLister interface {
	List(ctx context.Context, f projects.Filter) ([]projects.Project, error)
}

type Headcounter interface {
	Headcount(ctx context.Context) (active, total int, err error)
}

type PendingCounter interface {
	Pending(ctx context.Context) (int, error)
}

type Dashboard struct {
	Income              float64        `json:"income"`
	Expense             float64        `json:"expense"`
	Profit              float64        `json:"profit"`
	TotalProjects       int            `json:"totalProjects"`
	ActiveProjects      int            `json:"activeProjects"`
	PausedProjects      int            `json:"pausedProjects"`
	ProjectsByStatus    map[string]int `json:"projectsByStatus"`
	ActiveEmployees     int            `json:"activeEmployees"`
	TotalEmployees      int            `json:"totalEmployees"`
	PendingApplications int            `json:"pendingApplications"`
}

// DashboardBuilder aggregates the home screen numbers. Headcount and
// applications are optional.
type DashboardBuilder struct {
	Finance  *Service
	Projects ProjectLister
	Staff    Headcounter
	Apps     PendingCounter
}

func (b *DashboardBuilder) Build(ctx context.Context) (*Dashboard, error) {
	m, err := b.Finance.Metrics(ctx, "")
	if err != nil {
		return nil, err
	}
	d := &Dashboard{
		Income:           m.Income,
		Expense:          m.Expense,
		Profit:           m.Balance,
		ProjectsByStatus: make(map[string]int, len(projects.Statuses)),
	}
	for _, st := range projects.Statuses {
		d.ProjectsByStatus[st] = 0
	}

	if b.Projects != nil {
		list, err := b.Projects.List(ctx, projects.Filter{})
		if err != nil {
			return nil, err
		}
		d.TotalProjects = len(list)
		for _, p := range list {
			d.ProjectsByStatus[p.Status]++
		}
		d.ActiveProjects = d.ProjectsByStatus[projects.StatusActive]
		d.PausedProjects = d.ProjectsByStatus[projects.StatusPaused]
	}
	if b.Staff != nil {
		if d.ActiveEmployees, d.TotalEmployees, err = b.Staff.Headcount(ctx); err != nil {
			return nil, err
		}
	}
	if b.Apps != nil {
		if d.PendingApplications, err = b.Apps.Pending(ctx); err != nil {
			return nil, err
		}
	}
	return d, nil
}
