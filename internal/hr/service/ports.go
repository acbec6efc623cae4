package service

import (
	"context"
	"time"

	"github.com/mys-constructora/backoffice/internal/hr/domain"
)

type EmployeeStore interface {
	List(ctx context.Context, orgID string) ([]domain.EmployeeRow, error)
	FindByWorkerID(ctx context.Context, orgID, workerID string) (*domain.EmployeeRow, error)
	Insert(ctx context.Context, e *domain.EmployeeRow) error
	MaxWorkerSeq(ctx context.Context, orgID string) (int, error)
	UpdateStatus(ctx context.Context, orgID, id, status string) error
}

type AttendanceStore interface {
	Exists(ctx context.Context, orgID, employeeID, day string) (bool, error)
	Insert(ctx context.Context, a *domain.AttendanceRow) error
	ListSince(ctx context.Context, orgID, since string) ([]domain.AttendanceRow, error)
}

type ApplicationStore interface {
	Insert(ctx context.Context, a *domain.ApplicationRow) (string, error)
	List(ctx context.Context, orgID string) ([]domain.ApplicationRow, error)
	UpdateStatus(ctx context.Context, orgID, id, status string) error
}

// Clock reports wall time in the org's zone.
type Clock struct {
	Loc *time.Location
	Now func() time.Time
}

func NewClock(loc *time.Location) Clock {
	return Clock{Loc: loc, Now: time.Now}
}

// Local returns the current time in the org's zone.
func (c Clock) Local() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Loc
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// Today returns the local calendar day as YYYY-MM-DD.
func (c Clock) Today() string {
	return c.Local().Format(domain.DateLayout)
}

// AddDays shifts a YYYY-MM-DD day by delta calendar days.
func AddDays(day string, delta int) (string, error) {
	t, err := time.Parse(domain.DateLayout, day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, delta).Format(domain.DateLayout), nil
}

// InSelfWindow reports whether t falls in 07:00:00-07:29:59.
func InSelfWindow(t time.Time) bool {
	return t.Hour() == 7 && t.Minute() < 30
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
