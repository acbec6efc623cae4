// Package hrtest provides in-memory HR stores for tests.
package hrtest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mys-constructora/backoffice/internal/hr/domain"
	"github.com/mys-constructora/backoffice/internal/hr/repository"
)

// Store implements the employee, attendance and application stores.
type Store struct {
	mu           sync.Mutex
	Employees    []domain.EmployeeRow
	Attendance   []domain.AttendanceRow
	Applications []domain.ApplicationRow
	Now          func() time.Time
}

func NewStore() *Store {
	return &Store{Now: time.Now}
}

// AddEmployee seeds an employee and returns its id.
func (s *Store) AddEmployee(orgID, workerID, name, status string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.Employees = append(s.Employees, domain.EmployeeRow{
		ID: id, OrgID: orgID, WorkerID: workerID, Name: name, Position: "Albañil",
		Status: status, IsContractAccepted: true, CreatedAt: s.Now(),
	})
	return id
}

// Employees

type EmployeeStore struct{ *Store }

func (s EmployeeStore) List(_ context.Context, orgID string) ([]domain.EmployeeRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.EmployeeRow
	for _, e := range s.Employees {
		if e.OrgID == orgID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s EmployeeStore) FindByWorkerID(_ context.Context, orgID, workerID string) (*domain.EmployeeRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.Employees {
		if e.OrgID == orgID && e.WorkerID == workerID {
			e := e
			return &e, nil
		}
	}
	return nil, domain.ErrWorkerNotFound
}

func (s EmployeeStore) Insert(_ context.Context, e *domain.EmployeeRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.Employees {
		if x.OrgID == e.OrgID && x.WorkerID == e.WorkerID {
			return domain.ErrWorkerIDExists
		}
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = s.Now()
	s.Employees = append(s.Employees, *e)
	return nil
}

func (s EmployeeStore) MaxWorkerSeq(_ context.Context, orgID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, e := range s.Employees {
		if e.OrgID == orgID {
			ids = append(ids, e.WorkerID)
		}
	}
	return repository.MaxSeq(ids), nil
}

func (s EmployeeStore) UpdateStatus(_ context.Context, orgID, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Employees {
		if s.Employees[i].OrgID == orgID && s.Employees[i].ID == id {
			s.Employees[i].Status = status
			return nil
		}
	}
	return domain.ErrEmployeeNotFound
}

// Attendance

type AttendanceStore struct{ *Store }

func (s AttendanceStore) Exists(_ context.Context, orgID, employeeID, day string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.Attendance {
		if a.OrgID == orgID && a.EmployeeID == employeeID && a.Day == day {
			return true, nil
		}
	}
	return false, nil
}

func (s AttendanceStore) Insert(ctx context.Context, a *domain.AttendanceRow) error {
	if ok, _ := s.Exists(ctx, a.OrgID, a.EmployeeID, a.Day); ok {
		return domain.ErrAlreadyMarked
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.Attendance = append(s.Attendance, *a)
	return nil
}

func (s AttendanceStore) ListSince(_ context.Context, orgID, since string) ([]domain.AttendanceRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.AttendanceRow
	for _, a := range s.Attendance {
		if a.OrgID == orgID && a.Day >= since {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// Applications

type ApplicationStore struct{ *Store }

func (s ApplicationStore) Insert(_ context.Context, a *domain.ApplicationRow) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.SubmittedAt = s.Now()
	s.Applications = append(s.Applications, *a)
	return a.ID, nil
}

func (s ApplicationStore) List(_ context.Context, orgID string) ([]domain.ApplicationRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ApplicationRow
	for _, a := range s.Applications {
		if a.OrgID == orgID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (s ApplicationStore) UpdateStatus(_ context.Context, orgID, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Applications {
		if s.Applications[i].OrgID == orgID && strings.EqualFold(s.Applications[i].ID, id) {
			s.Applications[i].Status = status
			return nil
		}
	}
	return domain.ErrApplicationNotFound
}
