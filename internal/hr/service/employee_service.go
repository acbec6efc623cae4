package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mys-constructora/backoffice/internal/hr/domain"
	"github.com/mys-constructora/backoffice/internal/logging"
)

// HireInput is an admin request to add an employee. Salary is monthly.
type HireInput struct {
	Name     string  `json:"name"`
	DPI      string  `json:"dpi"`
	Phone    string  `json:"phone"`
	Position string  `json:"position"`
	Salary   float64 `json:"salary"`
	WorkerID string  `json:"workerId"`
}

type HireResult struct {
	OK         bool   `json:"ok"`
	EmployeeID string `json:"employeeId"`
	WorkerID   string `json:"workerId"`
}

type EmployeeService struct {
	employees  EmployeeStore
	attendance AttendanceStore
	orgID      string
	clock      Clock
}

func NewEmployeeService(employees EmployeeStore, attendance AttendanceStore, orgID string, clock Clock) *EmployeeService {
	return &EmployeeService{employees: employees, attendance: attendance, orgID: orgID, clock: clock}
}

// FormatWorkerID renders the generated worker id for sequence n.
func FormatWorkerID(n int) string {
	return fmt.Sprintf("ID-PRO-%04d", n)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// List returns every employee with the last two weeks of attendance.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	today := s.clock.Today()
	since, err := AddDays(today, -domain.HistoryDays)
	if err != nil {
		return nil, err
	}

	rows, err := s.employees.List(ctx, s.orgID)
	if err != nil {
		return nil, err
	}

	byEmp := map[string][]domain.AttendanceRecord{}
	if len(rows) > 0 {
		atts, err := s.attendance.ListSince(ctx, s.orgID, since)
		if err != nil {
			return nil, err
		}
		for _, a := range atts {
			rec := domain.AttendanceRecord{ID: a.ID, Date: a.Day, Method: a.Method}
			if a.Lat != nil {
				rec.Lat = *a.Lat
			}
			if a.Lng != nil {
				rec.Lng = *a.Lng
			}
			byEmp[a.EmployeeID] = append(byEmp[a.EmployeeID], rec)
		}
	}

	out := make([]domain.Employee, 0, len(rows))
	for _, e := range rows {
		history := byEmp[e.ID]
		if history == nil {
			history = []domain.AttendanceRecord{}
		}
		emp := domain.Employee{
			ID:                 e.ID,
			WorkerID:           e.WorkerID,
			Name:               e.Name,
			Address:            e.Address,
			Phone:              deref(e.Phone),
			DPI:                deref(e.DPI),
			Position:           e.Position,
			Salary:             round2(e.DailySalary * 30),
			Experience:         e.Experience,
			Status:             e.Status,
			AttendanceStatus:   "OUT",
			AttendanceHistory:  history,
			HiringDate:         today,
			IsContractAccepted: e.IsContractAccepted,
		}
		if !e.CreatedAt.IsZero() {
			emp.HiringDate = e.CreatedAt.UTC().Format(domain.DateLayout)
		}
		for i := range history {
			if history[i].Date == today {
				rec := history[i]
				emp.AttendanceStatus = "IN"
				emp.LastAttendance = &rec
				break
			}
		}
		out = append(out, emp)
	}
	return out, nil
}

// Hire adds an active employee, generating a worker id when none is given.
func (s *EmployeeService) Hire(ctx context.Context, in HireInput) (*HireResult, error) {
	name := strings.TrimSpace(in.Name)
	dpi := strings.TrimSpace(in.DPI)
	position := strings.TrimSpace(in.Position)

	if name == "" || len(dpi) != domain.DPILength {
		return nil, domain.ErrInvalidNameDPI
	}
	if position == "" {
		return nil, domain.ErrPositionRequired
	}

	workerID := strings.ToUpper(strings.TrimSpace(in.WorkerID))
	if workerID == "" {
		max, err := s.employees.MaxWorkerSeq(ctx, s.orgID)
		if err != nil {
			return nil, err
		}
		workerID = FormatWorkerID(max + 1)
	}

	daily := 0.0
	if in.Salary > 0 && !math.IsInf(in.Salary, 0) {
		daily = in.Salary / 30
	}

	row := &domain.EmployeeRow{
		OrgID:              s.orgID,
		WorkerID:           workerID,
		Name:               name,
		Phone:              optional(strings.TrimSpace(in.Phone)),
		DPI:                &dpi,
		Position:           position,
		DailySalary:        daily,
		Status:             domain.StatusActive,
		IsContractAccepted: true,
	}
	if err := s.employees.Insert(ctx, row); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).LogInfof("hire_employee", "hired %s as %s", workerID, position)
	return &HireResult{OK: true, EmployeeID: row.ID, WorkerID: row.WorkerID}, nil
}

// SetStatus changes an employee's status (ACTIVE, INACTIVE or FIRED).
func (s *EmployeeService) SetStatus(ctx context.Context, id, status string) error {
	if !domain.ValidEmployeeStatus(status) {
		return domain.ErrInvalidStatus
	}
	return s.employees.UpdateStatus(ctx, s.orgID, id, status)
}

// Headcount returns the number of ACTIVE employees.
func (s *EmployeeService) Headcount(ctx context.Context) (active, total int, err error) {
	rows, err := s.employees.List(ctx, s.orgID)
	if err != nil {
		return 0, 0, err
	}
	for _, e := range rows {
		if e.Status == domain.StatusActive {
			active++
		}
	}
	return active, len(rows), nil
}
