package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/mys-constructora/backoffice/internal/auth/middleware"
	"github.com/mys-constructora/backoffice/internal/hr/domain"
	"github.com/mys-constructora/backoffice/internal/logging"
	"github.com/mys-constructora/backoffice/internal/notifications"
)

// MarkInput is a worker portal attendance request.
type MarkInput struct {
	OrgID       *string
	WorkerID    string
	Lat         *float64
	Lng         *float64
	Method      string
	DeviceLabel *string
	Note        *string
	AdminToken  string
}

type MarkResult struct {
	OK           bool   `json:"ok"`
	Day          string `json:"day"`
	EmployeeName string `json:"employeeName"`
	Method       string `json:"method"`
}

type AttendanceService struct {
	employees  EmployeeStore
	attendance AttendanceStore
	notifier   notifications.Pusher
	orgID      string
	adminToken string
	clock      Clock
}

func NewAttendanceService(employees EmployeeStore, attendance AttendanceStore, notifier notifications.Pusher,
	orgID, adminToken string, clock Clock) *AttendanceService {
	return &AttendanceService{
		employees:  employees,
		attendance: attendance,
		notifier:   notifier,
		orgID:      orgID,
		adminToken: adminToken,
		clock:      clock,
	}
}

// CheckOrg resolves the requested org, defaulting to the configured one.
func CheckOrg(requested *string, configured string) error {
	org := configured
	if requested != nil {
		org = *requested
	}
	org = strings.TrimSpace(org)
	if org == "" || org != configured {
		return domain.ErrInvalidOrg
	}
	return nil
}

func finite(f *float64) bool {
	return f != nil && !math.IsNaN(*f) && !math.IsInf(*f, 0)
}

// Mark records one attendance mark for today. Checks run in a fixed order so
// the portal always reports the first failing rule.
func (s *AttendanceService) Mark(ctx context.Context, in MarkInput) (*MarkResult, error) {
	workerID := strings.ToUpper(strings.TrimSpace(in.WorkerID))
	method := in.Method
	if method == "" {
		method = domain.MethodSelf
	}

	if workerID == "" {
		return nil, domain.ErrWorkerIDRequired
	}
	if !finite(in.Lat) || !finite(in.Lng) {
		return nil, domain.ErrLatLngRequired
	}
	if method != domain.MethodSelf && method != domain.MethodEmergency {
		return nil, domain.ErrInvalidMethod
	}
	if err := CheckOrg(in.OrgID, s.orgID); err != nil {
		return nil, err
	}
	if method == domain.MethodEmergency && !middleware.TokenMatches(in.AdminToken, s.adminToken) {
		return nil, domain.ErrEmergencyNeedsAdmin
	}

	now := s.clock.Local()
	if method == domain.MethodSelf && !InSelfWindow(now) {
		return nil, domain.ErrOutsideWindow
	}
	day := now.Format(domain.DateLayout)

	emp, err := s.employees.FindByWorkerID(ctx, s.orgID, workerID)
	if err != nil {
		return nil, err
	}
	if emp.Status != domain.StatusActive {
		return nil, domain.ErrEmployeeInactive
	}

	marked, err := s.attendance.Exists(ctx, s.orgID, emp.ID, day)
	if err != nil {
		return nil, err
	}
	if marked {
		return nil, domain.ErrAlreadyMarked
	}

	if err := s.attendance.Insert(ctx, &domain.AttendanceRow{
		OrgID:       s.orgID,
		EmployeeID:  emp.ID,
		Day:         day,
		Method:      method,
		Lat:         in.Lat,
		Lng:         in.Lng,
		DeviceLabel: in.DeviceLabel,
		Note:        in.Note,
	}); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).LogInfof("mark_attendance", "%s marked %s on %s", workerID, method, day)
	notifications.BestEffort(ctx, s.notifier, notifications.New{
		Title:   "Asistencia registrada",
		Message: fmt.Sprintf("%s (%s) marcó asistencia (%s) el %s.", emp.Name, workerID, method, day),
		Type:    notifications.TypeInfo,
	})

	return &MarkResult{OK: true, Day: day, EmployeeName: emp.Name, Method: method}, nil
}
