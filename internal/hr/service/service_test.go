package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mys-constructora/backoffice/internal/hr/domain"
	"github.com/mys-constructora/backoffice/internal/hr/hrtest"
	"github.com/mys-constructora/backoffice/internal/notifications"
)

const org = "org-mys"

type recordingPusher struct {
	mu   sync.Mutex
	got  []notifications.New
	fail bool
}

func (p *recordingPusher) Push(_ context.Context, in notifications.New) (*notifications.Notification, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return nil, errors.New("redis down")
	}
	p.got = append(p.got, in)
	return &notifications.Notification{Title: in.Title}, nil
}

func guatemala(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/Guatemala")
	require.NoError(t, err)
	return loc
}

func fixedClock(t *testing.T, hh, mm int) Clock {
	loc := guatemala(t)
	at := time.Date(2025, 3, 14, hh, mm, 0, 0, loc)
	return Clock{Loc: loc, Now: func() time.Time { return at.UTC() }}
}

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func newAttendance(t *testing.T, hh, mm int) (*AttendanceService, *hrtest.Store, *recordingPusher) {
	store := hrtest.NewStore()
	p := &recordingPusher{}
	svc := NewAttendanceService(hrtest.EmployeeStore{Store: store}, hrtest.AttendanceStore{Store: store}, p,
		org, "admin-secret", fixedClock(t, hh, mm))
	return svc, store, p
}

func TestMark_Success(t *testing.T) {
	svc, store, p := newAttendance(t, 7, 10)
	store.AddEmployee(org, "ID-PRO-0001", "Juan Pérez", domain.StatusActive)

	res, err := svc.Mark(context.Background(), MarkInput{WorkerID: "  id-pro-0001 ", Lat: f(14.6), Lng: f(-90.5)})
	require.NoError(t, err)
	assert.Equal(t, &MarkResult{OK: true, Day: "2025-03-14", EmployeeName: "Juan Pérez", Method: "SELF"}, res)

	require.Len(t, store.Attendance, 1)
	assert.Equal(t, "2025-03-14", store.Attendance[0].Day)
	require.Len(t, p.got, 1)
	assert.Equal(t, "Asistencia registrada", p.got[0].Title)
	assert.Equal(t, "Juan Pérez (ID-PRO-0001) marcó asistencia (SELF) el 2025-03-14.", p.got[0].Message)

	_, err = svc.Mark(context.Background(), MarkInput{WorkerID: "ID-PRO-0001", Lat: f(14.6), Lng: f(-90.5)})
	assert.ErrorIs(t, err, domain.ErrAlreadyMarked)
}

func TestMark_NotificationFailureIsIgnored(t *testing.T) {
	svc, store, p := newAttendance(t, 7, 0)
	p.fail = true
	store.AddEmployee(org, "W1", "Ana", domain.StatusActive)

	_, err := svc.Mark(context.Background(), MarkInput{WorkerID: "w1", Lat: f(1), Lng: f(2)})
	assert.NoError(t, err)
}

func TestMark_Validation(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name string
		hh   int
		mm   int
		in   MarkInput
		want error
	}{
		{"missing worker", 7, 5, MarkInput{Lat: f(1), Lng: f(1)}, domain.ErrWorkerIDRequired},
		{"missing lat", 7, 5, MarkInput{WorkerID: "W1", Lng: f(1)}, domain.ErrLatLngRequired},
		{"nan lng", 7, 5, MarkInput{WorkerID: "W1", Lat: f(1), Lng: &nan}, domain.ErrLatLngRequired},
		{"bad method", 7, 5, MarkInput{WorkerID: "W1", Lat: f(1), Lng: f(1), Method: "REMOTE"}, domain.ErrInvalidMethod},
		{"other org", 7, 5, MarkInput{OrgID: s("org-x"), WorkerID: "W1", Lat: f(1), Lng: f(1)}, domain.ErrInvalidOrg},
		{"blank org", 7, 5, MarkInput{OrgID: s("  "), WorkerID: "W1", Lat: f(1), Lng: f(1)}, domain.ErrInvalidOrg},
		{"emergency without token", 12, 0, MarkInput{WorkerID: "W1", Lat: f(1), Lng: f(1), Method: "EMERGENCY"}, domain.ErrEmergencyNeedsAdmin},
		{"before window", 6, 59, MarkInput{WorkerID: "W1", Lat: f(1), Lng: f(1)}, domain.ErrOutsideWindow},
		{"after window", 7, 30, MarkInput{WorkerID: "W1", Lat: f(1), Lng: f(1)}, domain.ErrOutsideWindow},
		{"unknown worker", 7, 29, MarkInput{WorkerID: "W404", Lat: f(1), Lng: f(1)}, domain.ErrWorkerNotFound},
		{"inactive", 7, 0, MarkInput{WorkerID: "W2", Lat: f(1), Lng: f(1)}, domain.ErrEmployeeInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newAttendance(t, tt.hh, tt.mm)
			store.AddEmployee(org, "W1", "Ana", domain.StatusActive)
			store.AddEmployee(org, "W2", "Luis", domain.StatusInactive)

			_, err := svc.Mark(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMark_EmergencyAnyTime(t *testing.T) {
	svc, store, _ := newAttendance(t, 15, 45)
	store.AddEmployee(org, "W1", "Ana", domain.StatusActive)

	res, err := svc.Mark(context.Background(), MarkInput{
		OrgID: s(org), WorkerID: "W1", Lat: f(1), Lng: f(1), Method: "EMERGENCY", AdminToken: "admin-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "EMERGENCY", res.Method)
}

func TestInSelfWindow(t *testing.T) {
	loc := time.UTC
	assert.True(t, InSelfWindow(time.Date(2025, 1, 1, 7, 0, 0, 0, loc)))
	assert.True(t, InSelfWindow(time.Date(2025, 1, 1, 7, 29, 59, 0, loc)))
	assert.False(t, InSelfWindow(time.Date(2025, 1, 1, 7, 30, 0, 0, loc)))
	assert.False(t, InSelfWindow(time.Date(2025, 1, 1, 6, 59, 59, 0, loc)))
	assert.False(t, InSelfWindow(time.Date(2025, 1, 1, 19, 10, 0, 0, loc)))
}

func TestClock_TodayUsesZone(t *testing.T) {
	// 03:00 UTC on the 15th is still the 14th in Guatemala (UTC-6).
	c := Clock{Loc: guatemala(t), Now: func() time.Time { return time.Date(2025, 3, 15, 3, 0, 0, 0, time.UTC) }}
	assert.Equal(t, "2025-03-14", c.Today())
}

func TestAddDays(t *testing.T) {
	d, err := AddDays("2025-03-01", -14)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-15", d)

	_, err = AddDays("bad", 1)
	assert.Error(t, err)
}

func newEmployees(t *testing.T) (*EmployeeService, *hrtest.Store) {
	store := hrtest.NewStore()
	clock := fixedClock(t, 9, 0)
	store.Now = clock.Now
	return NewEmployeeService(hrtest.EmployeeStore{Store: store}, hrtest.AttendanceStore{Store: store}, org, clock), store
}

func TestHire(t *testing.T) {
	svc, store := newEmployees(t)
	ctx := context.Background()

	res, err := svc.Hire(ctx, HireInput{Name: "Ana", DPI: "1234567890123", Position: "Albañil", Salary: 3000})
	require.NoError(t, err)
	assert.Equal(t, "ID-PRO-0001", res.WorkerID)
	assert.InDelta(t, 100.0, store.Employees[0].DailySalary, 1e-9)
	assert.Nil(t, store.Employees[0].Phone)

	store.AddEmployee(org, "id-pro-0041", "Legacy", domain.StatusActive)
	res, err = svc.Hire(ctx, HireInput{Name: "Luis", DPI: "1234567890123", Position: "Peón"})
	require.NoError(t, err)
	assert.Equal(t, "ID-PRO-0042", res.WorkerID)

	res, err = svc.Hire(ctx, HireInput{Name: "Eva", DPI: "1234567890123", Position: "Peón", WorkerID: " custom-7 "})
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM-7", res.WorkerID)

	_, err = svc.Hire(ctx, HireInput{Name: "Eva 2", DPI: "1234567890123", Position: "Peón", WorkerID: "CUSTOM-7"})
	assert.ErrorIs(t, err, domain.ErrWorkerIDExists)
}

func TestHire_Validation(t *testing.T) {
	svc, _ := newEmployees(t)
	ctx := context.Background()

	_, err := svc.Hire(ctx, HireInput{DPI: "1234567890123", Position: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidNameDPI)
	_, err = svc.Hire(ctx, HireInput{Name: "Ana", DPI: "123", Position: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidNameDPI)
	_, err = svc.Hire(ctx, HireInput{Name: "Ana", DPI: "1234567890123"})
	assert.ErrorIs(t, err, domain.ErrPositionRequired)
}

func TestEmployeeList(t *testing.T) {
	svc, store := newEmployees(t)
	ctx := context.Background()

	_, err := svc.Hire(ctx, HireInput{Name: "Ana", DPI: "1234567890123", Position: "Albañil", Salary: 3100})
	require.NoError(t, err)
	_, err = svc.Hire(ctx, HireInput{Name: "Luis", DPI: "1234567890123", Position: "Peón", Salary: 2500})
	require.NoError(t, err)

	ana, luis := store.Employees[0].ID, store.Employees[1].ID
	store.Attendance = []domain.AttendanceRow{
		{ID: "a0", OrgID: org, EmployeeID: ana, Day: "2025-02-27", Method: "SELF"}, // older than 14 days
		{ID: "a1", OrgID: org, EmployeeID: ana, Day: "2025-02-28", Method: "SELF", Lat: f(14.6), Lng: f(-90.5)},
		{ID: "a2", OrgID: org, EmployeeID: ana, Day: "2025-03-14", Method: "EMERGENCY"},
		{ID: "a3", OrgID: org, EmployeeID: luis, Day: "2025-03-13", Method: "SELF"},
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	a := list[0]
	assert.Equal(t, "Ana", a.Name)
	assert.Equal(t, 3100.0, a.Salary)
	assert.Equal(t, "ACTIVE", a.Status)
	assert.Equal(t, "IN", a.AttendanceStatus)
	require.NotNil(t, a.LastAttendance)
	assert.Equal(t, "a2", a.LastAttendance.ID)
	require.Len(t, a.AttendanceHistory, 2)
	assert.Equal(t, "2025-02-28", a.AttendanceHistory[0].Date)
	assert.Equal(t, 14.6, a.AttendanceHistory[0].Lat)
	assert.Equal(t, 0.0, a.AttendanceHistory[1].Lat)
	assert.Equal(t, "2025-03-14", a.HiringDate)
	assert.True(t, a.IsContractAccepted)

	l := list[1]
	assert.Equal(t, "OUT", l.AttendanceStatus)
	assert.Nil(t, l.LastAttendance)
	assert.Len(t, l.AttendanceHistory, 1)
}

func TestSetStatusAndHeadcount(t *testing.T) {
	svc, store := newEmployees(t)
	ctx := context.Background()
	id := store.AddEmployee(org, "W1", "Ana", domain.StatusActive)
	store.AddEmployee(org, "W2", "Luis", domain.StatusActive)

	assert.ErrorIs(t, svc.SetStatus(ctx, id, "ON_LEAVE"), domain.ErrInvalidStatus)
	assert.ErrorIs(t, svc.SetStatus(ctx, "missing", "FIRED"), domain.ErrEmployeeNotFound)
	require.NoError(t, svc.SetStatus(ctx, id, "FIRED"))

	active, total, err := svc.Headcount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
	assert.Equal(t, 2, total)
}

func TestSubmitApplication(t *testing.T) {
	store := hrtest.NewStore()
	p := &recordingPusher{}
	svc := NewApplicationService(hrtest.ApplicationStore{Store: store}, p, org)
	ctx := context.Background()

	id, err := svc.Submit(ctx, SubmitInput{
		Name: " María ", DPI: "1234 56789 0123", PositionApplied: "Maestro de obra",
		ContractData: []byte(`{"signed":true}`),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	row := store.Applications[0]
	assert.Equal(t, "María", row.Name)
	assert.Equal(t, "1234567890123", row.DPI)
	assert.Equal(t, domain.AppPending, row.Status)
	assert.Equal(t, domain.SourcePortalContract, row.Source)
	assert.Nil(t, row.Phone)
	require.Len(t, p.got, 1)
	assert.Equal(t, "Nueva postulación", p.got[0].Title)
	assert.Equal(t, "Nuevo aplicante: María (DPI 1234567890123) para Maestro de obra.", p.got[0].Message)
}

func TestSubmitApplication_Validation(t *testing.T) {
	svc := NewApplicationService(hrtest.ApplicationStore{Store: hrtest.NewStore()}, nil, org)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitInput{DPI: "1234567890123", PositionApplied: "x"})
	assert.ErrorIs(t, err, domain.ErrNameRequired)
	_, err = svc.Submit(ctx, SubmitInput{Name: "a", DPI: "12345", PositionApplied: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidDPI)
	_, err = svc.Submit(ctx, SubmitInput{Name: "a", DPI: "1234567890123"})
	assert.ErrorIs(t, err, domain.ErrPositionAppliedRequired)
	_, err = svc.Submit(ctx, SubmitInput{OrgID: s("other"), Name: "a", DPI: "1234567890123", PositionApplied: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrg)
}

func TestApplicationsListAndDecide(t *testing.T) {
	store := hrtest.NewStore()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	store.Now = func() time.Time { n++; return base.Add(time.Duration(n) * time.Minute) }
	svc := NewApplicationService(hrtest.ApplicationStore{Store: store}, nil, org)
	ctx := context.Background()

	first, err := svc.Submit(ctx, SubmitInput{Name: "Primero", DPI: "1234567890123", PositionApplied: "x"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, SubmitInput{Name: "Segundo", DPI: "1234567890123", PositionApplied: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Decide(ctx, first, "ACCEPTED"))
	assert.Equal(t, domain.AppApproved, store.Applications[0].Status)
	assert.ErrorIs(t, svc.Decide(ctx, first, "PENDING"), domain.ErrInvalidStatus)
	assert.ErrorIs(t, svc.Decide(ctx, "nope", "REJECTED"), domain.ErrApplicationNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Segundo", list[0].Name)
	assert.Equal(t, "ACCEPTED", list[1].Status)
	assert.Equal(t, "2025-03-01T12:01:00Z", list[1].Timestamp)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}
