package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mys-constructora/backoffice/internal/hr/domain"
	"github.com/mys-constructora/backoffice/internal/storage/postgres/pgtest"
)

func TestMaxSeq(t *testing.T) {
	assert.Equal(t, 0, MaxSeq(nil))
	assert.Equal(t, 12, MaxSeq([]string{"ID-PRO-0003", "id-pro-0012", "CUSTOM", "ID-PRO-12"}))
	assert.Equal(t, 10000, MaxSeq([]string{"ID-PRO-10000", "ID-PRO-9999"}))
}

func TestEmployeeAndAttendanceRepositories(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()
	emps := NewEmployeeRepository(pool)
	atts := NewAttendanceRepository(pool)

	dpi := "1234567890123"
	e := &domain.EmployeeRow{OrgID: "org", WorkerID: "ID-PRO-0007", Name: "Ana", DPI: &dpi,
		Position: "Albañil", DailySalary: 100, Status: domain.StatusActive, IsContractAccepted: true}
	require.NoError(t, emps.Insert(ctx, e))
	assert.False(t, e.CreatedAt.IsZero())

	dup := *e
	dup.ID = ""
	assert.ErrorIs(t, emps.Insert(ctx, &dup), domain.ErrWorkerIDExists)

	other := *e
	other.ID, other.OrgID = "", "org-2"
	require.NoError(t, emps.Insert(ctx, &other), "worker ids are unique per org")

	seq, err := emps.MaxWorkerSeq(ctx, "org")
	require.NoError(t, err)
	assert.Equal(t, 7, seq)

	found, err := emps.FindByWorkerID(ctx, "org", "ID-PRO-0007")
	require.NoError(t, err)
	assert.Equal(t, e.ID, found.ID)
	_, err = emps.FindByWorkerID(ctx, "org", "ID-PRO-0008")
	assert.ErrorIs(t, err, domain.ErrWorkerNotFound)

	lat, lng := 14.6, -90.5
	require.NoError(t, atts.Insert(ctx, &domain.AttendanceRow{OrgID: "org", EmployeeID: e.ID, Day: "2025-03-14",
		Method: domain.MethodSelf, Lat: &lat, Lng: &lng}))
	err = atts.Insert(ctx, &domain.AttendanceRow{OrgID: "org", EmployeeID: e.ID, Day: "2025-03-14", Method: domain.MethodEmergency})
	assert.ErrorIs(t, err, domain.ErrAlreadyMarked)

	ok, err := atts.Exists(ctx, "org", e.ID, "2025-03-14")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := atts.ListSince(ctx, "org", "2025-03-01")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025-03-14", list[0].Day)

	require.NoError(t, emps.UpdateStatus(ctx, "org", e.ID, domain.StatusInactive))
	assert.ErrorIs(t, emps.UpdateStatus(ctx, "org", "not-a-uuid", domain.StatusInactive), domain.ErrEmployeeNotFound)
}

func TestApplicationRepository(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()
	repo := NewApplicationRepository(pool)

	id, err := repo.Insert(ctx, &domain.ApplicationRow{OrgID: "org", Name: "Ana", DPI: "1234567890123",
		PositionApplied: "Peón", Source: domain.SourcePortalContract, Meta: []byte(`{"ua":"x"}`)})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, "org", id, domain.AppApproved))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "org-2", id, domain.AppRejected), domain.ErrApplicationNotFound)

	list, err := repo.List(ctx, "org")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.AppApproved, list[0].Status)
}
