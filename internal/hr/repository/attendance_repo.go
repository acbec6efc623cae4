package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mys-constructora/backoffice/internal/hr/domain"
)

type AttendanceRepository struct {
	db *pgxpool.Pool
}

func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Exists reports whether the employee already has a record for day (YYYY-MM-DD).
func (r *AttendanceRepository) Exists(ctx context.Context, orgID, employeeID, day string) (bool, error) {
	const q = `
select exists (
	select 1 from attendance_records
	where org_id = $1 and employee_id = $2::uuid and day = $3::date
);
`
	var ok bool
	if err := r.db.QueryRow(ctx, q, orgID, employeeID, day).Scan(&ok); err != nil {
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return ok, nil
}

// Insert stores a mark. A second mark for the same day is ErrAlreadyMarked.
func (r *AttendanceRepository) Insert(ctx context.Context, a *domain.AttendanceRow) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	const q = `
insert into attendance_records (id, org_id, employee_id, day, method, lat, lng, device_label, note)
values ($1::uuid, $2, $3::uuid, $4::date, $5, $6, $7, $8, $9);
`
	_, err := r.db.Exec(ctx, q, a.ID, a.OrgID, a.EmployeeID, a.Day, a.Method, a.Lat, a.Lng, a.DeviceLabel, a.Note)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyMarked
	}
	if err != nil {
		return fmt.Errorf("insert attendance: %w", err)
	}
	return nil
}

// ListSince returns every record of the org on or after since, oldest first.
func (r *AttendanceRepository) ListSince(ctx context.Context, orgID, since string) ([]domain.AttendanceRow, error) {
	const q = `
select id::text, org_id, employee_id::text, to_char(day, 'YYYY-MM-DD'), method, lat, lng, device_label, note
from attendance_records
where org_id = $1 and day >= $2::date
order by day asc, created_at asc;
`
	rows, err := r.db.Query(ctx, q, orgID, since)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	out := make([]domain.AttendanceRow, 0, 64)
	for rows.Next() {
		var a domain.AttendanceRow
		if err := rows.Scan(&a.ID, &a.OrgID, &a.EmployeeID, &a.Day, &a.Method, &a.Lat, &a.Lng, &a.DeviceLabel, &a.Note); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
