package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mys-constructora/backoffice/internal/hr/domain"
)

type EmployeeRepository struct {
	db *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id::text, org_id, worker_id, name, address, phone, dpi, position_title,
daily_salary, experience, status, is_contract_accepted, created_at`

func scanEmployee(row pgx.Row) (*domain.EmployeeRow, error) {
	var e domain.EmployeeRow
	err := row.Scan(&e.ID, &e.OrgID, &e.WorkerID, &e.Name, &e.Address, &e.Phone, &e.DPI, &e.Position,
		&e.DailySalary, &e.Experience, &e.Status, &e.IsContractAccepted, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns the org's employees in hiring order.
func (r *EmployeeRepository) List(ctx context.Context, orgID string) ([]domain.EmployeeRow, error) {
	q := `
select ` + employeeColumns + `
from employees
where org_id = $1
order by created_at asc, worker_id asc;
`
	rows, err := r.db.Query(ctx, q, orgID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	out := make([]domain.EmployeeRow, 0, 32)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *EmployeeRepository) FindByWorkerID(ctx context.Context, orgID, workerID string) (*domain.EmployeeRow, error) {
	q := `
select ` + employeeColumns + `
from employees
where org_id = $1 and worker_id = $2;
`
	e, err := scanEmployee(r.db.QueryRow(ctx, q, orgID, workerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWorkerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return e, nil
}

// Insert stores a new employee and fills in its id and created_at.
func (r *EmployeeRepository) Insert(ctx context.Context, e *domain.EmployeeRow) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	const q = `
insert into employees (id, org_id, worker_id, name, address, phone, dpi, position_title,
	daily_salary, experience, status, is_contract_accepted)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
returning created_at;
`
	err := r.db.QueryRow(ctx, q, e.ID, e.OrgID, e.WorkerID, e.Name, e.Address, e.Phone, e.DPI, e.Position,
		e.DailySalary, e.Experience, e.Status, e.IsContractAccepted).Scan(&e.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrWorkerIDExists
	}
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

var workerSeqRe = regexp.MustCompile(`(?i)ID-PRO-(\d{4,})`)

// MaxWorkerSeq returns the highest N among worker ids shaped ID-PRO-NNNN, or 0.
func (r *EmployeeRepository) MaxWorkerSeq(ctx context.Context, orgID string) (int, error) {
	const q = `
select worker_id
from employees
where org_id = $1 and worker_id ilike 'ID-PRO-%';
`
	rows, err := r.db.Query(ctx, q, orgID)
	if err != nil {
		return 0, fmt.Errorf("list worker ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, 32)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return MaxSeq(ids), nil
}

// MaxSeq extracts the largest ID-PRO sequence number from ids.
func MaxSeq(ids []string) int {
	max := 0
	for _, id := range ids {
		m := workerSeqRe.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return max
}

func (r *EmployeeRepository) UpdateStatus(ctx context.Context, orgID, id, status string) error {
	const q = `
update employees
set status = $3, updated_at = now()
where org_id = $1 and id::text = $2;
`
	ct, err := r.db.Exec(ctx, q, orgID, id, status)
	if err != nil {
		return fmt.Errorf("update employee status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}
