package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mys-constructora/backoffice/internal/hr/domain"
)

type ApplicationRepository struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Insert stores a PENDING application and returns its id.
func (r *ApplicationRepository) Insert(ctx context.Context, a *domain.ApplicationRow) (string, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = domain.AppPending
	}
	const q = `
insert into candidate_applications
	(id, org_id, name, phone, dpi, experience, position_applied, status, contract_data, source, meta)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10, $11::jsonb)
returning submitted_at;
`
	err := r.db.QueryRow(ctx, q, a.ID, a.OrgID, a.Name, a.Phone, a.DPI, a.Experience, a.PositionApplied,
		a.Status, nullJSON(a.ContractData), a.Source, nullJSON(a.Meta)).Scan(&a.SubmittedAt)
	if err != nil {
		return "", fmt.Errorf("insert application: %w", err)
	}
	return a.ID, nil
}

// List returns the org's applications, newest first.
func (r *ApplicationRepository) List(ctx context.Context, orgID string) ([]domain.ApplicationRow, error) {
	const q = `
select id::text, org_id, name, phone, dpi, experience, position_applied, status, source, submitted_at
from candidate_applications
where org_id = $1
order by submitted_at desc;
`
	rows, err := r.db.Query(ctx, q, orgID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ApplicationRow, 0, 16)
	for rows.Next() {
		var a domain.ApplicationRow
		if err := rows.Scan(&a.ID, &a.OrgID, &a.Name, &a.Phone, &a.DPI, &a.Experience, &a.PositionApplied,
			&a.Status, &a.Source, &a.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, orgID, id, status string) error {
	const q = `
update candidate_applications
set status = $3
where org_id = $1 and id::text = $2;
`
	ct, err := r.db.Exec(ctx, q, orgID, id, status)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}
