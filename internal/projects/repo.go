package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db    *pgxpool.Pool
	orgID string
}

func NewRepo(db *pgxpool.Pool, orgID string) *Repo {
	return &Repo{db: db, orgID: orgID}
}

const columns = `id::text, name, client_name, land_area, construction_area, location, needs_program,
status, start_date, typology, cover_type, estimated_days, ai_justification, budget_total, created_at, updated_at`

func scan(row pgx.Row) (*Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Name, &p.ClientName, &p.LandArea, &p.ConstructionArea, &p.Location, &p.NeedsProgram,
		&p.Status, &p.StartDate, &p.Typology, &p.CoverType, &p.EstimatedDays, &p.AIJustification, &p.BudgetTotal,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	Query  string
	Status string
}

func (r *Repo) Create(ctx context.Context, in Input) (*Project, error) {
	q := `
insert into projects (id, org_id, name, client_name, land_area, construction_area, location, needs_program,
	status, start_date, typology, cover_type, estimated_days, ai_justification, budget_total)
values ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
returning ` + columns + `;
`
	p, err := scan(r.db.QueryRow(ctx, q, uuid.NewString(), r.orgID, in.Name, in.ClientName, in.LandArea,
		in.ConstructionArea, in.Location, in.NeedsProgram, in.Status, in.StartDate, in.Typology, in.CoverType,
		in.EstimatedDays, in.AIJustification, in.BudgetTotal))
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Project, error) {
	q := `
select ` + columns + `
from projects
where org_id = $1 and id::text = $2;
`
	p, err := scan(r.db.QueryRow(ctx, q, r.orgID, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, err
}

func (r *Repo) List(ctx context.Context, f Filter) ([]Project, error) {
	q := `
select ` + columns + `
from projects
where org_id = $1
	and ($2::text = '' or status = $2::text)
	and ($3::text = '' or name ilike '%' || $3::text || '%' or client_name ilike '%' || $3::text || '%')
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, r.orgID, f.Status, strings.TrimSpace(f.Query))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update replaces every writable field. A nil budget total keeps the stored one.
func (r *Repo) Update(ctx context.Context, id string, in Input) (*Project, error) {
	q := `
update projects
set name = $3, client_name = $4, land_area = $5, construction_area = $6, location = $7, needs_program = $8,
	status = $9, start_date = $10, typology = $11, cover_type = $12, estimated_days = $13,
	ai_justification = $14, budget_total = coalesce($15, budget_total), updated_at = now()
where org_id = $1 and id::text = $2
returning ` + columns + `;
`
	p, err := scan(r.db.QueryRow(ctx, q, r.orgID, id, in.Name, in.ClientName, in.LandArea, in.ConstructionArea,
		in.Location, in.NeedsProgram, in.Status, in.StartDate, in.Typology, in.CoverType, in.EstimatedDays,
		in.AIJustification, in.BudgetTotal))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, err
}

// SetBudgetTotal stores the grand total of the project's latest budget.
func (r *Repo) SetBudgetTotal(ctx context.Context, id string, total float64) error {
	const q = `
update projects
set budget_total = $3, updated_at = now()
where org_id = $1 and id::text = $2;
`
	ct, err := r.db.Exec(ctx, q, r.orgID, id, total)
	if err != nil {
		return fmt.Errorf("set budget total: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the project. Its transactions are kept as history.
func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	const q = `
delete from projects
where org_id = $1 and id::text = $2;
`
	ct, err := r.db.Exec(ctx, q, r.orgID, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
