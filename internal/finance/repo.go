package finance

import (
	"context"
	"fmt"

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

const columns = `id::text, project_id::text, type, description, quantity, unit, cost, category,
to_char(day, 'YYYY-MM-DD'), month, provider, to_char(rental_start, 'YYYY-MM-DD'), to_char(rental_end, 'YYYY-MM-DD')`

func scanAll(rows pgx.Rows) ([]Transaction, error) {
	defer rows.Close()
	out := make([]Transaction, 0, 32)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Type, &t.Description, &t.Quantity, &t.Unit, &t.Cost, &t.Category,
			&t.Date, &t.Month, &t.Provider, &t.RentalStart, &t.RentalEnd); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) Insert(ctx context.Context, t *Transaction) error {
	if _, err := uuid.Parse(t.ProjectID); err != nil {
		return ErrUnknownProject
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	const q = `
insert into transactions (id, org_id, project_id, type, description, quantity, unit, cost, category, day, month,
	provider, rental_start, rental_end)
values ($1::uuid, $2, $3::uuid, $4, $5, $6, $7, $8, $9, $10::date, $11, $12, $13::date, $14::date);
`
	_, err := r.db.Exec(ctx, q, t.ID, r.orgID, t.ProjectID, t.Type, t.Description, t.Quantity, t.Unit, t.Cost,
		t.Category, t.Date, t.Month, t.Provider, t.RentalStart, t.RentalEnd)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// List returns transactions newest first, optionally for one project.
func (r *Repo) List(ctx context.Context, projectID string) ([]Transaction, error) {
	q := `
select ` + columns + `
from transactions
where org_id = $1 and ($2::text = '' or project_id::text = $2::text)
order by day desc, created_at desc;
`
	rows, err := r.db.Query(ctx, q, r.orgID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return scanAll(rows)
}

// RentalsEndingOn returns transactions whose rental ends on day.
func (r *Repo) RentalsEndingOn(ctx context.Context, day string) ([]Transaction, error) {
	q := `
select ` + columns + `
from transactions
where org_id = $1 and rental_end = $2::date
order by created_at asc;
`
	rows, err := r.db.Query(ctx, q, r.orgID, day)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	return scanAll(rows)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	const q = `
delete from transactions
where org_id = $1 and id::text = $2;
`
	ct, err := r.db.Exec(ctx, q, r.orgID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
