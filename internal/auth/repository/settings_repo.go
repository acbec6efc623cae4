package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mys-constructora/backoffice/internal/auth/domain"
)

type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get returns the admin settings row for an org.
func (r *SettingsRepository) Get(ctx context.Context, orgID string) (*domain.AdminSettings, error) {
	var s domain.AdminSettings
	err := r.pool.QueryRow(ctx, `
		SELECT org_id, password_hash, updated_at
		FROM admin_settings
		WHERE org_id = $1
	`, orgID).Scan(&s.OrgID, &s.PasswordHash, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin settings: %w", err)
	}
	return &s, nil
}

// SetPasswordHash upserts the admin password hash.
func (r *SettingsRepository) SetPasswordHash(ctx context.Context, orgID, hash string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admin_settings (org_id, password_hash, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (org_id) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, updated_at = NOW()
	`, orgID, hash)
	if err != nil {
		return fmt.Errorf("set admin password: %w", err)
	}
	return nil
}
