package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mys-constructora/backoffice/config"
	"github.com/mys-constructora/backoffice/internal/storage/postgres"
)

type DBOptions struct {
	Config  *config.DatabaseConfig
	Migrate bool
}

// OpenDB applies pending migrations when asked, then opens and pings the pool.
func OpenDB(ctx context.Context, opt DBOptions) (*pgxpool.Pool, error) {
	if opt.Config == nil {
		return nil, fmt.Errorf("database config is not set")
	}
	if opt.Migrate {
		if err := postgres.Migrate(opt.Config.DatabaseURL()); err != nil {
			return nil, err
		}
	}
	return postgres.NewPool(ctx, opt.Config)
}
