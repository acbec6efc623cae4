// Package cmd is the maintenance CLI: migrations, exports, one-off jobs and
// admin password management.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mys-constructora/backoffice/config"
	"github.com/mys-constructora/backoffice/internal/auth/service"
	"github.com/mys-constructora/backoffice/internal/bootstrap"
	"github.com/mys-constructora/backoffice/internal/cronjob"
	"github.com/mys-constructora/backoffice/internal/finance"
	"github.com/mys-constructora/backoffice/internal/logging"
	"github.com/mys-constructora/backoffice/internal/storage/postgres"
)

type App struct {
	cfg *config.Config
}

func (a *App) load(*cobra.Command, []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.App.LogLevel, cfg.App.Environment)
	a.cfg = cfg
	return nil
}

// services opens the database (and Redis when reachable) and builds the
// service graph. The returned func releases both.
func (a *App) services(ctx context.Context) (*bootstrap.Services, func(), error) {
	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{Config: &a.cfg.Database})
	if err != nil {
		return nil, nil, err
	}
	var rdb *redis.Client
	if a.cfg.Redis.Addr != "" {
		if rdb, err = bootstrap.OpenRedis(ctx, &a.cfg.Redis); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, notifications disabled")
			rdb = nil
		}
	}
	closeAll := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		pool.Close()
	}
	svc, err := bootstrap.NewServices(a.cfg, pool, rdb, nil)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return svc, closeAll, nil
}

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return postgres.Migrate(app.cfg.Database.DatabaseURL())
		},
	}
}

func newRollbackCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback [steps]",
		Short: "Revert the last N migrations (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("steps must be a positive integer")
				}
				steps = n
			}
			return postgres.Rollback(app.cfg.Database.DatabaseURL(), steps)
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var projectID, out string
	cmd := &cobra.Command{
		Use:   "export-finance",
		Short: "Write transactions to an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, done, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			txs, err := svc.Finance.List(cmd.Context(), projectID, "")
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := finance.WriteWorkbook(f, txs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d transactions to %s\n", len(txs), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "only export this project id")
	cmd.Flags().StringVarP(&out, "out", "o", "finanzas.xlsx", "output file")
	return cmd
}

func newRemindCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remind-rentals",
		Short: "Push alerts for rentals ending tomorrow",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, done, err := app.services(cmd.Context())
			if err != nil {
				return err
			}
			defer done()
			if svc.Notifications == nil {
				return fmt.Errorf("redis is required to push notifications")
			}
			n, err := cronjob.RunRentalReminders(cmd.Context(), svc.Finance)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %d reminders\n", n)
			return nil
		},
	}
}

func newSetPasswordCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-password <password>",
		Short: "Replace the back-office admin password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := bootstrap.OpenDB(cmd.Context(), bootstrap.DBOptions{Config: &app.cfg.Database})
			if err != nil {
				return err
			}
			defer pool.Close()
			svc, err := bootstrap.NewServices(app.cfg, pool, nil, nil)
			if err != nil {
				return err
			}
			return svc.Passwords.Set(cmd.Context(), args[0])
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := service.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func newRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "worker",
		Short:        "Maintenance commands for the M&S back office",
		SilenceUsage: true,
	}
	withConfig := []*cobra.Command{
		newMigrateCmd(app),
		newRollbackCmd(app),
		newExportCmd(app),
		newRemindCmd(app),
		newSetPasswordCmd(app),
	}
	for _, c := range withConfig {
		c.PreRunE = app.load
	}
	root.AddCommand(withConfig...)
	root.AddCommand(newHashPasswordCmd())
	return root
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd(&App{}).ExecuteContext(context.Background())
}
