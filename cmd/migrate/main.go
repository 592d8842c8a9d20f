package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"storefront-catalog-miner/config"
	"storefront-catalog-miner/db"
	"storefront-catalog-miner/db/migrations"
	appfx "storefront-catalog-miner/internal/app/fx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type MigrateCmd string

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	v := config.NewViper()
	if err := config.ReadFile(v, os.Getenv("CONFIG_FILE")); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	app := fx.New(
		fx.Supply(v),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		appfx.CoreAppOptions,
		fx.Supply(MigrateCmd(cmd)),
		fx.Invoke(registerMigrateHook),
	)

	startCtx, startCancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer startCancel()
	if err := app.Start(startCtx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type migrateHookParams struct {
	fx.In

	Lc     fx.Lifecycle
	Cfg    config.Config
	Logger *zap.SugaredLogger `name:"store"`

	Cmd MigrateCmd
}

func registerMigrateHook(p migrateHookParams) {
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := goose.SetDialect("postgres"); err != nil {
				return fmt.Errorf("set goose dialect: %w", err)
			}
			goose.SetBaseFS(migrations.FS)

			pgDB, err := sqlx.Open("pgx", db.PostgresDSN(p.Cfg))
			if err != nil {
				return fmt.Errorf("open postgres: %w", err)
			}
			defer func() {
				_ = pgDB.Close()
			}()

			pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
			defer pingCancel()
			if err := pgDB.PingContext(pingCtx); err != nil {
				return fmt.Errorf("ping postgres: %w", err)
			}

			p.Logger.Infow("goose_run_start", "cmd", string(p.Cmd))
			if err := goose.RunContext(ctx, string(p.Cmd), pgDB.DB, "."); err != nil {
				return fmt.Errorf("goose run %q: %w", p.Cmd, err)
			}
			p.Logger.Infow("goose_run_done", "cmd", string(p.Cmd))
			return nil
		},
	})
}
