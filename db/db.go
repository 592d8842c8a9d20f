package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"storefront-catalog-miner/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type Params struct {
	fx.In

	Lc  fx.Lifecycle
	Cfg config.Config
	Log *zap.SugaredLogger `name:"store"`
}

// NewSQLXPostgresDB opens the catalog database. The connection is pinged on
// start, so an unreachable database fails the run loudly instead of handing
// out an unready handle, and is closed on stop on every exit path.
func NewSQLXPostgresDB(p Params) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", PostgresDSN(p.Cfg))
	if err != nil {
		return nil, err
	}

	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.PingContext(ctx); err != nil {
				_ = db.Close()
				return fmt.Errorf("postgres ping failed: %w", err)
			}
			p.Log.Infow("postgres connected", "host", p.Cfg.DBHost, "db", p.Cfg.DBName)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := db.Close(); err != nil {
				p.Log.Warnw("postgres close failed", "err", err)
			}
			return nil
		},
	})

	return db, nil
}

func PostgresDSN(cfg config.Config) string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.DBHost, cfg.DBPort),
		Path:   cfg.DBName,
	}
	if strings.TrimSpace(cfg.DBUser) != "" {
		if cfg.DBPassword == "" {
			u.User = url.User(cfg.DBUser)
		} else {
			u.User = url.UserPassword(cfg.DBUser, cfg.DBPassword)
		}
	}
	return u.String()
}
