package fx

import (
	"go.uber.org/fx"

	"storefront-catalog-miner/config"
	"storefront-catalog-miner/db"
	"storefront-catalog-miner/internal/fetcher"
	"storefront-catalog-miner/internal/logs"
	"storefront-catalog-miner/internal/run"
	"storefront-catalog-miner/internal/store"
)

// CoreAppOptions wires config and logging; the cobra command supplies the
// viper instance after merging an optional config file.
var CoreAppOptions = fx.Options(
	fx.Provide(
		config.NewConfig,
		logs.NewStreamLoggers,
	),
)

// PipelineOptions wires the database, gateway, fetcher, and runner.
var PipelineOptions = fx.Options(
	fx.Provide(
		db.NewSQLXPostgresDB,
		store.New,
		fetcher.New,
		run.New,
	),
)
