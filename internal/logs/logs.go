package logs

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storefront-catalog-miner/config"
)

// StreamsOut provides the two audit streams, one for the fetch/normalize
// phase and one for database operations, plus an unnamed app logger used
// for fx lifecycle events.
type StreamsOut struct {
	fx.Out

	Scrape *zap.SugaredLogger `name:"scrape"`
	Store  *zap.SugaredLogger `name:"store"`
	App    *zap.Logger
}

func NewStreamLoggers(lc fx.Lifecycle, cfg config.Config) (StreamsOut, error) {
	scrape, err := newLogger(cfg.LogLevel, cfg.ScrapeLogPath)
	if err != nil {
		return StreamsOut{}, err
	}
	store, err := newLogger(cfg.LogLevel, cfg.StoreLogPath)
	if err != nil {
		return StreamsOut{}, err
	}
	app, err := newLogger(cfg.LogLevel, "")
	if err != nil {
		return StreamsOut{}, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = scrape.Sync()
			_ = store.Sync()
			_ = app.Sync()
			return nil
		},
	})

	return StreamsOut{
		Scrape: scrape.Sugar(),
		Store:  store.Sugar(),
		App:    app,
	}, nil
}

func newLogger(level, path string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(levelFromString(level))
	out := "stderr"
	if strings.TrimSpace(path) != "" {
		out = path
	}
	zcfg.OutputPaths = []string{out}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	return zcfg.Build()
}

func levelFromString(raw string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
