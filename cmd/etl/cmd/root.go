package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"storefront-catalog-miner/config"
	appfx "storefront-catalog-miner/internal/app/fx"
	"storefront-catalog-miner/internal/envutil"
	"storefront-catalog-miner/internal/run"
	"storefront-catalog-miner/internal/store"
	"storefront-catalog-miner/internal/urls"
)

func newRootCmd() *cobra.Command {
	var (
		configFile   string
		urlsFile     string
		ensureSchema bool
	)

	rootCmd := &cobra.Command{
		Use:           "etl",
		Short:         "Run one catalog ingest pass over the storefront URL list",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.NewViper()
			if err := config.ReadFile(v, configFile); err != nil {
				return err
			}
			if strings.TrimSpace(urlsFile) != "" {
				v.Set("URLS_FILE", urlsFile)
			}
			if cmd.Flags().Changed("ensure-schema") {
				v.Set("ENSURE_SCHEMA", ensureSchema)
			}
			return runApp(v)
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.Flags().StringVar(&configFile, "config",
		envutil.String(os.Getenv, "CONFIG_FILE", ""),
		"Config file path (KEY=value per line; env vars take precedence)")
	rootCmd.Flags().StringVar(&urlsFile, "urls", "",
		"Storefront URL list path (overrides URLS_FILE)")
	rootCmd.Flags().BoolVar(&ensureSchema, "ensure-schema",
		envutil.Bool(os.Getenv, "ENSURE_SCHEMA", true),
		"Create the catalog tables at startup (disable when migrations own the schema)")

	return rootCmd
}

func runApp(v *viper.Viper) error {
	app := fx.New(
		fx.Supply(v),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		appfx.CoreAppOptions,
		appfx.PipelineOptions,
		fx.Invoke(registerRunHook),
	)
	return runLifecycle(app)
}

type lifecycleApp interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// runLifecycle runs the whole pass inside OnStart; no deadline, a run
// takes as long as its slowest storefront. A failed start still stops the
// app so hooks that already ran (db close, log sync) get unwound.
func runLifecycle(app lifecycleApp) error {
	if err := app.Start(context.Background()); err != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = app.Stop(stopCtx)
		return err
	}
	return app.Stop(context.Background())
}

type runHookParams struct {
	fx.In

	Lc     fx.Lifecycle
	Cfg    config.Config
	Runner *run.Runner
	Store  *store.Store
}

func registerRunHook(p runHookParams) {
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if p.Cfg.EnsureSchema {
				if err := p.Store.EnsureSchema(ctx); err != nil {
					return fmt.Errorf("ensure schema: %w", err)
				}
			}
			list, err := urls.Read(p.Cfg.URLsFile)
			if err != nil {
				return err
			}
			p.Runner.Run(ctx, list)
			return nil
		},
	})
}
