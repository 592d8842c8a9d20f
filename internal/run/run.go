package run

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"storefront-catalog-miner/internal/catalog"
	"storefront-catalog-miner/internal/fetcher"
	"storefront-catalog-miner/internal/store"
)

// Fetcher retrieves one storefront's decoded catalog feed.
type Fetcher interface {
	Fetch(ctx context.Context, storefrontURL string) (catalog.Feed, error)
}

// Gateway persists one observation record; it never fails the caller.
type Gateway interface {
	Persist(ctx context.Context, rec catalog.Record) store.StepResults
}

// Summary is the terminal report of one ingest pass.
type Summary struct {
	RunID       string
	Total       int
	Succeeded   int
	Failed      int
	SuccessRate float64 // percent
	Elapsed     time.Duration
}

// Runner processes storefronts strictly one at a time, in list order.
// A fetch failure skips the storefront; record-level errors inside a feed
// never fail the storefront.
type Runner struct {
	fetcher Fetcher
	gateway Gateway
	norm    *catalog.Normalizer
	log     *zap.SugaredLogger
}

type Params struct {
	fx.In

	Fetcher *fetcher.Client
	Gateway *store.Store
	Log     *zap.SugaredLogger `name:"scrape"`
}

func New(p Params) *Runner {
	return NewRunner(p.Fetcher, p.Gateway, catalog.NewNormalizer(p.Log), p.Log)
}

func NewRunner(f Fetcher, g Gateway, norm *catalog.Normalizer, log *zap.SugaredLogger) *Runner {
	return &Runner{fetcher: f, gateway: g, norm: norm, log: log}
}

func (r *Runner) Run(ctx context.Context, storefronts []string) Summary {
	start := time.Now()
	runID := uuid.NewString()
	log := r.log.With("run_id", runID)

	log.Infow("run started", "url_count", len(storefronts))

	good, bad := 0, 0
	for _, base := range storefronts {
		feed, err := r.fetcher.Fetch(ctx, base)
		if err != nil {
			log.Errorw("fetch failed, skipping storefront", "url", base, "err", err)
			bad++
			continue
		}

		records := 0
		for rec := range r.norm.Records(feed) {
			r.gateway.Persist(ctx, rec)
			records++
		}
		log.Infow("storefront ingested", "url", base, "records", records)
		good++
	}

	total := len(storefronts)
	rate := 0.0
	if total > 0 {
		rate = round2(float64(good) / float64(total) * 100)
	}
	elapsed := time.Since(start)

	log.Infow("run complete",
		"total_urls", total,
		"success_count", good,
		"failure_count", bad,
		"success_rate_pct", rate,
		"elapsed_min", round2(elapsed.Minutes()),
	)

	return Summary{
		RunID:       runID,
		Total:       total,
		Succeeded:   good,
		Failed:      bad,
		SuccessRate: rate,
		Elapsed:     elapsed,
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
