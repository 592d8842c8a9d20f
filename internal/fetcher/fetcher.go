package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"storefront-catalog-miner/config"
	"storefront-catalog-miner/internal/catalog"
)

// catalogSuffix is the fixed public catalog endpoint every storefront
// exposes under its base URL.
const catalogSuffix = "products.json"

// Client fetches one storefront's catalog feed through the proxy fetch API.
// One request per call; no retries.
type Client struct {
	apiURL string
	apiKey string
	http   *http.Client
	log    *zap.SugaredLogger
}

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.SugaredLogger `name:"scrape"`
}

func New(p Params) *Client {
	return &Client{
		apiURL: p.Cfg.FetchAPIURL,
		apiKey: p.Cfg.FetchAPIKey,
		http:   &http.Client{Timeout: p.Cfg.FetchTimeout},
		log:    p.Log,
	}
}

// CatalogURL appends the catalog suffix to a storefront base URL.
func CatalogURL(storefrontURL string) string {
	return strings.TrimRight(storefrontURL, "/") + "/" + catalogSuffix
}

// Fetch performs a single GET for the storefront's catalog and decodes the
// body as a feed. Any transport error, non-2xx status, or decode error is
// returned to the caller; the run treats it as a per-URL failure.
func (c *Client) Fetch(ctx context.Context, storefrontURL string) (catalog.Feed, error) {
	target := CatalogURL(storefrontURL)

	u, err := url.Parse(c.apiURL)
	if err != nil {
		return catalog.Feed{}, fmt.Errorf("fetch api url: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.apiKey)
	q.Set("url", target)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return catalog.Feed{}, fmt.Errorf("build request for %s: %w", target, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return catalog.Feed{}, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return catalog.Feed{}, fmt.Errorf("read body of %s: %w", target, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return catalog.Feed{}, fmt.Errorf("fetch %s: http status %d", target, resp.StatusCode)
	}

	var feed catalog.Feed
	if err := json.Unmarshal(body, &feed); err != nil {
		return catalog.Feed{}, fmt.Errorf("decode feed of %s: %w", target, err)
	}

	c.log.Infow("feed fetched",
		"url", target,
		"products", len(feed.Products),
	)
	return feed, nil
}
