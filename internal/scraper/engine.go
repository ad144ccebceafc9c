// internal/scraper/engine.go
package scraper

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/valpere/StageScrapexter/internal/config"
	"github.com/valpere/StageScrapexter/internal/extract"
	"github.com/valpere/StageScrapexter/internal/monitoring"
	"github.com/valpere/StageScrapexter/internal/utils"
	"github.com/valpere/StageScrapexter/pkg/types"
)

// Engine drives a full aggregation run: the sequential index phase, the
// bounded-concurrency detail phase, and snapshot assembly. A run always
// drains to completion and yields a snapshot; degraded sources and failed
// detail fetches surface as log lines, not errors.
type Engine struct {
	config    *config.Config
	client    *HTTPClient
	selectors extract.Selectors
	logger    utils.Logger
	metrics   *monitoring.Metrics
}

// NewEngine creates an engine for the given configuration.
func NewEngine(cfg *config.Config, logger utils.Logger, metrics *monitoring.Metrics) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = utils.NewLogger()
	}

	client := NewHTTPClient(ClientConfig{
		Timeout:       cfg.Request.ParsedTimeout(),
		RetryAttempts: cfg.Request.RetryAttempts,
		RetryDelay:    cfg.Request.ParsedRetryDelay(),
		UserAgents:    cfg.Request.UserAgents,
		Headers:       cfg.Request.Headers,
		RateLimit:     cfg.Request.RateLimit,
		RateBurst:     cfg.Request.RateBurst,
	})

	return &Engine{
		config:    cfg,
		client:    client,
		selectors: extract.DefaultSelectors(),
		logger:    logger,
		metrics:   metrics,
	}, nil
}

// Run executes one aggregation run and returns the snapshot. The run's
// current date is captured once up front so every derived date agrees.
func (e *Engine) Run(ctx context.Context) (*types.Snapshot, error) {
	started := time.Now()
	today := started.Format("2006-01-02")

	registry := NewRegistry()

	index := NewIndexFetcher(e.client, e.config.BaseURL, e.selectors, e.logger, e.metrics)
	index.Populate(ctx, e.config.Sources, registry)

	e.logger.Infof("index phase done: %d productions found, loading details", registry.Len())

	// Slots are allocated before the concurrent phase; each detail task
	// writes only its own entry.
	productions := registry.Productions()

	details := NewDetailFetcher(e.client, e.config.BaseURL, e.selectors, e.config.MaxConcurrentDetails, e.logger, e.metrics)
	details.FetchAll(ctx, productions, today)

	sortByTitle(productions)

	snapshot := &types.Snapshot{
		Meta: types.SnapshotMeta{
			GeneratedAt: started.Format("2006-01-02 15:04:05"),
			Count:       len(productions),
		},
		Items: productions,
	}

	e.metrics.SetProductions(len(productions))
	e.metrics.ObserveRun(time.Since(started))
	e.logger.Infof("run complete: %d productions in %s", len(productions), time.Since(started).Round(time.Millisecond))

	return snapshot, nil
}

// sortByTitle orders productions with German collation, the locale the
// titles are written in.
func sortByTitle(productions []*types.Production) {
	collator := collate.New(language.German)
	sort.SliceStable(productions, func(i, j int) bool {
		return collator.CompareString(productions[i].Title, productions[j].Title) < 0
	})
}
