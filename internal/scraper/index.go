// internal/scraper/index.go
package scraper

import (
	"context"
	"time"

	"github.com/valpere/StageScrapexter/internal/config"
	"github.com/valpere/StageScrapexter/internal/extract"
	"github.com/valpere/StageScrapexter/internal/monitoring"
	"github.com/valpere/StageScrapexter/internal/utils"
	"github.com/valpere/StageScrapexter/pkg/types"
)

// IndexFetcher enumerates the configured listing pages and feeds every
// sighting into the registry. Sources are processed strictly in configured
// order: the registry is first-writer-wins for scalar fields, so the first
// source an id appears in determines title, subtitle and URL.
type IndexFetcher struct {
	client    *HTTPClient
	selectors extract.Selectors
	baseURL   string
	logger    utils.Logger
	metrics   *monitoring.Metrics
}

// NewIndexFetcher creates an index fetcher.
func NewIndexFetcher(client *HTTPClient, baseURL string, selectors extract.Selectors, logger utils.Logger, metrics *monitoring.Metrics) *IndexFetcher {
	return &IndexFetcher{
		client:    client,
		selectors: selectors,
		baseURL:   baseURL,
		logger:    logger,
		metrics:   metrics,
	}
}

// Populate fetches each listing source sequentially and upserts its items
// into the registry. A source that fails to fetch is skipped entirely and
// logged; no partial item extraction happens for it.
func (f *IndexFetcher) Populate(ctx context.Context, sources []config.SourceConfig, registry *Registry) {
	for _, source := range sources {
		f.logger.Infof("loading index: %s (%s)", source.Category, source.Season)

		start := time.Now()
		doc, err := f.client.GetDocument(ctx, source.URL)
		f.metrics.ObserveRequest("index", err, time.Since(start))

		if err != nil {
			f.logger.Errorf("skipping source %s: %v", source.URL, err)
			f.metrics.SourceSkipped()
			continue
		}

		items := extract.ParseListing(doc, f.baseURL, f.selectors)
		for _, item := range items {
			id := ResolveProductionID(item.DetailURL)
			registry.Upsert(id, types.ProductionStub{
				Title:     item.Title,
				Subtitle:  item.Subtitle,
				GenreText: item.GenreText,
				URL:       item.DetailURL,
			}, source.Season, source.Category, source.Youth)
		}

		f.logger.Debugf("source %s contributed %d items", source.URL, len(items))
	}
}
