// internal/scraper/detail.go
package scraper

import (
	"context"
	"sync"
	"time"

	"github.com/valpere/StageScrapexter/internal/extract"
	"github.com/valpere/StageScrapexter/internal/monitoring"
	"github.com/valpere/StageScrapexter/internal/utils"
	"github.com/valpere/StageScrapexter/pkg/types"
)

// DetailFetcher retrieves one detail page per production under a counting
// semaphore. Each task writes only its own pre-allocated Production slot,
// so the phase needs no locking, and any single task's failure leaves that
// production with stub-only data without disturbing its siblings.
type DetailFetcher struct {
	client      *HTTPClient
	selectors   extract.Selectors
	baseURL     string
	concurrency int
	logger      utils.Logger
	metrics     *monitoring.Metrics
}

// NewDetailFetcher creates a detail fetcher with the given concurrency cap.
func NewDetailFetcher(client *HTTPClient, baseURL string, selectors extract.Selectors, concurrency int, logger utils.Logger, metrics *monitoring.Metrics) *DetailFetcher {
	if concurrency <= 0 {
		concurrency = 10
	}

	return &DetailFetcher{
		client:      client,
		selectors:   selectors,
		baseURL:     baseURL,
		concurrency: concurrency,
		logger:      logger,
		metrics:     metrics,
	}
}

// FetchAll fetches and extracts the detail page of every production, then
// derives its next relevant date against today. It returns once every task
// has drained; there is no cancellation between tasks.
func (f *DetailFetcher) FetchAll(ctx context.Context, productions []*types.Production, today string) {
	semaphore := make(chan struct{}, f.concurrency)
	var wg sync.WaitGroup

	for _, production := range productions {
		wg.Add(1)

		go func(p *types.Production) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			f.fetchOne(ctx, p, today)
		}(production)
	}

	wg.Wait()
}

// fetchOne populates one production's detail slot. Failures are logged and
// attributed to this production only.
func (f *DetailFetcher) fetchOne(ctx context.Context, p *types.Production, today string) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Errorf("detail extraction panic for %s (%s): %v", p.ID, p.URL, r)
			f.metrics.DetailFailed()
		}
	}()

	start := time.Now()
	doc, err := f.client.GetDocument(ctx, p.URL)
	f.metrics.ObserveRequest("detail", err, time.Since(start))

	if err != nil {
		f.logger.Errorf("detail fetch failed for %s (%s): %v", p.ID, p.URL, err)
		f.metrics.DetailFailed()
		return
	}

	p.ProductionDetail = extract.ExtractDetail(doc, f.baseURL, f.selectors)
	p.NextRelevantDate = NextRelevantDate(p.Schedule, today)
}
