// internal/scraper/identity.go

// Package scraper implements the aggregation pipeline: listing enumeration,
// the production registry with its merge contract, bounded-concurrency
// detail fetching, and the engine that drives a full run.
package scraper

import (
	"regexp"

	"github.com/valpere/StageScrapexter/internal/utils"
)

var (
	productionIDPattern = regexp.MustCompile(`produktion_id/(\d+)`)
	digitRunPattern     = regexp.MustCompile(`\d+`)
)

// ResolveProductionID derives a stable id from a detail-page URL. Priority:
// the produktion_id path segment, then the last run of digits anywhere in
// the URL, then a digest of the URL itself. The result is always non-empty
// and a pure function of the input, so repeated runs agree on identity.
func ResolveProductionID(url string) string {
	if match := productionIDPattern.FindStringSubmatch(url); match != nil {
		return match[1]
	}

	if runs := digitRunPattern.FindAllString(url, -1); len(runs) > 0 {
		return runs[len(runs)-1]
	}

	return "url-" + utils.HashURL(url)[:16]
}
