// internal/scraper/schedule.go
package scraper

import (
	"github.com/valpere/StageScrapexter/pkg/types"
)

// NextRelevantDate returns the earliest schedule date on or after today, or
// nil if none qualifies. Dates are ISO-8601 strings, so lexicographic
// comparison matches calendar order; today is the run's date in YYYY-MM-DD.
func NextRelevantDate(entries []types.ScheduleEntry, today string) *string {
	var next *string

	for i := range entries {
		iso := entries[i].ISODate
		if iso == nil || *iso < today {
			continue
		}
		if next == nil || *iso < *next {
			value := *iso
			next = &value
		}
	}

	return next
}
