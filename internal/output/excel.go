// internal/output/excel.go
package output

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/valpere/StageScrapexter/internal/config"
	"github.com/valpere/StageScrapexter/pkg/types"
)

// ExcelWriter exports the snapshot as a workbook for editorial staff: one
// sheet listing the productions and one listing every performance date.
type ExcelWriter struct {
	path string
}

// NewExcelWriter creates an Excel exporter.
func NewExcelWriter(cfg config.ExcelConfig) (*ExcelWriter, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("Excel export path is required")
	}
	return &ExcelWriter{path: cfg.Path}, nil
}

// Name implements Writer.
func (w *ExcelWriter) Name() string { return "excel" }

// Write renders and saves the workbook.
func (w *ExcelWriter) Write(_ context.Context, snapshot *types.Snapshot) error {
	file := excelize.NewFile()
	defer file.Close()

	const productionsSheet = "Produktionen"
	const scheduleSheet = "Termine"

	file.SetSheetName(file.GetSheetName(0), productionsSheet)
	if _, err := file.NewSheet(scheduleSheet); err != nil {
		return fmt.Errorf("failed to create schedule sheet: %w", err)
	}

	productionHeaders := []interface{}{
		"ID", "Titel", "Untertitel", "Genre", "Spielzeiten", "Kategorien",
		"Nächster Termin", "Tickets", "URL",
	}
	if err := file.SetSheetRow(productionsSheet, "A1", &productionHeaders); err != nil {
		return fmt.Errorf("failed to write production headers: %w", err)
	}

	scheduleHeaders := []interface{}{
		"Produktion", "Datum (ISO)", "Datum", "Uhrzeit", "Ort", "Ticket-URL",
	}
	if err := file.SetSheetRow(scheduleSheet, "A1", &scheduleHeaders); err != nil {
		return fmt.Errorf("failed to write schedule headers: %w", err)
	}

	scheduleRow := 2
	for i, item := range snapshot.Items {
		row := []interface{}{
			item.ID,
			item.Title,
			item.Subtitle,
			item.GenreText,
			strings.Join(item.Seasons, ", "),
			strings.Join(item.Categories, ", "),
			derefOr(item.NextRelevantDate, ""),
			item.Flags.HasTickets,
			item.URL,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := file.SetSheetRow(productionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write production row: %w", err)
		}

		for _, entry := range item.Schedule {
			cell, err := excelize.CoordinatesToCellName(1, scheduleRow)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}

			entryRow := []interface{}{
				item.Title,
				derefOr(entry.ISODate, ""),
				entry.DisplayDate,
				entry.Time,
				entry.Venue,
				derefOr(entry.TicketURL, ""),
			}
			if err := file.SetSheetRow(scheduleSheet, cell, &entryRow); err != nil {
				return fmt.Errorf("failed to write schedule row: %w", err)
			}
			scheduleRow++
		}
	}

	if err := file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// Close implements Writer; the workbook is assembled per write.
func (w *ExcelWriter) Close() error { return nil }

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
