// internal/output/json_test.go
package output

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/valpere/StageScrapexter/pkg/types"
)

// sampleSnapshot builds a two-item snapshot with one fully detailed entry.
func sampleSnapshot() *types.Snapshot {
	date := "2030-06-01T19:30"
	ticket := "https://tickets.example/hamlet?a=1&b=2"
	duration := 95

	return &types.Snapshot{
		Meta: types.SnapshotMeta{
			GeneratedAt: "2026-08-29 12:00:00",
			Count:       2,
		},
		Items: []*types.Production{
			{
				ProductionStub: types.ProductionStub{
					ID:         "100",
					Title:      "Hamlet",
					Subtitle:   "Tragödie von William Shakespeare",
					GenreText:  "Schauspiel",
					URL:        "https://theater.example/repertoire/produktion_id/100/",
					Seasons:    []string{"2025/2026"},
					Categories: []string{"Abendtheater"},
				},
				ProductionDetail: types.ProductionDetail{
					Cast: []types.CastEntry{{Role: "Regie", Person: "Max Muster"}},
					Synopsis: "Der Prinz von Dänemark kehrt heim.",
					Schedule: []types.ScheduleEntry{{
						ISODate:     &date,
						DisplayDate: "So. 01.06.2030",
						Time:        "19:30 Uhr",
						Venue:       "Stadthalle",
						TicketURL:   &ticket,
					}},
					Media: []types.MediaEntry{{Kind: types.MediaPoster, URL: "https://theater.example/img/hamlet.jpg"}},
					Press: []string{"»Großartig« – Zeitung"},
					Meta: types.MetaDetails{
						DurationMinutes: &duration,
						HasIntermission: true,
					},
					Flags: types.Flags{HasTickets: true},
				},
				NextRelevantDate: &date,
			},
			{
				ProductionStub: types.ProductionStub{
					ID:         "url-0123456789abcdef",
					Title:      "Örtliche Anzeigen",
					URL:        "https://theater.example/repertoire/sonderformat/",
					Seasons:    []string{"2025/2026", "2026/2027"},
					Categories: []string{"Abendtheater", "KJT"},
				},
			},
		},
	}
}

func TestJSONWriterShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spielplan.json")
	writer, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("NewJSONWriter failed: %v", err)
	}
	defer writer.Close()

	if err := writer.Write(context.Background(), sampleSnapshot()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Snapshot file not written: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Snapshot is not valid JSON: %v", err)
	}

	meta, ok := doc["meta"].(map[string]interface{})
	if !ok {
		t.Fatal("Snapshot missing meta object")
	}
	if meta["count"] != float64(2) {
		t.Errorf("Unexpected count: %v", meta["count"])
	}

	items, ok := doc["items"].([]interface{})
	if !ok || len(items) != 2 {
		t.Fatalf("Expected 2 items, got %v", doc["items"])
	}

	first := items[0].(map[string]interface{})
	for _, key := range []string{
		"id", "title", "subtitle", "genre_text", "url",
		"seasons", "categories", "is_featured_for_youth",
		"cast", "synopsis", "schedule", "media", "press",
		"meta_details", "flags", "next_relevant_date",
	} {
		if _, present := first[key]; !present {
			t.Errorf("Item missing key %q", key)
		}
	}
	if first["next_relevant_date"] != "2030-06-01T19:30" {
		t.Errorf("Unexpected next_relevant_date: %v", first["next_relevant_date"])
	}

	// HTML escaping is disabled so ticket URLs stay readable.
	if strings.Contains(string(data), `&`) {
		t.Error("Ampersands must not be escaped in the snapshot file")
	}
}

func TestJSONWriterReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spielplan.json")
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	writer, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("NewJSONWriter failed: %v", err)
	}

	if err := writer.Write(context.Background(), sampleSnapshot()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "stale") {
		t.Error("Old snapshot content must be replaced")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("No temporary files may remain, found %d entries", len(entries))
	}
}

func TestJSONWriterEmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	writer, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("NewJSONWriter failed: %v", err)
	}

	snapshot := &types.Snapshot{
		Meta:  types.SnapshotMeta{GeneratedAt: "2026-08-29 12:00:00"},
		Items: []*types.Production{},
	}
	if err := writer.Write(context.Background(), snapshot); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"items": []`) {
		t.Errorf("Empty snapshot must serialize items as an empty list:\n%s", data)
	}
}

func TestJSONWriterCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "deep", "spielplan.json")
	writer, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("NewJSONWriter failed: %v", err)
	}
	if err := writer.Write(context.Background(), sampleSnapshot()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Snapshot not created: %v", err)
	}
}

func TestJSONWriterRejectsNilSnapshot(t *testing.T) {
	writer, err := NewJSONWriter(filepath.Join(t.TempDir(), "x.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := writer.Write(context.Background(), nil); err == nil {
		t.Error("Expected an error for a nil snapshot")
	}
}
