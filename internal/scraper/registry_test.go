// internal/scraper/registry_test.go
package scraper

import (
	"reflect"
	"testing"

	"github.com/valpere/StageScrapexter/pkg/types"
)

func stub(title string) types.ProductionStub {
	return types.ProductionStub{
		Title:     title,
		Subtitle:  "Untertitel",
		GenreText: "Schauspiel",
		URL:       "https://theater.example/repertoire/produktion_id/100/" + title,
	}
}

func TestRegistryUpsertIdempotence(t *testing.T) {
	once := NewRegistry()
	once.Upsert("100", stub("Hamlet"), "2025/2026", "Abendtheater", false)

	twice := NewRegistry()
	twice.Upsert("100", stub("Hamlet"), "2025/2026", "Abendtheater", false)
	twice.Upsert("100", stub("Hamlet"), "2025/2026", "Abendtheater", false)

	a, _ := once.Get("100")
	b, _ := twice.Get("100")

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Upsert is not idempotent:\nonce  %+v\ntwice %+v", a, b)
	}
}

func TestRegistryUnionMonotonicity(t *testing.T) {
	registry := NewRegistry()
	registry.Upsert("100", stub("Hamlet"), "2025/2026", "Abendtheater", false)
	registry.Upsert("100", stub("Hamlet"), "2026/2027", "KJT", true)

	merged, ok := registry.Get("100")
	if !ok {
		t.Fatal("Expected id 100 in registry")
	}

	if !reflect.DeepEqual(merged.Seasons, []string{"2025/2026", "2026/2027"}) {
		t.Errorf("Unexpected seasons: %v", merged.Seasons)
	}
	if !reflect.DeepEqual(merged.Categories, []string{"Abendtheater", "KJT"}) {
		t.Errorf("Unexpected categories: %v", merged.Categories)
	}
	if !merged.IsFeaturedForYouth {
		t.Error("Youth flag must be ORed across sightings")
	}
}

func TestRegistryFirstWriterWins(t *testing.T) {
	registry := NewRegistry()
	registry.Upsert("100", stub("Hamlet"), "2025/2026", "Abendtheater", false)

	other := stub("Hamlet oder nicht")
	other.URL = "https://theater.example/anderswo/produktion_id/100/"
	registry.Upsert("100", other, "2026/2027", "KJT", false)

	merged, _ := registry.Get("100")
	if merged.Title != "Hamlet" {
		t.Errorf("Title must stay first-seen, got %q", merged.Title)
	}
	if merged.URL != stub("Hamlet").URL {
		t.Errorf("URL must stay first-seen, got %q", merged.URL)
	}
}

func TestRegistryDistinctIDs(t *testing.T) {
	registry := NewRegistry()
	registry.Upsert("100", stub("Hamlet"), "2025/2026", "Abendtheater", false)
	registry.Upsert("101", stub("Romeo"), "2025/2026", "Abendtheater", false)

	if registry.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", registry.Len())
	}

	if _, ok := registry.Get("102"); ok {
		t.Error("Unknown id must not resolve")
	}
}

func TestRegistryProductionsFirstSeenOrder(t *testing.T) {
	registry := NewRegistry()
	registry.Upsert("101", stub("Romeo"), "2025/2026", "Abendtheater", false)
	registry.Upsert("100", stub("Hamlet"), "2025/2026", "Abendtheater", false)
	registry.Upsert("101", stub("Romeo"), "2026/2027", "Abendtheater", false)

	productions := registry.Productions()
	if len(productions) != 2 {
		t.Fatalf("Expected 2 productions, got %d", len(productions))
	}
	if productions[0].ID != "101" || productions[1].ID != "100" {
		t.Errorf("Expected first-seen order [101 100], got [%s %s]", productions[0].ID, productions[1].ID)
	}
}
