// internal/ensemble/reshape_test.go

package ensemble

import (
	"testing"

	"github.com/valpere/StageScrapexter/pkg/types"
)

func TestPersonSlug(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Karin Eppler", "karin-eppler"},
		{"Jürgen Müller", "juergen-mueller"},
		{"André Becker", "andre-becker"},
		{"Björn Groß", "bjoern-gross"},
		{"Unbekannt", "unbekannt"},
		{"Anna-Lena Schäfer", "anna-lena-schaefer"},
		{"O'Brien, Pat", "obrien-pat"},
	}

	for _, tt := range tests {
		if got := PersonSlug(tt.name); got != tt.expected {
			t.Errorf("PersonSlug(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestSplitCast(t *testing.T) {
	cast := []types.CastEntry{
		{Role: "Inszenierung", Person: "Karin Eppler"},
		{Role: "Hamlet", Person: "Max Muster"},
		{Role: "Kostüme und Bühne", Person: "Jürgen Müller"},
		{Role: "Ophelia", Person: "Anna Schmidt"},
		{Role: "Regieassistenz", Person: ""},
	}

	ensemble := SplitCast(cast)

	if len(ensemble.Crew) != 3 {
		t.Fatalf("Expected 3 crew entries, got %d", len(ensemble.Crew))
	}
	if len(ensemble.Performers) != 2 {
		t.Fatalf("Expected 2 performers, got %d", len(ensemble.Performers))
	}

	if ensemble.Crew[0].Name != "Karin Eppler" || ensemble.Crew[0].Slug != "karin-eppler" {
		t.Errorf("Unexpected first crew entry: %+v", ensemble.Crew[0])
	}
	if ensemble.Crew[0].Link != "/team/karin-eppler" {
		t.Errorf("Unexpected team link: %q", ensemble.Crew[0].Link)
	}
	if ensemble.Crew[2].Name != "Unbekannt" {
		t.Errorf("Nameless entries default to Unbekannt, got %q", ensemble.Crew[2].Name)
	}

	if ensemble.Performers[0].Name != "Max Muster" || ensemble.Performers[0].RoleFunction != "Hamlet" {
		t.Errorf("Unexpected first performer: %+v", ensemble.Performers[0])
	}
	if ensemble.Performers[1].Name != "Anna Schmidt" {
		t.Errorf("Performer order must follow document order, got %q", ensemble.Performers[1].Name)
	}
}

func TestSplitCastEmpty(t *testing.T) {
	ensemble := SplitCast(nil)
	if ensemble.Performers == nil || ensemble.Crew == nil {
		t.Error("Groups must be empty lists, not nil")
	}
	if len(ensemble.Performers) != 0 || len(ensemble.Crew) != 0 {
		t.Error("Empty cast must produce empty groups")
	}
}

func TestIsCrewRole(t *testing.T) {
	crew := []string{"Regie", "Inszenierung und Bühne", "Theaterpädagogik", "Choreografie", "Technische Leitung"}
	for _, role := range crew {
		if !isCrewRole(role) {
			t.Errorf("%q must classify as crew", role)
		}
	}

	performers := []string{"Hamlet", "Ophelia", "Erzählerin", ""}
	for _, role := range performers {
		if isCrewRole(role) {
			t.Errorf("%q must classify as performer", role)
		}
	}
}

func TestReshape(t *testing.T) {
	date := "2030-06-01T19:30"
	snapshot := &types.Snapshot{
		Meta: types.SnapshotMeta{GeneratedAt: "2026-08-29 12:00:00", Count: 1},
		Items: []*types.Production{
			{
				ProductionStub: types.ProductionStub{
					ID:                 "100",
					Title:              "Hamlet",
					Subtitle:           "Tragödie",
					GenreText:          "Schauspiel",
					URL:                "https://theater.example/repertoire/produktion_id/100/",
					Seasons:            []string{"2025/2026"},
					Categories:         []string{"KJT"},
					IsFeaturedForYouth: true,
				},
				ProductionDetail: types.ProductionDetail{
					Cast: []types.CastEntry{
						{Role: "Regie", Person: "Karin Eppler"},
						{Role: "Hamlet", Person: "Max Muster"},
					},
					Synopsis: "Der Prinz von Dänemark kehrt heim.",
					Press:    []string{"»Großartig«"},
					Flags:    types.Flags{HasTickets: true},
				},
				NextRelevantDate: &date,
			},
		},
	}

	doc := Reshape(snapshot)

	if len(doc.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(doc.Items))
	}

	item := doc.Items[0]
	if item.ID != "100" {
		t.Errorf("Unexpected id: %q", item.ID)
	}
	if item.Core.Title != "Hamlet" || !item.Core.IsFeaturedForYouth {
		t.Errorf("Core data not carried over: %+v", item.Core)
	}
	if item.Content.Text != "Der Prinz von Dänemark kehrt heim." {
		t.Errorf("Synopsis not carried over: %q", item.Content.Text)
	}
	if len(item.Ensemble.Crew) != 1 || len(item.Ensemble.Performers) != 1 {
		t.Errorf("Cast not reclassified: %+v", item.Ensemble)
	}
	if item.NextDate == nil || *item.NextDate != date {
		t.Errorf("Next date not carried over: %v", item.NextDate)
	}
	if !item.Flags.HasTickets {
		t.Error("Flags not carried over")
	}
}

func TestReshapeEmptySnapshot(t *testing.T) {
	doc := Reshape(&types.Snapshot{Items: []*types.Production{}})
	if doc.Items == nil || len(doc.Items) != 0 {
		t.Errorf("Empty snapshot must reshape to an empty list, got %v", doc.Items)
	}
}
