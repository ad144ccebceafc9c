// internal/ensemble/reshape.go

// Package ensemble reshapes a finished snapshot for the website backend:
// cast entries are reclassified into performers and crew by their role
// text, and every person gets a stable slug and team-page link.
package ensemble

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/valpere/StageScrapexter/pkg/types"
)

// crewKeywords marks role texts that describe production staff rather than
// performers.
var crewKeywords = []string{
	"inszenierung",
	"ausstattung",
	"choreografie",
	"dramaturgie",
	"theaterpädagogik",
	"regie",
	"leitung",
	"kostüme",
	"bühne",
	"assistenz",
}

// Person is one cast entry with its derived identity.
type Person struct {
	Name         string `json:"name"`
	RoleFunction string `json:"role_function"`
	Slug         string `json:"person_slug"`
	Link         string `json:"link"`
}

// Ensemble is the reclassified cast of one production.
type Ensemble struct {
	Performers []Person `json:"performers"`
	Crew       []Person `json:"crew"`
}

// CoreData carries the identity fields of a reshaped production.
type CoreData struct {
	Title              string   `json:"title"`
	Subtitle           string   `json:"subtitle"`
	GenreText          string   `json:"genre_text"`
	URL                string   `json:"web_url"`
	IsFeaturedForYouth bool     `json:"is_featured_for_youth"`
	Seasons            []string `json:"seasons"`
	Categories         []string `json:"categories"`
}

// Content groups the editorial fields of a reshaped production.
type Content struct {
	Text  string            `json:"text"`
	Press []string          `json:"press"`
	Meta  types.MetaDetails `json:"meta"`
}

// Production is the reshaped record consumed by the website backend.
type Production struct {
	ID       string                `json:"id"`
	Core     CoreData              `json:"core_data"`
	Content  Content               `json:"content"`
	Ensemble Ensemble              `json:"ensemble"`
	Schedule []types.ScheduleEntry `json:"schedule"`
	Media    []types.MediaEntry    `json:"media"`
	Flags    types.Flags           `json:"flags"`
	NextDate *string               `json:"next_date"`
}

// Document is the full reshaped output.
type Document struct {
	Items []Production `json:"items"`
}

// Reshape converts a snapshot into the downstream document shape.
func Reshape(snapshot *types.Snapshot) *Document {
	doc := &Document{Items: make([]Production, 0, len(snapshot.Items))}

	for _, item := range snapshot.Items {
		doc.Items = append(doc.Items, Production{
			ID: item.ID,
			Core: CoreData{
				Title:              item.Title,
				Subtitle:           item.Subtitle,
				GenreText:          item.GenreText,
				URL:                item.URL,
				IsFeaturedForYouth: item.IsFeaturedForYouth,
				Seasons:            item.Seasons,
				Categories:         item.Categories,
			},
			Content: Content{
				Text:  item.Synopsis,
				Press: item.Press,
				Meta:  item.Meta,
			},
			Ensemble: SplitCast(item.Cast),
			Schedule: item.Schedule,
			Media:    item.Media,
			Flags:    item.Flags,
			NextDate: item.NextRelevantDate,
		})
	}

	return doc
}

// SplitCast reclassifies cast entries by role text: entries whose role
// matches a crew keyword become crew, everything else performers. Document
// order is preserved within each group.
func SplitCast(cast []types.CastEntry) Ensemble {
	ensemble := Ensemble{
		Performers: []Person{},
		Crew:       []Person{},
	}

	for _, entry := range cast {
		name := entry.Person
		if name == "" {
			name = "Unbekannt"
		}

		slug := PersonSlug(name)
		person := Person{
			Name:         name,
			RoleFunction: entry.Role,
			Slug:         slug,
			Link:         "/team/" + slug,
		}

		if isCrewRole(entry.Role) {
			ensemble.Crew = append(ensemble.Crew, person)
		} else {
			ensemble.Performers = append(ensemble.Performers, person)
		}
	}

	return ensemble
}

// isCrewRole reports whether the role text names production staff.
func isCrewRole(role string) bool {
	lower := strings.ToLower(role)
	for _, keyword := range crewKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// germanDigraphs maps the letters whose conventional ASCII form is a
// digraph, which plain diacritic stripping would get wrong.
var germanDigraphs = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

// stripMarks removes combining marks after canonical decomposition, so
// names like "André" slug to "andre".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// PersonSlug derives a stable identifier from a person's name: lowercase,
// German digraph mapping, diacritics stripped, spaces to hyphens, and
// everything outside [a-z-] dropped.
func PersonSlug(name string) string {
	slug := strings.ToLower(name)
	slug = germanDigraphs.Replace(slug)

	if stripped, _, err := transform.String(stripMarks, slug); err == nil {
		slug = stripped
	}

	slug = strings.ReplaceAll(slug, " ", "-")

	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || r == '-' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
