// internal/extract/listing_test.go
package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const listingHTML = `
<html><body>
<ul>
  <li class="produktion-list-item">
    <a href="/repertoire/produktion_id/100/hamlet">Hamlet</a>
    <div class="termin-list-box">
      <a href="/repertoire/produktion_id/100/hamlet">Hamlet</a>
      <div><a>Hamlet</a><br>Tragödie von Shakespeare<br>Schauspiel</div>
    </div>
  </li>
  <li class="produktion-list-item">
    <a href="/typo3temp/assets/romeo.jpg"><img src="/typo3temp/assets/romeo.jpg"></a>
    <a href="/repertoire/produktion_id/101/romeo"></a>
    <div class="termin-list-box">
      <a href="/repertoire/produktion_id/101/romeo">Romeo und Julia</a>
      <div><a>Romeo und Julia</a><br>Ballett</div>
    </div>
  </li>
  <li class="produktion-list-item">
    <a href="/kalender/">Kalender</a>
  </li>
  <li class="produktion-list-item">
    <p>Kein Link</p>
  </li>
</ul>
</body></html>`

func mustParse(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}
	return doc
}

func TestParseListing(t *testing.T) {
	doc := mustParse(t, listingHTML)

	items := ParseListing(doc, "https://theater.example", DefaultSelectors())

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "Hamlet" {
		t.Errorf("Expected title 'Hamlet', got %q", first.Title)
	}
	if first.Subtitle != "Tragödie von Shakespeare" {
		t.Errorf("Expected subtitle 'Tragödie von Shakespeare', got %q", first.Subtitle)
	}
	if first.GenreText != "Schauspiel" {
		t.Errorf("Expected genre 'Schauspiel', got %q", first.GenreText)
	}
	if first.DetailURL != "https://theater.example/repertoire/produktion_id/100/hamlet" {
		t.Errorf("Unexpected detail URL: %q", first.DetailURL)
	}
}

func TestParseListingScansForCanonicalLink(t *testing.T) {
	doc := mustParse(t, listingHTML)

	items := ParseListing(doc, "https://theater.example", DefaultSelectors())

	second := items[1]
	if second.DetailURL != "https://theater.example/repertoire/produktion_id/101/romeo" {
		t.Errorf("Expected canonical detail URL, got %q", second.DetailURL)
	}
}

func TestParseListingTitleFallback(t *testing.T) {
	doc := mustParse(t, listingHTML)

	items := ParseListing(doc, "https://theater.example", DefaultSelectors())

	second := items[1]
	if second.Title != "Romeo und Julia" {
		t.Errorf("Expected fallback title 'Romeo und Julia', got %q", second.Title)
	}
	if second.Subtitle != "Ballett" {
		t.Errorf("Expected subtitle 'Ballett', got %q", second.Subtitle)
	}
	if second.GenreText != "" {
		t.Errorf("Expected empty genre, got %q", second.GenreText)
	}
}

func TestParseListingSkipsItemsWithoutCanonicalLink(t *testing.T) {
	doc := mustParse(t, listingHTML)

	items := ParseListing(doc, "https://theater.example", DefaultSelectors())

	for _, item := range items {
		if strings.Contains(item.DetailURL, "kalender") {
			t.Errorf("Item without canonical link should have been skipped: %q", item.DetailURL)
		}
	}
}

func TestParseListingEmptyDocument(t *testing.T) {
	doc := mustParse(t, "<html><body><p>nichts</p></body></html>")

	items := ParseListing(doc, "https://theater.example", DefaultSelectors())

	if len(items) != 0 {
		t.Fatalf("Expected no items, got %d", len(items))
	}
}
