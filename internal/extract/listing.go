// internal/extract/listing.go
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/valpere/StageScrapexter/internal/utils"
)

// ListingItem is one candidate production enumerated from a listing page.
// The detail URL is already resolved to an absolute URL; identity
// resolution happens at the registry boundary.
type ListingItem struct {
	Title     string
	Subtitle  string
	GenreText string
	DetailURL string
}

// ParseListing enumerates the productions on a listing page. Items without
// a canonical detail link are skipped; everything else degrades to empty
// fields.
func ParseListing(doc *goquery.Document, baseURL string, sel Selectors) []ListingItem {
	var items []ListingItem

	doc.Find(sel.ListItem).Each(func(_ int, item *goquery.Selection) {
		link := findDetailLink(item, sel)
		if link == nil {
			return
		}

		href, _ := link.Attr("href")
		detailURL := utils.ResolveURL(baseURL, href)

		title := utils.CleanText(link.Text())
		if title == "" {
			// Image-only links carry no text; the info box repeats the title.
			infoLink := item.Find(sel.ListInfoBox).First().Find("a").First()
			title = utils.CleanText(infoLink.Text())
		}

		subtitle, genre := parseInfoSegments(item.Find(sel.ListInfoBox).First())

		items = append(items, ListingItem{
			Title:     title,
			Subtitle:  subtitle,
			GenreText: genre,
			DetailURL: detailURL,
		})
	})

	return items
}

// findDetailLink returns the first link in the item whose href matches the
// canonical detail path convention, or nil if the item carries none. The
// first link is preferred; remaining links are scanned only when it does not
// match.
func findDetailLink(item *goquery.Selection, sel Selectors) *goquery.Selection {
	first := item.Find("a[href]").First()
	if first.Length() == 0 {
		return nil
	}

	if href, _ := first.Attr("href"); strings.Contains(href, sel.DetailPathMarker) {
		return first
	}

	var match *goquery.Selection
	item.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if href, _ := a.Attr("href"); strings.Contains(href, sel.DetailPathMarker) {
			match = a
			return false
		}
		return true
	})

	return match
}

// parseInfoSegments reads the pipe-delimited info block by fixed position:
// segment 1 is the subtitle, segment 2 the genre text. This is a positional
// heuristic over the block's text nodes, not a semantic parse.
func parseInfoSegments(infoBox *goquery.Selection) (subtitle, genre string) {
	if infoBox.Length() == 0 {
		return "", ""
	}

	inner := infoBox.Find("div").First()
	if inner.Length() == 0 {
		return "", ""
	}

	// Text node boundaries and literal pipes both separate segments.
	joined := strings.Join(textSegments(inner), "|")
	var segments []string
	for _, part := range strings.Split(joined, "|") {
		if text := utils.CleanText(part); text != "" {
			segments = append(segments, text)
		}
	}

	if len(segments) > 1 {
		subtitle = segments[1]
	}
	if len(segments) > 2 {
		genre = segments[2]
	}
	return subtitle, genre
}

// textSegments collects the cleaned, non-empty text nodes under a selection
// in document order.
func textSegments(sel *goquery.Selection) []string {
	var segments []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := utils.CleanText(n.Data); text != "" {
				segments = append(segments, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, node := range sel.Nodes {
		walk(node)
	}

	return segments
}
