// internal/extract/detail.go
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/StageScrapexter/internal/utils"
	"github.com/valpere/StageScrapexter/pkg/types"
)

// durationPattern matches running times like "90 Minuten" in description
// text.
var durationPattern = regexp.MustCompile(`(\d{2,3})\s*Minuten`)

// ExtractDetail runs every per-document extractor against a production
// detail page and assembles the result. Missing structure yields empty
// fields, never an error.
func ExtractDetail(doc *goquery.Document, baseURL string, sel Selectors) types.ProductionDetail {
	detail := types.ProductionDetail{}

	// Description text accumulated across the meta blocks and the synopsis
	// walk; the duration and intermission hints can appear in either.
	var description strings.Builder

	detail.Meta = extractMetaBlocks(doc, sel, &description)
	detail.Cast = ExtractCast(doc, sel)

	synopsis, walked := extractSynopsis(doc, sel)
	detail.Synopsis = synopsis
	description.WriteString(walked)

	text := description.String()
	detail.Meta.HasIntermission = strings.Contains(text, "Pause")
	detail.Meta.DurationMinutes = extractDuration(text)

	detail.Schedule, detail.Flags.HasTickets = ExtractSchedule(doc, sel)

	var media []types.MediaEntry
	media, detail.Flags.HasVideo, detail.Flags.HasAudio = ExtractMedia(doc, baseURL, sel)
	detail.Media = media

	detail.Press = ExtractPress(doc, sel)

	return detail
}

// extractMetaBlocks reads the description title blocks and classifies the
// age recommendation and school class hints by substring. Every block's
// text also feeds the accumulated description.
func extractMetaBlocks(doc *goquery.Document, sel Selectors, description *strings.Builder) types.MetaDetails {
	meta := types.MetaDetails{}

	doc.Find(sel.MetaBlock).Each(func(_ int, block *goquery.Selection) {
		text := utils.CleanText(block.Text())
		if text == "" {
			return
		}

		description.WriteString(text)
		description.WriteString(" ")

		if strings.Contains(text, "Jahren") || strings.Contains(text, "ab") {
			age := text
			meta.AgeRecommendation = &age
		}
		if strings.Contains(text, "Klasse") {
			class := text
			meta.SchoolClass = &class
		}
	})

	return meta
}

// ExtractCast reads the cast container: a bolded leading tag is the role
// label (trailing colon stripped), the remaining span text is the person.
// Entries without a role tag are skipped. Document order is preserved and
// duplicates are kept.
func ExtractCast(doc *goquery.Document, sel Selectors) []types.CastEntry {
	var cast []types.CastEntry

	doc.Find(sel.CastContainer).First().Find("span").Each(func(_ int, span *goquery.Selection) {
		roleTag := span.Find(sel.CastRoleTag).First()
		if roleTag.Length() == 0 {
			return
		}

		role := strings.TrimSuffix(utils.CleanText(roleTag.Text()), ":")

		remainder := span.Clone()
		remainder.Find(sel.CastRoleTag).Remove()
		person := utils.CleanText(remainder.Text())

		cast = append(cast, types.CastEntry{Role: role, Person: person})
	})

	return cast
}

// extractSynopsis walks the siblings following the synopsis heading,
// accumulating paragraph text until a boundary block (gallery, schedule,
// press, poster) is reached. Download-anchor paragraphs are excluded from
// the synopsis but every walked block's text is returned for the
// description accumulator.
func extractSynopsis(doc *goquery.Document, sel Selectors) (synopsis, walked string) {
	header := findSynopsisHeading(doc, sel)
	if header == nil {
		return "", ""
	}

	var paragraphs []string
	var walkedText strings.Builder

	for curr := header.Next(); curr.Length() > 0; curr = curr.Next() {
		if goquery.NodeName(curr) == "div" && hasAnyClass(curr, sel.SynopsisBounds) {
			break
		}

		text := utils.CleanText(curr.Text())
		walkedText.WriteString(text)
		walkedText.WriteString(" ")

		if goquery.NodeName(curr) == "p" && !curr.HasClass(sel.DownloadClass) && text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return strings.Join(paragraphs, "\n\n"), walkedText.String()
}

// hasAnyClass reports whether the selection carries any of the given
// classes.
func hasAnyClass(sel *goquery.Selection, classes []string) bool {
	for _, class := range classes {
		if sel.HasClass(class) {
			return true
		}
	}
	return false
}

// findSynopsisHeading locates the heading whose text matches the fixed
// synopsis marker, or nil.
func findSynopsisHeading(doc *goquery.Document, sel Selectors) *goquery.Selection {
	var header *goquery.Selection

	doc.Find(sel.SynopsisHeading).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.Contains(h.Text(), sel.SynopsisHeadText) {
			header = h
			return false
		}
		return true
	})

	return header
}

// ExtractSchedule reads the schedule list. Each entry carries the ISO
// datetime attribute and display text of its time element, the display
// time, the venue text with any embedded link removed, and an optional
// ticket URL. The second result reports whether any entry sells tickets.
func ExtractSchedule(doc *goquery.Document, sel Selectors) ([]types.ScheduleEntry, bool) {
	var entries []types.ScheduleEntry
	hasTickets := false

	doc.Find(sel.ScheduleList).First().Find("li").Each(func(_ int, li *goquery.Selection) {
		entry := types.ScheduleEntry{}

		timeTag := li.Find("time").First()
		if timeTag.Length() > 0 {
			if iso, ok := timeTag.Attr("datetime"); ok {
				entry.ISODate = &iso
			}
			entry.DisplayDate = utils.CleanText(timeTag.Text())
		}

		entry.Time = utils.CleanText(li.Find(sel.ScheduleTime).First().Text())

		venue := li.Find(sel.ScheduleVenue).First()
		if venue.Length() > 0 {
			stripped := venue.Clone()
			stripped.Find("a").Remove()
			entry.Venue = utils.CleanText(stripped.Text())
		}

		ticket := li.Find(sel.TicketLink).First()
		if href, ok := ticket.Attr("href"); ok && href != "" {
			entry.TicketURL = &href
			hasTickets = true
		}

		entries = append(entries, entry)
	})

	return entries, hasTickets
}

// ExtractMedia collects poster, video, audio and gallery entries. Relative
// URLs are resolved against baseURL; gallery links identified as downloads
// are excluded.
func ExtractMedia(doc *goquery.Document, baseURL string, sel Selectors) (media []types.MediaEntry, hasVideo, hasAudio bool) {
	poster := doc.Find(sel.PosterContainer).First().Find("a[href]").First()
	if href, ok := poster.Attr("href"); ok {
		media = append(media, types.MediaEntry{
			Kind: types.MediaPoster,
			URL:  utils.ResolveURL(baseURL, href),
		})
	}

	video := doc.Find(sel.VideoWidget).First()
	if video.Length() > 0 {
		hasVideo = true
		videoID, _ := video.Attr(sel.VideoIDAttr)
		media = append(media, types.MediaEntry{
			Kind:    types.MediaVideo,
			URL:     "https://www.youtube.com/watch?v=" + videoID,
			VideoID: videoID,
		})
	}

	audioSource := doc.Find("audio").First().Find("source").First()
	if src, ok := audioSource.Attr("src"); ok {
		hasAudio = true
		media = append(media, types.MediaEntry{
			Kind: types.MediaAudio,
			URL:  utils.ResolveURL(baseURL, src),
		})
	}

	doc.Find(sel.GalleryContainer).First().Find(sel.GalleryLink).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" || strings.Contains(href, "download") {
			return
		}
		media = append(media, types.MediaEntry{
			Kind: types.MediaImage,
			URL:  utils.ResolveURL(baseURL, href),
		})
	})

	return media, hasVideo, hasAudio
}

// ExtractPress collects the paragraph texts of the press container.
func ExtractPress(doc *goquery.Document, sel Selectors) []string {
	var quotes []string

	doc.Find(sel.PressContainer).First().Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := utils.CleanText(p.Text()); text != "" {
			quotes = append(quotes, text)
		}
	})

	return quotes
}

// extractDuration pulls a running time in minutes out of description text.
func extractDuration(text string) *int {
	match := durationPattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}

	minutes, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}
	return &minutes
}
