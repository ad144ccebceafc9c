// internal/extract/selectors.go

// Package extract turns parsed theater pages into typed fragments. All
// functions are pure: they read a goquery document and return values,
// defaulting to empty results when expected structure is missing. Fetching,
// identity and merging live elsewhere.
package extract

// Selectors is the structural contract with the source site: one named
// matcher per extracted entity. The site renaming or dropping a container
// degrades the corresponding field to its zero value instead of failing the
// run.
type Selectors struct {
	// Listing page
	ListItem         string // one production per item
	ListInfoBox      string // secondary info block inside an item
	DetailPathMarker string // substring identifying a canonical detail href

	// Detail page
	MetaBlock        string // description title blocks carrying age/class hints
	CastContainer    string
	CastRoleTag      string // bolded role label inside a cast span
	SynopsisHeading  string
	SynopsisHeadText string   // fixed heading text locating the synopsis
	SynopsisBounds   []string // sibling classes that end the synopsis walk
	DownloadClass    string   // paragraph class excluded from the synopsis

	ScheduleList  string
	ScheduleTime  string // span holding the display time
	ScheduleVenue string
	TicketLink    string

	PosterContainer  string
	VideoWidget      string
	VideoIDAttr      string
	GalleryContainer string
	GalleryLink      string
	PressContainer   string
}

// DefaultSelectors returns the vocabulary of the Westfälisches
// Landestheater site as currently published.
func DefaultSelectors() Selectors {
	return Selectors{
		ListItem:         "li.produktion-list-item",
		ListInfoBox:      "div.termin-list-box",
		DetailPathMarker: "repertoire",

		MetaBlock:        "div.detail-beschreibung-title",
		CastContainer:    "div.detail-cast",
		CastRoleTag:      "strong",
		SynopsisHeading:  "h2.detail-beschreibung-header",
		SynopsisHeadText: "Zum Stück",
		SynopsisBounds: []string{
			"detail-image-box",
			"detail-terminliste",
			"detail-presse",
			"detail-plakatmotiv",
		},
		DownloadClass: "download-anchor",

		ScheduleList:  "ul.detail-beschreibung-terminliste",
		ScheduleTime:  "span.event-time",
		ScheduleVenue: "span.span-7",
		TicketLink:    "a.ticketlink",

		PosterContainer:  "div.detail-plakatmotiv",
		VideoWidget:      "div[data-plyr-provider=youtube]",
		VideoIDAttr:      "data-plyr-embed-id",
		GalleryContainer: "div.detail-image-box",
		GalleryLink:      "a.fancybox",
		PressContainer:   "#pressestimmen-content",
	}
}
