// pkg/types/types.go

// Package types defines the shared data model for StageScrapexter: the
// production records assembled from listing and detail pages, and the
// snapshot document written at the end of a run.
package types

// MediaKind classifies a media entry on a production detail page.
type MediaKind string

const (
	MediaPoster MediaKind = "poster"
	MediaVideo  MediaKind = "video"
	MediaImage  MediaKind = "image"
	MediaAudio  MediaKind = "audio"
)

// ProductionStub holds the identity and membership data of a production as
// derived purely from listing pages. Scalar fields are first-writer-wins
// across listings; Seasons and Categories grow monotonically.
type ProductionStub struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Subtitle           string   `json:"subtitle"`
	GenreText          string   `json:"genre_text"`
	URL                string   `json:"url"`
	Seasons            []string `json:"seasons"`
	Categories         []string `json:"categories"`
	IsFeaturedForYouth bool     `json:"is_featured_for_youth"`
}

// CastEntry is one role/person pair from the cast block, in document order.
type CastEntry struct {
	Role   string `json:"role"`
	Person string `json:"person"`
}

// ScheduleEntry is one performance date from the schedule list.
type ScheduleEntry struct {
	ISODate     *string `json:"iso_date"`
	DisplayDate string  `json:"display_date"`
	Time        string  `json:"time"`
	Venue       string  `json:"venue"`
	TicketURL   *string `json:"ticket_url"`
}

// MediaEntry is one media asset attached to a production. VideoID is set
// only for entries of kind video.
type MediaEntry struct {
	Kind    MediaKind `json:"kind"`
	URL     string    `json:"url"`
	VideoID string    `json:"video_id,omitempty"`
}

// MetaDetails carries the loosely structured hints from the description
// blocks of a detail page. Absent values stay nil/false.
type MetaDetails struct {
	DurationMinutes   *int    `json:"duration_minutes"`
	HasIntermission   bool    `json:"has_intermission"`
	AgeRecommendation *string `json:"age_recommendation"`
	SchoolClass       *string `json:"school_class"`
}

// Flags summarizes which optional features a production page offers.
type Flags struct {
	HasTickets bool `json:"has_tickets"`
	HasVideo   bool `json:"has_video"`
	HasAudio   bool `json:"has_audio"`
}

// ProductionDetail holds everything extracted from a production's own page.
// A failed or unparsable detail fetch leaves the zero value in place, which
// serializes to empty collections and unset flags.
type ProductionDetail struct {
	Cast     []CastEntry     `json:"cast"`
	Synopsis string          `json:"synopsis"`
	Schedule []ScheduleEntry `json:"schedule"`
	Media    []MediaEntry    `json:"media"`
	Press    []string        `json:"press"`
	Meta     MetaDetails     `json:"meta_details"`
	Flags    Flags           `json:"flags"`
}

// Production is the merged record written to the snapshot: stub plus detail
// plus the derived next performance date.
type Production struct {
	ProductionStub
	ProductionDetail
	NextRelevantDate *string `json:"next_relevant_date"`
}

// SnapshotMeta describes a single aggregation run.
type SnapshotMeta struct {
	GeneratedAt string `json:"generated_at"`
	Count       int    `json:"count"`
}

// Snapshot is the full output document of a run: run metadata plus all
// productions sorted by title.
type Snapshot struct {
	Meta  SnapshotMeta  `json:"meta"`
	Items []*Production `json:"items"`
}
