package domain

import "time"

// ParsedFeed is a fetched and parsed RSS/Atom document
type ParsedFeed struct {
	Title       string
	Description string
	Link        string
	Items       []ParsedItem
}

// ParsedItem is a single entry of a parsed feed, in document order.
// Published is zero when the feed carries no date.
type ParsedItem struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Content     string
	Author      string
	Published   time.Time
	Enclosures  []Enclosure
	Media       []MediaRef
}

// Enclosure is an RSS enclosure attachment
type Enclosure struct {
	URL    string
	Type   string
	Length string
}

// MediaKind tells media:content from media:thumbnail
type MediaKind string

// media reference kinds
const (
	MediaContent   MediaKind = "content"
	MediaThumbnail MediaKind = "thumbnail"
)

// MediaRef is a Media-RSS element found anywhere inside an entry's extensions
type MediaRef struct {
	Kind   MediaKind
	URL    string
	Type   string
	Medium string
}
