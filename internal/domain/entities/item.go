package entities

import (
	"path"
	"strings"
)

// CategoryOther is the catch-all category for unmapped titles.
const CategoryOther = "Other"

// MediaKind tells the delivery layer how to present an item's media.
type MediaKind int

const (
	MediaNone MediaKind = iota
	MediaImage
	MediaVideo
)

// Item is one learnable unit: a letter, a digit or a word.
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	MediaURL string `json:"media_url,omitempty"`
}

// Key is the identifier stored in learned sets.
func (i Item) Key() string {
	return i.ID
}

// MediaKind guesses the media type from the URL extension.
func (i Item) MediaKind() MediaKind {
	if i.MediaURL == "" {
		return MediaNone
	}

	u := i.MediaURL
	if idx := strings.IndexAny(u, "?#"); idx >= 0 {
		u = u[:idx]
	}

	switch strings.ToLower(path.Ext(u)) {
	case ".mp4", ".mov", ".webm", ".m4v":
		return MediaVideo
	case ".gif", ".png", ".jpg", ".jpeg", ".webp":
		return MediaImage
	default:
		return MediaVideo
	}
}

// CatalogEntry is an item as delivered by a catalog source, before normalisation.
// Any field may be empty.
type CatalogEntry struct {
	ID       string
	Title    string
	Filename string
	MediaURL string
}
