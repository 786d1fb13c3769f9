// Package keep holds the normalized model for one Google Keep note as
// found in a Takeout export, plus the rendering rules that belong to
// the format itself (color palette, timestamp formatting).
package keep

import (
	"strings"
	"time"
)

// Note is one source record after normalization. HTML-bearing fields
// are already reduced to plain text by the parser; a Note is built
// once and read-only afterwards.
type Note struct {
	Title       string
	Content     string
	Items       []ListItem
	CreatedUsec int64
	UpdatedUsec int64
	Trashed     bool
	Pinned      bool
	Archived    bool
	Labels      []string
	Color       string
	Attachments []Attachment
	Annotations []Annotation
}

// ListItem is one checklist entry, in source order.
type ListItem struct {
	Text    string
	Checked bool
}

// Attachment describes a sidecar file referenced by a note. FilePath
// is relative to the directory of the record that mentions it.
type Attachment struct {
	FilePath string
	Mimetype string
}

// Annotation is a link Keep attached to a note.
type Annotation struct {
	URL         string
	Title       string
	Description string
}

// colorHex maps Keep color labels to background hex values.
var colorHex = map[string]string{
	"DEFAULT":  "#ffffff",
	"RED":      "#ff6d3f",
	"ORANGE":   "#ff9b00",
	"YELLOW":   "#ffda00",
	"GREEN":    "#95d641",
	"TEAL":     "#1ce8b5",
	"BLUE":     "#3fc3ff",
	"GRAY":     "#b8c4c9",
	"CERULEAN": "#82b1ff",
	"PURPLE":   "#b388ff",
	"PINK":     "#f8bbd0",
	"BROWN":    "#d7ccc8",
}

// ColorHex resolves a color label to its hex value. DEFAULT, empty and
// unknown labels report false so callers skip the background wrapper.
func ColorHex(label string) (string, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" || label == "DEFAULT" {
		return "", false
	}
	hex, ok := colorHex[label]
	return hex, ok
}

// Time converts a microsecond epoch value to UTC.
func Time(usec int64) time.Time {
	return time.UnixMicro(usec).UTC()
}

// TimestampString renders a microsecond epoch value as an ISO 8601 UTC
// string. Values that do not map to a representable calendar date fall
// back to the current time, so the result is always a valid timestamp.
func TimestampString(usec int64) string {
	t := Time(usec)
	if t.Year() < 1 || t.Year() > 9999 {
		t = time.Now().UTC()
	}
	return t.Format("2006-01-02T15:04:05Z")
}
