// Package keepjson discovers and parses the JSON records of a Google
// Takeout Keep export.
package keepjson

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	keepdomain "keep-to-joplin/internal/domain/keep"
	"keep-to-joplin/internal/infra/htmltext"
)

// ListRecordFiles walks dir and returns every file whose name ends in
// .json, case-insensitive. Walk order is lexical, so the result is
// deterministic for a given tree.
func ListRecordFiles(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return out, nil
}

// ReadNote parses the record stored at path.
func ReadNote(path string) (keepdomain.Note, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return keepdomain.Note{}, fmt.Errorf("read %s: %w", path, err)
	}
	note, err := ParseNote(b)
	if err != nil {
		return keepdomain.Note{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return note, nil
}

// ParseNote maps one raw record to a normalized note. The payload must
// decode to a JSON object; anything else is a parse failure the caller
// counts and skips. Field shapes are deliberately loose: Takeout
// records omit most keys most of the time, and only the sub-fields
// read here matter downstream.
func ParseNote(data []byte) (keepdomain.Note, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return keepdomain.Note{}, fmt.Errorf("decode record: %w", err)
	}

	note := keepdomain.Note{
		Title:       asString(raw["title"]),
		CreatedUsec: asInt64(raw["createdTimestampUsec"]),
		UpdatedUsec: asInt64(raw["userEditedTimestampUsec"]),
		Trashed:     asBool(raw["isTrashed"]),
		Pinned:      asBool(raw["isPinned"]),
		Archived:    asBool(raw["isArchived"]),
		Color:       asString(raw["color"]),
	}

	// An explicit plain-text field wins even when empty; only when the
	// key is absent do the HTML variants get a look, first present wins.
	if v, ok := raw["textContent"]; ok {
		note.Content = asString(v)
	} else if v := anyMapGet(raw, "textContentHtml", "textHtml"); v != nil {
		note.Content = htmltext.Strip(asString(v))
	}

	for _, entry := range asAnySlice(raw["listContent"]) {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		text := asString(item["text"])
		if text == "" {
			if v, ok := item["textHtml"]; ok {
				text = htmltext.Strip(asString(v))
			}
		}
		note.Items = append(note.Items, keepdomain.ListItem{
			Text:    text,
			Checked: asBool(item["isChecked"]),
		})
	}

	for _, entry := range asAnySlice(raw["labels"]) {
		label, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, ok := label["name"]
		if !ok {
			continue
		}
		note.Labels = append(note.Labels, asString(name))
	}

	for _, entry := range asAnySlice(raw["attachments"]) {
		att, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		note.Attachments = append(note.Attachments, keepdomain.Attachment{
			FilePath: asString(att["filePath"]),
			Mimetype: asString(att["mimetype"]),
		})
	}

	for _, entry := range asAnySlice(raw["annotations"]) {
		ann, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		note.Annotations = append(note.Annotations, keepdomain.Annotation{
			URL:         asString(ann["url"]),
			Title:       asString(ann["title"]),
			Description: asString(ann["description"]),
		})
	}

	return note, nil
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int:
		return int64(t)
	case int64:
		return t
	case string:
		i, _ := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return i
	default:
		return 0
	}
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	default:
		return false
	}
}

func asAnySlice(v any) []any {
	if v == nil {
		return nil
	}
	if out, ok := v.([]any); ok {
		return out
	}
	return nil
}

func anyMapGet(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return nil
}
