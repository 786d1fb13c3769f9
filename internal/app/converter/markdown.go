package converter

import (
	"strings"

	"github.com/goccy/go-yaml"

	keepdomain "keep-to-joplin/internal/domain/keep"
)

// AttachmentRef points a rendered note at a copied resource file. It
// is computed per export run, never stored on the note, because the
// destination name depends on collisions seen across the whole batch.
type AttachmentRef struct {
	DisplayName string
	RelPath     string
	Mimetype    string
}

// renderNote turns a note into its Markdown document: body, checklist,
// labels, attachments, links, then a small timestamp footer. Notes
// with a recognized color get the whole thing wrapped in a tinted div
// with the footer inside. Pure function, no I/O; output always ends
// with exactly one newline.
func renderNote(note keepdomain.Note, refs []AttachmentRef) string {
	body := renderSections(note, refs)

	label := "Created"
	usec := note.CreatedUsec
	if note.UpdatedUsec != 0 {
		label = "Updated"
		usec = note.UpdatedUsec
	}
	footer := `<small style="color: #555;">` + label + ": " + keepdomain.TimestampString(usec) + "</small>"

	lines := make([]string, 0, len(body)+4)
	if hex, ok := keepdomain.ColorHex(note.Color); ok {
		lines = append(lines, `<div class="keep-note" style="background-color: `+hex+`; color: black; padding: 16px; border-radius: 8px; margin-bottom: 16px;">`)
		lines = append(lines, "")
		lines = append(lines, body...)
		lines = append(lines, footer)
		lines = append(lines, "</div>")
	} else {
		lines = append(lines, body...)
		lines = append(lines, footer)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

// renderSections builds the body lines shared by both rendering
// policies. Sections are separated by single blank lines and the
// result carries no trailing blanks.
func renderSections(note keepdomain.Note, refs []AttachmentRef) []string {
	body := make([]string, 0, 8)

	if note.Content != "" {
		body = append(body, strings.TrimRight(note.Content, " \t\r\n"))
		body = append(body, "")
	}

	for _, item := range note.Items {
		mark := " "
		if item.Checked {
			mark = "x"
		}
		body = append(body, "- ["+mark+"] "+item.Text)
	}
	if len(note.Items) > 0 {
		body = append(body, "")
	}

	if len(body) > 0 && body[len(body)-1] == "" {
		body = body[:len(body)-1]
	}

	if len(note.Labels) > 0 {
		if len(body) > 0 {
			body = append(body, "")
		}
		body = append(body, "Labels: "+strings.Join(note.Labels, ", "))
	}

	if len(refs) > 0 {
		if len(body) > 0 {
			body = append(body, "")
		}
		body = append(body, "Attachments:")
		for _, ref := range refs {
			if strings.HasPrefix(ref.Mimetype, "image/") {
				body = append(body, "!["+ref.DisplayName+"]("+ref.RelPath+")")
			} else {
				body = append(body, "["+ref.DisplayName+"]("+ref.RelPath+")")
			}
		}
	}

	links := make([]string, 0, len(note.Annotations))
	for _, ann := range note.Annotations {
		if ann.URL == "" {
			continue
		}
		text := ann.Title
		if text == "" {
			text = ann.Description
		}
		if text == "" {
			text = ann.URL
		}
		line := "- [" + text + "](" + ann.URL + ")"
		if ann.Description != "" && ann.Description != text {
			line += " — " + ann.Description
		}
		links = append(links, line)
	}
	if len(links) > 0 {
		if len(body) > 0 {
			body = append(body, "")
		}
		body = append(body, "Links:")
		body = append(body, links...)
	}

	for len(body) > 0 && body[len(body)-1] == "" {
		body = body[:len(body)-1]
	}
	return body
}

type noteFrontmatter struct {
	Title    string   `yaml:"title"`
	Created  string   `yaml:"created"`
	Updated  string   `yaml:"updated,omitempty"`
	Labels   []string `yaml:"labels,omitempty"`
	Color    string   `yaml:"color,omitempty"`
	Pinned   bool     `yaml:"pinned,omitempty"`
	Archived bool     `yaml:"archived,omitempty"`
	Trashed  bool     `yaml:"trashed,omitempty"`
}

// renderFrontmatterNote is the alternative rendering policy: metadata
// moves into a YAML frontmatter block and the body keeps no footer and
// no color wrapper.
func renderFrontmatterNote(note keepdomain.Note, refs []AttachmentRef) string {
	fm := noteFrontmatter{
		Title:    note.Title,
		Created:  keepdomain.TimestampString(note.CreatedUsec),
		Labels:   note.Labels,
		Pinned:   note.Pinned,
		Archived: note.Archived,
		Trashed:  note.Trashed,
	}
	if note.UpdatedUsec != 0 {
		fm.Updated = keepdomain.TimestampString(note.UpdatedUsec)
	}
	if _, ok := keepdomain.ColorHex(note.Color); ok {
		fm.Color = strings.ToUpper(strings.TrimSpace(note.Color))
	}

	encoded, err := yaml.Marshal(fm)
	if err != nil {
		// Marshal of a plain struct does not fail in practice; keep
		// the note exportable regardless.
		return renderNote(note, refs)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(encoded)
	b.WriteString("---\n")
	if body := renderSections(note, refs); len(body) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(body, "\n"))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
