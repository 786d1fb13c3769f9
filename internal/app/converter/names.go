package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// nameRegistry hands out unique file names within a single conversion
// run. A name is checked against both the in-run reservations and the
// target directory's existing entries, and reserved in the same step,
// so two callers can never claim the same disambiguated name. One
// registry belongs to exactly one Run invocation.
type nameRegistry struct {
	dir  string
	used map[string]struct{}
}

func newNameRegistry(dir string) *nameRegistry {
	return &nameRegistry{dir: dir, used: map[string]struct{}{}}
}

func (r *nameRegistry) taken(name string) bool {
	if _, ok := r.used[name]; ok {
		return true
	}
	_, err := os.Stat(filepath.Join(r.dir, name))
	return err == nil
}

// reserve walks candidate(1), candidate(2), ... until a free name
// turns up, records it and returns it. Given the same call sequence
// against the same directory the assignment is reproducible.
func (r *nameRegistry) reserve(candidate func(counter int) string) string {
	name := candidate(1)
	for counter := 1; r.taken(name); {
		counter++
		name = candidate(counter)
	}
	r.used[name] = struct{}{}
	return name
}

// noteCandidates names a note file after its sanitized title, with a
// parenthesized counter on collision: "Title.md", "Title (2).md", ...
func noteCandidates(base string) func(int) string {
	return func(counter int) string {
		if counter == 1 {
			return base + ".md"
		}
		return fmt.Sprintf("%s (%d).md", base, counter)
	}
}

// attachmentCandidates names a copied attachment after the slug of its
// original base name, keeping the extension: "photo.jpg",
// "photo-2.jpg", ...
func attachmentCandidates(original string) func(int) string {
	ext := filepath.Ext(original)
	base := slugify(strings.TrimSuffix(original, ext))
	if base == "" {
		base = "attachment"
	}
	return func(counter int) string {
		if counter == 1 {
			return base + ext
		}
		return fmt.Sprintf("%s-%d%s", base, counter, ext)
	}
}

// sanitizeNoteFilename keeps spaces and case but drops path separators
// and characters illegal on common filesystems, then trims the
// trailing dots and spaces Windows refuses.
func sanitizeNoteFilename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range title {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), ". ")
}

var (
	slugUnsafe     = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugSeparators = regexp.MustCompile(`[-\s]+`)
)

// slugify lowercases, drops unsafe runes and collapses whitespace and
// hyphen runs to a single hyphen.
func slugify(s string) string {
	s = slugUnsafe.ReplaceAllString(s, "")
	s = strings.ToLower(strings.TrimSpace(s))
	return slugSeparators.ReplaceAllString(s, "-")
}
