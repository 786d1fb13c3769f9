// Package converter walks a Takeout Keep export and writes one
// Markdown file per surviving note, copying referenced attachments
// into a resources subdirectory.
package converter

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	keepdomain "keep-to-joplin/internal/domain/keep"
	"keep-to-joplin/internal/infra/exportfs"
	"keep-to-joplin/internal/infra/keepjson"
)

// Converter is one conversion invocation. The zero options convert
// everything except trashed and archived notes, for real. Progress, if
// set, receives human-readable status messages as the batch advances;
// it is a pure side channel and never alters control flow.
//
// A Converter runs strictly sequentially and must not be invoked
// concurrently against the same output directory: the collision
// registries it owns are run-scoped, not shared.
type Converter struct {
	InputDir        string
	OutputDir       string
	IncludeTrashed  bool
	IncludeArchived bool
	DryRun          bool
	Frontmatter     bool
	Progress        func(message string)
}

// Stats counts what one run did. Recoverable failures land in the
// counters rather than aborting, so a caller can tell a degraded run
// from a clean one.
type Stats struct {
	Processed       int
	Exported        int
	SkippedTrashed  int
	SkippedArchived int
	SkippedInvalid  int
	Errors          int
}

// Summary renders the counters the way the CLI and TUI report them.
func (s Stats) Summary() string {
	out := fmt.Sprintf("Processed: %d JSON files\n", s.Processed)
	out += fmt.Sprintf("Exported notes: %d\n", s.Exported)
	out += fmt.Sprintf("Skipped trashed: %d\n", s.SkippedTrashed)
	out += fmt.Sprintf("Skipped archived: %d\n", s.SkippedArchived)
	out += fmt.Sprintf("Skipped invalid: %d", s.SkippedInvalid)
	if s.Errors > 0 {
		out += fmt.Sprintf("\nWrite errors: %d", s.Errors)
	}
	return out
}

func (c Converter) log(format string, args ...any) {
	if c.Progress != nil {
		c.Progress(fmt.Sprintf(format, args...))
	}
}

type queuedNote struct {
	note keepdomain.Note
	path string
}

// Run converts the export. The only fatal condition is a missing
// input directory; everything else is counted and skipped.
func (c Converter) Run() (Stats, error) {
	info, err := os.Stat(c.InputDir)
	if err != nil || !info.IsDir() {
		return Stats{}, fmt.Errorf("input directory %q does not exist", c.InputDir)
	}

	if !c.DryRun {
		if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
			return Stats{}, fmt.Errorf("create output dir: %w", err)
		}
	}

	var stats Stats
	c.log("Scanning '%s'...", c.InputDir)

	files, err := keepjson.ListRecordFiles(c.InputDir)
	if err != nil {
		return Stats{}, err
	}

	pending := make([]queuedNote, 0, len(files))
	for _, recordPath := range files {
		stats.Processed++
		c.log("Processing: %s", filepath.Base(recordPath))

		note, err := keepjson.ReadNote(recordPath)
		if err != nil {
			stats.SkippedInvalid++
			c.log("  -> Invalid or empty JSON")
			continue
		}
		if note.Trashed && !c.IncludeTrashed {
			stats.SkippedTrashed++
			c.log("  -> Skipped (Trashed)")
			continue
		}
		if note.Archived && !c.IncludeArchived {
			stats.SkippedArchived++
			c.log("  -> Skipped (Archived)")
			continue
		}
		pending = append(pending, queuedNote{note: note, path: recordPath})
	}

	// Pinned notes first, then oldest edits first. The sort must be
	// stable so discovery order breaks ties and filenames stay
	// reproducible between runs.
	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i].note, pending[j].note
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		return a.UpdatedUsec < b.UpdatedUsec
	})

	resourcesDir := filepath.Join(c.OutputDir, "resources")
	resourcesReady := false
	attachmentNames := newNameRegistry(resourcesDir)
	noteNames := newNameRegistry(c.OutputDir)

	for _, q := range pending {
		refs := make([]AttachmentRef, 0, len(q.note.Attachments))
		for _, att := range q.note.Attachments {
			if att.FilePath == "" {
				continue
			}
			source := filepath.Join(filepath.Dir(q.path), filepath.FromSlash(att.FilePath))
			if !exportfs.IsRegularFile(source) {
				c.log("  -> Attachment missing: %s", att.FilePath)
				continue
			}

			destName := attachmentNames.reserve(attachmentCandidates(path.Base(filepath.ToSlash(att.FilePath))))
			relPath := path.Join("resources", destName)

			if c.DryRun {
				c.log("  -> [Dry Run] Would copy attachment %s -> %s", att.FilePath, relPath)
			} else {
				if !resourcesReady {
					if err := os.MkdirAll(resourcesDir, 0o755); err != nil {
						c.log("  -> Attachment copy failed: %v", err)
						stats.Errors++
						continue
					}
					resourcesReady = true
				}
				if err := exportfs.CopyFile(source, filepath.Join(resourcesDir, destName)); err != nil {
					c.log("  -> Attachment copy failed: %v", err)
					stats.Errors++
					continue
				}
				c.log("  -> Copied attachment %s -> %s", att.FilePath, relPath)
			}

			refs = append(refs, AttachmentRef{
				DisplayName: path.Base(filepath.ToSlash(att.FilePath)),
				RelPath:     relPath,
				Mimetype:    att.Mimetype,
			})
		}

		var content string
		if c.Frontmatter {
			content = renderFrontmatterNote(q.note, refs)
		} else {
			content = renderNote(q.note, refs)
		}

		base := sanitizeNoteFilename(q.note.Title)
		if base == "" {
			base = fmt.Sprintf("note-%d", q.note.CreatedUsec)
		}
		fileName := noteNames.reserve(noteCandidates(base))
		outPath := filepath.Join(c.OutputDir, fileName)

		if c.DryRun {
			c.log("[Dry Run] Would write: %s (from %s)", outPath, filepath.Base(q.path))
		} else {
			if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
				c.log("Error writing %s: %v", outPath, err)
				stats.Errors++
				continue
			}
			if err := exportfs.ApplyNoteTimes(outPath, q.note); err != nil {
				c.log("  -> Could not set timestamps on %s: %v", fileName, err)
			}
			c.log("  -> Wrote: %s", fileName)
		}
		stats.Exported++
	}

	return stats, nil
}
