package converter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	keepdomain "keep-to-joplin/internal/domain/keep"
)

func TestRunConvertsAndCounts(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "Keep")
	output := filepath.Join(root, "JoplinImport")

	writeRecord(t, filepath.Join(input, "good.json"), map[string]any{
		"title":       "Good note",
		"textContent": "hello",
	})
	writeRecord(t, filepath.Join(input, "trashed.json"), map[string]any{
		"title":     "Old",
		"isTrashed": true,
	})
	writeRecord(t, filepath.Join(input, "archived.json"), map[string]any{
		"title":      "Shelved",
		"isArchived": true,
	})
	mustWrite(t, filepath.Join(input, "broken.json"), "{not json")
	mustWrite(t, filepath.Join(input, "ignored.txt"), "not a record")

	stats, err := (Converter{InputDir: input, OutputDir: output}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := Stats{Processed: 4, Exported: 1, SkippedTrashed: 1, SkippedArchived: 1, SkippedInvalid: 1}
	if stats != want {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}
	if _, err := os.Stat(filepath.Join(output, "Good note.md")); err != nil {
		t.Fatalf("expected exported note: %v", err)
	}
	if _, err := os.Stat(filepath.Join(output, "resources")); !os.IsNotExist(err) {
		t.Fatalf("resources dir must not exist without attachments: %v", err)
	}
}

func TestRunIncludesTrashedWhenAsked(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "Keep")
	output := filepath.Join(root, "out")

	writeRecord(t, filepath.Join(input, "trashed.json"), map[string]any{
		"title":     "Old",
		"isTrashed": true,
	})

	stats, err := (Converter{InputDir: input, OutputDir: output, IncludeTrashed: true}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.SkippedTrashed != 0 || stats.Exported != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if _, err := os.Stat(filepath.Join(output, "Old.md")); err != nil {
		t.Fatalf("expected trashed note to export: %v", err)
	}
}

func TestRunFailsOnMissingInputDir(t *testing.T) {
	_, err := (Converter{InputDir: filepath.Join(t.TempDir(), "nope"), OutputDir: t.TempDir()}).Run()
	if err == nil {
		t.Fatal("expected error for missing input directory")
	}
}

func TestRunSortsPinnedFirstThenOldestEdit(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "Keep")
	output := filepath.Join(root, "out")

	writeRecord(t, filepath.Join(input, "a.json"), map[string]any{
		"title": "loose", "userEditedTimestampUsec": 100,
	})
	writeRecord(t, filepath.Join(input, "b.json"), map[string]any{
		"title": "pinned-old", "isPinned": true, "userEditedTimestampUsec": 50,
	})
	writeRecord(t, filepath.Join(input, "c.json"), map[string]any{
		"title": "pinned-new", "isPinned": true, "userEditedTimestampUsec": 200,
	})

	var wrote []string
	conv := Converter{InputDir: input, OutputDir: output, Progress: func(m string) {
		if strings.Contains(m, "Wrote:") {
			wrote = append(wrote, m)
		}
	}}
	if _, err := conv.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"pinned-old.md", "pinned-new.md", "loose.md"}
	if len(wrote) != len(want) {
		t.Fatalf("expected %d writes, got %v", len(want), wrote)
	}
	for i, name := range want {
		if !strings.Contains(wrote[i], name) {
			t.Fatalf("write %d = %q, want %q (all: %v)", i, wrote[i], name, wrote)
		}
	}
}

func TestRunCopiesAttachments(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "Keep")
	output := filepath.Join(root, "out")

	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	mustWrite(t, filepath.Join(input, "photo.png"), string(payload))
	writeRecord(t, filepath.Join(input, "note.json"), map[string]any{
		"title": "With photo",
		"attachments": []any{
			map[string]any{"filePath": "photo.png", "mimetype": "image/png"},
			map[string]any{"filePath": "missing.jpg", "mimetype": "image/jpeg"},
		},
	})

	stats, err := (Converter{InputDir: input, OutputDir: output}).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Errors != 0 || stats.Exported != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	copied, err := os.ReadFile(filepath.Join(output, "resources", "photo.png"))
	if err != nil {
		t.Fatalf("read copied attachment: %v", err)
	}
	if string(copied) != string(payload) {
		t.Fatalf("attachment copy is not byte-identical")
	}

	note, err := os.ReadFile(filepath.Join(output, "With photo.md"))
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	if !strings.Contains(string(note), "![photo.png](resources/photo.png)") {
		t.Fatalf("expected image reference:\n%s", note)
	}
	if strings.Contains(string(note), "missing.jpg") {
		t.Fatalf("missing attachment must be omitted from the note:\n%s", note)
	}
}

func TestRunDryRunMatchesRealStats(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "Keep")

	mustWrite(t, filepath.Join(input, "photo.png"), "bytes")
	writeRecord(t, filepath.Join(input, "one.json"), map[string]any{
		"title":       "One",
		"attachments": []any{map[string]any{"filePath": "photo.png", "mimetype": "image/png"}},
	})
	writeRecord(t, filepath.Join(input, "two.json"), map[string]any{
		"title": "Two", "isTrashed": true,
	})
	mustWrite(t, filepath.Join(input, "bad.json"), "[")

	dryOut := filepath.Join(root, "dry")
	dryStats, err := (Converter{InputDir: input, OutputDir: dryOut, DryRun: true}).Run()
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}

	realOut := filepath.Join(root, "real")
	realStats, err := (Converter{InputDir: input, OutputDir: realOut}).Run()
	if err != nil {
		t.Fatalf("real run: %v", err)
	}

	if dryStats != realStats {
		t.Fatalf("dry %+v != real %+v", dryStats, realStats)
	}
	if _, err := os.Stat(dryOut); !os.IsNotExist(err) {
		t.Fatalf("dry run must not create the output directory: %v", err)
	}
}

func TestRunDisambiguatesCollidingTitles(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "Keep")
	output := filepath.Join(root, "out")

	for i, usec := range []int{100, 200, 300} {
		writeRecord(t, filepath.Join(input, string(rune('a'+i))+".json"), map[string]any{
			"title":                   "Same/Title",
			"userEditedTimestampUsec": usec,
		})
	}

	if _, err := (Converter{InputDir: input, OutputDir: output}).Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{"SameTitle.md", "SameTitle (2).md", "SameTitle (3).md"} {
		if _, err := os.Stat(filepath.Join(output, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestRunUntitledNoteFallsBackToCreatedStamp(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "Keep")
	output := filepath.Join(root, "out")

	writeRecord(t, filepath.Join(input, "n.json"), map[string]any{
		"textContent":          "no title",
		"createdTimestampUsec": 1234567890,
	})

	if _, err := (Converter{InputDir: input, OutputDir: output}).Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(output, "note-1234567890.md")); err != nil {
		t.Fatalf("expected fallback filename: %v", err)
	}
}

func TestRunStampsNoteTimes(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "Keep")
	output := filepath.Join(root, "out")

	writeRecord(t, filepath.Join(input, "n.json"), map[string]any{
		"title":                   "Stamped",
		"userEditedTimestampUsec": 1609459200000000,
	})

	if _, err := (Converter{InputDir: input, OutputDir: output}).Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	info, err := os.Stat(filepath.Join(output, "Stamped.md"))
	if err != nil {
		t.Fatalf("stat note: %v", err)
	}
	if got := info.ModTime().UTC(); !got.Equal(keepdomain.Time(1609459200000000)) {
		t.Fatalf("mtime = %v, want note edit time", got)
	}
}

func writeRecord(t *testing.T, path string, record map[string]any) {
	t.Helper()
	b, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	mustWrite(t, path, string(b))
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
