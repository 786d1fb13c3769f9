// Package exportfs has the filesystem helpers used while writing an
// export: attachment copying and output timestamping.
package exportfs

import (
	"io"
	"os"

	keepdomain "keep-to-joplin/internal/domain/keep"
)

// CopyFile copies src to dst byte for byte, syncing before close so a
// reported success means the bytes are on disk.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ApplyNoteTimes stamps a written note file with the note's own edit
// time (creation time when the note was never edited), so the export
// sorts naturally in file managers. Notes without any timestamp are
// left alone.
func ApplyNoteTimes(path string, note keepdomain.Note) error {
	usec := note.UpdatedUsec
	if usec == 0 {
		usec = note.CreatedUsec
	}
	if usec == 0 {
		return nil
	}
	mtime := keepdomain.Time(usec)
	return os.Chtimes(path, mtime, mtime)
}
