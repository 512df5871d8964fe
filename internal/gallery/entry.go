// Package gallery owns the ordered image collection and its
// navigation state: an entry list sorted at load time, a cursor into
// it, and the transient caption buffer for the current entry. Caption
// text is flushed to its sidecar file before the cursor moves away, so
// navigating never loses edits.
package gallery

import (
	"path/filepath"

	"sidecap/internal/store"
)

// Entry identifies one image file in the collection.
type Entry struct {
	Path string // Absolute path to the image
	Dir  string // Parent directory
}

// NewEntry creates an entry for an image path.
func NewEntry(path string) Entry {
	return Entry{
		Path: path,
		Dir:  filepath.Dir(path),
	}
}

// Name returns the image file name.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// CaptionPath returns the sidecar path for the entry.
func (e Entry) CaptionPath() string {
	return store.CaptionPath(e.Path)
}
