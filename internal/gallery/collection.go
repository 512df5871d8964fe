package gallery

import (
	"math/rand"
	"path/filepath"
	"sort"
	"strings"

	"sidecap/internal/config"
	"sidecap/internal/log"
	"sidecap/internal/store"
)

// Collection is the ordered image sequence with a cursor. It owns the
// entry list exclusively; callers only see copies. The caption buffer
// for the current entry lives here too, so flush-on-navigate can never
// be skipped by a caller.
type Collection struct {
	root      string
	entries   []Entry
	index     int
	caption   string // transient buffer for the current entry
	version   uint64 // bumped on every structural change
	scanner   *Scanner
	trashName string
}

// New creates an empty collection configured with the accepted image
// extensions and trash folder name.
func New(cfg *config.Config) (*Collection, error) {
	scanner, err := NewScanner(cfg.Images.Extensions, cfg.Trash.DirName)
	if err != nil {
		return nil, err
	}
	return &Collection{
		scanner:   scanner,
		trashName: cfg.Trash.DirName,
	}, nil
}

// Load scans dir recursively for images, sorts them by
// case-insensitive path, and replaces any prior collection. The cursor
// resets to 0 and the first caption is read into the buffer.
func (c *Collection) Load(dir string) error {
	entries, err := c.scanner.Scan(dir)
	if err != nil {
		return err
	}
	sortEntries(entries)

	absRoot, err := filepath.Abs(dir)
	if err != nil {
		absRoot = dir
	}

	c.root = absRoot
	c.entries = entries
	c.index = 0
	c.version++
	log.Info("Loaded %d images from %s", len(entries), absRoot)
	return c.loadCaption()
}

// sortEntries sorts by case-insensitive lexical path comparison. The
// sort is stable so paths differing only in case keep scan order.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Path) < strings.ToLower(entries[j].Path)
	})
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Empty reports whether the collection has no entries.
func (c *Collection) Empty() bool {
	return len(c.entries) == 0
}

// Root returns the directory the collection was loaded from.
func (c *Collection) Root() string {
	return c.root
}

// Index returns the cursor position.
func (c *Collection) Index() int {
	return c.index
}

// Position returns the cursor position and total count for display.
func (c *Collection) Position() (int, int) {
	return c.index, len(c.entries)
}

// Version returns a counter bumped on every structural change (load,
// delete, shuffle, refresh). Callers use it to notice staleness.
func (c *Collection) Version() uint64 {
	return c.version
}

// Current returns the entry under the cursor, if any.
func (c *Collection) Current() (Entry, bool) {
	if len(c.entries) == 0 {
		return Entry{}, false
	}
	return c.entries[c.index], true
}

// Entries returns a copy of the entry list. The collection's own
// slice is never aliased outside this package.
func (c *Collection) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Caption returns the buffer text for the current entry.
func (c *Collection) Caption() string {
	return c.caption
}

// SetCaption replaces the buffer text. The sidecar is not written
// until the next flush.
func (c *Collection) SetCaption(text string) {
	if len(c.entries) == 0 {
		return
	}
	c.caption = text
}

// SetIndex sets the cursor to i with floored modulo, so SetIndex(-1)
// lands on the last element and out-of-range jumps wrap. No-op when
// the collection is empty.
func (c *Collection) SetIndex(i int) {
	n := len(c.entries)
	if n == 0 {
		return
	}
	i %= n
	if i < 0 {
		i += n
	}
	c.index = i
}

// GoTo flushes the current caption, then moves the cursor to i and
// reads the caption there. Flush happens before the cursor moves:
// caption text for the entry being left must never be lost.
func (c *Collection) GoTo(i int) error {
	if len(c.entries) == 0 {
		return nil
	}
	if err := c.Flush(); err != nil {
		return err
	}
	c.SetIndex(i)
	return c.loadCaption()
}

// Next moves the cursor forward one entry, wrapping at the end.
func (c *Collection) Next() error {
	return c.GoTo(c.index + 1)
}

// Prev moves the cursor back one entry, wrapping at the start.
func (c *Collection) Prev() error {
	return c.GoTo(c.index - 1)
}

// Jump moves the cursor by offset with wrap-around.
func (c *Collection) Jump(offset int) error {
	return c.GoTo(c.index + offset)
}

// First moves the cursor to the first entry.
func (c *Collection) First() error {
	return c.GoTo(0)
}

// Last moves the cursor to the last entry.
func (c *Collection) Last() error {
	return c.GoTo(len(c.entries) - 1)
}

// Flush writes the normalized buffer text to the current entry's
// sidecar. No-op when the collection is empty.
func (c *Collection) Flush() error {
	if len(c.entries) == 0 {
		return nil
	}
	return store.Write(c.entries[c.index].Path, store.Normalize(c.caption))
}

// Delete relocates the current entry (image and sidecar) into the
// trash folder under the collection root, removes it from the
// sequence, and re-clamps the cursor. If relocation fails the entry
// stays in the collection and the error propagates.
func (c *Collection) Delete() error {
	if len(c.entries) == 0 {
		return nil
	}

	entry := c.entries[c.index]
	trashDir := filepath.Join(c.root, c.trashName)
	if err := store.Relocate(entry.Path, trashDir); err != nil {
		return err
	}

	c.entries = append(c.entries[:c.index], c.entries[c.index+1:]...)
	c.version++
	log.Info("Moved %s to %s", entry.Name(), trashDir)

	if len(c.entries) == 0 {
		c.index = 0
		c.caption = ""
		return nil
	}
	// Deleting the last element moves the cursor to the new last
	// element, not out of range.
	c.SetIndex(c.index)
	return c.loadCaption()
}

// Shuffle flushes the current caption, randomly permutes the
// sequence, and resets the cursor to 0.
func (c *Collection) Shuffle() error {
	if len(c.entries) == 0 {
		return nil
	}
	if err := c.Flush(); err != nil {
		return err
	}
	rand.Shuffle(len(c.entries), func(i, j int) {
		c.entries[i], c.entries[j] = c.entries[j], c.entries[i]
	})
	c.index = 0
	c.version++
	return c.loadCaption()
}

// Refresh rescans the root directory, keeping the cursor on the
// current entry when it survives the rescan. Used when the folder
// changes underneath the editor.
func (c *Collection) Refresh() error {
	if c.root == "" {
		return nil
	}
	if err := c.Flush(); err != nil {
		return err
	}

	var currentPath string
	if entry, ok := c.Current(); ok {
		currentPath = entry.Path
	}

	entries, err := c.scanner.Scan(c.root)
	if err != nil {
		return err
	}
	sortEntries(entries)

	c.entries = entries
	c.version++

	if currentPath != "" {
		for i, e := range c.entries {
			if e.Path == currentPath {
				c.index = i
				return c.loadCaption()
			}
		}
	}
	if len(c.entries) == 0 {
		c.index = 0
		c.caption = ""
		return nil
	}
	c.SetIndex(c.index)
	return c.loadCaption()
}

// CaptionAt reads the sidecar caption for the entry at index i
// directly from disk. Search runs over stored captions, not the
// in-memory buffer.
func (c *Collection) CaptionAt(i int) (string, error) {
	if i < 0 || i >= len(c.entries) {
		return "", nil
	}
	return store.Read(c.entries[i].Path)
}

// loadCaption reads the current entry's sidecar into the buffer.
func (c *Collection) loadCaption() error {
	if len(c.entries) == 0 {
		c.caption = ""
		return nil
	}
	text, err := store.Read(c.entries[c.index].Path)
	if err != nil {
		return err
	}
	c.caption = text
	return nil
}
