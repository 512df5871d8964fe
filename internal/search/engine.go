// Package search locates captions containing a literal substring,
// relative to the collection cursor, with wrap-around. Matching is
// exact and case-sensitive; there is no ranking and no fuzzing.
package search

import (
	"strings"

	"sidecap/internal/gallery"
	"sidecap/internal/log"
)

// Engine scans the collection's stored captions. The last-used query
// sticks until replaced, so "find next" repeats the previous search.
type Engine struct {
	col   *gallery.Collection
	query string
}

// New creates an engine over col.
func New(col *gallery.Collection) *Engine {
	return &Engine{col: col}
}

// Query returns the sticky query string.
func (e *Engine) Query() string {
	return e.query
}

// FindNext moves the cursor to the next caption containing query,
// scanning forward from cursor+1 and wrapping past the end exactly
// once. An empty query reuses the sticky one. Returns whether a match
// was found; no match leaves the cursor unchanged.
func (e *Engine) FindNext(query string) (bool, error) {
	q, ok := e.prepare(query)
	if !ok {
		return false, nil
	}

	n := e.col.Len()
	cur := e.col.Index()

	// Primary range, then the wrap range, each scanned at most once.
	// The wrap includes the start index but never re-scans the
	// primary range, so a non-matching query touches every caption
	// exactly once.
	return e.scanForward([][2]int{{cur + 1, n}, {0, cur + 1}}, q)
}

// FindPrev is symmetric to FindNext: it scans backward from cursor-1,
// wrapping to the end exactly once.
func (e *Engine) FindPrev(query string) (bool, error) {
	q, ok := e.prepare(query)
	if !ok {
		return false, nil
	}

	n := e.col.Len()
	cur := e.col.Index()

	return e.scanBackward([][2]int{{0, cur}, {cur, n}}, q)
}

// prepare resolves the sticky query and filters out the no-op cases:
// empty collection, or no query at all.
func (e *Engine) prepare(query string) (string, bool) {
	if query != "" {
		e.query = query
	}
	if e.col.Empty() || e.query == "" {
		return "", false
	}
	return e.query, true
}

// scanForward checks each half-open range [lo, hi) in increasing
// order. Empty or inverted ranges mean "no candidates", not an error.
func (e *Engine) scanForward(ranges [][2]int, query string) (bool, error) {
	for _, r := range ranges {
		if r[0] >= r[1] {
			continue
		}
		for i := r[0]; i < r[1]; i++ {
			found, err := e.match(i, query)
			if err != nil || found {
				return found, err
			}
		}
	}
	log.Debug("No caption contains %q", query)
	return false, nil
}

// scanBackward checks each half-open range [lo, hi), walking every
// range from its top end down.
func (e *Engine) scanBackward(ranges [][2]int, query string) (bool, error) {
	for _, r := range ranges {
		if r[0] >= r[1] {
			continue
		}
		for i := r[1] - 1; i >= r[0]; i-- {
			found, err := e.match(i, query)
			if err != nil || found {
				return found, err
			}
		}
	}
	log.Debug("No caption contains %q", query)
	return false, nil
}

func (e *Engine) match(i int, query string) (bool, error) {
	text, err := e.col.CaptionAt(i)
	if err != nil {
		return false, err
	}
	if !strings.Contains(text, query) {
		return false, nil
	}
	log.Debug("Found %q at index %d", query, i)
	return true, e.col.GoTo(i)
}
