// Package spell provides incremental spell checking for the caption
// editor. Checking is debounced: every edit restarts a short timer,
// and the check runs once per quiescent pause in typing rather than on
// every keystroke. Each pass recomputes the full highlight set from
// the current buffer text; nothing is patched incrementally.
package spell

import (
	"strings"
	"sync"
	"time"

	"sidecap/internal/log"
)

// Span is one misspelled token's position: line and rune-column range,
// end exclusive.
type Span struct {
	Line  int
	Start int
	End   int
}

// TextSource is the capability a text-editing surface exposes to drive
// the checker. Any editor that can hand over its full current text can
// be spell checked; no coupling to a particular widget.
type TextSource interface {
	Text() string
}

// Checker tags misspelled words in a TextSource on a debounced
// schedule. It holds no mutable state besides the pending timer and
// the last computed span set.
type Checker struct {
	dict   *Dictionary
	source TextSource
	delay  time.Duration
	timer  Timer

	mu     sync.Mutex
	spans  []Span
	passes int

	updates chan []Span
}

// NewChecker creates a checker over source using dict, firing delay
// after the last edit.
func NewChecker(dict *Dictionary, source TextSource, delay time.Duration) *Checker {
	return &Checker{
		dict:    dict,
		source:  source,
		delay:   delay,
		updates: make(chan []Span, 1),
	}
}

// OnTextChanged is called on every text-mutating edit. It restarts the
// debounce timer; the check runs only after delay elapses with no
// further edits.
func (c *Checker) OnTextChanged() {
	c.timer.Schedule(c.delay, c.Check)
}

// Stop cancels any pending check.
func (c *Checker) Stop() {
	c.timer.Cancel()
}

// Check recomputes the highlight set from the source's current text.
// It is idempotent and total: the result depends only on buffer
// content, never on prior highlight state.
func (c *Checker) Check() {
	text := c.source.Text()
	spans := c.compute(text)

	c.mu.Lock()
	c.spans = spans
	c.passes++
	c.mu.Unlock()

	// Non-blocking send; a stale unread result is replaced.
	select {
	case c.updates <- spans:
	default:
		select {
		case <-c.updates:
		default:
		}
		select {
		case c.updates <- spans:
		default:
		}
	}
}

func (c *Checker) compute(text string) []Span {
	var spans []Span
	for lineNo, line := range strings.Split(text, "\n") {
		for _, tok := range Tokenize(line) {
			if c.dict.Check(tok.Word) {
				continue
			}
			log.Debug("Misspelled %q at %d:%d", tok.Word, lineNo, tok.Start)
			spans = append(spans, Span{
				Line:  lineNo,
				Start: tok.Start,
				End:   tok.Start + len([]rune(tok.Word)),
			})
		}
	}
	return spans
}

// Spans returns a copy of the last computed highlight set.
func (c *Checker) Spans() []Span {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Span, len(c.spans))
	copy(out, c.spans)
	return out
}

// Passes returns how many check passes have completed.
func (c *Checker) Passes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passes
}

// Updates delivers each newly computed span set. The channel holds the
// most recent unread result only.
func (c *Checker) Updates() <-chan []Span {
	return c.updates
}

// Words returns the misspelled words of text in order, once each.
// Convenience for surfaces that show a summary line instead of inline
// highlights.
func Words(text string, spans []Span) []string {
	lines := strings.Split(text, "\n")
	seen := make(map[string]bool)
	var words []string
	for _, s := range spans {
		if s.Line >= len(lines) {
			continue
		}
		runes := []rune(lines[s.Line])
		if s.Start >= len(runes) || s.End > len(runes) {
			continue
		}
		w := string(runes[s.Start:s.End])
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}
	return words
}
