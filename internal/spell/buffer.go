package spell

import "sync"

// Buffer is a minimal TextSource for editors that push their full
// content on every edit. Reads and writes may come from different
// goroutines: the editor writes, the debounce timer reads.
type Buffer struct {
	mu   sync.RWMutex
	text string
}

// SetText replaces the buffer content.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
}

// Text returns the buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}
