package tui

import (
	"sidecap/internal/errors"
	"sidecap/internal/log"
)

// Event names one of the input events the editor understands.
// Physical keys map to events, events map to handlers; neither mapping
// is global state.
type Event string

const (
	EventNextImage     Event = "next-image"
	EventPrevImage     Event = "prev-image"
	EventJumpForward   Event = "jump-forward"
	EventJumpBack      Event = "jump-back"
	EventGotoFirst     Event = "goto-first"
	EventGotoLast      Event = "goto-last"
	EventDeleteCurrent Event = "delete-current"
	EventFindForward   Event = "find-forward"
	EventFindBackward  Event = "find-backward"
	EventFindNext      Event = "find-next"
	EventFindPrevious  Event = "find-previous"
	EventShuffle       Event = "shuffle"
	EventFlush         Event = "flush"
	EventQuit          Event = "quit"
)

// Dispatcher routes events to handler functions. It is constructed
// once at startup and injected into the model.
type Dispatcher struct {
	handlers map[Event]func() error
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Event]func() error)}
}

// Register binds an event to its handler.
func (d *Dispatcher) Register(ev Event, fn func() error) {
	d.handlers[ev] = fn
}

// Dispatch runs the handler for ev.
func (d *Dispatcher) Dispatch(ev Event) error {
	fn, ok := d.handlers[ev]
	if !ok {
		log.Warn("No handler for event %q", ev)
		return errors.Newf("unbound event: %s", ev)
	}
	return fn()
}

// DefaultKeymap returns the key-to-event table for the editor.
// Everything not listed here falls through to the caption text area.
func DefaultKeymap() map[string]Event {
	return map[string]Event{
		"pgdown":     EventNextImage,
		"pgup":       EventPrevImage,
		"alt+pgdown": EventJumpForward,
		"alt+pgup":   EventJumpBack,
		"alt+home":   EventGotoFirst,
		"alt+end":    EventGotoLast,
		"ctrl+d":     EventDeleteCurrent,
		"ctrl+f":     EventFindForward,
		"ctrl+b":     EventFindBackward,
		"ctrl+g":     EventFindNext,
		"alt+g":      EventFindPrevious,
		"ctrl+l":     EventShuffle,
		"ctrl+s":     EventFlush,
		"esc":        EventQuit,
		"ctrl+c":     EventQuit,
	}
}
