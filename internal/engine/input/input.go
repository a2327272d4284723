// Package input polls SDL2 keyboard and window events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a polled event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event is one processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Input collects this frame's events and tracks which keys are held.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool
}

// New creates an input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events. It returns true when the window was asked to close.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			// auto-repeat would re-fire jump and toggle
			if e.Repeat != 0 {
				continue
			}
			i.Apply(keyEvent(e))
		}
	}

	return false
}

func keyEvent(e *sdl.KeyboardEvent) Event {
	t := EventKeyUp
	if e.Type == sdl.KEYDOWN {
		t = EventKeyDown
	}
	return Event{Type: t, Key: e.Keysym.Scancode}
}

// Apply records an event as if it had been polled, which lets scripted runs drive the
// same code path as the keyboard.
func (i *Input) Apply(e Event) {
	switch e.Type {
	case EventKeyDown:
		i.held[e.Key] = true
	case EventKeyUp:
		delete(i.held, e.Key)
	}
	i.events = append(i.events, e)
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether the key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	return i.has(EventKeyDown, scancode)
}

// IsKeyReleased reports whether the key went up this frame.
func (i *Input) IsKeyReleased(scancode sdl.Scancode) bool {
	return i.has(EventKeyUp, scancode)
}

// IsKeyHeld reports whether the key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

func (i *Input) has(t EventType, scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == t && e.Key == scancode {
			return true
		}
	}
	return false
}
