// Package input translates SDL2 events into interaction input.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/creature-poser/internal/interaction"
)

// EventType classifies a translated event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKey     // Key is set
	EventCommand // Command is set
)

// Event represents a processed input event.
type Event struct {
	Type    EventType
	Key     interaction.Key
	Command interaction.Command
	Width   int
	Height  int
}

// Input tracks pointer buttons across events.
type Input struct {
	events []Event

	leftDown bool
	panDown  bool
	dragged  bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update polls SDL events and translates them.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		for _, e := range i.Translate(event) {
			if e.Type == EventQuit {
				quit = true
			}
			i.events = append(i.events, e)
		}
	}
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

var keyCodes = map[sdl.Keycode]interaction.KeyCode{
	sdl.K_RETURN:   interaction.KeyEnter,
	sdl.K_KP_ENTER: interaction.KeyEnter,
	sdl.K_ESCAPE:   interaction.KeyEscape,
	sdl.K_LEFT:     interaction.KeyLeft,
	sdl.K_RIGHT:    interaction.KeyRight,
	sdl.K_UP:       interaction.KeyUp,
	sdl.K_DOWN:     interaction.KeyDown,
}

// Translate converts one SDL event. Printable characters arrive as text
// input; key down events only carry the named keys.
func (i *Input) Translate(event sdl.Event) []Event {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return []Event{{Type: EventQuit}}

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return []Event{{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}}
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return nil
		}
		if code, ok := keyCodes[e.Keysym.Sym]; ok {
			return []Event{{Type: EventKey, Key: interaction.Key{Code: code}}}
		}

	case *sdl.TextInputEvent:
		var out []Event
		for _, r := range e.GetText() {
			out = append(out, Event{Type: EventKey, Key: interaction.CharKey(r)})
		}
		return out

	case *sdl.MouseButtonEvent:
		return i.button(e)

	case *sdl.MouseMotionEvent:
		return i.motion(e)

	case *sdl.MouseWheelEvent:
		if e.Y != 0 {
			return []Event{command(interaction.Command{Op: interaction.OpRotate, Delta: float32(e.Y)})}
		}
	}
	return nil
}

func (i *Input) button(e *sdl.MouseButtonEvent) []Event {
	pressed := e.State == sdl.PRESSED
	switch e.Button {
	case sdl.BUTTON_LEFT:
		if pressed {
			i.leftDown, i.dragged = true, false
			return nil
		}
		wasClick := i.leftDown && !i.dragged
		i.leftDown = false
		if wasClick {
			return []Event{command(interaction.Command{Op: interaction.OpPick, X: float32(e.X), Y: float32(e.Y)})}
		}
	case sdl.BUTTON_MIDDLE, sdl.BUTTON_RIGHT:
		i.panDown = pressed
	}
	return nil
}

func (i *Input) motion(e *sdl.MouseMotionEvent) []Event {
	x, y := float32(e.X), float32(e.Y)
	dx, dy := float32(e.XRel), float32(e.YRel)
	out := []Event{command(interaction.Command{Op: interaction.OpPointerMove, X: x, Y: y})}
	switch {
	case i.leftDown:
		i.dragged = true
		out = append(out, command(interaction.Command{Op: interaction.OpOrbit, X: x, Y: y, DX: dx, DY: dy}))
	case i.panDown:
		out = append(out, command(interaction.Command{Op: interaction.OpPan, X: x, Y: y, DX: dx, DY: dy}))
	}
	return out
}

func command(c interaction.Command) Event {
	return Event{Type: EventCommand, Command: c}
}
