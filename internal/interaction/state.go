package interaction

import (
	"slices"

	"github.com/Faultbox/creature-poser/internal/joint"
)

// NoSelection is the Index of a state with nothing selected.
const NoSelection = -1

// Mode is the selection state machine state.
type Mode int

const (
	ModeNone Mode = iota
	ModeSingle
	ModeMulti
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeMulti:
		return "multi"
	default:
		return "none"
	}
}

// State is the selection state of a session.
type State struct {
	Index int        // Selected component, or NoSelection
	Axis  joint.Axis // Active rotation axis
	Multi bool       // Multi-select mode
	Set   []int      // Components selected in multi-select mode, in order
}

// NewState returns a state with nothing selected.
func NewState() State {
	return State{Index: NoSelection, Axis: joint.AxisU}
}

// Mode derives the state machine state.
func (s State) Mode() Mode {
	switch {
	case s.Multi:
		return ModeMulti
	case s.Index != NoSelection:
		return ModeSingle
	default:
		return ModeNone
	}
}

// Clone returns a copy that shares no memory with s.
func (s State) Clone() State {
	s.Set = slices.Clone(s.Set)
	return s
}

// Active returns the indices that receive rotation and color operations.
func (s State) Active() []int {
	if s.Multi {
		return s.Set
	}
	if s.Index != NoSelection {
		return []int{s.Index}
	}
	return nil
}
