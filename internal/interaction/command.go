package interaction

import (
	"fmt"
	"strings"

	"github.com/Faultbox/creature-poser/internal/pose"
)

// Op is an interaction operation.
type Op int

const (
	OpNone Op = iota
	OpNextSelection
	OpAxisNext
	OpAxisPrev
	OpRotate
	OpExitSelection
	OpResetCamera
	OpResetAll
	OpEnterMulti
	OpExitMulti
	OpSelectIndex
	OpPose
	OpOrbit
	OpPan
	OpPointerMove
	OpPick
	OpFocus
)

var opNames = map[Op]string{
	OpNone:          "none",
	OpNextSelection: "next",
	OpAxisNext:      "axis-next",
	OpAxisPrev:      "axis-prev",
	OpRotate:        "rotate",
	OpExitSelection: "exit",
	OpResetCamera:   "reset-camera",
	OpResetAll:      "reset-all",
	OpEnterMulti:    "multi-on",
	OpExitMulti:     "multi-off",
	OpSelectIndex:   "select",
	OpPose:          "pose",
	OpOrbit:         "orbit",
	OpPan:           "pan",
	OpPointerMove:   "pointer",
	OpPick:          "pick",
	OpFocus:         "focus",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// ParseOp converts an operation name back to an Op.
func ParseOp(s string) (Op, error) {
	for op, name := range opNames {
		if name == s {
			return op, nil
		}
	}
	return OpNone, fmt.Errorf("unknown operation %q", s)
}

// MarshalText encodes the operation by name.
func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an operation name.
func (o *Op) UnmarshalText(b []byte) error {
	op, err := ParseOp(string(b))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Command is one input to the controller. Only the fields of its Op are
// read: Delta for rotate (sign only), Index for select and focus, Pose for pose,
// X/Y for pointer positions and DX/DY for pointer motion.
type Command struct {
	Op    Op      `json:"op"`
	Delta float32 `json:"delta,omitempty"`
	Index int     `json:"index,omitempty"`
	Pose  string  `json:"pose,omitempty"`
	X     float32 `json:"x,omitempty"`
	Y     float32 `json:"y,omitempty"`
	DX    float32 `json:"dx,omitempty"`
	DY    float32 `json:"dy,omitempty"`
}

func (c Command) String() string {
	switch c.Op {
	case OpRotate:
		return fmt.Sprintf("%s %+g", c.Op, c.Delta)
	case OpSelectIndex, OpFocus:
		return fmt.Sprintf("%s %d", c.Op, c.Index)
	case OpPose:
		return fmt.Sprintf("%s %s", c.Op, c.Pose)
	case OpOrbit, OpPan:
		return fmt.Sprintf("%s (%g,%g)+(%g,%g)", c.Op, c.X, c.Y, c.DX, c.DY)
	case OpPointerMove, OpPick:
		return fmt.Sprintf("%s (%g,%g)", c.Op, c.X, c.Y)
	}
	return c.Op.String()
}

// KeyCode names the non-character keys the controller reacts to.
type KeyCode int

const (
	KeyChar KeyCode = iota // Key carries a printable rune
	KeyEnter
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Key is a host-independent key press.
type Key struct {
	Code KeyCode
	Char rune
}

// CharKey returns the key for a printable character.
func CharKey(r rune) Key { return Key{Code: KeyChar, Char: r} }

var keyNames = map[string]KeyCode{
	"enter":  KeyEnter,
	"return": KeyEnter,
	"esc":    KeyEscape,
	"escape": KeyEscape,
	"left":   KeyLeft,
	"right":  KeyRight,
	"up":     KeyUp,
	"down":   KeyDown,
}

// ParseKey reads a key name ("enter", "left", ...) or a single character.
func ParseKey(s string) (Key, error) {
	if code, ok := keyNames[strings.ToLower(s)]; ok {
		return Key{Code: code}, nil
	}
	r := []rune(s)
	if len(r) == 1 {
		return CharKey(r[0]), nil
	}
	return Key{}, fmt.Errorf("unknown key %q", s)
}

// KeyCommand maps a key press to its command.
func KeyCommand(k Key) (Command, bool) {
	switch k.Code {
	case KeyEnter:
		return Command{Op: OpNextSelection}, true
	case KeyEscape:
		return Command{Op: OpExitSelection}, true
	case KeyLeft:
		return Command{Op: OpAxisPrev}, true
	case KeyRight:
		return Command{Op: OpAxisNext}, true
	case KeyUp:
		return Command{Op: OpRotate, Delta: 1}, true
	case KeyDown:
		return Command{Op: OpRotate, Delta: -1}, true
	}

	switch r := k.Char; {
	case r == 'r':
		return Command{Op: OpResetCamera}, true
	case r == 'R':
		return Command{Op: OpResetAll}, true
	case r == 'm':
		return Command{Op: OpEnterMulti}, true
	case r == 'M':
		return Command{Op: OpExitMulti}, true
	case r >= '0' && r <= '9':
		return Command{Op: OpSelectIndex, Index: int(r - '0')}, true
	}
	if p, ok := pose.ByKey(k.Char); ok {
		return Command{Op: OpPose, Pose: p.Name}, true
	}
	return Command{}, false
}
