// Package interaction implements the selection and manipulation protocol
// that turns host input into joint, color and camera changes.
//
// The Controller is not safe for concurrent use. Hosts feed it from the
// goroutine that runs the frame loop, before the update pass.
package interaction

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/creature-poser/internal/assembly"
	"github.com/Faultbox/creature-poser/internal/engine/camera"
	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/internal/logger"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/internal/pose"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/internal/shape"
)

var (
	// ErrUnknownPose is returned for a pose name with no preset.
	ErrUnknownPose = errors.New("unknown pose")
	// ErrNoPoses is returned when the model has no pose presets.
	ErrNoPoses = errors.New("model has no pose presets")
	// ErrUnknownOp is returned for commands the controller cannot run.
	ErrUnknownOp = errors.New("unknown operation")
)

// Settings tune the controller.
type Settings struct {
	RotateStep float32 // Degrees per rotate command
	Eyes       EyeSettings
}

// DefaultSettings returns the viewer defaults.
func DefaultSettings() Settings {
	return Settings{RotateStep: 2.5, Eyes: DefaultEyeSettings()}
}

// Controller owns the selection state of one session.
type Controller struct {
	model      assembly.Model
	components []scenegraph.Component
	byNode     map[*scenegraph.Node]int
	camera     *camera.OrbitCamera
	settings   Settings
	state      State
	log        *zap.Logger
}

// New creates a controller over model and cam with nothing selected.
func New(model assembly.Model, cam *camera.OrbitCamera, settings Settings) *Controller {
	c := &Controller{
		model:      model,
		components: model.Components(),
		byNode:     make(map[*scenegraph.Node]int),
		camera:     cam,
		settings:   settings,
		state:      NewState(),
		log:        logger.Named("interaction"),
	}
	for i, comp := range c.components {
		c.byNode[comp.Base()] = i
	}
	return c
}

// State returns a copy of the selection state.
func (c *Controller) State() State { return c.state.Clone() }

// Model returns the model being posed.
func (c *Controller) Model() assembly.Model { return c.model }

// Camera returns the camera.
func (c *Controller) Camera() *camera.OrbitCamera { return c.camera }

// Components returns the selectable enumeration.
func (c *Controller) Components() []scenegraph.Component { return c.components }

// Component returns the component at index i, or nil when out of range.
func (c *Controller) Component(i int) scenegraph.Component {
	if i < 0 || i >= len(c.components) {
		return nil
	}
	return c.components[i]
}

// HandleKey runs the command bound to k. Unbound keys are ignored.
func (c *Controller) HandleKey(k Key) error {
	cmd, ok := KeyCommand(k)
	if !ok {
		c.log.Debug("unbound key", zap.Int("code", int(k.Code)), zap.String("char", string(k.Char)))
		return nil
	}
	return c.Handle(cmd)
}

// Handle runs one command.
func (c *Controller) Handle(cmd Command) error {
	switch cmd.Op {
	case OpNextSelection:
		c.nextSelection()
	case OpAxisNext:
		c.cycleAxis(c.state.Axis.Next())
	case OpAxisPrev:
		c.cycleAxis(c.state.Axis.Prev())
	case OpRotate:
		c.rotate(cmd.Delta)
	case OpExitSelection:
		c.exitSelection()
	case OpResetCamera:
		c.camera.Reset()
		c.log.Info("reset camera")
	case OpResetAll:
		c.resetAll()
	case OpEnterMulti:
		c.enterMulti()
	case OpExitMulti:
		c.exitMulti()
	case OpSelectIndex:
		c.selectIndex(cmd.Index)
	case OpPose:
		return c.applyPose(cmd.Pose)
	case OpOrbit:
		c.camera.Drag(cmd.DX, cmd.DY)
	case OpPan:
		c.camera.Pan(cmd.X-cmd.DX, cmd.Y-cmd.DY, cmd.X, cmd.Y)
	case OpPointerMove:
		c.trackEyes(cmd.X, cmd.Y)
	case OpPick:
		c.pick(cmd.X, cmd.Y)
	case OpFocus:
		c.focus(cmd.Index)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOp, cmd.Op)
	}
	return nil
}

func (c *Controller) indicator() palette.Color {
	return palette.AxisColor(c.state.Axis)
}

func (c *Controller) nextSelection() {
	if c.state.Multi {
		c.log.Debug("next selection ignored in multi-select mode")
		return
	}
	if len(c.components) == 0 {
		return
	}
	c.state.Axis = joint.AxisU
	if c.state.Index != NoSelection {
		c.components[c.state.Index].Reset(scenegraph.ResetColor)
	}
	c.state.Index = (c.state.Index + 1) % len(c.components)
	c.components[c.state.Index].SetCurrentColor(c.indicator())
	c.log.Info("select",
		zap.Int("index", c.state.Index),
		zap.String("node", c.components[c.state.Index].Base().Name()))
}

func (c *Controller) cycleAxis(axis joint.Axis) {
	c.state.Axis = axis
	for _, i := range c.state.Active() {
		c.components[i].SetCurrentColor(c.indicator())
	}
	c.log.Debug("axis", zap.Stringer("axis", axis))
}

func (c *Controller) rotate(delta float32) {
	if delta == 0 {
		return
	}
	step := c.settings.RotateStep
	if delta < 0 {
		step = -step
	}
	active := c.state.Active()
	if len(active) == 0 {
		return
	}
	for _, i := range active {
		n := c.components[i].Base()
		n.Rotate(step, c.state.Axis)
		c.log.Debug("rotate",
			zap.String("node", n.Name()),
			zap.Stringer("axis", c.state.Axis),
			zap.Float32("angle", n.Angle(c.state.Axis)))
	}
}

func (c *Controller) exitSelection() {
	if c.state.Index == NoSelection {
		return
	}
	c.components[c.state.Index].Reset(scenegraph.ResetColor)
	c.log.Info("exit selection", zap.Int("index", c.state.Index))
	c.state.Index = NoSelection
	c.state.Axis = joint.AxisU
}

func (c *Controller) resetAll() {
	c.model.Reset(scenegraph.ResetAll)
	c.camera.Reset()
	c.state = NewState()
	c.log.Info("reset everything")
}

func (c *Controller) enterMulti() {
	if c.state.Multi {
		return
	}
	if c.state.Index != NoSelection {
		c.components[c.state.Index].Reset(scenegraph.ResetColor)
		c.state.Index = NoSelection
	}
	c.state.Multi = true
	c.state.Axis = joint.AxisU
	c.log.Info("enter multi-select", zap.Int("components", len(c.components)))
}

func (c *Controller) exitMulti() {
	if !c.state.Multi {
		return
	}
	for _, i := range c.state.Set {
		c.components[i].ResetColor()
	}
	c.state.Multi = false
	c.state.Set = nil
	c.log.Info("exit multi-select")
}

func (c *Controller) selectIndex(i int) {
	if !c.state.Multi {
		c.log.Debug("not in multi-select mode", zap.Int("index", i))
		return
	}
	if i < 0 || i >= len(c.components) {
		c.log.Warn("selection out of range", zap.Int("index", i), zap.Int("components", len(c.components)))
		return
	}
	if !slices.Contains(c.state.Set, i) {
		c.state.Set = append(c.state.Set, i)
	}
	for _, j := range c.state.Set {
		c.components[j].SetCurrentColor(c.indicator())
	}
	c.log.Info("multi-select add",
		zap.Int("index", i),
		zap.String("node", c.components[i].Base().Name()),
		zap.Ints("set", c.state.Set))
}

func (c *Controller) applyPose(name string) error {
	spider, ok := c.model.(*assembly.Spider)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoPoses, c.model.Base().Name())
	}
	p, ok := pose.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPose, name)
	}
	p.Apply(spider)
	return nil
}

// pick selects the component whose shape is hit first by the ray through
// (x, y). World transforms from the last update pass are used.
func (c *Controller) pick(x, y float32) {
	ray := c.camera.Ray(x, y)
	best := NoSelection
	var bestDist float32
	for i, comp := range c.components {
		s, ok := comp.Base().Geometry().(*shape.Shape)
		if !ok {
			continue
		}
		if d, hit := s.Intersect(ray); hit && (best == NoSelection || d < bestDist) {
			best, bestDist = i, d
		}
	}
	if best == NoSelection {
		c.log.Debug("pick missed", zap.Float32("x", x), zap.Float32("y", y))
		return
	}

	c.focus(best)
}

// focus selects component i the way a pick hit does: it replaces the single
// selection, or joins the set in multi-select mode.
func (c *Controller) focus(i int) {
	if c.state.Multi {
		c.selectIndex(i)
		return
	}
	if i < 0 || i >= len(c.components) {
		c.log.Warn("selection out of range", zap.Int("index", i), zap.Int("components", len(c.components)))
		return
	}
	if c.state.Index != NoSelection {
		c.components[c.state.Index].Reset(scenegraph.ResetColor)
	}
	c.state.Index = i
	c.state.Axis = joint.AxisU
	c.components[i].SetCurrentColor(c.indicator())
	c.log.Info("focus", zap.Int("index", i), zap.String("node", c.components[i].Base().Name()))
}

// IndexOf returns the enumeration index of n.
func (c *Controller) IndexOf(n *scenegraph.Node) (int, bool) {
	i, ok := c.byNode[n]
	return i, ok
}
