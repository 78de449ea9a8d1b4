// Package scenegraph implements the articulated transform hierarchy.
//
// A Node owns a local offset, a three-axis joint rotation, an ordered list
// of owned children and an optional geometry leaf. World transforms are
// derived state: Update recomputes them top-down from the root as
//
//	world = parentWorld * Translate(offset) * RotU(u) * RotV(v) * RotW(w)
//
// where u, v, w rotate about the node's local x, y and z axes.
package scenegraph

import (
	"fmt"

	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// ResetMode selects what Reset restores.
type ResetMode int

const (
	// ResetAll restores angles, offsets and colors.
	ResetAll ResetMode = iota
	// ResetColor restores colors only.
	ResetColor
)

// String returns the mode name used on the command line.
func (m ResetMode) String() string {
	switch m {
	case ResetAll:
		return "all"
	case ResetColor:
		return "color"
	default:
		return fmt.Sprintf("ResetMode(%d)", int(m))
	}
}

// ParseResetMode converts "all" or "color" to a ResetMode.
func ParseResetMode(s string) (ResetMode, error) {
	switch s {
	case "all":
		return ResetAll, nil
	case "color":
		return ResetColor, nil
	}
	return 0, fmt.Errorf("unknown reset mode %q", s)
}

// Shader is the sink for matrices produced by the draw pass.
type Shader interface {
	SetMat4(name string, m math.Mat4)
}

// Geometry is a drawable leaf attached to a node.
type Geometry interface {
	Update(world math.Mat4)
	Draw(sh Shader)
	SetColor(c palette.Color)
}

// Component is anything that can be placed in the hierarchy.
// *Node implements it directly; composite parts embed *Node and override
// Reset, SetCurrentColor or ResetColor, calling the embedded Node for the
// generic behavior.
type Component interface {
	Base() *Node
	Reset(mode ResetMode)
	SetCurrentColor(c palette.Color)
	ResetColor()
}

// Node is a transform in the articulated hierarchy.
type Node struct {
	name string

	defaultOffset math.Vec3
	offset        math.Vec3
	rotation      joint.Rotation

	children []Component
	parent   *Node // lookup only, never used for lifetime

	geometry  Geometry
	restColor palette.Color
	color     palette.Color

	world       math.Mat4
	parentWorld math.Mat4
	dirty       bool
	valid       bool
	disposed    bool
}

// New creates a node without geometry.
func New(name string, offset math.Vec3) *Node {
	return &Node{
		name:          name,
		defaultOffset: offset,
		offset:        offset,
		rotation:      joint.NewRotation(),
		world:         math.Identity(),
		dirty:         true,
	}
}

// NewShape creates a node that wraps a geometry leaf with a resting color.
func NewShape(name string, offset math.Vec3, geom Geometry, color palette.Color) *Node {
	n := New(name, offset)
	n.geometry = geom
	n.restColor = color
	n.color = color
	if geom != nil {
		geom.SetColor(color)
	}
	return n
}

// Base returns n itself.
func (n *Node) Base() *Node { return n }

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Parent returns the logical parent, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the owned children in order.
func (n *Node) Children() []Component { return n.children }

// Geometry returns the attached leaf, or nil.
func (n *Node) Geometry() Geometry { return n.geometry }

// AddChild appends child and sets its parent link.
// Panics on nil, disposed, already-parented or cyclic children.
func (n *Node) AddChild(child Component) {
	if child == nil || child.Base() == nil {
		panic("scenegraph: cannot add nil child")
	}
	c := child.Base()
	if n.disposed || c.disposed {
		panic("scenegraph: cannot add child to or from a disposed node")
	}
	if c.parent != nil {
		panic(fmt.Sprintf("scenegraph: %q already has parent %q", c.name, c.parent.name))
	}
	if c == n || isAncestor(c, n) {
		panic("scenegraph: adding child would create a cycle")
	}
	c.parent = n
	n.children = append(n.children, child)
	c.dirty = true
}

func isAncestor(candidate, node *Node) bool {
	for p := node.parent; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// Dispose destroys n and its whole subtree.
func (n *Node) Dispose() {
	for _, c := range n.children {
		c.Base().Dispose()
	}
	n.children = nil
	n.geometry = nil
	n.parent = nil
	n.disposed = true
}

// IsDisposed reports whether Dispose was called.
func (n *Node) IsDisposed() bool { return n.disposed }

// --- Rotation ---

// Rotate adds delta degrees on axis, clamped to the axis range.
func (n *Node) Rotate(delta float32, axis joint.Axis) {
	n.rotation.Axis(axis).Rotate(delta)
	n.dirty = true
}

// SetCurrentAngle sets the current angle on axis, clamped.
func (n *Node) SetCurrentAngle(angle float32, axis joint.Axis) {
	n.rotation.Axis(axis).SetCurrent(angle)
	n.dirty = true
}

// SetDefaultAngle sets the default angle on axis and moves the current
// angle to it.
func (n *Node) SetDefaultAngle(angle float32, axis joint.Axis) {
	n.rotation.Axis(axis).SetDefault(angle)
	n.dirty = true
}

// SetRange sets the valid range of axis and re-clamps its angles.
func (n *Node) SetRange(r joint.Range, axis joint.Axis) {
	n.rotation.Axis(axis).SetRange(r)
	n.dirty = true
}

// Joint returns a copy of the joint state on axis.
func (n *Node) Joint(axis joint.Axis) joint.Joint {
	return *n.rotation.Axis(axis)
}

// Angle returns the current angle on axis.
func (n *Node) Angle(axis joint.Axis) float32 {
	return n.rotation.Axis(axis).Current
}

// Angles returns the current u, v, w angles.
func (n *Node) Angles() [joint.AxisCount]float32 {
	return n.rotation.Current()
}

// --- Offset ---

// Offset returns the current local offset.
func (n *Node) Offset() math.Vec3 { return n.offset }

// DefaultOffset returns the authored local offset.
func (n *Node) DefaultOffset() math.Vec3 { return n.defaultOffset }

// SetCurrentOffset moves the node without changing its authored offset.
func (n *Node) SetCurrentOffset(v math.Vec3) {
	n.offset = v
	n.dirty = true
}

// ResetOffset restores the authored offset.
func (n *Node) ResetOffset() {
	n.offset = n.defaultOffset
	n.dirty = true
}

// --- Reset and color ---

// Reset restores n and, recursively, every child. Children are reset
// through the Component interface so composite overrides run.
func (n *Node) Reset(mode ResetMode) {
	switch mode {
	case ResetAll:
		n.rotation.Reset()
		n.offset = n.defaultOffset
		n.dirty = true
		n.applyColor(n.restColor)
	case ResetColor:
		n.applyColor(n.restColor)
	default:
		panic(fmt.Sprintf("scenegraph: invalid reset mode %d", int(mode)))
	}
	for _, c := range n.children {
		c.Reset(mode)
	}
}

// SetCurrentColor overrides the color of n and its subtree.
func (n *Node) SetCurrentColor(c palette.Color) {
	n.applyColor(c)
	for _, child := range n.children {
		child.SetCurrentColor(c)
	}
}

// ResetColor restores the resting color of n and its subtree.
func (n *Node) ResetColor() {
	n.applyColor(n.restColor)
	for _, child := range n.children {
		child.ResetColor()
	}
}

func (n *Node) applyColor(c palette.Color) {
	n.color = c
	if n.geometry != nil {
		n.geometry.SetColor(c)
	}
}

// Color returns the current display color.
func (n *Node) Color() palette.Color { return n.color }

// RestColor returns the resting color restored by ResetColor.
func (n *Node) RestColor() palette.Color { return n.restColor }

// --- Transforms ---

// Local returns Translate(offset) * RotU * RotV * RotW.
func (n *Node) Local() math.Mat4 {
	a := n.rotation.Current()
	return math.TranslateVec(n.offset).
		Mul(math.RotateX(math.Radians(a[joint.AxisU]))).
		Mul(math.RotateY(math.Radians(a[joint.AxisV]))).
		Mul(math.RotateZ(math.Radians(a[joint.AxisW])))
}

// World returns the world transform computed by the last Update.
func (n *Node) World() math.Mat4 { return n.world }

// WorldPosition returns the world-space origin of n.
func (n *Node) WorldPosition() math.Vec3 { return n.world.Column(3) }

// AxisDirection returns the world-space direction of a local rotation axis,
// taken from the current orientation.
func (n *Node) AxisDirection(axis joint.Axis) math.Vec3 {
	if !axis.Valid() {
		panic(fmt.Sprintf("scenegraph: axis %d out of range", int(axis)))
	}
	return n.world.Column(int(axis)).Normalize()
}

// Update recomputes world transforms for n and its subtree.
// A node is recomputed when it changed, when its parent transform changed,
// or when an ancestor was recomputed this pass.
func (n *Node) Update(parentWorld math.Mat4) {
	n.update(parentWorld, false)
}

func (n *Node) update(parentWorld math.Mat4, parentRecomputed bool) {
	recompute := parentRecomputed || n.dirty || !n.valid || parentWorld != n.parentWorld
	if recompute {
		n.parentWorld = parentWorld
		n.world = parentWorld.Mul(n.Local())
		n.dirty = false
		n.valid = true
		if n.geometry != nil {
			n.geometry.Update(n.world)
		}
	}
	for _, c := range n.children {
		c.Base().update(n.world, recompute)
	}
}

// Draw hands every geometry leaf in the subtree to sh.
// Drawing a node whose transform is stale panics.
func (n *Node) Draw(sh Shader) {
	if n.dirty || !n.valid {
		panic(fmt.Sprintf("scenegraph: draw of %q before update", n.name))
	}
	if n.geometry != nil {
		n.geometry.Draw(sh)
	}
	for _, c := range n.children {
		c.Base().Draw(sh)
	}
}

// --- Traversal ---

// Walk visits n and its subtree in pre-order. Returning false from fn
// skips the children of that component.
func Walk(c Component, fn func(c Component, depth int) bool) {
	walk(c, 0, fn)
}

func walk(c Component, depth int, fn func(Component, int) bool) {
	if !fn(c, depth) {
		return
	}
	for _, child := range c.Base().children {
		walk(child, depth+1, fn)
	}
}

// Descendants returns every component below c in pre-order, c excluded.
func Descendants(c Component) []Component {
	var out []Component
	Walk(c, func(x Component, depth int) bool {
		if depth > 0 {
			out = append(out, x)
		}
		return true
	})
	return out
}
