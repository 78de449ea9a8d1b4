// Package assembly builds the creature hierarchies out of scene nodes.
//
// Every composite keeps its sub-parts in a fixed array indexed by a
// per-composite enum, so presets reach nodes without string lookups.
// Mirrored parts come from one template that takes a Side.
package assembly

import (
	"fmt"

	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/internal/shape"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// Model names accepted by Build.
const (
	ModelSpider  = "spider"
	ModelLinkage = "linkage"
)

// Models lists the buildable model names.
var Models = []string{ModelSpider, ModelLinkage}

// Model is a posable creature.
type Model interface {
	scenegraph.Component
	// Components returns the selectable nodes in pre-order, the model
	// itself excluded.
	Components() []scenegraph.Component
}

// Side selects one half of a mirrored pair.
type Side int

const (
	Left Side = iota
	Right
)

// Sign is +1 for the left side and -1 for the right side.
func (s Side) Sign() float32 {
	if s == Right {
		return -1
	}
	return 1
}

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Build creates the named model at the origin.
func Build(name string) (Model, error) {
	switch name {
	case ModelSpider:
		return NewSpider(math.Vec3{}), nil
	case ModelLinkage:
		return NewLinkage(math.Vec3{}), nil
	}
	return nil, fmt.Errorf("unknown model %q", name)
}

// Scene is the drawable root: the model plus an optional axes gizmo.
type Scene struct {
	Root  *scenegraph.Node
	Model Model
	Axes  *Axes
}

// NewScene puts model under a fresh root.
func NewScene(model Model, withAxes bool) *Scene {
	s := &Scene{Root: scenegraph.New("scene", math.Vec3{}), Model: model}
	s.Root.AddChild(model)
	if withAxes {
		s.Axes = NewAxes(v3(-1, -1, -1))
		s.Root.AddChild(s.Axes)
	}
	return s
}

func v3(x, y, z float32) math.Vec3 {
	return math.Vec3{X: x, Y: y, Z: z}
}

func shapeNode(name string, kind shape.Kind, offset, size math.Vec3, color palette.Color) *scenegraph.Node {
	return scenegraph.NewShape(name, offset, shape.New(kind, size), color)
}

func components(m scenegraph.Component) []scenegraph.Component {
	return scenegraph.Descendants(m)
}
