// Package shape provides the drawable primitive leaves of the creature.
//
// Unit meshes span [-1, 1] on every axis. A shape is scaled from its size
// and shifted along +z so that its smallest local z lies on the node
// origin, which makes chained nodes rotate at the joint. Cube sizes are
// full extents, sphere sizes are radii, cone and cylinder sizes are
// radius, radius, length.
package shape

import (
	"fmt"

	"github.com/Faultbox/creature-poser/internal/engine/picking"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// Kind identifies a primitive mesh.
type Kind int

const (
	Cube Kind = iota
	Sphere
	Cone
	Cylinder
)

// KindCount is the number of primitive kinds.
const KindCount = 4

func (k Kind) String() string {
	switch k {
	case Cube:
		return "cube"
	case Sphere:
		return "sphere"
	case Cone:
		return "cone"
	case Cylinder:
		return "cylinder"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// UniformModel is the uniform name the model matrix is uploaded to.
const UniformModel = "modelMat"

// Program is a shader that can also draw primitives.
// Shapes drawn into a plain scenegraph.Shader only upload their matrix.
type Program interface {
	scenegraph.Shader
	SetColor(c palette.Color)
	DrawPrimitive(k Kind)
}

// Shape is a primitive leaf attached to a scene node.
type Shape struct {
	kind  Kind
	size  math.Vec3
	color palette.Color
	model math.Mat4
}

// New creates a shape of the given kind and size.
func New(kind Kind, size math.Vec3) *Shape {
	if kind < Cube || kind > Cylinder {
		panic(fmt.Sprintf("shape: unknown kind %d", int(kind)))
	}
	return &Shape{kind: kind, size: size, model: math.Identity()}
}

// Kind returns the primitive kind.
func (s *Shape) Kind() Kind { return s.kind }

// Size returns the authored size.
func (s *Shape) Size() math.Vec3 { return s.size }

// Color returns the color the shape is drawn with.
func (s *Shape) Color() palette.Color { return s.color }

// Model returns the model matrix computed by the last Update.
func (s *Shape) Model() math.Mat4 { return s.model }

// Scale returns the factors applied to the unit mesh.
func (s *Shape) Scale() math.Vec3 {
	switch s.kind {
	case Cube:
		return s.size.Scale(0.5)
	case Sphere:
		return s.size
	default:
		return math.Vec3{X: s.size.X, Y: s.size.Y, Z: s.size.Z / 2}
	}
}

// Length returns the extent of the shape along its local z axis.
func (s *Shape) Length() float32 {
	return 2 * s.Scale().Z
}

// Update implements scenegraph.Geometry.
func (s *Shape) Update(world math.Mat4) {
	sc := s.Scale()
	s.model = world.
		Mul(math.Translate(0, 0, sc.Z)).
		Mul(math.Scale(sc.X, sc.Y, sc.Z))
}

// SetColor implements scenegraph.Geometry.
func (s *Shape) SetColor(c palette.Color) {
	s.color = c
}

// Draw implements scenegraph.Geometry.
func (s *Shape) Draw(sh scenegraph.Shader) {
	sh.SetMat4(UniformModel, s.model)
	if p, ok := sh.(Program); ok {
		p.SetColor(s.color)
		p.DrawPrimitive(s.kind)
	}
}

// UnitBounds is the bounding box of every unit mesh.
var UnitBounds = picking.NewAABB(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})

// Intersect tests a world-space ray against the shape's oriented bounding
// box and returns the world distance to the hit.
func (s *Shape) Intersect(ray picking.Ray) (float32, bool) {
	local := ray.Transform(s.model.Inverse())
	t, hit := local.IntersectAABB(UnitBounds)
	if !hit {
		return 0, false
	}
	// local direction is unnormalized, so t is also the world parameter
	return t, true
}
