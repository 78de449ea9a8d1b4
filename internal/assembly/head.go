package assembly

import (
	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/internal/shape"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// EyePart indexes the parts of an Eye.
type EyePart int

const (
	EyeBall EyePart = iota
	EyePupil
	eyePartCount
)

// Eye is an eyeball with a pupil that can slide across its front.
type Eye struct {
	*scenegraph.Node
	parts [eyePartCount]*scenegraph.Node
}

// NewEye builds the eye of one side.
func NewEye(name string, side Side) *Eye {
	e := &Eye{Node: scenegraph.New(name, v3(side.Sign()*0.3, 0.1, 0.45))}
	e.parts[EyeBall] = shapeNode(name+".ball", shape.Sphere, v3(0, 0, 0), v3(0.1, 0.1, 0.1), palette.Navy)
	e.parts[EyePupil] = shapeNode(name+".pupil", shape.Sphere, v3(0, 0, 0.09), v3(0.02, 0.02, 0.02), palette.White)
	e.AddChild(e.parts[EyeBall])
	e.parts[EyeBall].AddChild(e.parts[EyePupil])
	return e
}

// Part returns one eye part.
func (e *Eye) Part(p EyePart) *scenegraph.Node { return e.parts[p] }

// Pupil returns the pupil node.
func (e *Eye) Pupil() *scenegraph.Node { return e.parts[EyePupil] }

// Tooth is a single cone fang.
type Tooth struct {
	*scenegraph.Node
	cone *scenegraph.Node
}

// NewTooth builds the tooth of one side.
// The cone repeats the tooth offset inside the tooth frame.
func NewTooth(name string, side Side) *Tooth {
	offset := v3(side.Sign()*0.1, -0.1, 0.3)
	t := &Tooth{
		Node: scenegraph.New(name, offset),
		cone: shapeNode(name+".cone", shape.Cone, offset, v3(0.05, 0.05, 0.25), palette.Yellow),
	}
	t.AddChild(t.cone)
	return t
}

// Cone returns the drawable fang.
func (t *Tooth) Cone() *scenegraph.Node { return t.cone }

// closedAngle is the v angle of a tooth with the mouth closed.
func closedAngle(side Side) float32 { return -side.Sign() * 20 }

// HeadPart indexes the parts of a Head.
type HeadPart int

const (
	HeadSphere HeadPart = iota
	HeadLeftEye
	HeadRightEye
	HeadLeftTooth
	HeadRightTooth
	headPartCount
)

// Head is an ellipsoid carrying two eyes and two teeth.
type Head struct {
	*scenegraph.Node
	sphere *scenegraph.Node
	eyes   [2]*Eye
	teeth  [2]*Tooth
}

// NewHead builds a head at offset.
func NewHead(name string, offset math.Vec3) *Head {
	h := &Head{
		Node:   scenegraph.New(name, offset),
		sphere: shapeNode(name+".sphere", shape.Sphere, v3(0, 0, 0), v3(1, 0.5, 0.5), palette.Black),
	}
	h.AddChild(h.sphere)
	for _, side := range []Side{Left, Right} {
		h.eyes[side] = NewEye(name+"."+side.String()+"Eye", side)
		h.sphere.AddChild(h.eyes[side])
	}
	for _, side := range []Side{Left, Right} {
		h.teeth[side] = NewTooth(name+"."+side.String()+"Tooth", side)
		h.sphere.AddChild(h.teeth[side])
	}
	h.authorDefaults()
	return h
}

func (h *Head) authorDefaults() {
	for _, side := range []Side{Left, Right} {
		h.teeth[side].SetDefaultAngle(closedAngle(side), joint.AxisV)
	}
}

// Part returns a head part as a component.
func (h *Head) Part(p HeadPart) scenegraph.Component {
	switch p {
	case HeadSphere:
		return h.sphere
	case HeadLeftEye:
		return h.eyes[Left]
	case HeadRightEye:
		return h.eyes[Right]
	case HeadLeftTooth:
		return h.teeth[Left]
	case HeadRightTooth:
		return h.teeth[Right]
	}
	panic("assembly: head part out of range")
}

// Sphere returns the head ellipsoid.
func (h *Head) Sphere() *scenegraph.Node { return h.sphere }

// Eye returns the eye of one side.
func (h *Head) Eye(s Side) *Eye { return h.eyes[s] }

// Tooth returns the tooth of one side.
func (h *Head) Tooth(s Side) *Tooth { return h.teeth[s] }

// Reset re-authors the tooth defaults on a full reset, then resets the subtree.
func (h *Head) Reset(mode scenegraph.ResetMode) {
	if mode == scenegraph.ResetAll {
		h.authorDefaults()
	}
	h.Node.Reset(mode)
}

// SetCurrentColor recolors the head sphere and what it carries.
func (h *Head) SetCurrentColor(c palette.Color) {
	h.sphere.SetCurrentColor(c)
}

// ResetColor restores the head sphere subtree.
func (h *Head) ResetColor() {
	h.sphere.ResetColor()
}
