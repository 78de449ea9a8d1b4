package assembly

import (
	"fmt"

	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/internal/shape"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// LegPart indexes the links of a leg.
type LegPart int

const (
	LegLink1 LegPart = iota
	LegLink2
	LegLink3
	legPartCount
)

var legDefaults = [legPartCount]float32{-50, 100, -40}

// Legs is a three-link cylinder leg.
type Legs struct {
	*scenegraph.Node
	parts [legPartCount]*scenegraph.Node
}

// NewLegs builds a leg whose hip sits at offset.
func NewLegs(name string, offset math.Vec3) *Legs {
	const linkLen = 0.5
	l := &Legs{Node: scenegraph.New(name, offset)}
	l.parts[LegLink1] = shapeNode(name+".link1", shape.Cylinder, v3(0, 0, 0), v3(0.1, 0.1, linkLen), palette.Navy)
	l.parts[LegLink2] = shapeNode(name+".link2", shape.Cylinder, v3(0, 0, 3*linkLen-0.01), v3(0.1, 0.1, 2*linkLen), palette.Black)
	l.parts[LegLink3] = shapeNode(name+".link3", shape.Cylinder, v3(0, 0, 2.5*linkLen-0.01), v3(0.1, 0.1, 0.5*linkLen), palette.Navy)

	l.AddChild(l.parts[LegLink1])
	l.parts[LegLink1].AddChild(l.parts[LegLink2])
	l.parts[LegLink2].AddChild(l.parts[LegLink3])
	l.authorDefaults()
	return l
}

func (l *Legs) authorDefaults() {
	for i, p := range l.parts {
		p.SetDefaultAngle(legDefaults[i], joint.AxisU)
	}
}

// Part returns one link.
func (l *Legs) Part(p LegPart) *scenegraph.Node { return l.parts[p] }

// Reset re-authors the link defaults on a full reset, then resets the subtree.
func (l *Legs) Reset(mode scenegraph.ResetMode) {
	if mode == scenegraph.ResetAll {
		l.authorDefaults()
	}
	l.Node.Reset(mode)
}

// LegsPerSide is the number of legs on each side of the body.
const LegsPerSide = 3

// legZ places the legs front to back along the body.
var legZ = [LegsPerSide]float32{-0.5, 0, 0.5}

// legSpread is the v angle of each leg relative to straight sideways.
var legSpread = [LegsPerSide]float32{20, 0, -20}

// LegAngle returns the mirrored v angle of a leg spread by spread degrees.
func LegAngle(side Side, spread float32) float32 {
	return side.Sign() * (90 + spread)
}

// Body is the central ellipsoid with three legs on each side.
type Body struct {
	*scenegraph.Node
	sphere *scenegraph.Node
	legs   [2][LegsPerSide]*Legs
}

// NewBody builds a body at offset.
func NewBody(name string, offset math.Vec3) *Body {
	const halfWidth = 0.7
	b := &Body{
		Node:   scenegraph.New(name, offset),
		sphere: shapeNode(name+".sphere", shape.Sphere, v3(0, 0, 0), v3(halfWidth, halfWidth, 1), palette.Black),
	}
	b.AddChild(b.sphere)
	for _, side := range []Side{Left, Right} {
		for i := 0; i < LegsPerSide; i++ {
			leg := NewLegs(fmt.Sprintf("%s.%sLeg%d", name, side, i+1), v3(side.Sign()*halfWidth, 0, legZ[i]))
			b.legs[side][i] = leg
			b.AddChild(leg)
		}
	}
	b.authorDefaults()
	return b
}

func (b *Body) authorDefaults() {
	for _, side := range []Side{Left, Right} {
		for i, leg := range b.legs[side] {
			leg.SetDefaultAngle(LegAngle(side, legSpread[i]), joint.AxisV)
		}
	}
}

// Sphere returns the body ellipsoid.
func (b *Body) Sphere() *scenegraph.Node { return b.sphere }

// Leg returns leg i (0-based, front to back) of one side.
func (b *Body) Leg(side Side, i int) *Legs { return b.legs[side][i] }

// AllLegs returns the left legs followed by the right legs.
func (b *Body) AllLegs() []*Legs {
	out := make([]*Legs, 0, 2*LegsPerSide)
	out = append(out, b.legs[Left][:]...)
	return append(out, b.legs[Right][:]...)
}

// Reset re-authors the leg spread on a full reset, then resets the subtree.
func (b *Body) Reset(mode scenegraph.ResetMode) {
	if mode == scenegraph.ResetAll {
		b.authorDefaults()
	}
	b.Node.Reset(mode)
}

// SetCurrentColor recolors the body ellipsoid only.
func (b *Body) SetCurrentColor(c palette.Color) {
	b.sphere.SetCurrentColor(c)
}

// ResetColor restores the body ellipsoid color.
func (b *Body) ResetColor() {
	b.sphere.ResetColor()
}
