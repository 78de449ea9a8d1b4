package assembly

import (
	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/internal/shape"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// TailPart indexes the segments of a Tail.
type TailPart int

const (
	TailLink1 TailPart = iota
	TailLink2
	TailLink3
	TailLink4
	TailNeedle
	tailPartCount
)

var tailDefaults = [tailPartCount]float32{-20, -60, -70, -30, -20}

// Tail is four chained spheres ending in a needle.
type Tail struct {
	*scenegraph.Node
	parts [tailPartCount]*scenegraph.Node
}

// NewTail builds a tail whose first link sits at offset.
func NewTail(name string, offset math.Vec3) *Tail {
	const linkLen = 0.5
	size := v3(0.2, 0.2, linkLen)
	step := v3(0, 0, 2*linkLen-0.1)

	t := &Tail{Node: scenegraph.New(name, offset)}
	t.parts[TailLink1] = shapeNode(name+".link1", shape.Sphere, v3(0, 0, 0), size, palette.Yellow)
	t.parts[TailLink2] = shapeNode(name+".link2", shape.Sphere, step, size, palette.Black)
	t.parts[TailLink3] = shapeNode(name+".link3", shape.Sphere, step, size, palette.Yellow)
	t.parts[TailLink4] = shapeNode(name+".link4", shape.Sphere, step, size, palette.Black)
	t.parts[TailNeedle] = shapeNode(name+".needle", shape.Cone, v3(0, 0, 1.5*linkLen), v3(0.16, 0.16, linkLen), palette.Navy)

	t.AddChild(t.parts[TailLink1])
	for i := TailLink2; i < tailPartCount; i++ {
		t.parts[i-1].AddChild(t.parts[i])
	}
	t.authorDefaults()
	return t
}

func (t *Tail) authorDefaults() {
	for i, p := range t.parts {
		p.SetDefaultAngle(tailDefaults[i], joint.AxisU)
	}
}

// Part returns one segment.
func (t *Tail) Part(p TailPart) *scenegraph.Node { return t.parts[p] }

// Reset re-authors the link defaults on a full reset, then resets the subtree.
func (t *Tail) Reset(mode scenegraph.ResetMode) {
	if mode == scenegraph.ResetAll {
		t.authorDefaults()
	}
	t.Node.Reset(mode)
}

// SetCurrentColor recolors the chain from the first link down.
func (t *Tail) SetCurrentColor(c palette.Color) {
	t.parts[TailLink1].SetCurrentColor(c)
}

// ResetColor restores the chain colors.
func (t *Tail) ResetColor() {
	t.parts[TailLink1].ResetColor()
}
