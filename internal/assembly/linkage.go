package assembly

import (
	"fmt"

	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/internal/shape"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// LinkageLinks is the number of cubes in the demo linkage.
const LinkageLinks = 4

// Linkage is a straight chain of four cubes.
type Linkage struct {
	*scenegraph.Node
	links [LinkageLinks]*scenegraph.Node
}

var linkageColors = [LinkageLinks]palette.Color{
	palette.DarkOrange1, palette.DarkOrange2, palette.DarkOrange3, palette.DarkOrange4,
}

// NewLinkage builds the linkage at position.
func NewLinkage(position math.Vec3) *Linkage {
	const linkLen = 0.5
	l := &Linkage{Node: scenegraph.New("linkage", position)}
	parent := l.Node
	for i := range l.links {
		offset := v3(0, 0, linkLen)
		if i == 0 {
			offset = v3(0, 0, 0)
		}
		l.links[i] = shapeNode(fmt.Sprintf("linkage.link%d", i+1), shape.Cube, offset, v3(0.2, 0.2, linkLen), linkageColors[i])
		parent.AddChild(l.links[i])
		parent = l.links[i]
	}
	return l
}

// Link returns link i (0-based).
func (l *Linkage) Link(i int) *scenegraph.Node { return l.links[i] }

// Components implements Model.
func (l *Linkage) Components() []scenegraph.Component {
	return components(l)
}

// Axes is a gizmo of three unit cylinders along +x, +y and +z.
type Axes struct {
	*scenegraph.Node
}

// NewAxes builds the gizmo at position.
func NewAxes(position math.Vec3) *Axes {
	a := &Axes{Node: scenegraph.New("axes", position)}
	size := v3(0.02, 0.02, 1)

	x := shapeNode("axes.x", shape.Cylinder, v3(0, 0, 0), size, palette.Red)
	x.SetDefaultAngle(90, joint.AxisV)
	y := shapeNode("axes.y", shape.Cylinder, v3(0, 0, 0), size, palette.Green)
	y.SetDefaultAngle(-90, joint.AxisU)
	z := shapeNode("axes.z", shape.Cylinder, v3(0, 0, 0), size, palette.Blue)

	a.AddChild(x)
	a.AddChild(y)
	a.AddChild(z)
	return a
}
