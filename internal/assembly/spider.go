package assembly

import (
	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// SpiderPart indexes the top-level parts of a Spider.
type SpiderPart int

const (
	SpiderHead SpiderPart = iota
	SpiderBody
	SpiderTail
	spiderPartCount
)

func (p SpiderPart) String() string {
	switch p {
	case SpiderHead:
		return "head"
	case SpiderBody:
		return "body"
	case SpiderTail:
		return "tail"
	}
	return "unknown"
}

// Spider is the posable creature: head, body and scorpion tail.
type Spider struct {
	*scenegraph.Node
	head *Head
	body *Body
	tail *Tail
}

// NewSpider builds a spider at position.
func NewSpider(position math.Vec3) *Spider {
	const bodyLen = 1
	s := &Spider{
		Node: scenegraph.New("spider", position),
		head: NewHead(SpiderHead.String(), v3(0, 0, bodyLen)),
		body: NewBody(SpiderBody.String(), v3(0, 0, 0)),
		tail: NewTail(SpiderTail.String(), v3(0, 0, -bodyLen)),
	}

	s.body.SetRange(joint.Range{Min: -10, Max: 10}, joint.AxisU)
	s.body.SetRange(joint.Range{Min: -15, Max: 15}, joint.AxisV)
	s.body.SetRange(joint.Range{Min: -10, Max: 10}, joint.AxisW)

	s.tail.SetRange(joint.Range{Min: -30, Max: 30}, joint.AxisU)
	s.tail.SetRange(joint.Range{Min: 150, Max: 230}, joint.AxisV)
	s.tail.SetRange(joint.Range{Min: -5, Max: 5}, joint.AxisW)
	s.tail.SetDefaultAngle(180, joint.AxisV)

	s.AddChild(s.head)
	s.AddChild(s.body)
	s.AddChild(s.tail)
	return s
}

// Head returns the head.
func (s *Spider) Head() *Head { return s.head }

// Body returns the body.
func (s *Spider) Body() *Body { return s.body }

// Tail returns the tail.
func (s *Spider) Tail() *Tail { return s.tail }

// Part returns a top-level part as a component.
func (s *Spider) Part(p SpiderPart) scenegraph.Component {
	switch p {
	case SpiderHead:
		return s.head
	case SpiderBody:
		return s.body
	case SpiderTail:
		return s.tail
	}
	panic("assembly: spider part out of range")
}

// Components implements Model.
func (s *Spider) Components() []scenegraph.Component {
	return components(s)
}
