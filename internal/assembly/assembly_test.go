package assembly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/pkg/math"
)

func names(cs []scenegraph.Component) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Base().Name()
	}
	return out
}

func TestSpiderEnumeration(t *testing.T) {
	s := NewSpider(math.Vec3{})
	cs := s.Components()
	require.Len(t, cs, 44)

	got := names(cs)
	assert.Equal(t, "head", got[0])
	assert.Equal(t, "head.sphere", got[1])
	assert.Equal(t, "head.leftEye", got[2])
	assert.Equal(t, "head.leftEye.pupil", got[4])
	assert.Equal(t, "body", got[12])
	assert.Equal(t, "body.leftLeg1", got[14])
	assert.Equal(t, "tail", got[38])
	assert.Equal(t, "tail.needle", got[43])

	// composites are enumerated as themselves so their overrides apply
	_, ok := cs[0].(*Head)
	assert.True(t, ok)
	_, ok = cs[12].(*Body)
	assert.True(t, ok)
}

func TestSpiderAuthoredValues(t *testing.T) {
	s := NewSpider(math.Vec3{})

	tail := s.Tail()
	assert.Equal(t, float32(180), tail.Angle(joint.AxisV))
	assert.Equal(t, joint.Range{Min: 150, Max: 230}, tail.Joint(joint.AxisV).Range)
	assert.Equal(t, joint.Range{Min: -30, Max: 30}, tail.Joint(joint.AxisU).Range)
	assert.Equal(t, math.Vec3{Z: -1}, tail.Offset())

	wantTail := []float32{-20, -60, -70, -30, -20}
	for i, want := range wantTail {
		assert.Equal(t, want, tail.Part(TailPart(i)).Angle(joint.AxisU), "tail part %d", i)
	}
	assert.Equal(t, palette.Navy, tail.Part(TailNeedle).Color())

	body := s.Body()
	assert.Equal(t, joint.Range{Min: -15, Max: 15}, body.Joint(joint.AxisV).Range)
	wantLeft := []float32{110, 90, 70}
	for i, want := range wantLeft {
		assert.Equal(t, want, body.Leg(Left, i).Angle(joint.AxisV))
		assert.Equal(t, -want, body.Leg(Right, i).Angle(joint.AxisV), "legs mirror")
		assert.Equal(t, float32(100), body.Leg(Left, i).Part(LegLink2).Angle(joint.AxisU))
	}
	assert.Equal(t, math.Vec3{X: 0.7, Z: -0.5}, body.Leg(Left, 0).Offset())
	assert.Equal(t, math.Vec3{X: -0.7, Z: 0.5}, body.Leg(Right, 2).Offset())

	head := s.Head()
	assert.Equal(t, math.Vec3{Z: 1}, head.Offset())
	assert.Equal(t, float32(-20), head.Tooth(Left).Angle(joint.AxisV))
	assert.Equal(t, float32(20), head.Tooth(Right).Angle(joint.AxisV))
	assert.Equal(t, math.Vec3{X: 0.3, Y: 0.1, Z: 0.45}, head.Eye(Left).Offset())
	assert.Equal(t, math.Vec3{X: -0.3, Y: 0.1, Z: 0.45}, head.Eye(Right).Offset())
}

func TestResetAllRestoresDefaults(t *testing.T) {
	s := NewSpider(math.Vec3{})
	before := snapshot(s)

	for i, c := range s.Components() {
		c.Base().Rotate(float32(7*i+3), joint.Axis(i%joint.AxisCount))
	}
	s.SetCurrentOffset(math.Vec3{Y: 1})
	s.Reset(scenegraph.ResetAll)

	assert.Equal(t, before, snapshot(s))
	assert.Equal(t, math.Vec3{}, s.Offset())
}

func TestResetAllReauthorsDefaults(t *testing.T) {
	s := NewSpider(math.Vec3{})
	link3 := s.Body().Leg(Left, 1).Part(LegLink3)
	link3.SetDefaultAngle(-10, joint.AxisU)
	s.Body().Leg(Right, 0).SetDefaultAngle(-120, joint.AxisV)
	s.Head().Tooth(Left).SetDefaultAngle(20, joint.AxisV)

	s.Reset(scenegraph.ResetAll)

	assert.Equal(t, float32(-40), link3.Angle(joint.AxisU))
	assert.Equal(t, float32(-110), s.Body().Leg(Right, 0).Angle(joint.AxisV))
	assert.Equal(t, float32(-20), s.Head().Tooth(Left).Angle(joint.AxisV))
}

func TestColorResetKeepsAuthoredChanges(t *testing.T) {
	s := NewSpider(math.Vec3{})
	link3 := s.Body().Leg(Left, 1).Part(LegLink3)
	link3.SetDefaultAngle(-10, joint.AxisU)

	s.Reset(scenegraph.ResetColor)
	assert.Equal(t, float32(-10), link3.Angle(joint.AxisU))
}

func TestBodyColorsSphereOnly(t *testing.T) {
	s := NewSpider(math.Vec3{})
	body := s.Body()

	body.SetCurrentColor(palette.Red)
	assert.Equal(t, palette.Red, body.Sphere().Color())
	assert.Equal(t, palette.Navy, body.Leg(Left, 0).Part(LegLink1).Color())

	body.ResetColor()
	assert.Equal(t, palette.Black, body.Sphere().Color())
}

func TestHeadAndTailColorPropagate(t *testing.T) {
	s := NewSpider(math.Vec3{})

	s.Head().SetCurrentColor(palette.Green)
	assert.Equal(t, palette.Green, s.Head().Sphere().Color())
	assert.Equal(t, palette.Green, s.Head().Eye(Left).Pupil().Color())

	s.Tail().SetCurrentColor(palette.Blue)
	assert.Equal(t, palette.Blue, s.Tail().Part(TailNeedle).Color())

	s.Reset(scenegraph.ResetColor)
	assert.Equal(t, palette.White, s.Head().Eye(Left).Pupil().Color())
	assert.Equal(t, palette.Navy, s.Tail().Part(TailNeedle).Color())
	assert.Equal(t, palette.Yellow, s.Tail().Part(TailLink1).Color())
}

func TestWorldCompositionLaw(t *testing.T) {
	s := NewSpider(math.Vec3{X: 0.5})
	s.Body().Leg(Left, 2).Rotate(12, joint.AxisW)
	s.Tail().Part(TailLink3).Rotate(-8, joint.AxisU)
	scene := NewScene(s, true)
	scene.Root.Update(math.Identity())

	scenegraph.Walk(scene.Root, func(c scenegraph.Component, depth int) bool {
		n := c.Base()
		if p := n.Parent(); p != nil {
			want := p.World().Mul(n.Local())
			assert.True(t, want.ApproxEqual(n.World(), 1e-5), n.Name())
		}
		return true
	})
}

func TestLinkageChain(t *testing.T) {
	l := NewLinkage(math.Vec3{})
	cs := l.Components()
	require.Len(t, cs, LinkageLinks)
	assert.Equal(t, []string{"linkage.link1", "linkage.link2", "linkage.link3", "linkage.link4"}, names(cs))
	assert.Equal(t, palette.DarkOrange4, l.Link(3).Color())

	l.Update(math.Identity())
	assert.InDelta(t, 1.5, l.Link(3).WorldPosition().Z, 1e-5)
}

func TestAxesPointAlongWorldAxes(t *testing.T) {
	a := NewAxes(math.Vec3{})
	a.Update(math.Identity())
	kids := a.Children()
	require.Len(t, kids, 3)

	wantDirs := []math.Vec3{{X: 1}, {Y: 1}, {Z: 1}}
	for i, want := range wantDirs {
		got := kids[i].Base().AxisDirection(joint.AxisW)
		assert.InDelta(t, want.X, got.X, 1e-5)
		assert.InDelta(t, want.Y, got.Y, 1e-5)
		assert.InDelta(t, want.Z, got.Z, 1e-5)
	}
}

func TestBuild(t *testing.T) {
	for _, name := range Models {
		m, err := Build(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, m.Components())
	}
	_, err := Build("dragon")
	assert.Error(t, err)
}

func TestSideSign(t *testing.T) {
	assert.Equal(t, float32(1), Left.Sign())
	assert.Equal(t, float32(-1), Right.Sign())
	assert.Equal(t, float32(-110), LegAngle(Right, 20))
}

func snapshot(m Model) map[string][joint.AxisCount]float32 {
	out := map[string][joint.AxisCount]float32{}
	for _, c := range m.Components() {
		out[c.Base().Name()] = c.Base().Angles()
	}
	return out
}
