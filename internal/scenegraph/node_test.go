package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/pkg/math"
)

type fakeGeometry struct {
	world   math.Mat4
	color   palette.Color
	updates int
	draws   int
}

func (g *fakeGeometry) Update(world math.Mat4) { g.world = world; g.updates++ }
func (g *fakeGeometry) Draw(Shader) { g.draws++ }
func (g *fakeGeometry) SetColor(c palette.Color) { g.color = c }

type recordShader struct{ calls int }

func (s *recordShader) SetMat4(string, math.Mat4) { s.calls++ }

func vecNear(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-4, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-4, "z")
}

func TestWorldComposition(t *testing.T) {
	root := New("root", math.Vec3{X: 1})
	child := New("child", math.Vec3{Z: 2})
	root.AddChild(child)

	root.Update(math.Identity())
	vecNear(t, math.Vec3{X: 1, Z: 2}, child.WorldPosition())

	// v rotates about local y; +90 maps local +z onto +x
	root.SetCurrentAngle(90, joint.AxisV)
	root.Update(math.Identity())
	vecNear(t, math.Vec3{X: 3}, child.WorldPosition())

	want := root.World().Mul(child.Local())
	assert.True(t, want.ApproxEqual(child.World(), 1e-5))
}

func TestAxisOrderIsUVW(t *testing.T) {
	n := New("n", math.Vec3{})
	n.SetCurrentAngle(30, joint.AxisU)
	n.SetCurrentAngle(45, joint.AxisV)
	n.SetCurrentAngle(60, joint.AxisW)
	n.Update(math.Identity())

	want := math.RotateX(math.Radians(30)).
		Mul(math.RotateY(math.Radians(45))).
		Mul(math.RotateZ(math.Radians(60)))
	assert.True(t, want.ApproxEqual(n.World(), 1e-5))
}

func TestUpdateIsLazy(t *testing.T) {
	geom := &fakeGeometry{}
	root := New("root", math.Vec3{})
	leaf := NewShape("leaf", math.Vec3{Z: 1}, geom, palette.Yellow)
	root.AddChild(leaf)

	root.Update(math.Identity())
	require.Equal(t, 1, geom.updates)

	root.Update(math.Identity())
	assert.Equal(t, 1, geom.updates, "unchanged tree must not recompute")

	root.Rotate(10, joint.AxisU)
	root.Update(math.Identity())
	assert.Equal(t, 2, geom.updates, "ancestor change propagates")

	root.Update(math.Translate(0, 1, 0))
	assert.Equal(t, 3, geom.updates, "parent transform change propagates")
}

func TestRotateClampsToRange(t *testing.T) {
	n := New("n", math.Vec3{})
	n.SetRange(joint.Range{Min: -10, Max: 10}, joint.AxisU)
	n.Rotate(25, joint.AxisU)
	assert.Equal(t, float32(10), n.Angle(joint.AxisU))
	n.Rotate(-100, joint.AxisU)
	assert.Equal(t, float32(-10), n.Angle(joint.AxisU))
}

func TestResetRestoresSubtree(t *testing.T) {
	root := New("root", math.Vec3{})
	child := NewShape("child", math.Vec3{Z: 1}, &fakeGeometry{}, palette.Navy)
	root.AddChild(child)

	child.SetDefaultAngle(-20, joint.AxisU)
	child.Rotate(15, joint.AxisU)
	child.SetCurrentOffset(math.Vec3{Y: 3})
	root.SetCurrentColor(palette.Red)

	root.Reset(ResetColor)
	assert.Equal(t, palette.Navy, child.Color())
	assert.Equal(t, float32(-5), child.Angle(joint.AxisU), "color reset keeps angles")

	root.Reset(ResetAll)
	assert.Equal(t, float32(-20), child.Angle(joint.AxisU))
	assert.Equal(t, math.Vec3{Z: 1}, child.Offset())
}

func TestResetInvalidModePanics(t *testing.T) {
	assert.Panics(t, func() { New("n", math.Vec3{}).Reset(ResetMode(7)) })
}

func TestParseResetMode(t *testing.T) {
	m, err := ParseResetMode("color")
	require.NoError(t, err)
	assert.Equal(t, ResetColor, m)
	_, err = ParseResetMode("everything")
	assert.Error(t, err)
}

func TestColorPropagation(t *testing.T) {
	g1, g2 := &fakeGeometry{}, &fakeGeometry{}
	a := NewShape("a", math.Vec3{}, g1, palette.Black)
	b := NewShape("b", math.Vec3{}, g2, palette.White)
	a.AddChild(b)

	a.SetCurrentColor(palette.Green)
	assert.Equal(t, palette.Green, g1.color)
	assert.Equal(t, palette.Green, g2.color)

	a.ResetColor()
	assert.Equal(t, palette.Black, g1.color)
	assert.Equal(t, palette.White, g2.color)
}

func TestAddChildPanics(t *testing.T) {
	a := New("a", math.Vec3{})
	b := New("b", math.Vec3{})
	a.AddChild(b)

	assert.Panics(t, func() { a.AddChild(nil) }, "nil")
	assert.Panics(t, func() { New("c", math.Vec3{}).AddChild(b) }, "reparent")
	assert.Panics(t, func() { b.AddChild(a) }, "cycle")
	assert.Panics(t, func() { a.AddChild(a) }, "self")
}

func TestDrawBeforeUpdatePanics(t *testing.T) {
	n := NewShape("n", math.Vec3{}, &fakeGeometry{}, palette.Black)
	assert.Panics(t, func() { n.Draw(&recordShader{}) })

	n.Update(math.Identity())
	assert.NotPanics(t, func() { n.Draw(&recordShader{}) })

	n.Rotate(5, joint.AxisW)
	assert.Panics(t, func() { n.Draw(&recordShader{}) }, "stale after rotate")
}

func TestDrawVisitsEveryLeaf(t *testing.T) {
	g1, g2 := &fakeGeometry{}, &fakeGeometry{}
	root := New("root", math.Vec3{})
	root.AddChild(NewShape("a", math.Vec3{}, g1, palette.Black))
	mid := New("mid", math.Vec3{})
	mid.AddChild(NewShape("b", math.Vec3{}, g2, palette.Black))
	root.AddChild(mid)

	root.Update(math.Identity())
	root.Draw(&recordShader{})
	assert.Equal(t, 1, g1.draws)
	assert.Equal(t, 1, g2.draws)
}

func TestAxisDirectionFollowsOrientation(t *testing.T) {
	n := New("n", math.Vec3{X: 5})
	n.SetCurrentAngle(90, joint.AxisW)
	n.Update(math.Identity())
	vecNear(t, math.Vec3{Y: 1}, n.AxisDirection(joint.AxisU))
	vecNear(t, math.Vec3{Z: 1}, n.AxisDirection(joint.AxisW))
}

func TestDescendantsPreOrder(t *testing.T) {
	root := New("root", math.Vec3{})
	a := New("a", math.Vec3{})
	a1 := New("a1", math.Vec3{})
	b := New("b", math.Vec3{})
	a.AddChild(a1)
	root.AddChild(a)
	root.AddChild(b)

	var names []string
	for _, c := range Descendants(root) {
		names = append(names, c.Base().Name())
	}
	assert.Equal(t, []string{"a", "a1", "b"}, names)
}

func TestDispose(t *testing.T) {
	root := New("root", math.Vec3{})
	child := New("child", math.Vec3{})
	root.AddChild(child)
	root.Dispose()
	assert.True(t, child.IsDisposed())
	assert.Empty(t, root.Children())
	assert.Panics(t, func() { root.AddChild(New("x", math.Vec3{})) })
}
