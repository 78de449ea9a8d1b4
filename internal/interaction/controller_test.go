package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/creature-poser/internal/assembly"
	"github.com/Faultbox/creature-poser/internal/engine/camera"
	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/internal/logger"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/internal/pose"
	"github.com/Faultbox/creature-poser/pkg/math"
)

func newSpiderController(t *testing.T) (*Controller, *assembly.Spider) {
	t.Helper()
	s := assembly.NewSpider(math.Vec3{})
	cam := camera.NewOrbitCamera(camera.DefaultSettings(), 800, 600)
	return New(s, cam, DefaultSettings()), s
}

func press(t *testing.T, c *Controller, keys ...Key) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, c.HandleKey(k))
	}
}

var (
	enter = Key{Code: KeyEnter}
	esc   = Key{Code: KeyEscape}
	left  = Key{Code: KeyLeft}
	right = Key{Code: KeyRight}
	up    = Key{Code: KeyUp}
	down  = Key{Code: KeyDown}
)

func angleSnapshot(c *Controller) [][joint.AxisCount]float32 {
	out := make([][joint.AxisCount]float32, len(c.Components()))
	for i, comp := range c.Components() {
		out[i] = comp.Base().Angles()
	}
	return out
}

func TestEnterCyclesSelection(t *testing.T) {
	c, s := newSpiderController(t)

	press(t, c, enter)
	st := c.State()
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, ModeSingle, st.Mode())
	assert.Equal(t, palette.Red, s.Head().Sphere().Color())

	press(t, c, enter)
	assert.Equal(t, 1, c.State().Index)
	assert.Equal(t, palette.Red, s.Head().Sphere().Color())

	for i := 0; i < len(c.Components())-1; i++ {
		press(t, c, enter)
	}
	assert.Equal(t, 0, c.State().Index, "selection wraps")
}

func TestEnterResetsAxis(t *testing.T) {
	c, _ := newSpiderController(t)
	press(t, c, enter, right, right, enter)
	assert.Equal(t, joint.AxisU, c.State().Axis)
}

func TestAxisCycleIsOrderThree(t *testing.T) {
	c, s := newSpiderController(t)
	press(t, c, enter)
	start := c.State().Axis

	press(t, c, right)
	assert.Equal(t, joint.AxisV, c.State().Axis)
	assert.Equal(t, palette.Green, s.Head().Sphere().Color())

	press(t, c, right, right)
	assert.Equal(t, start, c.State().Axis)

	press(t, c, left)
	assert.Equal(t, joint.AxisW, c.State().Axis)
	assert.Equal(t, palette.Blue, s.Head().Sphere().Color())
	press(t, c, left, left, left)
	assert.Equal(t, joint.AxisW, c.State().Axis)
}

func TestRotateSelected(t *testing.T) {
	c, s := newSpiderController(t)
	body := s.Body()
	idx, ok := c.IndexOf(body.Node)
	require.True(t, ok)

	for c.State().Index != idx {
		press(t, c, enter)
	}
	press(t, c, up, up)
	assert.Equal(t, float32(5), body.Angle(joint.AxisU))
	press(t, c, down)
	assert.Equal(t, float32(2.5), body.Angle(joint.AxisU))

	for i := 0; i < 20; i++ {
		press(t, c, up)
	}
	assert.Equal(t, float32(10), body.Angle(joint.AxisU), "clamped to the body range")
}

func TestRotateNormalizesWheel(t *testing.T) {
	c, s := newSpiderController(t)
	press(t, c, enter)

	require.NoError(t, c.Handle(Command{Op: OpRotate, Delta: 120}))
	assert.Equal(t, float32(2.5), s.Head().Angle(joint.AxisU))
	require.NoError(t, c.Handle(Command{Op: OpRotate, Delta: -120}))
	require.NoError(t, c.Handle(Command{Op: OpRotate, Delta: 0}))
	assert.Equal(t, float32(0), s.Head().Angle(joint.AxisU))
}

func TestRotateWithoutSelectionIsNoop(t *testing.T) {
	c, _ := newSpiderController(t)
	before := angleSnapshot(c)
	press(t, c, up, down, up)
	assert.Equal(t, before, angleSnapshot(c))
}

func TestEscapeRestoresColor(t *testing.T) {
	c, s := newSpiderController(t)
	press(t, c, enter, right)
	press(t, c, esc)

	assert.Equal(t, NoSelection, c.State().Index)
	assert.Equal(t, ModeNone, c.State().Mode())
	assert.Equal(t, palette.Black, s.Head().Sphere().Color())

	press(t, c, esc) // nothing selected
	assert.Equal(t, NoSelection, c.State().Index)
}

func TestMultiSelectRotatesExactlyTheSet(t *testing.T) {
	c, _ := newSpiderController(t)
	c.settings.RotateStep = 5
	before := angleSnapshot(c)

	press(t, c, CharKey('m'), CharKey('0'), CharKey('2'), CharKey('4'))
	assert.Equal(t, []int{0, 2, 4}, c.State().Set)
	require.NoError(t, c.Handle(Command{Op: OpRotate, Delta: 1}))

	after := angleSnapshot(c)
	for i := range before {
		want := before[i]
		if i == 0 || i == 2 || i == 4 {
			want[joint.AxisU] = c.Components()[i].Base().Joint(joint.AxisU).Range.Clamp(want[joint.AxisU] + 5)
		}
		assert.Equal(t, want, after[i], "component %d", i)
	}
}

func TestMultiSelectDedupes(t *testing.T) {
	c, _ := newSpiderController(t)
	press(t, c, CharKey('m'), CharKey('2'), CharKey('2'), CharKey('3'), CharKey('2'))
	assert.Equal(t, []int{2, 3}, c.State().Set)
}

func TestDigitsOutsideMultiIgnored(t *testing.T) {
	c, _ := newSpiderController(t)
	press(t, c, CharKey('3'))
	assert.Empty(t, c.State().Set)
	assert.Equal(t, ModeNone, c.State().Mode())
}

func TestMultiSelectOutOfRangeIgnored(t *testing.T) {
	cam := camera.NewOrbitCamera(camera.DefaultSettings(), 800, 600)
	c := New(assembly.NewLinkage(math.Vec3{}), cam, DefaultSettings())
	press(t, c, CharKey('m'), CharKey('7'), CharKey('1'))
	assert.Equal(t, []int{1}, c.State().Set)
}

func TestEnterMultiClearsSingleSelection(t *testing.T) {
	c, s := newSpiderController(t)
	press(t, c, enter, right)
	press(t, c, CharKey('m'))

	st := c.State()
	assert.Equal(t, NoSelection, st.Index)
	assert.True(t, st.Multi)
	assert.Equal(t, joint.AxisU, st.Axis)
	assert.Equal(t, palette.Black, s.Head().Sphere().Color())

	press(t, c, enter)
	assert.Equal(t, NoSelection, c.State().Index, "enter is ignored in multi-select")
}

func TestExitMultiRestoresColors(t *testing.T) {
	c, s := newSpiderController(t)
	tailIdx, ok := c.IndexOf(s.Tail().Part(assembly.TailNeedle))
	require.True(t, ok)

	press(t, c, CharKey('m'), CharKey('1'))
	require.NoError(t, c.Handle(Command{Op: OpSelectIndex, Index: tailIdx}))
	press(t, c, right)
	assert.Equal(t, palette.Green, s.Tail().Part(assembly.TailNeedle).Color())
	assert.Equal(t, palette.Green, s.Head().Sphere().Color())

	press(t, c, CharKey('M'))
	assert.False(t, c.State().Multi)
	assert.Empty(t, c.State().Set)
	assert.Equal(t, palette.Navy, s.Tail().Part(assembly.TailNeedle).Color())
	assert.Equal(t, palette.Black, s.Head().Sphere().Color())
}

func TestResetAll(t *testing.T) {
	c, s := newSpiderController(t)
	before := angleSnapshot(c)

	press(t, c, CharKey('j'), CharKey('a'), CharKey('w'))
	press(t, c, enter, up, up)
	press(t, c, CharKey('m'), CharKey('5'), up)
	require.NoError(t, c.Handle(Command{Op: OpOrbit, DX: 40, DY: 30}))

	press(t, c, CharKey('R'))

	assert.Equal(t, before, angleSnapshot(c))
	assert.Equal(t, math.Vec3{}, s.Offset())
	assert.Equal(t, NewState(), c.State())
	assert.Equal(t, camera.DefaultSettings().Theta, c.Camera().Theta)
	for _, comp := range c.Components() {
		assert.Equal(t, comp.Base().RestColor(), comp.Base().Color(), comp.Base().Name())
	}
}

func TestResetCameraOnly(t *testing.T) {
	c, s := newSpiderController(t)
	press(t, c, enter, up)
	require.NoError(t, c.Handle(Command{Op: OpOrbit, DX: 100, DY: 10}))
	press(t, c, CharKey('r'))

	assert.Equal(t, camera.DefaultSettings().Phi, c.Camera().Phi)
	assert.Equal(t, 0, c.State().Index, "selection survives a camera reset")
	assert.Equal(t, float32(2.5), s.Head().Angle(joint.AxisU))
}

func TestOrbitThereAndBack(t *testing.T) {
	c, _ := newSpiderController(t)
	theta, phi := c.Camera().Theta, c.Camera().Phi

	require.NoError(t, c.Handle(Command{Op: OpOrbit, DX: 100}))
	require.NoError(t, c.Handle(Command{Op: OpOrbit, DX: -100}))

	assert.InDelta(t, theta, c.Camera().Theta, 1e-5)
	assert.Equal(t, phi, c.Camera().Phi)
}

func TestPanMovesLookAt(t *testing.T) {
	c, _ := newSpiderController(t)
	require.NoError(t, c.Handle(Command{Op: OpPan, X: 450, Y: 300, DX: 50}))
	assert.NotEqual(t, math.Vec3{}, c.Camera().LookAt)
}

func TestPosePresets(t *testing.T) {
	c, s := newSpiderController(t)
	press(t, c, CharKey('o'))
	assert.Equal(t, float32(20), s.Head().Tooth(assembly.Left).Angle(joint.AxisV))

	require.NoError(t, c.Handle(Command{Op: OpPose, Pose: pose.CloseMouth}))
	assert.Equal(t, float32(-20), s.Head().Tooth(assembly.Left).Angle(joint.AxisV))

	err := c.Handle(Command{Op: OpPose, Pose: "dance"})
	assert.ErrorIs(t, err, ErrUnknownPose)
}

func TestPoseNeedsSpider(t *testing.T) {
	cam := camera.NewOrbitCamera(camera.DefaultSettings(), 800, 600)
	c := New(assembly.NewLinkage(math.Vec3{}), cam, DefaultSettings())
	assert.ErrorIs(t, c.HandleKey(CharKey('a')), ErrNoPoses)
}

func TestUnknownOp(t *testing.T) {
	c, _ := newSpiderController(t)
	assert.ErrorIs(t, c.Handle(Command{Op: Op(99)}), ErrUnknownOp)
	assert.NoError(t, c.HandleKey(CharKey('z')), "unbound keys are ignored")
}

func TestEyeTracking(t *testing.T) {
	c, s := newSpiderController(t)
	require.NoError(t, c.Handle(Command{Op: OpPointerMove, X: 222, Y: 180}))

	leftPupil := s.Head().Eye(assembly.Left).Pupil().Offset()
	assert.InDelta(t, 0.03, leftPupil.X, 1e-6)
	assert.InDelta(t, 0, leftPupil.Y, 1e-6)
	assert.InDelta(t, 0.09, leftPupil.Z, 1e-6)

	rightPupil := s.Head().Eye(assembly.Right).Pupil().Offset()
	assert.InDelta(t, -0.03, rightPupil.X, 1e-6, "cursor is left of the right reference")

	press(t, c, CharKey('R'))
	assert.Equal(t, math.Vec3{Z: 0.09}, s.Head().Eye(assembly.Left).Pupil().Offset())
}

func TestPupilOffset(t *testing.T) {
	ref := math.Vec2{X: 100, Y: 100}
	tests := []struct {
		name   string
		x, y   float32
		wantX  float32
		wantY  float32
		within float64
	}{
		{"on reference", 100, 100, 0.03, 0, 1e-6},
		{"right", 150, 100, 0.03, 0, 1e-6},
		{"left", 50, 100, -0.03, 0, 1e-6},
		{"above", 100, 20, 0, 0.03, 1e-5},
		{"below", 100, 180, 0, -0.03, 1e-5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PupilOffset(tt.x, tt.y, ref, 0.03, 0.01, 0.09)
			assert.InDelta(t, tt.wantX, got.X, tt.within)
			assert.InDelta(t, tt.wantY, got.Y, tt.within)
			assert.InDelta(t, 0.03, got.Sub(math.Vec3{Z: 0.09}).Length(), 1e-5)
		})
	}
}

func TestPick(t *testing.T) {
	c, s := newSpiderController(t)
	s.Update(math.Identity())

	require.NoError(t, c.Handle(Command{Op: OpPick, X: 400, Y: 300}))
	st := c.State()
	require.Equal(t, ModeSingle, st.Mode())
	assert.Equal(t, "body.sphere", c.Component(st.Index).Base().Name())
	assert.Equal(t, palette.Red, s.Body().Sphere().Color())

	c.Camera().LookAt = math.Vec3{X: 100, Y: 100, Z: 100}
	require.NoError(t, c.Handle(Command{Op: OpPick, X: 400, Y: 300}))
	assert.Equal(t, st.Index, c.State().Index, "a miss keeps the selection")
}

func TestPickInMultiAddsToSet(t *testing.T) {
	c, s := newSpiderController(t)
	s.Update(math.Identity())
	press(t, c, CharKey('m'))
	require.NoError(t, c.Handle(Command{Op: OpPick, X: 400, Y: 300}))

	idx, _ := c.IndexOf(s.Body().Sphere())
	assert.Equal(t, []int{idx}, c.State().Set)
}

func TestFocus(t *testing.T) {
	c, s := newSpiderController(t)
	rest := s.Head().Sphere().Color()

	press(t, c, right)
	require.NoError(t, c.Handle(Command{Op: OpFocus, Index: 0}))
	st := c.State()
	assert.Equal(t, ModeSingle, st.Mode())
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, joint.AxisU, st.Axis)
	assert.Equal(t, palette.Red, s.Head().Sphere().Color())

	require.NoError(t, c.Handle(Command{Op: OpFocus, Index: 38}))
	assert.Equal(t, 38, c.State().Index)
	assert.Equal(t, rest, s.Head().Sphere().Color(), "previous selection restored")

	require.NoError(t, c.Handle(Command{Op: OpFocus, Index: 44}))
	assert.Equal(t, 38, c.State().Index, "out of range is ignored")

	press(t, c, CharKey('m'))
	require.NoError(t, c.Handle(Command{Op: OpFocus, Index: 12}))
	require.NoError(t, c.Handle(Command{Op: OpFocus, Index: 12}))
	assert.Equal(t, []int{12}, c.State().Set)
}

func TestSelectionLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	defer logger.Set(zap.New(core))()

	c, _ := newSpiderController(t)
	press(t, c, enter)

	entries := logs.FilterMessage("select").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "head", entries[0].ContextMap()["node"])
	assert.Equal(t, "interaction", entries[0].LoggerName)
}

func TestSnapshotAndNodes(t *testing.T) {
	c, s := newSpiderController(t)
	s.Update(math.Identity())
	press(t, c, CharKey('m'), CharKey('3'))

	snap := c.Snapshot()
	assert.Equal(t, "multi", snap.Mode)
	assert.Equal(t, "u", snap.Axis)
	assert.Equal(t, []int{3}, snap.Set)
	assert.Equal(t, float32(6), snap.Camera.Distance)

	nodes := c.Nodes()
	require.Len(t, nodes, 44)
	assert.True(t, nodes[3].Selected)
	assert.False(t, nodes[2].Selected)
	assert.Equal(t, "tail", nodes[38].Name)
	assert.Equal(t, joint.Range{Min: 150, Max: 230}, nodes[38].Ranges[joint.AxisV])
	assert.InDelta(t, -1, nodes[38].Position.Z, 1e-5)
	for a, dir := range nodes[38].Axes {
		assert.InDelta(t, 1, dir.Length(), 1e-5, "axis %d", a)
	}
	assert.InDelta(t, 0, nodes[38].Axes[joint.AxisU].Dot(nodes[38].Axes[joint.AxisV]), 1e-5)
}
