package interaction

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/creature-poser/internal/assembly"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// EyeSettings configure the look-at-cursor behavior.
type EyeSettings struct {
	Enabled  bool
	LeftRef  math.Vec2 // Screen point the left pupil is centered on
	RightRef math.Vec2 // Screen point the right pupil is centered on
	Radius   float32   // Pupil travel from the eye center
	Epsilon  float32   // Keeps the angle finite when the cursor is above a reference
}

// DefaultEyeSettings returns references tuned for a 500x500 viewport.
func DefaultEyeSettings() EyeSettings {
	return EyeSettings{
		Enabled:  true,
		LeftRef:  math.Vec2{X: 212, Y: 180},
		RightRef: math.Vec2{X: 288, Y: 180},
		Radius:   0.03,
		Epsilon:  0.01,
	}
}

// PupilOffset returns the pupil offset for a cursor at (x, y) relative to
// ref, keeping z. The pupil moves radius away from the eye center in the
// direction of the cursor. Screen y grows downward, world y upward.
func PupilOffset(x, y float32, ref math.Vec2, radius, epsilon, z float32) math.Vec3 {
	d := math.Vec2{X: x, Y: y}.Sub(ref)
	theta := math32.Atan(math32.Abs(d.Y / (d.X + epsilon)))
	return math.Vec2{
		X: radius * math32.Cos(theta) * sign(d.X),
		Y: -radius * math32.Sin(theta) * sign(d.Y),
	}.Extend(z)
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

func (c *Controller) trackEyes(x, y float32) {
	eyes := c.settings.Eyes
	if !eyes.Enabled {
		return
	}
	spider, ok := c.model.(*assembly.Spider)
	if !ok {
		return
	}
	refs := [2]math.Vec2{assembly.Left: eyes.LeftRef, assembly.Right: eyes.RightRef}
	for _, side := range []assembly.Side{assembly.Left, assembly.Right} {
		pupil := spider.Head().Eye(side).Pupil()
		pupil.SetCurrentOffset(PupilOffset(x, y, refs[side], eyes.Radius, eyes.Epsilon, pupil.Offset().Z))
	}
}
