package palette

import (
	"testing"

	"github.com/Faultbox/creature-poser/internal/joint"
)

func TestRGB(t *testing.T) {
	c := RGB(255, 0, 51)
	if c.R != 1 || c.G != 0 || c.A != 1 {
		t.Errorf("RGB(255, 0, 51) = %+v", c)
	}
	if d := c.B - 0.2; d > 1e-6 || d < -1e-6 {
		t.Errorf("RGB blue channel = %f, want 0.2", c.B)
	}
}

func TestAxisColorsDistinct(t *testing.T) {
	seen := map[Color]joint.Axis{}
	for _, a := range []joint.Axis{joint.AxisU, joint.AxisV, joint.AxisW} {
		c := AxisColor(a)
		if prev, ok := seen[c]; ok {
			t.Errorf("axis %v shares color with axis %v", a, prev)
		}
		seen[c] = a
	}
}

func TestAxisColorInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AxisColor(4) should panic")
		}
	}()
	AxisColor(joint.Axis(4))
}
