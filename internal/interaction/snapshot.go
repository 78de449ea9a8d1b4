package interaction

import (
	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// NodeInfo describes one selectable component.
type NodeInfo struct {
	Index    int                          `json:"index"`
	Name     string                       `json:"name"`
	Angles   [joint.AxisCount]float32     `json:"angles"`
	Defaults [joint.AxisCount]float32     `json:"defaults"`
	Ranges   [joint.AxisCount]joint.Range `json:"ranges"`
	Offset   math.Vec3                    `json:"offset"`
	Position math.Vec3                    `json:"position"`
	Axes     [joint.AxisCount]math.Vec3   `json:"axes"` // World directions of u, v, w
	Selected bool                         `json:"selected"`
}

// CameraInfo describes the camera.
type CameraInfo struct {
	Distance float32   `json:"distance"`
	Theta    float32   `json:"theta"`
	Phi      float32   `json:"phi"`
	LookAt   math.Vec3 `json:"look_at"`
	Position math.Vec3 `json:"position"`
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	Mode   string     `json:"mode"`
	Index  int        `json:"index"`
	Axis   string     `json:"axis"`
	Set    []int      `json:"set"`
	Camera CameraInfo `json:"camera"`
}

// Snapshot captures the selection and camera state.
func (c *Controller) Snapshot() Snapshot {
	s := c.state.Clone()
	if s.Set == nil {
		s.Set = []int{}
	}
	return Snapshot{
		Mode:  s.Mode().String(),
		Index: s.Index,
		Axis:  s.Axis.String(),
		Set:   s.Set,
		Camera: CameraInfo{
			Distance: c.camera.Distance,
			Theta:    c.camera.Theta,
			Phi:      c.camera.Phi,
			LookAt:   c.camera.LookAt,
			Position: c.camera.Position(),
		},
	}
}

// Nodes describes every selectable component. Positions come from the
// last update pass.
func (c *Controller) Nodes() []NodeInfo {
	active := map[int]bool{}
	for _, i := range c.state.Active() {
		active[i] = true
	}
	out := make([]NodeInfo, len(c.components))
	for i, comp := range c.components {
		n := comp.Base()
		info := NodeInfo{
			Index:    i,
			Name:     n.Name(),
			Angles:   n.Angles(),
			Offset:   n.Offset(),
			Position: n.WorldPosition(),
			Selected: active[i],
		}
		for a := joint.AxisU; a <= joint.AxisW; a++ {
			j := n.Joint(a)
			info.Defaults[a] = j.Default
			info.Ranges[a] = j.Range
			info.Axes[a] = n.AxisDirection(a)
		}
		out[i] = info
	}
	return out
}
