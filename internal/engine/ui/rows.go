package ui

import (
	"fmt"
	"strings"

	"github.com/Faultbox/creature-poser/internal/interaction"
	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// Row is one line of the node table.
type Row struct {
	Index    int
	Name     string
	Angles   [joint.AxisCount]float32
	Axis     joint.Axis  // Active rotation axis of the session
	Range    joint.Range // Limits of Axis on this component
	Selected bool        // Receives rotations
	Current  bool        // The single selection
}

// ParseAxis reads an axis letter as printed by joint.Axis.String.
func ParseAxis(s string) (joint.Axis, bool) {
	for a := joint.AxisU; a <= joint.AxisW; a++ {
		if a.String() == s {
			return a, true
		}
	}
	return joint.AxisU, false
}

// BuildRows lays out the enumeration for display.
func BuildRows(nodes []interaction.NodeInfo, snap interaction.Snapshot) []Row {
	axis, _ := ParseAxis(snap.Axis)
	single := snap.Mode == interaction.ModeSingle.String()
	rows := make([]Row, len(nodes))
	for i, n := range nodes {
		rows[i] = Row{
			Index:    n.Index,
			Name:     n.Name,
			Angles:   n.Angles,
			Axis:     axis,
			Range:    n.Ranges[axis],
			Selected: n.Selected,
			Current:  single && n.Index == snap.Index,
		}
	}
	return rows
}

// AngleText formats the u, v, w angles in degrees.
func (r Row) AngleText() string {
	return fmt.Sprintf("%6.1f %6.1f %6.1f", r.Angles[joint.AxisU], r.Angles[joint.AxisV], r.Angles[joint.AxisW])
}

// RangeText formats the limits of the active axis.
func (r Row) RangeText() string {
	return fmt.Sprintf("%s [%g, %g]", r.Axis, r.Range.Min, r.Range.Max)
}

// Status summarizes the session in a few lines.
func Status(nodes []interaction.NodeInfo, snap interaction.Snapshot) []string {
	lines := []string{fmt.Sprintf("mode: %s   axis: %s", snap.Mode, snap.Axis)}

	name := func(i int) string {
		if i >= 0 && i < len(nodes) {
			return fmt.Sprintf("%d %s", i, nodes[i].Name)
		}
		return fmt.Sprintf("%d ?", i)
	}
	switch snap.Mode {
	case interaction.ModeSingle.String():
		lines = append(lines, "selection: "+name(snap.Index))
	case interaction.ModeMulti.String():
		set := make([]string, len(snap.Set))
		for i, idx := range snap.Set {
			set[i] = name(idx)
		}
		if len(set) == 0 {
			lines = append(lines, "set: empty, press 0-9 or click a row")
		} else {
			lines = append(lines, "set: "+strings.Join(set, ", "))
		}
	default:
		lines = append(lines, "selection: none")
	}

	cam := snap.Camera
	lines = append(lines, fmt.Sprintf("camera: distance %.1f  theta %.0f°  phi %.0f°",
		cam.Distance, math.Degrees(cam.Theta), math.Degrees(cam.Phi)))
	return lines
}
