package ui

import "github.com/Faultbox/creature-poser/internal/interaction"

// Sample is the mouse state for one frame, in pixels relative to the top
// left corner of the scene image.
type Sample struct {
	X, Y    float32
	Hovered bool    // Mouse is over the scene image
	Left    bool    // Left button held
	Pan     bool    // Middle or right button held
	Wheel   float32 // Vertical wheel motion this frame
}

// Pointer turns per-frame mouse samples into controller commands. A left
// click without motion picks and a left drag orbits. A middle or right drag
// pans. Drags only start over the image but continue outside it.
type Pointer struct {
	last     Sample
	started  bool
	leftDown bool
	panDown  bool
	dragged  bool
}

// Update consumes the sample of the current frame.
func (p *Pointer) Update(s Sample) []interaction.Command {
	var out []interaction.Command
	var dx, dy float32
	if p.started {
		dx, dy = s.X-p.last.X, s.Y-p.last.Y
	}
	moved := dx != 0 || dy != 0

	if s.Hovered && moved {
		out = append(out, interaction.Command{Op: interaction.OpPointerMove, X: s.X, Y: s.Y})
	}

	switch {
	case s.Left && !p.last.Left:
		if s.Hovered {
			p.leftDown, p.dragged = true, false
		}
	case s.Left && p.leftDown && moved:
		p.dragged = true
		out = append(out, interaction.Command{Op: interaction.OpOrbit, X: s.X, Y: s.Y, DX: dx, DY: dy})
	case !s.Left && p.leftDown:
		if !p.dragged && s.Hovered {
			out = append(out, interaction.Command{Op: interaction.OpPick, X: s.X, Y: s.Y})
		}
		p.leftDown = false
	}

	switch {
	case s.Pan && !p.last.Pan:
		p.panDown = s.Hovered
	case s.Pan && p.panDown && moved:
		out = append(out, interaction.Command{Op: interaction.OpPan, X: s.X, Y: s.Y, DX: dx, DY: dy})
	case !s.Pan:
		p.panDown = false
	}

	if s.Hovered && s.Wheel != 0 {
		out = append(out, interaction.Command{Op: interaction.OpRotate, Delta: s.Wheel})
	}

	p.last, p.started = s, true
	return out
}
