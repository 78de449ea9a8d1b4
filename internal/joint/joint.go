// Package joint models the per-axis rotation state of an articulated node.
//
// A joint keeps one slot per local axis. Each slot has an authored default
// angle, a current angle and an inclusive range. Angles are in degrees and
// every mutation clamps into the range instead of failing.
package joint

import "fmt"

// Axis names one of the three node-local rotation axes.
type Axis int

const (
	AxisU Axis = iota
	AxisV
	AxisW
)

// AxisCount is the number of rotation axes per joint.
const AxisCount = 3

// String returns the axis letter.
func (a Axis) String() string {
	switch a {
	case AxisU:
		return "u"
	case AxisV:
		return "v"
	case AxisW:
		return "w"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Valid reports whether a is one of u, v, w.
func (a Axis) Valid() bool {
	return a >= AxisU && a <= AxisW
}

// Next returns the following axis, wrapping w back to u.
func (a Axis) Next() Axis {
	return Axis((int(a) + 1) % AxisCount)
}

// Prev returns the preceding axis, wrapping u back to w.
func (a Axis) Prev() Axis {
	return Axis((int(a) + AxisCount - 1) % AxisCount)
}

func (a Axis) mustValid() {
	if !a.Valid() {
		panic(fmt.Sprintf("joint: axis %d out of range", int(a)))
	}
}

// Range is an inclusive angle interval in degrees.
type Range struct {
	Min float32
	Max float32
}

// DefaultRange is the range of a joint nobody authored limits for.
var DefaultRange = Range{Min: -360, Max: 360}

// Clamp returns angle limited to [Min, Max].
func (r Range) Clamp(angle float32) float32 {
	if angle < r.Min {
		return r.Min
	}
	if angle > r.Max {
		return r.Max
	}
	return angle
}

// Contains reports whether angle lies inside the range.
func (r Range) Contains(angle float32) bool {
	return angle >= r.Min && angle <= r.Max
}

// Joint is the rotation state of a single axis.
type Joint struct {
	Default float32
	Current float32
	Range   Range
}

// Rotate adds delta to the current angle and clamps it.
// It returns the delta that was actually applied.
func (j *Joint) Rotate(delta float32) float32 {
	before := j.Current
	j.Current = j.Range.Clamp(j.Current + delta)
	return j.Current - before
}

// SetCurrent sets the current angle, clamped.
func (j *Joint) SetCurrent(angle float32) {
	j.Current = j.Range.Clamp(angle)
}

// SetDefault sets the default angle and moves the current angle to it.
func (j *Joint) SetDefault(angle float32) {
	j.Default = j.Range.Clamp(angle)
	j.Current = j.Default
}

// SetRange replaces the range and re-clamps both angles into it.
// A range with Min > Max is a programming error.
func (j *Joint) SetRange(r Range) {
	if r.Min > r.Max {
		panic(fmt.Sprintf("joint: invalid range [%v, %v]", r.Min, r.Max))
	}
	j.Range = r
	j.Default = r.Clamp(j.Default)
	j.Current = r.Clamp(j.Current)
}

// Reset restores the current angle to the default.
func (j *Joint) Reset() {
	j.Current = j.Default
}

// Rotation holds the three axis joints of a node, indexed by Axis.
type Rotation [AxisCount]Joint

// NewRotation returns a rotation at zero on every axis with DefaultRange.
func NewRotation() Rotation {
	var r Rotation
	for i := range r {
		r[i].Range = DefaultRange
	}
	return r
}

// Axis returns the joint for a. Panics on an invalid axis.
func (r *Rotation) Axis(a Axis) *Joint {
	a.mustValid()
	return &r[a]
}

// Current returns the current angles of u, v, w.
func (r *Rotation) Current() [AxisCount]float32 {
	return [AxisCount]float32{r[AxisU].Current, r[AxisV].Current, r[AxisW].Current}
}

// Reset restores every axis to its default.
func (r *Rotation) Reset() {
	for i := range r {
		r[i].Reset()
	}
}

// AtDefault reports whether every axis sits at its default angle.
func (r *Rotation) AtDefault() bool {
	for i := range r {
		if r[i].Current != r[i].Default {
			return false
		}
	}
	return true
}
