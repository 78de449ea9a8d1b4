// Package math provides the vector and matrix types shared by the scene
// graph, camera and renderer.
package math

import "github.com/chewxy/math32"

// Vec2 is a 2D point or offset, usually in screen pixels.
type Vec2 struct {
	X, Y float32
}

// Vec2Of converts a [x, y] pair as stored in config files.
func Vec2Of(a [2]float32) Vec2 {
	return Vec2{a[0], a[1]}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Extend returns (v.X, v.Y, z).
func (v Vec2) Extend(z float32) Vec3 {
	return Vec3{v.X, v.Y, z}
}
