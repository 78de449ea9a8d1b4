// Package picking provides unprojection and ray casting utilities.
package picking

import (
	gomath "math"

	"github.com/Faultbox/creature-poser/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// ndc converts pixel coordinates to normalized device coordinates.
func ndc(screenX, screenY, viewportW, viewportH float32) (x, y float32) {
	x = 2.0*screenX/viewportW - 1.0
	y = 1.0 - 2.0*screenY/viewportH // Flip Y
	return x, y
}

// NearFar unprojects a screen coordinate onto the near and far clip planes.
// invViewProj is the inverse of the view-projection matrix.
func NearFar(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) (near, far math.Vec3) {
	x, y := ndc(screenX, screenY, viewportW, viewportH)
	near = invViewProj.MulVec4(math.Vec4{x, y, -1.0, 1.0}).Vec3()
	far = invViewProj.MulVec4(math.Vec4{x, y, 1.0, 1.0}).Vec3()
	return near, far
}

// Unproject maps a screen coordinate to the world point a fraction u of the
// way from the near-plane point to the far-plane point. u interpolates
// linearly in world space, unlike device depth.
func Unproject(screenX, screenY, u, viewportW, viewportH float32, invViewProj math.Mat4) math.Vec3 {
	near, far := NearFar(screenX, screenY, viewportW, viewportH, invViewProj)
	return near.Lerp(far, u)
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	near, far := NearFar(screenX, screenY, viewportW, viewportH, invViewProj)
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform returns the ray mapped through m. The direction is
// left unnormalized so that distances stay comparable after mapping back.
func (r Ray) Transform(m math.Mat4) Ray {
	return Ray{
		Origin:    m.TransformPoint(r.Origin),
		Direction: m.TransformDirection(r.Direction),
	}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the ray parameter of the intersection and whether one occurred.
// If the ray starts inside the box, returns the exit parameter.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if dir[i] != 0 {
			t1 := (lo[i] - origin[i]) / dir[i]
			t2 := (hi[i] - origin[i]) / dir[i]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if origin[i] < lo[i] || origin[i] > hi[i] {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// NewAABB creates an AABB from two corners, swapping components as needed.
func NewAABB(a, b math.Vec3) AABB {
	box := AABB{Min: a, Max: b}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}
