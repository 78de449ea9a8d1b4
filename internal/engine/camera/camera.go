// Package camera provides the orbit camera used to view the creature.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/creature-poser/internal/engine/picking"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// Settings holds the initial camera state restored by Reset.
type Settings struct {
	Distance float32 // Distance from the look-at point
	Theta    float32 // Azimuth on the horizontal circle (radians)
	Phi      float32 // Elevation (radians)

	FovY float32 // Vertical field of view (degrees)
	Near float32
	Far  float32

	RotateSpeed float32 // Multiplier on horizontal drag
	PanDepth    float32 // Unprojection depth used while panning
	PanFactor   float32 // Pan speed at the default distance of 6
}

// DefaultSettings returns the camera used by the viewer.
func DefaultSettings() Settings {
	return Settings{
		Distance:    6,
		Theta:       math32.Pi / 2,
		Phi:         math32.Pi / 6,
		FovY:        45,
		Near:        0.01,
		Far:         100,
		RotateSpeed: 1,
		PanDepth:    0.5,
		PanFactor:   0.185,
	}
}

// OrbitCamera orbits around a look-at point in spherical coordinates.
type OrbitCamera struct {
	LookAt math.Vec3
	Up     math.Vec3

	Distance float32
	Theta    float32 // Always in [0, 2π)
	Phi      float32 // Always in [-π/2, π/2]

	Width  float32 // Viewport size in pixels
	Height float32

	settings Settings
}

// NewOrbitCamera creates a camera in its reset state.
func NewOrbitCamera(s Settings, width, height float32) *OrbitCamera {
	c := &OrbitCamera{settings: s, Width: width, Height: height}
	c.Reset()
	return c
}

// Settings returns the initial state the camera resets to.
func (c *OrbitCamera) Settings() Settings { return c.settings }

// Reset restores look-at, up vector and spherical coordinates.
func (c *OrbitCamera) Reset() {
	c.LookAt = math.Vec3{}
	c.Up = math.Vec3{Y: 1}
	c.Distance = c.settings.Distance
	c.Theta = wrapAngle(c.settings.Theta)
	c.Phi = clampPhi(c.settings.Phi)
}

// Resize updates the viewport dimensions.
func (c *OrbitCamera) Resize(width, height float32) {
	c.Width = width
	c.Height = height
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	ct, st := math32.Cos(c.Theta), math32.Sin(c.Theta)
	cp, sp := math32.Cos(c.Phi), math32.Sin(c.Phi)
	return c.LookAt.Add(math.Vec3{
		X: c.Distance * ct * cp,
		Y: c.Distance * sp,
		Z: c.Distance * st * cp,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return View(c.Position(), c.LookAt, c.Up)
}

// ProjectionMatrix returns the perspective projection for the viewport.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return Perspective(c.settings.FovY, c.Width, c.Height, c.settings.Near, c.settings.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Drag orbits the camera by a pointer delta in pixels.
func (c *OrbitCamera) Drag(dx, dy float32) {
	c.Phi = clampPhi(c.Phi - dy/50)
	c.Theta = wrapAngle(c.Theta + dx/100*c.settings.RotateSpeed)
}

// Pan moves the look-at point so the scene follows the pointer from
// (fromX, fromY) to (toX, toY).
func (c *OrbitCamera) Pan(fromX, fromY, toX, toY float32) {
	before := c.Unproject(fromX, fromY, c.settings.PanDepth)
	after := c.Unproject(toX, toY, c.settings.PanDepth)
	speed := c.settings.PanFactor * c.Distance / 6
	c.LookAt = c.LookAt.Sub(after.Sub(before).Scale(speed))
}

// Unproject maps a screen point to world space, u in [0,1] interpolating
// linearly between the near and far plane points.
func (c *OrbitCamera) Unproject(x, y, u float32) math.Vec3 {
	return picking.Unproject(x, y, u, c.Width, c.Height, c.ViewProjection().Inverse())
}

// Ray returns the world-space ray through a screen point.
func (c *OrbitCamera) Ray(x, y float32) picking.Ray {
	return picking.ScreenToRay(x, y, c.Width, c.Height, c.ViewProjection().Inverse())
}

// Project maps a world point to screen coordinates and the depth
// parameter u accepted by Unproject.
func (c *OrbitCamera) Project(p math.Vec3) (x, y, u float32) {
	ndc := c.ViewProjection().MulVec4(math.Vec4{p.X, p.Y, p.Z, 1}).Vec3()
	x = (ndc.X + 1) / 2 * c.Width
	y = (1 - ndc.Y) / 2 * c.Height

	n, f := picking.NearFar(x, y, c.Width, c.Height, c.ViewProjection().Inverse())
	span := f.Sub(n).Length()
	if span > 0 {
		u = p.Sub(n).Length() / span
	}
	return x, y, u
}

// Perspective returns a projection for a vertical fov in degrees and a
// viewport size in pixels.
func Perspective(fovDeg, width, height, near, far float32) math.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = width / height
	}
	return math.Perspective(math.Radians(fovDeg), aspect, near, far)
}

// View returns the view matrix of an eye looking at a point.
func View(eye, lookAt, up math.Vec3) math.Mat4 {
	return math.LookAt(eye, lookAt, up)
}

func clampPhi(phi float32) float32 {
	if phi > math32.Pi/2 {
		return math32.Pi / 2
	}
	if phi < -math32.Pi/2 {
		return -math32.Pi / 2
	}
	return phi
}

func wrapAngle(a float32) float32 {
	a = math32.Mod(a, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	if a >= 2*math32.Pi {
		a = 0
	}
	return a
}
