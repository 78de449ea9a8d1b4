package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if m.Column(3) != (Vec3{5, 10, 15}) {
		t.Errorf("Column(3) = %v, want (5, 10, 15)", m.Column(3))
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	result := m.TransformDirection(Vec3{1, 0, 0})

	if result != (Vec3{2, 0, 0}) {
		t.Errorf("TransformDirection: got %v, want (2, 0, 0)", result)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotationsMatchMathGL(t *testing.T) {
	angles := []float32{0, 0.3, -1.2, float32(math.Pi)}
	for _, a := range angles {
		if !RotateX(a).ApproxEqual(Mat4(mgl32.HomogRotate3DX(a)), 1e-6) {
			t.Errorf("RotateX(%v) differs from mgl32", a)
		}
		if !RotateY(a).ApproxEqual(Mat4(mgl32.HomogRotate3DY(a)), 1e-6) {
			t.Errorf("RotateY(%v) differs from mgl32", a)
		}
		if !RotateZ(a).ApproxEqual(Mat4(mgl32.HomogRotate3DZ(a)), 1e-6) {
			t.Errorf("RotateZ(%v) differs from mgl32", a)
		}
	}
}

func TestPerspectiveMatchesMathGL(t *testing.T) {
	fov := Radians(45)
	got := Perspective(fov, 4.0/3.0, 0.01, 100)
	want := Mat4(mgl32.Perspective(fov, 4.0/3.0, 0.01, 100))

	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("Perspective: got %v, want %v", got, want)
	}
	if got[11] != -1 || got[15] != 0 {
		t.Errorf("Perspective w row: got [11]=%f [15]=%f", got[11], got[15])
	}
}

func TestLookAtMatchesMathGL(t *testing.T) {
	eye := Vec3{3, 2, 5}
	center := Vec3{0, 0.5, 0}
	up := Vec3{0, 1, 0}

	got := LookAt(eye, center, up)
	want := Mat4(mgl32.LookAtV(
		mgl32.Vec3{eye.X, eye.Y, eye.Z},
		mgl32.Vec3{center.X, center.Y, center.Z},
		mgl32.Vec3{up.X, up.Y, up.Z},
	))

	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("LookAt: got %v, want %v", got, want)
	}

	// The eye maps to the view-space origin
	o := got.TransformPoint(eye)
	if o.Length() > 1e-5 {
		t.Errorf("LookAt eye should map to origin, got %v", o)
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, -2, 3).Mul(RotateY(0.7)).Mul(RotateX(-0.4)).Mul(Scale(2, 2, 2))
	inv := m.Inverse()

	if !m.Mul(inv).ApproxEqual(Identity(), 1e-5) {
		t.Errorf("M * inverse(M) should be identity, got %v", m.Mul(inv))
	}

	want := Mat4(mgl32.Mat4(m).Inv())
	if !inv.ApproxEqual(want, 1e-4) {
		t.Errorf("Inverse: got %v, want %v", inv, want)
	}
}

func TestInverseSingular(t *testing.T) {
	if Scale(0, 1, 1).Inverse() != Identity() {
		t.Error("Inverse of singular matrix should be identity")
	}
}

func TestVec4PerspectiveDivide(t *testing.T) {
	v := Vec4{2, 4, 6, 2}
	if v.Vec3() != (Vec3{1, 2, 3}) {
		t.Errorf("Vec4.Vec3() = %v, want (1, 2, 3)", v.Vec3())
	}
	v = Vec4{2, 4, 6, 0}
	if v.Vec3() != (Vec3{2, 4, 6}) {
		t.Errorf("Vec4.Vec3() with w=0 = %v, want (2, 4, 6)", v.Vec3())
	}
}

func TestRadiansDegrees(t *testing.T) {
	if abs(Radians(180)-math.Pi) > 1e-6 {
		t.Errorf("Radians(180) = %v, want pi", Radians(180))
	}
	if abs(Degrees(Radians(37))-37) > 1e-4 {
		t.Errorf("Degrees(Radians(37)) = %v, want 37", Degrees(Radians(37)))
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
