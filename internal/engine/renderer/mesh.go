package renderer

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/creature-poser/internal/shape"
)

// Vertex is an interleaved position and normal.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Tessellation used for the curved primitives.
const (
	DefaultSlices = 24
	DefaultStacks = 16
)

// BuildMesh returns the unit mesh for a primitive kind. All meshes span
// [-1, 1] on every axis.
func BuildMesh(k shape.Kind) *Mesh {
	switch k {
	case shape.Cube:
		return CubeMesh()
	case shape.Sphere:
		return SphereMesh(DefaultSlices, DefaultStacks)
	case shape.Cone:
		return ConeMesh(DefaultSlices)
	case shape.Cylinder:
		return CylinderMesh(DefaultSlices)
	}
	panic("renderer: unknown primitive " + k.String())
}

func (m *Mesh) add(v ...Vertex) uint32 {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, v...)
	return base
}

func (m *Mesh) quad(base uint32) {
	m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
}

// CubeMesh returns a cube with one flat normal per face.
func CubeMesh() *Mesh {
	m := &Mesh{}
	faces := []struct {
		normal [3]float32
		corner [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	}
	for _, f := range faces {
		base := m.add(
			Vertex{f.corner[0], f.normal},
			Vertex{f.corner[1], f.normal},
			Vertex{f.corner[2], f.normal},
			Vertex{f.corner[3], f.normal},
		)
		m.quad(base)
	}
	return m
}

// SphereMesh returns a UV sphere of radius 1.
func SphereMesh(slices, stacks int) *Mesh {
	m := &Mesh{}
	for i := 0; i <= stacks; i++ {
		theta := math32.Pi * float32(i) / float32(stacks)
		st, ct := math32.Sincos(theta)
		for j := 0; j <= slices; j++ {
			phi := 2 * math32.Pi * float32(j) / float32(slices)
			sp, cp := math32.Sincos(phi)
			p := [3]float32{st * cp, st * sp, ct}
			m.add(Vertex{p, p})
		}
	}
	row := uint32(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return m
}

// CylinderMesh returns a capped cylinder of radius 1 from z=-1 to z=1.
func CylinderMesh(segments int) *Mesh {
	m := &Mesh{}
	for j := 0; j < segments; j++ {
		s0, c0 := math32.Sincos(2 * math32.Pi * float32(j) / float32(segments))
		s1, c1 := math32.Sincos(2 * math32.Pi * float32(j+1) / float32(segments))
		base := m.add(
			Vertex{[3]float32{c0, s0, -1}, [3]float32{c0, s0, 0}},
			Vertex{[3]float32{c1, s1, -1}, [3]float32{c1, s1, 0}},
			Vertex{[3]float32{c1, s1, 1}, [3]float32{c1, s1, 0}},
			Vertex{[3]float32{c0, s0, 1}, [3]float32{c0, s0, 0}},
		)
		m.quad(base)
	}
	m.disk(segments, 1)
	m.disk(segments, -1)
	return m
}

// ConeMesh returns a cone with its unit base at z=-1 and its tip at z=1.
func ConeMesh(segments int) *Mesh {
	m := &Mesh{}
	// Side normals lean toward the tip by the slope of a radius 1, height 2 cone.
	inv := 1 / math32.Sqrt(5)
	for j := 0; j < segments; j++ {
		a0 := 2 * math32.Pi * float32(j) / float32(segments)
		a1 := 2 * math32.Pi * float32(j+1) / float32(segments)
		am := (a0 + a1) / 2
		s0, c0 := math32.Sincos(a0)
		s1, c1 := math32.Sincos(a1)
		sm, cm := math32.Sincos(am)
		base := m.add(
			Vertex{[3]float32{c0, s0, -1}, [3]float32{2 * c0 * inv, 2 * s0 * inv, inv}},
			Vertex{[3]float32{c1, s1, -1}, [3]float32{2 * c1 * inv, 2 * s1 * inv, inv}},
			Vertex{[3]float32{0, 0, 1}, [3]float32{2 * cm * inv, 2 * sm * inv, inv}},
		)
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	m.disk(segments, -1)
	return m
}

// disk adds a unit disk at z facing away from the origin.
func (m *Mesh) disk(segments int, z float32) {
	n := [3]float32{0, 0, z}
	center := m.add(Vertex{[3]float32{0, 0, z}, n})
	for j := 0; j <= segments; j++ {
		s, c := math32.Sincos(2 * math32.Pi * float32(j) / float32(segments))
		m.add(Vertex{[3]float32{c, s, z}, n})
	}
	for j := uint32(1); j <= uint32(segments); j++ {
		if z > 0 {
			m.Indices = append(m.Indices, center, center+j, center+j+1)
		} else {
			m.Indices = append(m.Indices, center, center+j+1, center+j)
		}
	}
}
