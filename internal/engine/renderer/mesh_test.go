package renderer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/creature-poser/internal/shape"
)

func TestMeshesSpanUnitBox(t *testing.T) {
	for k := shape.Cube; k < shape.KindCount; k++ {
		t.Run(k.String(), func(t *testing.T) {
			m := BuildMesh(k)
			require.NotEmpty(t, m.Vertices)
			require.Zero(t, len(m.Indices)%3)

			var lo, hi [3]float32
			for _, v := range m.Vertices {
				for a := 0; a < 3; a++ {
					lo[a] = min(lo[a], v.Position[a])
					hi[a] = max(hi[a], v.Position[a])
				}
				n := v.Normal
				assert.InDelta(t, 1, math32.Sqrt(n[0]*n[0]+n[1]*n[1]+n[2]*n[2]), 1e-5)
			}
			for a := 0; a < 3; a++ {
				assert.InDelta(t, -1, lo[a], 1e-5, "axis %d", a)
				assert.InDelta(t, 1, hi[a], 1e-5, "axis %d", a)
			}
			for _, i := range m.Indices {
				assert.Less(t, int(i), len(m.Vertices))
			}
		})
	}
}

func TestCubeMeshCounts(t *testing.T) {
	m := CubeMesh()
	assert.Len(t, m.Vertices, 24)
	assert.Len(t, m.Indices, 36)
}

func TestConeTipAtPositiveZ(t *testing.T) {
	m := ConeMesh(8)
	var tips int
	for _, v := range m.Vertices {
		if v.Position[2] == 1 {
			assert.Zero(t, v.Position[0])
			assert.Zero(t, v.Position[1])
			tips++
		}
	}
	assert.Equal(t, 8, tips)
}

func TestSphereNormalsPointOutward(t *testing.T) {
	for _, v := range SphereMesh(12, 8).Vertices {
		assert.Equal(t, v.Position, v.Normal)
	}
}

func TestBuildMeshUnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() { BuildMesh(shape.Kind(9)) })
}
