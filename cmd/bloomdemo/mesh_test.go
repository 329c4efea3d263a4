package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlane(t *testing.T) {
	m := Plane(2, 4)
	assert.Equal(t, 4, m.VertexCount())
	assert.Len(t, m.Indices, 6)
	for i := 0; i < len(m.Vertices); i += 8 {
		assert.Equal(t, float32(0), m.Vertices[i+1])
		assert.Equal(t, []float32{0, 1, 0}, m.Vertices[i+3:i+6])
	}
}

func TestBoxFacesPointOutward(t *testing.T) {
	m := Box(2, 4, 6)
	require.Equal(t, 24, m.VertexCount())
	assert.Len(t, m.Indices, 36)

	center := mgl32.Vec3{0, 2, 0}
	for i := 0; i < len(m.Vertices); i += 8 {
		pos := mgl32.Vec3{m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]}
		normal := mgl32.Vec3{m.Vertices[i+3], m.Vertices[i+4], m.Vertices[i+5]}
		assert.Greater(t, pos.Sub(center).Dot(normal), float32(0))
	}
}

func TestUvSphereIsUnit(t *testing.T) {
	m := UvSphere(8, 16)
	assert.Equal(t, 9*17, m.VertexCount())
	assert.Len(t, m.Indices, 8*16*6)
	for i := 0; i < len(m.Vertices); i += 8 {
		pos := mgl32.Vec3{m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]}
		assert.InDelta(t, 1, pos.Len(), 1e-5)
	}
	for _, idx := range m.Indices {
		assert.Less(t, int(idx), m.VertexCount())
	}
}

func TestAppendTransforms(t *testing.T) {
	combined := &MeshData{}
	combined.Append(Plane(2, 1), mgl32.Ident4())
	combined.Append(Plane(2, 1), mgl32.Translate3D(0, 5, 0).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(90))))

	require.Equal(t, 8, combined.VertexCount())
	assert.Equal(t, []uint32{4, 6, 5, 5, 6, 7}, combined.Indices[6:])

	v := combined.Vertices[4*8:]
	assert.InDelta(t, 6, v[1], 1e-4)
	assert.InDelta(t, 0, v[3], 1e-5)
	assert.InDelta(t, 0, v[4], 1e-5)
	assert.InDelta(t, 1, v[5], 1e-5)
}

func TestSkyCubeSize(t *testing.T) {
	assert.Len(t, SkyCube, 36*3)
}
