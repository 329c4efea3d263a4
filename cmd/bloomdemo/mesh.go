package main

import (
	"bloom-gl/libgl"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex layout: 3 floats position, 3 floats normal, 2 floats uv
const vertexSize = (3 + 3 + 2) * 4

type MeshData struct {
	Vertices []float32
	Indices  []uint32
}

func (m *MeshData) vertex(pos, normal mgl32.Vec3, u, v float32) uint32 {
	index := uint32(len(m.Vertices) * 4 / vertexSize)
	m.Vertices = append(m.Vertices, pos[0], pos[1], pos[2], normal[0], normal[1], normal[2], u, v)
	return index
}

func (m *MeshData) VertexCount() int {
	return len(m.Vertices) * 4 / vertexSize
}

// Append adds other transformed by model. Normals use the inverse transpose.
func (m *MeshData) Append(other *MeshData, model mgl32.Mat4) {
	normalMat := model.Mat3().Inv().Transpose()
	base := uint32(m.VertexCount())
	for i := 0; i < len(other.Vertices); i += 8 {
		v := other.Vertices[i : i+8]
		pos := model.Mul4x1(mgl32.Vec4{v[0], v[1], v[2], 1}).Vec3()
		normal := normalMat.Mul3x1(mgl32.Vec3{v[3], v[4], v[5]})
		if normal.LenSqr() > 0 {
			normal = normal.Normalize()
		}
		m.Vertices = append(m.Vertices, pos[0], pos[1], pos[2], normal[0], normal[1], normal[2], v[6], v[7])
	}
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// A--B
// |  |
// C--D
func (m *MeshData) quad(a, b, c, d, normal mgl32.Vec3, uvScale float32) {
	ia := m.vertex(a, normal, 0, uvScale)
	ib := m.vertex(b, normal, uvScale, uvScale)
	ic := m.vertex(c, normal, 0, 0)
	id := m.vertex(d, normal, uvScale, 0)
	m.Indices = append(m.Indices, ia, ic, ib, ib, ic, id)
}

// Plane builds a y-up square of the given size centered at the origin.
func Plane(size, uvScale float32) *MeshData {
	h := size / 2
	m := &MeshData{}
	m.quad(
		mgl32.Vec3{-h, 0, -h}, mgl32.Vec3{h, 0, -h},
		mgl32.Vec3{-h, 0, h}, mgl32.Vec3{h, 0, h},
		mgl32.Vec3{0, 1, 0}, uvScale,
	)
	return m
}

// Box builds an axis aligned box with the given extents whose bottom face lies at y=0.
func Box(width, height, depth float32) *MeshData {
	x, z := width/2, depth/2
	y0, y1 := float32(0), height
	m := &MeshData{}
	// +z
	m.quad(mgl32.Vec3{-x, y1, z}, mgl32.Vec3{x, y1, z}, mgl32.Vec3{-x, y0, z}, mgl32.Vec3{x, y0, z}, mgl32.Vec3{0, 0, 1}, 1)
	// -z
	m.quad(mgl32.Vec3{x, y1, -z}, mgl32.Vec3{-x, y1, -z}, mgl32.Vec3{x, y0, -z}, mgl32.Vec3{-x, y0, -z}, mgl32.Vec3{0, 0, -1}, 1)
	// +x
	m.quad(mgl32.Vec3{x, y1, z}, mgl32.Vec3{x, y1, -z}, mgl32.Vec3{x, y0, z}, mgl32.Vec3{x, y0, -z}, mgl32.Vec3{1, 0, 0}, 1)
	// -x
	m.quad(mgl32.Vec3{-x, y1, -z}, mgl32.Vec3{-x, y1, z}, mgl32.Vec3{-x, y0, -z}, mgl32.Vec3{-x, y0, z}, mgl32.Vec3{-1, 0, 0}, 1)
	// +y
	m.quad(mgl32.Vec3{-x, y1, -z}, mgl32.Vec3{x, y1, -z}, mgl32.Vec3{-x, y1, z}, mgl32.Vec3{x, y1, z}, mgl32.Vec3{0, 1, 0}, 1)
	// -y
	m.quad(mgl32.Vec3{-x, y0, z}, mgl32.Vec3{x, y0, z}, mgl32.Vec3{-x, y0, -z}, mgl32.Vec3{x, y0, -z}, mgl32.Vec3{0, -1, 0}, 1)
	return m
}

// UvSphere builds a unit sphere centered at the origin.
func UvSphere(rings, segments int) *MeshData {
	m := &MeshData{}
	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		theta := v * math32.Pi
		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			phi := u * 2 * math32.Pi
			n := mgl32.Vec3{
				math32.Sin(theta) * math32.Cos(phi),
				math32.Cos(theta),
				math32.Sin(theta) * math32.Sin(phi),
			}
			m.vertex(n, n, u, 1-v)
		}
	}
	stride := uint32(segments + 1)
	for r := uint32(0); r < uint32(rings); r++ {
		for s := uint32(0); s < uint32(segments); s++ {
			a := r*stride + s
			b := a + stride
			m.Indices = append(m.Indices, a, a+1, b, a+1, b+1, b)
		}
	}
	return m
}

// SkyCube is the position-only cube drawn around the camera for the skybox.
var SkyCube = []float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
	-1, -1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1,
	1, -1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1,
	-1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1, 1,
	-1, 1, -1, 1, 1, -1, 1, 1, 1, 1, 1, 1, -1, 1, 1, -1, 1, -1,
	-1, -1, -1, -1, -1, 1, 1, -1, -1, 1, -1, -1, -1, -1, 1, 1, -1, 1,
}

type Mesh struct {
	vao        libgl.UnboundVertexArray
	vbo        libgl.UnboundBuffer
	ebo        libgl.UnboundBuffer
	indexCount int
}

func UploadMesh(label string, data *MeshData) *Mesh {
	vbo := libgl.NewBuffer()
	vbo.Allocate(data.Vertices, 0)
	vbo.SetDebugLabel(label)
	ebo := libgl.NewBuffer()
	ebo.Allocate(data.Indices, 0)
	ebo.SetDebugLabel(label)

	vao := libgl.NewVertexArray()
	vao.Layout(0, 0, 3, gl.FLOAT, false, 0)
	vao.Layout(0, 1, 3, gl.FLOAT, false, 3*4)
	vao.Layout(0, 2, 2, gl.FLOAT, false, 6*4)
	vao.BindBuffer(0, vbo, 0, vertexSize)
	vao.BindElementBuffer(ebo)
	vao.SetDebugLabel(label)

	return &Mesh{vao: vao, vbo: vbo, ebo: ebo, indexCount: len(data.Indices)}
}

func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, int32(m.indexCount), gl.UNSIGNED_INT, nil)
}

func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}
