package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexSizeMatchesStride(t *testing.T) {
	var v Vertex
	assert.Equal(t, VertexStride, v.Size())
}

func TestCubeMeshIsClosedAndOutward(t *testing.T) {
	vertices, indices := CubeMesh()
	require.Len(t, vertices, 24)
	require.Len(t, indices, 36)

	for i := 0; i < len(indices); i += 3 {
		a, b, c := vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]]
		faceNormal := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position)).Normalize()
		assert.True(t, faceNormal.ApproxEqual(a.Normal), "triangle %d winds inward", i/3)
		assert.InDelta(t, 0.5, a.Position.Dot(a.Normal), 1e-6)
	}
	for _, v := range vertices {
		for axis := range 3 {
			assert.InDelta(t, 0.5, math.Abs(float64(v.Position[axis])), 1e-6)
		}
		assert.GreaterOrEqual(t, v.UV[0], float32(0))
		assert.LessOrEqual(t, v.UV[1], float32(1))
	}
}

func TestNewCube(t *testing.T) {
	m := NewCube(WithName("volume box"))
	assert.Equal(t, "volume box", m.Name())
	assert.Equal(t, 36, m.IndexCount())
	assert.Equal(t, Bounds{Min: mgl32.Vec3{-0.5, -0.5, -0.5}, Max: mgl32.Vec3{0.5, 0.5, 0.5}}, m.Bounds())
	assert.Equal(t, mgl32.Vec3{}, m.Bounds().Center())
	assert.InDelta(t, math.Sqrt(3)/2, m.Bounds().Radius(), 1e-6)
	assert.Equal(t, "volume box Mesh", m.MeshProvider().Label())
	assert.Equal(t, 36, m.MeshProvider().IndexCount())
	assert.Len(t, m.VertexData(), 24*VertexStride)
	assert.Len(t, m.IndexData(), 36*4)
}

func TestVertexDataLayout(t *testing.T) {
	m, err := NewModel(WithMesh([]Vertex{
		{Position: mgl32.Vec3{1, 2, 3}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0.25, 0.75}},
		{}, {},
	}, []uint32{0, 1, 2}))
	require.NoError(t, err)

	data := m.VertexData()
	read := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[offset:]))
	}
	assert.Equal(t, float32(2), read(4))
	assert.Equal(t, float32(1), read(20))
	assert.Equal(t, float32(0.75), read(28))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(m.IndexData()[8:]))
}

func TestNewModelRejectsInvalidMesh(t *testing.T) {
	cases := map[string]ModelBuilderOption{
		"empty":        WithMesh(nil, nil),
		"not triangle": WithMesh(make([]Vertex, 3), []uint32{0, 1}),
		"out of range": WithMesh(make([]Vertex, 3), []uint32{0, 1, 3}),
	}
	for name, opt := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewModel(opt)
			assert.ErrorIs(t, err, ErrInvalidMesh)
		})
	}
}
