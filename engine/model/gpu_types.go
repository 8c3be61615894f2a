package model

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the byte size of one interleaved vertex, matching the VertexInput of the shared vertex stage.
const VertexStride = 32

// Vertex is one interleaved mesh vertex: position at offset 0, normal at 12 and uv at 24.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// marshalVertices serializes vertices into the byte layout the vertex buffer expects.
func marshalVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	for i, v := range vertices {
		common.PutFloat32s(buf, i*VertexStride,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
		)
	}
	return buf
}

// marshalIndices serializes indices as little-endian uint32 for wgpu.IndexFormatUint32.
func marshalIndices(indices []uint32) []byte {
	return append([]byte(nil), common.SliceToBytes(indices)...)
}
