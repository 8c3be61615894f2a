package model

import "github.com/go-gl/mathgl/mgl32"

// cubeFaces lists each face of the unit cube as its normal and the two in-plane axes u and v, with u x v = normal.
var cubeFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// CubeMesh returns a unit cube centered on the origin, spanning [-0.5, 0.5] on every axis, with four vertices per
// face so every face has a flat normal.
//
// Returns:
//   - []Vertex: 24 vertices
//   - []uint32: 36 indices, counter-clockwise when seen from outside
func CubeMesh() ([]Vertex, []uint32) {
	corners := [4]mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, face := range cubeFaces {
		n, u, v := face[0], face[1], face[2]
		base := uint32(len(vertices))
		for _, c := range corners {
			vertices = append(vertices, Vertex{
				Position: n.Add(u.Mul(c[0])).Add(v.Mul(c[1])).Mul(0.5),
				Normal:   n,
				UV:       mgl32.Vec2{(c[0] + 1) * 0.5, (c[1] + 1) * 0.5},
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

// NewCube creates a Model holding CubeMesh.
//
// Parameters:
//   - options: additional options, e.g. WithName
//
// Returns:
//   - Model: the cube model
func NewCube(options ...ModelBuilderOption) Model {
	vertices, indices := CubeMesh()
	m, err := NewModel(append([]ModelBuilderOption{WithName("cube"), WithMesh(vertices, indices)}, options...)...)
	if err != nil {
		panic(err)
	}
	return m
}
