package model

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidMesh is returned by NewModel when the index list does not describe a triangle list over the vertices.
var ErrInvalidMesh = errors.New("invalid mesh")

// Bounds is an axis-aligned bounding box in model space.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns the radius of the sphere around Center that encloses the box.
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Len() * 0.5
}

// model is the implementation of the Model interface.
type model struct {
	name         string
	vertices     []Vertex
	indices      []uint32
	bounds       Bounds
	meshProvider bind_group_provider.BindGroupProvider

	vertexData, indexData []byte
}

// Model is an indexed triangle mesh in the shared vertex layout, plus the provider holding its GPU buffers once the
// renderer has uploaded them.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices returns the mesh vertices.
	Vertices() []Vertex

	// Indices returns the triangle list indices.
	Indices() []uint32

	// VertexData returns the raw vertex data for this model's mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw index data for this model's mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Bounds returns the model-space bounding box.
	Bounds() Bounds

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// Release frees the GPU mesh buffers. The CPU data is kept, so the model can be uploaded again.
	Release()
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
//   - error: ErrInvalidMesh if the mesh is empty, the index count is not a multiple of three or an index is out of range
func NewModel(options ...ModelBuilderOption) (Model, error) {
	m := &model{name: "model"}
	for _, opt := range options {
		opt(m)
	}

	if len(m.vertices) == 0 || len(m.indices) == 0 || len(m.indices)%3 != 0 {
		return nil, fmt.Errorf("model %q: %d vertices, %d indices: %w", m.name, len(m.vertices), len(m.indices), ErrInvalidMesh)
	}
	for _, idx := range m.indices {
		if int(idx) >= len(m.vertices) {
			return nil, fmt.Errorf("model %q: index %d out of range: %w", m.name, idx, ErrInvalidMesh)
		}
	}

	m.bounds = Bounds{Min: m.vertices[0].Position, Max: m.vertices[0].Position}
	for _, v := range m.vertices[1:] {
		for i := range 3 {
			m.bounds.Min[i] = min(m.bounds.Min[i], v.Position[i])
			m.bounds.Max[i] = max(m.bounds.Max[i], v.Position[i])
		}
	}

	m.vertexData = marshalVertices(m.vertices)
	m.indexData = marshalIndices(m.indices)
	m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name+" Mesh", bind_group_provider.WithIndexCount(len(m.indices)))
	return m, nil
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []Vertex {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) Bounds() Bounds {
	return m.bounds
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) Release() {
	m.meshProvider.Release()
	m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name+" Mesh", bind_group_provider.WithIndexCount(len(m.indices)))
}
