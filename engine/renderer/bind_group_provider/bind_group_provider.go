package bind_group_provider

import (
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no longer needed. They are
	// populated by the renderer backend, not by user-creation.

	// bindGroup is the GPU bind group at group 0, or nil until the backend has created it.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the layout the bind group was created against.
	bindGroupLayout *wgpu.BindGroupLayout
	// uniformBuffer receives the program's uniform block every draw.
	uniformBuffer *wgpu.Buffer
	// textureIDs are the textures, in binding order, the bind group currently references.
	textureIDs []uuid.UUID
	// bound is set once the backend has stored bindings.
	bound bool

	// vertexBuffer and indexBuffer hold mesh data for providers owned by a model.
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	// meshed is set once the backend has stored mesh buffers.
	meshed bool
	// indexCount is the number of indices for draw calls, used by the backend to issue DrawIndexed.
	indexCount int
}

// BindGroupProvider holds the GPU resources one draw needs: either the mesh buffers of a model, or the uniform
// buffer and bind group of one object drawn with one shader.
//
// Usage pattern:
//  1. The renderer creates a provider per model (mesh) and per object and shader (bindings)
//  2. The backend fills it via InitMeshBuffers / InitBindGroup
//  3. Each frame the renderer writes the program bytes to UniformBuffer through a BufferWrite
//  4. The backend binds BindGroup and the mesh buffers for the draw call
type BindGroupProvider interface {
	// Release releases any GPU resources held by this provider.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created against, or nil.
	BindGroupLayout() *wgpu.BindGroupLayout

	// UniformBuffer returns the uniform buffer at binding 0, or nil.
	UniformBuffer() *wgpu.Buffer

	// TextureIDs returns the IDs of the textures the bind group references, in binding order.
	TextureIDs() []uuid.UUID

	// Stale reports whether the bind group must be (re)created to reference the given textures.
	//
	// Parameters:
	//   - textureIDs: the IDs of the textures the next draw binds, in binding order
	//
	// Returns:
	//   - bool: true if there is no bind group yet or it references different textures
	Stale(textureIDs []uuid.UUID) bool

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// HasMesh reports whether the backend has stored mesh buffers since creation or the last Release.
	HasMesh() bool

	// SetBindings stores the bind group and what it references after GPU initialization. Previously held bind
	// group resources are released first; a nil uniform buffer keeps the current one.
	//
	// Parameters:
	//   - bg: the created bind group
	//   - bgl: the layout it was created against
	//   - uniformBuffer: the uniform buffer at binding 0
	//   - textureIDs: the referenced textures, in binding order
	SetBindings(bg *wgpu.BindGroup, bgl *wgpu.BindGroupLayout, uniformBuffer *wgpu.Buffer, textureIDs []uuid.UUID)

	// SetMesh stores the mesh buffers after creation by the backend. Previously held mesh buffers are released
	// first.
	//
	// Parameters:
	//   - vertexBuffer: the created vertex buffer
	//   - indexBuffer: the created index buffer
	//   - indexCount: the index count
	SetMesh(vertexBuffer, indexBuffer *wgpu.Buffer, indexCount int)
}

// Compile-time check that bindGroupProvider implements BindGroupProvider
var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
//
// Parameters:
//   - label: the debug label, also used for the labels of the GPU resources
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BindGroupProvider: a new instance of BindGroupProvider configured with the provided options
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{label: label}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) UniformBuffer() *wgpu.Buffer {
	return p.uniformBuffer
}

func (p *bindGroupProvider) TextureIDs() []uuid.UUID {
	return p.textureIDs
}

func (p *bindGroupProvider) Stale(textureIDs []uuid.UUID) bool {
	return !p.bound || !slices.Equal(p.textureIDs, textureIDs)
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindings(bg *wgpu.BindGroup, bgl *wgpu.BindGroupLayout, uniformBuffer *wgpu.Buffer, textureIDs []uuid.UUID) {
	if p.bindGroup != nil && p.bindGroup != bg {
		p.bindGroup.Release()
	}
	if uniformBuffer != nil {
		if p.uniformBuffer != nil && p.uniformBuffer != uniformBuffer {
			p.uniformBuffer.Release()
		}
		p.uniformBuffer = uniformBuffer
	}
	p.bindGroup = bg
	p.bindGroupLayout = bgl
	p.textureIDs = slices.Clone(textureIDs)
	p.bound = true
}

func (p *bindGroupProvider) HasMesh() bool {
	return p.meshed
}

func (p *bindGroupProvider) SetMesh(vertexBuffer, indexBuffer *wgpu.Buffer, indexCount int) {
	if p.vertexBuffer != nil && p.vertexBuffer != vertexBuffer {
		p.vertexBuffer.Release()
	}
	if p.indexBuffer != nil && p.indexBuffer != indexBuffer {
		p.indexBuffer.Release()
	}
	p.vertexBuffer = vertexBuffer
	p.indexBuffer = indexBuffer
	p.indexCount = indexCount
	p.meshed = true
}

// Release frees the bind group, uniform buffer and mesh buffers. The layout is owned by the pipeline's shader
// and is only dropped.
func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.uniformBuffer != nil {
		p.uniformBuffer.Release()
		p.uniformBuffer = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.bindGroupLayout = nil
	p.textureIDs = nil
	p.bound = false
	p.meshed = false
	p.indexCount = 0
}
