package texture

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// Resource is a GPU allocation backing one or more Texture3D handles.
type Resource interface {
	// Release frees the GPU allocation. It is called exactly once, when the last handle is released.
	Release()
}

// Context creates GPU textures. The WebGPU renderer backend implements it; tests use fakes.
type Context interface {
	// CreateTexture3D uploads texel data as a 3-D texture and creates a sampler for it.
	//
	// Parameters:
	//   - data: the staged texel bytes and dimensions
	//   - sampler: the sampler configuration
	//
	// Returns:
	//   - Resource: the GPU texture, view and sampler
	//   - error: an error if the upload fails
	CreateTexture3D(data common.Texture3DStagingData, sampler common.SamplerStagingData) (Resource, error)
}

// sharedTexture is the state shared by every handle cloned from the same upload.
type sharedTexture struct {
	id       uuid.UUID
	resource Resource
	refs     atomic.Int32

	width, height, depth uint32
	format               wgpu.TextureFormat
}

// Texture3D is a reference-counted handle to a GPU 3-D texture.
//
// Clone returns a new handle that shares the same GPU resource; the resource is released when the last handle is
// released. Each handle must be released once. The reference count is atomic, so handles may be released from any
// goroutine, but a single handle must not be used concurrently with its own Release.
type Texture3D struct {
	shared   *sharedTexture
	released atomic.Bool
}

// NewTexture3D uploads staged texel data through ctx and returns the first handle to it.
//
// Parameters:
//   - ctx: the GPU context used for the upload
//   - data: the staged texel bytes
//   - sampler: the sampler configuration
//
// Returns:
//   - *Texture3D: the handle, with a reference count of one
//   - error: an error wrapping the context's upload failure
func NewTexture3D(ctx Context, data common.Texture3DStagingData, sampler common.SamplerStagingData) (*Texture3D, error) {
	if ctx == nil {
		return nil, fmt.Errorf("texture: no context to upload %dx%dx%d texture", data.Width, data.Height, data.Depth)
	}
	res, err := ctx.CreateTexture3D(data, sampler)
	if err != nil {
		return nil, fmt.Errorf("texture: failed to upload %dx%dx%d texture: %w", data.Width, data.Height, data.Depth, err)
	}
	t := wrapResource(res, data)
	log.Printf("[Texture] uploaded %dx%dx%d texture %s (%d bytes)", data.Width, data.Height, data.Depth, t.ID(), len(data.Texels))
	return t, nil
}

// wrapResource creates the first handle for an existing resource.
func wrapResource(res Resource, data common.Texture3DStagingData) *Texture3D {
	s := &sharedTexture{
		id:       uuid.New(),
		resource: res,
		width:    data.Width,
		height:   data.Height,
		depth:    data.Depth,
		format:   data.Format,
	}
	s.refs.Store(1)
	return &Texture3D{shared: s}
}

// ID identifies the underlying GPU resource. Clones share the ID, so it can key per-texture caches such as bind groups.
func (t *Texture3D) ID() uuid.UUID {
	return t.shared.id
}

// Resource returns the GPU resource, or nil once this handle has been released.
func (t *Texture3D) Resource() Resource {
	if t.released.Load() {
		return nil
	}
	return t.shared.resource
}

// Width returns the texture width in texels.
func (t *Texture3D) Width() uint32 {
	return t.shared.width
}

// Height returns the texture height in texels.
func (t *Texture3D) Height() uint32 {
	return t.shared.height
}

// Depth returns the texture depth in texels.
func (t *Texture3D) Depth() uint32 {
	return t.shared.depth
}

// Format returns the texel format the texture was uploaded with.
func (t *Texture3D) Format() wgpu.TextureFormat {
	return t.shared.format
}

// RefCount returns the number of live handles sharing the resource.
func (t *Texture3D) RefCount() int32 {
	return t.shared.refs.Load()
}

// Released reports whether this handle has been released.
func (t *Texture3D) Released() bool {
	return t.released.Load()
}

// Clone returns a new handle to the same GPU resource and increments the reference count.
// Cloning a released handle panics, since the resource may already be gone.
//
// Returns:
//   - *Texture3D: the new handle
func (t *Texture3D) Clone() *Texture3D {
	if t.released.Load() {
		panic(fmt.Sprintf("texture: clone of released texture %s", t.shared.id))
	}
	t.shared.refs.Add(1)
	return &Texture3D{shared: t.shared}
}

// Release drops this handle. The GPU resource is released when the count reaches zero.
// Releasing the same handle again is a no-op.
func (t *Texture3D) Release() {
	if !t.released.CompareAndSwap(false, true) {
		return
	}
	if t.shared.refs.Add(-1) == 0 && t.shared.resource != nil {
		t.shared.resource.Release()
	}
}
