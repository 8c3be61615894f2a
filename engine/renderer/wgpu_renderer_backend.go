package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/texture"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// ErrForeignTexture is returned by InitBindGroup for a texture that another backend uploaded.
var ErrForeignTexture = errors.New("texture was not created by this backend")

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	forceFallbackAdapter bool
	presentMode          wgpu.PresentMode
	sampleCount          MSAASampleCount
	clearColor           wgpu.Color

	// bindGroupLayouts and pipelineLayouts are shared by every pipeline of the same shader.
	bindGroupLayouts map[string]*wgpu.BindGroupLayout
	pipelineLayouts  map[string]*wgpu.PipelineLayout
	shaderModules    map[string]*wgpu.ShaderModule
	renderPipelines  []*wgpu.RenderPipeline

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ Backend = &wgpuRendererBackendImpl{}

// wgpuTexture3D is the texture.Resource of a 3-D texture uploaded by the WebGPU backend.
type wgpuTexture3D struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

func (t *wgpuTexture3D) Release() {
	if t.sampler != nil {
		t.sampler.Release()
	}
	if t.view != nil {
		t.view.Release()
	}
	if t.texture != nil {
		t.texture.Release()
	}
}

// NewWGPURendererBackend creates the WebGPU backend for a window surface and configures the surface.
//
// Parameters:
//   - surfaceDescriptor: the platform-specific surface descriptor, typically from Window.SurfaceDescriptor()
//   - width: the initial surface width in pixels
//   - height: the initial surface height in pixels
//   - options: variadic list of WGPUBackendOption functions
//
// Returns:
//   - Backend: the backend, also usable as a texture.Context
//   - error: an error if no adapter or device could be acquired
func NewWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...WGPUBackendOption) (Backend, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("wgpu backend: nil surface descriptor")
	}
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:               &sync.Mutex{},
		presentMode:      wgpu.PresentModeFifo,
		sampleCount:      MSAA4x,
		clearColor:       wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		bindGroupLayouts: make(map[string]*wgpu.BindGroupLayout),
		pipelineLayouts:  make(map[string]*wgpu.PipelineLayout),
		shaderModules:    make(map[string]*wgpu.ShaderModule),
	}
	for _, opt := range options {
		opt(b)
	}

	b.instance = wgpu.CreateInstance(nil)
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("wgpu backend: request adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "Main Device"})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("wgpu backend: request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	b.ConfigureSurface(width, height)
	return b, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	width, height = max(width, 1), max(height, 1)
	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()
	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// the render pass draws into the MSAA texture and resolves into the swapchain view
		b.msaaTexture, b.msaaTextureView = b.createTarget("MSAA Texture", width, height, count, b.surfaceFormat)
	}
	b.depthTexture, b.depthTextureView = b.createTarget("Depth Texture", width, height, count, pipeline.DepthFormat)

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    storeOp,
				ClearValue: b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

// createTarget creates a render attachment texture and its view. Failure here means the device is lost.
func (b *wgpuRendererBackendImpl) createTarget(label string, width, height int, sampleCount uint32, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.TextureView) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   sampleCount,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(fmt.Sprintf("wgpu backend: create %s: %v", label, err))
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		panic(fmt.Sprintf("wgpu backend: create %s view: %v", label, err))
	}
	return tex, view
}

func (b *wgpuRendererBackendImpl) releaseTargets() {
	for _, v := range []*wgpu.TextureView{b.msaaTextureView, b.depthTextureView} {
		if v != nil {
			v.Release()
		}
	}
	for _, t := range []*wgpu.Texture{b.msaaTexture, b.depthTexture} {
		if t != nil {
			t.Release()
		}
	}
	b.msaaTexture, b.msaaTextureView = nil, nil
	b.depthTexture, b.depthTextureView = nil, nil
}

func (b *wgpuRendererBackendImpl) CreateTexture3D(data common.Texture3DStagingData, sampler common.SamplerStagingData) (texture.Resource, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	extent := wgpu.Extent3D{
		Width:              data.Width,
		Height:             data.Height,
		DepthOrArrayLayers: data.Depth,
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         fmt.Sprintf("Volume %dx%dx%d", data.Width, data.Height, data.Depth),
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension3D,
		Size:          extent,
		Format:        data.Format,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}
	res := &wgpuTexture3D{texture: tex}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Texels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * data.BytesPerTexel,
			RowsPerImage: data.Height,
		},
		&extent,
	)

	res.view, err = tex.CreateView(&wgpu.TextureViewDescriptor{
		Label:           "Volume View",
		Format:          data.Format,
		Dimension:       wgpu.TextureViewDimension3D,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: 1,
	})
	if err != nil {
		res.Release()
		return nil, err
	}

	res.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Volume Sampler",
		AddressModeU:  common.Coalesce(sampler.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.Coalesce(sampler.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.Coalesce(sampler.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     common.Coalesce(sampler.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(sampler.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(sampler.MipmapFilter, wgpu.MipmapFilterModeNearest),
		LodMinClamp:   sampler.LodMinClamp,
		LodMaxClamp:   common.Coalesce(sampler.LodMaxClamp, 32.0),
		MaxAnisotropy: 1,
	})
	if err != nil {
		res.Release()
		return nil, err
	}
	return res, nil
}

func (b *wgpuRendererBackendImpl) RegisterPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := p.Shader()
	key := s.Key()

	module, ok := b.shaderModules[key]
	if !ok {
		var err error
		module, err = b.device.CreateShaderModule(s.Module())
		if err != nil {
			return fmt.Errorf("shader module %s: %w", key, err)
		}
		b.shaderModules[key] = module
	}

	layout, ok := b.pipelineLayouts[key]
	if !ok {
		desc := s.BindGroupLayoutDescriptor()
		bindGroupLayout, err := b.device.CreateBindGroupLayout(&desc)
		if err != nil {
			return fmt.Errorf("bind group layout %s: %w", key, err)
		}
		layout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
			Label:            key,
			BindGroupLayouts: []*wgpu.BindGroupLayout{bindGroupLayout},
		})
		if err != nil {
			bindGroupLayout.Release()
			return fmt.Errorf("pipeline layout %s: %w", key, err)
		}
		b.bindGroupLayouts[key] = bindGroupLayout
		b.pipelineLayouts[key] = layout
	}

	created, err := b.device.CreateRenderPipeline(p.RenderPipelineDescriptor(layout, module, b.surfaceFormat, uint32(b.sampleCount)))
	if err != nil {
		return err
	}
	b.renderPipelines = append(b.renderPipelines, created)
	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertexBuffer, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.queue.WriteBuffer(vertexBuffer, 0, vertexData)

	indexBuffer, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vertexBuffer.Release()
		return err
	}
	b.queue.WriteBuffer(indexBuffer, 0, indexData)

	provider.SetMesh(vertexBuffer, indexBuffer, indexCount)
	return nil
}

func (b *wgpuRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider, p pipeline.Pipeline, textures []*texture.Texture3D) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := p.Shader()
	layout, ok := b.bindGroupLayouts[s.Key()]
	if !ok {
		return fmt.Errorf("shader %s has no registered pipeline", s.Key())
	}
	if len(textures) != len(s.Textures()) {
		return fmt.Errorf("shader %s samples %d textures, got %d", s.Key(), len(s.Textures()), len(textures))
	}

	var entries []wgpu.BindGroupEntry
	uniformBuffer := provider.UniformBuffer()
	if size := s.UniformLayout().Size; size > 0 {
		if uniformBuffer == nil {
			var err error
			uniformBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: provider.Label() + " Uniform Buffer",
				Size:  size,
				Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				return err
			}
		}
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: 0,
			Buffer:  uniformBuffer,
			Offset:  0,
			Size:    wgpu.WholeSize,
		})
	}

	for i, binding := range s.Textures() {
		res, ok := textures[i].Resource().(*wgpuTexture3D)
		if !ok {
			return fmt.Errorf("%q: %w", binding.Name, ErrForeignTexture)
		}
		entries = append(entries,
			wgpu.BindGroupEntry{Binding: binding.TextureBinding, TextureView: res.view},
			wgpu.BindGroupEntry{Binding: binding.SamplerBinding, Sampler: res.sampler},
		)
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	provider.SetBindings(bindGroup, layout, uniformBuffer, textureIDs(textures))
	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.UniformBuffer()
		if buf == nil || len(w.Data) == 0 {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameEncoder = encoder
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) DrawCall(p pipeline.Pipeline, mesh, bindings bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framePass.SetPipeline(p.RenderPipeline())
	if bg := bindings.BindGroup(); bg != nil {
		b.framePass.SetBindGroup(0, bg, nil)
	}
	b.framePass.SetVertexBuffer(0, mesh.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(mesh.IndexCount()), 1, 0, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrameSurface()
		return err
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrameSurface()
}

func (b *wgpuRendererBackendImpl) releaseFrameSurface() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameSurface()
	b.releaseTargets()
	for _, rp := range b.renderPipelines {
		rp.Release()
	}
	b.renderPipelines = nil
	for key, l := range b.pipelineLayouts {
		l.Release()
		delete(b.pipelineLayouts, key)
	}
	for key, l := range b.bindGroupLayouts {
		l.Release()
		delete(b.bindGroupLayouts, key)
	}
	for key, m := range b.shaderModules {
		m.Release()
		delete(b.shaderModules, key)
	}
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func textureIDs(textures []*texture.Texture3D) []uuid.UUID {
	ids := make([]uuid.UUID, len(textures))
	for i, t := range textures {
		ids[i] = t.ID()
	}
	return ids
}
