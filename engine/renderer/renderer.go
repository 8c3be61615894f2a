// Package renderer draws game objects with their materials: it orders the frame's draws, composes and caches
// shaders and pipelines, binds the per-draw uniforms and submits through a Backend.
package renderer

import (
	"cmp"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/game_object"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/texture"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNoBackend is returned by Render when the renderer was created without a backend.
	ErrNoBackend = errors.New("renderer has no backend")

	// ErrNoCamera is returned by Render when called with a nil camera.
	ErrNoCamera = errors.New("renderer has no camera")

	// ErrUnboundTexture is returned when a material leaves a texture its shader samples unbound or released.
	ErrUnboundTexture = errors.New("texture not bound")
)

// FrameStats counts what a Render call did with the objects it was given.
type FrameStats struct {
	// Opaque and Transparent are the number of draws submitted in each pass.
	Opaque, Transparent int
	// Culled is the number of objects outside the view frustum.
	Culled int
	// Skipped is the number of disabled objects and objects without a model or material.
	Skipped int
}

// Draws returns the total number of draws submitted.
func (s FrameStats) Draws() int {
	return s.Opaque + s.Transparent
}

// bindingKey identifies the per-object bind group for one shader.
type bindingKey struct {
	objectID  uint64
	shaderKey string
}

// drawCall is one fully prepared draw.
type drawCall struct {
	pipeline pipeline.Pipeline
	mesh     bind_group_provider.BindGroupProvider
	bindings bind_group_provider.BindGroupProvider
	uniforms []byte
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend Backend

	shaderCache   map[string]shader.Shader
	pipelineCache map[string]pipeline.Pipeline
	bindings      map[bindingKey]bind_group_provider.BindGroupProvider

	frustumCulling bool
}

// Renderer draws a frame of game objects from a camera.
//
// Draw order: every opaque object front to back, then every transparent object back to front, both ordered by the
// distance from the camera position to the object's world-space center. Shaders are cached by the hash of the
// material's fragment source and pipelines by shader and render states, so materials that generate the same source
// share GPU state.
type Renderer interface {
	// Render draws objects from cam, lit by lights, and presents the frame.
	//
	// Parameters:
	//   - cam: the camera to render from
	//   - objects: the objects to draw; disabled objects and objects without a model or material are skipped
	//   - lights: the lights, in binding order, passed to every material
	//
	// Returns:
	//   - FrameStats: the draw counts of the frame
	//   - error: an error if any draw could not be prepared or the frame could not be acquired or submitted;
	//     nothing is drawn in that case
	Render(cam camera.Camera, objects []game_object.GameObject, lights []light.Light) (FrameStats, error)

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Backend returns the backend, e.g. to pass it to material constructors as their texture.Context.
	Backend() Backend

	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines returns a copy of the pipeline cache.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// Release frees every per-object bind group. Models, materials and the backend are owned by the caller.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer that submits through backend.
//
// Parameters:
//   - backend: the GPU backend; a nil backend makes every Render fail with ErrNoBackend
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backend Backend, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:             &sync.Mutex{},
		backend:        backend,
		shaderCache:    make(map[string]shader.Shader),
		pipelineCache:  make(map[string]pipeline.Pipeline),
		bindings:       make(map[bindingKey]bind_group_provider.BindGroupProvider),
		frustumCulling: true,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Backend() Backend {
	return r.backend
}

func (r *renderer) Resize(width, height int) {
	if r.backend == nil {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, v := range r.pipelineCache {
		cp[k] = v
	}
	return cp
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, b := range r.bindings {
		b.Release()
		delete(r.bindings, key)
	}
}

func (r *renderer) Render(cam camera.Camera, objects []game_object.GameObject, lights []light.Light) (FrameStats, error) {
	var stats FrameStats
	if r.backend == nil {
		return stats, ErrNoBackend
	}
	if cam == nil {
		return stats, ErrNoCamera
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	opaque, transparent := r.classify(cam, objects, &stats)
	eye := cam.Position()
	sortByDistance(eye, opaque, false)
	sortByDistance(eye, transparent, true)

	viewProjection := cam.ViewProjectionMatrix()
	used := make(map[bindingKey]struct{}, len(opaque)+len(transparent))
	draws := make([]drawCall, 0, len(opaque)+len(transparent))
	for _, obj := range slices.Concat(opaque, transparent) {
		d, err := r.prepare(obj, cam, lights, viewProjection, used)
		if err != nil {
			return FrameStats{}, fmt.Errorf("renderer: object %d: %w", obj.ID(), err)
		}
		draws = append(draws, d)
	}

	writes := make([]bind_group_provider.BufferWrite, len(draws))
	for i, d := range draws {
		writes[i] = bind_group_provider.BufferWrite{Provider: d.bindings, Data: d.uniforms}
	}
	r.backend.WriteBuffers(writes)

	if err := r.backend.BeginFrame(); err != nil {
		return FrameStats{}, fmt.Errorf("renderer: begin frame: %w", err)
	}
	for _, d := range draws {
		r.backend.DrawCall(d.pipeline, d.mesh, d.bindings)
	}
	if err := r.backend.EndFrame(); err != nil {
		return FrameStats{}, fmt.Errorf("renderer: end frame: %w", err)
	}
	r.backend.Present()

	r.prune(used)
	stats.Opaque = len(opaque)
	stats.Transparent = len(transparent)
	return stats, nil
}

// classify drops objects that cannot or need not be drawn and splits the rest by material type.
func (r *renderer) classify(cam camera.Camera, objects []game_object.GameObject, stats *FrameStats) (opaque, transparent []game_object.GameObject) {
	frustum := cam.Frustum()
	for _, obj := range objects {
		if obj == nil || !obj.Enabled() || obj.Model() == nil || obj.Material() == nil {
			stats.Skipped++
			continue
		}
		if r.frustumCulling && !frustum.ContainsSphere(obj.WorldCenter(), obj.WorldRadius()) {
			stats.Culled++
			continue
		}
		if obj.Material().MaterialType() == material.MaterialTypeTransparent {
			transparent = append(transparent, obj)
		} else {
			opaque = append(opaque, obj)
		}
	}
	return opaque, transparent
}

// sortByDistance orders objects by the distance from eye to their world-space center, nearest first unless
// farthestFirst is set. Objects at equal distance keep their input order.
func sortByDistance(eye mgl32.Vec3, objects []game_object.GameObject, farthestFirst bool) {
	distance := func(obj game_object.GameObject) float32 {
		d := obj.WorldCenter().Sub(eye)
		return d.Dot(d)
	}
	slices.SortStableFunc(objects, func(a, b game_object.GameObject) int {
		if farthestFirst {
			return cmp.Compare(distance(b), distance(a))
		}
		return cmp.Compare(distance(a), distance(b))
	})
}

// prepare resolves the shader, pipeline, mesh and bind group of one object and fills its uniform block.
func (r *renderer) prepare(obj game_object.GameObject, cam camera.Camera, lights []light.Light, viewProjection mgl32.Mat4, used map[bindingKey]struct{}) (drawCall, error) {
	mat := obj.Material()

	s, err := r.shaderFor(mat.FragmentShader(lights))
	if err != nil {
		return drawCall{}, err
	}
	p, err := r.pipelineFor(s, mat.RenderStates())
	if err != nil {
		return drawCall{}, err
	}

	mdl := obj.Model()
	mesh := mdl.MeshProvider()
	// the model owns its mesh provider, so buffers are created once and survive frames the model is not drawn
	if !mesh.HasMesh() {
		if err := r.backend.InitMeshBuffers(mesh, mdl.VertexData(), mdl.IndexData(), mdl.IndexCount()); err != nil {
			return drawCall{}, fmt.Errorf("mesh %q: %w", mdl.Name(), err)
		}
	}

	program := shader.NewProgram(s)
	program.UseUniform("viewProjection", viewProjection)
	program.UseUniform("modelMatrix", obj.ModelMatrix())
	mat.UseUniforms(program, cam, lights)

	textures := make([]*texture.Texture3D, len(s.Textures()))
	for i, binding := range s.Textures() {
		tex := program.Texture(binding.Name)
		if tex == nil || tex.Released() {
			return drawCall{}, fmt.Errorf("%q: %w", binding.Name, ErrUnboundTexture)
		}
		textures[i] = tex
	}

	key := bindingKey{objectID: obj.ID(), shaderKey: s.Key()}
	bindings, ok := r.bindings[key]
	if !ok {
		bindings = bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Object %d %s", obj.ID(), s.Key()))
		r.bindings[key] = bindings
	}
	if bindings.Stale(textureIDs(textures)) {
		if err := r.backend.InitBindGroup(bindings, p, textures); err != nil {
			return drawCall{}, fmt.Errorf("bind group: %w", err)
		}
	}
	used[key] = struct{}{}

	return drawCall{pipeline: p, mesh: mesh, bindings: bindings, uniforms: program.Bytes()}, nil
}

// shaderFor returns the cached shader for a fragment stage, composing it on first use.
func (r *renderer) shaderFor(fragment shader.FragmentShader) (shader.Shader, error) {
	key := shaderKey(fragment)
	if s, ok := r.shaderCache[key]; ok {
		return s, nil
	}
	s, err := shader.BuildShader(key, fragment)
	if err != nil {
		return nil, err
	}
	r.shaderCache[key] = s
	log.Printf("[Renderer] composed shader %s (%d uniform bytes, %d textures)", key, s.UniformLayout().Size, len(s.Textures()))
	return s, nil
}

// pipelineFor returns the cached pipeline for a shader and render states, registering it on first use.
func (r *renderer) pipelineFor(s shader.Shader, states material.RenderStates) (pipeline.Pipeline, error) {
	key := pipeline.Key(s.Key(), states)
	if p, ok := r.pipelineCache[key]; ok {
		return p, nil
	}
	p := pipeline.NewPipeline(s, states)
	if err := r.backend.RegisterPipeline(p); err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", key, err)
	}
	r.pipelineCache[key] = p
	return p, nil
}

// prune releases bind groups of objects that were not drawn this frame.
func (r *renderer) prune(used map[bindingKey]struct{}) {
	for key, b := range r.bindings {
		if _, ok := used[key]; !ok {
			b.Release()
			delete(r.bindings, key)
		}
	}
}

// shaderKey hashes everything that determines a composed shader.
func shaderKey(fragment shader.FragmentShader) string {
	h := fnv.New64a()
	h.Write([]byte(fragment.Source))
	fmt.Fprintf(h, "|%t|%t|%t", fragment.Attributes.Position, fragment.Attributes.Normal, fragment.Attributes.UV)
	return fmt.Sprintf("shader-%016x", h.Sum64())
}
