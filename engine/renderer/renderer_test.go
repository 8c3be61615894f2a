package renderer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/game_object"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/model"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResource struct{}

func (fakeResource) Release() {}

type fakeBackend struct {
	calls        []string
	pipelines    int
	meshInits    int
	bindingInits int
	writes       []bind_group_provider.BufferWrite
	draws        []string

	beginErr    error
	pipelineErr error
}

func (b *fakeBackend) CreateTexture3D(common.Texture3DStagingData, common.SamplerStagingData) (texture.Resource, error) {
	return fakeResource{}, nil
}

func (b *fakeBackend) ConfigureSurface(width, height int) {
	b.calls = append(b.calls, fmt.Sprintf("configure %dx%d", width, height))
}

func (b *fakeBackend) RegisterPipeline(pipeline.Pipeline) error {
	if b.pipelineErr != nil {
		return b.pipelineErr
	}
	b.pipelines++
	return nil
}

func (b *fakeBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, indexCount int) error {
	b.meshInits++
	provider.SetMesh(nil, nil, indexCount)
	return nil
}

func (b *fakeBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, _ pipeline.Pipeline, textures []*texture.Texture3D) error {
	b.bindingInits++
	provider.SetBindings(nil, nil, nil, textureIDs(textures))
	return nil
}

func (b *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.calls = append(b.calls, "write")
	b.writes = writes
}

func (b *fakeBackend) BeginFrame() error {
	if b.beginErr != nil {
		return b.beginErr
	}
	b.calls = append(b.calls, "begin")
	return nil
}

func (b *fakeBackend) DrawCall(_ pipeline.Pipeline, _, bindings bind_group_provider.BindGroupProvider) {
	b.calls = append(b.calls, "draw")
	b.draws = append(b.draws, strings.Fields(bindings.Label())[1])
}

func (b *fakeBackend) EndFrame() error {
	b.calls = append(b.calls, "end")
	return nil
}

func (b *fakeBackend) Present() {
	b.calls = append(b.calls, "present")
}

func (b *fakeBackend) Release() {}

func newTestCamera(t *testing.T) camera.Camera {
	t.Helper()
	cam, err := camera.NewCamera(camera.WithView(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	require.NoError(t, err)
	return cam
}

func object(id uint64, z float32, mat material.Material) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithID(id),
		game_object.WithModel(model.NewCube()),
		game_object.WithMaterial(mat),
		game_object.WithPosition(mgl32.Vec3{0, 0, z}),
	)
}

func opaque() material.Material {
	return material.NewSurfaceMaterial()
}

func transparent() material.Material {
	return material.NewSurfaceMaterial(material.WithBaseColor(mgl32.Vec4{1, 0, 0, 0.5}))
}

func TestRenderWithoutBackendOrCamera(t *testing.T) {
	_, err := NewRenderer(nil).Render(newTestCamera(t), nil, nil)
	assert.ErrorIs(t, err, ErrNoBackend)

	_, err = NewRenderer(&fakeBackend{}).Render(nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoCamera)
}

func TestRenderOrdersOpaqueThenTransparent(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRenderer(backend)

	objects := []game_object.GameObject{
		object(1, -4, transparent()),
		object(2, -2, opaque()),
		object(3, 3, transparent()),
		object(4, 4, opaque()),
		object(5, 0, opaque()),
	}
	stats, err := r.Render(newTestCamera(t), objects, []light.Light{light.NewLight(light.LightTypeAmbient)})
	require.NoError(t, err)

	assert.Equal(t, FrameStats{Opaque: 3, Transparent: 2}, stats)
	assert.Equal(t, 5, stats.Draws())
	assert.Equal(t, []string{"4", "5", "2", "1", "3"}, backend.draws)
	assert.Equal(t, []string{"write", "begin", "draw", "draw", "draw", "draw", "draw", "end", "present"}, backend.calls)
	require.Len(t, backend.writes, 5)
	for _, w := range backend.writes {
		assert.NotEmpty(t, w.Data)
	}
}

func TestRenderCachesShadersAndPipelines(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRenderer(backend)
	cam := newTestCamera(t)
	lights := []light.Light{light.NewLight(light.LightTypeDirectional)}

	objects := []game_object.GameObject{
		object(1, 0, opaque()),
		object(2, 1, opaque()),
		object(3, 2, transparent()),
	}
	_, err := r.Render(cam, objects, lights)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.pipelines, "one pipeline per distinct render states")
	assert.Len(t, r.Pipelines(), 2)
	assert.Equal(t, 3, backend.meshInits)
	assert.Equal(t, 3, backend.bindingInits)

	_, err = r.Render(cam, objects, lights)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.pipelines)
	assert.Equal(t, 3, backend.meshInits)
	assert.Equal(t, 3, backend.bindingInits)

	// a new light changes the composed shader
	_, err = r.Render(cam, objects, append(lights, light.NewLight(light.LightTypePoint)))
	require.NoError(t, err)
	assert.Equal(t, 4, backend.pipelines)
	assert.Equal(t, 6, backend.bindingInits)

	for key, p := range r.Pipelines() {
		assert.Same(t, p, r.Pipeline(key))
	}
}

func TestRenderSkipsAndCulls(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRenderer(backend)

	disabled := object(2, 0, opaque())
	disabled.SetEnabled(false)
	objects := []game_object.GameObject{
		object(1, 0, opaque()),
		disabled,
		game_object.NewGameObject(game_object.WithModel(model.NewCube())),
		nil,
		object(3, 50, opaque()),
	}
	stats, err := r.Render(newTestCamera(t), objects, nil)
	require.NoError(t, err)
	assert.Equal(t, FrameStats{Opaque: 1, Culled: 1, Skipped: 3}, stats)
	assert.Equal(t, []string{"1"}, backend.draws)

	backend.draws = nil
	stats, err = NewRenderer(backend, WithFrustumCulling(false)).Render(newTestCamera(t), objects, nil)
	require.NoError(t, err)
	assert.Equal(t, FrameStats{Opaque: 2, Skipped: 3}, stats)
}

func TestRenderUnboundTextureDrawsNothing(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRenderer(backend)

	grid := common.VoxelGrid{
		Width: 1, Height: 1, Depth: 1,
		Format:  common.VoxelFormatDensity,
		Samples: []float32{1},
		Size:    mgl32.Vec3{1, 1, 1},
	}
	volume, err := material.NewVolumeRaycastingMaterialFromVoxelGrid(backend, grid)
	require.NoError(t, err)
	volume.Release()

	stats, err := r.Render(newTestCamera(t), []game_object.GameObject{object(1, 0, opaque()), object(2, 0, volume)}, nil)
	assert.ErrorIs(t, err, ErrUnboundTexture)
	assert.Zero(t, stats)
	assert.NotContains(t, backend.calls, "begin")
}

func TestRenderBindsVolumeTexture(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRenderer(backend)

	grid := common.VoxelGrid{
		Width: 1, Height: 1, Depth: 1,
		Format:  common.VoxelFormatDensity,
		Samples: []float32{1},
		Size:    mgl32.Vec3{1, 1, 1},
	}
	volume, err := material.NewVolumeRaycastingMaterialFromVoxelGrid(backend, grid)
	require.NoError(t, err)
	defer volume.Release()

	stats, err := r.Render(newTestCamera(t), []game_object.GameObject{object(1, 0, volume)}, nil)
	require.NoError(t, err)
	assert.Equal(t, FrameStats{Transparent: 1}, stats)
	assert.Equal(t, 1, backend.bindingInits)
}

func TestRenderPipelineErrorDrawsNothing(t *testing.T) {
	backend := &fakeBackend{pipelineErr: errors.New("bad shader")}
	stats, err := NewRenderer(backend).Render(newTestCamera(t), []game_object.GameObject{object(1, 0, opaque())}, nil)
	assert.ErrorContains(t, err, "bad shader")
	assert.Zero(t, stats)
	assert.Empty(t, backend.calls)
}

func TestRenderBeginFrameError(t *testing.T) {
	backend := &fakeBackend{beginErr: errors.New("surface lost")}
	stats, err := NewRenderer(backend).Render(newTestCamera(t), []game_object.GameObject{object(1, 0, opaque())}, nil)
	assert.ErrorIs(t, err, backend.beginErr)
	assert.Zero(t, stats)
	assert.Empty(t, backend.draws)
}

func TestRenderPrunesBindingsOfRemovedObjects(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRenderer(backend)
	cam := newTestCamera(t)

	first, second := object(1, 0, opaque()), object(2, 1, opaque())
	_, err := r.Render(cam, []game_object.GameObject{first, second}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.bindingInits)

	_, err = r.Render(cam, []game_object.GameObject{first}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.bindingInits)

	// the second object lost its bindings while it was not drawn
	_, err = r.Render(cam, []game_object.GameObject{first, second}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, backend.bindingInits)
}

func TestRenderKeepsMeshOfCulledObject(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRenderer(backend)
	cam := newTestCamera(t)
	obj := object(1, 0, opaque())
	objects := []game_object.GameObject{obj}

	_, err := r.Render(cam, objects, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.meshInits)

	obj.SetPosition(0, 0, 1000)
	stats, err := r.Render(cam, objects, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Culled)

	obj.SetPosition(0, 0, 0)
	_, err = r.Render(cam, objects, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.meshInits)
	assert.True(t, obj.Model().MeshProvider().HasMesh())

	// a released model is uploaded again
	obj.Model().Release()
	_, err = r.Render(cam, objects, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.meshInits)
}

func TestResizeConfiguresBackend(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRenderer(backend)
	r.Resize(800, 600)
	assert.Equal(t, []string{"configure 800x600"}, backend.calls)
	assert.Same(t, backend, r.Backend())

	assert.NotPanics(t, func() { NewRenderer(nil).Resize(1, 1) })
}
