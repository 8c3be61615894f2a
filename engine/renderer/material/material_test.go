package material

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResource struct {
	releases int
}

func (r *fakeResource) Release() {
	r.releases++
}

type fakeContext struct {
	resource *fakeResource
	err      error
}

func (c *fakeContext) CreateTexture3D(common.Texture3DStagingData, common.SamplerStagingData) (texture.Resource, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.resource = &fakeResource{}
	return c.resource, nil
}

func testGrid(size mgl32.Vec3) common.VoxelGrid {
	return common.VoxelGrid{
		Width: 2, Height: 2, Depth: 2,
		Format:  common.VoxelFormatDensity,
		Samples: []float32{0, 0.25, 0.5, 0.75, 1, 1, 0.5, 0},
		Size:    size,
	}
}

func testLights() [][]light.Light {
	return [][]light.Light{
		nil,
		{light.NewLight(light.LightTypeAmbient)},
		{light.NewLight(light.LightTypeDirectional), light.NewLight(light.LightTypePoint), light.NewLight(light.LightTypeSpot)},
	}
}

func newTestCamera(t *testing.T) camera.Camera {
	t.Helper()
	cam, err := camera.NewCamera(camera.WithView(mgl32.Vec3{-3, 1, 2.5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	require.NoError(t, err)
	return cam
}

func programFor(t *testing.T, m Material, lights []light.Light) shader.Program {
	t.Helper()
	s, err := shader.BuildShader("test", m.FragmentShader(lights))
	require.NoError(t, err)
	return shader.NewProgram(s)
}

func vec3Uniform(p shader.Program, name string) mgl32.Vec3 {
	f, _ := p.Shader().UniformLayout().Field(name)
	var v mgl32.Vec3
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(p.Bytes()[f.Offset+uint64(4*i):]))
	}
	return v
}

func TestDepthMaterialIsDepthOnlyAndOpaque(t *testing.T) {
	m := NewDepthMaterial()
	cam := newTestCamera(t)
	for _, lights := range testLights() {
		assert.Equal(t, WriteMaskDepth, m.RenderStates().WriteMask)
		assert.False(t, m.RenderStates().WriteMask.Color())
		assert.Equal(t, MaterialTypeOpaque, m.MaterialType())

		p := programFor(t, m, lights)
		before := append([]byte(nil), p.Bytes()...)
		m.UseUniforms(p, cam, lights)
		assert.Equal(t, before, p.Bytes())
	}
}

func TestDepthMaterialFragment(t *testing.T) {
	fs := NewDepthMaterial().FragmentShader(nil)
	assert.Equal(t, shader.FragmentAttributes{}, fs.Attributes)
	assert.Contains(t, fs.Source, "fn fs_main() {}")
}

func TestVolumeMaterialFromVoxelGridCopiesSize(t *testing.T) {
	for _, size := range []mgl32.Vec3{{1, 1, 1}, {1.5, 2.25, 0.75}, {0.1, 300, 7.3}} {
		ctx := &fakeContext{}
		m, err := NewVolumeRaycastingMaterialFromVoxelGrid(ctx, testGrid(size))
		require.NoError(t, err)
		assert.Equal(t, size, m.Size())
		assert.Equal(t, MaterialTypeTransparent, m.MaterialType())
		assert.Equal(t, light.LightingModelBlinn, m.LightingModel())

		lights := []light.Light{light.NewLight(light.LightTypeDirectional)}
		p := programFor(t, m, lights)
		m.UseUniforms(p, newTestCamera(t), lights)
		assert.Equal(t, size, vec3Uniform(p, "size"))
		assert.Equal(t, mgl32.Vec3{-3, 1, 2.5}, vec3Uniform(p, "cameraPosition"))
		assert.Same(t, m.Voxels(), p.Texture("tex"))
	}
}

func TestVolumeMaterialSizeIgnoresSizeOption(t *testing.T) {
	m, err := NewVolumeRaycastingMaterialFromVoxelGrid(&fakeContext{}, testGrid(mgl32.Vec3{2, 3, 4}),
		WithSize(mgl32.Vec3{9, 9, 9}), WithVolumeLightingModel(light.LightingModelPhong))
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{2, 3, 4}, m.Size())
	assert.Equal(t, light.LightingModelPhong, m.LightingModel())
}

func TestVolumeMaterialFromVoxelGridLeavesOptionsUntouched(t *testing.T) {
	options := make([]VolumeRaycastingMaterialOption, 1, 2)
	options[0] = WithVolumeLightingModel(light.LightingModelPhong)

	m, err := NewVolumeRaycastingMaterialFromVoxelGrid(&fakeContext{}, testGrid(mgl32.Vec3{2, 2, 2}), options...)
	require.NoError(t, err)
	assert.Equal(t, light.LightingModelPhong, m.LightingModel())
	assert.Nil(t, options[:2][1])
}

func TestVolumeMaterialConstructionFailure(t *testing.T) {
	boom := errors.New("out of memory")
	_, err := NewVolumeRaycastingMaterialFromVoxelGrid(&fakeContext{err: boom}, testGrid(mgl32.Vec3{1, 1, 1}))
	assert.ErrorIs(t, err, boom)

	grid := testGrid(mgl32.Vec3{1, 1, 1})
	grid.Samples = grid.Samples[:3]
	_, err = NewVolumeRaycastingMaterialFromVoxelGrid(&fakeContext{}, grid)
	assert.ErrorIs(t, err, texture.ErrGridSizeMismatch)

	assert.Panics(t, func() { NewVolumeRaycastingMaterial(nil) })
}

func TestVolumeMaterialRenderStates(t *testing.T) {
	m, err := NewVolumeRaycastingMaterialFromVoxelGrid(&fakeContext{}, testGrid(mgl32.Vec3{1, 1, 1}))
	require.NoError(t, err)

	states := m.RenderStates()
	assert.Equal(t, BlendTransparency, states.Blend)
	assert.False(t, states.WriteMask.Depth)
	assert.True(t, states.WriteMask.Color())
	assert.Equal(t, DepthTestLess, states.DepthTest)
	assert.Equal(t, CullFront, states.Cull, "back faces stay visible with the camera inside the volume")
}

func TestVolumeMaterialFragmentRequiresPosition(t *testing.T) {
	m, err := NewVolumeRaycastingMaterialFromVoxelGrid(&fakeContext{}, testGrid(mgl32.Vec3{1, 1, 1}))
	require.NoError(t, err)
	for _, lights := range testLights() {
		fs := m.FragmentShader(lights)
		assert.True(t, fs.Attributes.Position)
		p := programFor(t, m, lights)
		assert.True(t, p.Requires("tex"))
		assert.True(t, p.Requires("size"))
		assert.True(t, p.Requires("cameraPosition"))
	}
}

func TestVolumeMaterialCloneSharesTexture(t *testing.T) {
	ctx := &fakeContext{}
	m, err := NewVolumeRaycastingMaterialFromVoxelGrid(ctx, testGrid(mgl32.Vec3{1, 1, 1}))
	require.NoError(t, err)

	clone := m.Clone()
	assert.Equal(t, m.Voxels().ID(), clone.Voxels().ID())
	assert.Equal(t, int32(2), m.Voxels().RefCount())
	assert.Equal(t, m.Size(), clone.Size())

	m.Release()
	assert.Equal(t, 0, ctx.resource.releases)
	clone.Release()
	assert.Equal(t, 1, ctx.resource.releases)
}

func TestSurfaceMaterialClassification(t *testing.T) {
	opaque := NewSurfaceMaterial(WithName("red"), WithBaseColor(mgl32.Vec4{1, 0, 0, 1}))
	assert.Equal(t, "red", opaque.Name())
	assert.Equal(t, MaterialTypeOpaque, opaque.MaterialType())
	assert.Equal(t, BlendNone, opaque.RenderStates().Blend)
	assert.True(t, opaque.RenderStates().WriteMask.Depth)

	glass := NewSurfaceMaterial(WithBaseColor(mgl32.Vec4{1, 1, 1, 0.3}), WithLightingModel(light.LightingModelCookTorrance))
	assert.Equal(t, MaterialTypeTransparent, glass.MaterialType())
	assert.Equal(t, BlendTransparency, glass.RenderStates().Blend)
	assert.False(t, glass.RenderStates().WriteMask.Depth)
	assert.Equal(t, light.LightingModelCookTorrance, glass.LightingModel())
}

func TestSurfaceMaterialUseUniforms(t *testing.T) {
	m := NewSurfaceMaterial(WithBaseColor(mgl32.Vec4{0.2, 0.4, 0.6, 1}))
	lights := []light.Light{light.NewLight(light.LightTypePoint, light.WithPosition(mgl32.Vec3{0, 3, 0}))}
	p := programFor(t, m, lights)
	m.UseUniforms(p, newTestCamera(t), lights)

	assert.Equal(t, mgl32.Vec3{0.2, 0.4, 0.6}, vec3Uniform(p, "baseColor"))
	assert.Equal(t, mgl32.Vec3{0, 3, 0}, vec3Uniform(p, "light0_position"))
	assert.Equal(t, shader.FragmentAttributes{Position: true, Normal: true}, m.FragmentShader(nil).Attributes)
}

func TestDefaultRenderStates(t *testing.T) {
	states := DefaultRenderStates()
	assert.Equal(t, WriteMaskColorDepth, states.WriteMask)
	assert.False(t, states.Blend.Enabled)
	assert.Equal(t, DepthTestLess, states.DepthTest)
	assert.Equal(t, "transparent", MaterialTypeTransparent.String())
}
