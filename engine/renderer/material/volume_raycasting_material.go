package material

import (
	_ "embed"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/texture"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed assets/volume_raycasting_material.wgsl
var volumeRaycastingSource string

// volumeRaycastingMaterialImpl is the implementation of the VolumeRaycastingMaterial interface.
type volumeRaycastingMaterialImpl struct {
	voxels        *texture.Texture3D
	size          mgl32.Vec3
	lightingModel light.LightingModel
}

// VolumeRaycastingMaterial renders a 3-D texture by marching rays through it. It is meant for a cube mesh centered
// at the origin and scaled to Size, so the cube's fragment positions are the ray entry points. The first voxel
// with a non-zero alpha along each ray is lit with the frame's lights and blended over the scene.
//
// The voxel texture is shared: Clone returns a material referencing the same GPU texture and Release drops this
// material's reference.
type VolumeRaycastingMaterial interface {
	Material

	// Voxels returns the voxel texture handle.
	Voxels() *texture.Texture3D

	// Size returns the world-space extent of the volume.
	Size() mgl32.Vec3

	// LightingModel returns the lighting model used to shade the voxels.
	LightingModel() light.LightingModel

	// Clone returns a material sharing the voxel texture.
	//
	// Returns:
	//   - VolumeRaycastingMaterial: the new material, holding its own texture reference
	Clone() VolumeRaycastingMaterial

	// Release drops this material's texture reference. The material must not be drawn afterwards.
	Release()
}

var _ VolumeRaycastingMaterial = &volumeRaycastingMaterialImpl{}

// NewVolumeRaycastingMaterial creates a volume material that takes ownership of the voxels handle.
//
// Parameters:
//   - voxels: the voxel texture; the material releases it on Release
//   - options: functional options to configure the material
//
// Returns:
//   - VolumeRaycastingMaterial: the new material
func NewVolumeRaycastingMaterial(voxels *texture.Texture3D, options ...VolumeRaycastingMaterialOption) VolumeRaycastingMaterial {
	if voxels == nil {
		panic("material: volume raycasting material needs a voxel texture")
	}
	m := &volumeRaycastingMaterialImpl{
		voxels:        voxels,
		size:          mgl32.Vec3{1, 1, 1},
		lightingModel: light.LightingModelBlinn,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// NewVolumeRaycastingMaterialFromVoxelGrid stages a voxel grid, uploads it as a 3-D texture and creates a material
// whose size is the grid's physical size.
//
// Parameters:
//   - ctx: the GPU context used for the upload
//   - grid: the decoded voxel grid
//   - options: functional options to configure the material; the size always comes from grid
//
// Returns:
//   - VolumeRaycastingMaterial: the new material
//   - error: a staging or upload error; no material exists without its texture
func NewVolumeRaycastingMaterialFromVoxelGrid(ctx texture.Context, grid common.VoxelGrid, options ...VolumeRaycastingMaterialOption) (VolumeRaycastingMaterial, error) {
	data, err := texture.StageVoxelGrid(grid)
	if err != nil {
		return nil, fmt.Errorf("material: failed to stage voxel grid: %w", err)
	}
	voxels, err := texture.NewTexture3D(ctx, data, texture.DefaultVoxelSampler)
	if err != nil {
		return nil, fmt.Errorf("material: failed to create voxel texture: %w", err)
	}
	return NewVolumeRaycastingMaterial(voxels, append(slices.Clone(options), WithSize(grid.Size))...), nil
}

func (m *volumeRaycastingMaterialImpl) Voxels() *texture.Texture3D {
	return m.voxels
}

func (m *volumeRaycastingMaterialImpl) Size() mgl32.Vec3 {
	return m.size
}

func (m *volumeRaycastingMaterialImpl) LightingModel() light.LightingModel {
	return m.lightingModel
}

func (m *volumeRaycastingMaterialImpl) FragmentShader(lights []light.Light) shader.FragmentShader {
	return shader.FragmentShader{
		Source:     light.ShaderSource(lights, m.lightingModel) + volumeRaycastingSource,
		Attributes: shader.FragmentAttributes{Position: true},
	}
}

func (m *volumeRaycastingMaterialImpl) UseUniforms(program shader.Program, cam camera.Camera, lights []light.Light) {
	light.UseUniforms(program, lights)
	program.UseUniform("cameraPosition", cam.Position())
	program.UseUniform("size", m.size)

	densityOnly := uint32(0)
	if m.voxels.Format() == wgpu.TextureFormatR8Unorm {
		densityOnly = 1
	}
	program.UseUniform("densityOnly", densityOnly)
	program.UseTexture3D("tex", m.voxels)
}

// RenderStates culls front faces; the fragment stage marches from where the view ray enters the box.
func (m *volumeRaycastingMaterialImpl) RenderStates() RenderStates {
	return RenderStates{
		WriteMask: WriteMaskColor,
		Blend:     BlendTransparency,
		DepthTest: DepthTestLess,
		Cull:      CullFront,
	}
}

func (m *volumeRaycastingMaterialImpl) MaterialType() MaterialType {
	return MaterialTypeTransparent
}

func (m *volumeRaycastingMaterialImpl) Clone() VolumeRaycastingMaterial {
	clone := *m
	clone.voxels = m.voxels.Clone()
	return &clone
}

func (m *volumeRaycastingMaterialImpl) Release() {
	m.voxels.Release()
}
