// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Viewport is a pixel rectangle of the render target.
type Viewport struct {
	// X and Y are the offset of the lower left corner in pixels.
	X, Y int
	// Width and Height are the size of the rectangle in pixels.
	Width, Height uint32
}

// NewViewportAtOrigo creates a viewport with its corner at (0, 0).
func NewViewportAtOrigo(width, height uint32) Viewport {
	return Viewport{Width: width, Height: height}
}

// Aspect returns width / height, or 1 if the viewport has no height.
//
// Returns:
//   - float32: the aspect ratio
func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// VoxelFormat identifies the layout of the samples in a VoxelGrid.
type VoxelFormat int

const (
	// VoxelFormatDensity stores one density sample per voxel.
	VoxelFormatDensity VoxelFormat = iota

	// VoxelFormatRGBA stores four color samples (r, g, b, a) per voxel.
	VoxelFormatRGBA
)

// Channels returns the number of float samples stored per voxel for this format.
func (f VoxelFormat) Channels() int {
	if f == VoxelFormatRGBA {
		return 4
	}
	return 1
}

// VoxelGrid is a decoded dense 3-D array of samples plus the physical extent it covers.
// Samples are stored x-fastest, then y, then z. Sample values are expected in [0, 1].
type VoxelGrid struct {
	// Width, Height and Depth are the number of voxels along x, y and z.
	Width, Height, Depth uint32

	// Format describes how many samples make up one voxel.
	Format VoxelFormat

	// Samples holds Width*Height*Depth*Format.Channels() values.
	Samples []float32

	// Size is the world-space extent of the grid.
	Size mgl32.Vec3
}

// Texture3DStagingData holds texel bytes for a 3-D texture pending GPU upload.
type Texture3DStagingData struct {
	// Texels is the byte slice of texel data, one slice after the other.
	Texels []byte
	// Width, Height and Depth are the texture dimensions in texels.
	Width, Height, Depth uint32
	// Format is the GPU texel format of Texels.
	Format wgpu.TextureFormat
	// BytesPerTexel is the size of one texel in Texels.
	BytesPerTexel uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// This is primarily used in the BindGroupProvider to stage sampler data before creating the GPU sampler and bind group.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
}
