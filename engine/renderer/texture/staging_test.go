package texture

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageVoxelGridDensity(t *testing.T) {
	samples := make([]float32, 4*3*5)
	for i := range samples {
		samples[i] = float32(i) / float32(len(samples)-1)
	}
	grid := common.VoxelGrid{Width: 4, Height: 3, Depth: 5, Samples: samples, Size: mgl32.Vec3{1, 1, 1}}

	data, err := StageVoxelGrid(grid, WithWorkers(3))
	require.NoError(t, err)
	assert.Equal(t, wgpu.TextureFormatR8Unorm, data.Format)
	assert.Equal(t, uint32(1), data.BytesPerTexel)
	require.Len(t, data.Texels, len(samples))
	assert.Equal(t, byte(0), data.Texels[0])
	assert.Equal(t, byte(255), data.Texels[len(samples)-1])
	for i := 1; i < len(samples); i++ {
		assert.GreaterOrEqual(t, data.Texels[i], data.Texels[i-1])
	}
}

func TestStageVoxelGridClampsSamples(t *testing.T) {
	grid := common.VoxelGrid{Width: 2, Height: 2, Depth: 1, Samples: []float32{-1, 0.5, 2, float32(math.NaN())}}

	data, err := StageVoxelGrid(grid)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 128, 255, 0}, data.Texels)
}

func TestStageVoxelGridRGBA(t *testing.T) {
	grid := common.VoxelGrid{
		Width: 1, Height: 1, Depth: 2,
		Format:  common.VoxelFormatRGBA,
		Samples: []float32{1, 0, 0, 1, 0, 1, 0, 0.5},
	}

	data, err := StageVoxelGrid(grid, WithWorkers(0))
	require.NoError(t, err)
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, data.Format)
	assert.Equal(t, uint32(4), data.BytesPerTexel)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 255, 0, 128}, data.Texels)
}

func TestStageVoxelGridRejectsMalformedGrids(t *testing.T) {
	_, err := StageVoxelGrid(common.VoxelGrid{Width: 0, Height: 1, Depth: 1})
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = StageVoxelGrid(common.VoxelGrid{Width: 2, Height: 2, Depth: 2, Samples: make([]float32, 7)})
	assert.ErrorIs(t, err, ErrGridSizeMismatch)

	_, err = StageVoxelGrid(common.VoxelGrid{Width: 1, Height: 1, Depth: 1, Format: common.VoxelFormatRGBA, Samples: []float32{1}})
	assert.ErrorIs(t, err, ErrGridSizeMismatch)
}
