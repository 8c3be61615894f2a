package texture

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrEmptyGrid is returned when a voxel grid has a zero dimension.
	ErrEmptyGrid = errors.New("texture: voxel grid has no voxels")

	// ErrGridSizeMismatch is returned when the sample count does not match the grid dimensions and format.
	ErrGridSizeMismatch = errors.New("texture: voxel grid sample count does not match its dimensions")
)

// DefaultVoxelSampler is the sampler used for voxel textures: trilinear filtering, clamped at the volume boundary.
var DefaultVoxelSampler = common.SamplerStagingData{
	AddressModeU: wgpu.AddressModeClampToEdge,
	AddressModeV: wgpu.AddressModeClampToEdge,
	AddressModeW: wgpu.AddressModeClampToEdge,
	MagFilter:    wgpu.FilterModeLinear,
	MinFilter:    wgpu.FilterModeLinear,
	MipmapFilter: wgpu.MipmapFilterModeNearest,
	LodMinClamp:  0,
	LodMaxClamp:  32,
}

type stagingOptions struct {
	workers int
}

// StagingOption configures StageVoxelGrid.
type StagingOption func(*stagingOptions)

// WithWorkers sets the number of workers used to convert slices. Values below one use one worker.
//
// Parameters:
//   - n: worker count
//
// Returns:
//   - StagingOption: functional option to set the worker count
func WithWorkers(n int) StagingOption {
	return func(o *stagingOptions) {
		o.workers = max(n, 1)
	}
}

// StageVoxelGrid converts a voxel grid into 8-bit texel data ready for upload.
// Density grids become R8Unorm texels, RGBA grids RGBA8Unorm texels. Samples are clamped to [0, 1].
// Each z-slice is converted by its own task on a worker pool.
//
// Parameters:
//   - grid: the decoded voxel grid
//   - opts: staging options
//
// Returns:
//   - common.Texture3DStagingData: the staged texels
//   - error: ErrEmptyGrid or ErrGridSizeMismatch if the grid is malformed
func StageVoxelGrid(grid common.VoxelGrid, opts ...StagingOption) (common.Texture3DStagingData, error) {
	o := stagingOptions{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&o)
	}

	if grid.Width == 0 || grid.Height == 0 || grid.Depth == 0 {
		return common.Texture3DStagingData{}, fmt.Errorf("%w: %dx%dx%d", ErrEmptyGrid, grid.Width, grid.Height, grid.Depth)
	}
	channels := grid.Format.Channels()
	sliceLen := int(grid.Width) * int(grid.Height) * channels
	if want := sliceLen * int(grid.Depth); len(grid.Samples) != want {
		return common.Texture3DStagingData{}, fmt.Errorf("%w: got %d samples, want %d", ErrGridSizeMismatch, len(grid.Samples), want)
	}

	format := wgpu.TextureFormatR8Unorm
	if grid.Format == common.VoxelFormatRGBA {
		format = wgpu.TextureFormatRGBA8Unorm
	}
	data := common.Texture3DStagingData{
		Texels:        make([]byte, len(grid.Samples)),
		Width:         grid.Width,
		Height:        grid.Height,
		Depth:         grid.Depth,
		Format:        format,
		BytesPerTexel: uint32(channels),
	}

	pool := worker.NewDynamicWorkerPool(o.workers, 256, 1*time.Second)
	var wg sync.WaitGroup
	for z := range int(grid.Depth) {
		wg.Add(1)
		start := z * sliceLen
		pool.SubmitTask(worker.Task{
			ID: z,
			Do: func() (any, error) {
				defer wg.Done()
				quantize(data.Texels[start:start+sliceLen], grid.Samples[start:start+sliceLen])
				return nil, nil
			},
		})
	}
	wg.Wait()

	return data, nil
}

// quantize maps samples in [0, 1] to bytes in [0, 255], rounding to nearest. NaN samples become zero.
func quantize(dst []byte, src []float32) {
	for i, v := range src {
		if math.IsNaN(float64(v)) {
			dst[i] = 0
			continue
		}
		dst[i] = byte(common.Clamp(v, 0, 1)*255 + 0.5)
	}
}
