package material

import (
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// VolumeRaycastingMaterialOption is a function that configures a volume material during construction.
type VolumeRaycastingMaterialOption func(*volumeRaycastingMaterialImpl)

// WithSize is an option builder that sets the world-space extent of the volume.
//
// Parameters:
//   - size: the extent along x, y and z
//
// Returns:
//   - VolumeRaycastingMaterialOption: a function that applies the size option
func WithSize(size mgl32.Vec3) VolumeRaycastingMaterialOption {
	return func(m *volumeRaycastingMaterialImpl) {
		m.size = size
	}
}

// WithVolumeLightingModel is an option builder that sets the lighting model used to shade the voxels.
//
// Parameters:
//   - model: the lighting model
//
// Returns:
//   - VolumeRaycastingMaterialOption: a function that applies the lighting model option
func WithVolumeLightingModel(model light.LightingModel) VolumeRaycastingMaterialOption {
	return func(m *volumeRaycastingMaterialImpl) {
		m.lightingModel = model
	}
}
