package material

import (
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
)

// depthFragmentSource writes nothing; only the depth of the rasterized fragment reaches the target.
const depthFragmentSource = `
@fragment
fn fs_main() {}
`

// depthMaterial writes depth only. It is used for depth pre-passes and shadow maps.
type depthMaterial struct{}

var _ Material = depthMaterial{}

// NewDepthMaterial creates a material that writes depth and no color.
//
// Returns:
//   - Material: the depth material
func NewDepthMaterial() Material {
	return depthMaterial{}
}

func (depthMaterial) FragmentShader([]light.Light) shader.FragmentShader {
	return shader.FragmentShader{Source: depthFragmentSource}
}

func (depthMaterial) UseUniforms(shader.Program, camera.Camera, []light.Light) {}

func (depthMaterial) RenderStates() RenderStates {
	states := DefaultRenderStates()
	states.WriteMask = WriteMaskDepth
	return states
}

func (depthMaterial) MaterialType() MaterialType {
	return MaterialTypeOpaque
}
