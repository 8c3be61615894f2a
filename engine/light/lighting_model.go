package light

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed assets/phong.wgsl
var phongSource string

//go:embed assets/blinn.wgsl
var blinnSource string

//go:embed assets/cook_torrance.wgsl
var cookTorranceSource string

// LightingModel selects the BRDF the generated lighting functions evaluate per light.
type LightingModel int

const (
	// LightingModelPhong uses Lambert diffuse with Phong specular.
	LightingModelPhong LightingModel = iota

	// LightingModelBlinn uses Lambert diffuse with Blinn-Phong specular.
	LightingModelBlinn

	// LightingModelCookTorrance uses a GGX / Smith / Schlick microfacet BRDF with fixed roughness.
	LightingModelCookTorrance
)

var lightingModelNames = map[LightingModel]string{
	LightingModelPhong:        "phong",
	LightingModelBlinn:        "blinn",
	LightingModelCookTorrance: "cook_torrance",
}

func (m LightingModel) String() string {
	if name, ok := lightingModelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("LightingModel(%d)", int(m))
}

// ParseLightingModel parses a lighting model name as written in configuration files.
//
// Parameters:
//   - name: phong, blinn or cook_torrance, case-insensitive
//
// Returns:
//   - LightingModel: the parsed model
//   - error: an error if the name is unknown
func ParseLightingModel(name string) (LightingModel, error) {
	for m, n := range lightingModelNames {
		if strings.EqualFold(n, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("light: unknown lighting model %q", name)
}

// brdfSource returns the WGSL `brdf` function for the model. Unknown models fall back to Blinn.
func (m LightingModel) brdfSource() string {
	switch m {
	case LightingModelPhong:
		return phongSource
	case LightingModelCookTorrance:
		return cookTorranceSource
	default:
		return blinnSource
	}
}
