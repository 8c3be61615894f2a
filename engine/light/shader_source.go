package light

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
)

//go:embed assets/lights.wgsl
var lightsTemplateSource string

var lightsTemplate = template.Must(template.New("lights").Parse(lightsTemplateSource))

// ShaderSource builds the lighting fragment for a light list: the model's BRDF, one calculate_lighting_<i>
// function per light and a calculate_lighting function summing them. With no lights, calculate_lighting returns
// the surface color unchanged.
//
// Parameters:
//   - lights: the frame's lights, in binding order
//   - model: the lighting model
//
// Returns:
//   - string: the WGSL source, to be prepended to a material's fragment source
func ShaderSource(lights []Light, model LightingModel) string {
	var sb strings.Builder
	sb.WriteString(model.brdfSource())
	executeLightTemplate(&sb, "common", nil)

	indices := make([]int, len(lights))
	for i, l := range lights {
		indices[i] = i
		sb.WriteString(l.ShaderSource(i))
	}
	executeLightTemplate(&sb, "sum", indices)
	return sb.String()
}

// UseUniforms binds the uniforms of every light in the list.
//
// Parameters:
//   - program: the program to bind to
//   - lights: the frame's lights, in the order given to ShaderSource
func UseUniforms(program shader.Program, lights []Light) {
	for i, l := range lights {
		l.UseUniforms(program, i)
	}
}

// renderLightSource renders the per-light function for a built-in light type.
func renderLightSource(t LightType, index int) string {
	var sb strings.Builder
	executeLightTemplate(&sb, t.String(), index)
	return sb.String()
}

func executeLightTemplate(sb *strings.Builder, name string, data any) {
	if err := lightsTemplate.ExecuteTemplate(sb, name, data); err != nil {
		panic("light: failed to render " + name + " source: " + err.Error())
	}
}
