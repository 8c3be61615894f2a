package shader

import (
	_ "embed"
	"strings"
	"text/template"
)

//go:embed assets/vertex_stage.wgsl
var vertexStageSource string

var vertexStageTemplate = template.Must(template.New("vertex_stage").Parse(vertexStageSource))

// vertexStage renders the shared vertex stage, forwarding only the attributes the fragment stage reads.
func vertexStage(attributes FragmentAttributes) string {
	var sb strings.Builder
	if err := vertexStageTemplate.Execute(&sb, attributes); err != nil {
		panic("shader: failed to render vertex stage: " + err.Error())
	}
	return sb.String()
}
