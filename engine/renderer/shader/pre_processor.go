// pre_processor.go implements the Oxy WGSL shader pre-processor. It scans composed shader source for @oxy:
// annotations, merges the declarations of every fragment into one uniform block and one list of texture/sampler
// bindings, and prepends the generated WGSL declarations to the source.
//
// Uniforms declared by more than one fragment with the same type are merged; a conflicting type is an error.
// Annotation lines are left in place since they are WGSL comments.
package shader

import (
	"fmt"
	"strings"
)

// TextureBinding is the pair of bindings generated for a @oxy:texture3d declaration.
type TextureBinding struct {
	// Name is the texture variable; the sampler is named Name + "_sampler".
	Name string

	// TextureBinding and SamplerBinding are the @binding indices in group 0.
	TextureBinding uint32
	SamplerBinding uint32
}

// SamplerName returns the WGSL name of the sampler paired with the texture.
func (b TextureBinding) SamplerName() string {
	return b.Name + "_sampler"
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// declarations accumulates every annotation of the last Process call in source order, duplicates included.
	declarations []Annotation

	layout   UniformLayout
	textures []TextureBinding
}

// PreProcessor processes WGSL source containing @oxy: annotations into source with the uniform block and texture
// bindings declared, while collecting the layout needed to feed those bindings.
type PreProcessor interface {
	// Process pre-processes source. The previous results are reset at the start of each call.
	//
	// Parameters:
	//   - source: the WGSL source containing annotations
	//
	// Returns:
	//   - string: the source prefixed with the generated declarations
	//   - error: an error wrapping ErrUnknownAnnotation for malformed or conflicting annotations
	Process(source string) (string, error)

	// Declarations returns the annotations collected during the most recent call to Process, in source order.
	//
	// Returns:
	//   - []Annotation: the declarations collected during the last Process call
	Declarations() []Annotation

	// Layout returns the uniform block layout built by the most recent call to Process.
	//
	// Returns:
	//   - UniformLayout: the uniform layout, empty if no uniforms were declared
	Layout() UniformLayout

	// Textures returns the texture bindings built by the most recent call to Process, in declaration order.
	//
	// Returns:
	//   - []TextureBinding: the texture bindings
	Textures() []TextureBinding
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a new PreProcessor.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	p.layout = UniformLayout{}
	p.textures = nil

	var uniforms []Annotation
	seenUniforms := make(map[string]UniformType)
	seenTextures := make(map[string]bool)

	for i, line := range strings.Split(source, "\n") {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			continue
		}
		p.declarations = append(p.declarations, *a)

		switch a.Type {
		case AnnotationTypeUniform:
			if seenTextures[a.Name] {
				return "", fmt.Errorf("%w: line %d: %q is already declared as a texture", ErrUnknownAnnotation, a.Line, a.Name)
			}
			if prev, ok := seenUniforms[a.Name]; ok {
				if prev != a.Uniform {
					return "", fmt.Errorf("%w: line %d: uniform %q redeclared as %s, was %s", ErrUnknownAnnotation, a.Line, a.Name, a.Uniform, prev)
				}
				continue
			}
			seenUniforms[a.Name] = a.Uniform
			uniforms = append(uniforms, *a)
		case AnnotationTypeTexture3D:
			if _, ok := seenUniforms[a.Name]; ok {
				return "", fmt.Errorf("%w: line %d: %q is already declared as a uniform", ErrUnknownAnnotation, a.Line, a.Name)
			}
			if seenTextures[a.Name] {
				continue
			}
			seenTextures[a.Name] = true
			p.textures = append(p.textures, TextureBinding{Name: a.Name})
		}
	}

	p.layout = buildUniformLayout(uniforms)

	// binding 0 is the uniform block, when there is one
	next := uint32(0)
	if len(p.layout.Fields) > 0 {
		next = 1
	}
	var sb strings.Builder
	sb.WriteString(p.layout.wgsl())
	for i := range p.textures {
		t := &p.textures[i]
		t.TextureBinding, t.SamplerBinding = next, next+1
		next += 2
		fmt.Fprintf(&sb, "@group(0) @binding(%d) var %s: texture_3d<f32>;\n", t.TextureBinding, t.Name)
		fmt.Fprintf(&sb, "@group(0) @binding(%d) var %s: sampler;\n", t.SamplerBinding, t.SamplerName())
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(source)
	return sb.String(), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

func (p *preProcessor) Layout() UniformLayout {
	return p.layout
}

func (p *preProcessor) Textures() []TextureBinding {
	return p.textures
}
