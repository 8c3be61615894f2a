package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// FragmentAttributes selects the interpolated vertex attributes a fragment stage reads from VertexOutput:
// `in.pos` (world-space position), `in.nor` (world-space normal) and `in.uv`.
type FragmentAttributes struct {
	Position bool
	Normal   bool
	UV       bool
}

// FragmentShader is the fragment-stage WGSL a material generates, together with the attributes it reads.
// The source must define a @fragment entry point taking `in: VertexOutput`.
type FragmentShader struct {
	Source     string
	Attributes FragmentAttributes
}

// Compose prepends the shared vertex stage for the fragment's attributes to its source. The result still
// carries its @oxy: annotations; NewShader pre-processes it.
//
// Parameters:
//   - fragment: the fragment stage
//
// Returns:
//   - string: the complete WGSL program
func Compose(fragment FragmentShader) string {
	return vertexStage(fragment.Attributes) + "\n" + fragment.Source
}

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation and uniform binding.
type shader struct {
	key                string
	source             string
	attributes         FragmentAttributes
	bindGroupLayout    wgpu.BindGroupLayoutDescriptor
	bindingVarNames    map[int]string
	vertexLayouts      []wgpu.VertexBufferLayout
	vertexEntryPoint   string
	fragmentEntryPoint string
	module             *wgpu.ShaderModuleDescriptor

	pp PreProcessor
}

// Shader is a composed, pre-processed render program. It exposes the source, entry points, vertex layout and
// group 0 bind group layout needed for pipeline creation, and the uniform layout and texture bindings a Program
// writes to.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL source.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// VertexEntryPoint returns the name of the @vertex function.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	FragmentEntryPoint() string

	// VertexLayouts retrieves the vertex buffer layouts parsed from the vertex input struct.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the interleaved vertex layout
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptor retrieves the layout of bind group 0, which holds every binding of the program.
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the bind group layout descriptor
	BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name declared at a group 0 binding.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - string: the variable name, or an empty string if not found
	BindGroupVarName(binding int) string

	// UniformLayout returns the byte layout of the uniform block.
	UniformLayout() UniformLayout

	// Textures returns the texture/sampler binding pairs.
	Textures() []TextureBinding

	// Attributes returns the vertex attributes forwarded to the fragment stage.
	Attributes() FragmentAttributes

	// Declarations returns the @oxy: annotations parsed from the composed source.
	//
	// Returns:
	//   - []Annotation: the annotations in source order
	Declarations() []Annotation
}

var _ Shader = &shader{}

// NewShader composes and pre-processes a fragment stage into a Shader. A malformed fragment is a programmer error,
// so NewShader panics instead of returning it; use BuildShader for fragments assembled at runtime.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - fragment: the fragment stage
//
// Returns:
//   - Shader: the ready-to-use shader
func NewShader(key string, fragment FragmentShader) Shader {
	s, err := BuildShader(key, fragment)
	if err != nil {
		panic(fmt.Sprintf("shader: %s: %v", key, err))
	}
	return s
}

// BuildShader composes and pre-processes a fragment stage into a Shader.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - fragment: the fragment stage
//
// Returns:
//   - Shader: the ready-to-use shader
//   - error: an annotation error, or an error if an entry point is missing
func BuildShader(key string, fragment FragmentShader) (Shader, error) {
	s := &shader{
		key:        key,
		attributes: fragment.Attributes,
		pp:         NewPreProcessor(),
	}

	var err error
	s.source, err = s.pp.Process(Compose(fragment))
	if err != nil {
		return nil, fmt.Errorf("failed to pre-process shader source: %w", err)
	}
	s.vertexEntryPoint = parseEntryPoint(s.source, vertexEntryRegex)
	s.fragmentEntryPoint = parseEntryPoint(s.source, fragmentEntryRegex)
	if s.fragmentEntryPoint == "" {
		return nil, fmt.Errorf("fragment source has no @fragment entry point")
	}

	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	s.vertexLayouts = parseVertexLayout(s.source)

	groups, names := parseBindGroupLayouts(s.source, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	s.bindGroupLayout = groups[0]
	s.bindGroupLayout.Label = s.key
	s.bindingVarNames = names[0]
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayout
}

func (s *shader) BindGroupVarName(binding int) string {
	return s.bindingVarNames[binding]
}

func (s *shader) UniformLayout() UniformLayout {
	return s.pp.Layout()
}

func (s *shader) Textures() []TextureBinding {
	return s.pp.Textures()
}

func (s *shader) Attributes() FragmentAttributes {
	return s.attributes
}

func (s *shader) Declarations() []Annotation {
	return s.pp.Declarations()
}
