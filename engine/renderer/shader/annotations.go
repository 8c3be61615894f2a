// annotations.go defines the @oxy: annotations understood by the WGSL pre-processor. Annotations are single-line
// WGSL comments that declare the named uniforms and 3-D textures a shader fragment reads. The pre-processor gathers
// every declaration in a composed program into one uniform block and one set of texture/sampler bindings, so
// fragments authored separately (vertex stage, lighting, material) can be concatenated without binding clashes.
//
// Syntax:
//
//	//@oxy:uniform <name> <f32|i32|u32|vec3|vec4|mat4>
//	//@oxy:texture3d <name>
package shader

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// annotationPrefix is the marker that identifies an Oxy annotation within a WGSL comment line.
const annotationPrefix = "@oxy:"

// ErrUnknownAnnotation is returned for an @oxy: line whose type or arguments are not recognized.
var ErrUnknownAnnotation = errors.New("shader: unknown annotation")

// identifierRegex matches a WGSL identifier usable as a struct member or variable name.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// AnnotationTypeUniform declares a member of the program's uniform block.
	//
	// Syntax: //@oxy:uniform <name> <type>
	//
	// Example: //@oxy:uniform cameraPosition vec3
	AnnotationTypeUniform AnnotationType = "uniform"

	// AnnotationTypeTexture3D declares a 3-D float texture and a filtering sampler named <name>_sampler.
	//
	// Syntax: //@oxy:texture3d <name>
	//
	// Example: //@oxy:texture3d tex
	AnnotationTypeTexture3D AnnotationType = "texture3d"
)

// UniformType is the value type of a declared uniform.
type UniformType string

const (
	UniformTypeF32  UniformType = "f32"
	UniformTypeI32  UniformType = "i32"
	UniformTypeU32  UniformType = "u32"
	UniformTypeVec3 UniformType = "vec3"
	UniformTypeVec4 UniformType = "vec4"
	UniformTypeMat4 UniformType = "mat4"
)

// uniformWGSLTypes maps each UniformType to the WGSL type emitted in the uniform block.
var uniformWGSLTypes = map[UniformType]string{
	UniformTypeF32:  "f32",
	UniformTypeI32:  "i32",
	UniformTypeU32:  "u32",
	UniformTypeVec3: "vec3<f32>",
	UniformTypeVec4: "vec4<f32>",
	UniformTypeMat4: "mat4x4<f32>",
}

// WGSLType returns the WGSL spelling of the type, or an empty string for an unknown type.
func (t UniformType) WGSLType() string {
	return uniformWGSLTypes[t]
}

// Annotation is a single parsed @oxy: declaration.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Name is the declared uniform or texture name.
	Name string

	// Uniform is the value type for uniform annotations, empty otherwise.
	Uniform UniformType

	// Line is the 1-based line number in the source the annotation was read from.
	Line int
}

// parseAnnotation attempts to parse a single line of WGSL source as an @oxy: annotation.
//
// Parameters:
//   - line: the raw WGSL source line
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: an error wrapping ErrUnknownAnnotation if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: line %d: empty @oxy annotation", ErrUnknownAnnotation, lineNum)
	}

	switch AnnotationType(args[0]) {
	case AnnotationTypeUniform:
		if len(args) != 3 {
			return nil, fmt.Errorf("%w: line %d: @oxy:uniform requires a name and a type", ErrUnknownAnnotation, lineNum)
		}
		if !identifierRegex.MatchString(args[1]) {
			return nil, fmt.Errorf("%w: line %d: invalid uniform name %q", ErrUnknownAnnotation, lineNum, args[1])
		}
		ut := UniformType(args[2])
		if ut.WGSLType() == "" {
			return nil, fmt.Errorf("%w: line %d: unknown uniform type %q", ErrUnknownAnnotation, lineNum, args[2])
		}
		return &Annotation{Type: AnnotationTypeUniform, Name: args[1], Uniform: ut, Line: lineNum}, nil
	case AnnotationTypeTexture3D:
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: line %d: @oxy:texture3d requires exactly one name", ErrUnknownAnnotation, lineNum)
		}
		if !identifierRegex.MatchString(args[1]) {
			return nil, fmt.Errorf("%w: line %d: invalid texture name %q", ErrUnknownAnnotation, lineNum, args[1])
		}
		return &Annotation{Type: AnnotationTypeTexture3D, Name: args[1], Line: lineNum}, nil
	default:
		return nil, fmt.Errorf("%w: line %d: @oxy:%s", ErrUnknownAnnotation, lineNum, args[0])
	}
}
