package shader

import (
	"fmt"
	"strings"
)

// uniformStructName is the WGSL type of the generated uniform block, bound as `u`.
const (
	uniformStructName = "Uniforms"
	uniformVarName    = "u"
)

// UniformField is one member of a program's uniform block.
type UniformField struct {
	Name   string
	Type   UniformType
	Offset uint64
	Size   uint64
}

// UniformLayout is the byte layout of the generated uniform block, following the WGSL alignment rules
// for the uniform address space.
type UniformLayout struct {
	// Fields are the members in declaration order.
	Fields []UniformField

	// Size is the buffer size in bytes, rounded up to a multiple of 16.
	Size uint64
}

// Field looks up a member by name.
//
// Parameters:
//   - name: the uniform name
//
// Returns:
//   - UniformField: the member
//   - bool: false if the layout has no member with that name
func (l UniformLayout) Field(name string) (UniformField, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return UniformField{}, false
}

// buildUniformLayout assigns offsets to the uniform annotations in order.
func buildUniformLayout(uniforms []Annotation) UniformLayout {
	var layout UniformLayout
	offset := uint64(0)
	for _, a := range uniforms {
		tl := wgslPrimitiveLayoutMap[a.Uniform.WGSLType()]
		offset = roundUpAlign(tl.align, offset)
		layout.Fields = append(layout.Fields, UniformField{Name: a.Name, Type: a.Uniform, Offset: offset, Size: tl.size})
		offset += tl.size
	}
	layout.Size = roundUpAlign(16, offset)
	return layout
}

// wgsl renders the layout as the uniform struct declaration and its binding at @group(0) @binding(0).
func (l UniformLayout) wgsl() string {
	if len(l.Fields) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "struct %s {\n", uniformStructName)
	for _, f := range l.Fields {
		fmt.Fprintf(&sb, "    %s: %s,\n", f.Name, f.Type.WGSLType())
	}
	fmt.Fprintf(&sb, "}\n@group(0) @binding(0) var<uniform> %s: %s;\n", uniformVarName, uniformStructName)
	return sb.String()
}
