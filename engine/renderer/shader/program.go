package shader

import (
	"encoding/binary"
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/texture"
	"github.com/go-gl/mathgl/mgl32"
)

// programImpl is the implementation of the Program interface.
// It stages uniform values into a byte buffer laid out like the shader's uniform block.
type programImpl struct {
	shader   Shader
	data     []byte
	textures map[string]*texture.Texture3D
}

// Program is the uniform-binding surface a material writes to before a draw. Values are staged on the CPU and the
// renderer backend copies them into the drawable's GPU buffers when the draw is submitted.
type Program interface {
	// Shader returns the shader the program stages values for.
	Shader() Shader

	// UseUniform stages a uniform value. Names the shader does not declare are ignored so that materials can bind
	// their full uniform set regardless of which lights the program was composed with.
	// Panics if value does not match the declared type.
	//
	// Parameters:
	//   - name: the uniform name
	//   - value: a float32, int32, uint32, mgl32.Vec3, mgl32.Vec4 or mgl32.Mat4
	UseUniform(name string, value any)

	// UseTexture3D binds a 3-D texture to a declared texture name. Unknown names are ignored.
	//
	// Parameters:
	//   - name: the texture name
	//   - tex: the texture handle; the program does not take a reference
	UseTexture3D(name string, tex *texture.Texture3D)

	// Requires reports whether the shader declares a uniform or texture with the given name.
	//
	// Parameters:
	//   - name: the uniform or texture name
	//
	// Returns:
	//   - bool: true if the name is declared
	Requires(name string) bool

	// Bytes returns the staged uniform block. The slice is owned by the program and overwritten by later calls.
	//
	// Returns:
	//   - []byte: UniformLayout().Size bytes
	Bytes() []byte

	// Texture returns the texture bound to name, or nil if none is bound.
	Texture(name string) *texture.Texture3D
}

var _ Program = &programImpl{}

// NewProgram creates a Program with a zeroed uniform buffer for s.
//
// Parameters:
//   - s: the shader to stage values for
//
// Returns:
//   - Program: the new program
func NewProgram(s Shader) Program {
	return &programImpl{
		shader:   s,
		data:     make([]byte, s.UniformLayout().Size),
		textures: make(map[string]*texture.Texture3D, len(s.Textures())),
	}
}

func (p *programImpl) Shader() Shader {
	return p.shader
}

func (p *programImpl) UseUniform(name string, value any) {
	field, ok := p.shader.UniformLayout().Field(name)
	if !ok {
		return
	}

	off := int(field.Offset)
	switch field.Type {
	case UniformTypeF32:
		if v, ok := value.(float32); ok {
			common.PutFloat32s(p.data, off, v)
			return
		}
	case UniformTypeI32:
		if v, ok := value.(int32); ok {
			binary.LittleEndian.PutUint32(p.data[off:], uint32(v))
			return
		}
	case UniformTypeU32:
		if v, ok := value.(uint32); ok {
			binary.LittleEndian.PutUint32(p.data[off:], v)
			return
		}
	case UniformTypeVec3:
		if v, ok := value.(mgl32.Vec3); ok {
			common.PutFloat32s(p.data, off, v[:]...)
			return
		}
	case UniformTypeVec4:
		if v, ok := value.(mgl32.Vec4); ok {
			common.PutFloat32s(p.data, off, v[:]...)
			return
		}
	case UniformTypeMat4:
		// mgl32 matrices are column-major like WGSL
		if v, ok := value.(mgl32.Mat4); ok {
			common.PutFloat32s(p.data, off, v[:]...)
			return
		}
	}
	panic(fmt.Sprintf("shader: %s: uniform %q is %s, got %T", p.shader.Key(), name, field.Type, value))
}

func (p *programImpl) UseTexture3D(name string, tex *texture.Texture3D) {
	for _, b := range p.shader.Textures() {
		if b.Name == name {
			p.textures[name] = tex
			return
		}
	}
}

func (p *programImpl) Requires(name string) bool {
	if _, ok := p.shader.UniformLayout().Field(name); ok {
		return true
	}
	for _, b := range p.shader.Textures() {
		if b.Name == name {
			return true
		}
	}
	return false
}

func (p *programImpl) Bytes() []byte {
	return p.data
}

func (p *programImpl) Texture(name string) *texture.Texture3D {
	return p.textures[name]
}
