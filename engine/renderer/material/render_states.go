package material

// WriteMask selects which channels of the color target and whether the depth buffer are written.
type WriteMask struct {
	Red, Green, Blue, Alpha bool
	Depth                   bool
}

var (
	// WriteMaskColorDepth writes every color channel and depth.
	WriteMaskColorDepth = WriteMask{Red: true, Green: true, Blue: true, Alpha: true, Depth: true}

	// WriteMaskColor writes every color channel but not depth.
	WriteMaskColor = WriteMask{Red: true, Green: true, Blue: true, Alpha: true}

	// WriteMaskDepth writes depth only.
	WriteMaskDepth = WriteMask{Depth: true}

	// WriteMaskNone writes nothing.
	WriteMaskNone = WriteMask{}
)

// Color reports whether any color channel is written.
func (w WriteMask) Color() bool {
	return w.Red || w.Green || w.Blue || w.Alpha
}

// BlendFactor multiplies the source or destination term of the blend equation.
type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstColor
	BlendFactorOneMinusDstColor
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
)

// BlendOperation combines the source and destination terms of the blend equation.
type BlendOperation int

const (
	BlendOperationAdd BlendOperation = iota
	BlendOperationSubtract
	BlendOperationReverseSubtract
	BlendOperationMin
	BlendOperationMax
)

// Blend is the color blend state. The zero value disables blending.
type Blend struct {
	// Enabled turns blending on; the remaining fields are ignored when false.
	Enabled bool

	SourceRGB        BlendFactor
	SourceAlpha      BlendFactor
	DestinationRGB   BlendFactor
	DestinationAlpha BlendFactor
	RGBOperation     BlendOperation
	AlphaOperation   BlendOperation
}

var (
	// BlendNone disables blending.
	BlendNone = Blend{}

	// BlendTransparency is standard alpha blending: rgb = src.rgb*src.a + dst.rgb*(1-src.a), alpha keeps the
	// destination alpha.
	BlendTransparency = Blend{
		Enabled:          true,
		SourceRGB:        BlendFactorSrcAlpha,
		SourceAlpha:      BlendFactorZero,
		DestinationRGB:   BlendFactorOneMinusSrcAlpha,
		DestinationAlpha: BlendFactorOne,
		RGBOperation:     BlendOperationAdd,
		AlphaOperation:   BlendOperationAdd,
	}

	// BlendAdditive adds the source color to the destination.
	BlendAdditive = Blend{
		Enabled:          true,
		SourceRGB:        BlendFactorOne,
		SourceAlpha:      BlendFactorOne,
		DestinationRGB:   BlendFactorOne,
		DestinationAlpha: BlendFactorOne,
		RGBOperation:     BlendOperationAdd,
		AlphaOperation:   BlendOperationAdd,
	}
)

// DepthTest is the comparison a fragment's depth must pass against the depth buffer.
type DepthTest int

const (
	DepthTestNever DepthTest = iota
	DepthTestLess
	DepthTestEqual
	DepthTestLessOrEqual
	DepthTestGreater
	DepthTestNotEqual
	DepthTestGreaterOrEqual
	DepthTestAlways
)

// Cull selects which triangle faces are discarded.
type Cull int

const (
	CullNone Cull = iota
	CullBack
	CullFront
)

// RenderStates is the fixed pipeline state a material declares. It is declared once per material and applied
// before every draw using that material.
type RenderStates struct {
	WriteMask WriteMask
	Blend     Blend
	DepthTest DepthTest
	Cull      Cull
}

// DefaultRenderStates returns color and depth writes, no blending, depth test Less and no culling.
//
// Returns:
//   - RenderStates: the default states
func DefaultRenderStates() RenderStates {
	return RenderStates{
		WriteMask: WriteMaskColorDepth,
		Blend:     BlendNone,
		DepthTest: DepthTestLess,
		Cull:      CullNone,
	}
}
