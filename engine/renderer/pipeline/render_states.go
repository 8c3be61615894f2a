package pipeline

import (
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
)

var compareFunctions = map[material.DepthTest]wgpu.CompareFunction{
	material.DepthTestNever:          wgpu.CompareFunctionNever,
	material.DepthTestLess:           wgpu.CompareFunctionLess,
	material.DepthTestEqual:          wgpu.CompareFunctionEqual,
	material.DepthTestLessOrEqual:    wgpu.CompareFunctionLessEqual,
	material.DepthTestGreater:        wgpu.CompareFunctionGreater,
	material.DepthTestNotEqual:       wgpu.CompareFunctionNotEqual,
	material.DepthTestGreaterOrEqual: wgpu.CompareFunctionGreaterEqual,
	material.DepthTestAlways:         wgpu.CompareFunctionAlways,
}

var blendFactors = map[material.BlendFactor]wgpu.BlendFactor{
	material.BlendFactorZero:             wgpu.BlendFactorZero,
	material.BlendFactorOne:              wgpu.BlendFactorOne,
	material.BlendFactorSrcColor:         wgpu.BlendFactorSrc,
	material.BlendFactorOneMinusSrcColor: wgpu.BlendFactorOneMinusSrc,
	material.BlendFactorSrcAlpha:         wgpu.BlendFactorSrcAlpha,
	material.BlendFactorOneMinusSrcAlpha: wgpu.BlendFactorOneMinusSrcAlpha,
	material.BlendFactorDstColor:         wgpu.BlendFactorDst,
	material.BlendFactorOneMinusDstColor: wgpu.BlendFactorOneMinusDst,
	material.BlendFactorDstAlpha:         wgpu.BlendFactorDstAlpha,
	material.BlendFactorOneMinusDstAlpha: wgpu.BlendFactorOneMinusDstAlpha,
}

var blendOperations = map[material.BlendOperation]wgpu.BlendOperation{
	material.BlendOperationAdd:             wgpu.BlendOperationAdd,
	material.BlendOperationSubtract:        wgpu.BlendOperationSubtract,
	material.BlendOperationReverseSubtract: wgpu.BlendOperationReverseSubtract,
	material.BlendOperationMin:             wgpu.BlendOperationMin,
	material.BlendOperationMax:             wgpu.BlendOperationMax,
}

// CompareFunction translates a depth test. Unknown values map to Less.
func CompareFunction(test material.DepthTest) wgpu.CompareFunction {
	if f, ok := compareFunctions[test]; ok {
		return f
	}
	return wgpu.CompareFunctionLess
}

// ColorWriteMask translates the color channels of a write mask. The depth toggle is carried by the depth state.
func ColorWriteMask(mask material.WriteMask) wgpu.ColorWriteMask {
	m := wgpu.ColorWriteMaskNone
	if mask.Red {
		m |= wgpu.ColorWriteMaskRed
	}
	if mask.Green {
		m |= wgpu.ColorWriteMaskGreen
	}
	if mask.Blue {
		m |= wgpu.ColorWriteMaskBlue
	}
	if mask.Alpha {
		m |= wgpu.ColorWriteMaskAlpha
	}
	return m
}

// BlendState translates a blend, returning nil when blending is disabled.
func BlendState(blend material.Blend) *wgpu.BlendState {
	if !blend.Enabled {
		return nil
	}
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: blendFactors[blend.SourceRGB],
			DstFactor: blendFactors[blend.DestinationRGB],
			Operation: blendOperations[blend.RGBOperation],
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: blendFactors[blend.SourceAlpha],
			DstFactor: blendFactors[blend.DestinationAlpha],
			Operation: blendOperations[blend.AlphaOperation],
		},
	}
}

// CullMode translates a cull setting.
func CullMode(cull material.Cull) wgpu.CullMode {
	switch cull {
	case material.CullBack:
		return wgpu.CullModeBack
	case material.CullFront:
		return wgpu.CullModeFront
	default:
		return wgpu.CullModeNone
	}
}
