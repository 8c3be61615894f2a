package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, states material.RenderStates, opts ...PipelineBuilderOption) Pipeline {
	t.Helper()
	m := material.NewDepthMaterial()
	s, err := shader.BuildShader("depth", m.FragmentShader(nil))
	require.NoError(t, err)
	return NewPipeline(s, states, opts...)
}

func TestNewPipelineDefaultStates(t *testing.T) {
	p := newTestPipeline(t, material.DefaultRenderStates())

	assert.Equal(t, wgpu.CompareFunctionLess, p.DepthCompare())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.Nil(t, p.BlendState())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Nil(t, p.RenderPipeline())
}

func TestNewPipelineTransparentStates(t *testing.T) {
	states := material.RenderStates{
		WriteMask: material.WriteMaskColor,
		Blend:     material.BlendTransparency,
		DepthTest: material.DepthTestLessOrEqual,
		Cull:      material.CullBack,
	}
	p := newTestPipeline(t, states)

	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionLessEqual, p.DepthCompare())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	require.NotNil(t, p.BlendState())
	assert.Equal(t, wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	}, p.BlendState().Color)
	assert.Equal(t, wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorZero,
		DstFactor: wgpu.BlendFactorOne,
		Operation: wgpu.BlendOperationAdd,
	}, p.BlendState().Alpha)
}

func TestColorWriteMaskChannels(t *testing.T) {
	assert.Equal(t, wgpu.ColorWriteMaskNone, ColorWriteMask(material.WriteMaskDepth))
	assert.Equal(t, wgpu.ColorWriteMaskRed|wgpu.ColorWriteMaskAlpha, ColorWriteMask(material.WriteMask{Red: true, Alpha: true}))
}

func TestAdditiveBlendWithoutWrites(t *testing.T) {
	states := material.RenderStates{
		WriteMask: material.WriteMaskNone,
		Blend:     material.BlendAdditive,
		DepthTest: material.DepthTestAlways,
	}
	p := newTestPipeline(t, states)

	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionAlways, p.DepthCompare())
	assert.Equal(t, wgpu.ColorWriteMaskNone, p.WriteMask())
	require.NotNil(t, p.BlendState())
	additive := wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOne,
		Operation: wgpu.BlendOperationAdd,
	}
	assert.Equal(t, additive, p.BlendState().Color)
	assert.Equal(t, additive, p.BlendState().Alpha)
}

func TestCompareFunctionCoversEveryTest(t *testing.T) {
	for test := material.DepthTestNever; test <= material.DepthTestAlways; test++ {
		_, ok := compareFunctions[test]
		assert.True(t, ok, "depth test %d", test)
	}
	assert.Equal(t, wgpu.CompareFunctionNever, CompareFunction(material.DepthTestNever))
	assert.Equal(t, wgpu.CompareFunctionLess, CompareFunction(material.DepthTest(99)))
}

func TestPipelineKeyDependsOnStates(t *testing.T) {
	opaque := newTestPipeline(t, material.DefaultRenderStates())
	states := material.DefaultRenderStates()
	states.Cull = material.CullFront
	culled := newTestPipeline(t, states)

	assert.NotEqual(t, opaque.PipelineKey(), culled.PipelineKey())
	assert.Equal(t, opaque.PipelineKey(), newTestPipeline(t, material.DefaultRenderStates()).PipelineKey())
}

func TestRenderPipelineDescriptor(t *testing.T) {
	p := newTestPipeline(t, material.DefaultRenderStates(), WithDepthBias(2, 1.5), WithFrontFace(wgpu.FrontFaceCW))
	desc := p.RenderPipelineDescriptor(nil, nil, wgpu.TextureFormatBGRA8Unorm, 0)

	assert.Equal(t, "vs_main", desc.Vertex.EntryPoint)
	assert.Equal(t, "fs_main", desc.Fragment.EntryPoint)
	require.Len(t, desc.Vertex.Buffers, 1)
	assert.Equal(t, uint64(32), desc.Vertex.Buffers[0].ArrayStride)
	require.Len(t, desc.Fragment.Targets, 1)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, desc.Fragment.Targets[0].Format)
	assert.Equal(t, uint32(1), desc.Multisample.Count)
	assert.Equal(t, wgpu.FrontFaceCW, desc.Primitive.FrontFace)
	assert.Equal(t, DepthFormat, desc.DepthStencil.Format)
	assert.Equal(t, int32(2), desc.DepthStencil.DepthBias)
	assert.Equal(t, float32(1.5), desc.DepthStencil.DepthBiasSlopeScale)
}
