package gfxwgpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/ashenengine/ashen/gfx"
)

func toWgpuBufferUsage(u gfx.BufferUsage) wgpu.BufferUsage {
	var out wgpu.BufferUsage
	if u&gfx.BufferUsageVertex != 0 {
		out |= wgpu.BufferUsageVertex
	}
	if u&gfx.BufferUsageIndex != 0 {
		out |= wgpu.BufferUsageIndex
	}
	if u&gfx.BufferUsageUniform != 0 {
		out |= wgpu.BufferUsageUniform
	}
	if u&gfx.BufferUsageStorage != 0 {
		out |= wgpu.BufferUsageStorage
	}
	if u&gfx.BufferUsageCopySrc != 0 {
		out |= wgpu.BufferUsageCopySrc
	}
	if u&gfx.BufferUsageCopyDst != 0 {
		out |= wgpu.BufferUsageCopyDst
	}
	return out
}

func toWgpuTextureUsage(u gfx.TextureUsage) wgpu.TextureUsage {
	var out wgpu.TextureUsage
	if u&gfx.TextureUsageCopySrc != 0 {
		out |= wgpu.TextureUsageCopySrc
	}
	if u&gfx.TextureUsageCopyDst != 0 {
		out |= wgpu.TextureUsageCopyDst
	}
	if u&gfx.TextureUsageTextureBinding != 0 {
		out |= wgpu.TextureUsageTextureBinding
	}
	if u&gfx.TextureUsageRenderAttachment != 0 {
		out |= wgpu.TextureUsageRenderAttachment
	}
	return out
}

// toWgpuFormat maps a gfx.TextureType to its wgpu format. gfx.TextureType
// has no depth member; depth formats go through toWgpuDepthFormat instead.
func toWgpuFormat(t gfx.TextureType) wgpu.TextureFormat {
	switch t {
	case gfx.RGBA32F:
		return wgpu.TextureFormatRGBA32Float
	case gfx.RGBA16F:
		return wgpu.TextureFormatRGBA16Float
	case gfx.RGBA8Unorm:
		return wgpu.TextureFormatRGBA8Unorm
	case gfx.RGBA8UnormSrgb:
		return wgpu.TextureFormatRGBA8UnormSrgb
	case gfx.R32F:
		return wgpu.TextureFormatR32Float
	case gfx.R16F:
		return wgpu.TextureFormatR16Float
	case gfx.R8Unorm:
		return wgpu.TextureFormatR8Unorm
	case gfx.R8Uint:
		return wgpu.TextureFormatR8Uint
	case gfx.R8Snorm:
		return wgpu.TextureFormatR8Snorm
	default:
		panic("gfxwgpu: unknown texture type")
	}
}

func toWgpuDepthFormat(f gfx.DepthFormat) wgpu.TextureFormat {
	switch f {
	case gfx.Depth32Float:
		return wgpu.TextureFormatDepth32Float
	default:
		panic("gfxwgpu: unknown depth format")
	}
}

func toWgpuAddressMode(m gfx.AddressMode) wgpu.AddressMode {
	switch m {
	case gfx.AddressModeRepeat:
		return wgpu.AddressModeRepeat
	case gfx.AddressModeClampToEdge:
		return wgpu.AddressModeClampToEdge
	case gfx.AddressModeMirrorRepeat:
		return wgpu.AddressModeMirrorRepeat
	default:
		return wgpu.AddressModeRepeat
	}
}

func toWgpuFilterMode(m gfx.FilterMode) wgpu.FilterMode {
	if m == gfx.FilterModeLinear {
		return wgpu.FilterModeLinear
	}
	return wgpu.FilterModeNearest
}

func toWgpuCullMode(m gfx.CullMode) wgpu.CullMode {
	switch m {
	case gfx.CullModeBack:
		return wgpu.CullModeBack
	case gfx.CullModeFront:
		return wgpu.CullModeFront
	default:
		return wgpu.CullModeNone
	}
}

func toWgpuCompare(c gfx.CompareFunction) wgpu.CompareFunction {
	switch c {
	case gfx.CompareLess:
		return wgpu.CompareFunctionLess
	case gfx.CompareLessEqual:
		return wgpu.CompareFunctionLessEqual
	default:
		return wgpu.CompareFunctionAlways
	}
}

func toWgpuVertexFormat(f gfx.VertexFormat) wgpu.VertexFormat {
	switch f {
	case gfx.VertexFormatFloat32:
		return wgpu.VertexFormatFloat32
	case gfx.VertexFormatFloat32x2:
		return wgpu.VertexFormatFloat32x2
	case gfx.VertexFormatFloat32x3:
		return wgpu.VertexFormatFloat32x3
	case gfx.VertexFormatFloat32x4:
		return wgpu.VertexFormatFloat32x4
	case gfx.VertexFormatUint32:
		return wgpu.VertexFormatUint32
	default:
		panic("gfxwgpu: unknown vertex format")
	}
}

func toWgpuLayoutEntry(e gfx.BindGroupLayoutEntry) wgpu.BindGroupLayoutEntry {
	out := wgpu.BindGroupLayoutEntry{
		Binding:    e.Binding,
		Visibility: toWgpuShaderStage(e.Visibility),
	}
	switch e.Type {
	case gfx.BindingTypeBuffer:
		out.Buffer = &wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}
	case gfx.BindingTypeTexture:
		out.Texture = &wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: wgpu.TextureViewDimension2D,
		}
	case gfx.BindingTypeSampler:
		out.Sampler = &wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering}
	}
	return out
}

func toWgpuShaderStage(v gfx.BindingVisibility) wgpu.ShaderStage {
	var out wgpu.ShaderStage
	if v&gfx.VisibilityVertex != 0 {
		out |= wgpu.ShaderStageVertex
	}
	if v&gfx.VisibilityFragment != 0 {
		out |= wgpu.ShaderStageFragment
	}
	return out
}

func toWgpuBindGroupEntry(e gfx.BindGroupEntry) wgpu.BindGroupEntry {
	out := wgpu.BindGroupEntry{Binding: e.Binding}
	if e.Resource.Buffer != nil {
		b := e.Resource.Buffer.(*buffer)
		out.Buffer = b.buf
		out.Size = wgpu.WholeSize
	}
	if e.Resource.Texture != nil {
		out.TextureView = e.Resource.Texture.(*textureView).view
	}
	if e.Resource.Sampler != nil {
		out.Sampler = e.Resource.Sampler.(*sampler).s
	}
	return out
}
