package gfx

// BufferUsage is a bitmask of how a buffer will be used.
type BufferUsage uint32

const (
	BufferUsageVertex BufferUsage = 1 << iota
	BufferUsageIndex
	BufferUsageUniform
	BufferUsageStorage
	BufferUsageCopySrc
	BufferUsageCopyDst
)

type BufferDescriptor struct {
	Label            string
	Size             uint64
	Usage            BufferUsage
	MappedAtCreation bool
}

type BufferInitDescriptor struct {
	Label   string
	Contents []byte
	Usage   BufferUsage
}

// AddressMode controls texture sampling outside [0,1).
type AddressMode int

const (
	AddressModeRepeat AddressMode = iota
	AddressModeClampToEdge
	AddressModeMirrorRepeat
)

// FilterMode controls minification/magnification sampling.
type FilterMode int

const (
	FilterModeNearest FilterMode = iota
	FilterModeLinear
)

type SamplerDescriptor struct {
	Label         string
	AddressModeU  AddressMode
	AddressModeV  AddressMode
	AddressModeW  AddressMode
	MagFilter     FilterMode
	MinFilter     FilterMode
}

// DefaultSamplerDescriptor is repeat addressing + nearest filtering, the
// texture pipeline's default per spec.
var DefaultSamplerDescriptor = SamplerDescriptor{
	AddressModeU: AddressModeRepeat,
	AddressModeV: AddressModeRepeat,
	AddressModeW: AddressModeRepeat,
	MagFilter:    FilterModeNearest,
	MinFilter:    FilterModeNearest,
}

type TextureUsage uint32

const (
	TextureUsageCopySrc TextureUsage = 1 << iota
	TextureUsageCopyDst
	TextureUsageTextureBinding
	TextureUsageRenderAttachment
)

type TextureDescriptor struct {
	Label     string
	Size      Extent3D
	Format    TextureType
	Usage     TextureUsage
	MipLevels uint32
}

// DepthTextureDescriptor describes a depth-attachment texture, created via
// Context.CreateDepthTexture rather than CreateTexture since its format
// lives outside TextureType's closed asset-format set.
type DepthTextureDescriptor struct {
	Label  string
	Size   Extent3D
	Format DepthFormat
}

type BindingVisibility uint32

const (
	VisibilityVertex BindingVisibility = 1 << iota
	VisibilityFragment
)

type BindingType int

const (
	BindingTypeBuffer BindingType = iota
	BindingTypeTexture
	BindingTypeSampler
)

type BindGroupLayoutEntry struct {
	Binding    uint32
	Visibility BindingVisibility
	Type       BindingType
}

type BindGroupLayoutDescriptor struct {
	Label   string
	Entries []BindGroupLayoutEntry
}

type BindGroupEntryResource struct {
	Buffer  Buffer
	Texture TextureView
	Sampler Sampler
}

type BindGroupEntry struct {
	Binding  uint32
	Resource BindGroupEntryResource
}

type BindGroupDescriptor struct {
	Label   string
	Layout  BindGroupLayout
	Entries []BindGroupEntry
}

// VertexFormat names a vertex attribute's element layout, mirroring the
// struct-tag-driven `format:"floatN"` convention used for vertex buffer
// layouts.
type VertexFormat int

const (
	VertexFormatFloat32 VertexFormat = iota
	VertexFormatFloat32x2
	VertexFormatFloat32x3
	VertexFormatFloat32x4
	VertexFormatUint32
)

type VertexAttribute struct {
	Format         VertexFormat
	Offset         uint64
	ShaderLocation uint32
}

type VertexBufferLayout struct {
	ArrayStride uint64
	Attributes  []VertexAttribute
}

type CullMode int

const (
	CullModeBack CullMode = iota
	CullModeFront
	CullModeNone
)

type CompareFunction int

const (
	CompareLess CompareFunction = iota
	CompareLessEqual
	CompareAlways
)

// DepthFormat names a depth-attachment format. It is kept separate from
// TextureType because depth buffers are never asset-backed texture content
// (spec's nine-member texture type set is closed over asset formats only).
type DepthFormat int

const (
	Depth32Float DepthFormat = iota
)

type DepthStencilState struct {
	Format       DepthFormat
	DepthWrite   bool
	DepthCompare CompareFunction
}

type RenderPipelineDescriptor struct {
	Label          string
	VertexShader   ShaderModule
	FragmentShader ShaderModule
	VertexBuffers  []VertexBufferLayout
	BindGroupLayouts []BindGroupLayout
	ColorTargets   []TextureType
	DepthStencil   *DepthStencilState
	CullMode       CullMode
}

type LoadOp int

const (
	LoadOpClear LoadOp = iota
	LoadOpLoad
)

type Color struct{ R, G, B, A float64 }

type RenderPassColorAttachment struct {
	View    TextureView
	Load    LoadOp
	Clear   Color
}

type RenderPassDepthAttachment struct {
	View       TextureView
	ClearDepth float32
	Load       LoadOp
	DepthWrite bool
}

type RenderPassDescriptor struct {
	Label              string
	ColorAttachments   []RenderPassColorAttachment
	DepthStencilAttachment *RenderPassDepthAttachment
}
