package gfx

// Context is the abstract Graphics Context the rendering core depends on:
// device/queue semantics for buffer/texture/sampler/bindgroup creation,
// command encoding, and frame acquire/present. The core never imports a
// concrete GPU API directly; gfxwgpu provides the reference implementation
// over cogentcore/webgpu.
type Context interface {
	CreateBuffer(desc BufferDescriptor) (Buffer, error)
	CreateBufferInit(desc BufferInitDescriptor) (Buffer, error)
	CreateTexture(desc TextureDescriptor) (Texture, error)
	CreateDepthTexture(desc DepthTextureDescriptor) (Texture, error)
	CreateSampler(desc SamplerDescriptor) (Sampler, error)
	CreateBindGroupLayout(desc BindGroupLayoutDescriptor) (BindGroupLayout, error)
	CreateBindGroup(desc BindGroupDescriptor) (BindGroup, error)
	CreateRenderPipeline(desc RenderPipelineDescriptor) (RenderPipeline, error)
	CreateShaderModule(label, wgsl string) (ShaderModule, error)
	CreateCommandEncoder(label string) (CommandEncoder, error)

	Queue() Queue

	// AcquireFrame blocks, by contract, until the next swapchain image is
	// available. It is the one suspension point the core's scheduling
	// model allows.
	AcquireFrame() (Frame, error)

	// Resize reconfigures the surface. Owners of G-buffer/depth
	// attachments must recreate them afterward.
	Resize(width, height uint32) error
	CurrentOutputSize() (width, height uint32)
}

// Queue is the device's command submission and upload surface.
type Queue interface {
	WriteBuffer(buf Buffer, offset uint64, data []byte)
	WriteTexture(tex Texture, data []byte, bytesPerRow, rowsPerImage uint32, extent Extent3D)
	Submit(cmds ...CommandBuffer)
}

// Frame wraps one acquired swapchain image.
type Frame interface {
	View() TextureView
	Present()
	// Release must be called once rendering into the frame is finished,
	// whether or not Present was called.
	Release()
}

// CommandEncoder records a sequence of GPU commands into a CommandBuffer.
type CommandEncoder interface {
	BeginRenderPass(desc RenderPassDescriptor) RenderPass
	Finish() CommandBuffer
}

// IndexFormat names the index buffer element width.
type IndexFormat int

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// RenderPass is an open render pass recording draw commands.
type RenderPass interface {
	SetPipeline(p RenderPipeline)
	SetBindGroup(index uint32, bg BindGroup)
	SetVertexBuffer(slot uint32, buf Buffer)
	SetIndexBuffer(buf Buffer, format IndexFormat)
	Draw(vertexCount, instanceCount uint32)
	DrawIndexed(indexCount, instanceCount uint32)
	End()
}

// Extent3D is a texture's dimensions.
type Extent3D struct {
	Width, Height, DepthOrArrayLayers uint32
}

// Opaque resource handles. Each carries a Label accessor purely for
// debugging/logging; all other behavior is contractually opaque to callers,
// same as the bind-group layout itself.
type (
	Buffer interface{ Label() string }
	Texture interface {
		Label() string
		CreateView() TextureView
		Size() Extent3D
	}
	TextureView     interface{ Label() string }
	Sampler         interface{ Label() string }
	BindGroupLayout interface{ Label() string }
	BindGroup       interface{ Label() string }
	RenderPipeline  interface{ Label() string }
	ShaderModule    interface{ Label() string }
	CommandBuffer   interface{ Label() string }
)
