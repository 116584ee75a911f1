// Package gfxwgpu is the reference Graphics Context implementation over
// cogentcore/webgpu, with window and surface creation via GLFW. It is the
// one concrete backend the engine core is exercised against; everything
// above the gfx.Context boundary never imports this package directly.
package gfxwgpu

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/ashenengine/ashen/gfx"
)

// Context is the GLFW-windowed, wgpu-backed gfx.Context implementation.
type Context struct {
	window *glfw.Window

	instance      *wgpu.Instance
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig wgpu.SurfaceConfiguration

	queueWrapper *queue
}

// NewContext creates a window of the given size and title and brings up a
// wgpu device/queue/surface against it.
func NewContext(width, height int, title string) (*Context, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("gfxwgpu: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("gfxwgpu: creating window: %w", err)
	}

	instance := wgpu.CreateInstance(nil)
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("gfxwgpu: requesting adapter: %w", err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "ashen device"})
	if err != nil {
		return nil, fmt.Errorf("gfxwgpu: requesting device: %w", err)
	}
	devQueue := device.GetQueue()

	caps := surface.GetCapabilities(adapter)
	cfg := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &cfg)

	c := &Context{
		window:        win,
		instance:      instance,
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         devQueue,
		surfaceConfig: cfg,
	}
	c.queueWrapper = &queue{q: devQueue}
	return c, nil
}

func (c *Context) Queue() gfx.Queue { return c.queueWrapper }

func (c *Context) Resize(width, height uint32) error {
	c.surfaceConfig.Width = width
	c.surfaceConfig.Height = height
	c.surface.Configure(c.adapter, c.device, &c.surfaceConfig)
	return nil
}

func (c *Context) CurrentOutputSize() (uint32, uint32) {
	return c.surfaceConfig.Width, c.surfaceConfig.Height
}

func (c *Context) AcquireFrame() (gfx.Frame, error) {
	tex, err := c.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("gfxwgpu: acquiring frame: %w", err)
	}
	view, err := tex.Texture.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("gfxwgpu: creating frame view: %w", err)
	}
	return &frame{surface: c.surface, texture: tex.Texture, view: &textureView{view}}, nil
}

func (c *Context) CreateCommandEncoder(label string) (gfx.CommandEncoder, error) {
	enc, err := c.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}
	return &commandEncoder{enc: enc}, nil
}

func (c *Context) CreateShaderModule(label, wgsl string) (gfx.ShaderModule, error) {
	m, err := c.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: wgsl},
	})
	if err != nil {
		return nil, err
	}
	return &shaderModule{label: label, module: m}, nil
}

func (c *Context) CreateBuffer(desc gfx.BufferDescriptor) (gfx.Buffer, error) {
	b, err := c.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            desc.Label,
		Size:             desc.Size,
		Usage:            toWgpuBufferUsage(desc.Usage),
		MappedAtCreation: desc.MappedAtCreation,
	})
	if err != nil {
		return nil, err
	}
	return &buffer{label: desc.Label, buf: b}, nil
}

func (c *Context) CreateBufferInit(desc gfx.BufferInitDescriptor) (gfx.Buffer, error) {
	b, err := c.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    desc.Label,
		Contents: desc.Contents,
		Usage:    toWgpuBufferUsage(desc.Usage),
	})
	if err != nil {
		return nil, err
	}
	return &buffer{label: desc.Label, buf: b}, nil
}

func (c *Context) CreateTexture(desc gfx.TextureDescriptor) (gfx.Texture, error) {
	format := toWgpuFormat(desc.Format)
	mips := desc.MipLevels
	if mips == 0 {
		mips = 1
	}
	t, err := c.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: desc.Label,
		Size: wgpu.Extent3D{
			Width:              desc.Size.Width,
			Height:             desc.Size.Height,
			DepthOrArrayLayers: max1(desc.Size.DepthOrArrayLayers),
		},
		MipLevelCount: mips,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         toWgpuTextureUsage(desc.Usage),
	})
	if err != nil {
		return nil, err
	}
	return &texture{label: desc.Label, tex: t, size: desc.Size}, nil
}

func max1(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	return v
}

func (c *Context) CreateDepthTexture(desc gfx.DepthTextureDescriptor) (gfx.Texture, error) {
	t, err := c.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: desc.Label,
		Size: wgpu.Extent3D{
			Width:              desc.Size.Width,
			Height:             desc.Size.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        toWgpuDepthFormat(desc.Format),
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, err
	}
	return &texture{label: desc.Label, tex: t, size: desc.Size}, nil
}

func (c *Context) CreateSampler(desc gfx.SamplerDescriptor) (gfx.Sampler, error) {
	s, err := c.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         desc.Label,
		AddressModeU:  toWgpuAddressMode(desc.AddressModeU),
		AddressModeV:  toWgpuAddressMode(desc.AddressModeV),
		AddressModeW:  toWgpuAddressMode(desc.AddressModeW),
		MagFilter:     toWgpuFilterMode(desc.MagFilter),
		MinFilter:     toWgpuFilterMode(desc.MinFilter),
	})
	if err != nil {
		return nil, err
	}
	return &sampler{label: desc.Label, s: s}, nil
}

func (c *Context) CreateBindGroupLayout(desc gfx.BindGroupLayoutDescriptor) (gfx.BindGroupLayout, error) {
	entries := make([]wgpu.BindGroupLayoutEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entries[i] = toWgpuLayoutEntry(e)
	}
	l, err := c.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	return &bindGroupLayout{label: desc.Label, layout: l}, nil
}

func (c *Context) CreateBindGroup(desc gfx.BindGroupDescriptor) (gfx.BindGroup, error) {
	layout, ok := desc.Layout.(*bindGroupLayout)
	if !ok {
		return nil, fmt.Errorf("gfxwgpu: bind group layout not from this backend")
	}
	entries := make([]wgpu.BindGroupEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entries[i] = toWgpuBindGroupEntry(e)
	}
	bg, err := c.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  layout.layout,
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	return &bindGroup{label: desc.Label, bg: bg}, nil
}

func (c *Context) CreateRenderPipeline(desc gfx.RenderPipelineDescriptor) (gfx.RenderPipeline, error) {
	vs, ok := desc.VertexShader.(*shaderModule)
	if !ok {
		return nil, fmt.Errorf("gfxwgpu: vertex shader not from this backend")
	}
	fs, _ := desc.FragmentShader.(*shaderModule)

	buffers := make([]wgpu.VertexBufferLayout, len(desc.VertexBuffers))
	for i, vb := range desc.VertexBuffers {
		attrs := make([]wgpu.VertexAttribute, len(vb.Attributes))
		for j, a := range vb.Attributes {
			attrs[j] = wgpu.VertexAttribute{
				Format:         toWgpuVertexFormat(a.Format),
				Offset:         a.Offset,
				ShaderLocation: a.ShaderLocation,
			}
		}
		buffers[i] = wgpu.VertexBufferLayout{
			ArrayStride: vb.ArrayStride,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  attrs,
		}
	}

	targets := make([]wgpu.ColorTargetState, len(desc.ColorTargets))
	for i, f := range desc.ColorTargets {
		targets[i] = wgpu.ColorTargetState{Format: toWgpuFormat(f), WriteMask: wgpu.ColorWriteMaskAll}
	}

	var fragment *wgpu.FragmentState
	if fs != nil {
		fragment = &wgpu.FragmentState{Module: fs.module, EntryPoint: "fs_main", Targets: targets}
	}

	var depthStencil *wgpu.DepthStencilState
	if desc.DepthStencil != nil {
		depthStencil = &wgpu.DepthStencilState{
			Format:            toWgpuDepthFormat(desc.DepthStencil.Format),
			DepthWriteEnabled: desc.DepthStencil.DepthWrite,
			DepthCompare:      toWgpuCompare(desc.DepthStencil.DepthCompare),
		}
	}

	layouts := make([]wgpu.BindGroupLayout, len(desc.BindGroupLayouts))
	for i, l := range desc.BindGroupLayouts {
		bgl, ok := l.(*bindGroupLayout)
		if !ok {
			return nil, fmt.Errorf("gfxwgpu: bind group layout %d not from this backend", i)
		}
		layouts[i] = bgl.layout
	}
	pipelineLayout, err := c.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.Label,
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return nil, fmt.Errorf("gfxwgpu: creating pipeline layout: %w", err)
	}

	p, err := c.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs.module,
			EntryPoint: "vs_main",
			Buffers:    buffers,
		},
		Fragment: fragment,
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  toWgpuCullMode(desc.CullMode),
		},
		DepthStencil: depthStencil,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}
	return &renderPipeline{label: desc.Label, pipeline: p}, nil
}
