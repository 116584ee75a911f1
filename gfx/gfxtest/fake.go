// Package gfxtest is an in-memory gfx.Context used by other packages'
// tests, standing in for gfxwgpu where creating a real window/device would
// make tests depend on a GPU. It implements every method with bookkeeping
// only — no actual GPU calls.
package gfxtest

import (
	"fmt"

	"github.com/ashenengine/ashen/gfx"
)

// Context is a no-GPU gfx.Context: every Create* call allocates a small
// bookkeeping struct and returns it, so callers can assert on Buffer
// contents, which bind groups were built, and so on.
type Context struct {
	Width, Height uint32

	Buffers     []*Buffer
	Textures    []*Texture
	BindGroups  []*BindGroup
	Pipelines   []*RenderPipeline
	Submissions int
}

// New returns a fake Context sized width x height.
func New(width, height uint32) *Context {
	return &Context{Width: width, Height: height}
}

func (c *Context) CreateBuffer(desc gfx.BufferDescriptor) (gfx.Buffer, error) {
	b := &Buffer{label: desc.Label, Data: make([]byte, desc.Size)}
	c.Buffers = append(c.Buffers, b)
	return b, nil
}

func (c *Context) CreateBufferInit(desc gfx.BufferInitDescriptor) (gfx.Buffer, error) {
	b := &Buffer{label: desc.Label, Data: append([]byte(nil), desc.Contents...)}
	c.Buffers = append(c.Buffers, b)
	return b, nil
}

func (c *Context) CreateTexture(desc gfx.TextureDescriptor) (gfx.Texture, error) {
	t := &Texture{label: desc.Label, size: desc.Size, Format: desc.Format}
	c.Textures = append(c.Textures, t)
	return t, nil
}

func (c *Context) CreateDepthTexture(desc gfx.DepthTextureDescriptor) (gfx.Texture, error) {
	t := &Texture{label: desc.Label, size: desc.Size}
	c.Textures = append(c.Textures, t)
	return t, nil
}

func (c *Context) CreateSampler(desc gfx.SamplerDescriptor) (gfx.Sampler, error) {
	return &Sampler{label: desc.Label}, nil
}

func (c *Context) CreateBindGroupLayout(desc gfx.BindGroupLayoutDescriptor) (gfx.BindGroupLayout, error) {
	return &BindGroupLayout{label: desc.Label, Entries: desc.Entries}, nil
}

func (c *Context) CreateBindGroup(desc gfx.BindGroupDescriptor) (gfx.BindGroup, error) {
	bg := &BindGroup{label: desc.Label, Entries: desc.Entries}
	c.BindGroups = append(c.BindGroups, bg)
	return bg, nil
}

func (c *Context) CreateRenderPipeline(desc gfx.RenderPipelineDescriptor) (gfx.RenderPipeline, error) {
	p := &RenderPipeline{label: desc.Label}
	c.Pipelines = append(c.Pipelines, p)
	return p, nil
}

func (c *Context) CreateShaderModule(label, wgsl string) (gfx.ShaderModule, error) {
	return &ShaderModule{label: label, WGSL: wgsl}, nil
}

func (c *Context) CreateCommandEncoder(label string) (gfx.CommandEncoder, error) {
	return &CommandEncoder{label: label, ctx: c}, nil
}

func (c *Context) Queue() gfx.Queue { return &Queue{ctx: c} }

func (c *Context) AcquireFrame() (gfx.Frame, error) {
	return &Frame{view: &TextureView{label: "swapchain"}}, nil
}

func (c *Context) Resize(width, height uint32) error {
	c.Width, c.Height = width, height
	return nil
}

func (c *Context) CurrentOutputSize() (uint32, uint32) { return c.Width, c.Height }

type Buffer struct {
	label string
	Data  []byte
}

func (b *Buffer) Label() string { return b.label }

type Texture struct {
	label  string
	size   gfx.Extent3D
	Format gfx.TextureType
}

func (t *Texture) Label() string        { return t.label }
func (t *Texture) Size() gfx.Extent3D   { return t.size }
func (t *Texture) CreateView() gfx.TextureView { return &TextureView{label: t.label + ".view"} }

type TextureView struct{ label string }

func (v *TextureView) Label() string { return v.label }

type Sampler struct{ label string }

func (s *Sampler) Label() string { return s.label }

type BindGroupLayout struct {
	label   string
	Entries []gfx.BindGroupLayoutEntry
}

func (l *BindGroupLayout) Label() string { return l.label }

type BindGroup struct {
	label   string
	Entries []gfx.BindGroupEntry
}

func (g *BindGroup) Label() string { return g.label }

type RenderPipeline struct{ label string }

func (p *RenderPipeline) Label() string { return p.label }

type ShaderModule struct {
	label string
	WGSL  string
}

func (m *ShaderModule) Label() string { return m.label }

type CommandBuffer struct{ label string }

func (b *CommandBuffer) Label() string { return b.label }

type CommandEncoder struct {
	label string
	ctx   *Context
}

func (e *CommandEncoder) BeginRenderPass(desc gfx.RenderPassDescriptor) gfx.RenderPass {
	return &RenderPass{desc: desc}
}

func (e *CommandEncoder) Finish() gfx.CommandBuffer { return &CommandBuffer{label: e.label} }

// RenderPass records the calls a test can assert against instead of
// actually issuing GPU draw commands.
type RenderPass struct {
	desc            gfx.RenderPassDescriptor
	Pipeline        gfx.RenderPipeline
	BoundGroups     map[uint32]gfx.BindGroup
	VertexBuffers   map[uint32]gfx.Buffer
	DrawCalls       int
	DrawIndexedCalls int
}

func (p *RenderPass) SetPipeline(pipeline gfx.RenderPipeline) { p.Pipeline = pipeline }

func (p *RenderPass) SetBindGroup(index uint32, bg gfx.BindGroup) {
	if p.BoundGroups == nil {
		p.BoundGroups = make(map[uint32]gfx.BindGroup)
	}
	p.BoundGroups[index] = bg
}

func (p *RenderPass) SetVertexBuffer(slot uint32, buf gfx.Buffer) {
	if p.VertexBuffers == nil {
		p.VertexBuffers = make(map[uint32]gfx.Buffer)
	}
	p.VertexBuffers[slot] = buf
}

func (p *RenderPass) SetIndexBuffer(buf gfx.Buffer, format gfx.IndexFormat) {}

func (p *RenderPass) Draw(vertexCount, instanceCount uint32) { p.DrawCalls++ }

func (p *RenderPass) DrawIndexed(indexCount, instanceCount uint32) { p.DrawIndexedCalls++ }

func (p *RenderPass) End() {}

type Frame struct {
	view     *TextureView
	Released bool
}

func (f *Frame) View() gfx.TextureView { return f.view }
func (f *Frame) Present()              {}
func (f *Frame) Release()              { f.Released = true }

type Queue struct{ ctx *Context }

func (q *Queue) WriteBuffer(buf gfx.Buffer, offset uint64, data []byte) {
	b, ok := buf.(*Buffer)
	if !ok {
		panic(fmt.Sprintf("gfxtest: WriteBuffer on foreign buffer %T", buf))
	}
	end := int(offset) + len(data)
	if end > len(b.Data) {
		grown := make([]byte, end)
		copy(grown, b.Data)
		b.Data = grown
	}
	copy(b.Data[offset:], data)
}

func (q *Queue) WriteTexture(tex gfx.Texture, data []byte, bytesPerRow, rowsPerImage uint32, extent gfx.Extent3D) {
}

func (q *Queue) Submit(cmds ...gfx.CommandBuffer) { q.ctx.Submissions++ }
