package gfxwgpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/ashenengine/ashen/gfx"
)

// The wrapper types below each hold just enough state to satisfy the
// corresponding gfx interface and to be recovered by type assertion where
// the Context needs the underlying wgpu handle back (bind group creation,
// pipeline layouts, render pass binding).

type buffer struct {
	label string
	buf   *wgpu.Buffer
}

func (b *buffer) Label() string { return b.label }

type textureView struct {
	view *wgpu.TextureView
}

func (v *textureView) Label() string { return "" }

type texture struct {
	label string
	tex   *wgpu.Texture
	size  gfx.Extent3D
}

func (t *texture) Label() string { return t.label }

func (t *texture) CreateView() gfx.TextureView {
	v, err := t.tex.CreateView(nil)
	if err != nil {
		// CreateView has no error return in gfx.Texture because every
		// caller treats it as infallible once the texture itself was
		// created successfully, so a failure here panics.
		panic(err)
	}
	return &textureView{view: v}
}

func (t *texture) Size() gfx.Extent3D { return t.size }

type sampler struct {
	label string
	s     *wgpu.Sampler
}

func (s *sampler) Label() string { return s.label }

type bindGroupLayout struct {
	label  string
	layout *wgpu.BindGroupLayout
}

func (l *bindGroupLayout) Label() string { return l.label }

type bindGroup struct {
	label string
	bg    *wgpu.BindGroup
}

func (g *bindGroup) Label() string { return g.label }

type renderPipeline struct {
	label    string
	pipeline *wgpu.RenderPipeline
}

func (p *renderPipeline) Label() string { return p.label }

type shaderModule struct {
	label  string
	module *wgpu.ShaderModule
}

func (m *shaderModule) Label() string { return m.label }

type commandBuffer struct {
	label string
	buf   *wgpu.CommandBuffer
}

func (b *commandBuffer) Label() string { return b.label }
