package gfxwgpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/ashenengine/ashen/gfx"
)

type commandEncoder struct {
	enc *wgpu.CommandEncoder
}

func toWgpuLoadOp(op gfx.LoadOp) wgpu.LoadOp {
	if op == gfx.LoadOpLoad {
		return wgpu.LoadOpLoad
	}
	return wgpu.LoadOpClear
}

func toWgpuColor(c gfx.Color) wgpu.Color {
	return wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (e *commandEncoder) BeginRenderPass(desc gfx.RenderPassDescriptor) gfx.RenderPass {
	colorAttachments := make([]wgpu.RenderPassColorAttachment, len(desc.ColorAttachments))
	for i, a := range desc.ColorAttachments {
		colorAttachments[i] = wgpu.RenderPassColorAttachment{
			View:       a.View.(*textureView).view,
			LoadOp:     toWgpuLoadOp(a.Load),
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: toWgpuColor(a.Clear),
		}
	}

	var depthAttachment *wgpu.RenderPassDepthStencilAttachment
	if desc.DepthStencilAttachment != nil {
		d := desc.DepthStencilAttachment
		depthAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            d.View.(*textureView).view,
			DepthLoadOp:     toWgpuLoadOp(d.Load),
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: d.ClearDepth,
		}
	}

	pass := e.enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:                  desc.Label,
		ColorAttachments:       colorAttachments,
		DepthStencilAttachment: depthAttachment,
	})
	return &renderPass{pass: pass}
}

func (e *commandEncoder) Finish() gfx.CommandBuffer {
	buf, err := e.enc.Finish(nil)
	if err != nil {
		panic(err)
	}
	return &commandBuffer{buf: buf}
}

type renderPass struct {
	pass *wgpu.RenderPassEncoder
}

func (p *renderPass) SetPipeline(pl gfx.RenderPipeline) {
	p.pass.SetPipeline(pl.(*renderPipeline).pipeline)
}

func (p *renderPass) SetBindGroup(index uint32, bg gfx.BindGroup) {
	p.pass.SetBindGroup(index, bg.(*bindGroup).bg, nil)
}

func (p *renderPass) SetVertexBuffer(slot uint32, buf gfx.Buffer) {
	p.pass.SetVertexBuffer(slot, buf.(*buffer).buf, 0, wgpu.WholeSize)
}

func (p *renderPass) SetIndexBuffer(buf gfx.Buffer, format gfx.IndexFormat) {
	f := wgpu.IndexFormatUint16
	if format == gfx.IndexFormatUint32 {
		f = wgpu.IndexFormatUint32
	}
	p.pass.SetIndexBuffer(buf.(*buffer).buf, f, 0, wgpu.WholeSize)
}

func (p *renderPass) Draw(vertexCount, instanceCount uint32) {
	p.pass.Draw(vertexCount, instanceCount, 0, 0)
}

func (p *renderPass) DrawIndexed(indexCount, instanceCount uint32) {
	p.pass.DrawIndexed(indexCount, instanceCount, 0, 0, 0)
}

func (p *renderPass) End() {
	if err := p.pass.End(); err != nil {
		panic(err)
	}
	p.pass.Release()
}
