package gfxwgpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/ashenengine/ashen/gfx"
)

type frame struct {
	surface *wgpu.Surface
	texture *wgpu.Texture
	view    *textureView
}

func (f *frame) View() gfx.TextureView { return f.view }

func (f *frame) Present() { f.surface.Present() }

func (f *frame) Release() {
	f.view.view.Release()
	f.texture.Release()
}
