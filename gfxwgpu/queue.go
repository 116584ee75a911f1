package gfxwgpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/ashenengine/ashen/gfx"
)

type queue struct {
	q *wgpu.Queue
}

func (q *queue) WriteBuffer(buf gfx.Buffer, offset uint64, data []byte) {
	b := buf.(*buffer)
	if err := q.q.WriteBuffer(b.buf, offset, data); err != nil {
		panic(err)
	}
}

func (q *queue) WriteTexture(tex gfx.Texture, data []byte, bytesPerRow, rowsPerImage uint32, extent gfx.Extent3D) {
	t := tex.(*texture)
	err := q.q.WriteTexture(
		t.tex.AsImageCopy(),
		data,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  bytesPerRow,
			RowsPerImage: rowsPerImage,
		},
		&wgpu.Extent3D{
			Width:              extent.Width,
			Height:             extent.Height,
			DepthOrArrayLayers: max1(extent.DepthOrArrayLayers),
		},
	)
	if err != nil {
		panic(err)
	}
}

func (q *queue) Submit(cmds ...gfx.CommandBuffer) {
	bufs := make([]*wgpu.CommandBuffer, len(cmds))
	for i, c := range cmds {
		bufs[i] = c.(*commandBuffer).buf
	}
	q.q.Submit(bufs...)
}
