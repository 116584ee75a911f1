package render

import (
	"fmt"

	"github.com/ashenengine/ashen/gfx"
	"github.com/ashenengine/ashen/render/shaders"
)

// GeometryMetallicRoughnessFormat packs metallic into the red channel and
// roughness into green; spec leaves the exact packed format to the
// implementation, only requiring "packed two channels, linear 8-bit or
// 16-bit format". RGBA8Unorm is the closest fit in the closed TextureType
// set (there is no dedicated two-channel variant).
const GeometryMetallicRoughnessFormat = gfx.RGBA8Unorm

// GBuffer is the four fixed-order geometry attachments. The depth buffer
// the geometry pass renders against is not part of it; DeferredRenderer
// owns that.
type GBuffer struct {
	Position          gfx.Texture
	Normal            gfx.Texture
	Albedo            gfx.Texture
	MetallicRoughness gfx.Texture

	PositionView          gfx.TextureView
	NormalView            gfx.TextureView
	AlbedoView            gfx.TextureView
	MetallicRoughnessView gfx.TextureView
}

func newGBuffer(ctx gfx.Context, width, height uint32) (*GBuffer, error) {
	size := gfx.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}
	make := func(label string, format gfx.TextureType) (gfx.Texture, gfx.TextureView, error) {
		tex, err := ctx.CreateTexture(gfx.TextureDescriptor{
			Label:  label,
			Size:   size,
			Format: format,
			Usage:  gfx.TextureUsageRenderAttachment | gfx.TextureUsageTextureBinding,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("render: creating %s attachment: %w", label, err)
		}
		return tex, tex.CreateView(), nil
	}

	position, positionView, err := make("gbuffer.position", gfx.RGBA16F)
	if err != nil {
		return nil, err
	}
	normal, normalView, err := make("gbuffer.normal", gfx.RGBA16F)
	if err != nil {
		return nil, err
	}
	albedo, albedoView, err := make("gbuffer.albedo", gfx.RGBA8UnormSrgb)
	if err != nil {
		return nil, err
	}
	metallicRoughness, metallicRoughnessView, err := make("gbuffer.metallic_roughness", GeometryMetallicRoughnessFormat)
	if err != nil {
		return nil, err
	}

	return &GBuffer{
		Position: position, Normal: normal, Albedo: albedo, MetallicRoughness: metallicRoughness,
		PositionView: positionView, NormalView: normalView, AlbedoView: albedoView, MetallicRoughnessView: metallicRoughnessView,
	}, nil
}

// GeometryPass fills a GBuffer from a sorted RenderData list. It rebinds
// the material bind group only when the draw's material id changes from
// the previous draw, per spec's draw-order contract.
type GeometryPass struct {
	pipeline gfx.RenderPipeline
	gbuffer  *GBuffer
	width    uint32
	height   uint32
}

// NewGeometryPass builds the geometry pipeline (vertex: position/normal/uv,
// fragment: four G-buffer targets, depth write + less, back-face culling)
// and its initial G-buffer at (width, height).
func NewGeometryPass(ctx gfx.Context, transformLayout, projViewLayout, materialLayout gfx.BindGroupLayout, width, height uint32) (*GeometryPass, error) {
	vs, err := ctx.CreateShaderModule("geometry.vs", shaders.GeometryWGSL)
	if err != nil {
		return nil, fmt.Errorf("render: compiling geometry shader: %w", err)
	}

	pipeline, err := ctx.CreateRenderPipeline(gfx.RenderPipelineDescriptor{
		Label:          "geometry",
		VertexShader:   vs,
		FragmentShader: vs,
		VertexBuffers: []gfx.VertexBufferLayout{
			{
				ArrayStride: 8 * 4,
				Attributes: []gfx.VertexAttribute{
					{Format: gfx.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: gfx.VertexFormatFloat32x3, Offset: 3 * 4, ShaderLocation: 1},
					{Format: gfx.VertexFormatFloat32x2, Offset: 6 * 4, ShaderLocation: 2},
				},
			},
		},
		BindGroupLayouts: []gfx.BindGroupLayout{transformLayout, projViewLayout, materialLayout},
		ColorTargets:     []gfx.TextureType{gfx.RGBA16F, gfx.RGBA16F, gfx.RGBA8UnormSrgb, GeometryMetallicRoughnessFormat},
		DepthStencil:     &gfx.DepthStencilState{Format: gfx.Depth32Float, DepthWrite: true, DepthCompare: gfx.CompareLess},
		CullMode:         gfx.CullModeBack,
	})
	if err != nil {
		return nil, fmt.Errorf("render: building geometry pipeline: %w", err)
	}

	gbuffer, err := newGBuffer(ctx, width, height)
	if err != nil {
		return nil, err
	}

	return &GeometryPass{pipeline: pipeline, gbuffer: gbuffer, width: width, height: height}, nil
}

func (p *GeometryPass) GBuffer() *GBuffer { return p.gbuffer }

// Resize re-creates all four G-buffer attachments at the new size. The
// depth buffer is owned by the outer renderer and resized separately.
func (p *GeometryPass) Resize(ctx gfx.Context, width, height uint32) error {
	gbuffer, err := newGBuffer(ctx, width, height)
	if err != nil {
		return err
	}
	p.gbuffer = gbuffer
	p.width, p.height = width, height
	return nil
}

// Run clears and fills the G-buffer for one frame's worth of draws.
func (p *GeometryPass) Run(ctx gfx.Context, encoder gfx.CommandEncoder, projViewBindGroup gfx.BindGroup, depthView gfx.TextureView, fd *FrameData[materialBinder]) error {
	pass := encoder.BeginRenderPass(gfx.RenderPassDescriptor{
		Label: "geometry",
		ColorAttachments: []gfx.RenderPassColorAttachment{
			{View: p.gbuffer.PositionView, Load: gfx.LoadOpClear, Clear: gfx.Color{}},
			{View: p.gbuffer.NormalView, Load: gfx.LoadOpClear, Clear: gfx.Color{}},
			{View: p.gbuffer.AlbedoView, Load: gfx.LoadOpClear, Clear: gfx.Color{}},
			{View: p.gbuffer.MetallicRoughnessView, Load: gfx.LoadOpClear, Clear: gfx.Color{}},
		},
		DepthStencilAttachment: &gfx.RenderPassDepthAttachment{
			View: depthView, ClearDepth: 1.0, Load: gfx.LoadOpClear, DepthWrite: true,
		},
	})
	defer pass.End()

	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(1, projViewBindGroup)

	var lastMaterialID uint64
	haveLast := false
	for _, rd := range fd.RenderData {
		transformBG, err := rd.Transform.BindGroup(ctx)
		if err != nil {
			return fmt.Errorf("render: entity %+v transform bind group: %w", rd.Entity, err)
		}
		pass.SetBindGroup(0, transformBG)

		id := rd.Material.ID()
		if !haveLast || id != lastMaterialID {
			pass.SetBindGroup(2, rd.Material.BindGroup())
			lastMaterialID = id
			haveLast = true
		}

		rd.Renderable.Render(ctx, pass)
	}
	return nil
}

// materialBinder is the interface FrameData's M parameter must satisfy for
// GeometryPass.Run to bind materials; material.Material implements it.
type materialBinder interface {
	ID() uint64
	BindGroup() gfx.BindGroup
}
