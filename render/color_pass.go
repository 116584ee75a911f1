package render

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ashenengine/ashen/gfx"
	"github.com/ashenengine/ashen/render/shaders"
)

// DebugMode selects which G-buffer channel the Color pass visualizes
// instead of shading. This expands the source's five-variant enum with
// Metallic and Roughness split out, since the G-buffer now stores them in
// separate channels of one packed attachment.
type DebugMode uint32

const (
	DebugNone DebugMode = iota
	DebugPosition
	DebugNormal
	DebugAlbedoSpecular
	DebugMetallic
	DebugRoughness
	DebugDepth
)

const (
	colorBindingCameraPosition = iota
	colorBindingDebugMode
)

// ColorPass resolves a GBuffer and depth view, under a camera position, to
// the swapchain image, drawing a single full-screen triangle.
type ColorPass struct {
	pipeline       gfx.RenderPipeline
	gbufferLayout  gfx.BindGroupLayout
	depthLayout    gfx.BindGroupLayout
	cameraLayout   gfx.BindGroupLayout
	sampler        gfx.Sampler
	depthSampler   gfx.Sampler
	cameraBuffer   gfx.Buffer
	debugModeBuf   gfx.Buffer
	cameraBindGrp  gfx.BindGroup
	lastDebugMode  DebugMode
}

// NewColorPass builds the resolve pipeline and its three bind group
// layouts (G-buffer, depth, camera uniforms).
func NewColorPass(ctx gfx.Context, swapchainFormat gfx.TextureType) (*ColorPass, error) {
	vs, err := ctx.CreateShaderModule("color.vs", shaders.ColorWGSL)
	if err != nil {
		return nil, fmt.Errorf("render: compiling color shader: %w", err)
	}

	gbufferLayout, err := ctx.CreateBindGroupLayout(gfx.BindGroupLayoutDescriptor{
		Label: "color.gbuffer",
		Entries: []gfx.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gfx.VisibilityFragment, Type: gfx.BindingTypeTexture},
			{Binding: 1, Visibility: gfx.VisibilityFragment, Type: gfx.BindingTypeTexture},
			{Binding: 2, Visibility: gfx.VisibilityFragment, Type: gfx.BindingTypeTexture},
			{Binding: 3, Visibility: gfx.VisibilityFragment, Type: gfx.BindingTypeTexture},
			{Binding: 4, Visibility: gfx.VisibilityFragment, Type: gfx.BindingTypeSampler},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: building gbuffer bind group layout: %w", err)
	}

	depthLayout, err := ctx.CreateBindGroupLayout(gfx.BindGroupLayoutDescriptor{
		Label: "color.depth",
		Entries: []gfx.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gfx.VisibilityFragment, Type: gfx.BindingTypeTexture},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: building depth bind group layout: %w", err)
	}

	cameraLayout, err := ctx.CreateBindGroupLayout(gfx.BindGroupLayoutDescriptor{
		Label: "color.camera",
		Entries: []gfx.BindGroupLayoutEntry{
			{Binding: colorBindingCameraPosition, Visibility: gfx.VisibilityFragment, Type: gfx.BindingTypeBuffer},
			{Binding: colorBindingDebugMode, Visibility: gfx.VisibilityFragment, Type: gfx.BindingTypeBuffer},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: building camera bind group layout: %w", err)
	}

	pipeline, err := ctx.CreateRenderPipeline(gfx.RenderPipelineDescriptor{
		Label:            "color",
		VertexShader:     vs,
		FragmentShader:   vs,
		BindGroupLayouts: []gfx.BindGroupLayout{gbufferLayout, depthLayout, cameraLayout},
		ColorTargets:     []gfx.TextureType{swapchainFormat},
		CullMode:         gfx.CullModeNone,
	})
	if err != nil {
		return nil, fmt.Errorf("render: building color pipeline: %w", err)
	}

	sampler, err := ctx.CreateSampler(gfx.DefaultSamplerDescriptor)
	if err != nil {
		return nil, fmt.Errorf("render: creating gbuffer sampler: %w", err)
	}
	depthSampler, err := ctx.CreateSampler(gfx.DefaultSamplerDescriptor)
	if err != nil {
		return nil, fmt.Errorf("render: creating depth sampler: %w", err)
	}

	cameraBuffer, err := ctx.CreateBufferInit(gfx.BufferInitDescriptor{
		Label: "color.camera_position", Contents: make([]byte, 16), Usage: gfx.BufferUsageUniform | gfx.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("render: creating camera position buffer: %w", err)
	}
	debugModeBuf, err := ctx.CreateBufferInit(gfx.BufferInitDescriptor{
		Label: "color.debug_mode", Contents: make([]byte, 4), Usage: gfx.BufferUsageUniform | gfx.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("render: creating debug mode buffer: %w", err)
	}

	return &ColorPass{
		pipeline: pipeline, gbufferLayout: gbufferLayout, depthLayout: depthLayout, cameraLayout: cameraLayout,
		sampler: sampler, depthSampler: depthSampler, cameraBuffer: cameraBuffer, debugModeBuf: debugModeBuf,
		lastDebugMode: ^DebugMode(0),
	}, nil
}

func (p *ColorPass) gbufferBindGroup(ctx gfx.Context, gbuffer *GBuffer) (gfx.BindGroup, error) {
	return ctx.CreateBindGroup(gfx.BindGroupDescriptor{
		Label:  "color.gbuffer",
		Layout: p.gbufferLayout,
		Entries: []gfx.BindGroupEntry{
			{Binding: 0, Resource: gfx.BindGroupEntryResource{Texture: gbuffer.PositionView}},
			{Binding: 1, Resource: gfx.BindGroupEntryResource{Texture: gbuffer.NormalView}},
			{Binding: 2, Resource: gfx.BindGroupEntryResource{Texture: gbuffer.AlbedoView}},
			{Binding: 3, Resource: gfx.BindGroupEntryResource{Texture: gbuffer.MetallicRoughnessView}},
			{Binding: 4, Resource: gfx.BindGroupEntryResource{Sampler: p.sampler}},
		},
	})
}

func (p *ColorPass) depthBindGroup(ctx gfx.Context, depthView gfx.TextureView) (gfx.BindGroup, error) {
	return ctx.CreateBindGroup(gfx.BindGroupDescriptor{
		Label:  "color.depth",
		Layout: p.depthLayout,
		Entries: []gfx.BindGroupEntry{
			{Binding: 0, Resource: gfx.BindGroupEntryResource{Texture: depthView}},
		},
	})
}

func (p *ColorPass) cameraBindGroup(ctx gfx.Context, cameraPos mgl32.Vec3, mode DebugMode) (gfx.BindGroup, error) {
	posBytes := make([]byte, 16)
	binary.LittleEndian.PutUint32(posBytes[0:], math.Float32bits(cameraPos.X()))
	binary.LittleEndian.PutUint32(posBytes[4:], math.Float32bits(cameraPos.Y()))
	binary.LittleEndian.PutUint32(posBytes[8:], math.Float32bits(cameraPos.Z()))
	ctx.Queue().WriteBuffer(p.cameraBuffer, 0, posBytes)

	if mode != p.lastDebugMode || p.cameraBindGrp == nil {
		modeBytes := make([]byte, 4)
		binary.LittleEndian.PutUint32(modeBytes, uint32(mode))
		ctx.Queue().WriteBuffer(p.debugModeBuf, 0, modeBytes)
		p.lastDebugMode = mode
	}

	if p.cameraBindGrp != nil {
		return p.cameraBindGrp, nil
	}
	bg, err := ctx.CreateBindGroup(gfx.BindGroupDescriptor{
		Label:  "color.camera",
		Layout: p.cameraLayout,
		Entries: []gfx.BindGroupEntry{
			{Binding: colorBindingCameraPosition, Resource: gfx.BindGroupEntryResource{Buffer: p.cameraBuffer}},
			{Binding: colorBindingDebugMode, Resource: gfx.BindGroupEntryResource{Buffer: p.debugModeBuf}},
		},
	})
	if err != nil {
		return nil, err
	}
	p.cameraBindGrp = bg
	return bg, nil
}

// Run draws the full-screen resolve triangle into swapchainView, reading
// gbuffer and depthView under cameraPos and mode.
func (p *ColorPass) Run(ctx gfx.Context, encoder gfx.CommandEncoder, swapchainView gfx.TextureView, gbuffer *GBuffer, depthView gfx.TextureView, cameraPos mgl32.Vec3, mode DebugMode) error {
	gbufferBG, err := p.gbufferBindGroup(ctx, gbuffer)
	if err != nil {
		return fmt.Errorf("render: color pass gbuffer bind group: %w", err)
	}
	depthBG, err := p.depthBindGroup(ctx, depthView)
	if err != nil {
		return fmt.Errorf("render: color pass depth bind group: %w", err)
	}
	cameraBG, err := p.cameraBindGroup(ctx, cameraPos, mode)
	if err != nil {
		return fmt.Errorf("render: color pass camera bind group: %w", err)
	}

	pass := encoder.BeginRenderPass(gfx.RenderPassDescriptor{
		Label: "color",
		ColorAttachments: []gfx.RenderPassColorAttachment{
			{View: swapchainView, Load: gfx.LoadOpClear, Clear: gfx.Color{R: 0, G: 0, B: 0, A: 1}},
		},
	})
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, gbufferBG)
	pass.SetBindGroup(1, depthBG)
	pass.SetBindGroup(2, cameraBG)
	pass.Draw(3, 1)
	pass.End()
	return nil
}
