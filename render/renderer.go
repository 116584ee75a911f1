package render

import (
	"errors"
	"fmt"

	"github.com/ashenengine/ashen/ecs"
	"github.com/ashenengine/ashen/enginelog"
	"github.com/ashenengine/ashen/gfx"
)

var cameraWarnOnce = enginelog.Once{}

// DeferredRenderer composes the Geometry and Color passes behind the
// renderer surface spec.md §6 fixes: Render, Resize, CurrentOutputSize,
// SetDebugMode. It owns the depth buffer, since the depth attachment is
// shared between the two passes and must be resized in lockstep with the
// G-buffer.
type DeferredRenderer struct {
	ctx            gfx.Context
	logger         enginelog.Logger
	geometry       *GeometryPass
	color          *ColorPass
	projViewLayout gfx.BindGroupLayout

	depth     gfx.Texture
	depthView gfx.TextureView

	debugMode DebugMode
}

// NewDeferredRenderer builds both passes and the shared depth buffer at
// the Context's current output size.
func NewDeferredRenderer(ctx gfx.Context, logger enginelog.Logger, transformLayout, materialLayout gfx.BindGroupLayout, swapchainFormat gfx.TextureType) (*DeferredRenderer, error) {
	width, height := ctx.CurrentOutputSize()

	projViewLayout, err := ctx.CreateBindGroupLayout(gfx.BindGroupLayoutDescriptor{
		Label: "proj_view",
		Entries: []gfx.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gfx.VisibilityVertex, Type: gfx.BindingTypeBuffer},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: building proj_view bind group layout: %w", err)
	}

	geometry, err := NewGeometryPass(ctx, transformLayout, projViewLayout, materialLayout, width, height)
	if err != nil {
		return nil, err
	}
	color, err := NewColorPass(ctx, swapchainFormat)
	if err != nil {
		return nil, err
	}

	depth, depthView, err := createDepth(ctx, width, height)
	if err != nil {
		return nil, err
	}

	return &DeferredRenderer{
		ctx: ctx, logger: logger, geometry: geometry, color: color, projViewLayout: projViewLayout,
		depth: depth, depthView: depthView, debugMode: DebugNone,
	}, nil
}

func createDepth(ctx gfx.Context, width, height uint32) (gfx.Texture, gfx.TextureView, error) {
	depth, err := ctx.CreateDepthTexture(gfx.DepthTextureDescriptor{
		Label:  "depth",
		Size:   gfx.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		Format: gfx.Depth32Float,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("render: creating depth buffer: %w", err)
	}
	return depth, depth.CreateView(), nil
}

// SetDebugMode switches the Color pass between shaded output and a
// single-channel G-buffer visualization.
func (r *DeferredRenderer) SetDebugMode(mode DebugMode) { r.debugMode = mode }

// CurrentOutputSize reports the swapchain's current pixel dimensions.
func (r *DeferredRenderer) CurrentOutputSize() (uint32, uint32) { return r.ctx.CurrentOutputSize() }

// Resize reconfigures the Context's surface and recreates the G-buffer and
// depth attachments in lockstep.
func (r *DeferredRenderer) Resize(width, height uint32) error {
	if err := r.ctx.Resize(width, height); err != nil {
		return fmt.Errorf("render: resizing surface: %w", err)
	}
	if err := r.geometry.Resize(r.ctx, width, height); err != nil {
		return err
	}
	depth, depthView, err := createDepth(r.ctx, width, height)
	if err != nil {
		return err
	}
	r.depth, r.depthView = depth, depthView
	return nil
}

// selectCamera returns the world's single enabled camera and its
// transform, warning once (never failing) when zero or more than one
// enabled camera is found.
func selectCamera(w *ecs.World, logger enginelog.Logger) (*Camera, *Transform, bool) {
	var cam *Camera
	var camTransform *Transform
	count := 0

	_ = ecs.ForEach2[Camera, Transform](w, nil, func(_ ecs.Entity, c *Camera, t *Transform, _ []any) bool {
		if !c.Enabled {
			return true
		}
		count++
		if count == 1 {
			cam, camTransform = c, t
		}
		return true
	})

	if count == 0 {
		cameraWarnOnce.Warn(logger, "render: no enabled camera", "render: no enabled camera found; skipping frame")
		return nil, nil, false
	}
	if count > 1 {
		cameraWarnOnce.Warn(logger, "render: multiple enabled cameras", "render: more than one enabled camera found; using the first")
	}
	return cam, camTransform, true
}

// Render picks the world's single enabled camera, builds FrameData, and
// runs the Geometry then Color pass into frame's swapchain view. It
// silently skips the frame (returning nil) when there is no renderable
// work or no enabled camera, per spec's non-fatal render errors.
func (r *DeferredRenderer) Render(frame gfx.Frame, w *ecs.World) error {
	cam, camTransform, ok := selectCamera(w, r.logger)
	if !ok {
		return nil
	}

	view := ViewMatrix(camTransform)
	proj := cam.ProjectionMatrix()
	pv := ProjView{View: view, Projection: proj}

	fd, err := BuildFrameData[materialBinder](w, r.logger, r.depthView, pv, camTransform.Position())
	if err != nil {
		var noMaterial *NoMaterialError
		if errors.Is(err, ErrNoRenderables) || errors.As(err, &noMaterial) {
			return nil
		}
		return err
	}

	encoder, err := r.ctx.CreateCommandEncoder("frame")
	if err != nil {
		return fmt.Errorf("render: creating command encoder: %w", err)
	}

	projViewBG, err := r.buildProjViewBindGroup(pv)
	if err != nil {
		return err
	}

	if err := r.geometry.Run(r.ctx, encoder, projViewBG, r.depthView, fd); err != nil {
		return err
	}
	if err := r.color.Run(r.ctx, encoder, frame.View(), r.geometry.GBuffer(), r.depthView, camTransform.Position(), r.debugMode); err != nil {
		return err
	}

	r.ctx.Queue().Submit(encoder.Finish())
	return nil
}

func (r *DeferredRenderer) buildProjViewBindGroup(pv ProjView) (gfx.BindGroup, error) {
	data := append(packMat4(pv.View), packMat4(pv.Projection)...)
	buf, err := r.ctx.CreateBufferInit(gfx.BufferInitDescriptor{
		Label: "proj_view", Contents: data, Usage: gfx.BufferUsageUniform | gfx.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("render: creating proj_view buffer: %w", err)
	}
	bg, err := r.ctx.CreateBindGroup(gfx.BindGroupDescriptor{
		Label:  "proj_view",
		Layout: r.projViewLayout,
		Entries: []gfx.BindGroupEntry{
			{Binding: 0, Resource: gfx.BindGroupEntryResource{Buffer: buf}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: building proj_view bind group: %w", err)
	}
	return bg, nil
}
