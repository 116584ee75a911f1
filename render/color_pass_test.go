package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ashenengine/ashen/gfx"
	"github.com/ashenengine/ashen/gfx/gfxtest"
)

func newGBufferForTest(t *testing.T, ctx gfx.Context) *GBuffer {
	t.Helper()
	gb, err := newGBuffer(ctx, 320, 240)
	if err != nil {
		t.Fatalf("newGBuffer: %v", err)
	}
	return gb
}

func TestColorPassRunAcceptsGBufferAndDepth(t *testing.T) {
	ctx := gfxtest.New(320, 240)
	cp, err := NewColorPass(ctx, gfx.RGBA8UnormSrgb)
	if err != nil {
		t.Fatalf("NewColorPass: %v", err)
	}
	gb := newGBufferForTest(t, ctx)

	depth, err := ctx.CreateDepthTexture(gfx.DepthTextureDescriptor{Label: "depth", Size: gfx.Extent3D{Width: 320, Height: 240, DepthOrArrayLayers: 1}})
	if err != nil {
		t.Fatalf("CreateDepthTexture: %v", err)
	}
	swap, err := ctx.CreateTexture(gfx.TextureDescriptor{Label: "swap", Size: gfx.Extent3D{Width: 320, Height: 240, DepthOrArrayLayers: 1}, Format: gfx.RGBA8UnormSrgb})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	encoder, err := ctx.CreateCommandEncoder("frame")
	if err != nil {
		t.Fatalf("CreateCommandEncoder: %v", err)
	}

	if err := cp.Run(ctx, encoder, swap.CreateView(), gb, depth.CreateView(), mgl32.Vec3{1, 2, 3}, DebugNone); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestColorPassCameraBindGroupIsCachedAcrossFrames(t *testing.T) {
	ctx := gfxtest.New(320, 240)
	cp, err := NewColorPass(ctx, gfx.RGBA8UnormSrgb)
	if err != nil {
		t.Fatalf("NewColorPass: %v", err)
	}

	bg1, err := cp.cameraBindGroup(ctx, mgl32.Vec3{1, 0, 0}, DebugNone)
	if err != nil {
		t.Fatalf("cameraBindGroup: %v", err)
	}
	bg2, err := cp.cameraBindGroup(ctx, mgl32.Vec3{5, 5, 5}, DebugNone)
	if err != nil {
		t.Fatalf("cameraBindGroup: %v", err)
	}
	if bg1 != bg2 {
		t.Fatal("expected the camera bind group to be reused across frames once built")
	}
}

func TestColorPassTracksDebugModeChanges(t *testing.T) {
	ctx := gfxtest.New(320, 240)
	cp, err := NewColorPass(ctx, gfx.RGBA8UnormSrgb)
	if err != nil {
		t.Fatalf("NewColorPass: %v", err)
	}

	if _, err := cp.cameraBindGroup(ctx, mgl32.Vec3{}, DebugNormal); err != nil {
		t.Fatalf("cameraBindGroup: %v", err)
	}
	if cp.lastDebugMode != DebugNormal {
		t.Fatalf("expected lastDebugMode to update to DebugNormal, got %v", cp.lastDebugMode)
	}

	if _, err := cp.cameraBindGroup(ctx, mgl32.Vec3{}, DebugNormal); err != nil {
		t.Fatalf("cameraBindGroup: %v", err)
	}
	if _, err := cp.cameraBindGroup(ctx, mgl32.Vec3{}, DebugDepth); err != nil {
		t.Fatalf("cameraBindGroup: %v", err)
	}
	if cp.lastDebugMode != DebugDepth {
		t.Fatalf("expected lastDebugMode to update to DebugDepth, got %v", cp.lastDebugMode)
	}
}
