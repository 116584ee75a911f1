package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ashenengine/ashen/ecs"
	"github.com/ashenengine/ashen/enginelog"
	"github.com/ashenengine/ashen/gfx"
	"github.com/ashenengine/ashen/gfx/gfxtest"
)

type fakeMaterial struct{ id uint64 }

func (m fakeMaterial) ID() uint64 { return m.id }

// noopRenderable satisfies Renderable without issuing real draw calls;
// BuildFrameData only cares about the component's presence on the entity.
type noopRenderable struct{}

func (noopRenderable) Render(ctx gfx.Context, pass gfx.RenderPass) {}

func buildMaterialWorld(t *testing.T, ids []uint64) *ecs.World {
	t.Helper()
	w := ecs.NewWorld(16)
	for _, id := range ids {
		e := w.CreateEntity()
		tr := DefaultTransform()
		if err := ecs.AddComponent(w, e, tr); err != nil {
			t.Fatalf("AddComponent Transform: %v", err)
		}
		if err := ecs.AddComponent[Renderable](w, e, noopRenderable{}); err != nil {
			t.Fatalf("AddComponent Renderable: %v", err)
		}
		if err := ecs.AddComponent(w, e, Resource[fakeMaterial]{Value: fakeMaterial{id: id}}); err != nil {
			t.Fatalf("AddComponent Resource: %v", err)
		}
	}
	return w
}

func fakeDepthView(t *testing.T) gfx.TextureView {
	t.Helper()
	ctx := gfxtest.New(640, 480)
	tex, err := ctx.CreateDepthTexture(gfx.DepthTextureDescriptor{Label: "depth", Size: gfx.Extent3D{Width: 640, Height: 480, DepthOrArrayLayers: 1}})
	if err != nil {
		t.Fatalf("CreateDepthTexture: %v", err)
	}
	return tex.CreateView()
}

func TestBuildFrameDataSortsByMaterialID(t *testing.T) {
	ids := []uint64{3, 1, 2, 2, 3, 1}
	w := buildMaterialWorld(t, ids)

	pv := ProjView{View: mgl32.Ident4(), Projection: mgl32.Ident4()}
	fd, err := BuildFrameData[fakeMaterial](w, enginelog.NewNopLogger(), fakeDepthView(t), pv, mgl32.Vec3{})
	if err != nil {
		t.Fatalf("BuildFrameData: %v", err)
	}
	if len(fd.RenderData) != len(ids) {
		t.Fatalf("expected %d render entries, got %d", len(ids), len(fd.RenderData))
	}

	got := make([]uint64, len(fd.RenderData))
	for i, rd := range fd.RenderData {
		got[i] = rd.Material.id
	}
	want := []uint64{1, 1, 2, 2, 3, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected sorted ids %v, got %v", want, got)
		}
	}
}

func TestBuildFrameDataRejectsMissingDepthView(t *testing.T) {
	w := ecs.NewWorld(16)
	pv := ProjView{View: mgl32.Ident4(), Projection: mgl32.Ident4()}
	_, err := BuildFrameData[fakeMaterial](w, enginelog.NewNopLogger(), nil, pv, mgl32.Vec3{})
	if err != ErrMissingDepthView {
		t.Fatalf("expected ErrMissingDepthView, got %v", err)
	}
}

func TestBuildFrameDataReportsEntityWithoutMaterial(t *testing.T) {
	w := ecs.NewWorld(16)
	e := w.CreateEntity()
	tr := DefaultTransform()
	if err := ecs.AddComponent(w, e, tr); err != nil {
		t.Fatalf("AddComponent Transform: %v", err)
	}
	if err := ecs.AddComponent[Renderable](w, e, noopRenderable{}); err != nil {
		t.Fatalf("AddComponent Renderable: %v", err)
	}

	pv := ProjView{View: mgl32.Ident4(), Projection: mgl32.Ident4()}
	_, err := BuildFrameData[fakeMaterial](w, enginelog.NewNopLogger(), fakeDepthView(t), pv, mgl32.Vec3{})
	if err == nil {
		t.Fatal("expected an error for an entity with neither Resource nor Asset")
	}
	if _, ok := err.(*NoMaterialError); !ok {
		t.Fatalf("expected *NoMaterialError, got %T: %v", err, err)
	}
}
