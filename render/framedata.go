package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ashenengine/ashen/assets"
	"github.com/ashenengine/ashen/ecs"
	"github.com/ashenengine/ashen/enginelog"
	"github.com/ashenengine/ashen/gfx"
)

// Renderable is the contract any drawable component implements: issuing its
// own vertex/index buffer bindings and draw call against an already-bound
// pipeline/material/transform, per spec.md §4.9.
type Renderable interface {
	Render(ctx gfx.Context, pass gfx.RenderPass)
}

// Resource[M] wraps a material value owned directly by the caller (not
// routed through the asset system). It takes precedence over Asset[M] when
// both are attached to the same entity.
type Resource[M any] struct {
	Value M
}

// Asset[M] wraps an asset-system handle to a material. Used when the
// resolved material is absent, FrameData falls back to it.
type Asset[M any] struct {
	Handle *assets.Handle[M]
}

// ErrNoRenderables is returned when no entity carries both a Transform and
// a Renderable, including when either family was never registered, and
// wraps any error from constructing the underlying query.
var ErrNoRenderables = errors.New("render: no renderables (query could not be constructed)")

// ErrMissingDepthView is returned when BuildFrameData is called without a
// depth attachment view to record in the resulting FrameData.
var ErrMissingDepthView = errors.New("render: missing depth view")

// NoMaterialError names the entity FrameData construction could not resolve
// a material for.
type NoMaterialError struct {
	Entity ecs.Entity
}

func (e *NoMaterialError) Error() string {
	return fmt.Sprintf("render: entity %+v has no material (neither Resource nor Asset present)", e.Entity)
}

// RenderData is one entity's resolved draw: its transform, renderable, and
// material, plus a visibility flag frustum culling (an unimplemented
// extension point) would clear.
type RenderData[M any] struct {
	Entity     ecs.Entity
	Transform  *Transform
	Renderable Renderable
	Material   M
	InFrustum  bool
}

// FrameData is the per-frame sorted draw list plus camera state the
// Geometry and Color passes consume. No culling is done: every matching
// entity is kept and its InFrustum is true.
type FrameData[M any] struct {
	DepthView      gfx.TextureView
	ProjView       ProjView
	CameraPosition mgl32.Vec3
	RenderData     []RenderData[M]
}

// materialIDer lets BuildFrameData stably sort by material id without
// depending on a concrete material type; callers whose M does not implement
// it get construction-order stability only.
type materialIDer interface {
	ID() uint64
}

var materialWarnOnce = enginelog.Once{}

// BuildFrameData queries (Transform, Renderable, Optional<Resource[M]>,
// Optional<Asset[M]>), recomputes each matching transform's normal matrix
// against view, resolves each entity's material (Resource over Asset, warn
// once if both present), and returns the result sorted stably by material
// id.
func BuildFrameData[M any](w *ecs.World, logger enginelog.Logger, depthView gfx.TextureView, pv ProjView, cameraPos mgl32.Vec3) (*FrameData[M], error) {
	if depthView == nil {
		return nil, ErrMissingDepthView
	}
	fd := &FrameData[M]{DepthView: depthView, ProjView: pv, CameraPosition: cameraPos}

	var firstErr error
	err := ecs.ForEach2[Transform, Renderable](w, []ecs.Term{
		ecs.Optional[Resource[M]](),
		ecs.Optional[Asset[M]](),
	}, func(e ecs.Entity, transform *Transform, renderable *Renderable, rest []any) bool {
		transform.RecalculateNormalMatrix(pv.View)

		resource, _ := rest[0].(*Resource[M])
		asset, _ := rest[1].(*Asset[M])

		material, ok, err := resolveMaterial(logger, resource, asset)
		if err != nil {
			firstErr = err
			return false
		}
		if !ok {
			firstErr = &NoMaterialError{Entity: e}
			return false
		}

		fd.RenderData = append(fd.RenderData, RenderData[M]{
			Entity:     e,
			Transform:  transform,
			Renderable: *renderable,
			Material:   material,
			InFrustum:  true,
		})
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRenderables, err)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if len(fd.RenderData) == 0 {
		return nil, ErrNoRenderables
	}

	sortByMaterialID(fd.RenderData)
	return fd, nil
}

func resolveMaterial[M any](logger enginelog.Logger, resource *Resource[M], asset *Asset[M]) (M, bool, error) {
	var zero M
	haveResource := resource != nil
	haveAsset := asset != nil && asset.Handle != nil

	if haveResource && haveAsset {
		materialWarnOnce.Warn(logger, "render: material resource+asset both present",
			"render: entity has both a material Resource and Asset; Resource takes precedence")
	}
	switch {
	case haveResource:
		return resource.Value, true, nil
	case haveAsset:
		return *asset.Handle.Get(), true, nil
	default:
		return zero, false, nil
	}
}

// sortByMaterialID stably sorts rd by material id, when M supports it;
// ties (or an M without ID()) preserve query order.
func sortByMaterialID[M any](rd []RenderData[M]) {
	sort.SliceStable(rd, func(i, j int) bool {
		a, aok := any(rd[i].Material).(materialIDer)
		b, bok := any(rd[j].Material).(materialIDer)
		if !aok || !bok {
			return false
		}
		return a.ID() < b.ID()
	})
}
