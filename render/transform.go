// Package render implements the deferred rendering pipeline: the Transform
// and Camera ECS components, FrameData's per-frame cull/sort structure, and
// the two-stage Geometry/Color pass sequence, grounded on cobalt_core's
// renderer and the teacher's per-frame draw loop in mod_client.go.
package render

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ashenengine/ashen/gfx"
)

var (
	transformLayoutMu    sync.Mutex
	transformLayoutCache = map[gfx.Context]gfx.BindGroupLayout{}
)

// sharedTransformLayout builds the Transform bind group layout once per
// Context, mirroring material.sharedLayout's caching so every entity's
// Transform and every Material sharing a pipeline agree on layout identity.
func sharedTransformLayout(ctx gfx.Context) (gfx.BindGroupLayout, error) {
	transformLayoutMu.Lock()
	defer transformLayoutMu.Unlock()

	if layout, ok := transformLayoutCache[ctx]; ok {
		return layout, nil
	}

	layout, err := ctx.CreateBindGroupLayout(gfx.BindGroupLayoutDescriptor{
		Label: "transform",
		Entries: []gfx.BindGroupLayoutEntry{
			{Binding: TransformBindingModel, Visibility: gfx.VisibilityVertex, Type: gfx.BindingTypeBuffer},
			{Binding: TransformBindingNormal, Visibility: gfx.VisibilityVertex | gfx.VisibilityFragment, Type: gfx.BindingTypeBuffer},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: building transform bind group layout: %w", err)
	}
	transformLayoutCache[ctx] = layout
	return layout, nil
}

// TransformBindingModel and TransformBindingNormal are the geometry pass's
// slot-0 bind group layout: model matrix, then the normal matrix (padded to
// three vec4s so it matches WGSL's std140 mat3 layout).
const (
	TransformBindingModel = iota
	TransformBindingNormal
)

// Transform is the position/rotation/scale component every renderable
// entity carries. The model matrix is recomputed lazily on access; the
// normal matrix is recomputed once per frame from the current view matrix
// by BuildFrameData, since it depends on a value (the camera's view) the
// component itself does not own. Its GPU bind group (slot 0 in the
// geometry pass) is lazily built and rebuilt only when the backing
// matrices change, mirroring cobalt_core's Transform::bind_group caching.
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	modelDirty   bool
	modelMatrix  mgl32.Mat4
	normalMatrix mgl32.Mat3

	buffersDirty bool
	modelBuffer  gfx.Buffer
	normalBuffer gfx.Buffer
	bindGroup    gfx.BindGroup
}

// NewTransform builds a Transform at the given position/rotation/scale.
func NewTransform(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) Transform {
	return Transform{position: position, rotation: rotation, scale: scale, modelDirty: true, buffersDirty: true}
}

// DefaultTransform is the identity transform: origin, no rotation, unit scale.
func DefaultTransform() Transform {
	return NewTransform(mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
}

func (t *Transform) Position() mgl32.Vec3 { return t.position }

func (t *Transform) SetPosition(p mgl32.Vec3) {
	t.position = p
	t.modelDirty = true
	t.buffersDirty = true
}

func (t *Transform) Rotation() mgl32.Quat { return t.rotation }

func (t *Transform) SetRotation(r mgl32.Quat) {
	t.rotation = r
	t.modelDirty = true
	t.buffersDirty = true
}

func (t *Transform) Scale() mgl32.Vec3 { return t.scale }

func (t *Transform) SetScale(s mgl32.Vec3) {
	t.scale = s
	t.modelDirty = true
	t.buffersDirty = true
}

// Translate offsets the transform's position by delta.
func (t *Transform) Translate(delta mgl32.Vec3) {
	t.SetPosition(t.position.Add(delta))
}

// Forward, Right, and Up are the transform's local axes rotated into world
// space, matching cobalt_core's Transform::forward/right/up.
func (t *Transform) Forward() mgl32.Vec3 { return t.rotation.Rotate(mgl32.Vec3{0, 0, 1}) }
func (t *Transform) Right() mgl32.Vec3   { return t.rotation.Rotate(mgl32.Vec3{-1, 0, 0}) }
func (t *Transform) Up() mgl32.Vec3      { return t.rotation.Rotate(mgl32.Vec3{0, 1, 0}) }

// ModelMatrix recomputes (if dirty) and returns the translation * rotation
// * scale composition.
func (t *Transform) ModelMatrix() mgl32.Mat4 {
	if t.modelDirty {
		t.recalcModel()
	}
	return t.modelMatrix
}

func (t *Transform) recalcModel() {
	translation := mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z())
	rotation := t.rotation.Mat4()
	scale := mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())
	t.modelMatrix = translation.Mul4(rotation).Mul4(scale)
	t.modelDirty = false
}

// RecalculateNormalMatrix derives the normal matrix from the current model
// and view matrices: transpose(inverse(model * view)), truncated to 3x3.
// FrameData construction calls this once per matching entity per frame.
func (t *Transform) RecalculateNormalMatrix(view mgl32.Mat4) {
	mv := t.ModelMatrix().Mul4(view)
	t.normalMatrix = mv.Inv().Transpose().Mat3()
	t.buffersDirty = true
}

func (t *Transform) NormalMatrix() mgl32.Mat3 { return t.normalMatrix }

func packMat4(m mgl32.Mat4) []byte {
	b := make([]byte, 64)
	for i, f := range m {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
	return b
}

// packMat3Padded lays out a Mat3 as three std140-padded vec4s (9 used
// floats, 3 padding floats), the layout cobalt_core's shader expects for
// the normal matrix uniform.
func packMat3Padded(m mgl32.Mat3) []byte {
	b := make([]byte, 48)
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			binary.LittleEndian.PutUint32(b[col*16+row*4:], math.Float32bits(m[col*3+row]))
		}
	}
	return b
}

// TransformBindGroupLayout returns (building once per Context) the slot-0
// Transform bind group layout: the model matrix, visible to the vertex
// stage, then the normal matrix, visible to the vertex and fragment stages.
func TransformBindGroupLayout(ctx gfx.Context) (gfx.BindGroupLayout, error) {
	return sharedTransformLayout(ctx)
}

// BindGroup returns the transform's GPU bind group, rebuilding the backing
// uniform buffers only when the model or normal matrix actually changed
// since the last call.
func (t *Transform) BindGroup(ctx gfx.Context) (gfx.BindGroup, error) {
	if t.bindGroup != nil && !t.buffersDirty {
		return t.bindGroup, nil
	}

	layout, err := sharedTransformLayout(ctx)
	if err != nil {
		return nil, err
	}

	modelData := packMat4(t.ModelMatrix())
	normalData := packMat3Padded(t.normalMatrix)

	if t.modelBuffer == nil {
		t.modelBuffer, err = ctx.CreateBufferInit(gfx.BufferInitDescriptor{
			Label: "transform.model", Contents: modelData, Usage: gfx.BufferUsageUniform | gfx.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("render: creating transform model buffer: %w", err)
		}
		t.normalBuffer, err = ctx.CreateBufferInit(gfx.BufferInitDescriptor{
			Label: "transform.normal", Contents: normalData, Usage: gfx.BufferUsageUniform | gfx.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("render: creating transform normal buffer: %w", err)
		}
	} else {
		ctx.Queue().WriteBuffer(t.modelBuffer, 0, modelData)
		ctx.Queue().WriteBuffer(t.normalBuffer, 0, normalData)
	}

	bg, err := ctx.CreateBindGroup(gfx.BindGroupDescriptor{
		Label:  "transform",
		Layout: layout,
		Entries: []gfx.BindGroupEntry{
			{Binding: TransformBindingModel, Resource: gfx.BindGroupEntryResource{Buffer: t.modelBuffer}},
			{Binding: TransformBindingNormal, Resource: gfx.BindGroupEntryResource{Buffer: t.normalBuffer}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: building transform bind group: %w", err)
	}
	t.bindGroup = bg
	t.buffersDirty = false
	return bg, nil
}
