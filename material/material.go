// Package material implements the Material bind-group composer: a compact
// bundle of scalars, colors, and typed texture slots that lazily builds and
// rebuilds a single GPU bind group under mutation, grounded on the bind
// group wiring the teacher builds per draw call in mod_client.go.
package material

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ashenengine/ashen/gfx"
	"github.com/ashenengine/ashen/texture"
)

// Binding slots, in the stable order spec.md §4.7 fixes.
const (
	BindingUnlit = iota
	BindingWireframeFlag
	BindingWireframeColor
	BindingAlbedoSupplied
	BindingAlbedoColor
	BindingAlbedoTexture
	BindingAlbedoSampler
	BindingNormalSupplied
	BindingNormalTexture
	BindingNormalSampler
	BindingMetallicSupplied
	BindingMetallicScalar
	BindingMetallicTexture
	BindingMetallicSampler
	BindingRoughnessSupplied
	BindingRoughnessScalar
	BindingRoughnessTexture
	BindingRoughnessSampler

	bindingCount
)

// Supplied tags which of a slot's color/scalar or texture alternatives are
// currently bound.
type Supplied uint32

const (
	SuppliedValue   Supplied = 1
	SuppliedTexture Supplied = 2
	SuppliedBoth    Supplied = 3
)

var nextID atomic.Uint64

// AlbedoTexture, NormalTexture, MetallicTexture, and RoughnessTexture fix
// the texture formats spec.md §4.6/§4.7 assigns each material slot.
type (
	AlbedoTexture    = texture.TextureAsset[texture.TypeRGBA8UnormSrgb]
	NormalTexture    = texture.TextureAsset[texture.TypeRGBA16F]
	MetallicTexture  = texture.TextureAsset[texture.TypeR8Unorm]
	RoughnessTexture = texture.TextureAsset[texture.TypeR8Unorm]
)

// Material bundles the scalar/color/texture sources the geometry pass
// shader consumes and the lazily-built bind group over them. Every mutator
// rebuilds the bind group; id supports a stable material-grouped sort in
// FrameData.
type Material struct {
	ctx     gfx.Context
	empties *texture.EmptyCache
	layout  gfx.BindGroupLayout

	id uint64

	unlit     bool
	wireframe *mgl32.Vec4

	albedoColor   *mgl32.Vec4
	albedoTexture *AlbedoTexture

	normalTexture *NormalTexture

	metallicScalar  *float32
	metallicTexture *MetallicTexture

	roughnessScalar  *float32
	roughnessTexture *RoughnessTexture

	bindGroup gfx.BindGroup
}

// New constructs a Material and builds its initial bind group. At least one
// of albedoColor or albedoTexture must be non-nil.
func New(ctx gfx.Context, empties *texture.EmptyCache, unlit bool, wireframe *mgl32.Vec4,
	albedoColor *mgl32.Vec4, albedoTexture *AlbedoTexture,
	normalTexture *NormalTexture,
	metallicScalar *float32, metallicTexture *MetallicTexture,
	roughnessScalar *float32, roughnessTexture *RoughnessTexture,
) (*Material, error) {
	if albedoColor == nil && albedoTexture == nil {
		return nil, fmt.Errorf("material: albedo color and texture cannot both be absent")
	}
	layout, err := sharedLayout(ctx)
	if err != nil {
		return nil, err
	}
	m := &Material{
		ctx: ctx, empties: empties, layout: layout,
		id:               nextID.Add(1),
		unlit:            unlit,
		wireframe:        wireframe,
		albedoColor:      albedoColor,
		albedoTexture:    albedoTexture,
		normalTexture:    normalTexture,
		metallicScalar:   metallicScalar,
		metallicTexture:  metallicTexture,
		roughnessScalar:  roughnessScalar,
		roughnessTexture: roughnessTexture,
	}
	if err := m.rebuild(); err != nil {
		return nil, err
	}
	return m, nil
}

// Default returns a white, matte, non-metallic material, matching the
// teacher's fallback-material convention.
func Default(ctx gfx.Context, empties *texture.EmptyCache) (*Material, error) {
	white := mgl32.Vec4{1, 1, 1, 1}
	metallic := float32(0)
	roughness := float32(0.5)
	return New(ctx, empties, false, nil, &white, nil, nil, &metallic, nil, &roughness, nil)
}

// ID is the material's monotonically increasing identity.
func (m *Material) ID() uint64 { return m.id }

// Less orders materials by increasing id, supporting FrameData's stable
// group-by-material sort.
func (m *Material) Less(other *Material) bool { return m.id < other.id }

// Cmp returns -1, 0, or 1 comparing m and other by id.
func (m *Material) Cmp(other *Material) int {
	switch {
	case m.id < other.id:
		return -1
	case m.id > other.id:
		return 1
	default:
		return 0
	}
}

// BindGroup returns the current bind group; valid until the next mutator
// call.
func (m *Material) BindGroup() gfx.BindGroup { return m.bindGroup }

func (m *Material) SetUnlit(unlit bool) error {
	m.unlit = unlit
	return m.rebuild()
}

func (m *Material) SetWireframe(color *mgl32.Vec4) error {
	m.wireframe = color
	return m.rebuild()
}

func (m *Material) SetAlbedo(color *mgl32.Vec4, tex *AlbedoTexture) error {
	if color == nil && tex == nil {
		return fmt.Errorf("material: albedo color and texture cannot both be absent")
	}
	m.albedoColor, m.albedoTexture = color, tex
	return m.rebuild()
}

func (m *Material) SetNormal(tex *NormalTexture) error {
	m.normalTexture = tex
	return m.rebuild()
}

func (m *Material) SetMetallic(scalar *float32, tex *MetallicTexture) error {
	m.metallicScalar, m.metallicTexture = scalar, tex
	return m.rebuild()
}

func (m *Material) SetRoughness(scalar *float32, tex *RoughnessTexture) error {
	m.roughnessScalar, m.roughnessTexture = scalar, tex
	return m.rebuild()
}

func packU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func packF32(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return b
}

func packVec4(v mgl32.Vec4) []byte {
	b := make([]byte, 16)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v[i]))
	}
	return b
}

func (m *Material) uniformBuffer(label string, data []byte) (gfx.Buffer, error) {
	return m.ctx.CreateBufferInit(gfx.BufferInitDescriptor{
		Label:    label,
		Contents: data,
		Usage:    gfx.BufferUsageUniform | gfx.BufferUsageCopyDst,
	})
}

// rebuild recreates every scalar uniform buffer and the bind group,
// resolving each optional texture slot against the empty-texture cache.
func (m *Material) rebuild() error {
	albedoSupplied := Supplied(0)
	if m.albedoColor != nil {
		albedoSupplied |= SuppliedValue
	}
	if m.albedoTexture != nil {
		albedoSupplied |= SuppliedTexture
	}

	wireframeFlag := uint32(0)
	wireframeColor := mgl32.Vec4{0, 0, 0, 0}
	if m.wireframe != nil {
		wireframeFlag = 1
		wireframeColor = *m.wireframe
	}

	albedoColor := mgl32.Vec4{1, 1, 1, 1}
	if m.albedoColor != nil {
		albedoColor = *m.albedoColor
	}

	normalSupplied := uint32(0)
	if m.normalTexture != nil {
		normalSupplied = 1
	}

	metallicSupplied := Supplied(SuppliedValue)
	metallicScalar := float32(0)
	if m.metallicTexture != nil {
		metallicSupplied = SuppliedTexture
	} else if m.metallicScalar != nil {
		metallicScalar = *m.metallicScalar
	}

	roughnessSupplied := Supplied(SuppliedValue)
	roughnessScalar := float32(0.5)
	if m.roughnessTexture != nil {
		roughnessSupplied = SuppliedTexture
	} else if m.roughnessScalar != nil {
		roughnessScalar = *m.roughnessScalar
	}

	unlitBuf, err := m.uniformBuffer("material.unlit", packU32(boolU32(m.unlit)))
	if err != nil {
		return err
	}
	wireframeFlagBuf, err := m.uniformBuffer("material.wireframe_flag", packU32(wireframeFlag))
	if err != nil {
		return err
	}
	wireframeColorBuf, err := m.uniformBuffer("material.wireframe_color", packVec4(wireframeColor))
	if err != nil {
		return err
	}
	albedoSuppliedBuf, err := m.uniformBuffer("material.albedo_supplied", packU32(uint32(albedoSupplied)))
	if err != nil {
		return err
	}
	albedoColorBuf, err := m.uniformBuffer("material.albedo_color", packVec4(albedoColor))
	if err != nil {
		return err
	}
	normalSuppliedBuf, err := m.uniformBuffer("material.normal_supplied", packU32(normalSupplied))
	if err != nil {
		return err
	}
	metallicSuppliedBuf, err := m.uniformBuffer("material.metallic_supplied", packU32(uint32(metallicSupplied)))
	if err != nil {
		return err
	}
	metallicScalarBuf, err := m.uniformBuffer("material.metallic_scalar", packF32(metallicScalar))
	if err != nil {
		return err
	}
	roughnessSuppliedBuf, err := m.uniformBuffer("material.roughness_supplied", packU32(uint32(roughnessSupplied)))
	if err != nil {
		return err
	}
	roughnessScalarBuf, err := m.uniformBuffer("material.roughness_scalar", packF32(roughnessScalar))
	if err != nil {
		return err
	}

	var albedoView, normalView, metallicView, roughnessView gfx.TextureView
	var albedoSampler, normalSampler, metallicSampler, roughnessSampler gfx.Sampler

	if m.albedoTexture != nil {
		albedoView, albedoSampler = m.albedoTexture.View, m.albedoTexture.Sampler
	} else if albedoView, albedoSampler, err = m.empty(gfx.RGBA8UnormSrgb); err != nil {
		return err
	}
	if m.normalTexture != nil {
		normalView, normalSampler = m.normalTexture.View, m.normalTexture.Sampler
	} else if normalView, normalSampler, err = m.empty(gfx.RGBA16F); err != nil {
		return err
	}
	if m.metallicTexture != nil {
		metallicView, metallicSampler = m.metallicTexture.View, m.metallicTexture.Sampler
	} else if metallicView, metallicSampler, err = m.empty(gfx.R8Unorm); err != nil {
		return err
	}
	if m.roughnessTexture != nil {
		roughnessView, roughnessSampler = m.roughnessTexture.View, m.roughnessTexture.Sampler
	} else if roughnessView, roughnessSampler, err = m.empty(gfx.R8Unorm); err != nil {
		return err
	}

	entries := []gfx.BindGroupEntry{
		{Binding: BindingUnlit, Resource: gfx.BindGroupEntryResource{Buffer: unlitBuf}},
		{Binding: BindingWireframeFlag, Resource: gfx.BindGroupEntryResource{Buffer: wireframeFlagBuf}},
		{Binding: BindingWireframeColor, Resource: gfx.BindGroupEntryResource{Buffer: wireframeColorBuf}},
		{Binding: BindingAlbedoSupplied, Resource: gfx.BindGroupEntryResource{Buffer: albedoSuppliedBuf}},
		{Binding: BindingAlbedoColor, Resource: gfx.BindGroupEntryResource{Buffer: albedoColorBuf}},
		{Binding: BindingAlbedoTexture, Resource: gfx.BindGroupEntryResource{Texture: albedoView}},
		{Binding: BindingAlbedoSampler, Resource: gfx.BindGroupEntryResource{Sampler: albedoSampler}},
		{Binding: BindingNormalSupplied, Resource: gfx.BindGroupEntryResource{Buffer: normalSuppliedBuf}},
		{Binding: BindingNormalTexture, Resource: gfx.BindGroupEntryResource{Texture: normalView}},
		{Binding: BindingNormalSampler, Resource: gfx.BindGroupEntryResource{Sampler: normalSampler}},
		{Binding: BindingMetallicSupplied, Resource: gfx.BindGroupEntryResource{Buffer: metallicSuppliedBuf}},
		{Binding: BindingMetallicScalar, Resource: gfx.BindGroupEntryResource{Buffer: metallicScalarBuf}},
		{Binding: BindingMetallicTexture, Resource: gfx.BindGroupEntryResource{Texture: metallicView}},
		{Binding: BindingMetallicSampler, Resource: gfx.BindGroupEntryResource{Sampler: metallicSampler}},
		{Binding: BindingRoughnessSupplied, Resource: gfx.BindGroupEntryResource{Buffer: roughnessSuppliedBuf}},
		{Binding: BindingRoughnessScalar, Resource: gfx.BindGroupEntryResource{Buffer: roughnessScalarBuf}},
		{Binding: BindingRoughnessTexture, Resource: gfx.BindGroupEntryResource{Texture: roughnessView}},
		{Binding: BindingRoughnessSampler, Resource: gfx.BindGroupEntryResource{Sampler: roughnessSampler}},
	}

	bg, err := m.ctx.CreateBindGroup(gfx.BindGroupDescriptor{
		Label:   "material",
		Layout:  m.layout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("material: building bind group: %w", err)
	}
	m.bindGroup = bg
	return nil
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// empty resolves the empty-texture cache's fallback view+sampler for a
// material slot left unbound.
func (m *Material) empty(fallback gfx.TextureType) (gfx.TextureView, gfx.Sampler, error) {
	e, err := m.empties.Get(m.ctx, fallback)
	if err != nil {
		return nil, nil, err
	}
	return e.View, e.Sampler, nil
}

var layoutMu sync.Mutex
var layoutCache = map[gfx.Context]gfx.BindGroupLayout{}

// sharedLayout builds (once per Context) the 18-entry bind group layout
// spec.md §4.7 fixes, caching it since every Material sharing a pipeline
// must use an identical layout.
func sharedLayout(ctx gfx.Context) (gfx.BindGroupLayout, error) {
	layoutMu.Lock()
	defer layoutMu.Unlock()
	if l, ok := layoutCache[ctx]; ok {
		return l, nil
	}

	entries := make([]gfx.BindGroupLayoutEntry, bindingCount)
	bufferBindings := map[int]bool{
		BindingUnlit: true, BindingWireframeFlag: true, BindingWireframeColor: true,
		BindingAlbedoSupplied: true, BindingAlbedoColor: true,
		BindingNormalSupplied: true,
		BindingMetallicSupplied: true, BindingMetallicScalar: true,
		BindingRoughnessSupplied: true, BindingRoughnessScalar: true,
	}
	samplerBindings := map[int]bool{
		BindingAlbedoSampler: true, BindingNormalSampler: true,
		BindingMetallicSampler: true, BindingRoughnessSampler: true,
	}
	for i := 0; i < bindingCount; i++ {
		typ := gfx.BindingTypeTexture
		switch {
		case bufferBindings[i]:
			typ = gfx.BindingTypeBuffer
		case samplerBindings[i]:
			typ = gfx.BindingTypeSampler
		}
		entries[i] = gfx.BindGroupLayoutEntry{
			Binding:    uint32(i),
			Visibility: gfx.VisibilityVertex | gfx.VisibilityFragment,
			Type:       typ,
		}
	}

	l, err := ctx.CreateBindGroupLayout(gfx.BindGroupLayoutDescriptor{
		Label:   "material",
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("material: building bind group layout: %w", err)
	}
	layoutCache[ctx] = l
	return l, nil
}
