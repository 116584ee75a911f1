package texture

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/ashenengine/ashen/gfx"
)

// Empty is a cached 1x1 fallback texture view + sampler, bound in place of
// an unfilled material texture slot.
type Empty struct {
	View    gfx.TextureView
	Sampler gfx.Sampler
}

// EmptyCache lazily creates and retains one Empty per gfx.TextureType.
// Entries are keyed by type only, not by Graphics Context: the first Get
// for a type creates the texture against the ctx passed then, and later
// Gets for that type return it whatever ctx they pass. Material uses it to
// fill binding slots the caller left unset (spec.md §4.6's empty-texture
// cache).
type EmptyCache struct {
	mu      sync.Mutex
	entries map[gfx.TextureType]Empty
}

// NewEmptyCache returns an empty cache ready for lazy population.
func NewEmptyCache() *EmptyCache {
	return &EmptyCache{entries: make(map[gfx.TextureType]Empty)}
}

// Get returns the cached Empty for t, creating it against ctx on first use.
func (c *EmptyCache) Get(ctx gfx.Context, t gfx.TextureType) (Empty, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[t]; ok {
		return e, nil
	}
	e, err := c.create(ctx, t)
	if err != nil {
		return Empty{}, fmt.Errorf("texture: creating empty %s texture: %w", t, err)
	}
	c.entries[t] = e
	return e, nil
}

// opaqueWhite is the unit-valued pixel every empty texture holds: full
// intensity on every present channel, which is 1.0 in float formats and
// 127 (1.0) in R8Snorm.
var opaqueWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func (c *EmptyCache) create(ctx gfx.Context, t gfx.TextureType) (Empty, error) {
	data := appendPixel(nil, opaqueWhite, t)

	tex, err := ctx.CreateTexture(gfx.TextureDescriptor{
		Label:  "empty-" + t.String(),
		Size:   gfx.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1},
		Format: t,
		Usage:  gfx.TextureUsageTextureBinding | gfx.TextureUsageCopyDst,
	})
	if err != nil {
		return Empty{}, err
	}
	ctx.Queue().WriteTexture(tex, data, gfx.BytesPerPixel(t), 1, gfx.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1})

	sampler, err := ctx.CreateSampler(gfx.DefaultSamplerDescriptor)
	if err != nil {
		return Empty{}, err
	}
	return Empty{View: tex.CreateView(), Sampler: sampler}, nil
}
