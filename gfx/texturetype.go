// Package gfx defines the abstract Graphics Context the rendering core
// depends on: device/queue semantics, buffer/texture/sampler/bindgroup
// creation, command encoding, and frame acquire/present. Concrete backends
// (see gfxwgpu) implement this package's interfaces; nothing in this
// package imports a concrete GPU API.
package gfx

import "fmt"

// TextureType is the closed set of texture formats the engine understands.
// It is a value-level stand-in for what the source expresses with
// compile-time-constant generics (`const T: TextureType`): a sum type
// dispatched through this table rather than monomorphized per variant.
type TextureType int

const (
	RGBA32F TextureType = iota
	RGBA16F
	RGBA8Unorm
	RGBA8UnormSrgb
	R32F
	R16F
	R8Unorm
	R8Uint
	R8Snorm
)

var textureTypeNames = map[TextureType]string{
	RGBA32F:        "RGBA32F",
	RGBA16F:        "RGBA16F",
	RGBA8Unorm:     "RGBA8Unorm",
	RGBA8UnormSrgb: "RGBA8UnormSrgb",
	R32F:           "R32F",
	R16F:           "R16F",
	R8Unorm:        "R8Unorm",
	R8Uint:         "R8Uint",
	R8Snorm:        "R8Snorm",
}

func (t TextureType) String() string {
	if name, ok := textureTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TextureType(%d)", int(t))
}

// bytesPerPixelTable mirrors the byte widths a concrete WGPU backend would
// report for each format: four-channel 32-bit float is 16 bytes, 16-bit
// float is 8, 8-bit unorm/srgb is 4, single-channel formats scale down by 4.
var bytesPerPixelTable = map[TextureType]uint32{
	RGBA32F:        16,
	RGBA16F:        8,
	RGBA8Unorm:     4,
	RGBA8UnormSrgb: 4,
	R32F:           4,
	R16F:           2,
	R8Unorm:        1,
	R8Uint:         1,
	R8Snorm:        1,
}

// BytesPerPixel returns the number of bytes a single texel of t occupies.
func BytesPerPixel(t TextureType) uint32 {
	return bytesPerPixelTable[t]
}

// AllTextureTypes lists every variant, in declaration order.
var AllTextureTypes = []TextureType{
	RGBA32F, RGBA16F, RGBA8Unorm, RGBA8UnormSrgb, R32F, R16F, R8Unorm, R8Uint, R8Snorm,
}
