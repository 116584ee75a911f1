package texture

import "github.com/ashenengine/ashen/gfx"

// Type is the small trait spec.md §9 asks for in place of the source's
// compile-time-constant generics (`const T: TextureType`): a marker type
// per TextureType variant, used as the type parameter to TextureAsset/
// TextureImporter so each texture asset's format is fixed at compile time
// while still dispatching through the gfx.TextureType value it names.
type Type interface {
	TextureType() gfx.TextureType
}

type (
	TypeRGBA32F        struct{}
	TypeRGBA16F        struct{}
	TypeRGBA8Unorm     struct{}
	TypeRGBA8UnormSrgb struct{}
	TypeR32F           struct{}
	TypeR16F           struct{}
	TypeR8Unorm        struct{}
	TypeR8Uint         struct{}
	TypeR8Snorm        struct{}
)

func (TypeRGBA32F) TextureType() gfx.TextureType        { return gfx.RGBA32F }
func (TypeRGBA16F) TextureType() gfx.TextureType        { return gfx.RGBA16F }
func (TypeRGBA8Unorm) TextureType() gfx.TextureType     { return gfx.RGBA8Unorm }
func (TypeRGBA8UnormSrgb) TextureType() gfx.TextureType { return gfx.RGBA8UnormSrgb }
func (TypeR32F) TextureType() gfx.TextureType           { return gfx.R32F }
func (TypeR16F) TextureType() gfx.TextureType           { return gfx.R16F }
func (TypeR8Unorm) TextureType() gfx.TextureType        { return gfx.R8Unorm }
func (TypeR8Uint) TextureType() gfx.TextureType         { return gfx.R8Uint }
func (TypeR8Snorm) TextureType() gfx.TextureType        { return gfx.R8Snorm }
