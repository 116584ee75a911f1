package texture

import (
	"image"
	"image/color"
	"math"

	"github.com/ashenengine/ashen/gfx"
)

// Pack converts img into the row-major byte layout gfx.TextureType t
// dictates: bytes_per_pixel(t) bytes per texel, no padding between rows.
// RGBA16F/R16F pack half floats via a manual IEEE 754 binary16 packer (no
// half-float library appears anywhere in the retrieved pack); RGBA32F/R32F
// pack full float32 bit patterns; R8Snorm remaps the image's [0,255]
// channel into a signed [-127,127] range.
func Pack(img image.Image, t gfx.TextureType) []byte {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	bpp := gfx.BytesPerPixel(t)
	out := make([]byte, 0, int(bpp)*width*height)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out = appendPixel(out, img.At(x, y), t)
		}
	}
	return out
}

// appendPixel packs a single texel onto out per t's layout.
func appendPixel(out []byte, c color.Color, t gfx.TextureType) []byte {
	r, g, b, a := color.RGBAModel.Convert(c).(color.RGBA).R,
		color.RGBAModel.Convert(c).(color.RGBA).G,
		color.RGBAModel.Convert(c).(color.RGBA).B,
		color.RGBAModel.Convert(c).(color.RGBA).A

	switch t {
	case gfx.RGBA32F:
		return appendFloat32s(out, unormToFloat(r), unormToFloat(g), unormToFloat(b), unormToFloat(a))
	case gfx.RGBA16F:
		return appendHalfs(out, unormToFloat(r), unormToFloat(g), unormToFloat(b), unormToFloat(a))
	case gfx.RGBA8Unorm, gfx.RGBA8UnormSrgb:
		return append(out, r, g, b, a)
	case gfx.R32F:
		return appendFloat32s(out, unormToFloat(r))
	case gfx.R16F:
		return appendHalfs(out, unormToFloat(r))
	case gfx.R8Unorm:
		return append(out, r)
	case gfx.R8Uint:
		return append(out, r)
	case gfx.R8Snorm:
		return append(out, unormToSnorm(r))
	default:
		panic("texture: unknown texture type")
	}
}

func unormToFloat(v uint8) float32 {
	return float32(v) / 255
}

// unormToSnorm remaps an 8-bit unorm channel [0,255] onto the signed
// normalized range a R8Snorm texel occupies: value 128 (mid-grey, the
// "zero" scalar a metallic/roughness map centers on) round-trips to 0.
func unormToSnorm(v uint8) byte {
	f := float64(v)/255*2 - 1
	scaled := math.Round(f * 127)
	if scaled > 127 {
		scaled = 127
	}
	if scaled < -127 {
		scaled = -127
	}
	return byte(int8(scaled))
}

func appendFloat32s(out []byte, values ...float32) []byte {
	for _, v := range values {
		bits := math.Float32bits(v)
		out = append(out, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}
	return out
}

func appendHalfs(out []byte, values ...float32) []byte {
	for _, v := range values {
		h := float32ToHalf(v)
		out = append(out, byte(h), byte(h>>8))
	}
	return out
}

// float32ToHalf converts v to an IEEE 754 binary16 bit pattern, rounding
// to nearest and flushing subnormal/overflowing results to zero/infinity.
// There is no half-float library in the retrieved pack, so this is a
// hand-rolled bit-twiddling packer rather than a borrowed one.
func float32ToHalf(v float32) uint16 {
	bits := math.Float32bits(v)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xff) - 127 + 15
	mantissa := bits & 0x7fffff

	switch {
	case exp <= 0:
		// Too small for a normal half; flush to signed zero.
		return sign
	case exp >= 0x1f:
		// Overflow (including the source being inf/NaN); saturate to
		// signed infinity.
		return sign | 0x7c00
	default:
		h := uint32(exp)<<10 | mantissa>>13
		// Round to nearest, ties to even; a carry out of the mantissa
		// bumps the exponent and reaches infinity at the top of the range.
		if rem := mantissa & 0x1fff; rem > 0x1000 || (rem == 0x1000 && h&1 == 1) {
			h++
		}
		return sign | uint16(h)
	}
}
