// Package texture implements the format-parameterized texture family:
// decoding source images, converting them into the channel/bit layout a
// gfx.TextureType dictates, and a per-type cache of empty fallback
// textures for unbound material slots.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for unknown file extensions and for
// source formats the decoder recognizes by extension but cannot decode.
// ICO and HDR fall in the second bucket: ICO has no maintained pure-Go decoder in this module's dependency
// set, and HDR's floating-point radiance format needs a tone-mapping step
// the spec leaves undefined (see spec.md §9's todo!() seam resolution).
var ErrUnsupportedFormat = errors.New("texture: unsupported source format")

// Decode infers a source image's format from its file extension and
// decodes it into a canonical image.Image. PNG, JPEG, BMP, GIF, TIFF, and
// WebP are supported; ICO and HDR report ErrUnsupportedFormat.
func Decode(path string, data []byte) (image.Image, error) {
	r := bytes.NewReader(data)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".gif":
		return gif.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	case ".tif", ".tiff":
		return tiff.Decode(r)
	case ".webp":
		return webp.Decode(r)
	case ".ico", ".hdr":
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}
