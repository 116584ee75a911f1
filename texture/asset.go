package texture

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/ashenengine/ashen/assets"
	"github.com/ashenengine/ashen/gfx"
)

// TextureAsset is the runtime GPU-resident form of a texture of format T.
// It satisfies assets.AssetTrait; loading one end-to-end additionally needs
// a gfx.Context to upload the decoded bytes, so LoadTexture (not
// assets.Load directly) is the entry point callers use.
type TextureAsset[T Type] struct {
	Texture gfx.Texture
	View    gfx.TextureView
	Sampler gfx.Sampler
	Width   uint32
	Height  uint32
}

// TypeName identifies this asset family in the manifest; it must match
// TextureImporter[T]'s TargetTypeName for the same T.
func (TextureAsset[T]) TypeName() string {
	var tag T
	return "texture." + tag.TextureType().String()
}

// readPackedTexture decodes the wire format spec.md §6 defines for texture
// artifacts — [Extent3D][TextureType tag][row-major bytes] — and uploads
// the pixel bytes to a fresh GPU texture via ctx.
func readPackedTexture[T Type](ctx gfx.Context, data []byte) (TextureAsset[T], error) {
	var zero TextureAsset[T]
	if len(data) < 13 {
		return zero, fmt.Errorf("texture: packed artifact too short")
	}
	width := binary.LittleEndian.Uint32(data[0:4])
	height := binary.LittleEndian.Uint32(data[4:8])
	depth := binary.LittleEndian.Uint32(data[8:12])
	tag := gfx.TextureType(data[12])
	pixels := data[13:]

	var want T
	if tag != want.TextureType() {
		return zero, fmt.Errorf("texture: packed tag %s does not match asset type %s", tag, want.TextureType())
	}
	if depth == 0 {
		depth = 1
	}

	tex, err := ctx.CreateTexture(gfx.TextureDescriptor{
		Label:  "texture." + tag.String(),
		Size:   gfx.Extent3D{Width: width, Height: height, DepthOrArrayLayers: depth},
		Format: tag,
		Usage:  gfx.TextureUsageTextureBinding | gfx.TextureUsageCopyDst,
	})
	if err != nil {
		return zero, fmt.Errorf("texture: creating GPU texture: %w", err)
	}
	ctx.Queue().WriteTexture(tex, pixels, gfx.BytesPerPixel(tag)*width, height, gfx.Extent3D{Width: width, Height: height, DepthOrArrayLayers: depth})

	sampler, err := ctx.CreateSampler(gfx.DefaultSamplerDescriptor)
	if err != nil {
		return zero, fmt.Errorf("texture: creating sampler: %w", err)
	}

	return TextureAsset[T]{Texture: tex, View: tex.CreateView(), Sampler: sampler, Width: width, Height: height}, nil
}

// LoadTexture loads id from server as a TextureAsset[T], uploading it to
// ctx. It wraps assets.Load, passing readPackedTexture bound to ctx as the
// reader, since the upload needs a gfx.Context that assets.Load does not
// carry.
func LoadTexture[T Type](ctx gfx.Context, server *assets.AssetServer, id assets.ID) (*assets.Handle[TextureAsset[T]], error) {
	var zero TextureAsset[T]
	return assets.Load(server, id, zero.TypeName(), func(data []byte) (TextureAsset[T], error) {
		return readPackedTexture[T](ctx, data)
	})
}

// TextureImporter packs a source image file into the texture wire format
// for format T: decode via extension sniffing, convert to T's channel
// layout, prepend the Extent3D+tag header, optionally zstd-compress per
// info.Pack, and write the artifact.
type TextureImporter[T Type] struct{}

func (TextureImporter[T]) TargetTypeName() string {
	var tag T
	return "texture." + tag.TextureType().String()
}

func (TextureImporter[T]) UnimportedFSType() assets.FSKind { return assets.FSFile }

func (TextureImporter[T]) VerifySource(srcPath string) error {
	fi, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("%w: %v", assets.ErrSourceUnreadable, err)
	}
	if fi.IsDir() {
		return fmt.Errorf("%w: expected a file", assets.ErrSourceUnreadable)
	}
	return nil
}

func (TextureImporter[T]) Import(srcPath string, info assets.AssetInfo, assetsDir string) (map[string]string, error) {
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", assets.ErrSourceUnreadable, err)
	}

	img, err := Decode(srcPath, raw)
	if err != nil {
		return nil, err
	}

	var tag T
	t := tag.TextureType()
	bounds := img.Bounds()
	width, height := uint32(bounds.Dx()), uint32(bounds.Dy())
	pixels := Pack(img, t)

	var body bytes.Buffer
	header := make([]byte, 13)
	binary.LittleEndian.PutUint32(header[0:4], width)
	binary.LittleEndian.PutUint32(header[4:8], height)
	binary.LittleEndian.PutUint32(header[8:12], 1)
	header[12] = byte(t)
	body.Write(header)
	body.Write(pixels)

	payload := body.Bytes()
	if info.Pack.Compressed() {
		payload, err = compressZstdLevel(payload, info.Pack.Level())
		if err != nil {
			return nil, fmt.Errorf("texture: compressing artifact: %w", err)
		}
	}

	outPath := filepath.Join(assetsDir, info.RelativePath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, fmt.Errorf("texture: creating artifact directory: %w", err)
	}
	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		return nil, fmt.Errorf("texture: writing artifact: %w", err)
	}

	return map[string]string{
		"width":  fmt.Sprint(width),
		"height": fmt.Sprint(height),
	}, nil
}

func compressZstdLevel(data []byte, level int) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}
