package texture

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/ashenengine/ashen/gfx"
	"github.com/ashenengine/ashen/gfx/gfxtest"
)

func packedArtifact(width, height uint32, tag gfx.TextureType, pixels []byte) []byte {
	var body bytes.Buffer
	header := make([]byte, 13)
	binary.LittleEndian.PutUint32(header[0:4], width)
	binary.LittleEndian.PutUint32(header[4:8], height)
	binary.LittleEndian.PutUint32(header[8:12], 1)
	header[12] = byte(tag)
	body.Write(header)
	body.Write(pixels)
	return body.Bytes()
}

func TestReadPackedTextureUploadsAndReturnsDimensions(t *testing.T) {
	ctx := gfxtest.New(64, 64)
	pixels := make([]byte, 4*2*2) // 2x2 RGBA8Unorm
	for i := range pixels {
		pixels[i] = byte(i)
	}
	data := packedArtifact(2, 2, gfx.RGBA8Unorm, pixels)

	asset, err := readPackedTexture[TypeRGBA8Unorm](ctx, data)
	if err != nil {
		t.Fatalf("readPackedTexture: %v", err)
	}
	if asset.Width != 2 || asset.Height != 2 {
		t.Fatalf("expected 2x2, got %dx%d", asset.Width, asset.Height)
	}
	if asset.Texture == nil || asset.View == nil || asset.Sampler == nil {
		t.Fatal("expected a fully populated TextureAsset")
	}
	if len(ctx.Textures) != 1 {
		t.Fatalf("expected exactly one texture created, got %d", len(ctx.Textures))
	}
}

func TestReadPackedTextureRejectsMismatchedTag(t *testing.T) {
	ctx := gfxtest.New(64, 64)
	pixels := make([]byte, 1)
	data := packedArtifact(1, 1, gfx.R8Unorm, pixels)

	_, err := readPackedTexture[TypeRGBA8Unorm](ctx, data)
	if err == nil {
		t.Fatal("expected a tag-mismatch error")
	}
}

func TestReadPackedTextureRejectsTruncatedHeader(t *testing.T) {
	ctx := gfxtest.New(64, 64)
	_, err := readPackedTexture[TypeRGBA8Unorm](ctx, []byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected an error for a too-short artifact")
	}
}

func TestTextureAssetTypeNameMatchesImporterTargetTypeName(t *testing.T) {
	asset := TextureAsset[TypeR8Snorm]{}
	importer := TextureImporter[TypeR8Snorm]{}
	if asset.TypeName() != importer.TargetTypeName() {
		t.Fatalf("expected matching type names, got %q vs %q", asset.TypeName(), importer.TargetTypeName())
	}
}
