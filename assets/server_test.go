package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func setupServerWithOneAsset(t *testing.T) (*AssetServer, AssetInfo) {
	t.Helper()
	assetsDir := t.TempDir()
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "source.bin")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}
	info, err := PackAsset[struct{}](assetsDir, src, "blobs/payload.bin", "payload", PackInfo{}, copyImporter{})
	if err != nil {
		t.Fatalf("PackAsset: %v", err)
	}
	server := NewAssetServer()
	if err := server.SetAssetsDir(assetsDir); err != nil {
		t.Fatalf("SetAssetsDir: %v", err)
	}
	return server, info
}

func readBytes(data []byte) ([]byte, error) { return data, nil }

func TestAssetServerLoadNotFound(t *testing.T) {
	server, _ := setupServerWithOneAsset(t)
	_, err := Load[[]byte](server, NewID(), "test.copy", readBytes)
	if err != ErrAssetNotFound {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestAssetServerLoadTypeMismatch(t *testing.T) {
	server, info := setupServerWithOneAsset(t)
	_, err := Load[[]byte](server, info.AssetID, "wrong.type", readBytes)
	if err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

func TestAssetServerRefcountLifecycle(t *testing.T) {
	server, info := setupServerWithOneAsset(t)

	h1, err := Load[[]byte](server, info.AssetID, "test.copy", readBytes)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := Load[[]byte](server, info.AssetID, "test.copy", readBytes); err != ErrAssetAlreadyLoaded {
		t.Fatalf("expected ErrAssetAlreadyLoaded, got %v", err)
	}

	h2 := h1.Clone()
	if !server.IsLoaded(info.AssetID) {
		t.Fatalf("expected asset loaded")
	}

	h1.Drop()
	if !server.IsLoaded(info.AssetID) {
		t.Fatalf("expected asset still loaded after dropping one of two handles")
	}

	h2.Drop()
	if server.IsLoaded(info.AssetID) {
		t.Fatalf("expected asset unloaded after dropping last handle")
	}
}

func TestAssetServerFindByName(t *testing.T) {
	server, info := setupServerWithOneAsset(t)
	found, err := server.FindByName(info.Name)
	if err != nil {
		t.Fatalf("FindByName: %v", err)
	}
	if found.AssetID != info.AssetID {
		t.Fatalf("expected matching asset id")
	}
	if _, err := server.FindByName("does-not-exist"); err != ErrAssetNotFound {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}
