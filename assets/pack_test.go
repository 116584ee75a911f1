package assets

import (
	"os"
	"path/filepath"
	"testing"
)

// copyImporter is a minimal file Importer used only by these tests: it
// copies srcPath's bytes verbatim to the packed artifact location.
type copyImporter struct{}

func (copyImporter) TargetTypeName() string   { return "test.copy" }
func (copyImporter) UnimportedFSType() FSKind { return FSFile }
func (copyImporter) VerifySource(path string) error {
	_, err := os.Stat(path)
	return err
}
func (copyImporter) Import(srcPath string, info AssetInfo, assetsDir string) (map[string]string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, err
	}
	dst := filepath.Join(assetsDir, info.RelativePath)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return nil, err
	}
	return map[string]string{"bytes": ""}, nil
}

func TestPackAssetHappyPath(t *testing.T) {
	assetsDir := t.TempDir()
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "source.bin")
	if err := os.WriteFile(src, []byte("hello"), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	info, err := PackAsset[struct{}](assetsDir, src, "blobs/hello.bin", "hello", PackInfo{}, copyImporter{})
	if err != nil {
		t.Fatalf("PackAsset: %v", err)
	}
	if info.TypeName != "test.copy" {
		t.Fatalf("expected type name test.copy, got %s", info.TypeName)
	}

	manifest, err := LoadManifest(assetsDir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	got, ok := manifest.Find(info.AssetID)
	if !ok {
		t.Fatalf("expected manifest entry for packed asset")
	}
	data, err := os.ReadFile(filepath.Join(assetsDir, got.RelativePath))
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected artifact contents %q", data)
	}
}

func TestPackAssetRejectsExistingOutputFile(t *testing.T) {
	assetsDir := t.TempDir()
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "source.bin")
	os.WriteFile(src, []byte("x"), 0o644)

	outPath := filepath.Join(assetsDir, "blobs/hello.bin")
	os.MkdirAll(filepath.Dir(outPath), 0o755)
	os.WriteFile(outPath, []byte("occupied"), 0o644)

	_, err := PackAsset[struct{}](assetsDir, src, "blobs/hello.bin", "hello", PackInfo{}, copyImporter{})
	if err != ErrOutputExists {
		t.Fatalf("expected ErrOutputExists, got %v", err)
	}
}

func TestDeleteAsset(t *testing.T) {
	assetsDir := t.TempDir()
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "source.bin")
	os.WriteFile(src, []byte("hello"), 0o644)

	info, err := PackAsset[struct{}](assetsDir, src, "blobs/hello.bin", "hello", PackInfo{}, copyImporter{})
	if err != nil {
		t.Fatalf("PackAsset: %v", err)
	}

	if err := DeleteAsset(assetsDir, info.AssetID, nil); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}

	manifest, err := LoadManifest(assetsDir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if _, ok := manifest.Find(info.AssetID); ok {
		t.Fatalf("expected manifest entry removed")
	}
	if _, err := os.Stat(filepath.Join(assetsDir, info.RelativePath)); !os.IsNotExist(err) {
		t.Fatalf("expected artifact removed from disk")
	}
}

func TestDeleteAssetMissingEntryErrors(t *testing.T) {
	assetsDir := t.TempDir()
	NewManifest().Save(assetsDir)
	if err := DeleteAsset(assetsDir, NewID(), nil); err != ErrAssetNotFound {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}
