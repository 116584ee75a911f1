package assets

import (
	"path/filepath"
	"testing"
)

func TestManifestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := NewManifest()
	level := DefaultCompressionLevel
	id := NewID()
	m.Assets = append(m.Assets, AssetInfo{
		AssetID:      id,
		RelativePath: "textures/rock.tex",
		Pack:         PackInfo{Compression: &level},
		Name:         "rock",
		TypeName:     "texture",
		Extra:        map[string]string{"width": "8"},
	})

	if err := m.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(loaded.Assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(loaded.Assets))
	}
	got, ok := loaded.Find(id)
	if !ok {
		t.Fatalf("expected to find asset by id")
	}
	if got.RelativePath != "textures/rock.tex" || !got.Pack.Compressed() || got.Pack.Level() != DefaultCompressionLevel {
		t.Fatalf("unexpected round-tripped entry: %+v", got)
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadManifest(dir)
	if err != ErrManifestNotLoaded {
		t.Fatalf("expected ErrManifestNotLoaded, got %v", err)
	}
}

func TestManifestFindByNameDuplicate(t *testing.T) {
	m := NewManifest()
	m.Assets = append(m.Assets,
		AssetInfo{AssetID: NewID(), Name: "dup"},
		AssetInfo{AssetID: NewID(), Name: "dup"},
	)
	if _, err := m.FindByName("dup"); err != ErrDuplicateNames {
		t.Fatalf("expected ErrDuplicateNames, got %v", err)
	}
}

func TestCleanRelativeRejectsEscapes(t *testing.T) {
	if _, err := cleanRelative("../escape"); err == nil {
		t.Fatalf("expected error for path escaping assets dir")
	}
	if _, err := cleanRelative(filepath.Join("/abs", "path")); err == nil {
		t.Fatalf("expected error for absolute path")
	}
	cleaned, err := cleanRelative("a/./b/../c.tex")
	if err != nil {
		t.Fatalf("cleanRelative: %v", err)
	}
	if cleaned != filepath.Join("a", "c.tex") {
		t.Fatalf("expected cleaned path a/c.tex, got %s", cleaned)
	}
}
