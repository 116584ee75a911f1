package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// MinCompressionLevel is the lowest zstd compression level the pipeline
	// will write.
	MinCompressionLevel = 0
	// MaxCompressionLevel is the highest zstd compression level the
	// pipeline will write.
	MaxCompressionLevel = 22
	// DefaultCompressionLevel is the conventional level for callers that
	// want compression. PackAsset does not apply it: a PackInfo with a nil
	// Compression stores the artifact uncompressed.
	DefaultCompressionLevel = 3
	// CompressionAlgo names the single supported pack compression
	// algorithm.
	CompressionAlgo = "zstd"

	manifestFileName = "manifest.toml"
)

// PackInfo records whether (and how) an artifact was compressed when
// packed. Compression is nil when the artifact is stored uncompressed.
type PackInfo struct {
	Compression *int `toml:"compression,omitempty"`
}

// Compressed reports whether p specifies a compression level.
func (p PackInfo) Compressed() bool {
	return p.Compression != nil
}

// Level returns the compression level, or 0 if uncompressed.
func (p PackInfo) Level() int {
	if p.Compression == nil {
		return 0
	}
	return *p.Compression
}

// AssetInfo is one manifest entry describing a packed artifact.
type AssetInfo struct {
	AssetID      ID                `toml:"asset_id"`
	RelativePath string            `toml:"relative_path"`
	Pack         PackInfo          `toml:"pack"`
	Name         string            `toml:"name"`
	Timestamp    time.Time         `toml:"timestamp"`
	TypeName     string            `toml:"type_name"`
	Extra        map[string]string `toml:"extra"`
}

// Manifest is the on-disk, ordered record of every packed asset under an
// assets directory. It is the single source of truth for what exists.
type Manifest struct {
	SchemaVersion int         `toml:"schema_version"`
	Assets        []AssetInfo `toml:"assets"`
}

const currentSchemaVersion = 1

// NewManifest returns an empty manifest at the current schema version.
func NewManifest() *Manifest {
	return &Manifest{SchemaVersion: currentSchemaVersion}
}

// ManifestPath returns the canonical manifest.toml location under an assets
// directory.
func ManifestPath(assetsDir string) string {
	return filepath.Join(assetsDir, manifestFileName)
}

// LoadManifest reads and parses manifest.toml from assetsDir. A missing
// file is treated as ErrManifestNotLoaded.
func LoadManifest(assetsDir string) (*Manifest, error) {
	data, err := os.ReadFile(ManifestPath(assetsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrManifestNotLoaded
		}
		return nil, fmt.Errorf("assets: reading manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("assets: parsing manifest: %w", err)
	}
	return &m, nil
}

// Save serializes m to a temporary file under assetsDir and atomically
// renames it over manifest.toml, so readers never observe a partially
// written manifest.
func (m *Manifest) Save(assetsDir string) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("assets: serializing manifest: %w", err)
	}
	tmp, err := os.CreateTemp(assetsDir, manifestFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("assets: creating temp manifest: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("assets: writing temp manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("assets: closing temp manifest: %w", err)
	}
	if err := os.Rename(tmpPath, ManifestPath(assetsDir)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("assets: replacing manifest: %w", err)
	}
	return nil
}

// Find returns the AssetInfo with the given ID, if any.
func (m *Manifest) Find(id ID) (*AssetInfo, bool) {
	for i := range m.Assets {
		if m.Assets[i].AssetID == id {
			return &m.Assets[i], true
		}
	}
	return nil, false
}

// FindByName returns the AssetInfo with the given human name. Returns
// ErrDuplicateNames if more than one entry shares the name.
func (m *Manifest) FindByName(name string) (*AssetInfo, error) {
	var found *AssetInfo
	for i := range m.Assets {
		if m.Assets[i].Name == name {
			if found != nil {
				return nil, ErrDuplicateNames
			}
			found = &m.Assets[i]
		}
	}
	if found == nil {
		return nil, ErrAssetNotFound
	}
	return found, nil
}

// cleanRelative lexically cleans path and verifies it is relative.
func cleanRelative(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if filepath.IsAbs(cleaned) {
		return "", ErrInvalidRelativePath
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidRelativePath
	}
	return cleaned, nil
}
