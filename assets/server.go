package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// record is the server's bookkeeping for one currently-loaded asset: the
// boxed runtime value and how many live Handles reference it.
type record struct {
	value    any
	refCount int
}

// AssetServer owns the manifest for one assets directory and the cache of
// currently-loaded asset instances. Reads (FindByName, ListLoaded, IsLoaded) require
// only a shared lock; Load/unload require the writer lock, matching the
// single-writer/many-readers resource model the rest of the engine core
// uses for shared state.
type AssetServer struct {
	mu        sync.RWMutex
	assetsDir string
	manifest  *Manifest
	loaded    map[ID]*record
}

// NewAssetServer constructs a server with no assets directory set. Callers
// must call SetAssetsDir before Load.
func NewAssetServer() *AssetServer {
	return &AssetServer{}
}

// SetAssetsDir canonicalizes path, loads its manifest, and replaces the
// server's state atomically. On failure the previous state (if any) is
// left untouched.
func (s *AssetServer) SetAssetsDir(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("assets: canonicalizing assets dir: %w", err)
	}
	manifest, err := LoadManifest(abs)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.assetsDir = abs
	s.manifest = manifest
	s.loaded = make(map[ID]*record)
	s.mu.Unlock()
	return nil
}

// AssetsDir returns the currently configured assets directory.
func (s *AssetServer) AssetsDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assetsDir
}

// RefreshManifest re-reads manifest.toml and swaps it in. Already-loaded
// handles are unaffected; only subsequent Load/FindByName calls see the
// refreshed entries.
func (s *AssetServer) RefreshManifest() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assetsDir == "" {
		return ErrManifestNotLoaded
	}
	m, err := LoadManifest(s.assetsDir)
	if err != nil {
		return err
	}
	s.manifest = m
	return nil
}

// FindByName looks up a manifest entry by its human name.
func (s *AssetServer) FindByName(name string) (AssetInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.manifest == nil {
		return AssetInfo{}, ErrManifestNotLoaded
	}
	info, err := s.manifest.FindByName(name)
	if err != nil {
		return AssetInfo{}, err
	}
	return *info, nil
}

// ListLoaded returns the IDs of every asset currently held by at least one
// Handle.
func (s *AssetServer) ListLoaded() []ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ID, 0, len(s.loaded))
	for id := range s.loaded {
		out = append(out, id)
	}
	return out
}

// IsLoaded reports whether id currently has at least one live Handle.
func (s *AssetServer) IsLoaded(id ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loaded[id]
	return ok
}

// Load reads the artifact for id from the manifest into a fresh Handle[A].
// readPacked reconstructs the runtime value from the (already
// decompressed) packed bytes; typeName must match the manifest entry's
// recorded type_name. Errors in order: already loaded, not found, type
// mismatch, I/O, decode.
func Load[A any](s *AssetServer, id ID, typeName string, readPacked func([]byte) (A, error)) (*Handle[A], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manifest == nil {
		return nil, ErrManifestNotLoaded
	}
	if _, ok := s.loaded[id]; ok {
		return nil, ErrAssetAlreadyLoaded
	}

	info, ok := s.manifest.Find(id)
	if !ok {
		return nil, ErrAssetNotFound
	}
	if info.TypeName != typeName {
		return nil, fmt.Errorf("%w: manifest has %q, loader wants %q", ErrTypeMismatch, info.TypeName, typeName)
	}

	raw, err := os.ReadFile(filepath.Join(s.assetsDir, info.RelativePath))
	if err != nil {
		return nil, fmt.Errorf("assets: reading artifact: %w", err)
	}

	payload := raw
	if info.Pack.Compressed() {
		payload, err = decompressZstd(raw)
		if err != nil {
			return nil, fmt.Errorf("assets: decompressing artifact: %w", err)
		}
	}

	value, err := readPacked(payload)
	if err != nil {
		return nil, fmt.Errorf("assets: decoding artifact: %w", err)
	}

	boxed := &value
	r := &record{value: boxed, refCount: 1}
	if s.loaded == nil {
		s.loaded = make(map[ID]*record)
	}
	s.loaded[id] = r

	return &Handle[A]{server: s, id: id, value: boxed}, nil
}

func decompressZstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// compressZstd compresses data at the given level, for use by packers that
// want the pack.compression-enabled artifact form.
func compressZstd(data []byte, level int) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}
