package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// PackAsset imports srcPath through importer and appends a new manifest
// entry at assetsDir. All preconditions are checked before anything is
// written, so a pack that fails a precondition never touches the manifest
// or filesystem. An importer failure leaves the manifest untouched but does
// not remove anything the importer already wrote.
func PackAsset[A any](assetsDir, srcPath, relativeOutput, name string, pack PackInfo, importer Importer[A]) (AssetInfo, error) {
	cleanedOutput, err := cleanRelative(relativeOutput)
	if err != nil {
		return AssetInfo{}, err
	}

	manifest, err := LoadManifest(assetsDir)
	if err != nil {
		if err != ErrManifestNotLoaded {
			return AssetInfo{}, err
		}
		manifest = NewManifest()
	}

	absOutput := filepath.Join(assetsDir, cleanedOutput)
	for _, existing := range manifest.Assets {
		existingAbs := filepath.Clean(filepath.Join(assetsDir, existing.RelativePath))
		if existingAbs == filepath.Clean(absOutput) {
			return AssetInfo{}, ErrPathAlreadyPacked
		}
	}

	wantKind := importer.UnimportedFSType()
	if fi, statErr := os.Stat(absOutput); statErr == nil {
		if fi.IsDir() {
			entries, rdErr := os.ReadDir(absOutput)
			if rdErr != nil {
				return AssetInfo{}, fmt.Errorf("assets: reading output directory: %w", rdErr)
			}
			if len(entries) > 0 {
				return AssetInfo{}, ErrDirectoryNotEmpty
			}
		} else {
			return AssetInfo{}, ErrOutputExists
		}
	}

	if err := verifySourceKind(srcPath, wantKind); err != nil {
		return AssetInfo{}, err
	}
	if err := importer.VerifySource(srcPath); err != nil {
		return AssetInfo{}, err
	}

	info := AssetInfo{
		AssetID:      NewID(),
		RelativePath: cleanedOutput,
		Pack:         pack,
		Name:         name,
		Timestamp:    time.Now(),
		TypeName:     importer.TargetTypeName(),
		Extra:        map[string]string{},
	}

	extra, err := importer.Import(srcPath, info, assetsDir)
	if err != nil {
		return AssetInfo{}, fmt.Errorf("assets: import failed: %w", err)
	}
	for k, v := range extra {
		info.Extra[k] = v
	}

	manifest.Assets = append(manifest.Assets, info)
	if err := manifest.Save(assetsDir); err != nil {
		if rmErr := removeArtifact(absOutput); rmErr != nil {
			return AssetInfo{}, fmt.Errorf("assets: manifest save failed (%v), and cleanup of artifact also failed: %w", err, rmErr)
		}
		return AssetInfo{}, err
	}

	return info, nil
}

func removeArtifact(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.RemoveAll(path)
}

// DeleteAsset removes the manifest entry for id and the artifact it
// references. A missing artifact on disk is tolerated with a warning
// returned via warn (nil-safe); a missing manifest entry is a hard error.
func DeleteAsset(assetsDir string, id ID, warn func(format string, args ...any)) error {
	manifest, err := LoadManifest(assetsDir)
	if err != nil {
		return err
	}
	idx := -1
	for i, a := range manifest.Assets {
		if a.AssetID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrAssetNotFound
	}
	info := manifest.Assets[idx]
	absPath := filepath.Join(assetsDir, info.RelativePath)
	if _, statErr := os.Stat(absPath); os.IsNotExist(statErr) {
		if warn != nil {
			warn("assets: artifact %s for asset %s is already missing", absPath, id)
		}
	} else if err := removeArtifact(absPath); err != nil {
		if warn != nil {
			warn("assets: failed to remove artifact %s for asset %s: %v", absPath, id, err)
		}
	}
	manifest.Assets = append(manifest.Assets[:idx], manifest.Assets[idx+1:]...)
	return manifest.Save(assetsDir)
}
