package assets

import (
	"fmt"
	"os"
)

// FSKind is the filesystem shape an Importer expects its source to have.
type FSKind int

const (
	FSFile FSKind = iota
	FSDirectory
)

func (k FSKind) String() string {
	if k == FSDirectory {
		return "directory"
	}
	return "file"
}

// Importer converts a source file or directory into a packed artifact of
// asset type A. ExtraInfo is whatever supplementary string map the importer
// wants merged into the manifest entry (e.g. source dimensions).
type Importer[A any] interface {
	// TargetTypeName returns the AssetTrait.TypeName this importer
	// produces, so a pack operation can record it before any instance of A
	// exists.
	TargetTypeName() string
	// UnimportedFSType reports whether the importer's source is a single
	// file or a directory tree.
	UnimportedFSType() FSKind
	// VerifySource performs a cheap structural check of the source before
	// import begins.
	VerifySource(srcPath string) error
	// Import reads srcPath and writes the packed artifact at
	// assetsDir/info.RelativePath, returning any extra manifest fields.
	Import(srcPath string, info AssetInfo, assetsDir string) (extra map[string]string, err error)
}

// AssetTrait is implemented by every runtime asset type loadable through an
// AssetServer.
type AssetTrait interface {
	// TypeName returns the stable string identifying this asset type in
	// the manifest; must match the Importer that produced it.
	TypeName() string
}

// PackedReader reconstructs a runtime value of type A from the packed bytes
// an Importer produced (after any pack-level decompression has already been
// applied).
type PackedReader[A any] interface {
	ReadPacked(data []byte) (A, error)
}

// verifySourceKind checks that srcPath exists and matches the importer's
// declared filesystem kind.
func verifySourceKind(srcPath string, want FSKind) error {
	fi, err := os.Stat(srcPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	isDir := fi.IsDir()
	if want == FSDirectory && !isDir {
		return fmt.Errorf("%w: expected a directory", ErrSourceUnreadable)
	}
	if want == FSFile && isDir {
		return fmt.Errorf("%w: expected a file", ErrSourceUnreadable)
	}
	return nil
}
