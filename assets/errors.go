// Package assets implements the content-addressed asset pipeline: a
// manifest of packed artifacts, an importer protocol converting source
// files into those artifacts, and an AssetServer that loads artifacts into
// refcounted typed handles.
package assets

import "errors"

var (
	ErrManifestNotLoaded  = errors.New("assets: manifest not loaded")
	ErrAssetNotFound      = errors.New("assets: asset not found")
	ErrAssetAlreadyLoaded = errors.New("assets: asset already loaded")
	ErrTypeMismatch       = errors.New("assets: asset type mismatch")
	ErrDuplicateNames     = errors.New("assets: duplicate asset name")
	ErrOutputExists       = errors.New("assets: output path already exists")
	ErrDirectoryNotEmpty  = errors.New("assets: output directory is not empty")
	ErrSourceUnreadable   = errors.New("assets: source path unreadable or wrong kind")
	ErrInvalidRelativePath = errors.New("assets: relative_path must be relative")
	ErrPathAlreadyPacked  = errors.New("assets: an existing asset already resolves to this path")
	ErrGraphicsContextGone = errors.New("assets: graphics context does not exist")
)
