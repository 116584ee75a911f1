// Package shaders embeds the WGSL listings the Geometry and Color passes
// compile, mirroring the teacher's shaders package.
package shaders

import (
	_ "embed"
)

//go:embed geometry.wgsl
var GeometryWGSL string

//go:embed color.wgsl
var ColorWGSL string
