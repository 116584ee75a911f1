package render

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective camera component. The renderer selects exactly
// one Enabled camera per frame; more than one (or none) is non-fatal but
// warned once per distinct reason (spec.md §7).
type Camera struct {
	Enabled bool
	Fov     float32
	Aspect  float32
	Near    float32
	Far     float32
}

// NewCamera builds an enabled perspective camera.
func NewCamera(fov, aspect, near, far float32) Camera {
	return Camera{Enabled: true, Fov: fov, Aspect: aspect, Near: near, Far: far}
}

// ProjectionMatrix returns the camera's perspective projection.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.Fov, c.Aspect, c.Near, c.Far)
}

// ProjView bundles the view and projection matrices a frame renders with.
type ProjView struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// ViewMatrix builds a look-at view matrix from transform, looking along its
// forward axis with its up axis, matching cobalt_core's get_camera.
func ViewMatrix(t *Transform) mgl32.Mat4 {
	pos := t.Position()
	target := pos.Add(t.Forward())
	return mgl32.LookAtV(pos, target, t.Up())
}
