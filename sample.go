package gg3d

import "github.com/gogpu/gg3d/math3d"

// GeometrySample is the per-pixel payload produced by the geometry shader
// and stored in the G-buffer for deferred lighting.
type GeometrySample struct {
	WorldPos math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
	Depth    float32

	Albedo    math3d.Vec3
	Alpha     float32
	Emissive  math3d.Vec3
	Roughness float32
	Metallic  float32
	Specular  float32

	// Unlit samples skip light evaluation; fragment shaders return albedo.
	Unlit bool

	// Stencil marks a G-buffer cell written by a deferred fragment this
	// frame. BeginFrame resets it; the deferred lighting pass only visits
	// cells where it is set.
	Stencil bool
}
