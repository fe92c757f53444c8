package gg3d

import "github.com/gogpu/gg3d/math3d"

// Material describes surface appearance. The geometry shader copies it
// into each GeometrySample, so lighting never looks materials up again.
type Material struct {
	Albedo   math3d.Vec3
	Alpha    float32
	Emissive math3d.Vec3

	// Roughness and Metallic drive the PBR shader. Blinn-Phong derives its
	// exponent from Roughness and scales highlights by Specular.
	Roughness float32
	Metallic  float32
	Specular  float32

	// AlbedoMap multiplies Albedo and Alpha when non-zero.
	AlbedoMap Handle

	// Transparent routes draw calls through the weighted-blended
	// transparency pass instead of the opaque passes.
	Transparent bool

	// Unlit materials shade to their albedo plus emission.
	Unlit bool
}

// DefaultMaterial is used for draw calls that bind the zero handle.
func DefaultMaterial() Material {
	return Material{
		Albedo:    math3d.V3(0.8, 0.8, 0.8),
		Alpha:     1,
		Roughness: 0.5,
		Specular:  0.5,
	}
}

// IsTransparent reports whether draws with m go to the transparency pass.
func (m Material) IsTransparent() bool {
	return m.Transparent || m.Alpha < 1
}
