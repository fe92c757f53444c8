package gg3d

import "github.com/gogpu/gg3d/math3d"

// VertexIn is an object-space mesh vertex, the input of the vertex shader.
type VertexIn struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	Color    math3d.Vec4
	UV       math3d.Vec2
}

// VertexOut is a transformed vertex. Position is in clip space and its W
// component is the perspective divisor. Every field is affine-interpolable,
// which clipping and rasterization rely on.
type VertexOut struct {
	Position math3d.Vec4
	WorldPos math3d.Vec3
	Normal   math3d.Vec3
	Color    math3d.Vec4
	UV       math3d.Vec2

	// Depth is the non-linear [0,1] depth, filled in by the rasterizer.
	Depth float32
}

// Add returns the componentwise sum of two vertices.
func (v VertexOut) Add(o VertexOut) VertexOut {
	return VertexOut{
		Position: v.Position.Add(o.Position),
		WorldPos: v.WorldPos.Add(o.WorldPos),
		Normal:   v.Normal.Add(o.Normal),
		Color:    v.Color.Add(o.Color),
		UV:       v.UV.Add(o.UV),
		Depth:    v.Depth + o.Depth,
	}
}

// Sub returns the componentwise difference of two vertices.
func (v VertexOut) Sub(o VertexOut) VertexOut {
	return VertexOut{
		Position: v.Position.Sub(o.Position),
		WorldPos: v.WorldPos.Sub(o.WorldPos),
		Normal:   v.Normal.Sub(o.Normal),
		Color:    v.Color.Sub(o.Color),
		UV:       v.UV.Sub(o.UV),
		Depth:    v.Depth - o.Depth,
	}
}

// Scale returns every field multiplied by s.
func (v VertexOut) Scale(s float32) VertexOut {
	return VertexOut{
		Position: v.Position.Mul(s),
		WorldPos: v.WorldPos.Mul(s),
		Normal:   v.Normal.Mul(s),
		Color:    v.Color.Mul(s),
		UV:       v.UV.Mul(s),
		Depth:    v.Depth * s,
	}
}

// Lerp returns the vertex a fraction t of the way from v to o.
func (v VertexOut) Lerp(o VertexOut, t float32) VertexOut {
	return v.Add(o.Sub(v).Scale(t))
}

// Triangle holds three vertices by value.
type Triangle[V any] struct {
	V0, V1, V2 V
}

// Tri is a convenience function to create a Triangle.
func Tri[V any](v0, v1, v2 V) Triangle[V] {
	return Triangle[V]{V0: v0, V1: v1, V2: v2}
}
