package gg3d

import "github.com/gogpu/gg3d/math3d"

// VertexShader transforms an object-space vertex into clip space.
type VertexShader interface {
	Vertex(ctx *ShaderContext, res *Resources, in VertexIn) VertexOut
}

// GeometryShader turns an interpolated vertex into a geometry sample.
// Returning false discards the fragment.
type GeometryShader interface {
	Geometry(ctx *ShaderContext, res *Resources, v VertexOut, opts RenderOptions) (GeometrySample, bool)
}

// FragmentShader computes the linear color of a geometry sample.
//
// With the default single worker, fragments are shaded one at a time in
// row-major order on the caller's goroutine. With WithWorkers(n) for n != 1
// the deferred lighting pass calls Fragment from several goroutines at
// once, so implementations must then be safe for concurrent use.
type FragmentShader interface {
	Fragment(ctx *ShaderContext, res *Resources, s GeometrySample) math3d.Vec4
}

// AlphaShader is consulted before the geometry and fragment shaders run.
// Returning true discards the fragment without further work.
type AlphaShader interface {
	Discard(ctx *ShaderContext, res *Resources, v VertexOut) bool
}

// VertexShaderFunc adapts a function to VertexShader.
type VertexShaderFunc func(ctx *ShaderContext, res *Resources, in VertexIn) VertexOut

// Vertex calls f.
func (f VertexShaderFunc) Vertex(ctx *ShaderContext, res *Resources, in VertexIn) VertexOut {
	return f(ctx, res, in)
}

// GeometryShaderFunc adapts a function to GeometryShader.
type GeometryShaderFunc func(ctx *ShaderContext, res *Resources, v VertexOut, opts RenderOptions) (GeometrySample, bool)

// Geometry calls f.
func (f GeometryShaderFunc) Geometry(ctx *ShaderContext, res *Resources, v VertexOut, opts RenderOptions) (GeometrySample, bool) {
	return f(ctx, res, v, opts)
}

// FragmentShaderFunc adapts a function to FragmentShader.
type FragmentShaderFunc func(ctx *ShaderContext, res *Resources, s GeometrySample) math3d.Vec4

// Fragment calls f.
func (f FragmentShaderFunc) Fragment(ctx *ShaderContext, res *Resources, s GeometrySample) math3d.Vec4 {
	return f(ctx, res, s)
}

// AlphaShaderFunc adapts a function to AlphaShader.
type AlphaShaderFunc func(ctx *ShaderContext, res *Resources, v VertexOut) bool

// Discard calls f.
func (f AlphaShaderFunc) Discard(ctx *ShaderContext, res *Resources, v VertexOut) bool {
	return f(ctx, res, v)
}

// Shaders groups the four shader roles used by a Renderer. Alpha may be
// nil; every other role is required.
//
// The built-in implementations live in the shader package.
type Shaders struct {
	Vertex   VertexShader
	Geometry GeometryShader
	Fragment FragmentShader
	Alpha    AlphaShader
}

func (s Shaders) validate() {
	if s.Vertex == nil || s.Geometry == nil || s.Fragment == nil {
		panic("gg3d: vertex, geometry and fragment shaders are required")
	}
}

// TransformVertex is the standard vertex transform: clip position is
// position × WorldViewProjection, world position and normal go through the
// world and normal matrices.
func TransformVertex(ctx *ShaderContext, in VertexIn) VertexOut {
	out := VertexOut{
		Position: in.Position.Vec4(1).MulMat4(ctx.WorldViewProjection),
		WorldPos: in.Position.TransformPoint(ctx.World),
		Normal:   in.Normal.TransformDir(ctx.NormalMatrix),
		Color:    in.Color,
		UV:       in.UV,
	}
	return out
}

// depthOnly is the shader set of a shadow-map renderer. The renderer writes
// depth only, so the geometry and fragment stages never see a sample.
var depthOnly = Shaders{
	Vertex: VertexShaderFunc(func(ctx *ShaderContext, _ *Resources, in VertexIn) VertexOut {
		return VertexOut{Position: in.Position.Vec4(1).MulMat4(ctx.WorldViewProjection)}
	}),
	Geometry: GeometryShaderFunc(func(*ShaderContext, *Resources, VertexOut, RenderOptions) (GeometrySample, bool) {
		return GeometrySample{}, true
	}),
	Fragment: FragmentShaderFunc(func(*ShaderContext, *Resources, GeometrySample) math3d.Vec4 {
		return math3d.Vec4{}
	}),
}
