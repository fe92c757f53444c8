// Package shader provides the built-in gg3d shaders.
//
// Vertex, Geometry and Alpha cover the geometry stages of ordinary meshes.
// The fragment shaders range from debug views (Flat, Normals) to lit
// models (BlinnPhong, PBR). Every shader is stateless and reads only its
// arguments, so the renderer may call fragment shaders from several
// goroutines at once.
//
// Quick start:
//
//	r := gg3d.NewRenderer(fb, ctx, res, shader.Default())
//
// or swap the lighting model at a frame boundary:
//
//	r.SetShaders(shader.With(shader.BlinnPhong))
package shader

import (
	"github.com/gogpu/gg3d"
	"github.com/gogpu/gg3d/math3d"
)

// Vertex transforms positions by WorldViewProjection and normals by the
// normal matrix.
var Vertex = gg3d.VertexShaderFunc(func(ctx *gg3d.ShaderContext, _ *gg3d.Resources, in gg3d.VertexIn) gg3d.VertexOut {
	return gg3d.TransformVertex(ctx, in)
})

// Geometry resolves the active material into a sample. Albedo and alpha are
// the material's times the vertex color times the albedo map, if any.
// Fragments whose alpha is below opts.AlphaCutoff are discarded.
var Geometry = gg3d.GeometryShaderFunc(geometry)

func geometry(ctx *gg3d.ShaderContext, res *gg3d.Resources, v gg3d.VertexOut, opts gg3d.RenderOptions) (gg3d.GeometrySample, bool) {
	m, err := res.Material(ctx.ActiveMaterial())
	if err != nil {
		return gg3d.GeometrySample{}, false
	}

	albedo := m.Albedo.MulVec(v.Color.XYZ())
	alpha := m.Alpha * v.Color.W
	if tex := texture(res, m.AlbedoMap); tex != nil {
		t := tex.Sample(v.UV)
		albedo = albedo.MulVec(t.XYZ())
		alpha *= t.W
	}
	if opts.AlphaCutoff > 0 && alpha < opts.AlphaCutoff {
		return gg3d.GeometrySample{}, false
	}

	n := v.Normal
	if n.LengthSq() > 0 {
		n = n.Normal()
	}
	return gg3d.GeometrySample{
		WorldPos:  v.WorldPos,
		Normal:    n,
		UV:        v.UV,
		Depth:     v.Depth,
		Albedo:    albedo,
		Alpha:     alpha,
		Emissive:  m.Emissive,
		Roughness: m.Roughness,
		Metallic:  m.Metallic,
		Specular:  m.Specular,
		Unlit:     m.Unlit,
	}, true
}

// Alpha discards fragments whose albedo-map texel is fully transparent,
// before the geometry and fragment shaders run.
var Alpha = gg3d.AlphaShaderFunc(func(ctx *gg3d.ShaderContext, res *gg3d.Resources, v gg3d.VertexOut) bool {
	m, err := res.Material(ctx.ActiveMaterial())
	if err != nil {
		return true
	}
	tex := texture(res, m.AlbedoMap)
	return tex != nil && tex.Sample(v.UV).W <= 0
})

func texture(res *gg3d.Resources, h gg3d.Handle) *gg3d.Texture {
	if h.IsZero() {
		return nil
	}
	t, err := res.Texture(h)
	if err != nil {
		return nil
	}
	return t
}

// With returns the standard vertex, geometry and alpha shaders with the
// given fragment shader.
func With(fragment gg3d.FragmentShader) gg3d.Shaders {
	return gg3d.Shaders{
		Vertex:   Vertex,
		Geometry: Geometry,
		Fragment: fragment,
		Alpha:    Alpha,
	}
}

// Default returns the standard shaders with PBR lighting.
func Default() gg3d.Shaders {
	return With(PBR)
}

// Flat shades every sample to its albedo plus emission, ignoring lights.
var Flat = gg3d.FragmentShaderFunc(func(_ *gg3d.ShaderContext, _ *gg3d.Resources, s gg3d.GeometrySample) math3d.Vec4 {
	return unlit(s)
})

// Normals shows the world-space normal mapped to [0,1].
var Normals = gg3d.FragmentShaderFunc(func(_ *gg3d.ShaderContext, _ *gg3d.Resources, s gg3d.GeometrySample) math3d.Vec4 {
	n := s.Normal.Mul(0.5).Add(math3d.Splat3(0.5))
	return n.Vec4(1)
})

func unlit(s gg3d.GeometrySample) math3d.Vec4 {
	return s.Albedo.Add(s.Emissive).Vec4(s.Alpha)
}
