package shader

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/gg3d"
	"github.com/gogpu/gg3d/math3d"
)

// BlinnPhong is the classic Lambert diffuse plus Blinn-Phong highlight
// model. The highlight exponent comes from roughness and its strength from
// the sample's Specular.
var BlinnPhong = gg3d.FragmentShaderFunc(blinnPhong)

func blinnPhong(ctx *gg3d.ShaderContext, _ *gg3d.Resources, s gg3d.GeometrySample) math3d.Vec4 {
	if s.Unlit {
		return unlit(s)
	}
	c := ambient(ctx).MulVec(s.Albedo).Add(s.Emissive)
	n := s.Normal
	if n.LengthSq() == 0 {
		return c.Vec4(s.Alpha)
	}
	v := viewDir(ctx, s)
	exp := phongExponent(s.Roughness)

	eachLight(ctx, s, func(l incoming) {
		ndl := n.Dot(l.dir)
		if ndl <= 0 {
			return
		}
		lit := s.Albedo.Mul(ndl)
		if h := l.dir.Add(v); h.LengthSq() > 0 {
			spec := math32.Pow(max(n.Dot(h.Normal()), 0), exp) * s.Specular
			lit = lit.Add(math3d.Splat3(spec * ndl))
		}
		c = c.Add(lit.MulVec(l.radiance))
	})
	return c.Vec4(s.Alpha)
}

// phongExponent maps roughness to a Blinn-Phong exponent using the usual
// 2/α² - 2 correspondence with α = roughness².
func phongExponent(roughness float32) float32 {
	r := math3d.Clamp(roughness, 0.03, 1)
	a := r * r
	return math3d.Clamp(2/(a*a)-2, 1, 2048)
}

// viewDir returns the normalized direction from the sample to the camera.
func viewDir(ctx *gg3d.ShaderContext, s gg3d.GeometrySample) math3d.Vec3 {
	v := ctx.CameraPosition.Sub(s.WorldPos)
	if v.LengthSq() == 0 {
		return s.Normal
	}
	return v.Normal()
}
