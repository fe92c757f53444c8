package shader

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/gg3d"
	"github.com/gogpu/gg3d/math3d"
)

// PBR is a metallic-roughness Cook-Torrance model: GGX distribution,
// Schlick-GGX geometry and Schlick Fresnel. When the context has an
// environment cubemap it adds image-based ambient light, approximating
// prefiltered lookups by blending toward the cubemap's average color as
// roughness grows.
var PBR = gg3d.FragmentShaderFunc(pbr)

// minRoughness avoids the singular GGX lobe of perfectly smooth surfaces.
const minRoughness = 0.045

func pbr(ctx *gg3d.ShaderContext, res *gg3d.Resources, s gg3d.GeometrySample) math3d.Vec4 {
	if s.Unlit {
		return unlit(s)
	}
	albedo := s.Albedo
	metallic := math3d.Clamp(s.Metallic, 0, 1)
	c := ambient(ctx).MulVec(albedo).Mul(1 - metallic).Add(s.Emissive)

	n := s.Normal
	if n.LengthSq() == 0 {
		return c.Vec4(s.Alpha)
	}
	v := viewDir(ctx, s)
	rough := math3d.Clamp(s.Roughness, minRoughness, 1)
	f0 := math3d.Splat3(0.04).Lerp(albedo, metallic)
	ndv := max(n.Dot(v), 1e-4)

	eachLight(ctx, s, func(l incoming) {
		ndl := n.Dot(l.dir)
		if ndl <= 0 {
			return
		}
		h := l.dir.Add(v)
		if h.LengthSq() == 0 {
			return
		}
		h = h.Normal()

		d := distributionGGX(max(n.Dot(h), 0), rough)
		g := smithGGX(ndv, ndl, rough)
		f := fresnelSchlick(max(v.Dot(h), 0), f0)

		spec := f.Mul(d * g / (4 * ndv * ndl))
		kd := math3d.Splat3(1).Sub(f).Mul(1 - metallic)
		diffuse := kd.MulVec(albedo).Mul(1 / math32.Pi)
		c = c.Add(diffuse.Add(spec).MulVec(l.radiance).Mul(ndl))
	})

	if env := environment(ctx, res); env != nil {
		avg := env.Average()
		f := fresnelSchlickRoughness(ndv, f0, rough)
		kd := math3d.Splat3(1).Sub(f).Mul(1 - metallic)

		irradiance := env.Sample(n).XYZ().Lerp(avg, 0.5)
		r := v.Neg().Reflect(n)
		prefiltered := env.Sample(r).XYZ().Lerp(avg, rough)

		c = c.Add(kd.MulVec(albedo).MulVec(irradiance))
		c = c.Add(f.MulVec(prefiltered).Mul(1 - 0.5*rough))
	}
	return c.Vec4(s.Alpha)
}

func distributionGGX(ndh, rough float32) float32 {
	a := rough * rough
	a2 := a * a
	d := ndh*ndh*(a2-1) + 1
	return a2 / (math32.Pi * d * d)
}

func smithGGX(ndv, ndl, rough float32) float32 {
	r := rough + 1
	k := r * r / 8
	return ndv / (ndv*(1-k) + k) * ndl / (ndl*(1-k) + k)
}

func fresnelSchlick(cosTheta float32, f0 math3d.Vec3) math3d.Vec3 {
	p := pow5(1 - cosTheta)
	return f0.Add(math3d.Splat3(1).Sub(f0).Mul(p))
}

func fresnelSchlickRoughness(cosTheta float32, f0 math3d.Vec3, rough float32) math3d.Vec3 {
	p := pow5(1 - cosTheta)
	top := math3d.Splat3(1 - rough).Max(f0)
	return f0.Add(top.Sub(f0).Mul(p))
}

func pow5(x float32) float32 {
	x2 := x * x
	return x2 * x2 * x
}
