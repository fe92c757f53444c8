package shader

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/gg3d"
	"github.com/gogpu/gg3d/math3d"
)

// incoming is the light arriving at a surface point from one light.
type incoming struct {
	// dir points from the surface toward the light, normalized.
	dir math3d.Vec3
	// radiance is color × intensity × attenuation × shadow visibility.
	radiance math3d.Vec3
}

// minDistSq keeps inverse-square falloff finite at the light position.
const minDistSq = 1e-4

// eachLight calls fn for every directional, point and spot light reaching
// the sample. Lights with no contribution are skipped.
func eachLight(ctx *gg3d.ShaderContext, s gg3d.GeometrySample, fn func(incoming)) {
	for _, l := range ctx.DirectionalLights {
		if l.Direction.LengthSq() == 0 {
			continue
		}
		vis := float32(1)
		if l.Shadow != nil {
			vis = l.Shadow.Visibility(s.WorldPos, s.Normal)
			if vis == 0 {
				continue
			}
		}
		fn(incoming{
			dir:      l.Direction.Normal().Neg(),
			radiance: l.Color.Mul(l.Intensity * vis),
		})
	}

	for _, l := range ctx.PointLights {
		d := l.Position.Sub(s.WorldPos)
		a := attenuation(d.LengthSq(), l.Range)
		if a == 0 {
			continue
		}
		fn(incoming{dir: d.Normal(), radiance: l.Color.Mul(l.Intensity * a)})
	}

	for _, l := range ctx.SpotLights {
		d := l.Position.Sub(s.WorldPos)
		a := attenuation(d.LengthSq(), l.Range)
		if a == 0 || l.Direction.LengthSq() == 0 {
			continue
		}
		dir := d.Normal()
		cone := smoothstep(math32.Cos(l.OuterCone), math32.Cos(l.InnerCone), dir.Neg().Dot(l.Direction.Normal()))
		if cone == 0 {
			continue
		}
		fn(incoming{dir: dir, radiance: l.Color.Mul(l.Intensity * a * cone)})
	}
}

// attenuation is inverse-square falloff, windowed to reach zero at rng
// when rng > 0. Coincident points get zero.
func attenuation(distSq, rng float32) float32 {
	if distSq == 0 {
		return 0
	}
	a := 1 / max(distSq, minDistSq)
	if rng > 0 {
		r := distSq / (rng * rng)
		w := math3d.Clamp(1-r*r, 0, 1)
		a *= w * w
	}
	return a
}

func smoothstep(e0, e1, x float32) float32 {
	if e0 == e1 {
		if x < e0 {
			return 0
		}
		return 1
	}
	t := math3d.Clamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

func ambient(ctx *gg3d.ShaderContext) math3d.Vec3 {
	var a math3d.Vec3
	for _, l := range ctx.AmbientLights {
		a = a.Add(l.Color.Mul(l.Intensity))
	}
	return a
}

// environment returns the context's environment cubemap, or nil.
func environment(ctx *gg3d.ShaderContext, res *gg3d.Resources) *gg3d.Cubemap {
	if ctx.Environment.IsZero() {
		return nil
	}
	c, err := res.Cubemap(ctx.Environment)
	if err != nil {
		return nil
	}
	return c
}
