package gg3d

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/gg3d/math3d"
)

// ToneMapper maps a linear HDR color to [0,1] per channel. Implementations
// are monotonic and map 0 to 0.
type ToneMapper func(c math3d.Vec3) math3d.Vec3

func perChannel(c math3d.Vec3, f func(float32) float32) math3d.Vec3 {
	return math3d.V3(f(max(c.X, 0)), f(max(c.Y, 0)), f(max(c.Z, 0)))
}

// Reinhard is c / (1 + c).
func Reinhard(c math3d.Vec3) math3d.Vec3 {
	return perChannel(c, func(x float32) float32 { return x / (1 + x) })
}

// ReinhardExtended is Reinhard with a white point: values at or above white
// map to 1.
func ReinhardExtended(white float32) ToneMapper {
	w2 := white * white
	return func(c math3d.Vec3) math3d.Vec3 {
		return perChannel(c, func(x float32) float32 {
			return min(x*(1+x/w2)/(1+x), 1)
		})
	}
}

// ACESFilmic is Narkowicz's fit of the ACES filmic curve.
func ACESFilmic(c math3d.Vec3) math3d.Vec3 {
	return perChannel(c, func(x float32) float32 {
		const a, b, cc, d, e = 2.51, 0.03, 2.43, 0.59, 0.14
		return math3d.Clamp(x*(a*x+b)/(x*(cc*x+d)+e), 0, 1)
	})
}

// Exposure scales the color by 1 - exp(-e·c) when inner is nil, or by e
// before calling inner otherwise.
func Exposure(e float32, inner ToneMapper) ToneMapper {
	if inner == nil {
		return func(c math3d.Vec3) math3d.Vec3 {
			return perChannel(c, func(x float32) float32 { return 1 - math32.Exp(-e*x) })
		}
	}
	return func(c math3d.Vec3) math3d.Vec3 {
		return inner(c.Mul(e))
	}
}

// Clamp clips each channel to [0,1]. It is the identity on displayable
// colors, which makes rendered output exact.
func Clamp(c math3d.Vec3) math3d.Vec3 {
	return c.Clamp(0, 1)
}
