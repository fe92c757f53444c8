package blend

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/gg3d/math3d"
)

// Weighted-blended order-independent transparency, after McGuire and
// Bavoil, "Weighted Blended Order-Independent Transparency" (JCGT 2013).
//
// Each transparent fragment adds its premultiplied color times a depth
// weight to an accumulation buffer and multiplies its (1 - alpha) into a
// revealage buffer. The resolve normalizes the accumulation and blends it
// over the opaque result. No sorting is needed.

const (
	// RevealedEpsilon is how close to 1 revealage must be for a pixel to
	// count as having no transparent coverage.
	RevealedEpsilon = 1e-5

	// AlphaEpsilon floors the accumulated alpha in the resolve division.
	AlphaEpsilon = 1e-5

	// MinWeight and MaxWeight bound the depth factor of Weight. Both are
	// powers of two.
	MinWeight = 1.0 / 64
	MaxWeight = 2048
)

// Weight returns the accumulation weight for a fragment with the given
// alpha and non-linear [0,1] depth. Nearer fragments weigh more.
//
// The depth factor is rounded to a power of two so a single opaque layer
// resolves to exactly its own color.
func Weight(alpha, depth float32) float32 {
	d := 1 - depth
	return alpha * pow2(math3d.Clamp(3e3*d*d*d, MinWeight, MaxWeight))
}

// pow2 rounds a positive w to the nearest power of two in log scale.
func pow2(w float32) float32 {
	frac, exp := math32.Frexp(w)
	if frac < math32.Sqrt2/2 {
		exp--
	}
	return math32.Ldexp(1, exp)
}

// Accumulate adds a fragment of linear color rgb and coverage alpha with
// weight w. It returns the updated accumulation and revealage values.
func Accumulate(accum math3d.Vec4, revealage float32, rgb math3d.Vec3, alpha, w float32) (math3d.Vec4, float32) {
	accum = accum.Add(math3d.Vec4{
		X: rgb.X * alpha * w,
		Y: rgb.Y * alpha * w,
		Z: rgb.Z * alpha * w,
		W: alpha * w,
	})
	return accum, revealage * (1 - alpha)
}

// Resolve composites accumulated transparency over dst.
//
// A pixel whose revealage is within RevealedEpsilon of 1 is returned
// unchanged. An accumulation that overflowed to infinity is replaced by
// (a, a, a, a) so the division cannot produce NaN. If a itself is
// infinite the normalized color is white.
func Resolve(dst, accum math3d.Vec4, revealage float32) math3d.Vec4 {
	if d := 1 - revealage; d < RevealedEpsilon && d > -RevealedEpsilon {
		return dst
	}
	if accum.HasInf() {
		a := accum.W
		if math32.IsInf(a, 0) {
			a = 1
		}
		accum = math3d.Vec4{X: a, Y: a, Z: a, W: a}
	}
	inv := 1 / max(accum.W, AlphaEpsilon)
	srcAlpha := 1 - revealage
	keep := 1 - srcAlpha
	return math3d.Vec4{
		X: dst.X*keep + accum.X*inv*srcAlpha,
		Y: dst.Y*keep + accum.Y*inv*srcAlpha,
		Z: dst.Z*keep + accum.Z*inv*srcAlpha,
		W: dst.W,
	}
}
