// Package clip implements clip-space triangle clipping for the 3D pipeline.
//
// Triangles are clipped against the near plane only. The projection uses a
// zero-to-one depth range, so a vertex is behind the near plane exactly when
// its clip-space z is negative. z == 0 counts as in front.
package clip

// Lerper is a vertex type that supports affine interpolation.
type Lerper[V any] interface {
	// Lerp returns the vertex a fraction t of the way from the receiver to o.
	Lerp(o V, t float32) V
}

// Near clips the triangle (v0, v1, v2) against the near plane. z returns the
// clip-space z of a vertex. The result holds n triangles in out[:n], n in 0..2,
// each wound like the input.
func Near[V Lerper[V]](v0, v1, v2 V, z func(V) float32) (out [2][3]V, n int) {
	z0, z1, z2 := z(v0), z(v1), z(v2)
	b0, b1, b2 := z0 < 0, z1 < 0, z2 < 0

	switch {
	case !b0 && !b1 && !b2:
		out[0] = [3]V{v0, v1, v2}
		return out, 1
	case b0 && b1 && b2:
		return out, 0

	// One vertex behind: rotate it into slot 0, keeping the winding.
	case b0 && !b1 && !b2:
		return clipOne(v0, v1, v2, z0, z1, z2)
	case b1 && !b0 && !b2:
		return clipOne(v1, v2, v0, z1, z2, z0)
	case b2 && !b0 && !b1:
		return clipOne(v2, v0, v1, z2, z0, z1)

	// Two vertices behind: rotate the front one into slot 2.
	case !b2:
		return clipTwo(v0, v1, v2, z0, z1, z2)
	case !b0:
		return clipTwo(v1, v2, v0, z1, z2, z0)
	default:
		return clipTwo(v2, v0, v1, z2, z0, z1)
	}
}

// clipOne handles v0 behind, v1 and v2 in front. The quad left in front of
// the plane is split into (A', v1, v2) and (B', A', v2).
func clipOne[V Lerper[V]](v0, v1, v2 V, z0, z1, z2 float32) (out [2][3]V, n int) {
	a := -z0 / (z1 - z0)
	b := -z0 / (z2 - z0)
	ap := v0.Lerp(v1, a)
	bp := v0.Lerp(v2, b)
	out[0] = [3]V{ap, v1, v2}
	out[1] = [3]V{bp, ap, v2}
	return out, 2
}

// clipTwo handles v0 and v1 behind, v2 in front.
func clipTwo[V Lerper[V]](v0, v1, v2 V, z0, z1, z2 float32) (out [2][3]V, n int) {
	a := -z0 / (z2 - z0)
	b := -z1 / (z2 - z1)
	out[0] = [3]V{v0.Lerp(v2, a), v1.Lerp(v2, b), v2}
	return out, 1
}
