package math3d

// Plane is the set of points p with Normal·p + D = 0. Points with a positive
// signed distance are on the front side.
type Plane struct {
	Normal Vec3
	D      float32
}

// PlaneFromPoints returns the plane through a, b and c, facing the side from
// which the points appear counter-clockwise.
func PlaneFromPoints(a, b, c Vec3) Plane {
	n := b.Sub(a).Cross(c.Sub(a)).Normal()
	return Plane{Normal: n, D: -n.Dot(a)}
}

// PlaneFromVec4 builds a plane from (a, b, c, d) coefficients.
func PlaneFromVec4(v Vec4) Plane {
	return Plane{Normal: v.XYZ(), D: v.W}
}

// Normalized returns the plane scaled so that Normal has unit length.
func (p Plane) Normalized() Plane {
	inv := 1 / p.Normal.Length()
	return Plane{Normal: p.Normal.Mul(inv), D: p.D * inv}
}

// Distance returns the signed distance from the plane to pt (scaled by the
// normal length if the plane is not normalized).
func (p Plane) Distance(pt Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds six inward-facing planes: left, right, bottom, top, near, far.
type Frustum [6]Plane

// FrustumFromMatrix extracts the frustum planes of a view-projection matrix
// that uses the zero-to-one depth range.
func FrustumFromMatrix(m Mat4) Frustum {
	c0, c1, c2, c3 := m.Col(0), m.Col(1), m.Col(2), m.Col(3)
	return Frustum{
		PlaneFromVec4(c3.Add(c0)).Normalized(),
		PlaneFromVec4(c3.Sub(c0)).Normalized(),
		PlaneFromVec4(c3.Add(c1)).Normalized(),
		PlaneFromVec4(c3.Sub(c1)).Normalized(),
		PlaneFromVec4(c2).Normalized(),
		PlaneFromVec4(c3.Sub(c2)).Normalized(),
	}
}

// IntersectsAABB reports whether the box is at least partly inside the
// frustum. It is conservative: some boxes outside near a corner pass.
func (f Frustum) IntersectsAABB(b AABB) bool {
	for _, p := range f {
		// Positive vertex: the box corner furthest along the plane normal.
		v := b.Min
		if p.Normal.X >= 0 {
			v.X = b.Max.X
		}
		if p.Normal.Y >= 0 {
			v.Y = b.Max.Y
		}
		if p.Normal.Z >= 0 {
			v.Z = b.Max.Z
		}
		if p.Distance(v) < 0 {
			return false
		}
	}
	return true
}
