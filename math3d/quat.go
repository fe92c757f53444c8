package math3d

import "github.com/chewxy/math32"

// Quat is a rotation quaternion (X, Y, Z vector part, W scalar part).
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatAxisAngle returns a rotation of angle radians about the unit axis.
func QuatAxisAngle(axis Vec3, angle float32) Quat {
	s := math32.Sin(angle / 2)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math32.Cos(angle / 2)}
}

// Mul returns the Hamilton product q*r: the rotation r followed by q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Length returns the norm of q.
func (q Quat) Length() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normal returns q scaled to unit length. q must not be zero.
func (q Quat) Normal() Quat {
	inv := 1 / q.Length()
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Rotate rotates v by the unit quaternion q.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// Slerp spherically interpolates between q (t=0) and r (t=1).
func (q Quat) Slerp(r Quat, t float32) Quat {
	cos := q.X*r.X + q.Y*r.Y + q.Z*r.Z + q.W*r.W
	if cos < 0 {
		r = Quat{X: -r.X, Y: -r.Y, Z: -r.Z, W: -r.W}
		cos = -cos
	}
	var k0, k1 float32
	if cos > 0.9995 {
		k0, k1 = 1-t, t
	} else {
		theta := math32.Acos(cos)
		sin := math32.Sin(theta)
		k0 = math32.Sin((1-t)*theta) / sin
		k1 = math32.Sin(t*theta) / sin
	}
	return Quat{
		X: q.X*k0 + r.X*k1,
		Y: q.Y*k0 + r.Y*k1,
		Z: q.Z*k0 + r.Z*k1,
		W: q.W*k0 + r.W*k1,
	}.Normal()
}

// Mat4 returns the rotation matrix for the unit quaternion q in the
// row-vector convention, so that v.TransformDir(q.Mat4()) == q.Rotate(v).
func (q Quat) Mat4() Mat4 {
	xx, yy, zz := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z
	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}
