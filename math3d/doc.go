// Package math3d provides the float32 vector, matrix, quaternion, plane and
// bounding-box types used by the gg3d software renderer.
//
// # Conventions
//
// Vectors are row vectors and are transformed by multiplying on the left:
//
//	clip := pos.MulMat4(world.Mul(view).Mul(proj))
//
// so composite transforms read left to right in application order. Matrices are
// stored row-major; translation lives in the last row.
//
// Cameras are right-handed and look down -Z. Projection matrices use a
// zero-to-one depth range: the near plane maps to clip z = 0 and the far plane
// to clip z = w. A clip-space vertex with z < 0 is behind the near plane.
package math3d
