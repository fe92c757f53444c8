package gg3d

import "github.com/gogpu/gg3d/internal/clip"

// ClipTriangle clips a clip-space triangle against the near plane and
// returns the 0, 1 or 2 triangles that remain in front of it.
//
// A vertex is behind the near plane when its clip-space z is negative;
// z == 0 is kept. Triangles fully in front are returned unchanged and the
// winding of every output triangle matches the input.
func ClipTriangle(t Triangle[VertexOut]) []Triangle[VertexOut] {
	out, n := clip.Near(t.V0, t.V1, t.V2, clipZ)
	tris := make([]Triangle[VertexOut], n)
	for i := range n {
		tris[i] = Tri(out[i][0], out[i][1], out[i][2])
	}
	return tris
}

func clipZ(v VertexOut) float32 { return v.Position.Z }
