package gg3d

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/gg3d/math3d"
)

// Mesh is an indexed triangle list with a precomputed object-space bounding
// box. Every three indices form one triangle, counter-clockwise when seen
// from the side its normals face.
//
// Meshes are immutable once built; the renderer reads them without locking.
type Mesh struct {
	Vertices []VertexIn
	Indices  []uint32
	Bounds   math3d.AABB
}

// NewMesh validates the index list and computes the bounding box.
// It returns ErrInvalidMesh if len(indices) is not a multiple of three or
// an index is out of range.
func NewMesh(vertices []VertexIn, indices []uint32) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("%w: index %d at %d out of range [0,%d)", ErrInvalidMesh, idx, i, len(vertices))
		}
	}
	bounds := math3d.EmptyAABB()
	for _, v := range vertices {
		bounds = bounds.Extend(v.Position)
	}
	return &Mesh{Vertices: vertices, Indices: indices, Bounds: bounds}, nil
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns triangle i.
func (m *Mesh) Triangle(i int) Triangle[VertexIn] {
	j := i * 3
	return Tri(m.Vertices[m.Indices[j]], m.Vertices[m.Indices[j+1]], m.Vertices[m.Indices[j+2]])
}

var white = math3d.V4(1, 1, 1, 1)

// grid appends a divisions×divisions patch centred at c and spanned by the
// half-extent vectors u and v. The patch faces u×v.
func grid(verts []VertexIn, idx []uint32, c, u, v math3d.Vec3, divisions int) ([]VertexIn, []uint32) {
	n := u.Cross(v).Normal()
	base := uint32(len(verts))   //nolint:gosec // G115: builder meshes are small
	row := uint32(divisions + 1) //nolint:gosec // G115: ditto
	d := float32(divisions)
	for j := 0; j <= divisions; j++ {
		t := float32(j) / d
		for i := 0; i <= divisions; i++ {
			s := float32(i) / d
			verts = append(verts, VertexIn{
				Position: c.Add(u.Mul(2*s - 1)).Add(v.Mul(2*t - 1)),
				Normal:   n,
				Color:    white,
				UV:       math3d.V2(s, 1-t),
			})
		}
	}
	for j := range uint32(divisions) { //nolint:gosec // G115: ditto
		for i := range uint32(divisions) { //nolint:gosec // G115: ditto
			a := base + j*row + i
			idx = append(idx, a, a+1, a+row+1, a, a+row+1, a+row)
		}
	}
	return verts, idx
}

func mustMesh(verts []VertexIn, idx []uint32) *Mesh {
	m, err := NewMesh(verts, idx)
	if err != nil {
		panic(err)
	}
	return m
}

// NewQuad returns a width×height quad centred at the origin in the XY plane,
// facing +Z.
func NewQuad(width, height float32) *Mesh {
	v, i := grid(nil, nil, math3d.Vec3{}, math3d.V3(width/2, 0, 0), math3d.V3(0, height/2, 0), 1)
	return mustMesh(v, i)
}

// NewPlane returns a size×size plane centred at the origin in the XZ plane,
// facing +Y, split into divisions×divisions cells.
func NewPlane(size float32, divisions int) *Mesh {
	divisions = max(divisions, 1)
	h := size / 2
	v, i := grid(nil, nil, math3d.Vec3{}, math3d.V3(h, 0, 0), math3d.V3(0, 0, -h), divisions)
	return mustMesh(v, i)
}

// NewCube returns an axis-aligned cube with edge length size centred at the
// origin. Each face has its own four vertices so normals stay flat.
func NewCube(size float32) *Mesh {
	h := size / 2
	faces := [6][2]math3d.Vec3{
		{math3d.V3(0, 0, -h), math3d.V3(0, h, 0)}, // +X
		{math3d.V3(0, 0, h), math3d.V3(0, h, 0)},  // -X
		{math3d.V3(h, 0, 0), math3d.V3(0, 0, -h)}, // +Y
		{math3d.V3(h, 0, 0), math3d.V3(0, 0, h)},  // -Y
		{math3d.V3(h, 0, 0), math3d.V3(0, h, 0)},  // +Z
		{math3d.V3(-h, 0, 0), math3d.V3(0, h, 0)}, // -Z
	}
	verts := make([]VertexIn, 0, 24)
	idx := make([]uint32, 0, 36)
	for _, f := range faces {
		u, v := f[0], f[1]
		c := u.Cross(v).Normal().Mul(h)
		verts, idx = grid(verts, idx, c, u, v, 1)
	}
	return mustMesh(verts, idx)
}

// NewUVSphere returns a sphere of the given radius centred at the origin.
// segments is the number of longitude divisions (at least 3) and rings the
// number of latitude divisions (at least 2).
func NewUVSphere(radius float32, segments, rings int) *Mesh {
	segments = max(segments, 3)
	rings = max(rings, 2)

	verts := make([]VertexIn, 0, (segments+1)*(rings+1))
	for i := 0; i <= rings; i++ {
		theta := math32.Pi * float32(i) / float32(rings)
		st, ct := math32.Sincos(theta)
		for j := 0; j <= segments; j++ {
			phi := 2 * math32.Pi * float32(j) / float32(segments)
			sp, cp := math32.Sincos(phi)
			n := math3d.V3(st*sp, ct, st*cp)
			verts = append(verts, VertexIn{
				Position: n.Mul(radius),
				Normal:   n,
				Color:    white,
				UV:       math3d.V2(float32(j)/float32(segments), float32(i)/float32(rings)),
			})
		}
	}

	row := uint32(segments + 1) //nolint:gosec // G115: builder meshes are small
	idx := make([]uint32, 0, segments*rings*6)
	for i := range uint32(rings) { //nolint:gosec // G115: ditto
		for j := range uint32(segments) { //nolint:gosec // G115: ditto
			a := i*row + j
			b := a + row
			// Pole rows collapse one triangle of each quad to zero area.
			if i != uint32(rings-1) { //nolint:gosec // G115: ditto
				idx = append(idx, a, b, b+1)
			}
			if i != 0 {
				idx = append(idx, a, b+1, a+1)
			}
		}
	}
	return mustMesh(verts, idx)
}
