package gg3d

import (
	"errors"
	"testing"

	"github.com/gogpu/gg3d/math3d"
)

func TestNewMeshValidation(t *testing.T) {
	verts := []VertexIn{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(0, 2, -1)},
	}
	tests := []struct {
		name    string
		indices []uint32
		wantErr bool
	}{
		{"one triangle", []uint32{0, 1, 2}, false},
		{"empty", nil, false},
		{"not a multiple of three", []uint32{0, 1}, true},
		{"out of range", []uint32{0, 1, 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMesh(verts, tt.indices)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMesh) {
					t.Errorf("NewMesh() error = %v, want ErrInvalidMesh", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewMesh() error = %v", err)
			}
			if m.TriangleCount() != len(tt.indices)/3 {
				t.Errorf("TriangleCount() = %d, want %d", m.TriangleCount(), len(tt.indices)/3)
			}
			want := math3d.AABB{Min: math3d.V3(0, 0, -1), Max: math3d.V3(1, 2, 0)}
			if m.Bounds != want {
				t.Errorf("Bounds = %v, want %v", m.Bounds, want)
			}
		})
	}
}

// faceNormalsAgree reports whether every triangle's winding matches its
// vertex normals, i.e. is counter-clockwise seen from the front.
func faceNormalsAgree(m *Mesh) bool {
	for i := range m.TriangleCount() {
		tri := m.Triangle(i)
		n := tri.V1.Position.Sub(tri.V0.Position).Cross(tri.V2.Position.Sub(tri.V0.Position))
		if n.Dot(tri.V0.Normal) <= 0 {
			return false
		}
	}
	return true
}

func TestMeshBuilders(t *testing.T) {
	tests := []struct {
		name      string
		mesh      *Mesh
		verts     int
		triangles int
		bounds    math3d.AABB
	}{
		{
			name: "quad", mesh: NewQuad(2, 1), verts: 4, triangles: 2,
			bounds: math3d.AABB{Min: math3d.V3(-1, -0.5, 0), Max: math3d.V3(1, 0.5, 0)},
		},
		{
			name: "plane", mesh: NewPlane(4, 3), verts: 16, triangles: 18,
			bounds: math3d.AABB{Min: math3d.V3(-2, 0, -2), Max: math3d.V3(2, 0, 2)},
		},
		{
			name: "cube", mesh: NewCube(2), verts: 24, triangles: 12,
			bounds: math3d.AABB{Min: math3d.V3(-1, -1, -1), Max: math3d.V3(1, 1, 1)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.mesh.Vertices); got != tt.verts {
				t.Errorf("len(Vertices) = %d, want %d", got, tt.verts)
			}
			if got := tt.mesh.TriangleCount(); got != tt.triangles {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.triangles)
			}
			if !tt.mesh.Bounds.Min.Approx(tt.bounds.Min, 1e-6) || !tt.mesh.Bounds.Max.Approx(tt.bounds.Max, 1e-6) {
				t.Errorf("Bounds = %v, want %v", tt.mesh.Bounds, tt.bounds)
			}
			if !faceNormalsAgree(tt.mesh) {
				t.Error("triangle winding disagrees with vertex normals")
			}
		})
	}
}

func TestNewUVSphere(t *testing.T) {
	m := NewUVSphere(2, 8, 4)
	if got, want := m.TriangleCount(), 8*(2*4-2); got != want {
		t.Errorf("TriangleCount() = %d, want %d", got, want)
	}
	for i, v := range m.Vertices {
		if d := v.Position.Length(); d < 2-1e-5 || d > 2+1e-5 {
			t.Fatalf("vertex %d at distance %v, want 2", i, d)
		}
	}
	if !faceNormalsAgree(m) {
		t.Error("sphere triangles face inward")
	}
}
