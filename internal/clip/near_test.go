package clip

import (
	"math"
	"testing"
)

// vtx is a minimal vertex. lerpT records the parameter of the Lerp that
// produced it, or -1 for original vertices.
type vtx struct {
	x, y, z float32
	lerpT   float32
}

func v(x, y, z float32) vtx { return vtx{x: x, y: y, z: z, lerpT: -1} }

func (a vtx) Lerp(b vtx, t float32) vtx {
	return vtx{
		x:     a.x + (b.x-a.x)*t,
		y:     a.y + (b.y-a.y)*t,
		z:     a.z + (b.z-a.z)*t,
		lerpT: t,
	}
}

func zOf(p vtx) float32 { return p.z }

// signedArea returns twice the signed xy area of a triangle.
func signedArea(t [3]vtx) float32 {
	return (t[1].x-t[0].x)*(t[2].y-t[0].y) - (t[1].y-t[0].y)*(t[2].x-t[0].x)
}

func TestNearAllInFront(t *testing.T) {
	a, b, c := v(0, 0, 0), v(1, 0, 1), v(0, 1, 2)
	out, n := Near(a, b, c, zOf)
	if n != 1 {
		t.Fatalf("Near() n = %d, want 1", n)
	}
	if out[0] != [3]vtx{a, b, c} {
		t.Errorf("Near() = %v, want input unchanged", out[0])
	}
}

func TestNearAllBehind(t *testing.T) {
	_, n := Near(v(0, 0, -1), v(1, 0, -2), v(0, 1, -0.001), zOf)
	if n != 0 {
		t.Errorf("Near() n = %d, want 0", n)
	}
}

func TestNearCases(t *testing.T) {
	tests := []struct {
		name  string
		zs    [3]float32
		wantN int
	}{
		{"v0 behind", [3]float32{-1, 1, 2}, 2},
		{"v1 behind", [3]float32{1, -1, 2}, 2},
		{"v2 behind", [3]float32{1, 2, -3}, 2},
		{"v0 v1 behind", [3]float32{-1, -2, 2}, 1},
		{"v1 v2 behind", [3]float32{3, -2, -0.5}, 1},
		{"v0 v2 behind", [3]float32{-1, 2, -4}, 1},
		{"zero counts as front", [3]float32{0, 0, 0}, 1},
		{"zero and behind", [3]float32{0, -1, 1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := v(0, 0, tt.zs[0])
			b := v(4, 0, tt.zs[1])
			c := v(0, 4, tt.zs[2])
			inArea := signedArea([3]vtx{a, b, c})

			out, n := Near(a, b, c, zOf)
			if n != tt.wantN {
				t.Fatalf("Near() n = %d, want %d", n, tt.wantN)
			}
			for i := 0; i < n; i++ {
				for _, p := range out[i] {
					if p.z < 0 {
						t.Errorf("triangle %d has vertex behind near plane: %+v", i, p)
					}
					if p.lerpT == -1 {
						continue
					}
					if p.lerpT < 0 || p.lerpT > 1 {
						t.Errorf("interpolation parameter %v outside [0,1]", p.lerpT)
					}
					if math.Abs(float64(p.z)) > 1e-6 {
						t.Errorf("generated vertex z = %v, want 0", p.z)
					}
				}
				if area := signedArea(out[i]); area*inArea < 0 {
					t.Errorf("triangle %d winding flipped: area %v vs input %v", i, area, inArea)
				}
			}
		})
	}
}

func TestNearOneBehindLayout(t *testing.T) {
	// v0 behind; A' on v0-v1, B' on v0-v2.
	a, b, c := v(0, 0, -1), v(2, 0, 1), v(0, 2, 3)
	out, n := Near(a, b, c, zOf)
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	ap, bp := out[0][0], out[1][0]
	if ap.x != 1 || ap.y != 0 {
		t.Errorf("A' = (%v, %v), want (1, 0)", ap.x, ap.y)
	}
	if bp.x != 0 || bp.y != 0.5 {
		t.Errorf("B' = (%v, %v), want (0, 0.5)", bp.x, bp.y)
	}
	if out[0][1] != b || out[0][2] != c {
		t.Errorf("first triangle = %v, want (A', v1, v2)", out[0])
	}
	if out[1][1] != ap || out[1][2] != c {
		t.Errorf("second triangle = %v, want (B', A', v2)", out[1])
	}
}
