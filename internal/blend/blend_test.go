package blend

import (
	"math"
	"testing"

	"github.com/gogpu/gg3d/math3d"
)

func TestBlendModes(t *testing.T) {
	dst := math3d.V4(0.5, 0.5, 0.5, 1)
	src := math3d.V4(1, 2, 0, 0.25)

	tests := []struct {
		name string
		mode Mode
		want math3d.Vec4
	}{
		{"replace", ModeReplace, src},
		{"screen", ModeScreen, math3d.V4(1.5, 2.5, 0.5, 1)},
		{"multiply", ModeMultiply, math3d.V4(0.5, 1, 0, 1)},
		{"over", ModeSourceOver, math3d.V4(0.625, 0.875, 0.375, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Blend(src, dst, tt.mode); !got.Approx(tt.want, 1e-6) {
				t.Errorf("Blend(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestBlendSpan(t *testing.T) {
	dst := []math3d.Vec4{{X: 1}, {Y: 1}}
	src := []math3d.Vec4{{X: 1}, {Z: 2}}
	BlendSpan(dst, src, ModeScreen)
	if dst[0].X != 2 || dst[1].Z != 2 || dst[1].Y != 1 {
		t.Errorf("BlendSpan() = %v", dst)
	}
}

func TestResolveFullyRevealedUnchanged(t *testing.T) {
	dst := math3d.V4(0.1, 0.2, 0.3, 1)
	accum := math3d.V4(5, 5, 5, 2)
	if got := Resolve(dst, accum, 1.0); got != dst {
		t.Errorf("Resolve(revealage=1) = %v, want %v", got, dst)
	}
}

func TestResolveOpaqueLayerReplaces(t *testing.T) {
	dst := math3d.V4(0.9, 0.9, 0.9, 1)
	accum := math3d.V4(0.25, 0.5, 0.75, 1)
	got := Resolve(dst, accum, 0)
	want := math3d.V4(0.25, 0.5, 0.75, 1)
	if got != want {
		t.Errorf("Resolve(revealage=0) = %v, want %v", got, want)
	}
}

func TestResolveOverflowFallback(t *testing.T) {
	inf := float32(math.Inf(1))
	dst := math3d.V4(0, 0, 0, 1)
	accum := math3d.V4(inf, 1, 1, 4)
	got := Resolve(dst, accum, 0.5)
	// Accumulation becomes (4,4,4,4), normalized to (1,1,1), blended at 0.5.
	want := math3d.V4(0.5, 0.5, 0.5, 1)
	if !got.Approx(want, 1e-6) {
		t.Errorf("Resolve(overflow) = %v, want %v", got, want)
	}
	if math.IsNaN(float64(got.X)) {
		t.Error("Resolve produced NaN")
	}
}

func TestResolveInfiniteAlphaFallback(t *testing.T) {
	inf := float32(math.Inf(1))
	got := Resolve(math3d.V4(0.2, 0.2, 0.2, 1), math3d.V4(inf, inf, inf, inf), 0.5)
	want := math3d.V4(0.6, 0.6, 0.6, 1)
	if math.IsNaN(float64(got.X)) || !got.Approx(want, 1e-6) {
		t.Errorf("Resolve(all infinite) = %v, want %v", got, want)
	}
}

func TestResolveZeroAlphaGuard(t *testing.T) {
	got := Resolve(math3d.V4(1, 1, 1, 1), math3d.Vec4{}, 0.5)
	if math.IsNaN(float64(got.X)) || math.IsInf(float64(got.X), 0) {
		t.Errorf("Resolve with zero accumulated alpha = %v", got)
	}
}

func TestAccumulateSingleLayer(t *testing.T) {
	rgb := math3d.V3(0.2, 0.4, 0.6)
	w := Weight(0.5, 0.3)
	accum, reveal := Accumulate(math3d.Vec4{}, 1, rgb, 0.5, w)
	if reveal != 0.5 {
		t.Errorf("revealage = %v, want 0.5", reveal)
	}
	got := Resolve(math3d.V4(0, 0, 0, 1), accum, reveal)
	want := math3d.V4(0.1, 0.2, 0.3, 1)
	if !got.Approx(want, 1e-5) {
		t.Errorf("Resolve(single layer) = %v, want %v", got, want)
	}
}

func TestSingleOpaqueLayerIsExact(t *testing.T) {
	dst := math3d.V4(0.9, 0.8, 0.7, 1)
	colors := []float32{0.1, 0.2, 0.3, 0.7, 0.9, 1.0 / 3, 1, 4.5}
	for _, depth := range []float32{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.99, 1} {
		for _, c := range colors {
			rgb := math3d.V3(c, c/2, c*3)
			accum, reveal := Accumulate(math3d.Vec4{}, 1, rgb, 1, Weight(1, depth))
			got := Resolve(dst, accum, reveal).XYZ()
			if got != rgb {
				t.Errorf("depth=%v: Resolve(single opaque layer) = %v, want exactly %v", depth, got, rgb)
			}
		}
	}
}

func TestWeightIsPowerOfTwo(t *testing.T) {
	for d := float32(0); d <= 1; d += 1.0 / 32 {
		w := Weight(1, d)
		if frac, _ := math.Frexp(float64(w)); frac != 0.5 {
			t.Errorf("Weight(1, %v) = %v, not a power of two", d, w)
		}
		if w < MinWeight || w > MaxWeight {
			t.Errorf("Weight(1, %v) = %v, outside [%v, %v]", d, w, MinWeight, MaxWeight)
		}
	}
}

func TestWeightMonotonic(t *testing.T) {
	near := Weight(1, 0.1)
	far := Weight(1, 0.9)
	if near <= far {
		t.Errorf("Weight(near) = %v should exceed Weight(far) = %v", near, far)
	}
	if w := Weight(1, 1); w < 1e-2 {
		t.Errorf("Weight at far plane = %v, want >= 1e-2", w)
	}
}
