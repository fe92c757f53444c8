package color

import (
	"math"
	"testing"
)

func TestSRGBToLinearMatchesReference(t *testing.T) {
	for i := 0; i < 256; i++ {
		s := uint8(i)
		fast, slow := SRGBToLinear(s), SRGBToLinearSlow(s)
		if math.Abs(float64(fast-slow)) > 1e-6 {
			t.Errorf("SRGBToLinear(%d) = %v, want %v", s, fast, slow)
		}
	}
}

func TestLinearToSRGBMatchesReference(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		l := float32(i) / 1000
		fast, slow := LinearToSRGB(l), LinearToSRGBSlow(l)
		diff := int(fast) - int(slow)
		if diff < -1 || diff > 1 {
			t.Errorf("LinearToSRGB(%v) = %d, want %d (+-1)", l, fast, slow)
		}
	}
}

func TestLinearToSRGBEndpoints(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want uint8
	}{
		{"zero", 0, 0},
		{"one", 1, 255},
		{"negative", -3, 0},
		{"above one", 7, 255},
		{"nan", float32(math.NaN()), 0},
		{"inf", float32(math.Inf(1)), 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinearToSRGB(tt.in); got != tt.want {
				t.Errorf("LinearToSRGB(%v) = %d, want %d", tt.in, got, tt.want)
			}
			if got := LinearToByte(tt.in); got != tt.want {
				t.Errorf("LinearToByte(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestPackUnpack(t *testing.T) {
	p := Pack(0x11, 0x22, 0x33, 0x44)
	if p != 0x44112233 {
		t.Errorf("Pack() = %#x, want 0x44112233", p)
	}
	r, g, b, a := Unpack(p)
	if r != 0x11 || g != 0x22 || b != 0x33 || a != 0x44 {
		t.Errorf("Unpack(%#x) = %x %x %x %x", p, r, g, b, a)
	}
}

func TestEncode(t *testing.T) {
	if got := Encode(1, 0, 0, true); got != 0xFFFF0000 {
		t.Errorf("Encode(red, srgb) = %#x, want 0xFFFF0000", got)
	}
	if got := Encode(0.5, 0.5, 0.5, false); got != 0xFF808080 {
		t.Errorf("Encode(gray, linear) = %#x, want 0xFF808080", got)
	}
	if got := Encode(0.5, 0, 0, true); got>>16&0xFF != 188 {
		t.Errorf("Encode(0.5, srgb) red = %d, want 188", got>>16&0xFF)
	}
}

func BenchmarkLinearToSRGB(b *testing.B) {
	b.ReportAllocs()
	var sink uint8
	for i := 0; b.Loop(); i++ {
		sink += LinearToSRGB(float32(i&1023) / 1023)
	}
	_ = sink
}
