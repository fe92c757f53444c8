// Package color provides the sRGB transfer function and 32-bit pixel
// packing used by texture loading and tone mapping.
//
// The lookup tables give O(1) sRGB <-> linear conversions, replacing
// math.Pow calls in the per-pixel hot paths.
//
// References:
//   - sRGB specification: https://www.w3.org/Graphics/Color/sRGB
//   - GPU Gems 3, Chapter 24: https://developer.nvidia.com/gpugems/gpugems3/part-iv-image-effects/chapter-24-importance-being-linear
package color

import "math"

// sRGBToLinearLUT converts an sRGB byte [0-255] to linear float32 [0.0-1.0].
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT converts linear [0.0-1.0] to an sRGB byte. 4096 entries
// (12-bit precision) are sufficient for 8-bit output.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := 0; i < 256; i++ {
		sRGBToLinearLUT[i] = float32(srgbToLinear(float64(i) / 255.0))
	}
	for i := 0; i < 4096; i++ {
		linearToSRGBLUT[i] = toByte(linearToSRGB(float64(i) / 4095.0))
	}
}

func srgbToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

func linearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

func toByte(v float64) uint8 {
	b := int(v*255.0 + 0.5)
	if b < 0 {
		b = 0
	}
	if b > 255 {
		b = 255
	}
	//nolint:gosec // G115: b is clamped to [0,255] range
	return uint8(b)
}

// SRGBToLinear converts an sRGB byte to linear float32 using the lookup table.
func SRGBToLinear(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGB converts linear float32 to an sRGB byte using the lookup
// table. Input is clamped to [0, 1]; NaN maps to 0.
func LinearToSRGB(l float32) uint8 {
	if !(l > 0) {
		return 0
	}
	if l > 1 {
		l = 1
	}
	return linearToSRGBLUT[int(l*4095.0+0.5)]
}

// LinearToByte converts linear float32 to a byte without gamma encoding.
// Input is clamped to [0, 1]; NaN maps to 0.
func LinearToByte(l float32) uint8 {
	if !(l > 0) {
		return 0
	}
	if l > 1 {
		return 255
	}
	return uint8(l*255 + 0.5)
}

// SRGBToLinearSlow converts an sRGB byte using math.Pow.
// It is the reference implementation for tests.
func SRGBToLinearSlow(s uint8) float32 {
	return float32(srgbToLinear(float64(s) / 255.0))
}

// LinearToSRGBSlow converts linear float32 to an sRGB byte using math.Pow.
// It is the reference implementation for tests.
func LinearToSRGBSlow(l float32) uint8 {
	lf := math.Max(0, math.Min(1, float64(l)))
	return toByte(linearToSRGB(lf))
}
