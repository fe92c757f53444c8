package filter

import "github.com/gogpu/gg3d/math3d"

// BlurHorizontal convolves rows [y0, y1) of src with the symmetric kernel
// described by the one-sided weights and writes them to dst. Samples past
// the image edge are clamped (edge extension).
func BlurHorizontal(dst, src []math3d.Vec4, width, y0, y1 int, weights []float32) {
	taps := len(weights)
	for y := y0; y < y1; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			acc := src[row+x].Mul(weights[0])
			for k := 1; k < taps; k++ {
				l := x - k
				if l < 0 {
					l = 0
				}
				r := x + k
				if r >= width {
					r = width - 1
				}
				acc = acc.Add(src[row+l].Add(src[row+r]).Mul(weights[k]))
			}
			dst[row+x] = acc
		}
	}
}

// BlurVertical convolves columns of src for output rows [y0, y1) and writes
// them to dst. It reads rows outside the range, so dst must not alias src.
func BlurVertical(dst, src []math3d.Vec4, width, height, y0, y1 int, weights []float32) {
	taps := len(weights)
	for y := y0; y < y1; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			acc := src[row+x].Mul(weights[0])
			for k := 1; k < taps; k++ {
				u := y - k
				if u < 0 {
					u = 0
				}
				d := y + k
				if d >= height {
					d = height - 1
				}
				acc = acc.Add(src[u*width+x].Add(src[d*width+x]).Mul(weights[k]))
			}
			dst[row+x] = acc
		}
	}
}

// BrightPass copies pixels of src in rows [y0, y1) whose largest RGB channel
// is at least threshold into dst and zeroes the rest.
func BrightPass(dst, src []math3d.Vec4, width, y0, y1 int, threshold float32) {
	for i := y0 * width; i < y1*width; i++ {
		c := src[i]
		if c.X >= threshold || c.Y >= threshold || c.Z >= threshold {
			dst[i] = math3d.Vec4{X: c.X, Y: c.Y, Z: c.Z, W: 1}
		} else {
			dst[i] = math3d.Vec4{}
		}
	}
}
