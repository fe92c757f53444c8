package filter

import "math"

// BloomWeights is the fixed one-sided 5-tap Gaussian kernel of the bloom
// blur: BloomWeights[0] is the center tap and BloomWeights[i] applies at
// offsets +i and -i. The full kernel sums to ~1.
var BloomWeights = []float32{0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216}

// HalfGaussianKernel returns a one-sided kernel of taps weights for the
// given sigma, normalized so that the symmetric kernel sums to 1.0.
//
// For sigma <= 0 or taps < 1, returns [1.0] (identity).
func HalfGaussianKernel(sigma float64, taps int) []float32 {
	if sigma <= 0 || taps < 1 {
		return []float32{1.0}
	}

	kernel := make([]float32, taps)
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	vals := make([]float64, taps)
	for i := range taps {
		x := float64(i)
		vals[i] = math.Exp(-(x * x) / twoSigmaSq)
		if i == 0 {
			sum += vals[i]
		} else {
			sum += 2 * vals[i]
		}
	}
	for i := range kernel {
		kernel[i] = float32(vals[i] / sum)
	}
	return kernel
}

// KernelSum returns the sum of the symmetric kernel described by the
// one-sided weights.
func KernelSum(weights []float32) float32 {
	if len(weights) == 0 {
		return 0
	}
	sum := weights[0]
	for _, w := range weights[1:] {
		sum += 2 * w
	}
	return sum
}
