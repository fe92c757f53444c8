// Package blend provides the HDR color blending operations used by the
// compositing passes.
package blend

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/gg3d/math3d"
)

// Mode represents a blending mode for linear HDR colors.
type Mode int

const (
	// ModeSourceOver is straight-alpha "over" compositing using src.W as alpha.
	ModeSourceOver Mode = iota
	// ModeReplace replaces the destination with the source.
	ModeReplace
	// ModeScreen adds the source RGB to the destination, keeping the
	// destination alpha. For unbounded HDR values this is the additive
	// form of screen blending used to composite bloom.
	ModeScreen
	// ModeMultiply multiplies the RGB channels.
	ModeMultiply
)

// Blend blends src onto dst using the specified mode.
func Blend(src, dst math3d.Vec4, mode Mode) math3d.Vec4 {
	switch mode {
	case ModeReplace:
		return src
	case ModeScreen:
		return math3d.Vec4{X: dst.X + src.X, Y: dst.Y + src.Y, Z: dst.Z + src.Z, W: dst.W}
	case ModeMultiply:
		return math3d.Vec4{X: dst.X * src.X, Y: dst.Y * src.Y, Z: dst.Z * src.Z, W: dst.W}
	default:
		return sourceOver(src, dst)
	}
}

// sourceOver blends straight-alpha src over dst.
func sourceOver(src, dst math3d.Vec4) math3d.Vec4 {
	a := src.W
	inv := 1 - a
	return math3d.Vec4{
		X: src.X*a + dst.X*inv,
		Y: src.Y*a + dst.Y*inv,
		Z: src.Z*a + dst.Z*inv,
		W: a + dst.W*inv,
	}
}

// BlendSpan blends src onto dst element by element. The slices must have
// equal length.
func BlendSpan(dst, src []math3d.Vec4, mode Mode) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	for i := range src {
		dst[i] = Blend(src[i], dst[i], mode)
	}
}

// MaxChannel returns the largest RGB channel of c.
func MaxChannel(c math3d.Vec4) float32 {
	return math32.Max(c.X, math32.Max(c.Y, c.Z))
}
