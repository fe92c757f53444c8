package gg3d

import (
	"sync/atomic"

	"github.com/gogpu/gg3d/internal/blend"
	"github.com/gogpu/gg3d/internal/color"
	"github.com/gogpu/gg3d/internal/filter"
	"github.com/gogpu/gg3d/internal/parallel"
)

// DeferredLighting runs the fragment shader over every G-buffer cell whose
// Stencil flag is set and writes the result to HDR. It is a pure function
// of the G-buffer, so running it twice gives identical output.
//
// EndFrame calls it; it is exported for callers that drive passes by hand.
func (r *Renderer) DeferredLighting() {
	gb := r.fb.GBuffer().data
	hdr := r.fb.HDR().data
	width := r.fb.width
	frag := r.shaders.Fragment

	var lit atomic.Int64
	parallel.Rows(r.pool, r.fb.height, func(y0, y1 int) {
		n := 0
		for i := y0 * width; i < y1*width; i++ {
			if !gb[i].Stencil {
				continue
			}
			hdr[i] = frag.Fragment(r.ctx, r.res, gb[i])
			n++
		}
		lit.Add(int64(n))
	})
	r.stats.Lit += int(lit.Load())
}

// ResolveTransparency composites the weighted-blended accumulation over HDR.
func (r *Renderer) ResolveTransparency() {
	hdr := r.fb.HDR().data
	accum := r.fb.Accum().data
	reveal := r.fb.Revealage().data
	width := r.fb.width

	parallel.Rows(r.pool, r.fb.height, func(y0, y1 int) {
		for i := y0 * width; i < y1*width; i++ {
			hdr[i] = blend.Resolve(hdr[i], accum[i], reveal[i])
		}
	})
}

// Bloom extracts the bright parts of HDR, blurs them and adds them back.
func (r *Renderer) Bloom() {
	hdr := r.fb.HDR().data
	a, b := r.fb.Bloom(0).data, r.fb.Bloom(1).data
	width, height := r.fb.width, r.fb.height
	weights := r.post.BloomWeights
	if weights == nil {
		weights = filter.BloomWeights
	}

	parallel.Rows(r.pool, height, func(y0, y1 int) {
		filter.BrightPass(a, hdr, width, y0, y1, r.post.BloomThreshold)
	})
	for range r.post.BloomRounds {
		parallel.Rows(r.pool, height, func(y0, y1 int) {
			filter.BlurHorizontal(b, a, width, y0, y1, weights)
		})
		parallel.Rows(r.pool, height, func(y0, y1 int) {
			filter.BlurVertical(a, b, width, height, y0, y1, weights)
		})
	}
	parallel.Rows(r.pool, height, func(y0, y1 int) {
		blend.BlendSpan(hdr[y0*width:y1*width], a[y0*width:y1*width], blend.ModeScreen)
	})
}

// ToneMap maps HDR to the packed display color attachment.
func (r *Renderer) ToneMap() {
	hdr := r.fb.HDR().data
	out := r.fb.ColorBuffer().data
	width := r.fb.width
	tm := r.post.ToneMapper
	if tm == nil {
		tm = Reinhard
	}
	exposure := r.post.Exposure
	if exposure == 0 {
		exposure = 1
	}
	srgb := r.post.SRGB

	parallel.Rows(r.pool, r.fb.height, func(y0, y1 int) {
		for i := y0 * width; i < y1*width; i++ {
			c := tm(hdr[i].XYZ().Mul(exposure))
			out[i] = color.Encode(c.X, c.Y, c.Z, srgb)
		}
	})
}
