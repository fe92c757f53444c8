package gg3d

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/gg3d/math3d"
)

// wireDepthBias lets an edge win the depth test against the face it
// belongs to.
const wireDepthBias = 1e-4

type wireSegment struct {
	x0, y0, z0 float32
	x1, y1, z1 float32
	color      math3d.Vec4
}

// queueEdges records the three edges of a projected triangle. Edges are
// drawn by drawWireframe once lighting has filled the HDR buffer.
func (r *Renderer) queueEdges(s [3]screenVertex, c math3d.Vec4) {
	for k := range 3 {
		a, b := s[k], s[(k+1)%3]
		r.wires = append(r.wires, wireSegment{
			x0: a.x, y0: a.y, z0: a.z,
			x1: b.x, y1: b.y, z1: b.z,
			color: c,
		})
	}
}

// drawWireframe rasterizes the queued edges into HDR with a DDA walk,
// depth tested against the opaque geometry but without writing depth.
func (r *Renderer) drawWireframe() {
	if len(r.wires) == 0 {
		return
	}
	fb := r.fb
	hdr, depth := fb.hdr, fb.depth
	w, h := float32(fb.width), float32(fb.height)

	for _, seg := range r.wires {
		dx, dy := seg.x1-seg.x0, seg.y1-seg.y0
		// Edges many screens long come from vertices just past the near
		// plane. They are dropped rather than walked.
		steps := math32.Ceil(math32.Max(math32.Abs(dx), math32.Abs(dy)))
		if !isFinite(steps) || steps > 4*(w+h) {
			continue
		}
		n := max(int(steps), 1)
		for k := 0; k <= n; k++ {
			t := float32(k) / float32(n)
			x := int(math32.Floor(seg.x0 + dx*t))
			y := int(math32.Floor(seg.y0 + dy*t))
			i := depth.Index(x, y)
			if i < 0 {
				continue
			}
			z := seg.z0 + (seg.z1-seg.z0)*t
			if z <= depth.data[i]+wireDepthBias {
				hdr.data[i] = seg.color
			}
		}
	}
	r.wires = r.wires[:0]
}
