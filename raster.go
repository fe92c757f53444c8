package gg3d

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/gg3d/internal/blend"
	"github.com/gogpu/gg3d/internal/clip"
	"github.com/gogpu/gg3d/math3d"
)

// rasterMode selects what happens to a fragment that passes the depth test.
type rasterMode uint8

const (
	// modeOpaque writes depth and stencil, then stores the sample in the
	// G-buffer (deferred) or shades it into HDR (forward).
	modeOpaque rasterMode = iota

	// modeTransparent tests depth without writing it and accumulates the
	// shaded color into the weighted-blended transparency buffers.
	modeTransparent

	// modeDepth writes depth only. Shadow maps use it.
	modeDepth
)

// degenerateArea is the smallest screen-space triangle area, in square
// pixels (times two), that is rasterized.
const degenerateArea = 1e-8

// screenVertex is a vertex after the perspective divide and viewport map.
type screenVertex struct {
	x, y, z float32
	invW    float32
	v       VertexOut
}

// drawMesh runs the geometry pipeline for one mesh: frustum test, vertex
// shading, near clipping and rasterization. ctx.World and the active
// material are already bound.
func (r *Renderer) drawMesh(mesh *Mesh, mode rasterMode, opts RenderOptions) {
	r.stats.Entities++
	if mesh.TriangleCount() == 0 {
		return
	}
	if !math3d.FrustumFromMatrix(r.ctx.WorldViewProjection).IntersectsAABB(mesh.Bounds) {
		r.stats.EntitiesCulled++
		return
	}

	verts := r.verts[:0]
	for _, in := range mesh.Vertices {
		verts = append(verts, r.shaders.Vertex.Vertex(r.ctx, r.res, in))
	}
	r.verts = verts

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		r.stats.Triangles++
		v0 := verts[mesh.Indices[i]]
		v1 := verts[mesh.Indices[i+1]]
		v2 := verts[mesh.Indices[i+2]]

		clipped, n := clip.Near(v0, v1, v2, clipZ)
		if n == 0 {
			r.stats.TrianglesClipped++
			continue
		}
		for k := range n {
			r.drawTriangle(Tri(clipped[k][0], clipped[k][1], clipped[k][2]), mode, opts)
		}
	}
}

func (r *Renderer) drawTriangle(t Triangle[VertexOut], mode rasterMode, opts RenderOptions) {
	s, area, ok := r.setup(t, opts)
	if !ok {
		return
	}
	if mode != modeDepth && r.fb.hdr != nil {
		if opts.Wireframe || opts.Has(PassWireframe) {
			r.queueEdges(s, opts.WireframeColor)
		}
		if opts.Wireframe {
			return
		}
	}
	r.fill(s, area, mode, opts)
}

// project applies the perspective divide and maps NDC to pixels with y
// pointing down. It fails for vertices with w <= 0 or non-finite results.
func (r *Renderer) project(v VertexOut) (screenVertex, bool) {
	w := v.Position.W
	if !(w > 0) {
		return screenVertex{}, false
	}
	inv := 1 / w
	ndcX := v.Position.X * inv
	ndcY := v.Position.Y * inv
	sv := screenVertex{
		x:    (ndcX + 1) * 0.5 * float32(r.fb.width),
		y:    (1 - ndcY) * 0.5 * float32(r.fb.height),
		z:    v.Position.Z * inv,
		invW: inv,
		v:    v,
	}
	return sv, isFinite(sv.x) && isFinite(sv.y) && isFinite(sv.z)
}

// edge returns twice the signed area of (a, b, p). It is positive when p
// lies to the right of a→b on the y-down screen.
func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// setup projects a clipped triangle, applies face culling and orders the
// vertices so the returned area is positive.
func (r *Renderer) setup(t Triangle[VertexOut], opts RenderOptions) (s [3]screenVertex, area float32, ok bool) {
	for i, v := range [3]VertexOut{t.V0, t.V1, t.V2} {
		if s[i], ok = r.project(v); !ok {
			r.stats.TrianglesDegenerate++
			return s, 0, false
		}
	}

	area = edge(s[0], s[1], s[2].x, s[2].y)
	if !(math32.Abs(area) >= degenerateArea) {
		r.stats.TrianglesDegenerate++
		return s, 0, false
	}

	// Counter-clockwise in NDC is negative area once y points down.
	front := area < 0
	if opts.Winding == WindingCW {
		front = !front
	}
	if (opts.Cull == CullBackFaces && !front) || (opts.Cull == CullFrontFaces && front) {
		r.stats.TrianglesCulled++
		return s, 0, false
	}

	if area < 0 {
		s[1], s[2] = s[2], s[1]
		area = -area
	}
	return s, area, true
}

// ownsEdge is the fill-rule tie-break for pixel centres exactly on an edge.
// A shared edge runs in opposite directions in its two triangles, so exactly
// one of them owns it and the pixel is drawn once.
func ownsEdge(a, b screenVertex) bool {
	dy := b.y - a.y
	return dy < 0 || (dy == 0 && b.x > a.x)
}

func covers(e float32, owned bool) bool {
	return e > 0 || (e == 0 && owned)
}

// fill visits every pixel centre inside the triangle and submits the
// fragments that pass the depth test.
func (r *Renderer) fill(s [3]screenVertex, area float32, mode rasterMode, opts RenderOptions) {
	width, height := r.fb.width, r.fb.height
	if width == 0 || height == 0 {
		return
	}

	minX := math32.Min(s[0].x, math32.Min(s[1].x, s[2].x))
	maxX := math32.Max(s[0].x, math32.Max(s[1].x, s[2].x))
	minY := math32.Min(s[0].y, math32.Min(s[1].y, s[2].y))
	maxY := math32.Max(s[0].y, math32.Max(s[1].y, s[2].y))

	// Clamp in float first: projected coordinates can be far outside int range.
	x0 := int(math3d.Clamp(math32.Ceil(minX-0.5), 0, float32(width)))
	x1 := int(math3d.Clamp(math32.Floor(maxX-0.5), -1, float32(width-1)))
	y0 := int(math3d.Clamp(math32.Ceil(minY-0.5), 0, float32(height)))
	y1 := int(math3d.Clamp(math32.Floor(maxY-0.5), -1, float32(height-1)))

	own0 := ownsEdge(s[1], s[2])
	own1 := ownsEdge(s[2], s[0])
	own2 := ownsEdge(s[0], s[1])
	invArea := 1 / area
	depth := r.fb.depth.data

	for y := y0; y <= y1; y++ {
		py := float32(y) + 0.5
		row := y * width
		for x := x0; x <= x1; x++ {
			px := float32(x) + 0.5
			e0 := edge(s[1], s[2], px, py)
			e1 := edge(s[2], s[0], px, py)
			e2 := edge(s[0], s[1], px, py)
			if !covers(e0, own0) || !covers(e1, own1) || !covers(e2, own2) {
				continue
			}

			l0, l1, l2 := e0*invArea, e1*invArea, e2*invArea
			z := l0*s[0].z + l1*s[1].z + l2*s[2].z
			if z > 1 {
				continue
			}
			z = max(z, 0)

			i := row + x
			if !(z < depth[i]) {
				continue
			}

			if mode == modeDepth {
				depth[i] = z
				r.stats.Fragments++
				continue
			}
			r.shade(i, z, interpolate(s, l0, l1, l2, z), mode, opts)
		}
	}
}

// interpolate returns the perspective-correct vertex at screen-space
// barycentrics l0, l1, l2: each attribute is weighted by l/w and the
// result renormalized.
func interpolate(s [3]screenVertex, l0, l1, l2, z float32) VertexOut {
	q0 := l0 * s[0].invW
	q1 := l1 * s[1].invW
	q2 := l2 * s[2].invW
	inv := 1 / (q0 + q1 + q2)
	v := s[0].v.Scale(q0 * inv).Add(s[1].v.Scale(q1 * inv)).Add(s[2].v.Scale(q2 * inv))
	v.Depth = z
	return v
}

// shade runs the alpha, geometry and (forward or transparent) fragment
// shaders for a fragment that passed the depth test at index i.
func (r *Renderer) shade(i int, z float32, v VertexOut, mode rasterMode, opts RenderOptions) {
	if r.shaders.Alpha != nil && r.shaders.Alpha.Discard(r.ctx, r.res, v) {
		r.stats.FragmentsDiscarded++
		return
	}
	s, ok := r.shaders.Geometry.Geometry(r.ctx, r.res, v, opts)
	if !ok {
		r.stats.FragmentsDiscarded++
		return
	}
	s.Depth = z
	if !opts.Has(PassLighting) {
		s.Unlit = true
	}

	fb := r.fb
	if mode == modeTransparent {
		c := r.shaders.Fragment.Fragment(r.ctx, r.res, s)
		if !(c.W > 0) {
			r.stats.FragmentsDiscarded++
			return
		}
		a := min(c.W, 1)
		fb.accum.data[i], fb.revealage.data[i] = blend.Accumulate(
			fb.accum.data[i], fb.revealage.data[i], c.XYZ(), a, blend.Weight(a, z))
		r.stats.TransparentFragments++
		return
	}

	fb.depth.data[i] = z
	if fb.stencil != nil {
		fb.stencil.data[i] = 1
	}
	r.stats.Fragments++

	if fb.gbuffer != nil && opts.Has(PassDeferredLighting) {
		s.Stencil = true
		fb.gbuffer.data[i] = s
		return
	}
	fb.hdr.data[i] = r.shaders.Fragment.Fragment(r.ctx, r.res, s)
	if fb.gbuffer != nil {
		// A forward fragment over a deferred one takes the pixel; the
		// lighting pass must not overwrite it.
		fb.gbuffer.data[i].Stencil = false
	}
}
