package gg3d

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/gg3d/math3d"
)

// ShadowMap is the depth-only sub-renderer of a directional light.
//
// It owns its framebuffer, shader context and renderer. The renderer uses
// depth-only shaders and culls front faces, so the stored depth is that of
// back faces and lit surfaces do not shadow themselves. The main pass reads
// the depth attachment through Visibility; nothing else is shared.
type ShadowMap struct {
	// Bias is the minimum depth offset of the shadow test.
	Bias float32
	// SlopeBias is added to Bias as surfaces turn away from the light.
	SlopeBias float32

	size      int
	fb        *Framebuffer
	ctx       *ShaderContext
	renderer  *Renderer
	direction math3d.Vec3
	viewProj  math3d.Mat4
	fitted    bool
}

// NewShadowMap creates a size×size shadow map drawing meshes from res.
func NewShadowMap(size int, res *Resources) *ShadowMap {
	fb := NewFramebuffer(size, size, AttachDepthOnly)
	ctx := NewShaderContext()
	r := NewRenderer(fb, ctx, res, depthOnly, WithRenderOptions(RenderOptions{
		Cull:    CullFrontFaces,
		Winding: WindingCCW,
	}))
	Logger().Info("gg3d: shadow map created", "size", size)
	return &ShadowMap{
		Bias:      0.002,
		SlopeBias: 0.01,
		size:      size,
		fb:        fb,
		ctx:       ctx,
		renderer:  r,
	}
}

// Size returns the edge length of the depth attachment in texels.
func (s *ShadowMap) Size() int { return s.size }

// Depth returns the depth attachment. Texels no caster covers hold
// DepthClear.
func (s *ShadowMap) Depth() *Buffer[float32] { return s.fb.Depth() }

// ViewProjection returns the light's view-projection matrix.
func (s *ShadowMap) ViewProjection() math3d.Mat4 { return s.viewProj }

// Stats returns the counters of the last shadow pass.
func (s *ShadowMap) Stats() Stats { return s.renderer.Stats() }

// Update fits an orthographic light camera looking along direction around
// bounds. An empty bounds leaves the map unfitted, which makes everything
// visible.
func (s *ShadowMap) Update(direction math3d.Vec3, bounds math3d.AABB) {
	if bounds.IsEmpty() || direction.LengthSq() == 0 {
		s.fitted = false
		return
	}
	dir := direction.Normal()
	center := bounds.Center()
	radius := max(bounds.Size().Length()/2, 1e-3)

	up := math3d.V3(0, 1, 0)
	if math32.Abs(dir.Dot(up)) > 0.99 {
		up = math3d.V3(0, 0, 1)
	}
	eye := center.Sub(dir.Mul(2 * radius))
	view := math3d.LookAt(eye, center, up)
	proj := math3d.Orthographic(-radius, radius, -radius, radius, radius/2, 3.5*radius)

	s.direction = dir
	s.ctx.SetCamera(view, proj)
	s.viewProj = s.ctx.ViewProjection
	s.fitted = true
}

// Render draws the shadow casters. It returns the joined errors of entities
// whose handles did not resolve; the others are still drawn.
func (s *ShadowMap) Render(entities []Entity) error {
	s.renderer.BeginFrame()
	if !s.fitted {
		s.renderer.EndFrame()
		return nil
	}
	var errs []error
	for i, e := range entities {
		if err := s.renderer.Render(e); err != nil {
			errs = append(errs, fmt.Errorf("entity %d: %w", i, err))
		}
	}
	s.renderer.EndFrame()
	return errors.Join(errs...)
}

// Visibility returns the lit fraction in [0,1] of a surface point with the
// given world position and normal, filtered over 3×3 texels. Points outside
// the light's view are lit.
func (s *ShadowMap) Visibility(worldPos, normal math3d.Vec3) float32 {
	if !s.fitted {
		return 1
	}
	p := worldPos.Vec4(1).MulMat4(s.viewProj).PerspectiveDivide()
	if p.X < -1 || p.X > 1 || p.Y < -1 || p.Y > 1 || p.Z > 1 || !p.IsFinite() {
		return 1
	}

	cosTheta := math3d.Clamp(normal.Dot(s.direction.Neg()), 0, 1)
	bias := s.Bias + s.SlopeBias*(1-cosTheta)
	z := p.Z - bias

	depth := s.fb.depth
	size := float32(s.size)
	cx := int(math32.Floor((p.X + 1) * 0.5 * size))
	cy := int(math32.Floor((1 - p.Y) * 0.5 * size))

	lit := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			i := depth.Index(cx+dx, cy+dy)
			if i < 0 || z <= depth.data[i] {
				lit++
			}
		}
	}
	return float32(lit) / 9
}
