package gg3d

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/gg3d/internal/parallel"
	"github.com/gogpu/gg3d/math3d"
)

// Entity is one draw call for RenderFrame: a mesh and material from
// Resources placed by a world transform.
type Entity struct {
	World    math3d.Mat4
	Mesh     Handle
	Material Handle
}

type transparentDraw struct {
	world    math3d.Mat4
	mesh     *Mesh
	material Handle
	opts     RenderOptions
}

// Renderer drives the pipeline for one framebuffer.
//
// A frame is BeginFrame, any number of RenderEntity calls, then EndFrame.
// EndFrame runs deferred lighting, the transparent queue, wireframe, the
// transparency resolve, bloom and tone mapping, in that order, skipping
// passes whose attachments the framebuffer lacks. A framebuffer with neither HDR nor
// G-buffer gets depth only, which is how shadow maps render.
//
// A Renderer is not safe for concurrent use. Full-screen passes may use
// worker goroutines internally (see WithWorkers) but return only when done.
type Renderer struct {
	fb      *Framebuffer
	ctx     *ShaderContext
	res     *Resources
	shaders Shaders

	opts            RenderOptions
	post            PostProcess
	clearColor      math3d.Vec4
	parallelShadows bool
	pool            *parallel.WorkerPool

	verts       []VertexOut
	transparent []transparentDraw
	wires       []wireSegment
	stats       Stats
	inFrame     bool
}

// NewRenderer creates a renderer drawing into fb with the given context,
// resources and shaders. The framebuffer must have a depth attachment, and
// an HDR attachment if it has a G-buffer.
func NewRenderer(fb *Framebuffer, ctx *ShaderContext, res *Resources, shaders Shaders, opts ...RendererOption) *Renderer {
	fb.mustHave(AttachDepth)
	if fb.Has(AttachGBuffer) {
		fb.mustHave(AttachHDR)
	}
	shaders.validate()

	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{
		fb:              fb,
		ctx:             ctx,
		res:             res,
		shaders:         shaders,
		opts:            o.render,
		post:            o.post,
		clearColor:      o.clearColor,
		parallelShadows: o.parallelShadows,
	}
	if o.workers != 1 {
		r.pool = parallel.NewWorkerPool(o.workers)
	}
	ctx.SetViewport(fb.width, fb.height)
	return r
}

// Close stops the worker goroutines, if any.
func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Framebuffer returns the render target.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }

// Context returns the shader context.
func (r *Renderer) Context() *ShaderContext { return r.ctx }

// Resources returns the resource arenas.
func (r *Renderer) Resources() *Resources { return r.res }

// Stats returns the counters of the current or last frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Options returns the current draw-call options.
func (r *Renderer) Options() RenderOptions { return r.opts }

// SetOptions replaces the draw-call options.
func (r *Renderer) SetOptions(opts RenderOptions) { r.opts = opts }

// WithOptions runs fn with opts as the draw-call options and restores the
// previous options afterwards.
func (r *Renderer) WithOptions(opts RenderOptions, fn func()) {
	prev := r.opts
	r.opts = opts
	defer func() { r.opts = prev }()
	fn()
}

// PostProcess returns the post pass configuration.
func (r *Renderer) PostProcess() PostProcess { return r.post }

// SetPostProcess replaces the post pass configuration.
func (r *Renderer) SetPostProcess(p PostProcess) { r.post = p }

// SetShaders replaces the shader set. It panics inside a frame: queued
// transparent draws would otherwise be shaded by a different set.
func (r *Renderer) SetShaders(s Shaders) {
	if r.inFrame {
		panic("gg3d: SetShaders called between BeginFrame and EndFrame")
	}
	s.validate()
	r.shaders = s
}

// Resize resizes the framebuffer and viewport.
func (r *Renderer) Resize(width, height int) {
	r.fb.Resize(width, height)
	r.ctx.SetViewport(width, height)
}

func (r *Renderer) depthOnly() bool {
	return r.fb.hdr == nil && r.fb.gbuffer == nil
}

// BeginFrame clears the framebuffer and resets the frame state.
func (r *Renderer) BeginFrame() {
	r.fb.Clear(r.clearColor)
	r.ctx.SetViewport(r.fb.width, r.fb.height)
	clear(r.transparent)
	r.transparent = r.transparent[:0]
	r.wires = r.wires[:0]
	r.stats = Stats{}
	r.inFrame = true
}

// RenderEntity draws mesh with the given world transform and material.
// The zero material handle selects DefaultMaterial.
//
// It returns an error wrapping ErrInvalidHandle if the material, a texture
// it references, or the context's environment cubemap is not in Resources.
// Nothing is drawn in that case.
//
// Opaque draws are rasterized immediately. Transparent materials are queued
// and drawn by EndFrame after all opaque geometry.
func (r *Renderer) RenderEntity(world math3d.Mat4, mesh *Mesh, material Handle) error {
	if mesh == nil {
		return fmt.Errorf("%w: nil mesh", ErrMeshNotFound)
	}
	m, err := r.res.validateMaterial(material)
	if err != nil {
		return err
	}
	if env := r.ctx.Environment; !env.IsZero() && !r.res.cubemaps.Contains(env) {
		return fmt.Errorf("environment: %w: %v", ErrCubemapNotFound, env)
	}

	switch {
	case r.depthOnly():
		// Transparent surfaces cast no shadow.
		if !m.IsTransparent() {
			r.draw(world, mesh, material, modeDepth, r.opts)
		}
	case m.IsTransparent() && r.post.Transparency && r.fb.accum != nil:
		r.transparent = append(r.transparent, transparentDraw{
			world:    world,
			mesh:     mesh,
			material: material,
			opts:     r.opts,
		})
	default:
		r.draw(world, mesh, material, modeOpaque, r.opts)
	}
	return nil
}

// RenderMesh resolves the mesh handle and calls RenderEntity.
func (r *Renderer) RenderMesh(world math3d.Mat4, mesh, material Handle) error {
	m, err := r.res.Mesh(mesh)
	if err != nil {
		return err
	}
	return r.RenderEntity(world, m, material)
}

// Render draws e.
func (r *Renderer) Render(e Entity) error {
	return r.RenderMesh(e.World, e.Mesh, e.Material)
}

func (r *Renderer) draw(world math3d.Mat4, mesh *Mesh, material Handle, mode rasterMode, opts RenderOptions) {
	r.ctx.SetWorld(world)
	r.ctx.PushMaterial(material)
	defer r.ctx.PopMaterial()
	r.drawMesh(mesh, mode, opts)
}

// EndFrame runs the post passes and returns the packed 0xAARRGGBB pixels
// of the color attachment, or nil if the framebuffer has none. The slice
// is owned by the framebuffer and overwritten by the next frame.
func (r *Renderer) EndFrame() []uint32 {
	fb := r.fb
	if fb.gbuffer != nil {
		r.DeferredLighting()
	}
	queued := len(r.transparent) > 0
	for _, d := range r.transparent {
		opts := d.opts
		opts.AlphaCutoff = 0
		r.draw(d.world, d.mesh, d.material, modeTransparent, opts)
	}
	clear(r.transparent)
	r.transparent = r.transparent[:0]

	// Accumulation does not touch HDR, so edges queued by transparent
	// draws land under the resolved glass like the opaque ones.
	if fb.hdr != nil {
		r.drawWireframe()
	}
	if queued {
		r.ResolveTransparency()
	}
	if r.post.Bloom && fb.Has(AttachHDR|AttachBloom) {
		r.Bloom()
	}
	if fb.Has(AttachHDR | AttachColor) {
		r.ToneMap()
	}
	r.inFrame = false

	Logger().Debug("gg3d: frame done", "stats", r.stats)
	if fb.color == nil {
		return nil
	}
	return fb.color.data
}

// RenderFrame renders a whole frame: the shadow map of every directional
// light that has one (fitted to the entities' bounds), then BeginFrame,
// every entity, and EndFrame.
//
// Entities with invalid handles are dropped and logged; the frame is still
// produced and the returned error joins one error per dropped entity.
func (r *Renderer) RenderFrame(entities []Entity) ([]uint32, error) {
	r.renderShadows(entities)

	r.BeginFrame()
	var errs []error
	for i, e := range entities {
		if err := r.Render(e); err != nil {
			Logger().Warn("gg3d: entity dropped", "index", i, "err", err)
			errs = append(errs, fmt.Errorf("entity %d: %w", i, err))
		}
	}
	return r.EndFrame(), errors.Join(errs...)
}

func (r *Renderer) renderShadows(entities []Entity) {
	var maps []*ShadowMap
	bounds := math3d.EmptyAABB()
	for _, l := range r.ctx.DirectionalLights {
		if l.Shadow == nil {
			continue
		}
		if len(maps) == 0 {
			bounds = r.sceneBounds(entities)
		}
		l.Shadow.Update(l.Direction, bounds)
		maps = append(maps, l.Shadow)
	}
	if len(maps) == 0 {
		return
	}

	// Entity errors are reported by the main pass.
	if r.parallelShadows && len(maps) > 1 {
		var g errgroup.Group
		for _, sm := range maps {
			g.Go(func() error { return sm.Render(entities) })
		}
		if err := g.Wait(); err != nil {
			Logger().Debug("gg3d: shadow pass skipped entities", "err", err)
		}
		return
	}
	for _, sm := range maps {
		if err := sm.Render(entities); err != nil {
			Logger().Debug("gg3d: shadow pass skipped entities", "err", err)
		}
	}
}

// sceneBounds returns the world-space bounds of every entity whose mesh
// resolves.
func (r *Renderer) sceneBounds(entities []Entity) math3d.AABB {
	b := math3d.EmptyAABB()
	for _, e := range entities {
		m, err := r.res.Mesh(e.Mesh)
		if err != nil || m.TriangleCount() == 0 {
			continue
		}
		b = b.Union(m.Bounds.Transform(orIdentity(e.World)))
	}
	return b
}
