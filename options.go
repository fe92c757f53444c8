package gg3d

import "github.com/gogpu/gg3d/math3d"

// FaceCulling selects which triangles the rasterizer rejects by winding.
type FaceCulling uint8

const (
	// CullNone rasterizes both sides of every triangle.
	CullNone FaceCulling = iota
	// CullBackFaces rejects triangles facing away from the camera.
	CullBackFaces
	// CullFrontFaces rejects triangles facing the camera. Shadow maps use
	// it to push stored depth onto back faces and reduce self-shadowing.
	CullFrontFaces
)

// String returns the culling mode name.
func (c FaceCulling) String() string {
	switch c {
	case CullNone:
		return "none"
	case CullBackFaces:
		return "back"
	case CullFrontFaces:
		return "front"
	default:
		return "unknown"
	}
}

// Winding selects which screen-space vertex order counts as front-facing.
type Winding uint8

const (
	// WindingCCW treats counter-clockwise triangles (as seen by the camera)
	// as front faces.
	WindingCCW Winding = iota
	// WindingCW treats clockwise triangles as front faces.
	WindingCW
)

// Pass is a bit set of optional render passes.
type Pass uint8

const (
	// PassLighting evaluates lights in the fragment shader. Without it,
	// geometry samples are marked Unlit and shade to their albedo.
	PassLighting Pass = 1 << iota

	// PassDeferredLighting stores geometry samples in the G-buffer and shades
	// them once per pixel in the deferred lighting pass. Without it,
	// fragments are shaded immediately (forward).
	PassDeferredLighting

	// PassWireframe overlays triangle edges after lighting.
	PassWireframe
)

// RenderOptions configures a draw call. It is a value type: the renderer
// keeps a snapshot per call.
type RenderOptions struct {
	Cull    FaceCulling
	Winding Winding
	Passes  Pass

	// Wireframe draws only triangle edges and skips filling.
	Wireframe bool

	// WireframeColor is the linear color of wireframe edges.
	WireframeColor math3d.Vec4

	// AlphaCutoff discards fragments whose alpha is below it. Zero disables
	// alpha testing.
	AlphaCutoff float32
}

// DefaultRenderOptions returns back-face culling, counter-clockwise front
// faces, lighting and deferred lighting.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Cull:           CullBackFaces,
		Winding:        WindingCCW,
		Passes:         PassLighting | PassDeferredLighting,
		WireframeColor: math3d.V4(1, 1, 1, 1),
		AlphaCutoff:    0.5,
	}
}

// Has reports whether every pass in p is enabled.
func (o RenderOptions) Has(p Pass) bool {
	return o.Passes&p == p
}

// PostProcess configures the post passes run by EndFrame.
type PostProcess struct {
	// Transparency enables the weighted-blended transparency resolve.
	Transparency bool

	// Bloom enables the bloom pass.
	Bloom bool

	// BloomThreshold is the bright-pass cutoff; a pixel contributes when
	// any RGB channel is at least this value.
	BloomThreshold float32

	// BloomRounds is the number of horizontal+vertical blur rounds.
	BloomRounds int

	// BloomWeights is the one-sided blur kernel. Nil uses the fixed 5-tap
	// kernel filter.BloomWeights.
	BloomWeights []float32

	// ToneMapper maps linear HDR to [0,1]. Nil uses Reinhard.
	ToneMapper ToneMapper

	// Exposure scales HDR color before tone mapping. Zero means 1.
	Exposure float32

	// SRGB applies the sRGB transfer function to the tone-mapped color.
	SRGB bool
}

// DefaultPostProcess returns transparency, bloom (threshold 0.95, 6 rounds),
// Reinhard tone mapping at exposure 1 and sRGB output.
func DefaultPostProcess() PostProcess {
	return PostProcess{
		Transparency:   true,
		Bloom:          true,
		BloomThreshold: 0.95,
		BloomRounds:    6,
		ToneMapper:     Reinhard,
		Exposure:       1,
		SRGB:           true,
	}
}

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	r := gg3d.NewRenderer(fb, ctx, res, shaders,
//	    gg3d.WithWorkers(0),
//	    gg3d.WithClearColor(math3d.V4(0.1, 0.1, 0.15, 1)),
//	)
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	workers         int
	post            PostProcess
	render          RenderOptions
	clearColor      math3d.Vec4
	parallelShadows bool
}

func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		workers:    1,
		post:       DefaultPostProcess(),
		render:     DefaultRenderOptions(),
		clearColor: math3d.V4(0, 0, 0, 1),
	}
}

// WithWorkers splits full-screen passes across n worker goroutines.
// n <= 0 uses GOMAXPROCS; n == 1 (the default) runs everything on the
// caller's goroutine.
func WithWorkers(n int) RendererOption {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithPostProcess sets the post pass configuration.
func WithPostProcess(p PostProcess) RendererOption {
	return func(o *rendererOptions) {
		o.post = p
	}
}

// WithRenderOptions sets the initial draw-call options.
func WithRenderOptions(r RenderOptions) RendererOption {
	return func(o *rendererOptions) {
		o.render = r
	}
}

// WithClearColor sets the HDR clear color.
func WithClearColor(c math3d.Vec4) RendererOption {
	return func(o *rendererOptions) {
		o.clearColor = c
	}
}

// WithParallelShadows renders the shadow maps of different lights
// concurrently in RenderFrame.
func WithParallelShadows(enabled bool) RendererOption {
	return func(o *rendererOptions) {
		o.parallelShadows = enabled
	}
}
