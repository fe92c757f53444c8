// Package gg3d is a software 3D rendering pipeline for Go.
//
// # Overview
//
// gg3d takes world-space triangles through vertex shading, near-plane
// clipping, viewport mapping, rasterization and fragment shading, then
// composites the result with deferred lighting, shadow mapping,
// weighted-blended order-independent transparency, bloom and tone mapping
// into a packed 32-bit pixel buffer. Everything runs on the CPU.
//
// # Quick Start
//
//	fb := gg3d.NewFramebuffer(640, 480, gg3d.AttachAll)
//	res := gg3d.NewResources()
//	ctx := gg3d.NewShaderContext()
//	ctx.SetViewport(640, 480)
//	ctx.SetCamera(
//	    math3d.LookAt(math3d.V3(0, 2, 6), math3d.V3(0, 0, 0), math3d.V3(0, 1, 0)),
//	    math3d.Perspective(math32.Pi/3, 640.0/480, 0.1, 100),
//	)
//
//	r := gg3d.NewRenderer(fb, ctx, res, shader.Default())
//	defer r.Close()
//
//	cube := res.AddMesh(gg3d.NewCube(1))
//	red := res.AddMaterial(gg3d.Material{Albedo: math3d.V3(1, 0, 0), Alpha: 1, Roughness: 0.5})
//
//	r.BeginFrame()
//	if err := r.RenderMesh(math3d.Identity4(), cube, red); err != nil {
//	    log.Fatal(err)
//	}
//	pixels := r.EndFrame()
//
// # Frame Structure
//
// A frame is a fixed, sequential pass order:
//
//  1. shadow passes (one depth-only sub-renderer per shadow-casting light)
//  2. geometry pass (opaque entities, G-buffer or forward HDR writes;
//     transparent entities are queued)
//  3. deferred lighting over every stenciled G-buffer cell
//  4. queued transparent entities (weighted-blended accumulation)
//  5. wireframe overlay
//  6. transparency resolve
//  7. bloom
//  8. tone mapping into the color attachment
//
// Full-screen passes may split rows across a worker pool (see WithWorkers).
// Shader invocation for a given pixel is always in submission order.
//
// # Conventions
//
// See package math3d for the matrix and clip-space conventions. The color
// attachment is row-major, top row first, each pixel packed as 0xAARRGGBB.
package gg3d
