// Package filter provides the full-screen HDR filters used by the bloom
// pass: a bright-pass threshold and a separable Gaussian blur.
//
// Every filter works on a row range [y0, y1) of row-major []math3d.Vec4
// buffers so callers can split the image into bands and run them on a
// worker pool. Bands of one call write disjoint rows of the destination.
package filter
