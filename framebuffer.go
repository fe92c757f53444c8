package gg3d

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/chewxy/math32"

	"github.com/gogpu/gg3d/internal/color"
	"github.com/gogpu/gg3d/math3d"
)

// Attachment is a bit set of framebuffer attachments.
type Attachment uint16

// Framebuffer attachments.
const (
	// AttachDepth is the non-linear [0,1] depth buffer, cleared to DepthClear.
	AttachDepth Attachment = 1 << iota

	// AttachStencil is the per-pixel coverage mask, set for every pixel an
	// opaque fragment was written to this frame.
	AttachStencil

	// AttachGBuffer stores one GeometrySample per pixel for deferred lighting.
	AttachGBuffer

	// AttachHDR is the linear HDR color buffer shared by forward shading,
	// deferred lighting, transparency resolve and bloom.
	AttachHDR

	// AttachTransparency holds the weighted-blended accumulation and
	// revealage buffers.
	AttachTransparency

	// AttachBloom holds the two ping-pong buffers of the bloom blur.
	AttachBloom

	// AttachColor is the final packed 0xAARRGGBB display buffer.
	AttachColor
)

// Common attachment sets.
const (
	AttachNone Attachment = 0

	// AttachDepthOnly is what shadow maps use.
	AttachDepthOnly = AttachDepth

	// AttachForward supports forward shading without deferred lighting.
	AttachForward = AttachDepth | AttachStencil | AttachHDR | AttachColor

	// AttachAll enables every pass.
	AttachAll = AttachDepth | AttachStencil | AttachGBuffer | AttachHDR |
		AttachTransparency | AttachBloom | AttachColor
)

var attachmentNames = [...]string{"depth", "stencil", "gbuffer", "hdr", "transparency", "bloom", "color"}

// String returns the attachment names joined by "|".
func (a Attachment) String() string {
	if a == AttachNone {
		return "none"
	}
	var names []string
	for i, name := range attachmentNames {
		if a&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// DepthClear is the depth value of a pixel no fragment has touched.
const DepthClear float32 = math32.MaxFloat32

// Framebuffer owns the per-pixel attachments a frame renders into.
//
// The set of attachments is fixed at construction. Asking for an attachment
// that was never allocated is a programming error and panics.
//
// A Framebuffer may be shared between a Renderer and code that reads its
// attachments, such as a shadow-map lookup. It is not safe for concurrent
// use; passes take turns.
type Framebuffer struct {
	width       int
	height      int
	attachments Attachment

	depth     *Buffer[float32]
	stencil   *Buffer[uint8]
	gbuffer   *Buffer[GeometrySample]
	hdr       *Buffer[math3d.Vec4]
	accum     *Buffer[math3d.Vec4]
	revealage *Buffer[float32]
	bloom     [2]*Buffer[math3d.Vec4]
	color     *Buffer[uint32]
}

// NewFramebuffer allocates a framebuffer with the given attachments.
func NewFramebuffer(width, height int, attachments Attachment) *Framebuffer {
	fb := &Framebuffer{attachments: attachments}
	fb.allocate(width, height)
	return fb
}

func (fb *Framebuffer) allocate(width, height int) {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("gg3d: invalid framebuffer size %dx%d", width, height))
	}
	fb.width, fb.height = width, height
	a := fb.attachments

	fb.depth, fb.stencil, fb.gbuffer, fb.hdr = nil, nil, nil, nil
	fb.accum, fb.revealage, fb.color = nil, nil, nil
	fb.bloom = [2]*Buffer[math3d.Vec4]{}

	if a&AttachDepth != 0 {
		fb.depth = NewBuffer[float32](width, height)
		fb.depth.Fill(DepthClear)
	}
	if a&AttachStencil != 0 {
		fb.stencil = NewBuffer[uint8](width, height)
	}
	if a&AttachGBuffer != 0 {
		fb.gbuffer = NewBuffer[GeometrySample](width, height)
	}
	if a&AttachHDR != 0 {
		fb.hdr = NewBuffer[math3d.Vec4](width, height)
	}
	if a&AttachTransparency != 0 {
		fb.accum = NewBuffer[math3d.Vec4](width, height)
		fb.revealage = NewBuffer[float32](width, height)
		fb.revealage.Fill(1)
	}
	if a&AttachBloom != 0 {
		fb.bloom[0] = NewBuffer[math3d.Vec4](width, height)
		fb.bloom[1] = NewBuffer[math3d.Vec4](width, height)
	}
	if a&AttachColor != 0 {
		fb.color = NewBuffer[uint32](width, height)
	}

	Logger().Debug("gg3d: framebuffer allocated",
		"width", width, "height", height, "attachments", a.String())
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// Attachments returns the allocated attachment set.
func (fb *Framebuffer) Attachments() Attachment {
	return fb.attachments
}

// Has reports whether every attachment in a is allocated.
func (fb *Framebuffer) Has(a Attachment) bool {
	return fb.attachments&a == a
}

func (fb *Framebuffer) mustHave(a Attachment) {
	if !fb.Has(a) {
		panic(fmt.Sprintf("gg3d: framebuffer has no %v attachment", a&^fb.attachments))
	}
}

// Resize recreates every attachment at the new size. Contents are lost.
func (fb *Framebuffer) Resize(width, height int) {
	if width == fb.width && height == fb.height {
		return
	}
	Logger().Info("gg3d: framebuffer resized",
		"from", fmt.Sprintf("%dx%d", fb.width, fb.height),
		"to", fmt.Sprintf("%dx%d", width, height))
	fb.allocate(width, height)
}

// Clear resets the attachments for a new frame: depth to DepthClear,
// stencil to zero, stenciled G-buffer cells to the zero sample, HDR to
// clearColor, transparency accumulation to zero and revealage to one.
// The color attachment keeps the previous frame until tone mapping.
func (fb *Framebuffer) Clear(clearColor math3d.Vec4) {
	if fb.depth != nil {
		fb.depth.Fill(DepthClear)
	}
	if fb.stencil != nil {
		clear(fb.stencil.data)
	}
	if fb.gbuffer != nil {
		data := fb.gbuffer.data
		for i := range data {
			if data[i].Stencil {
				data[i] = GeometrySample{}
			}
		}
	}
	if fb.hdr != nil {
		fb.hdr.Fill(clearColor)
	}
	if fb.accum != nil {
		clear(fb.accum.data)
		fb.revealage.Fill(1)
	}
}

// Depth returns the depth attachment.
func (fb *Framebuffer) Depth() *Buffer[float32] {
	fb.mustHave(AttachDepth)
	return fb.depth
}

// Stencil returns the stencil (coverage) attachment.
func (fb *Framebuffer) Stencil() *Buffer[uint8] {
	fb.mustHave(AttachStencil)
	return fb.stencil
}

// GBuffer returns the G-buffer attachment.
func (fb *Framebuffer) GBuffer() *Buffer[GeometrySample] {
	fb.mustHave(AttachGBuffer)
	return fb.gbuffer
}

// HDR returns the linear HDR color attachment.
func (fb *Framebuffer) HDR() *Buffer[math3d.Vec4] {
	fb.mustHave(AttachHDR)
	return fb.hdr
}

// Accum returns the weighted-blended transparency accumulation buffer.
func (fb *Framebuffer) Accum() *Buffer[math3d.Vec4] {
	fb.mustHave(AttachTransparency)
	return fb.accum
}

// Revealage returns the weighted-blended transparency revealage buffer.
func (fb *Framebuffer) Revealage() *Buffer[float32] {
	fb.mustHave(AttachTransparency)
	return fb.revealage
}

// Bloom returns the bloom ping-pong buffer i (0 or 1).
func (fb *Framebuffer) Bloom(i int) *Buffer[math3d.Vec4] {
	fb.mustHave(AttachBloom)
	return fb.bloom[i]
}

// ColorBuffer returns the packed display color attachment.
func (fb *Framebuffer) ColorBuffer() *Buffer[uint32] {
	fb.mustHave(AttachColor)
	return fb.color
}

// Color returns the packed 0xAARRGGBB pixels of the color attachment,
// row-major, top row first.
func (fb *Framebuffer) Color() []uint32 {
	return fb.ColorBuffer().data
}

// ColorImage converts the color attachment to an image.RGBA.
func (fb *Framebuffer) ColorImage() *image.RGBA {
	src := fb.Color()
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for i, p := range src {
		r, g, b, a := color.Unpack(p)
		img.Pix[i*4+0] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = a
	}
	return img
}

// SavePNG writes the color attachment to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, fb.ColorImage()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
