package gg3d

import (
	"errors"
	"image"
	stdcolor "image/color"
	"testing"

	"github.com/gogpu/gg3d/math3d"
)

func TestTextureSample(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.Set(0, 0, math3d.V4(1, 0, 0, 1))
	tex.Set(1, 0, math3d.V4(0, 0, 1, 1))

	tests := []struct {
		name   string
		filter Filter
		wrap   Wrap
		uv     math3d.Vec2
		want   math3d.Vec4
	}{
		{"nearest left", FilterNearest, WrapRepeat, math3d.V2(0.2, 0.5), math3d.V4(1, 0, 0, 1)},
		{"nearest right", FilterNearest, WrapRepeat, math3d.V2(0.8, 0.5), math3d.V4(0, 0, 1, 1)},
		{"bilinear midpoint", FilterBilinear, WrapClamp, math3d.V2(0.5, 0.5), math3d.V4(0.5, 0, 0.5, 1)},
		{"bilinear texel centre", FilterBilinear, WrapClamp, math3d.V2(0.25, 0.5), math3d.V4(1, 0, 0, 1)},
		{"clamp past edge", FilterBilinear, WrapClamp, math3d.V2(3, 0.5), math3d.V4(0, 0, 1, 1)},
		{"repeat wraps", FilterNearest, WrapRepeat, math3d.V2(1.2, 0.5), math3d.V4(1, 0, 0, 1)},
		{"repeat negative", FilterNearest, WrapRepeat, math3d.V2(-0.2, 0.5), math3d.V4(0, 0, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex.Filter, tex.Wrap = tt.filter, tt.wrap
			if got := tex.Sample(tt.uv); !got.Approx(tt.want, 1e-6) {
				t.Errorf("Sample(%v) = %v, want %v", tt.uv, got, tt.want)
			}
		})
	}
}

func TestTextureSampleNaN(t *testing.T) {
	tex := NewTexture(1, 1)
	tex.Set(0, 0, math3d.V4(1, 1, 1, 1))
	nan := math3d.V2(0, 0)
	nan.X = nan.X / nan.X
	if got := tex.Sample(nan); got != (math3d.Vec4{}) {
		t.Errorf("Sample(NaN) = %v, want zero", got)
	}
}

func TestTextureFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, stdcolor.NRGBA{R: 255, A: 255})
	img.Set(1, 1, stdcolor.NRGBA{G: 255, B: 51, A: 128})

	tex := TextureFromImage(img, false)
	if tex.Width() != 2 || tex.Height() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", tex.Width(), tex.Height())
	}
	if got := tex.At(0, 0); got != math3d.V4(1, 0, 0, 1) {
		t.Errorf("At(0,0) = %v, want red", got)
	}
	// Converting through premultiplied color may round by one step.
	if got, want := tex.At(1, 1), math3d.V4(0, 1, 0.2, 128.0/255); !got.Approx(want, 1.0/255) {
		t.Errorf("At(1,1) = %v, want %v", got, want)
	}

	srgb := TextureFromImage(img, true)
	if got := srgb.At(1, 1).Z; !(got > 0 && got < 0.2) {
		t.Errorf("sRGB-decoded blue = %v, want darker than 0.2", got)
	}
	if got := srgb.At(1, 1).W; got != 128.0/255 {
		t.Errorf("sRGB-decoded alpha = %v, want linear %v", got, float32(128.0/255))
	}
}

func TestTextureFromImageScaled(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	tex := TextureFromImageScaled(img, 3, 2, false)
	if tex.Width() != 3 || tex.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", tex.Width(), tex.Height())
	}
	if got := tex.At(1, 1); !got.Approx(math3d.V4(1, 1, 1, 1), 2.0/255) {
		t.Errorf("At(1,1) = %v, want white", got)
	}
}

func TestNewCubemapValidation(t *testing.T) {
	var faces [6]*Texture
	for i := range faces {
		faces[i] = NewTexture(2, 2)
	}
	if _, err := NewCubemap(faces); err != nil {
		t.Fatalf("NewCubemap() error = %v", err)
	}

	faces[3] = NewTexture(2, 3)
	if _, err := NewCubemap(faces); !errors.Is(err, ErrInvalidCubemap) {
		t.Errorf("NewCubemap(non-square) error = %v, want ErrInvalidCubemap", err)
	}
	faces[3] = nil
	if _, err := NewCubemap(faces); !errors.Is(err, ErrInvalidCubemap) {
		t.Errorf("NewCubemap(nil face) error = %v, want ErrInvalidCubemap", err)
	}
}

func TestGradientCubemap(t *testing.T) {
	zenith := math3d.V3(0, 0, 1)
	horizon := math3d.V3(1, 0, 0)
	ground := math3d.V3(0, 1, 0)
	cm := NewGradientCubemap(8, zenith, horizon, ground)

	up := cm.Sample(math3d.V3(0, 5, 0)).XYZ()
	if !(up.Z > up.X) {
		t.Errorf("Sample(up) = %v, want mostly zenith", up)
	}
	if down := cm.Sample(math3d.V3(0, -1, 0)).XYZ(); !down.Approx(ground, 1e-5) {
		t.Errorf("Sample(down) = %v, want ground %v", down, ground)
	}
	side := cm.Sample(math3d.V3(1, 0, 0)).XYZ()
	if !(side.X > side.Z) {
		t.Errorf("Sample(+X) = %v, want mostly horizon", side)
	}

	avg := cm.Average()
	if !(avg.X > 0 && avg.Y > 0 && avg.Z > 0) {
		t.Errorf("Average() = %v, want a mix of all three", avg)
	}
	if got := cm.Sample(math3d.Vec3{}).XYZ(); !got.Approx(avg, 1e-6) {
		t.Errorf("Sample(zero) = %v, want Average %v", got, avg)
	}
}

func TestCubemapFaceSelection(t *testing.T) {
	var faces [6]*Texture
	for i := range faces {
		faces[i] = NewTexture(1, 1)
		faces[i].Set(0, 0, math3d.V4(float32(i), 0, 0, 1))
	}
	cm, err := NewCubemap(faces)
	if err != nil {
		t.Fatal(err)
	}
	dirs := map[CubeFace]math3d.Vec3{
		FacePosX: math3d.V3(1, 0.1, 0.2),
		FaceNegX: math3d.V3(-1, 0.1, 0.2),
		FacePosY: math3d.V3(0.1, 1, 0.2),
		FaceNegY: math3d.V3(0.1, -1, 0.2),
		FacePosZ: math3d.V3(0.1, 0.2, 1),
		FaceNegZ: math3d.V3(0.1, 0.2, -1),
	}
	for f, d := range dirs {
		if got := cm.Sample(d).X; got != float32(f) {
			t.Errorf("Sample(%v) hit face %v, want %v", d, got, f)
		}
	}
}

func TestFaceDirectionRoundTrip(t *testing.T) {
	for f := range CubeFace(6) {
		d := faceDirection(f, 0.3, -0.6)
		var faces [6]*Texture
		for i := range faces {
			faces[i] = NewTexture(1, 1)
		}
		faces[f].Set(0, 0, math3d.V4(1, 1, 1, 1))
		cm, err := NewCubemap(faces)
		if err != nil {
			t.Fatal(err)
		}
		if got := cm.Sample(d).X; got != 1 {
			t.Errorf("faceDirection(%v) = %v samples another face", f, d)
		}
	}
}
