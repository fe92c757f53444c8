package gg3d

import (
	"errors"
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"

	"github.com/gogpu/gg3d/internal/color"
	"github.com/gogpu/gg3d/math3d"
)

// Filter selects how a texture is sampled between texel centres.
type Filter uint8

const (
	// FilterBilinear blends the four nearest texels.
	FilterBilinear Filter = iota
	// FilterNearest returns the nearest texel.
	FilterNearest
)

// Wrap selects how texture coordinates outside [0,1] are handled.
type Wrap uint8

const (
	// WrapRepeat tiles the texture.
	WrapRepeat Wrap = iota
	// WrapClamp extends the edge texels.
	WrapClamp
)

// Texture is a 2D array of linear RGBA texels. UV (0,0) is the top-left
// corner of the image.
type Texture struct {
	Filter Filter
	Wrap   Wrap

	width  int
	height int
	texels []math3d.Vec4
}

// NewTexture returns a transparent black texture.
func NewTexture(width, height int) *Texture {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("gg3d: invalid texture size %dx%d", width, height))
	}
	return &Texture{width: width, height: height, texels: make([]math3d.Vec4, width*height)}
}

// TextureFromImage converts img to linear texels. When srgb is true the
// color channels are decoded from sRGB; alpha is always linear.
func TextureFromImage(img image.Image, srgb bool) *Texture {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	return textureFromNRGBA(nrgba, srgb)
}

// TextureFromImageScaled resamples img to width×height with a Catmull-Rom
// filter before converting it.
func TextureFromImageScaled(img image.Image, width, height int, srgb bool) *Texture {
	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(nrgba, nrgba.Bounds(), img, img.Bounds(), draw.Src, nil)
	return textureFromNRGBA(nrgba, srgb)
}

func textureFromNRGBA(img *image.NRGBA, srgb bool) *Texture {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	t := NewTexture(w, h)
	for y := range h {
		row := img.Pix[y*img.Stride:]
		for x := range w {
			p := row[x*4 : x*4+4]
			t.texels[y*w+x] = decodeTexel(p[0], p[1], p[2], p[3], srgb)
		}
	}
	return t
}

func decodeTexel(r, g, b, a uint8, srgb bool) math3d.Vec4 {
	if srgb {
		return math3d.V4(color.SRGBToLinear(r), color.SRGBToLinear(g), color.SRGBToLinear(b), float32(a)/255)
	}
	return math3d.V4(float32(r)/255, float32(g)/255, float32(b)/255, float32(a)/255)
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.height }

// Set stores a texel. Out-of-range writes are dropped.
func (t *Texture) Set(x, y int, c math3d.Vec4) {
	if x >= 0 && x < t.width && y >= 0 && y < t.height {
		t.texels[y*t.width+x] = c
	}
}

// At returns the texel at (x, y) after applying the wrap mode.
func (t *Texture) At(x, y int) math3d.Vec4 {
	x = wrapCoord(x, t.width, t.Wrap)
	y = wrapCoord(y, t.height, t.Wrap)
	return t.texels[y*t.width+x]
}

func wrapCoord(i, n int, w Wrap) int {
	if w == WrapClamp {
		return min(max(i, 0), n-1)
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Sample returns the filtered texel at uv.
func (t *Texture) Sample(uv math3d.Vec2) math3d.Vec4 {
	x := uv.X*float32(t.width) - 0.5
	y := uv.Y*float32(t.height) - 0.5
	if !isFinite(x) || !isFinite(y) {
		return math3d.Vec4{}
	}
	if t.Filter == FilterNearest {
		return t.At(int(math32.Floor(x+0.5)), int(math32.Floor(y+0.5)))
	}

	fx, fy := math32.Floor(x), math32.Floor(y)
	tx, ty := x-fx, y-fy
	x0, y0 := int(fx), int(fy)
	top := t.At(x0, y0).Lerp(t.At(x0+1, y0), tx)
	bottom := t.At(x0, y0+1).Lerp(t.At(x0+1, y0+1), tx)
	return top.Lerp(bottom, ty)
}

func isFinite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}

// CubeFace indexes the faces of a Cubemap.
type CubeFace int

// Cube faces in the conventional +X, -X, +Y, -Y, +Z, -Z order.
const (
	FacePosX CubeFace = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// ErrInvalidCubemap is returned by NewCubemap for missing or mismatched faces.
var ErrInvalidCubemap = errors.New("gg3d: invalid cubemap")

// Cubemap is six square textures sampled by direction. It is used as the
// environment for image-based lighting.
type Cubemap struct {
	faces   [6]*Texture
	average math3d.Vec3
}

// NewCubemap builds a cubemap from six square faces of equal size.
func NewCubemap(faces [6]*Texture) (*Cubemap, error) {
	if faces[0] == nil {
		return nil, fmt.Errorf("%w: face 0 is nil", ErrInvalidCubemap)
	}
	size := faces[0].width
	var sum math3d.Vec4
	for i, f := range faces {
		if f == nil {
			return nil, fmt.Errorf("%w: face %d is nil", ErrInvalidCubemap, i)
		}
		if f.width != size || f.height != size {
			return nil, fmt.Errorf("%w: face %d is %dx%d, want %dx%d", ErrInvalidCubemap, i, f.width, f.height, size, size)
		}
		f.Wrap = WrapClamp
		for _, c := range f.texels {
			sum = sum.Add(c)
		}
	}
	n := float32(6 * size * size)
	return &Cubemap{faces: faces, average: sum.XYZ().Div(n)}, nil
}

// NewGradientCubemap builds a size×size cubemap of a vertical sky gradient:
// zenith straight up, horizon at the equator and ground below.
func NewGradientCubemap(size int, zenith, horizon, ground math3d.Vec3) *Cubemap {
	var faces [6]*Texture
	for f := range faces {
		t := NewTexture(size, size)
		for y := range size {
			for x := range size {
				u := (float32(x)+0.5)/float32(size)*2 - 1
				v := (float32(y)+0.5)/float32(size)*2 - 1
				d := faceDirection(CubeFace(f), u, v).Normal()
				var c math3d.Vec3
				if d.Y >= 0 {
					c = horizon.Lerp(zenith, d.Y)
				} else {
					c = horizon.Lerp(ground, math32.Min(-d.Y*4, 1))
				}
				t.texels[y*size+x] = c.Vec4(1)
			}
		}
		faces[f] = t
	}
	cm, err := NewCubemap(faces)
	if err != nil {
		panic(err)
	}
	return cm
}

// faceDirection is the inverse of the face selection in Sample: it maps face
// coordinates u, v in [-1,1] (v down) to a direction.
func faceDirection(f CubeFace, u, v float32) math3d.Vec3 {
	switch f {
	case FacePosX:
		return math3d.V3(1, -v, -u)
	case FaceNegX:
		return math3d.V3(-1, -v, u)
	case FacePosY:
		return math3d.V3(u, 1, v)
	case FaceNegY:
		return math3d.V3(u, -1, -v)
	case FacePosZ:
		return math3d.V3(u, -v, 1)
	default:
		return math3d.V3(-u, -v, -1)
	}
}

// Face returns face f.
func (c *Cubemap) Face(f CubeFace) *Texture {
	return c.faces[f]
}

// Average returns the mean color over all faces. Shaders use it as the
// irradiance of fully rough surfaces.
func (c *Cubemap) Average() math3d.Vec3 {
	return c.average
}

// Sample returns the environment color in direction dir, which need not be
// normalized. A zero direction returns the average color.
func (c *Cubemap) Sample(dir math3d.Vec3) math3d.Vec4 {
	ax, ay, az := math32.Abs(dir.X), math32.Abs(dir.Y), math32.Abs(dir.Z)
	var (
		f      CubeFace
		sc, tc float32
		ma     float32
	)
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if dir.X > 0 {
			f, sc, tc = FacePosX, -dir.Z, -dir.Y
		} else {
			f, sc, tc = FaceNegX, dir.Z, -dir.Y
		}
	case ay >= az:
		ma = ay
		if dir.Y > 0 {
			f, sc, tc = FacePosY, dir.X, dir.Z
		} else {
			f, sc, tc = FaceNegY, dir.X, -dir.Z
		}
	default:
		ma = az
		if dir.Z > 0 {
			f, sc, tc = FacePosZ, dir.X, -dir.Y
		} else {
			f, sc, tc = FaceNegZ, -dir.X, -dir.Y
		}
	}
	if ma == 0 || !isFinite(ma) {
		return c.average.Vec4(1)
	}
	uv := math3d.V2((sc/ma+1)/2, (tc/ma+1)/2)
	return c.faces[f].Sample(uv)
}
