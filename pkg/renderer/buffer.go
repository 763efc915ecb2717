package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// RGB is a quantized, gamma-corrected 8-bit color
type RGB struct {
	R, G, B uint8
}

// Quantize applies gamma-2 correction to a linear color and truncates each
// channel of value*254.999 to an integer in [0, 255].
func Quantize(linear core.Vec3) RGB {
	c := linear.Clamp(0, 1).Sqrt()
	return RGB{
		R: quantizeChannel(c.X),
		G: quantizeChannel(c.Y),
		B: quantizeChannel(c.Z),
	}
}

func quantizeChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(v * 254.999)
}

// ImageBuffer is a row-major grid of quantized colors. It implements
// image.Image so it can be handed to any standard encoder.
type ImageBuffer struct {
	Width  int
	Height int
	Pix    []RGB // Pix[x + y*Width], row 0 at the top
}

// NewImageBuffer creates a black buffer
func NewImageBuffer(width, height int) *ImageBuffer {
	return &ImageBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}
}

// Set stores the color at (x, y)
func (b *ImageBuffer) Set(x, y int, c RGB) {
	b.Pix[x+y*b.Width] = c
}

// Get returns the color at (x, y)
func (b *ImageBuffer) Get(x, y int) RGB {
	return b.Pix[x+y*b.Width]
}

// CopyInto writes this buffer into dst with its top-left corner at origin
func (b *ImageBuffer) CopyInto(dst *ImageBuffer, origin image.Point) {
	for y := 0; y < b.Height; y++ {
		row := b.Pix[y*b.Width : (y+1)*b.Width]
		start := origin.X + (origin.Y+y)*dst.Width
		copy(dst.Pix[start:start+b.Width], row)
	}
}

// ColorModel implements image.Image
func (b *ImageBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (b *ImageBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements image.Image
func (b *ImageBuffer) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return color.RGBA{}
	}
	c := b.Get(x, y)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ToRGBA converts the buffer into an opaque *image.RGBA
func (b *ImageBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := b.Get(x, y)
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}
