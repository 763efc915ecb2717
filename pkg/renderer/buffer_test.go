package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		linear   core.Vec3
		expected RGB
	}{
		{"black", core.NewVec3(0, 0, 0), RGB{0, 0, 0}},
		{"white", core.NewVec3(1, 1, 1), RGB{254, 254, 254}},
		{"gamma quarter", core.NewVec3(0.25, 0.25, 0.25), RGB{127, 127, 127}},
		{"per channel", core.NewVec3(1, 0.25, 0), RGB{254, 127, 0}},
		{"clamped above", core.NewVec3(4, 2, 1.5), RGB{254, 254, 254}},
		{"clamped below", core.NewVec3(-1, -0.5, 0), RGB{0, 0, 0}},
		{"nan", core.NewVec3(math.NaN(), 1, 0), RGB{0, 254, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize(tt.linear); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestImageBuffer_CopyInto(t *testing.T) {
	full := NewImageBuffer(5, 4)
	tile := NewImageBuffer(2, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			tile.Set(x, y, RGB{R: uint8(x + 1), G: uint8(y + 1), B: 9})
		}
	}

	tile.CopyInto(full, image.Pt(3, 1))

	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			got := full.Get(x, y)
			inside := x >= 3 && y >= 1
			if inside {
				expected := RGB{R: uint8(x - 3 + 1), G: uint8(y - 1 + 1), B: 9}
				if got != expected {
					t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, expected, got)
				}
			} else if got != (RGB{}) {
				t.Errorf("Pixel (%d,%d) outside tile was written: %v", x, y, got)
			}
		}
	}
}

func TestImageBuffer_ImplementsImage(t *testing.T) {
	buf := NewImageBuffer(3, 2)
	buf.Set(2, 1, RGB{10, 20, 30})

	var img image.Image = buf
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("Unexpected bounds %v", img.Bounds())
	}
	if got := img.At(2, 1); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("Expected opaque pixel, got %v", got)
	}
	if got := img.At(5, 5); got != (color.RGBA{}) {
		t.Errorf("Expected transparent out-of-bounds pixel, got %v", got)
	}

	rgba := buf.ToRGBA()
	if rgba.RGBAAt(2, 1) != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("ToRGBA mismatch: %v", rgba.RGBAAt(2, 1))
	}
	if rgba.RGBAAt(0, 0).A != 255 {
		t.Error("Expected ToRGBA to produce opaque pixels")
	}
}
