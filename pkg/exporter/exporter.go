// Package exporter writes rendered image buffers to disk.
package exporter

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

// Format is an output pixel format
type Format string

const (
	FormatPPM  Format = "ppm"  // Plain text portable pixmap (P3)
	FormatPNG  Format = "png"  // Compressed raster
	FormatBMP  Format = "bmp"  // Uncompressed Windows bitmap
	FormatTIFF Format = "tiff" // Deflate-compressed TIFF
)

// ErrUnsupportedFormat is returned for unknown format names and extensions
var ErrUnsupportedFormat = errors.New("exporter: unsupported format")

var extensions = map[string]Format{
	".ppm":  FormatPPM,
	".png":  FormatPNG,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
}

// ParseFormat converts a format name such as "png" into a Format
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(name, ".")))
	if f == "tif" {
		return FormatTIFF, nil
	}
	switch f {
	case FormatPPM, FormatPNG, FormatBMP, FormatTIFF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromPath picks the format matching the file extension of path
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}

// Extension returns the canonical file extension for the format, with the dot
func (f Format) Extension() string {
	if f == FormatTIFF {
		return ".tiff"
	}
	return "." + string(f)
}

// Encode writes buf to w in the given format
func Encode(w io.Writer, buf *renderer.ImageBuffer, format Format) error {
	switch format {
	case FormatPPM:
		return encodePPM(w, buf)
	case FormatPNG:
		if err := png.Encode(w, buf.ToRGBA()); err != nil {
			return fmt.Errorf("exporter: encode PNG: %w", err)
		}
	case FormatBMP:
		if err := bmp.Encode(w, buf.ToRGBA()); err != nil {
			return fmt.Errorf("exporter: encode BMP: %w", err)
		}
	case FormatTIFF:
		opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
		if err := tiff.Encode(w, buf.ToRGBA(), opts); err != nil {
			return fmt.Errorf("exporter: encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// encodePPM writes a P3 header followed by one "r g b" line per pixel, top row first
func encodePPM(w io.Writer, buf *renderer.ImageBuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", buf.Width, buf.Height); err != nil {
		return fmt.Errorf("exporter: write PPM header: %w", err)
	}
	// bufio.Writer keeps the first write error and returns it from Flush
	for _, p := range buf.Pix {
		fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("exporter: write PPM: %w", err)
	}
	return nil
}

// Save writes buf to path. The data goes to a temporary file in the same
// directory that is renamed over path only after a successful write, so a
// failed export never leaves a truncated image behind.
func Save(path string, buf *renderer.ImageBuffer, format Format) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("exporter: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("exporter: create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, buf, format); err != nil {
		return err
	}
	// CreateTemp uses 0600; match the permissions os.Create would give
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("exporter: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("exporter: close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("exporter: rename: %w", err)
	}
	return nil
}
