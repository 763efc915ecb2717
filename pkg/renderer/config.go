package renderer

import (
	"errors"
	"fmt"
	"runtime"
)

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of jittered rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	DispatchX       int   // Tile grid columns
	DispatchY       int   // Tile grid rows
	NumWorkers      int   // Concurrent tile tasks (0 = use CPU count)
	Seed            int64 // Base seed; tile i draws from Seed+i
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          450, // 16:9
		SamplesPerPixel: 100,
		MaxDepth:        50,
		DispatchX:       16,
		DispatchY:       16,
		NumWorkers:      0, // Auto-detect CPU count
		Seed:            42,
	}
}

// Validate reports every invalid field of the configuration
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.SamplesPerPixel <= 0 {
		errs = append(errs, fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("max depth must be positive, got %d", c.MaxDepth))
	}
	if c.DispatchX <= 0 || c.DispatchY <= 0 {
		errs = append(errs, fmt.Errorf("tile grid must be positive, got %dx%d", c.DispatchX, c.DispatchY))
	}
	if c.NumWorkers < 0 {
		errs = append(errs, fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid render config: %w", errors.Join(errs...))
	}
	return nil
}

func (c Config) workers() int {
	if c.NumWorkers <= 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}
