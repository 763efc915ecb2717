package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalTiles   int           // Tiles rendered successfully
	FailedTiles  int           // Tiles that returned an error
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of camera rays traced
	Duration     time.Duration // Wall time of the whole render
}

// Merge accumulates another tile's counters
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalTiles += other.TotalTiles
	s.FailedTiles += other.FailedTiles
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
}

// AverageSamples returns the mean number of samples per rendered pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}
