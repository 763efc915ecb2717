package renderer

import (
	"image"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, row-major over the grid
	GridX  int             // Column in the dispatch grid
	GridY  int             // Row in the dispatch grid
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1), max exclusive
}

// NewTileGrid splits a width x height image into a dispatchX x dispatchY grid.
//
// Each column spans ceil(width/dispatchX) pixels. The last column that starts
// inside the image is clamped to the image edge, and columns that would start
// past it are skipped, so every pixel belongs to exactly one tile. Rows work
// the same way.
func NewTileGrid(width, height, dispatchX, dispatchY int) []Tile {
	if width <= 0 || height <= 0 || dispatchX <= 0 || dispatchY <= 0 {
		return nil
	}

	partialWidth := (width + dispatchX - 1) / dispatchX // Ceiling division
	partialHeight := (height + dispatchY - 1) / dispatchY

	var tiles []Tile
	for gy := 0; gy < dispatchY; gy++ {
		y0 := partialHeight * gy
		if y0 > height-1 {
			break
		}
		y1 := min(partialHeight*(gy+1), height) // Don't exceed image bounds

		for gx := 0; gx < dispatchX; gx++ {
			x0 := partialWidth * gx
			if x0 > width-1 {
				break
			}
			x1 := min(partialWidth*(gx+1), width)

			tiles = append(tiles, Tile{
				ID:     len(tiles),
				GridX:  gx,
				GridY:  gy,
				Bounds: image.Rect(x0, y0, x1, y1),
			})
		}
	}

	return tiles
}
