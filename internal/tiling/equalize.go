package tiling

import (
	"github.com/ironsheep/image-tiler/internal/logging"
	"github.com/ironsheep/image-tiler/internal/surface"
)

// Equalize makes the border of every square tile symmetric under the tile's
// own mirror and rotation symmetries.
//
// For each ring offset i in [0, ⌈size/2⌉), the eight border pixels at offset i
// from the four corners (two per edge) are replaced by their average:
//
//	+-----------+
//	| 0 1 2 1 0 |
//	| 1 x x x 1 |
//	| 2 x x x 2 |
//	| 1 x x x 1 |
//	| 0 1 2 1 0 |
//	+-----------+
//
// Rectangular tiles are left untouched: a warning is logged and false returned.
func Equalize(s surface.Surface, g Grid, log logging.Logger) bool {
	if !g.Tile.Square() {
		logging.Logf(log, logging.Warn, "tile size %v is not square, boundary equalization skipped", g.Tile)
		return false
	}

	rings := (g.Tile.Width + 1) / 2
	var ring [8]surface.Color
	for ty := 0; ty < g.Down; ty++ {
		for tx := 0; tx < g.Across; tx++ {
			x0, y0, x1, y1 := g.corners(tx, ty)
			for i := 0; i < rings; i++ {
				// On the corner ring and the odd-size middle ring some positions
				// coincide; duplicates leave the mean unchanged.
				pos := [8][2]int{
					{x0 + i, y0}, {x1 - i, y0},
					{x0, y0 + i}, {x1, y0 + i},
					{x0, y1 - i}, {x1, y1 - i},
					{x0 + i, y1}, {x1 - i, y1},
				}
				for k, p := range pos {
					ring[k] = s.At(p[0], p[1])
				}
				c := surface.Average(ring[:]...)
				for _, p := range pos {
					s.Set(p[0], p[1], c)
				}
			}
		}
	}
	return true
}
