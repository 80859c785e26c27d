package tiling

import (
	"github.com/ironsheep/image-tiler/internal/surface"
)

// Deblock averages pixels across every seam between grid-adjacent tiles.
//
// Tiles are visited strictly in row-major order and each tile owns its bottom
// seam, its right seam and the 2×2 cluster at its bottom-right corner. Seam
// ranges exclude the tile's own corner columns/rows except on the image's
// outer edge, so every seam pixel is written by exactly one step. Pixels on the
// outer border are never blended with anything outside the image.
//
// Example with 3×3 tiles, each digit a distinct colour:
//
//	0   0 1 2   2
//	   - - - -
//	0 | 0 1 2 | 2
//	3 | 3 x 4 | 4
//	5 | 5 6 7 | 7
//	   - - - -
//	5   5 6 7   7
func Deblock(s surface.Surface, g Grid) {
	lastCol, lastRow := g.Across-1, g.Down-1

	for ty := 0; ty < g.Down; ty++ {
		for tx := 0; tx < g.Across; tx++ {
			x0, y0, x1, y1 := g.corners(tx, ty)

			if ty < lastRow {
				from, to := x0+1, x1
				if tx == 0 {
					from--
				}
				if tx == lastCol {
					to++
				}
				for k := from; k < to; k++ {
					c := surface.Average(s.At(k, y1), s.At(k, y1+1))
					s.Set(k, y1, c)
					s.Set(k, y1+1, c)
				}
			}

			if tx < lastCol {
				from, to := y0+1, y1
				if ty == 0 {
					from--
				}
				if ty == lastRow {
					to++
				}
				for k := from; k < to; k++ {
					c := surface.Average(s.At(x1, k), s.At(x1+1, k))
					s.Set(x1, k, c)
					s.Set(x1+1, k, c)
				}
			}

			if tx < lastCol && ty < lastRow {
				c := surface.Average(
					s.At(x1, y1), s.At(x1+1, y1),
					s.At(x1, y1+1), s.At(x1+1, y1+1),
				)
				s.Set(x1, y1, c)
				s.Set(x1+1, y1, c)
				s.Set(x1, y1+1, c)
				s.Set(x1+1, y1+1, c)
			}
		}
	}
}
