package tiling

import (
	"fmt"

	"github.com/ironsheep/image-tiler/internal/surface"
)

// Tile is an independently owned copy of one grid cell.
type Tile struct {
	Surface surface.Surface
	X       int // column in the grid
	Y       int // row in the grid
	ID      int // X + Y*Across

	label    int
	labelled bool
}

// Label returns the cluster label and whether clustering assigned one.
func (t *Tile) Label() (int, bool) {
	return t.label, t.labelled
}

// SetLabel records the cluster label assigned by a clusterer.
func (t *Tile) SetLabel(label int) {
	t.label = label
	t.labelled = true
}

// Extract crops every grid cell out of s in row-major order.
//
// The returned tiles do not share pixels with s, so s may be reused or
// mutated afterwards.
func Extract(s surface.Surface, g Grid) ([]*Tile, error) {
	tiles := make([]*Tile, 0, g.Count())
	for ty := 0; ty < g.Down; ty++ {
		for tx := 0; tx < g.Across; tx++ {
			sub, err := s.Crop(g.Bounds(tx, ty))
			if err != nil {
				return nil, fmt.Errorf("failed to extract tile (%d,%d): %w", tx, ty, err)
			}
			tiles = append(tiles, &Tile{
				Surface: sub,
				X:       tx,
				Y:       ty,
				ID:      g.ID(tx, ty),
			})
		}
	}
	return tiles, nil
}
