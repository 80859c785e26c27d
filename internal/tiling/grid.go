package tiling

import (
	"errors"
	"fmt"
	"image"
)

// ErrInvalidTileSize is returned when a tile dimension is not a positive integer.
var ErrInvalidTileSize = errors.New("tile size must be two positive integers")

// Geometry is the caller-supplied tile size in pixels.
type Geometry struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Validate rejects non-positive dimensions. Values are never clamped.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("tile size (%d,%d): %w", g.Width, g.Height, ErrInvalidTileSize)
	}
	return nil
}

// Square reports whether the tile is square.
func (g Geometry) Square() bool {
	return g.Width == g.Height
}

func (g Geometry) String() string {
	return fmt.Sprintf("(%d,%d)", g.Width, g.Height)
}

// Grid is the row-major partition of an image into whole tiles.
//
// Pixels past Across*Tile.Width or Down*Tile.Height belong to no tile.
type Grid struct {
	ImageWidth  int      `json:"image_width"`
	ImageHeight int      `json:"image_height"`
	Tile        Geometry `json:"tile"`
	Across      int      `json:"tiles_across"`
	Down        int      `json:"tiles_down"`
}

// Plan computes the grid for an image of imageW×imageH pixels.
//
// A tile larger than the image in either dimension yields an empty grid, which
// is not an error; callers decide how loudly to report it.
func Plan(imageW, imageH int, g Geometry) (Grid, error) {
	if err := g.Validate(); err != nil {
		return Grid{}, err
	}
	return Grid{
		ImageWidth:  imageW,
		ImageHeight: imageH,
		Tile:        g,
		Across:      imageW / g.Width,
		Down:        imageH / g.Height,
	}, nil
}

// Count is the total number of tiles.
func (g Grid) Count() int {
	return g.Across * g.Down
}

// Empty reports whether the grid holds no tiles.
func (g Grid) Empty() bool {
	return g.Count() == 0
}

// ID is the linear, row-major tile id.
func (g Grid) ID(tx, ty int) int {
	return tx + ty*g.Across
}

// Bounds returns the pixel rectangle of tile (tx, ty), max exclusive.
func (g Grid) Bounds(tx, ty int) image.Rectangle {
	x0, y0 := tx*g.Tile.Width, ty*g.Tile.Height
	return image.Rect(x0, y0, x0+g.Tile.Width, y0+g.Tile.Height)
}

// corners returns the inclusive top-left and bottom-right pixels of a tile.
func (g Grid) corners(tx, ty int) (x0, y0, x1, y1 int) {
	x0, y0 = tx*g.Tile.Width, ty*g.Tile.Height
	return x0, y0, x0 + g.Tile.Width - 1, y0 + g.Tile.Height - 1
}

// Covered is the region of the image assigned to some tile.
func (g Grid) Covered() image.Rectangle {
	return image.Rect(0, 0, g.Across*g.Tile.Width, g.Down*g.Tile.Height)
}
