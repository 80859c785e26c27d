package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/image-tiler/internal/tiling"
)

// GridOverlayResult contains the image with the tile grid drawn on top.
type GridOverlayResult struct {
	CropResult
	Across  int `json:"across"`
	Down    int `json:"down"`
	Dropped int `json:"dropped_pixels"`
}

// GridOverlay marks the tile grid g on a copy of img.
//
// A line is drawn along the first column and row of every tile after the
// first, so the overlay covers one side of each seam and leaves the other
// visible. Pixels outside the grid (the remainder that no tile covers) are
// tinted with the same colour. Labels, when enabled, give each tile's
// "row,col" as used in tile file names.
func GridOverlay(img image.Image, g tiling.Grid, showLabels bool, lineColorHex string, scale int) (*GridOverlayResult, error) {
	lineColor, err := parseHexColor(lineColorHex)
	if err != nil {
		lineColor = color.RGBA{255, 0, 0, 128}
	}

	bounds := img.Bounds()
	result := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	covered := g.Covered()
	line := image.NewUniform(lineColor)
	for tx := 1; tx < g.Across; tx++ {
		x := tx * g.Tile.Width
		draw.Draw(result, image.Rect(x, 0, x+1, covered.Max.Y), line, image.Point{}, draw.Over)
	}
	for ty := 1; ty < g.Down; ty++ {
		y := ty * g.Tile.Height
		draw.Draw(result, image.Rect(0, y, covered.Max.X, y+1), line, image.Point{}, draw.Over)
	}

	dropped := 0
	for _, r := range remainder(result.Bounds(), covered) {
		draw.Draw(result, r, line, image.Point{}, draw.Over)
		dropped += r.Dx() * r.Dy()
	}

	if showLabels {
		labelColor := color.RGBA{255, 255, 255, 255}
		bgColor := color.RGBA{0, 0, 0, 180}
		for ty := 0; ty < g.Down; ty++ {
			for tx := 0; tx < g.Across; tx++ {
				tile := g.Bounds(tx, ty)
				drawLabel(result, tile, tile.Min.X+2, tile.Min.Y+2, fmt.Sprintf("%d,%d", ty, tx), labelColor, bgColor)
			}
		}
	}

	enc, err := Encode(result, scale)
	if err != nil {
		return nil, err
	}
	return &GridOverlayResult{
		CropResult: *enc,
		Across:     g.Across,
		Down:       g.Down,
		Dropped:    dropped,
	}, nil
}

// remainder returns the parts of full not inside covered: a right strip and
// a bottom strip.
func remainder(full, covered image.Rectangle) []image.Rectangle {
	var rs []image.Rectangle
	if covered.Max.X < full.Max.X {
		rs = append(rs, image.Rect(covered.Max.X, 0, full.Max.X, covered.Max.Y))
	}
	if covered.Max.Y < full.Max.Y {
		rs = append(rs, image.Rect(0, covered.Max.Y, full.Max.X, full.Max.Y))
	}
	return rs
}

// parseHexColor parses "#RRGGBB", "#RGB" or "#RRGGBBAA".
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}

	a := uint8(255)
	if len(hex) == 9 {
		var v uint8
		if _, err := fmt.Sscanf(hex[7:], "%02x", &v); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in %s: %w", hex, err)
		}
		a = v
		hex = hex[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// drawLabel writes text with its top-left corner at (x, y) on a filled
// background. Nothing outside clip is touched.
func drawLabel(img *image.RGBA, clip image.Rectangle, x, y int, text string, fg, bg color.RGBA) {
	dst, ok := img.SubImage(clip.Intersect(img.Bounds())).(*image.RGBA)
	if !ok || dst.Bounds().Empty() {
		return
	}

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	w := d.MeasureString(text).Ceil()
	box := image.Rect(x-1, y-1, x+w+1, y+face.Height+1).Intersect(dst.Bounds())
	draw.Draw(dst, box, image.NewUniform(bg), image.Point{}, draw.Over)
	d.DrawString(text)
}
