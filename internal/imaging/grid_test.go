package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestGridOverlay(t *testing.T) {
	img := createInMemoryImage(10, 8, color.RGBA{0, 0, 0, 255})
	g := planGrid(t, 10, 8, 4, 4)

	result, err := GridOverlay(img, g, false, "#00FF00", 1)
	if err != nil {
		t.Fatalf("GridOverlay failed: %v", err)
	}
	if result.Across != 2 || result.Down != 2 {
		t.Errorf("grid: got %dx%d, want 2x2", result.Across, result.Down)
	}
	if result.Width != 10 || result.Height != 8 {
		t.Errorf("size: got %dx%d, want 10x8", result.Width, result.Height)
	}
	// Two columns (x=8,9) of 8 rows are not covered by any tile.
	if result.Dropped != 16 {
		t.Errorf("dropped pixels: got %d, want 16", result.Dropped)
	}

	out := decodeResult(t, result.ImageBase64)
	tests := []struct {
		name string
		x, y int
		want string
	}{
		{"tile interior", 1, 1, "#000000"},
		{"vertical seam line", 4, 1, "#00FF00"},
		{"horizontal seam line", 1, 4, "#00FF00"},
		{"last column of first tile", 3, 1, "#000000"},
		{"remainder strip", 9, 0, "#00FF00"},
		{"outer border untouched", 0, 0, "#000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := SampleColor(out, tt.x, tt.y)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if c.Hex != tt.want {
				t.Errorf("(%d,%d): got %s, want %s", tt.x, tt.y, c.Hex, tt.want)
			}
		})
	}
}

func TestGridOverlay_DoesNotModifySource(t *testing.T) {
	img := createPatternImage(8, 8)
	g := planGrid(t, 8, 8, 4, 4)

	if _, err := GridOverlay(img, g, true, "#FFFF00", 2); err != nil {
		t.Fatalf("GridOverlay failed: %v", err)
	}
	if got := img.RGBAAt(4, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("source changed at (4,0): got %v", got)
	}
}

func TestGridOverlay_Scaled(t *testing.T) {
	g := planGrid(t, 8, 8, 4, 4)
	result, err := GridOverlay(createPatternImage(8, 8), g, true, "", 4)
	if err != nil {
		t.Fatalf("GridOverlay failed: %v", err)
	}
	if result.Width != 32 || result.Height != 32 || result.Scale != 4 {
		t.Errorf("got %dx%d scale %d, want 32x32 scale 4", result.Width, result.Height, result.Scale)
	}
}

func TestGridOverlay_EmptyGrid(t *testing.T) {
	g := planGrid(t, 6, 6, 8, 8)
	result, err := GridOverlay(createPatternImage(6, 6), g, true, "#FF0000", 1)
	if err != nil {
		t.Fatalf("GridOverlay failed: %v", err)
	}
	if result.Dropped != 36 {
		t.Errorf("every pixel should be dropped, got %d", result.Dropped)
	}
}

func TestGridOverlay_InvalidColor(t *testing.T) {
	g := planGrid(t, 8, 8, 4, 4)
	if _, err := GridOverlay(createPatternImage(8, 8), g, false, "invalid", 1); err != nil {
		t.Errorf("GridOverlay should fall back to the default colour: %v", err)
	}
}

func TestRemainder(t *testing.T) {
	full := image.Rect(0, 0, 10, 7)

	rs := remainder(full, image.Rect(0, 0, 8, 6))
	if len(rs) != 2 {
		t.Fatalf("got %v, want two strips", rs)
	}
	if rs[0] != image.Rect(8, 0, 10, 6) || rs[1] != image.Rect(0, 6, 10, 7) {
		t.Errorf("strips: got %v", rs)
	}

	if rs := remainder(full, full); len(rs) != 0 {
		t.Errorf("fully covered image has remainder %v", rs)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF0000", color.RGBA{255, 0, 0, 255}, false},
		{"#00ff00", color.RGBA{0, 255, 0, 255}, false},
		{"0000FF", color.RGBA{0, 0, 255, 255}, false},
		{"#F00", color.RGBA{255, 0, 0, 255}, false},
		{"#FF000080", color.RGBA{255, 0, 0, 128}, false},
		{"", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
		{"#FF0000ZZ", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrawLabel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	fg := color.RGBA{255, 255, 255, 255}
	bg := color.RGBA{0, 0, 0, 255}

	drawLabel(img, img.Bounds(), 2, 2, "1", fg, bg)

	if img.RGBAAt(1, 1) != bg {
		t.Errorf("background corner: got %v, want %v", img.RGBAAt(1, 1), bg)
	}
	glyph := 0
	for y := 2; y < 15; y++ {
		for x := 2; x < 9; x++ {
			if img.RGBAAt(x, y) == fg {
				glyph++
			}
		}
	}
	if glyph == 0 {
		t.Error("no glyph pixels drawn")
	}
	if img.RGBAAt(30, 10) != (color.RGBA{}) {
		t.Errorf("pixel outside the label changed: %v", img.RGBAAt(30, 10))
	}
}

func TestDrawLabel_Clipped(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	clip := image.Rect(0, 0, 5, 5)

	drawLabel(img, clip, 1, 1, "12,34", color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if !image.Pt(x, y).In(clip) && img.RGBAAt(x, y) != (color.RGBA{}) {
				t.Fatalf("pixel (%d,%d) outside clip changed", x, y)
			}
		}
	}
}

func TestDrawLabel_BoundsCheck(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	// Must clip without panicking.
	drawLabel(img, img.Bounds(), 3, 3, "12,34", color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})
	drawLabel(img, img.Bounds(), -2, -2, "7", color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})
	drawLabel(img, image.Rect(10, 10, 20, 20), 0, 0, "7", color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255})
}
