package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-tiler/internal/tiling"
)

// MaxScale bounds the preview upscaling factor.
const MaxScale = 32

// MaxPixels bounds the size of an enlarged image, in pixels.
const MaxPixels = 16 << 20

// CropResult contains an encoded tile or region.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Scale       int    `json:"scale"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// CropTile cuts tile (tx, ty) of grid g out of img and encodes it as PNG.
//
// A scale above 1 enlarges the tile with nearest-neighbour sampling so every
// source pixel, seam pixels included, stays a solid block of its exact colour.
func CropTile(img image.Image, g tiling.Grid, tx, ty, scale int) (*CropResult, error) {
	if tx < 0 || ty < 0 || tx >= g.Across || ty >= g.Down {
		return nil, fmt.Errorf("tile (%d,%d) outside %dx%d grid", tx, ty, g.Across, g.Down)
	}
	r := g.Bounds(tx, ty).Add(img.Bounds().Min)
	if !r.In(img.Bounds()) {
		return nil, fmt.Errorf("tile (%d,%d) region %v outside image bounds %v", tx, ty, r, img.Bounds())
	}
	return Encode(imaging.Crop(img, r), scale)
}

// Encode writes img as a base64 PNG, enlarged by an integer scale.
func Encode(img image.Image, scale int) (*CropResult, error) {
	if scale < 1 {
		scale = 1
	}
	if scale > MaxScale {
		return nil, fmt.Errorf("scale %d exceeds maximum of %d", scale, MaxScale)
	}

	out := img
	if scale > 1 {
		b := img.Bounds()
		if w, h := b.Dx()*scale, b.Dy()*scale; w*h > MaxPixels {
			return nil, fmt.Errorf("%dx%d image at scale %d would be %dx%d, more than %d pixels", b.Dx(), b.Dy(), scale, w, h, MaxPixels)
		}
		out = transform.Resize(img, b.Dx()*scale, b.Dy()*scale, transform.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &CropResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		Scale:       scale,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
