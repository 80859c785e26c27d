package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ErrOutOfBounds is returned when a crop rectangle does not fit inside the surface.
var ErrOutOfBounds = errors.New("region outside surface bounds")

// Color is an 8-bit RGB triple.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Average returns the per-channel mean of colors using integer floor division.
// The average of an empty list is black.
func Average(colors ...Color) Color {
	if len(colors) == 0 {
		return Color{}
	}
	var r, g, b int
	for _, c := range colors {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := len(colors)
	return Color{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
}

// Surface is an addressable 2D buffer of RGB pixels with (0,0) at the top-left.
//
// Boundary passes mutate a Surface in place. Crop always returns an
// independently owned copy, never a view.
type Surface interface {
	Width() int
	Height() int
	At(x, y int) Color
	Set(x, y int, c Color)
	Crop(r image.Rectangle) (Surface, error)
	Image() image.Image
}

// RGB is a Surface backed by an *image.NRGBA.
//
// Alpha is carried through unchanged: Set only replaces the colour channels,
// so transparent regions stay transparent after deblocking.
type RGB struct {
	img *image.NRGBA
}

// New creates an opaque black surface of the given size.
func New(width, height int) *RGB {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return &RGB{img: img}
}

// FromImage copies img into a new surface whose origin is (0,0).
// The caller's image is never aliased.
func FromImage(img image.Image) *RGB {
	return &RGB{img: imaging.Clone(img)}
}

func (s *RGB) Width() int  { return s.img.Rect.Dx() }
func (s *RGB) Height() int { return s.img.Rect.Dy() }

func (s *RGB) At(x, y int) Color {
	c := s.img.NRGBAAt(x, y)
	return Color{R: c.R, G: c.G, B: c.B}
}

func (s *RGB) Set(x, y int, c Color) {
	a := s.img.NRGBAAt(x, y).A
	s.img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: a})
}

// Crop copies the pixels inside r (max exclusive) into a new surface.
func (s *RGB) Crop(r image.Rectangle) (Surface, error) {
	if r.Empty() || !r.In(s.img.Rect) {
		return nil, fmt.Errorf("crop %v of %dx%d surface: %w", r, s.Width(), s.Height(), ErrOutOfBounds)
	}
	return &RGB{img: imaging.Crop(s.img, r)}, nil
}

// Image exposes the backing image for encoding. Callers must not retain it
// across further mutation of the surface.
func (s *RGB) Image() image.Image {
	return s.img
}

// Clone returns a deep copy of s.
func (s *RGB) Clone() *RGB {
	return &RGB{img: imaging.Clone(s.img)}
}
