package tiling

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-tiler/internal/logging"
	"github.com/ironsheep/image-tiler/internal/surface"
)

// RoundDelta measures how much one Equalize+Deblock round changed the surface.
type RoundDelta struct {
	Round           int     `json:"round"`
	MaxChannelDelta int     `json:"max_channel_delta"`
	ChangedPixels   int     `json:"changed_pixels"`
	MeanDeltaE      float64 `json:"mean_delta_e"`
}

// Sweep runs rounds refinement rounds on a private copy of s and reports the
// per-round pixel change, to characterise how quickly ModeEqualizeBounds
// settles. s itself is not modified.
//
// MeanDeltaE is the mean CIE Lab distance over the pixels that changed in the
// round; it is zero when nothing changed. No rounds are run for rounds <= 0.
func Sweep(s surface.Surface, g Grid, rounds int) []RoundDelta {
	if rounds <= 0 {
		return nil
	}
	work := surface.FromImage(s.Image())
	prev := work.Clone()

	deltas := make([]RoundDelta, 0, rounds)
	for r := 1; r <= rounds; r++ {
		Equalize(work, g, logging.Discard)
		Deblock(work, g)

		d := RoundDelta{Round: r}
		var sumE float64
		for y := 0; y < work.Height(); y++ {
			for x := 0; x < work.Width(); x++ {
				a, b := prev.At(x, y), work.At(x, y)
				if a == b {
					continue
				}
				d.ChangedPixels++
				d.MaxChannelDelta = max(d.MaxChannelDelta, absDiff(a.R, b.R), absDiff(a.G, b.G), absDiff(a.B, b.B))
				sumE += toColorful(a).DistanceLab(toColorful(b))
				prev.Set(x, y, b)
			}
		}
		if d.ChangedPixels > 0 {
			d.MeanDeltaE = sumE / float64(d.ChangedPixels)
		}
		deltas = append(deltas, d)
	}
	return deltas
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func toColorful(c surface.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
