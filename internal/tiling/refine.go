package tiling

import (
	"fmt"

	"github.com/ironsheep/image-tiler/internal/logging"
	"github.com/ironsheep/image-tiler/internal/surface"
)

// Mode selects how much boundary consistency Refine enforces.
type Mode int

const (
	// ModeNone leaves the surface untouched.
	ModeNone Mode = iota
	// ModeAcrossTiles blends seams between neighbouring tiles once, so the
	// tiles reassemble in their original order without visible seams.
	ModeAcrossTiles
	// ModeEqualizeBounds alternates Equalize and Deblock, so any tile can be
	// placed next to any transformed copy of itself.
	ModeEqualizeBounds
)

// RefineIterations is the number of Equalize/Deblock rounds in
// ModeEqualizeBounds. It is a heuristic with no proven fixed point; see Sweep.
const RefineIterations = 10

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeAcrossTiles:
		return "across-tiles"
	case ModeEqualizeBounds:
		return "equalize-bounds"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= ModeNone && m <= ModeEqualizeBounds
}

// ParseMode accepts either the numeric CLI form ("0", "1", "2") or the mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "0", "none":
		return ModeNone, nil
	case "1", "across-tiles":
		return ModeAcrossTiles, nil
	case "2", "equalize-bounds":
		return ModeEqualizeBounds, nil
	}
	return ModeNone, fmt.Errorf("unknown deblock mode %q", s)
}

// Refine applies the boundary passes selected by m to s in place.
//
// An undefined mode is reported as an error through log and treated as
// ModeNone.
func Refine(s surface.Surface, g Grid, m Mode, log logging.Logger) {
	switch m {
	case ModeNone:
	case ModeAcrossTiles:
		Deblock(s, g)
	case ModeEqualizeBounds:
		// A rectangular tile is reported once, not once per round.
		eqLog := log
		for i := 0; i < RefineIterations; i++ {
			Equalize(s, g, eqLog)
			Deblock(s, g)
			eqLog = logging.Discard
		}
	default:
		logging.Logf(log, logging.Err, "deblock mode is %q, which is not an actual mode. No deblocking will be used.", m)
	}
}
