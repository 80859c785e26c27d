package store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ironsheep/image-tiler/internal/logging"
	"github.com/ironsheep/image-tiler/internal/tiling"
)

// ErrPersistence wraps the first failed write of a SaveAll run.
var ErrPersistence = errors.New("tile persistence failed")

// Store persists tiles under names produced by a Naming.
type Store interface {
	// Prepare readies the destination. When labels > 1, one sub-location per
	// cluster label (0..labels-1) is created as well.
	Prepare(ctx context.Context, labels int) error
	// Write stores one tile under a slash-separated relative name.
	Write(ctx context.Context, t *tiling.Tile, name string) error
}

// Naming derives tile names from the source image name and grid coordinates.
type Naming struct {
	Base string // source file name without extension
	Ext  string // extension including the dot, e.g. ".png"
}

// NamingFromPath splits a source image path into a Naming.
func NamingFromPath(p string) Naming {
	ext := filepath.Ext(p)
	return Naming{
		Base: strings.TrimSuffix(filepath.Base(p), ext),
		Ext:  ext,
	}
}

// Name is "<base>_<row>_<col><ext>", inside a "<label>/" directory when the
// tile has a cluster label.
func (n Naming) Name(t *tiling.Tile) string {
	name := n.Base + "_" + strconv.Itoa(t.Y) + "_" + strconv.Itoa(t.X) + n.Ext
	if label, ok := t.Label(); ok {
		return path.Join(strconv.Itoa(label), name)
	}
	return name
}

// Lossy reports whether the extension selects a codec that alters pixel
// values (JPEG compression, GIF palette reduction), which defeats the
// pixel-exact seams the tiler produces.
func (n Naming) Lossy() bool {
	switch strings.ToLower(n.Ext) {
	case ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}

// SaveAll writes tiles in order and stops at the first failure, since the
// remaining writes would almost certainly fail the same way. It returns the
// number of tiles written.
func SaveAll(ctx context.Context, s Store, tiles []*tiling.Tile, labels int, n Naming, log logging.Logger) (int, error) {
	if len(tiles) == 0 {
		return 0, nil
	}
	if n.Lossy() {
		logging.Logf(log, logging.Warn, "%s is a lossy format, tile seams will not be pixel exact", n.Ext)
	}
	if err := s.Prepare(ctx, labels); err != nil {
		logging.Logf(log, logging.Err, "%v", err)
		return 0, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	for i, t := range tiles {
		if err := ctx.Err(); err != nil {
			return i, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		name := n.Name(t)
		if err := s.Write(ctx, t, name); err != nil {
			logging.Logf(log, logging.Err, "%v", err)
			logging.Logf(log, logging.Err, "Halting tile write due to save error.")
			return i, fmt.Errorf("%w: %s: %w", ErrPersistence, name, err)
		}
		logging.Logf(log, logging.Debug, "wrote %s", name)
	}
	return len(tiles), nil
}
