package tiler

import (
	"context"
	"errors"
	"image"

	"github.com/ironsheep/image-tiler/internal/cluster"
	"github.com/ironsheep/image-tiler/internal/imaging"
	"github.com/ironsheep/image-tiler/internal/logging"
	"github.com/ironsheep/image-tiler/internal/store"
	"github.com/ironsheep/image-tiler/internal/surface"
	"github.com/ironsheep/image-tiler/internal/tiling"
)

// Options selects how an image is cut.
type Options struct {
	Tile     tiling.Geometry
	Mode     tiling.Mode
	Clusters int
	Naming   store.Naming
}

// Deps are the collaborators of a run. Any of them may be nil: a nil Log
// discards messages, a nil Store skips persistence and a nil Clusterer uses
// k-means.
type Deps struct {
	Log       logging.Logger
	Store     store.Store
	Clusterer cluster.Clusterer
}

// Result describes a finished run.
type Result struct {
	Grid    tiling.Grid
	Surface surface.Surface
	Tiles   []*tiling.Tile
	Written int

	// ClusterErr is set when clustering was requested but could not run.
	// The tiles were still persisted, without cluster labels.
	ClusterErr error
}

// Refined plans the grid for img and applies the boundary passes of mode to a
// private copy of it.
func Refined(img image.Image, tile tiling.Geometry, mode tiling.Mode, log logging.Logger) (*surface.RGB, tiling.Grid, error) {
	b := img.Bounds()
	g, err := tiling.Plan(b.Dx(), b.Dy(), tile)
	if err != nil {
		logging.Logf(log, logging.Err, "%v", err)
		return nil, tiling.Grid{}, err
	}
	s := surface.FromImage(img)
	if g.Empty() {
		logging.Logf(log, logging.Warn, "tile size %v does not fit in a %dx%d image, no tiles produced", tile, b.Dx(), b.Dy())
		return s, g, nil
	}
	tiling.Refine(s, g, mode, log)
	return s, g, nil
}

// Process cuts img into tiles, clusters them when asked to, and persists them
// through deps.Store.
//
// A configuration error stops the run before anything is done. A clustering
// failure is recorded in Result.ClusterErr and the tiles are written
// unlabelled. A persistence failure is returned along with the partial
// result.
func Process(ctx context.Context, img image.Image, opts Options, deps Deps) (*Result, error) {
	log := deps.Log
	if log == nil {
		log = logging.Discard
	}

	s, g, err := Refined(img, opts.Tile, opts.Mode, log)
	if err != nil {
		return nil, err
	}
	res := &Result{Grid: g, Surface: s}
	if g.Empty() {
		return res, nil
	}

	tiles, err := tiling.Extract(s, g)
	if err != nil {
		logging.Logf(log, logging.Err, "%v", err)
		return nil, err
	}
	res.Tiles = tiles
	logging.Logf(log, logging.Info, "extracted %d tiles (%dx%d grid, mode %v)", len(tiles), g.Across, g.Down, opts.Mode)

	labels := 1
	if opts.Clusters > 1 {
		c := deps.Clusterer
		if c == nil {
			c = cluster.KMeans{}
		}
		if err := cluster.Assign(tiles, opts.Clusters, c, log); err != nil {
			logging.Logf(log, logging.Err, "%v", err)
			res.ClusterErr = err
		} else {
			labels = min(opts.Clusters, len(tiles))
		}
	}

	if deps.Store == nil {
		return res, nil
	}
	res.Written, err = store.SaveAll(ctx, deps.Store, tiles, labels, opts.Naming, log)
	return res, err
}

// Run loads the image at path through cache and processes it. When
// opts.Naming is unset, tiles are named after the input file.
func Run(ctx context.Context, cache *imaging.ImageCache, path string, opts Options, deps Deps) (*Result, error) {
	img, err := cache.Load(path)
	if err != nil {
		logging.Logf(deps.Log, logging.Err, "could not read %s: %v", path, err)
		return nil, err
	}
	if opts.Naming == (store.Naming{}) {
		opts.Naming = store.NamingFromPath(path)
	}
	return Process(ctx, img, opts, deps)
}

// IsConfigError reports whether err means the run was rejected before any
// work was done.
func IsConfigError(err error) bool {
	return errors.Is(err, tiling.ErrInvalidTileSize)
}
