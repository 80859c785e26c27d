package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-tiler/internal/tiling"
)

// Dir writes tiles as image files below a local directory. The codec is
// chosen from each name's extension.
type Dir struct {
	Root string
}

func (d Dir) Prepare(_ context.Context, labels int) error {
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i := 0; labels > 1 && i < labels; i++ {
		if err := os.MkdirAll(filepath.Join(d.Root, strconv.Itoa(i)), 0o755); err != nil {
			return fmt.Errorf("failed to create cluster directory: %w", err)
		}
	}
	return nil
}

func (d Dir) Write(_ context.Context, t *tiling.Tile, name string) error {
	p := filepath.Join(d.Root, filepath.FromSlash(name))
	if err := imaging.Save(t.Surface.Image(), p); err != nil {
		return fmt.Errorf("failed to save %s: %w", p, err)
	}
	return nil
}
