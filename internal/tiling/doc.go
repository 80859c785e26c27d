// Package tiling implements the boundary-consistency engine of the tiler.
//
// A run plans a Grid from the image and tile size, refines the shared surface
// with one of the Mode passes, and extracts independently owned tiles in
// row-major order:
//
//	g, err := tiling.Plan(s.Width(), s.Height(), tiling.Geometry{Width: 16, Height: 16})
//	if err != nil {
//	    return err
//	}
//	tiling.Refine(s, g, tiling.ModeEqualizeBounds, log)
//	tiles, err := tiling.Extract(s, g)
//
// # Ordering
//
// Deblock must visit tiles in row-major order against a single mutable
// surface; that is what guarantees each seam pixel is blended exactly once.
// Nothing in this package is safe for concurrent use on the same surface.
//
// # Coordinates
//
// Grid.Bounds follows image.Rectangle (max exclusive). The passes themselves
// work with inclusive corners (x0,y0)-(x1,y1).
package tiling
