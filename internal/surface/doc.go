// Package surface provides the mutable pixel buffer the tiler works on.
//
// A Surface maps (x, y) in [0,W)×[0,H) to an 8-bit RGB Color. The boundary
// passes in package tiling read and write a single Surface in place; tile
// extraction uses Crop, which always copies.
//
// # Color Averaging
//
// Average is integer per-channel averaging with floor division. It is the only
// blending operation the tiler uses; no colour-space conversion takes place.
//
//	surface.Average(surface.Color{}, surface.Color{R: 255, G: 255, B: 255})
//	// => {127 127 127}
package surface
