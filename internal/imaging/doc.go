// Package imaging provides the image I/O and preview helpers around the tiler.
//
// It loads and caches source images, reports their metadata, samples pixel
// colours, and renders previews: single tiles cut by grid coordinates and a
// grid overlay showing where the seams fall and which pixels no tile covers.
// Previews are returned as base64 PNG so they can travel inside JSON-RPC
// responses.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with the origin at the
// top-left corner. Tile coordinates are (column, row); labels drawn on the
// overlay read "row,col" to match tile file names.
//
// # Scaling
//
// Previews are enlarged by an integer factor with nearest-neighbour sampling
// (github.com/anthonynsimon/bild/transform), never interpolated, so one-pixel
// seams stay visible and keep their exact values.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Images it returns are
// shared and must be treated as read-only.
package imaging
