// Package server implements the MCP (Model Context Protocol) server for the
// image tiler.
//
// This package provides a JSON-RPC 2.0 server that exposes tile planning,
// seam refinement, tile extraction and preview rendering through the MCP
// protocol, so a client can inspect how an image will be cut before writing
// any tiles.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Source image:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel, optionally after seam refinement
//
// Tiling:
//   - tiles_plan: Grid size, dropped pixels and warnings, without cutting
//   - tiles_create: Refine, cut, optionally cluster, and write tiles
//   - tiles_preview_grid: Refined image with the grid drawn on it
//   - tiles_get: One refined tile, optionally enlarged
//   - tiles_convergence: Per-round change of the equalize-bounds mode
//
// Every tiling tool takes tile_width, an optional tile_height (defaults to
// tile_width) and an optional mode (none, across-tiles or equalize-bounds;
// defaults to across-tiles).
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls. Refinement always works on a
// private copy, so cached images are never modified.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Warnings raised while tiling (empty grids, non-square tiles with
// equalize-bounds, lossy output formats) are returned in the tool result
// rather than as errors.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
