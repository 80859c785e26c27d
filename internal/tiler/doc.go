// Package tiler runs a complete tiling job.
//
// Process ties the pieces together in a fixed order: plan the grid, refine a
// private copy of the image, extract tiles, optionally cluster them, then
// persist them. Each collaborator comes in through Deps so callers (the CLI,
// the MCP server and tests) choose where tiles go and where messages are
// logged.
package tiler
