package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// tileProperties returns the schema shared by every tool that cuts a grid,
// merged with extra.
func tileProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path": pathProperty(),
		"tile_width": map[string]interface{}{
			"type":        "integer",
			"description": "Tile width in pixels (must be positive)",
		},
		"tile_height": map[string]interface{}{
			"type":        "integer",
			"description": "Tile height in pixels. Defaults to tile_width",
		},
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"none", "across-tiles", "equalize-bounds", "0", "1", "2"},
			"description": "Seam handling: none, across-tiles (blend neighbouring tiles once, default) or equalize-bounds (make every tile's border self-consistent, square tiles only)",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Source image
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether that format keeps tile seams pixel exact.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color at a pixel. When tile_width is given the pixel is read after seam refinement, which shows the blended value a tile border will carry.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": tileProperties(map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				}),
				"required": []string{"path", "x", "y"},
			},
		},

		// Tiling
		{
			Name:        "tiles_plan",
			Description: "Compute the tile grid for an image without cutting it: tiles across and down, pixels dropped at the right and bottom edges, and warnings for empty grids, non-square tiles and lossy formats.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": tileProperties(nil),
				"required":   []string{"path", "tile_width"},
			},
		},
		{
			Name:        "tiles_create",
			Description: "Cut an image into seamless tiles and write them as <name>_<row>_<col><ext>. With clusters > 1 similar tiles are grouped into one sub-directory per cluster using k-means.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": tileProperties(map[string]interface{}{
					"out_dir": map[string]interface{}{
						"type":        "string",
						"description": "Output directory (or S3 key prefix). Defaults to 'out' next to the image",
					},
					"clusters": map[string]interface{}{
						"type":        "integer",
						"description": "Number of similarity clusters. 1 or less disables clustering",
						"default":     1,
					},
					"s3": map[string]interface{}{
						"type":        "boolean",
						"description": "Upload to the S3 bucket the server was started with instead of the local disk",
						"default":     false,
					},
				}),
				"required": []string{"path", "tile_width"},
			},
		},
		{
			Name:        "tiles_preview_grid",
			Description: "Render the refined image with tile boundaries drawn on it as base64 PNG. Pixels no tile covers are tinted.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": tileProperties(map[string]interface{}{
					"show_labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Label each tile with its row,col",
						"default":     false,
					},
					"line_color": map[string]interface{}{
						"type":        "string",
						"description": "Line color in hex (e.g., '#FF0000' or '#FF000080' with alpha)",
						"default":     "#FF000080",
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer nearest-neighbour enlargement factor (1-32; the result is limited to 16M pixels)",
						"default":     1,
					},
				}),
				"required": []string{"path", "tile_width"},
			},
		},
		{
			Name:        "tiles_get",
			Description: "Return one refined tile by grid position as base64 PNG, optionally enlarged so single seam pixels are easy to inspect.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": tileProperties(map[string]interface{}{
					"col": map[string]interface{}{
						"type":        "integer",
						"description": "Tile column (0-based)",
					},
					"row": map[string]interface{}{
						"type":        "integer",
						"description": "Tile row (0-based)",
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer nearest-neighbour enlargement factor (1-32; the result is limited to 16M pixels)",
						"default":     1,
					},
				}),
				"required": []string{"path", "tile_width", "col", "row"},
			},
		},
		{
			Name:        "tiles_convergence",
			Description: "Run equalize-bounds rounds on the image and report how much each round changed it (largest channel change, changed pixels, mean CIE Lab distance).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": tileProperties(map[string]interface{}{
					"rounds": map[string]interface{}{
						"type":        "integer",
						"description": "Number of rounds to run (1-100)",
						"default":     10,
					},
				}),
				"required": []string{"path", "tile_width"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
