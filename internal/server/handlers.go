package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"path/filepath"

	"github.com/ironsheep/image-tiler/internal/imaging"
	"github.com/ironsheep/image-tiler/internal/logging"
	"github.com/ironsheep/image-tiler/internal/store"
	"github.com/ironsheep/image-tiler/internal/surface"
	"github.com/ironsheep/image-tiler/internal/tiler"
	"github.com/ironsheep/image-tiler/internal/tiling"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "tiles_create").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		logging.Logf(s.log, logging.Debug, "tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Source image
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Tiling
	case "tiles_plan":
		return s.handleTilesPlan(args)
	case "tiles_create":
		return s.handleTilesCreate(args)
	case "tiles_preview_grid":
		return s.handleTilesPreviewGrid(args)
	case "tiles_get":
		return s.handleTilesGet(args)
	case "tiles_convergence":
		return s.handleTilesConvergence(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// tileArgs is shared by every tool that works on a grid.
type tileArgs struct {
	Path       string `json:"path"`
	TileWidth  int    `json:"tile_width"`
	TileHeight int    `json:"tile_height"`
	Mode       string `json:"mode"`
}

func (a tileArgs) geometry() tiling.Geometry {
	h := a.TileHeight
	if h == 0 {
		h = a.TileWidth
	}
	return tiling.Geometry{Width: a.TileWidth, Height: h}
}

func (a tileArgs) mode() (tiling.Mode, error) {
	if a.Mode == "" {
		return tiling.ModeAcrossTiles, nil
	}
	return tiling.ParseMode(a.Mode)
}

// refined loads the image and applies the requested boundary passes.
func (s *Server) refined(a tileArgs, log logging.Logger) (*surface.RGB, tiling.Grid, error) {
	m, err := a.mode()
	if err != nil {
		return nil, tiling.Grid{}, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, tiling.Grid{}, err
	}
	return tiler.Refined(img, a.geometry(), m, log)
}

// === Source Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	tileArgs
	X int `json:"x"`
	Y int `json:"y"`
}

// handleImageSampleColor samples the source image, or the refined image when
// a tile size is given.
func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	var img image.Image
	if a.TileWidth > 0 {
		sf, _, err := s.refined(a.tileArgs, logging.Discard)
		if err != nil {
			return nil, err
		}
		img = sf.Image()
	} else {
		src, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		img = src
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Tiling Handlers ===

type planResult struct {
	tiling.Grid
	TileCount      int      `json:"tile_count"`
	DroppedColumns int      `json:"dropped_columns"`
	DroppedRows    int      `json:"dropped_rows"`
	Square         bool     `json:"square"`
	Warnings       []string `json:"warnings,omitempty"`
}

func (s *Server) handleTilesPlan(args json.RawMessage) (interface{}, error) {
	var a tileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	dims, err := imaging.GetDimensions(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	geo := a.geometry()
	g, err := tiling.Plan(dims.Width, dims.Height, geo)
	if err != nil {
		return nil, err
	}

	covered := g.Covered()
	res := &planResult{
		Grid:           g,
		TileCount:      g.Count(),
		DroppedColumns: dims.Width - covered.Dx(),
		DroppedRows:    dims.Height - covered.Dy(),
		Square:         geo.Square(),
	}
	if g.Empty() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("tile size %v does not fit in a %dx%d image, no tiles produced", geo, dims.Width, dims.Height))
	}
	if !geo.Square() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("tile size %v is not square, mode %v will skip boundary equalization", geo, tiling.ModeEqualizeBounds))
	}
	if n := store.NamingFromPath(a.Path); n.Lossy() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s is a lossy format, tile seams will not be pixel exact", n.Ext))
	}
	return res, nil
}

type tilesCreateArgs struct {
	tileArgs
	OutDir   string `json:"out_dir"`
	Clusters int    `json:"clusters"`
	S3       bool   `json:"s3"`
}

type createResult struct {
	tiling.Grid
	Written      int      `json:"written"`
	Destination  string   `json:"destination"`
	ClusterError string   `json:"cluster_error,omitempty"`
	Messages     []string `json:"messages,omitempty"`
}

func (s *Server) handleTilesCreate(args json.RawMessage) (interface{}, error) {
	var a tilesCreateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	m, err := a.mode()
	if err != nil {
		return nil, err
	}
	if a.OutDir == "" {
		a.OutDir = filepath.Join(filepath.Dir(a.Path), "out")
	}

	ctx := context.Background()
	var st store.Store = store.Dir{Root: a.OutDir}
	dest := a.OutDir
	if a.S3 {
		if s.s3 == nil {
			return nil, fmt.Errorf("S3 store not configured")
		}
		cfg := *s.s3
		if cfg.Prefix == "" {
			cfg.Prefix = filepath.ToSlash(a.OutDir)
		}
		s3, err := store.NewS3(ctx, cfg)
		if err != nil {
			return nil, err
		}
		st = s3
		dest = "s3://" + cfg.Bucket + "/" + cfg.Prefix
	}

	var log logging.Memory
	res, err := tiler.Run(ctx, s.cache, a.Path, tiler.Options{
		Tile:     a.geometry(),
		Mode:     m,
		Clusters: a.Clusters,
	}, tiler.Deps{Log: logging.Tee(&log, s.log), Store: st})
	if err != nil {
		if res != nil && res.Written > 0 {
			return nil, fmt.Errorf("%w (%d tiles written before the failure)", err, res.Written)
		}
		return nil, err
	}

	out := &createResult{
		Grid:        res.Grid,
		Written:     res.Written,
		Destination: dest,
		Messages:    uniq(log.Messages(logging.Warn)),
	}
	if res.ClusterErr != nil {
		out.ClusterError = res.ClusterErr.Error()
	}
	return out, nil
}

type tilesPreviewGridArgs struct {
	tileArgs
	ShowLabels bool   `json:"show_labels"`
	LineColor  string `json:"line_color"`
	Scale      int    `json:"scale"`
}

type previewResult struct {
	*imaging.GridOverlayResult
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handleTilesPreviewGrid(args json.RawMessage) (interface{}, error) {
	var a tilesPreviewGridArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.LineColor == "" {
		a.LineColor = "#FF000080"
	}
	var log logging.Memory
	sf, g, err := s.refined(a.tileArgs, &log)
	if err != nil {
		return nil, err
	}
	overlay, err := imaging.GridOverlay(sf.Image(), g, a.ShowLabels, a.LineColor, a.Scale)
	if err != nil {
		return nil, err
	}
	return &previewResult{GridOverlayResult: overlay, Warnings: uniq(log.Messages(logging.Warn))}, nil
}

type tilesGetArgs struct {
	tileArgs
	Col   int `json:"col"`
	Row   int `json:"row"`
	Scale int `json:"scale"`
}

func (s *Server) handleTilesGet(args json.RawMessage) (interface{}, error) {
	var a tilesGetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sf, g, err := s.refined(a.tileArgs, logging.Discard)
	if err != nil {
		return nil, err
	}
	return imaging.CropTile(sf.Image(), g, a.Col, a.Row, a.Scale)
}

type tilesConvergenceArgs struct {
	tileArgs
	Rounds int `json:"rounds"`
}

type convergenceResult struct {
	tiling.Grid
	Rounds []tiling.RoundDelta `json:"rounds"`
}

func (s *Server) handleTilesConvergence(args json.RawMessage) (interface{}, error) {
	var a tilesConvergenceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Rounds <= 0 {
		a.Rounds = tiling.RefineIterations
	}
	if a.Rounds > 100 {
		return nil, fmt.Errorf("rounds %d exceeds maximum of 100", a.Rounds)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	g, err := tiling.Plan(b.Dx(), b.Dy(), a.geometry())
	if err != nil {
		return nil, err
	}
	return &convergenceResult{
		Grid:   g,
		Rounds: tiling.Sweep(surface.FromImage(img), g, a.Rounds),
	}, nil
}

// uniq drops repeated messages, keeping the first occurrence.
func uniq(msgs []string) []string {
	seen := make(map[string]bool, len(msgs))
	var out []string
	for _, m := range msgs {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
