package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/ironsheep/image-tiler/internal/tiling"
)

// Parse builds Options from command-line arguments (without the program name).
//
// A malformed tile size is returned as an error. An unknown deblock mode is
// kept as-is so the refinement step can report it and fall back to no
// deblocking.
func Parse(args []string, output io.Writer) (*Options, error) {
	fs := flag.NewFlagSet("image-tiler", flag.ContinueOnError)
	fs.SetOutput(output)

	opts := &Options{}
	var size string
	var mode int
	var noLog bool

	fs.StringVar(&opts.Input, "i", DefaultInput, "path to the image to cut into tiles; its extension selects the output format")
	fs.StringVar(&opts.Input, "in", DefaultInput, "same as -i")
	fs.StringVar(&opts.Output, "o", DefaultOutput, "directory (or S3 key prefix with -s3) that receives the tiles")
	fs.StringVar(&opts.Output, "out", DefaultOutput, "same as -o")
	fs.StringVar(&size, "s", DefaultSize, `tile width and height, e.g. "16,16", "(16,16)" or "16x16"`)
	fs.StringVar(&size, "size", DefaultSize, "same as -s")
	fs.IntVar(&opts.Clusters, "c", DefaultClusters, "number of clusters; above 1 tiles are grouped into one directory per cluster")
	fs.IntVar(&opts.Clusters, "clusters", DefaultClusters, "same as -c")
	fs.IntVar(&mode, "d", int(DefaultMode), "deblock mode: 0 none, 1 across tile boundaries, 2 equalize all tile boundaries")
	fs.IntVar(&mode, "dblk", int(DefaultMode), "same as -d")
	fs.BoolVar(&opts.Log, "l", false, "log warnings and errors to the log file instead of reporting only errors")
	fs.BoolVar(&opts.Log, "log", false, "same as -l")
	fs.BoolVar(&noLog, "no-log", false, "disable the log file")
	fs.StringVar(&opts.LogFile, "log-file", DefaultLogFile, "log file used with -l")
	fs.BoolVar(&opts.UseS3, "s3", false, "upload tiles to the bucket configured by IMAGE_TILER_S3_* variables")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	tile, err := ParseTileSize(size)
	if err != nil {
		return nil, err
	}
	opts.Tile = tile
	opts.Mode = tiling.Mode(mode)
	if noLog {
		opts.Log = false
	}
	opts.LogLevel = LogLevelFromEnv()
	if opts.UseS3 {
		opts.S3 = S3FromEnv()
		if opts.S3.Prefix == "" {
			opts.S3.Prefix = opts.Output
		}
	}
	return opts, nil
}
