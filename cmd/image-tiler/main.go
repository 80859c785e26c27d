package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ironsheep/image-tiler/internal/config"
	"github.com/ironsheep/image-tiler/internal/imaging"
	"github.com/ironsheep/image-tiler/internal/logging"
	"github.com/ironsheep/image-tiler/internal/server"
	"github.com/ironsheep/image-tiler/internal/store"
	"github.com/ironsheep/image-tiler/internal/tiler"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version, --help and the serve subcommand
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-tiler %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp(os.Stdout)
			return
		case "serve":
			os.Exit(serve())
		}
	}

	os.Exit(run(os.Args[1:]))
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "image-tiler - cut an image into tiles with seamless borders")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: image-tiler -i <image> -o <dir> -s <w,h> [options]")
	fmt.Fprintln(w, "       image-tiler serve")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	_, _ = config.Parse([]string{"-h"}, w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Subcommands:")
	fmt.Fprintln(w, "  serve            Run as an MCP server over stdin/stdout")
	fmt.Fprintln(w, "  version          Print version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=debug    Log debug and info lines too\n", config.EnvLogLevel)
	fmt.Fprintf(w, "  %s, %s, %s,\n", config.EnvS3Bucket, config.EnvS3Prefix, config.EnvS3Region)
	fmt.Fprintf(w, "  %s, %s, %s\n", config.EnvS3Endpoint, config.EnvS3AccessKey, config.EnvS3SecretKey)
	fmt.Fprintln(w, "                   S3-compatible store used with -s3")
}

func serve() int {
	opts := []server.Option{}
	if os.Getenv(config.EnvS3Bucket) != "" {
		opts = append(opts, server.WithS3(config.S3FromEnv()))
	}

	// Logging stays on stderr; stdout is for MCP protocol
	if config.LogLevelFromEnv() == logging.Debug {
		fmt.Fprintf(os.Stderr, "Image tiler MCP server v%s (built %s, commit %s)\n", Version, BuildTime, GitCommit)
	}

	srv := server.New(opts...)
	if err := srv.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		return 1
	}
	return 0
}

// run performs one CLI tiling run and returns the process exit code.
func run(args []string) int {
	opts, err := config.Parse(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	sink := logging.NewSink(os.Stderr)
	if opts.Log {
		sink, err = logging.OpenSink(opts.LogFile, os.Stderr, opts.LogLevel)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	defer sink.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var st store.Store = store.Dir{Root: opts.Output}
	if opts.UseS3 {
		s3, err := store.NewS3(ctx, opts.S3)
		if err != nil {
			logging.Logf(sink, logging.Err, "%v", err)
			return 1
		}
		st = s3
	}

	_, err = tiler.Run(ctx, imaging.NewImageCache(), opts.Input, tiler.Options{
		Tile:     opts.Tile,
		Mode:     opts.Mode,
		Clusters: opts.Clusters,
	}, tiler.Deps{Log: sink, Store: st})

	if opts.Log {
		if sink.Count() > 0 {
			fmt.Printf("Encountered warnings/errors. See %s for details\n", sink.Path())
		} else {
			fmt.Println("No errors encountered whatsoever")
		}
	}

	switch {
	case err == nil:
		return 0
	case tiler.IsConfigError(err):
		return 2
	default:
		return 1
	}
}
