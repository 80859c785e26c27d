package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ironsheep/image-tiler/internal/logging"
	"github.com/ironsheep/image-tiler/internal/store"
	"github.com/ironsheep/image-tiler/internal/tiling"
)

// Defaults for a CLI run.
const (
	DefaultInput    = "./in.png"
	DefaultOutput   = "./out"
	DefaultSize     = "(0,0)"
	DefaultMode     = tiling.ModeAcrossTiles
	DefaultClusters = 1
	DefaultLogFile  = "image-tiler.log"
)

// Environment variable names.
const (
	EnvLogLevel    = "IMAGE_TILER_LOG_LEVEL"
	EnvS3Endpoint  = "IMAGE_TILER_S3_ENDPOINT"
	EnvS3Region    = "IMAGE_TILER_S3_REGION"
	EnvS3AccessKey = "IMAGE_TILER_S3_ACCESS_KEY"
	EnvS3SecretKey = "IMAGE_TILER_S3_SECRET_KEY"
	EnvS3Bucket    = "IMAGE_TILER_S3_BUCKET"
	EnvS3Prefix    = "IMAGE_TILER_S3_PREFIX"
)

// Options is one tiling run as requested by the user.
type Options struct {
	Input    string
	Output   string
	Tile     tiling.Geometry
	Mode     tiling.Mode
	Clusters int
	Log      bool
	LogFile  string
	LogLevel logging.Level
	UseS3    bool
	S3       store.S3Config
}

var (
	bracketRe = regexp.MustCompile(`[(){}<>]`)
	splitRe   = regexp.MustCompile(`[\s,xX]+`)
)

// ParseTileSize reads a "width,height" pair. Brackets are ignored and the
// separator may be a comma, whitespace or 'x', so "16,8", "(16, 8)" and
// "16x8" are all accepted. Non-digit characters inside a number are dropped.
//
// The result is not validated; use tiling.Geometry.Validate for that.
func ParseTileSize(s string) (tiling.Geometry, error) {
	s = bracketRe.ReplaceAllString(s, "")
	var fields []string
	for _, f := range splitRe.Split(s, -1) {
		if f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) != 2 {
		return tiling.Geometry{}, fmt.Errorf("tile size %q: want two values, got %d", s, len(fields))
	}

	var dims [2]int
	for i, f := range fields {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, f)
		if digits == "" {
			return tiling.Geometry{}, fmt.Errorf("could not retrieve integer from %q in %q", f, s)
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return tiling.Geometry{}, fmt.Errorf("tile size %q: %w", s, err)
		}
		dims[i] = n
	}
	return tiling.Geometry{Width: dims[0], Height: dims[1]}, nil
}

// S3FromEnv reads the S3 store settings from the environment.
func S3FromEnv() store.S3Config {
	cfg := store.S3Config{
		Endpoint:  os.Getenv(EnvS3Endpoint),
		Region:    os.Getenv(EnvS3Region),
		AccessKey: os.Getenv(EnvS3AccessKey),
		SecretKey: os.Getenv(EnvS3SecretKey),
		Bucket:    os.Getenv(EnvS3Bucket),
		Prefix:    os.Getenv(EnvS3Prefix),
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	return cfg
}

// LogLevelFromEnv returns the level named by IMAGE_TILER_LOG_LEVEL, or Warn.
func LogLevelFromEnv() logging.Level {
	return logging.ParseLevel(os.Getenv(EnvLogLevel))
}
