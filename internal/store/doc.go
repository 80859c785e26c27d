// Package store persists extracted tiles.
//
// Two stores are provided: Dir for a local directory and S3 for an
// S3-compatible bucket. SaveAll drives either one and halts on the first
// failed write.
//
// # Naming
//
// Tiles are named "<base>_<row>_<col><ext>" after the source image. When a
// tile carries a cluster label the name gains a "<label>/" prefix, which Dir
// maps to a sub-directory and S3 to a key prefix.
package store
