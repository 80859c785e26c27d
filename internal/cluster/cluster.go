package cluster

import (
	"errors"
	"fmt"

	"github.com/muesli/clusters"

	"github.com/ironsheep/image-tiler/internal/logging"
	"github.com/ironsheep/image-tiler/internal/tiling"
)

// ErrOutOfOrder is returned when tiles are not in ascending id order
// starting at zero. Labels are mapped back to tiles by position, so the
// clusterer is never run on such input.
var ErrOutOfOrder = errors.New("tile list is out of order")

// Vector is one tile's pixels, flattened row by row as R,G,B,R,G,B,...
type Vector struct {
	ID     int
	Values []float64
}

// Clusterer groups vectors into k clusters and returns one label per vector,
// in input order.
type Clusterer interface {
	Cluster(vectors []Vector, k int) ([]int, error)
}

// Vectors flattens tiles into channel-interleaved pixel vectors of length
// 3·w·h. It fails with ErrOutOfOrder unless tile i has id i.
func Vectors(tiles []*tiling.Tile) ([]Vector, error) {
	vectors := make([]Vector, 0, len(tiles))
	for i, t := range tiles {
		if t.ID != i {
			return nil, fmt.Errorf("tile at position %d has id %d: %w", i, t.ID, ErrOutOfOrder)
		}
		s := t.Surface
		values := make([]float64, 0, 3*s.Width()*s.Height())
		for y := 0; y < s.Height(); y++ {
			for x := 0; x < s.Width(); x++ {
				c := s.At(x, y)
				values = append(values, float64(c.R), float64(c.G), float64(c.B))
			}
		}
		vectors = append(vectors, Vector{ID: t.ID, Values: values})
	}
	return vectors, nil
}

// Assign clusters tiles into k groups and records each tile's label.
//
// Nothing happens for k < 2 or an empty tile list. A k larger than the number
// of tiles is lowered to the tile count with a warning.
func Assign(tiles []*tiling.Tile, k int, c Clusterer, log logging.Logger) error {
	if len(tiles) == 0 || k < 2 {
		return nil
	}
	vectors, err := Vectors(tiles)
	if err != nil {
		return err
	}
	if k > len(tiles) {
		logging.Logf(log, logging.Warn, "%d clusters requested for %d tiles, using %d", k, len(tiles), len(tiles))
		k = len(tiles)
	}

	labels, err := c.Cluster(vectors, k)
	if err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}
	if len(labels) != len(tiles) {
		return fmt.Errorf("clusterer returned %d labels for %d tiles", len(labels), len(tiles))
	}
	for i, l := range labels {
		tiles[i].SetLabel(l)
	}
	return nil
}

// maxIterations bounds the Lloyd loop, as muesli/kmeans does.
const maxIterations = 96

// KMeans clusters raw, unnormalized channel values with k-means.
//
// The result is reproducible: centroids are seeded from k distinct vectors
// spaced evenly in id order, ties go to the lowest cluster index, and labels
// are numbered by first occurrence.
type KMeans struct{}

// Cluster partitions the vectors and labels each with its nearest centroid.
func (KMeans) Cluster(vectors []Vector, k int) ([]int, error) {
	if k < 1 || k > len(vectors) {
		return nil, fmt.Errorf("cannot form %d clusters from %d vectors", k, len(vectors))
	}
	dataset := make(clusters.Observations, len(vectors))
	for i, v := range vectors {
		dataset[i] = clusters.Coordinates(v.Values)
	}

	cc := seed(dataset, k)
	labels := make([]int, len(dataset))
	for i := range labels {
		labels[i] = -1
	}
	for iter := 0; iter < maxIterations; iter++ {
		cc.Reset()
		changes := 0
		for p, o := range dataset {
			ci := cc.Nearest(o)
			cc[ci].Append(o)
			if labels[p] != ci {
				labels[p] = ci
				changes++
			}
		}
		if changes == 0 {
			break
		}
		// An empty cluster keeps its previous center.
		cc.Recenter()
	}
	return renumber(labels), nil
}

// seed picks up to k distinct observations as initial centers. Candidate i
// starts at position i·n/k and moves forward past duplicates of centers
// already chosen. Fewer than k centers are returned when the data holds
// fewer distinct vectors.
func seed(dataset clusters.Observations, k int) clusters.Clusters {
	n := len(dataset)
	var cc clusters.Clusters
	for i := 0; i < k; i++ {
		for j := 0; j < n; j++ {
			c := dataset[(i*n/k+j)%n].Coordinates()
			if !hasCenter(cc, c) {
				cc = append(cc, clusters.Cluster{Center: append(clusters.Coordinates(nil), c...)})
				break
			}
		}
	}
	return cc
}

func hasCenter(cc clusters.Clusters, c clusters.Coordinates) bool {
	for _, cl := range cc {
		if cl.Center.Distance(c) == 0 {
			return true
		}
	}
	return false
}

// renumber relabels clusters 0, 1, 2, ... in order of first appearance.
func renumber(labels []int) []int {
	ids := make(map[int]int)
	out := make([]int, len(labels))
	for i, l := range labels {
		id, ok := ids[l]
		if !ok {
			id = len(ids)
			ids[l] = id
		}
		out[i] = id
	}
	return out
}
