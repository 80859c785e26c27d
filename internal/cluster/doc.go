// Package cluster groups visually similar tiles.
//
// The grouping itself is delegated to a Clusterer; KMeans is the default and
// runs Lloyd's algorithm on github.com/muesli/clusters over raw 0-255 channel
// values with no feature scaling. It is seeded deterministically, so the same
// tiles always get the same labels. Assign validates tile order before any clusterer is invoked, since
// labels are matched to tiles by index.
package cluster
