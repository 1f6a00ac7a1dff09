package graphclustering

import (
	"gonum.org/v1/gonum/graph"
)

// WeightedGraph is the slice of a gonum weighted undirected graph the
// detector consumes. simple.WeightedUndirectedGraph satisfies it.
type WeightedGraph interface {
	graph.WeightedUndirected

	// WeightedEdges returns an iterator over every edge, each listed once.
	WeightedEdges() graph.WeightedEdges
}

// weightedEdge is one validated undirected edge by dense node index.
type weightedEdge struct {
	u, v int
	w    float64
}

// Community is a detected group of nodes.
type Community struct {
	// Label is the community number, assigned by first appearance in
	// node order
	Label int

	// Members contains the node indices belonging to this community,
	// ascending
	Members []int
}

// Result is the output of community detection over one graph.
type Result struct {
	// CommunityCount is the number of communities in the partition
	CommunityCount int

	// Modularity is the weighted modularity of the partition; 0 for an
	// edgeless graph
	Modularity float64

	// Membership holds one community label per node. Every node belongs
	// to exactly one community: the partition is disjoint and exhaustive.
	Membership []int

	// Communities lists the groups in label order
	Communities []Community
}

// buildCommunities derives the label-ordered community list from a
// membership slice whose labels are already numbered by first appearance.
func buildCommunities(membership []int, count int) []Community {
	communities := make([]Community, count)
	for label := range communities {
		communities[label].Label = label
	}
	for node, label := range membership {
		communities[label].Members = append(communities[label].Members, node)
	}
	return communities
}
