package similarity

import (
	"log/slog"

	"gonum.org/v1/gonum/graph/simple"
)

// Edge is one similarity edge between respondents I < J.
type Edge struct {
	I, J   int
	Weight float64
}

// Graph is the thresholded similarity graph: one node per respondent
// (node ID = row index), an edge wherever similarity meets the threshold,
// edge weight = similarity. Undirected, no self-loops, no multi-edges.
type Graph struct {
	// Weighted is the underlying gonum graph
	Weighted *simple.WeightedUndirectedGraph

	// N is the respondent count, including isolated nodes
	N int

	// Edges lists the edges in pair order (i ascending, then j)
	Edges []Edge
}

// Builder constructs similarity graphs from a matrix.
type Builder struct {
	threshold float64
	logger    *slog.Logger
}

// NewBuilder creates a graph builder with the given similarity threshold.
func NewBuilder(threshold float64, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{threshold: threshold, logger: logger}
}

// Build thresholds the similarity matrix into a weighted undirected graph.
// Identical respondents (similarity 1.0) always get an edge; pairs below
// the threshold get none. Every respondent becomes a node even when
// isolated.
func (b *Builder) Build(m *Matrix) *Graph {
	n := m.Len()
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}

	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := m.At(i, j)
			if sim < b.threshold {
				continue
			}
			g.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(i),
				T: simple.Node(j),
				W: sim,
			})
			edges = append(edges, Edge{I: i, J: j, Weight: sim})
		}
	}

	b.logger.Info("Built similarity graph",
		"nodes", n,
		"edges", len(edges),
		"threshold", b.threshold)

	return &Graph{Weighted: g, N: n, Edges: edges}
}

// Weights returns the edge weights parallel to Edges.
func (g *Graph) Weights() []float64 {
	weights := make([]float64, len(g.Edges))
	for i, e := range g.Edges {
		weights[i] = e.Weight
	}
	return weights
}

// TotalWeight returns the sum of all edge weights.
func (g *Graph) TotalWeight() float64 {
	var total float64
	for _, e := range g.Edges {
		total += e.Weight
	}
	return total
}
