package graphclustering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/errors"
)

type testEdge struct {
	u, v int
	w    float64
}

func buildGraph(n int, edges []testEdge) *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for _, e := range edges {
		g.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(e.u),
			T: simple.Node(e.v),
			W: e.w,
		})
	}
	return g
}

// barbell builds two triangles joined by a weak bridge.
func barbell() (int, *simple.WeightedUndirectedGraph) {
	return 6, buildGraph(6, []testEdge{
		{0, 1, 1}, {0, 2, 1}, {1, 2, 1},
		{3, 4, 1}, {3, 5, 1}, {4, 5, 1},
		{2, 3, 0.1},
	})
}

func TestDetectBarbell(t *testing.T) {
	n, g := barbell()

	result, err := NewDetector(nil).Detect(context.Background(), n, g)
	require.NoError(t, err)

	assert.Equal(t, 2, result.CommunityCount)
	// Labels number by first appearance in node order
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, result.Membership)
	assert.InDelta(t, 0.4836, result.Modularity, 5e-4)

	require.Len(t, result.Communities, 2)
	assert.Equal(t, []int{0, 1, 2}, result.Communities[0].Members)
	assert.Equal(t, []int{3, 4, 5}, result.Communities[1].Members)
}

func TestDetectPartitionIsDisjointAndExhaustive(t *testing.T) {
	n, g := barbell()

	result, err := NewDetector(nil).Detect(context.Background(), n, g)
	require.NoError(t, err)

	require.Len(t, result.Membership, n)
	seen := make(map[int]bool)
	total := 0
	for _, c := range result.Communities {
		for _, node := range c.Members {
			assert.False(t, seen[node], "node %d assigned twice", node)
			seen[node] = true
			total++
		}
	}
	assert.Equal(t, n, total)
}

// The detector's incremental modularity must agree with gonum's community.Q
// on the same graph and partition.
func TestDetectModularityMatchesGonumQ(t *testing.T) {
	n, g := barbell()

	result, err := NewDetector(nil).Detect(context.Background(), n, g)
	require.NoError(t, err)

	assert.InDelta(t, Modularity(g, result.Membership), result.Modularity, 1e-9)
}

func TestDetectEdgelessGraph(t *testing.T) {
	result, err := NewDetector(nil).Detect(context.Background(), 4, buildGraph(4, nil))
	require.NoError(t, err)

	assert.Equal(t, 4, result.CommunityCount)
	assert.Equal(t, []int{0, 1, 2, 3}, result.Membership)
	assert.Zero(t, result.Modularity)
}

func TestDetectEmptyGraph(t *testing.T) {
	result, err := NewDetector(nil).Detect(context.Background(), 0, buildGraph(0, nil))
	require.NoError(t, err)

	assert.Zero(t, result.CommunityCount)
	assert.Empty(t, result.Membership)
}

func TestDetectSingleEdge(t *testing.T) {
	g := buildGraph(2, []testEdge{{0, 1, 0.9}})

	result, err := NewDetector(nil).Detect(context.Background(), 2, g)
	require.NoError(t, err)

	// Merging the pair beats the singleton partition's negative modularity
	assert.Equal(t, 1, result.CommunityCount)
	assert.Equal(t, []int{0, 0}, result.Membership)
	assert.InDelta(t, 0.0, result.Modularity, 1e-9)
}

func TestDetectDisjointPairs(t *testing.T) {
	g := buildGraph(4, []testEdge{
		{0, 1, 1},
		{2, 3, 1},
	})

	result, err := NewDetector(nil).Detect(context.Background(), 4, g)
	require.NoError(t, err)

	assert.Equal(t, 2, result.CommunityCount)
	assert.Equal(t, []int{0, 0, 1, 1}, result.Membership)
	assert.InDelta(t, 0.5, result.Modularity, 1e-9)
}

func TestDetectIsolatedNodeStaysSingleton(t *testing.T) {
	g := buildGraph(4, []testEdge{
		{0, 1, 1},
		{1, 2, 1},
		{0, 2, 1},
	})

	result, err := NewDetector(nil).Detect(context.Background(), 4, g)
	require.NoError(t, err)

	assert.Equal(t, 2, result.CommunityCount)
	assert.Equal(t, []int{0, 0, 0, 1}, result.Membership)
}

// A 4-cycle with uniform weights has symmetric merge candidates at every
// step; the lowest-pair tie-break must make repeated runs identical even
// though the graph's edge iteration order is randomized.
func TestDetectDeterministicUnderTies(t *testing.T) {
	edges := []testEdge{
		{0, 1, 1},
		{1, 2, 1},
		{2, 3, 1},
		{3, 0, 1},
	}

	first, err := NewDetector(nil).Detect(context.Background(), 4, buildGraph(4, edges))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := NewDetector(nil).Detect(context.Background(), 4, buildGraph(4, edges))
		require.NoError(t, err)
		assert.Equal(t, first.Membership, again.Membership)
		assert.Equal(t, first.Modularity, again.Modularity)
	}
}

func TestDetectIdempotent(t *testing.T) {
	n, g := barbell()
	detector := NewDetector(nil)

	first, err := detector.Detect(context.Background(), n, g)
	require.NoError(t, err)
	second, err := detector.Detect(context.Background(), n, g)
	require.NoError(t, err)

	assert.Equal(t, first.Membership, second.Membership)
	assert.Equal(t, first.Modularity, second.Modularity)
	assert.Equal(t, first.CommunityCount, second.CommunityCount)
}

// loopGraph injects a self-loop edge, which simple graphs cannot represent.
type loopGraph struct {
	*simple.WeightedUndirectedGraph
}

func (g loopGraph) WeightedEdges() graph.WeightedEdges {
	return iterator.NewOrderedWeightedEdges([]graph.WeightedEdge{
		simple.WeightedEdge{F: simple.Node(1), T: simple.Node(1), W: 1},
	})
}

func TestDetectRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		n    int
		g    WeightedGraph
	}{
		{"negative node count", -1, buildGraph(0, nil)},
		{"endpoint out of range", 2, buildGraph(2, []testEdge{{0, 5, 1}})},
		{"negative endpoint", 2, buildGraph(2, []testEdge{{-1, 1, 1}})},
		{"self-loop", 2, loopGraph{buildGraph(2, nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDetector(nil).Detect(context.Background(), tt.n, tt.g)
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestDetectContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, g := barbell()
	_, err := NewDetector(nil).Detect(ctx, n, g)
	require.Error(t, err)
}

func TestWithMaxMerges(t *testing.T) {
	d := NewDetector(nil).WithMaxMerges(0)
	assert.Equal(t, DefaultMaxMerges, d.maxMerges)

	d = NewDetector(nil).WithMaxMerges(3)
	assert.Equal(t, 3, d.maxMerges)
}

func TestModularityEdgeless(t *testing.T) {
	assert.Zero(t, Modularity(buildGraph(3, nil), []int{0, 1, 2}))
}
