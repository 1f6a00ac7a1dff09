// Package graphclustering partitions weighted undirected graphs into
// communities by greedy modularity maximization (Clauset-Newman-Moore
// agglomeration): every node starts in its own community, the pair of
// connected communities whose merge yields the largest modularity gain is
// merged repeatedly, and the dendrogram is cut at the level with the best
// modularity.
//
// Ties between candidate merges are broken by the lowest community-index
// pair, so detection is fully deterministic for a given graph. This is an
// implementation choice, not a property of the algorithm; tests pin it.
package graphclustering

import (
	"context"
	"log/slog"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/errors"
)

// DefaultMaxMerges bounds the merge loop; n-1 merges always suffice, the
// limit only guards against a malformed graph.
const DefaultMaxMerges = 1 << 20

// Detector runs greedy modularity community detection.
type Detector struct {
	maxMerges int
	logger    *slog.Logger
}

// NewDetector creates a fast-greedy community detector.
func NewDetector(logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		maxMerges: DefaultMaxMerges,
		logger:    logger,
	}
}

// WithMaxMerges bounds the number of agglomeration steps with validation.
func (d *Detector) WithMaxMerges(maxMerges int) *Detector {
	if maxMerges <= 0 {
		maxMerges = DefaultMaxMerges
	}
	d.maxMerges = maxMerges
	return d
}

// merge records one agglomeration step: community b merged into a (a < b).
type merge struct {
	a, b int
}

// Detect partitions the graph's n nodes, whose IDs must be dense in [0, n).
// An edgeless graph yields one community per node with modularity 0; it is
// never an error.
func (d *Detector) Detect(ctx context.Context, n int, g WeightedGraph) (*Result, error) {
	if n < 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "Detector", "Detect", "check node count")
	}

	edges, m, err := collectEdges(n, g)
	if err != nil {
		return nil, err
	}
	if n == 0 || m == 0 {
		return singletonResult(n), nil
	}

	st := newMergeState(n, edges, m)

	// Full agglomeration, tracking the best cut
	bestQ := st.q
	bestStep := 0
	merges := make([]merge, 0, n-1)

	for len(merges) < d.maxMerges {
		select {
		case <-ctx.Done():
			return nil, errors.WrapFatal(ctx.Err(), "Detector", "Detect", "context cancelled")
		default:
		}

		a, b, gain, ok := st.bestMerge()
		if !ok {
			// Only disconnected communities remain
			break
		}

		st.apply(a, b, gain)
		merges = append(merges, merge{a: a, b: b})

		if st.q > bestQ {
			bestQ = st.q
			bestStep = len(merges)
		}
	}

	membership, count := membershipAt(n, merges, bestStep)

	d.logger.Debug("Community detection finished",
		"nodes", n,
		"edges", len(edges),
		"merges", len(merges),
		"best_step", bestStep,
		"communities", count,
		"modularity", bestQ)

	return &Result{
		CommunityCount: count,
		Modularity:     bestQ,
		Membership:     membership,
		Communities:    buildCommunities(membership, count),
	}, nil
}

// collectEdges drains the graph's edge iterator, validating every endpoint.
// The agglomeration is order-independent, so the iterator's ordering does
// not matter.
func collectEdges(n int, g WeightedGraph) ([]weightedEdge, float64, error) {
	var (
		edges []weightedEdge
		m     float64
	)
	it := g.WeightedEdges()
	for it.Next() {
		e := it.WeightedEdge()
		u, v := int(e.From().ID()), int(e.To().ID())
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, 0, errors.WrapInvalid(errors.ErrInvalidData, "Detector", "Detect", "check edge endpoints")
		}
		if u == v {
			return nil, 0, errors.WrapInvalid(errors.ErrInvalidData, "Detector", "Detect", "reject self-loop")
		}
		edges = append(edges, weightedEdge{u: u, v: v, w: e.Weight()})
		m += e.Weight()
	}
	return edges, m, nil
}

// singletonResult puts every node in its own community.
func singletonResult(n int) *Result {
	membership := make([]int, n)
	for i := range membership {
		membership[i] = i
	}
	return &Result{
		CommunityCount: n,
		Modularity:     0,
		Membership:     membership,
		Communities:    buildCommunities(membership, n),
	}
}

// mergeState tracks the community aggregation during agglomeration.
type mergeState struct {
	m     float64           // total edge weight
	alive []bool            // community liveness, indexed by community
	inw   []float64         // internal edge weight per community
	tot   []float64         // total weighted degree per community
	adj   []map[int]float64 // between-community weight, symmetric
	q     float64           // modularity of the current partition
}

func newMergeState(n int, edges []weightedEdge, m float64) *mergeState {
	st := &mergeState{
		m:     m,
		alive: make([]bool, n),
		inw:   make([]float64, n),
		tot:   make([]float64, n),
		adj:   make([]map[int]float64, n),
	}
	for i := range st.alive {
		st.alive[i] = true
		st.adj[i] = make(map[int]float64)
	}
	for _, e := range edges {
		st.adj[e.u][e.v] += e.w
		st.adj[e.v][e.u] += e.w
		st.tot[e.u] += e.w
		st.tot[e.v] += e.w
	}

	// Singleton partition: Q = -Σ (tot_i / 2m)²
	for i := range st.tot {
		frac := st.tot[i] / (2 * m)
		st.q -= frac * frac
	}
	return st
}

// bestMerge scans all connected community pairs for the largest modularity
// gain. Equal gains resolve to the lowest (a, b) pair, so the scan order
// (and Go's randomized map iteration) never affects the outcome.
func (st *mergeState) bestMerge() (a, b int, gain float64, ok bool) {
	twoM := 2 * st.m
	for i := range st.adj {
		if !st.alive[i] {
			continue
		}
		for j, w := range st.adj[i] {
			if j <= i || !st.alive[j] {
				continue
			}
			dq := w/st.m - 2*st.tot[i]*st.tot[j]/(twoM*twoM)
			if !ok || dq > gain || (dq == gain && (i < a || (i == a && j < b))) {
				a, b, gain, ok = i, j, dq, true
			}
		}
	}
	return a, b, gain, ok
}

// apply merges community b into community a and updates the modularity.
func (st *mergeState) apply(a, b int, gain float64) {
	st.inw[a] += st.inw[b] + st.adj[a][b]
	st.tot[a] += st.tot[b]
	st.alive[b] = false

	delete(st.adj[a], b)
	delete(st.adj[b], a)
	for k, w := range st.adj[b] {
		st.adj[a][k] += w
		st.adj[k][a] += w
		delete(st.adj[k], b)
	}
	st.adj[b] = nil

	st.q += gain
}

// membershipAt replays the first step merges and labels communities by
// first appearance in node order.
func membershipAt(n int, merges []merge, step int) ([]int, int) {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for _, mg := range merges[:step] {
		parent[find(mg.b)] = find(mg.a)
	}

	labels := make(map[int]int)
	membership := make([]int, n)
	for node := 0; node < n; node++ {
		root := find(node)
		label, seen := labels[root]
		if !seen {
			label = len(labels)
			labels[root] = label
		}
		membership[node] = label
	}
	return membership, len(labels)
}

// Modularity computes the weighted modularity of an arbitrary partition of
// the graph, delegating to gonum's community.Q at resolution 1. Returns 0
// for an edgeless graph.
func Modularity(g WeightedGraph, membership []int) float64 {
	var m float64
	it := g.WeightedEdges()
	for it.Next() {
		m += it.WeightedEdge().Weight()
	}
	if m == 0 {
		return 0
	}

	count := 0
	for _, label := range membership {
		if label+1 > count {
			count = label + 1
		}
	}
	communities := make([][]graph.Node, count)
	for node, label := range membership {
		communities[label] = append(communities[label], simple.Node(node))
	}
	return community.Q(g, communities, 1)
}
