// Package similarity builds the respondent similarity graph: a dense Gower
// similarity matrix over mixed numeric and categorical attributes,
// thresholded into a weighted undirected graph.
//
// Both the matrix and the pair loop are O(N²); the package targets survey
// cohorts of a few hundred respondents.
package similarity

import (
	"math"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/dataset"
)

// Matrix is a symmetric N×N similarity matrix with a unit diagonal.
type Matrix struct {
	n    int
	vals [][]float64
}

// Len returns the matrix dimension.
func (m *Matrix) Len() int {
	return m.n
}

// At returns the similarity between respondents i and j in [0,1].
func (m *Matrix) At(i, j int) float64 {
	return m.vals[i][j]
}

// Gower computes pairwise similarity as 1 − Gower dissimilarity over the
// table's attributes. Numeric attributes contribute |xi−xj| scaled by the
// column range; categorical attributes contribute 0 for equal values and 1
// otherwise. Identifier columns are excluded. Attributes missing on either
// side are skipped and the denominator reduced; a pair with no comparable
// attributes gets similarity 0.
//
// The vulnerability index is not a table column, so it never enters the
// similarity computation.
func Gower(t *dataset.Table) *Matrix {
	n := t.Len()
	ranges := numericRanges(t)

	vals := make([][]float64, n)
	for i := range vals {
		vals[i] = make([]float64, n)
		vals[i][i] = 1.0
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := pairSimilarity(t, ranges, i, j)
			vals[i][j] = sim
			vals[j][i] = sim
		}
	}

	return &Matrix{n: n, vals: vals}
}

// numericRanges computes max−min per numeric column over present values.
func numericRanges(t *dataset.Table) map[string]float64 {
	ranges := make(map[string]float64)
	for _, col := range t.Schema.Columns {
		if col.Kind != dataset.Numeric || col.Identifier {
			continue
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, r := range t.Respondents {
			v, ok := r.Number(col.Name)
			if !ok {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if hi > lo {
			ranges[col.Name] = hi - lo
		}
		// Constant or empty columns keep range 0 and contribute no
		// dissimilarity
	}
	return ranges
}

func pairSimilarity(t *dataset.Table, ranges map[string]float64, i, j int) float64 {
	ri, rj := t.Respondents[i], t.Respondents[j]

	var dissim float64
	fields := 0

	for _, col := range t.Schema.Columns {
		if col.Identifier {
			continue
		}

		if col.Kind == dataset.Categorical {
			if ri.Text(col.Name) != rj.Text(col.Name) {
				dissim += 1.0
			}
			fields++
			continue
		}

		vi, okI := ri.Number(col.Name)
		vj, okJ := rj.Number(col.Name)
		if !okI || !okJ {
			continue
		}
		if rng := ranges[col.Name]; rng > 0 {
			dissim += math.Abs(vi-vj) / rng
		}
		fields++
	}

	if fields == 0 {
		return 0
	}
	return 1.0 - dissim/float64(fields)
}
