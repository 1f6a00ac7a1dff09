// Package aggregate computes per-community descriptive statistics of the
// vulnerability index and ranks the most vulnerable respondents.
package aggregate

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/dataset"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/errors"
)

// GroupStat summarizes one community's vulnerability indices.
type GroupStat struct {
	// Label is the community label from detection
	Label int

	// Mean of the vulnerability index over the group
	Mean float64

	// StdDev is the sample standard deviation; 0 for groups of size 1
	StdDev float64

	// Count is the group size
	Count int
}

// Summary holds the statistics for every community, in label order.
type Summary struct {
	Groups []GroupStat

	// Total is the respondent count across all groups
	Total int
}

// Summarize groups the indices by community membership. Membership labels
// must be dense (0..count-1) as produced by detection.
func Summarize(indices []int, membership []int, communityCount int) (*Summary, error) {
	if len(indices) != len(membership) {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %d indices for %d membership labels", errors.ErrInvalidData, len(indices), len(membership)),
			"Aggregator", "Summarize", "check input lengths")
	}

	byGroup := make([][]float64, communityCount)
	for i, label := range membership {
		if label < 0 || label >= communityCount {
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: membership label %d outside [0,%d)", errors.ErrInvalidData, label, communityCount),
				"Aggregator", "Summarize", "check membership labels")
		}
		byGroup[label] = append(byGroup[label], float64(indices[i]))
	}

	summary := &Summary{
		Groups: make([]GroupStat, communityCount),
		Total:  len(indices),
	}
	for label, values := range byGroup {
		gs := GroupStat{Label: label, Count: len(values)}
		if len(values) > 0 {
			gs.Mean = stat.Mean(values, nil)
		}
		// Sample standard deviation is undefined for a single value;
		// report 0 rather than NaN
		if len(values) > 1 {
			gs.StdDev = stat.StdDev(values, nil)
		}
		summary.Groups[label] = gs
	}

	return summary, nil
}

// RankedRespondent is one row of the most-vulnerable table.
type RankedRespondent struct {
	// Position is the 1-based rank
	Position int

	// ID is the respondent identifier from the dataset
	ID string

	// Row is the 1-based sheet row
	Row int

	// Index is the vulnerability index
	Index int

	// Group is the community label
	Group int
}

// TopN returns the n most vulnerable respondents, index descending, stable
// by table order for equal indices.
func TopN(table *dataset.Table, indices []int, membership []int, n int) []RankedRespondent {
	ranked := make([]RankedRespondent, 0, table.Len())
	for i, r := range table.Respondents {
		ranked = append(ranked, RankedRespondent{
			ID:    r.ID,
			Row:   r.Row,
			Index: indices[i],
			Group: membership[i],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Index > ranked[j].Index
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	for i := range ranked {
		ranked[i].Position = i + 1
	}
	return ranked
}
