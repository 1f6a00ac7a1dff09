// Package vulnreport implements a social-vulnerability analysis pipeline for
// student-aid survey data.
//
// The pipeline is strictly linear. Each stage consumes the immutable output
// of the previous stage and produces a new artifact:
//
//	┌──────────┐   ┌─────────┐   ┌────────────┐   ┌───────────────┐
//	│ dataset  │ → │ scoring │ → │ similarity │ → │graphclustering│
//	│ (xlsx)   │   │ (index) │   │  (graph)   │   │ (communities) │
//	└──────────┘   └─────────┘   └────────────┘   └───────┬───────┘
//	                                                      ↓
//	                                  ┌───────────┐   ┌─────────┐
//	                                  │  report   │ ← │aggregate│
//	                                  │ (CSV/PDF) │   │ (stats) │
//	                                  └───────────┘   └─────────┘
//
// Respondents are scored on a vulnerability index by banded rules over
// income, housing, expenses and assets, grouped by Gower similarity into a
// weighted undirected graph, and partitioned into communities by greedy
// modularity maximization. Per-community statistics are written to CSV and
// a paginated PDF report.
//
// # Package Layout
//
//   - config: run configuration passed explicitly into every stage
//   - errors: classified error handling (invalid/fatal/degraded)
//   - dataset: workbook loading, column validation, type coercion
//   - scoring: vulnerability index rulesets
//   - similarity: Gower dissimilarity and similarity-graph construction
//   - pkg/graphclustering: greedy modularity community detection
//   - aggregate: per-community descriptive statistics
//   - report: chart rendering, CSV and PDF output
//   - pipeline: stage orchestration
//
// # Scale
//
// The similarity stage computes a dense N×N matrix; the module targets
// survey cohorts of a few hundred respondents, not large graphs.
package vulnreport
