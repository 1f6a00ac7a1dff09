// Package report renders the analysis outputs.
//
// Three artifacts are produced from the pipeline results:
//
//   - a UTF-8 CSV (with byte order mark) of per-group statistics,
//   - a paginated PDF report embedding a bar chart of group means and a
//     force-directed picture of the similarity network,
//   - a plain-text summary table for stdout.
//
// Chart images are rendered into temporary PNG files, embedded into the
// PDF, and removed afterwards on a best-effort basis. A chart that fails to
// render degrades to an inline message in the PDF; it never aborts the run.
// The graph layout is seeded, so identical inputs yield an identical
// picture.
package report
