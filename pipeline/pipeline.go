// Package pipeline runs the full survey analysis as a linear sequence of
// stages: load, score, similarity graph, community detection, aggregation
// and reporting. Each run gets a fresh ID and per-stage duration logging;
// stages share no mutable state beyond the values passed between them.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/aggregate"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/config"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/dataset"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/errors"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/pkg/graphclustering"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/report"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/scoring"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/similarity"
)

// Pipeline wires the analysis stages together for one configuration.
type Pipeline struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
}

// Result carries the outputs of one pipeline run.
type Result struct {
	// RunID identifies the run in logs
	RunID string

	// Respondents is the cohort size after filtering
	Respondents int

	// Edges is the similarity graph edge count
	Edges int

	// Communities is the number of detected groups
	Communities int

	// Modularity of the chosen partition
	Modularity float64

	// Membership maps respondent position to community label
	Membership []int

	// Summary holds the per-group statistics written to the CSV
	Summary *aggregate.Summary

	// Top lists the most vulnerable respondents in the report
	Top []aggregate.RankedRespondent
}

// New validates the configuration and builds a pipeline.
func New(cfg config.Config, logger *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, logger: logger, out: os.Stdout}, nil
}

// WithOutput redirects the stdout summary table, mainly for tests.
func (p *Pipeline) WithOutput(w io.Writer) *Pipeline {
	p.out = w
	return p
}

// Run executes every stage and writes the CSV and PDF outputs. The context
// bounds community detection, the only stage whose cost grows faster than
// the cohort size.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	start := time.Now()

	logger.Info("Pipeline starting",
		"input", p.cfg.InputPath,
		"sheet", p.cfg.SheetName,
		"ruleset", p.cfg.Ruleset)

	scorer, err := scoring.NewScorer(p.cfg)
	if err != nil {
		return nil, err
	}

	table, err := p.loadStage(logger, scorer.Schema())
	if err != nil {
		return nil, err
	}

	stage := time.Now()
	indices := scorer.ScoreAll(table)
	logger.Info("Scoring finished", "respondents", len(indices), "duration", time.Since(stage))

	graph := p.graphStage(logger, table)

	detection, err := p.detectStage(ctx, logger, graph)
	if err != nil {
		return nil, err
	}

	summary, err := aggregate.Summarize(indices, detection.Membership, detection.CommunityCount)
	if err != nil {
		return nil, err
	}
	top := aggregate.TopN(table, indices, detection.Membership, p.cfg.TopN)

	if err := p.reportStage(logger, runID, graph, detection, summary, top); err != nil {
		return nil, err
	}

	logger.Info("Pipeline finished",
		"respondents", table.Len(),
		"communities", detection.CommunityCount,
		"modularity", detection.Modularity,
		"duration", time.Since(start))

	return &Result{
		RunID:       runID,
		Respondents: table.Len(),
		Edges:       len(graph.Edges),
		Communities: detection.CommunityCount,
		Modularity:  detection.Modularity,
		Membership:  detection.Membership,
		Summary:     summary,
		Top:         top,
	}, nil
}

// loadStage reads the workbook and applies the optional income filter.
func (p *Pipeline) loadStage(logger *slog.Logger, schema dataset.Schema) (*dataset.Table, error) {
	stage := time.Now()
	table, err := dataset.NewLoader(logger).Load(p.cfg.InputPath, p.cfg.SheetName, schema)
	if err != nil {
		return nil, err
	}

	if p.cfg.IncomeFilterMultiple > 0 {
		limit := p.cfg.IncomeFilterMultiple * p.cfg.MinimumWage
		before := table.Len()
		table = table.FilterIncome(limit)
		logger.Info("Income filter applied",
			"limit", limit,
			"kept", table.Len(),
			"dropped", before-table.Len())
		if table.Len() == 0 {
			return nil, errors.WrapInvalid(errors.ErrEmptyDataset, "Pipeline", "loadStage", "apply income filter")
		}
	}

	logger.Info("Load finished", "respondents", table.Len(), "duration", time.Since(stage))
	return table, nil
}

// graphStage computes the Gower matrix and thresholds it into a graph.
func (p *Pipeline) graphStage(logger *slog.Logger, table *dataset.Table) *similarity.Graph {
	stage := time.Now()
	matrix := similarity.Gower(table)
	graph := similarity.NewBuilder(p.cfg.SimilarityThreshold, logger).Build(matrix)
	logger.Info("Similarity graph built",
		"nodes", graph.N,
		"edges", len(graph.Edges),
		"duration", time.Since(stage))
	return graph
}

// detectStage runs fast-greedy community detection on the graph.
func (p *Pipeline) detectStage(
	ctx context.Context,
	logger *slog.Logger,
	graph *similarity.Graph,
) (*graphclustering.Result, error) {
	stage := time.Now()

	detection, err := graphclustering.NewDetector(logger).Detect(ctx, graph.N, graph.Weighted)
	if err != nil {
		return nil, err
	}

	logger.Info("Communities detected",
		"communities", detection.CommunityCount,
		"modularity", detection.Modularity,
		"duration", time.Since(stage))
	return detection, nil
}

// reportStage writes the CSV, the PDF and the stdout summary.
func (p *Pipeline) reportStage(
	logger *slog.Logger,
	runID string,
	graph *similarity.Graph,
	detection *graphclustering.Result,
	summary *aggregate.Summary,
	top []aggregate.RankedRespondent,
) error {
	stage := time.Now()
	reporter := report.NewReporter(p.cfg, logger).WithRunID(runID)

	if err := reporter.WriteCSV(summary); err != nil {
		return err
	}
	if err := reporter.WritePDF(graph, detection, summary, top); err != nil {
		return err
	}
	reporter.PrintSummary(p.out, summary)

	logger.Info("Reports written",
		"csv", p.cfg.OutputCSV,
		"pdf", p.cfg.OutputPDF,
		"duration", time.Since(stage))
	return nil
}
