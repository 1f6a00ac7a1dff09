package config

import (
	"fmt"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/errors"
)

// Ruleset names accepted by the scoring stage.
const (
	RulesetSurvey2018 = "survey2018"
	RulesetCapped     = "capped"
)

// Default values matching the 2018 student-aid survey analysis.
const (
	DefaultSheetName           = "2018"
	DefaultSimilarityThreshold = 0.5
	DefaultMinimumWage         = 1518.0
	DefaultTopN                = 10
	DefaultLayoutSeed          = 42
	DefaultIndexCap            = 100
)

// Config carries every tunable of a pipeline run. It is passed explicitly
// into each stage; there is no module-level state.
type Config struct {
	// InputPath is the .xlsx workbook containing the survey responses
	InputPath string

	// SheetName is the workbook sheet to load
	SheetName string

	// OutputCSV is the destination for per-group statistics
	OutputCSV string

	// OutputPDF is the destination for the paginated report
	OutputPDF string

	// Ruleset selects the scoring rules: "survey2018" (uncapped) or
	// "capped" (clipped at IndexCap)
	Ruleset string

	// SimilarityThreshold is the minimum Gower similarity for an edge
	SimilarityThreshold float64

	// MinimumWage anchors the income scoring bands
	MinimumWage float64

	// IndexCap is the maximum index value under the capped ruleset
	IndexCap int

	// TopN is the size of the most-vulnerable table in the report
	TopN int

	// LayoutSeed seeds the graph layout so renders are reproducible
	LayoutSeed int64

	// IncomeFilterMultiple drops respondents whose per-capita income
	// exceeds this multiple of MinimumWage before scoring; 0 disables
	// the filter
	IncomeFilterMultiple float64
}

// Default returns the configuration used by the 2018 survey analysis.
func Default() Config {
	return Config{
		SheetName:           DefaultSheetName,
		OutputCSV:           "stats_fastgreedy.csv",
		OutputPDF:           "relatorio_fastgreedy.pdf",
		Ruleset:             RulesetSurvey2018,
		SimilarityThreshold: DefaultSimilarityThreshold,
		MinimumWage:         DefaultMinimumWage,
		IndexCap:            DefaultIndexCap,
		TopN:                DefaultTopN,
		LayoutSeed:          DefaultLayoutSeed,
	}
}

// Validate checks the configuration before the pipeline starts. All
// violations are reported as invalid-class errors so the run fails fast
// with a descriptive message.
func (c Config) Validate() error {
	if c.InputPath == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "check input path")
	}
	if c.SheetName == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "check sheet name")
	}
	if c.OutputCSV == "" || c.OutputPDF == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "check output paths")
	}
	if c.Ruleset != RulesetSurvey2018 && c.Ruleset != RulesetCapped {
		return errors.WrapInvalid(
			fmt.Errorf("%w: unknown ruleset %q", errors.ErrInvalidConfig, c.Ruleset),
			"Config", "Validate", "check ruleset")
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: similarity threshold %v outside [0,1]", errors.ErrInvalidConfig, c.SimilarityThreshold),
			"Config", "Validate", "check similarity threshold")
	}
	if c.MinimumWage <= 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: minimum wage %v must be positive", errors.ErrInvalidConfig, c.MinimumWage),
			"Config", "Validate", "check minimum wage")
	}
	if c.IndexCap <= 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: index cap %d must be positive", errors.ErrInvalidConfig, c.IndexCap),
			"Config", "Validate", "check index cap")
	}
	if c.TopN <= 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: top-N %d must be positive", errors.ErrInvalidConfig, c.TopN),
			"Config", "Validate", "check top-N")
	}
	if c.IncomeFilterMultiple < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("%w: income filter multiple %v must not be negative", errors.ErrInvalidConfig, c.IncomeFilterMultiple),
			"Config", "Validate", "check income filter")
	}
	return nil
}
