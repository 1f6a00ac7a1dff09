package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/config"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	InputPath            string
	SheetName            string
	OutputCSV            string
	OutputPDF            string
	Ruleset              string
	Threshold            float64
	MinimumWage          float64
	TopN                 int
	LayoutSeed           int64
	IncomeFilterMultiple float64
	LogLevel             string
	LogFormat            string
	Debug                bool
	ShowVersion          bool
	ShowHelp             bool
	Validate             bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}
	defaults := config.Default()

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.InputPath, "input",
		envString("VULNREPORT_INPUT", ""),
		"Path to the survey .xlsx workbook (env: VULNREPORT_INPUT)")

	flag.StringVar(&cfg.InputPath, "i",
		envString("VULNREPORT_INPUT", ""),
		"Path to the survey .xlsx workbook (env: VULNREPORT_INPUT)")

	flag.StringVar(&cfg.SheetName, "sheet",
		envString("VULNREPORT_SHEET", defaults.SheetName),
		"Workbook sheet to analyze (env: VULNREPORT_SHEET)")

	flag.StringVar(&cfg.OutputCSV, "out-csv",
		envString("VULNREPORT_OUT_CSV", defaults.OutputCSV),
		"Destination for the group statistics CSV (env: VULNREPORT_OUT_CSV)")

	flag.StringVar(&cfg.OutputPDF, "out-pdf",
		envString("VULNREPORT_OUT_PDF", defaults.OutputPDF),
		"Destination for the PDF report (env: VULNREPORT_OUT_PDF)")

	flag.StringVar(&cfg.Ruleset, "ruleset",
		envString("VULNREPORT_RULESET", defaults.Ruleset),
		"Scoring ruleset: survey2018, capped (env: VULNREPORT_RULESET)")

	flag.Float64Var(&cfg.Threshold, "threshold",
		envParsed("VULNREPORT_THRESHOLD", parseFloat, defaults.SimilarityThreshold),
		"Minimum Gower similarity for a graph edge (env: VULNREPORT_THRESHOLD)")

	flag.Float64Var(&cfg.MinimumWage, "minimum-wage",
		envParsed("VULNREPORT_MINIMUM_WAGE", parseFloat, defaults.MinimumWage),
		"Minimum wage anchoring the income bands (env: VULNREPORT_MINIMUM_WAGE)")

	flag.IntVar(&cfg.TopN, "top",
		envParsed("VULNREPORT_TOP", strconv.Atoi, defaults.TopN),
		"Size of the most-vulnerable table in the report (env: VULNREPORT_TOP)")

	flag.Int64Var(&cfg.LayoutSeed, "layout-seed",
		envParsed("VULNREPORT_LAYOUT_SEED", parseInt64, defaults.LayoutSeed),
		"Seed for the graph layout (env: VULNREPORT_LAYOUT_SEED)")

	flag.Float64Var(&cfg.IncomeFilterMultiple, "income-filter",
		envParsed("VULNREPORT_INCOME_FILTER", parseFloat, 0),
		"Drop respondents above this multiple of the minimum wage, 0 disables (env: VULNREPORT_INCOME_FILTER)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		envString("VULNREPORT_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: VULNREPORT_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		envString("VULNREPORT_LOG_FORMAT", "text"),
		"Log format: json, text (env: VULNREPORT_LOG_FORMAT)")

	flag.BoolVar(&cfg.Debug, "debug",
		envParsed("VULNREPORT_DEBUG", strconv.ParseBool, false),
		"Enable debug mode (env: VULNREPORT_DEBUG)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	// Override log level if debug is set
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.InputPath == "" {
		return fmt.Errorf("missing required -input flag")
	}
	if _, err := os.Stat(cfg.InputPath); err != nil {
		return fmt.Errorf("input workbook not found: %s", cfg.InputPath)
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	if !slices.Contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

// pipelineConfig maps the CLI flags onto a pipeline configuration.
func (cfg *CLIConfig) pipelineConfig() config.Config {
	pc := config.Default()
	pc.InputPath = cfg.InputPath
	pc.SheetName = cfg.SheetName
	pc.OutputCSV = cfg.OutputCSV
	pc.OutputPDF = cfg.OutputPDF
	pc.Ruleset = cfg.Ruleset
	pc.SimilarityThreshold = cfg.Threshold
	pc.MinimumWage = cfg.MinimumWage
	pc.TopN = cfg.TopN
	pc.LayoutSeed = cfg.LayoutSeed
	pc.IncomeFilterMultiple = cfg.IncomeFilterMultiple
	return pc
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Social Vulnerability Survey Analysis

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Analyze the 2018 sheet of a survey workbook
  %s --input=survey.xlsx

  # Use the capped ruleset with a stricter similarity threshold
  %s --input=survey.xlsx --ruleset=capped --threshold=0.7

  # Run with environment variables
  export VULNREPORT_INPUT=/data/survey.xlsx
  export VULNREPORT_LOG_LEVEL=debug
  %s

  # Validate configuration only
  %s --input=survey.xlsx --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// envString returns the environment value for key, or def when unset.
func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envParsed returns the parsed environment value for key, or def when the
// variable is unset or does not parse.
func envParsed[T any](key string, parse func(string) (T, error), def T) T {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := parse(v)
	if err != nil {
		return def
	}
	return parsed
}

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
func parseInt64(s string) (int64, error)   { return strconv.ParseInt(s, 10, 64) }
