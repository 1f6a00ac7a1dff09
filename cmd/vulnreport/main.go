// Package main implements the entry point for the vulnerability report
// generator. It analyzes a socioeconomic survey workbook, groups similar
// respondents by community detection on a Gower similarity graph, and writes
// a statistics CSV plus a PDF report.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/pipeline"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "vulnreport"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Analysis failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	cfg := cliCfg.pipelineConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	slog.Info("Starting vulnerability analysis",
		"version", Version,
		"build_time", BuildTime,
		"input", cfg.InputPath,
		"sheet", cfg.SheetName)

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	slog.Info("Analysis complete",
		"respondents", result.Respondents,
		"communities", result.Communities,
		"modularity", result.Modularity,
		"csv", cfg.OutputCSV,
		"pdf", cfg.OutputPDF)
	return nil
}
