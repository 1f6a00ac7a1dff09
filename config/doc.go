// Package config provides run configuration for the vulnerability-report
// pipeline.
//
// Config is a plain value struct passed explicitly into every stage. The
// thresholds and paths that were once compile-time constants live here so
// tests can inject alternate values (a lower similarity threshold, a
// different minimum wage) without touching package state.
//
// # Basic Usage
//
//	cfg := config.Default()
//	cfg.InputPath = "Solicitantes de Auxílio Estudantil - 2018.xlsx"
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// There is no configuration file and no dynamic reconfiguration: the
// pipeline is a one-shot run, and the CLI flags in cmd/vulnreport are the
// only external input.
package config
