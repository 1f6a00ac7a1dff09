// Package errors provides standardized error handling patterns for the
// vulnerability-report pipeline.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Invalid (bad input or configuration, abort with a descriptive message),
// Fatal (unrecoverable, abort), and Degraded (the report substitutes an
// inline error message for the failed section and continues).
//
// The pipeline is fail-fast and never retries, so no retry machinery is
// carried here. Classification exists so the reporting stage can distinguish
// "this image failed to render" from "this run cannot continue".
//
// The classification system integrates with Go's standard error handling,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Quick Start
//
// Use standard error variables for known conditions:
//
//	if !columnPresent {
//	    return errors.ErrMissingColumn
//	}
//
// Wrap errors with component context:
//
//	if err := loader.Load(path); err != nil {
//	    return errors.WrapInvalid(err, "Loader", "Load", "read workbook")
//	}
//
// Check classification at the orchestration layer:
//
//	if err := stage(); err != nil {
//	    if errors.IsDegraded(err) {
//	        // Substitute inline error text in the report section
//	    } else {
//	        // Abort the run
//	    }
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: <cause>"
package errors
