package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorInvalid represents errors due to invalid input or configuration
	ErrorInvalid ErrorClass = iota
	// ErrorFatal represents unrecoverable errors that should stop processing
	ErrorFatal
	// ErrorDegraded represents errors that degrade output (for example a
	// missing chart image) without aborting the run
	ErrorDegraded
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	case ErrorDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Input validation errors
	ErrSheetNotFound = errors.New("sheet not found in workbook")
	ErrMissingColumn = errors.New("required column not found")
	ErrMissingValues = errors.New("missing values in critical column")
	ErrEmptyDataset  = errors.New("dataset contains no respondents")
	ErrInvalidData   = errors.New("invalid data format")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("missing required configuration")

	// Reporting errors
	ErrRenderFailed = errors.New("image rendering failed")
	ErrWriteFailed  = errors.New("output write failed")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsInvalid checks if an error is due to invalid input or configuration
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	return errors.Is(err, ErrSheetNotFound) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrMissingValues) ||
		errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrInvalidData) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingConfig)
}

// IsFatal checks if an error is fatal and should stop processing
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	return errors.Is(err, ErrWriteFailed)
}

// IsDegraded checks if an error only degrades report output
func IsDegraded(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorDegraded
	}

	return errors.Is(err, ErrRenderFailed)
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if IsInvalid(err) {
		return ErrorInvalid
	}
	if IsDegraded(err) {
		return ErrorDegraded
	}
	// Unknown errors abort the run
	return ErrorFatal
}

// newClassified creates a new classified error
// This is an internal helper - use WrapInvalid(), WrapFatal(), or WrapDegraded() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapInvalid wraps an error as invalid input with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInvalid, wrappedErr, component, method, wrappedErr.Error())
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}

// WrapDegraded wraps an error as output-degrading with context
func WrapDegraded(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorDegraded, wrappedErr, component, method, wrappedErr.Error())
}
