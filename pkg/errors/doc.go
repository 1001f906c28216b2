// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Every failure raised by the value-type engine is a *StructuredError whose
// Code tells the caller what went wrong:
//
//   - ErrCodeConfiguration: the recipe declaration itself is illegal
//   - ErrCodeMissingAttribute: a required attribute was not supplied
//   - ErrCodeUnrecognizedAttribute: input or lookup used an unknown name
//   - ErrCodeInvalidValue: a value did not satisfy its matcher
//   - ErrCodeInputShape: construction input was not map-like
//
// Errors returned by user code (coercers, default generators, ToMap hooks)
// are never wrapped and reach the caller unchanged.
//
// Example usage:
//
//	cat, err := instance.Construct(catRecipe, input)
//	if errors.Is(err, errors.ErrCodeMissingAttribute) {
//	    var se *errors.StructuredError
//	    stderrors.As(err, &se)
//	    slog.Warn("incomplete cat", "attribute", se.Context[errors.ContextAttribute])
//	}
package errors
