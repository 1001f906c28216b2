// Package defaults provides centralized configuration constants for value-type.
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CheckTimeout)
//	defer cancel()
//
// Timeouts cover the two places this module waits on anything: fetching
// remote declaration files over HTTP and running a `check` over many files.
package defaults
