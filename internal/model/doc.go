// Package model defines the shared value types for the gitlet command layer.
//
// This package contains pure data structures with no external dependencies:
// the execution mode a run is fixed to, the tagged Outcome of a dispatch
// attempt, and the error types operation handlers return to signal a
// domain failure, an unexpected fault, or an early exit.
//
// The package also defines exit codes (ExitCode) used by the CLI layer to
// translate a Batch-mode outcome into an OS process exit status.
package model
