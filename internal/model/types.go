package model

import (
	"fmt"
	"strings"
)

// ExecutionMode selects the failure-handling policy applied to dispatch
// outcomes. A run fixes its mode once, before the first dispatch, and
// never changes it afterwards.
type ExecutionMode string

const (
	// ModeBatch serves exactly one command per process. A DomainError or
	// UnexpectedError terminates the process with a non-zero status.
	ModeBatch ExecutionMode = "batch"

	// ModeInteractive serves commands from a prompt until end-of-input or
	// an explicit quit. Failures are reported and the session continues.
	ModeInteractive ExecutionMode = "interactive"
)

// String returns the string representation of ExecutionMode.
func (m ExecutionMode) String() string {
	return string(m)
}

// IsValid checks whether the mode is one of the predefined modes.
func (m ExecutionMode) IsValid() bool {
	switch m {
	case ModeBatch, ModeInteractive:
		return true
	default:
		return false
	}
}

// ParseExecutionMode converts a string to an ExecutionMode.
// Matching is case-insensitive.
func ParseExecutionMode(s string) (ExecutionMode, error) {
	mode := ExecutionMode(strings.ToLower(s))
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid execution mode: %q (valid: batch, interactive)", s)
	}
	return mode, nil
}

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind int

const (
	// OutcomeSuccess means the handler completed normally.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeDomainError is an expected, user-facing failure.
	OutcomeDomainError

	// OutcomeUnexpectedError is any fault the command's own logic did not
	// anticipate. It always carries diagnostic detail.
	OutcomeUnexpectedError

	// OutcomeEarlyExit means the handler already reported its own
	// termination and nothing more should be printed.
	OutcomeEarlyExit
)

// String returns a lower-case name for the kind, used in debug logging.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeDomainError:
		return "domain-error"
	case OutcomeUnexpectedError:
		return "unexpected-error"
	case OutcomeEarlyExit:
		return "early-exit"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one dispatch attempt. It is produced by
// the dispatcher, consumed exactly once by the classifier and never stored.
type Outcome struct {
	// Kind selects which of the remaining fields are meaningful.
	Kind OutcomeKind

	// Message is the user-facing text for DomainError and UnexpectedError,
	// and the optional already-emitted text of an EarlyExit.
	Message string

	// Detail is the diagnostic trace of an UnexpectedError. It is routed to
	// the secondary output channel.
	Detail string

	// Err is the error the outcome was derived from, nil for Success.
	// Callers use it with errors.Is to recognise specific conditions.
	Err error
}

// Success returns the Success outcome.
func Success() Outcome {
	return Outcome{Kind: OutcomeSuccess}
}

// IsSuccess reports whether the outcome is Success.
func (o Outcome) IsSuccess() bool {
	return o.Kind == OutcomeSuccess
}

// IsFailure reports whether the outcome is a DomainError or an
// UnexpectedError, the two kinds that fail a Batch run.
func (o Outcome) IsFailure() bool {
	return o.Kind == OutcomeDomainError || o.Kind == OutcomeUnexpectedError
}

// ExitCode defines the process exit statuses used in Batch mode.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully, or ended
	// through an EarlyExit.
	ExitSuccess ExitCode = 0

	// ExitFailure indicates a DomainError or UnexpectedError reached the
	// Batch-mode classifier.
	ExitFailure ExitCode = 1
)
