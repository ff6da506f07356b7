package model

import (
	"errors"
	"fmt"
)

// DomainError is an expected, user-facing failure: bad operands, a missing
// repository, an unknown command or a nonexistent reference.
type DomainError struct {
	// Message is the text shown to the user. The classifier substitutes a
	// generic placeholder when it is empty.
	Message string
}

// Error satisfies the error interface.
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a DomainError with the given message.
func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// UnexpectedError is a fault not anticipated by a command's own logic.
// It always carries diagnostic detail for the secondary channel.
type UnexpectedError struct {
	// Message is the one-line description shown after "Unexpected error: ".
	Message string

	// Detail is the diagnostic trace (captured stderr, error chain, stack).
	Detail string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface.
func (e *UnexpectedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// WrapUnexpected creates an UnexpectedError that wraps err. When detail is
// empty the error chain of err is used instead.
func WrapUnexpected(message, detail string, err error) *UnexpectedError {
	if detail == "" && err != nil {
		detail = fmt.Sprintf("%+v", err)
	}
	return &UnexpectedError{Message: message, Detail: detail, Err: err}
}

// EarlyExit is a control signal, not a failure. The handler that returns it
// has already written whatever it wanted the user to see.
type EarlyExit struct {
	// Message is the text the raiser already emitted, kept for logging.
	Message string
}

// Error satisfies the error interface.
func (e *EarlyExit) Error() string {
	if e.Message == "" {
		return "early exit"
	}
	return "early exit: " + e.Message
}

// NewEarlyExit creates an EarlyExit recording the already-emitted message.
func NewEarlyExit(message string) *EarlyExit {
	return &EarlyExit{Message: message}
}

// OutcomeOf converts the error returned by an operation handler into the
// tagged Outcome. A nil error is Success; errors that are none of the
// typed kinds are treated as UnexpectedError.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return Success()
	}

	var exit *EarlyExit
	if errors.As(err, &exit) {
		return Outcome{Kind: OutcomeEarlyExit, Message: exit.Message, Err: err}
	}

	var domain *DomainError
	if errors.As(err, &domain) {
		return Outcome{Kind: OutcomeDomainError, Message: domain.Message, Err: err}
	}

	var unexpected *UnexpectedError
	if errors.As(err, &unexpected) {
		return Outcome{
			Kind:    OutcomeUnexpectedError,
			Message: unexpected.Message,
			Detail:  unexpected.Detail,
			Err:     err,
		}
	}

	return Outcome{
		Kind:    OutcomeUnexpectedError,
		Message: err.Error(),
		Detail:  fmt.Sprintf("%T: %+v", err, err),
		Err:     err,
	}
}
