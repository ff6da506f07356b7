package dispatch

import (
	"fmt"
	"io"

	"github.com/shinji-kodama/gitlet/internal/model"
)

// fallbackMessage replaces an empty DomainError message.
const fallbackMessage = "An error occurred."

// unexpectedPrefix starts the primary-channel line of an UnexpectedError.
const unexpectedPrefix = "Unexpected error: "

// Decision is what the classifier concluded about one outcome.
type Decision struct {
	// Message is the single line for the primary channel, empty for none.
	Message string

	// Diagnostic is the trace for the secondary channel, empty for none.
	Diagnostic string

	// Terminate is true when the run ends after this outcome. Batch mode
	// always terminates because it serves a single command.
	Terminate bool

	// Status is the process exit status when Terminate is true.
	Status model.ExitCode
}

// Classify maps an outcome to its user-visible output and continuation
// decision under mode. It has no side effects.
//
//	Outcome          Batch                        Interactive
//	Success          no output, exit 0            no output, continue
//	DomainError      message, exit 1              message, continue
//	UnexpectedError  message + diagnostic, exit 1 message + diagnostic, continue
//	EarlyExit        no output, exit 0            no output, continue
func Classify(o model.Outcome, mode model.ExecutionMode) Decision {
	var d Decision

	switch o.Kind {
	case model.OutcomeDomainError:
		d.Message = o.Message
		if d.Message == "" {
			d.Message = fallbackMessage
		}
	case model.OutcomeUnexpectedError:
		d.Message = unexpectedPrefix + o.Message
		d.Diagnostic = o.Detail
		if d.Diagnostic == "" {
			d.Diagnostic = o.Message
		}
	case model.OutcomeSuccess, model.OutcomeEarlyExit:
		// The raiser of an EarlyExit has already written its output.
	}

	if mode == model.ModeInteractive {
		return d
	}

	d.Terminate = true
	if o.IsFailure() {
		d.Status = model.ExitFailure
	}
	return d
}

// Report writes the decision's message to stdout and its diagnostic to
// stderr. Nothing is written for an empty field.
func Report(stdout, stderr io.Writer, d Decision) error {
	if d.Message != "" {
		if _, err := fmt.Fprintln(stdout, d.Message); err != nil {
			return err
		}
	}
	if d.Diagnostic != "" {
		if _, err := fmt.Fprintln(stderr, d.Diagnostic); err != nil {
			return err
		}
	}
	return nil
}
