package dispatch

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/charmbracelet/log"

	"github.com/shinji-kodama/gitlet/internal/model"
	"github.com/shinji-kodama/gitlet/internal/registry"
)

var (
	// ErrNoCommand is returned for an empty argument vector.
	ErrNoCommand = model.NewDomainError("Please enter a command.")

	// ErrUnknownCommand is returned when the first token names no
	// registered command.
	ErrUnknownCommand = model.NewDomainError("No command with that name exists.")
)

// Dispatcher routes argument vectors to registered handlers.
type Dispatcher struct {
	registry *registry.Registry
	logger   *log.Logger
}

// New creates a Dispatcher over reg. A nil logger discards debug output.
func New(reg *registry.Registry, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{registry: reg, logger: logger}
}

// Registry returns the registry the dispatcher resolves names against.
func (d *Dispatcher) Registry() *registry.Registry {
	return d.registry
}

// Dispatch looks up inv.Args[0] and invokes the matching handler once.
// Unknown names and empty vectors produce DomainError outcomes without
// invoking anything. A panicking handler yields an UnexpectedError whose
// detail is the goroutine stack.
func (d *Dispatcher) Dispatch(ctx context.Context, inv *registry.Invocation) (outcome model.Outcome) {
	if len(inv.Args) == 0 {
		return model.OutcomeOf(ErrNoCommand)
	}

	name := inv.Args[0]
	handler, ok := d.registry.Lookup(name)
	if !ok {
		d.logger.Debug("unknown command", "name", name)
		return model.OutcomeOf(ErrUnknownCommand)
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = model.Outcome{
				Kind:    model.OutcomeUnexpectedError,
				Message: fmt.Sprint(r),
				Detail:  string(debug.Stack()),
			}
		}
		d.logger.Debug("dispatched", "command", name, "mode", inv.Mode, "outcome", outcome.Kind)
	}()

	return model.OutcomeOf(handler(ctx, inv))
}

// Run dispatches inv, classifies the outcome under inv.Mode and reports it
// on inv.Stdout and inv.Stderr. It returns the outcome together with the
// decision so callers can act on continuation and exit status.
func (d *Dispatcher) Run(ctx context.Context, inv *registry.Invocation) (model.Outcome, Decision) {
	outcome := d.Dispatch(ctx, inv)
	decision := Classify(outcome, inv.Mode)
	if err := Report(inv.Stdout, inv.Stderr, decision); err != nil {
		d.logger.Warn("failed to write outcome", "err", err)
	}
	return outcome, decision
}
