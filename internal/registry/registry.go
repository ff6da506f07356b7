package registry

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/shinji-kodama/gitlet/internal/model"
)

// Invocation carries one parsed command to its handler.
type Invocation struct {
	// Args is the full argument vector. Args[0] is the command name.
	Args []string

	// Mode is the execution mode fixed for this run. Handlers read it to
	// choose between reporting a problem themselves (EarlyExit) and
	// returning an error for the classifier to report.
	Mode model.ExecutionMode

	// Stdout is the primary output channel.
	Stdout io.Writer

	// Stderr is the secondary diagnostic channel.
	Stderr io.Writer
}

// Operands returns the arguments after the command name.
func (inv *Invocation) Operands() []string {
	if len(inv.Args) == 0 {
		return nil
	}
	return inv.Args[1:]
}

// Handler executes one command. A nil return is Success; otherwise the
// returned error is one of model.DomainError, model.UnexpectedError or
// model.EarlyExit (any other error is treated as unexpected).
type Handler func(ctx context.Context, inv *Invocation) error

// Entry pairs a command name with its handler.
type Entry struct {
	Name    string
	Handler Handler
}

// Registry is an immutable command-name to handler mapping.
type Registry struct {
	handlers map[string]Handler
}

// New builds a registry from entries. It panics on an empty name, a nil
// handler or a duplicate name, since all three are programming errors in
// the fixed command table.
func New(entries ...Entry) *Registry {
	handlers := make(map[string]Handler, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			panic("registry: empty command name")
		}
		if e.Handler == nil {
			panic(fmt.Sprintf("registry: nil handler for command %s", e.Name))
		}
		if _, exists := handlers[e.Name]; exists {
			panic(fmt.Sprintf("registry: command %s already registered", e.Name))
		}
		handlers[e.Name] = e.Handler
	}
	return &Registry{handlers: handlers}
}

// Lookup returns the handler registered under name and whether it exists.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns every registered command name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.handlers)
}
