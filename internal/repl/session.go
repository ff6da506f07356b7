package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/shinji-kodama/gitlet/internal/catalog"
	"github.com/shinji-kodama/gitlet/internal/dispatch"
	"github.com/shinji-kodama/gitlet/internal/model"
	"github.com/shinji-kodama/gitlet/internal/registry"
	"github.com/shinji-kodama/gitlet/internal/tokenizer"
	"github.com/shinji-kodama/gitlet/internal/ui"
)

// DefaultPrompt is written before every line is read.
const DefaultPrompt = "gitlet> "

const (
	goodbye    = "Goodbye!"
	helpHint   = "Type 'help' for available commands."
	bannerRule = "========================================"
)

// State is the session's position in its state machine.
type State int

const (
	// StatePrompting waits for the next line.
	StatePrompting State = iota

	// StateTerminated is final; Step does nothing once reached.
	StateTerminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePrompting:
		return "prompting"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Options configures a Session.
type Options struct {
	// Prompt replaces DefaultPrompt when non-empty.
	Prompt string

	// Banner prints the welcome banner when Run starts.
	Banner bool

	// Theme styles the banner and help text. The zero value is plain.
	Theme ui.Theme

	// Logger receives debug records. Nil discards them.
	Logger *log.Logger
}

// Session reads commands line by line and dispatches them.
type Session struct {
	dispatcher *dispatch.Dispatcher
	catalog    *catalog.Catalog
	reader     *bufio.Reader
	stdout     io.Writer
	stderr     io.Writer
	opts       Options
	state      State
}

// New creates a session reading from in. Normal output goes to stdout and
// diagnostics of unexpected errors go to stderr.
func New(d *dispatch.Dispatcher, cat *catalog.Catalog, in io.Reader, stdout, stderr io.Writer, opts Options) *Session {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return &Session{
		dispatcher: d,
		catalog:    cat,
		reader:     bufio.NewReader(in),
		stdout:     stdout,
		stderr:     stderr,
		opts:       opts,
		state:      StatePrompting,
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Run prints the banner (if enabled) and steps until the session
// terminates. It returns a non-nil error only when reading input fails for
// a reason other than end-of-input.
func (s *Session) Run(ctx context.Context) error {
	if s.opts.Banner {
		s.printBanner()
	}

	for s.state != StateTerminated {
		if err := s.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Step performs one Prompting cycle: prompt, read one line, act on it.
func (s *Session) Step(ctx context.Context) error {
	if s.state == StateTerminated {
		return nil
	}

	fmt.Fprint(s.stdout, s.opts.Prompt)

	// Lines have no length limit. A final line without a newline is still
	// served; end-of-input is seen on the following read.
	raw, err := s.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || raw == "") {
		s.state = StateTerminated
		if !errors.Is(err, io.EOF) {
			fmt.Fprintln(s.stdout)
			return model.WrapUnexpected("failed to read input", "", err)
		}
		// The prompt line is still open at end-of-input.
		fmt.Fprintln(s.stdout)
		fmt.Fprintln(s.stdout, goodbye)
		s.opts.Logger.Debug("end of input")
		return nil
	}

	line := strings.TrimSpace(raw)
	switch {
	case line == "":
		return nil

	case strings.EqualFold(line, "quit"), strings.EqualFold(line, "exit"):
		fmt.Fprintln(s.stdout, goodbye)
		s.state = StateTerminated
		return nil

	case strings.EqualFold(line, "help"):
		if err := s.catalog.Render(s.stdout, s.opts.Theme); err != nil {
			return fmt.Errorf("failed to write help: %w", err)
		}
		fmt.Fprintln(s.stdout)
		return nil
	}

	args := tokenizer.Split(line)
	if len(args) > 0 {
		s.dispatch(ctx, args)
	}
	fmt.Fprintln(s.stdout)
	return nil
}

// dispatch runs one command in Interactive mode. The decision never
// terminates the session.
func (s *Session) dispatch(ctx context.Context, args []string) {
	inv := &registry.Invocation{
		Args:   args,
		Mode:   model.ModeInteractive,
		Stdout: s.stdout,
		Stderr: s.stderr,
	}

	outcome, _ := s.dispatcher.Run(ctx, inv)
	if errors.Is(outcome.Err, dispatch.ErrUnknownCommand) {
		if name := suggest(args[0], s.dispatcher.Registry().Names()); name != "" {
			fmt.Fprintln(s.stdout, s.opts.Theme.Muted("Did you mean '"+name+"'?"))
		}
		fmt.Fprintln(s.stdout, s.opts.Theme.Muted(helpHint))
	}
}

func (s *Session) printBanner() {
	fmt.Fprintln(s.stdout, bannerRule)
	fmt.Fprintln(s.stdout, s.opts.Theme.Title("Gitlet Interactive Mode"))
	fmt.Fprintln(s.stdout, bannerRule)
	fmt.Fprintln(s.stdout, "Type 'help' for available commands")
	fmt.Fprintln(s.stdout, "Type 'quit' or 'exit' to exit")
	fmt.Fprintln(s.stdout)
}
