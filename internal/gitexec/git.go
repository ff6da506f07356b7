package gitexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/shinji-kodama/gitlet/internal/model"
)

// Options configures an Engine.
type Options struct {
	// Dir is the repository working directory. Empty means the process
	// working directory.
	Dir string

	// Binary is the git executable. Empty means "git" from PATH.
	Binary string

	// AuthorName and AuthorEmail sign the commits the engine creates.
	AuthorName  string
	AuthorEmail string

	// Logger receives a debug record per git invocation. Nil discards.
	Logger *log.Logger
}

// Engine runs gitlet operations through git.
type Engine struct {
	dir    string
	binary string
	env    []string
	logger *log.Logger
}

// New creates an Engine from opts.
func New(opts Options) *Engine {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Binary == "" {
		opts.Binary = "git"
	}
	if opts.AuthorName == "" {
		opts.AuthorName = "gitlet"
	}
	if opts.AuthorEmail == "" {
		opts.AuthorEmail = "gitlet@localhost"
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	env := append(os.Environ(),
		"GIT_AUTHOR_NAME="+opts.AuthorName,
		"GIT_AUTHOR_EMAIL="+opts.AuthorEmail,
		"GIT_COMMITTER_NAME="+opts.AuthorName,
		"GIT_COMMITTER_EMAIL="+opts.AuthorEmail,
		// Stable, untranslated output and no credential prompts.
		"LC_ALL=C",
		"GIT_TERMINAL_PROMPT=0",
	)

	return &Engine{dir: opts.Dir, binary: opts.Binary, env: env, logger: opts.Logger}
}

// Dir returns the repository working directory.
func (e *Engine) Dir() string {
	return e.dir
}

// gitError describes a failed git invocation.
type gitError struct {
	args   []string
	stderr string
	err    error
}

func (g *gitError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(g.args, " "))
	if g.stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, g.stderr)
	}
	return msg
}

func (g *gitError) Unwrap() error {
	return g.err
}

// exitCode returns the process exit status, or -1 when git never ran.
func (g *gitError) exitCode() int {
	var exitErr *exec.ExitError
	if errors.As(g.err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// run executes git with args in the repository directory and returns its
// stdout. On failure the error is a *gitError carrying stderr.
func (e *Engine) run(ctx context.Context, args ...string) (string, error) {
	return e.runEnv(ctx, nil, args...)
}

// runEnv is run with extra environment entries appended.
func (e *Engine) runEnv(ctx context.Context, extraEnv []string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", e.dir}, args...)

	// #nosec G204 -- arguments are assembled by this package
	cmd := exec.CommandContext(ctx, e.binary, fullArgs...)
	cmd.Env = append(e.env[:len(e.env):len(e.env)], extraEnv...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("git", "args", strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		return "", &gitError{args: args, stderr: strings.TrimSpace(stderr.String()), err: err}
	}
	return stdout.String(), nil
}

// check runs a git predicate command. A non-zero exit status is a false
// answer; failing to run git at all is an error.
func (e *Engine) check(ctx context.Context, args ...string) (bool, error) {
	_, err := e.run(ctx, args...)
	if err == nil {
		return true, nil
	}
	var gerr *gitError
	if errors.As(err, &gerr) && gerr.exitCode() > 0 {
		return false, nil
	}
	return false, unexpected(err)
}

// mustRun is run with failures converted to model.UnexpectedError.
func (e *Engine) mustRun(ctx context.Context, args ...string) (string, error) {
	out, err := e.run(ctx, args...)
	if err != nil {
		return "", unexpected(err)
	}
	return out, nil
}

// unexpected wraps a git failure for the classifier: a one-line message
// and git's stderr as diagnostic detail.
func unexpected(err error) error {
	var gerr *gitError
	if errors.As(err, &gerr) {
		detail := gerr.stderr
		if detail == "" {
			detail = gerr.err.Error()
		}
		return model.WrapUnexpected(fmt.Sprintf("git %s failed", strings.Join(gerr.args, " ")), detail, err)
	}
	return model.WrapUnexpected(err.Error(), "", err)
}

// splitNul splits -z output into its non-empty fields.
func splitNul(out string) []string {
	var fields []string
	for _, f := range strings.Split(out, "\x00") {
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// splitLines splits output into trimmed non-empty lines.
func splitLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
