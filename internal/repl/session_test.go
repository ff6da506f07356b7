package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/gitlet/internal/catalog"
	"github.com/shinji-kodama/gitlet/internal/dispatch"
	"github.com/shinji-kodama/gitlet/internal/model"
	"github.com/shinji-kodama/gitlet/internal/registry"
)

// harness wires a session to in-memory streams and a registry whose
// handlers record every vector they receive.
type harness struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	calls  [][]string
	modes  []model.ExecutionMode
}

func (h *harness) session(input string, opts Options) *Session {
	record := func(err error) registry.Handler {
		return func(_ context.Context, inv *registry.Invocation) error {
			h.calls = append(h.calls, inv.Args)
			h.modes = append(h.modes, inv.Mode)
			return err
		}
	}
	reg := registry.New(
		registry.Entry{Name: "commit", Handler: record(nil)},
		registry.Entry{Name: "fail", Handler: record(model.NewDomainError("x"))},
		registry.Entry{Name: "crash", Handler: record(errors.New("boom"))},
		registry.Entry{Name: "help", Handler: record(nil)},
	)
	return New(dispatch.New(reg, nil), catalog.MustLoad(), strings.NewReader(input), &h.stdout, &h.stderr, opts)
}

func TestRun_EndOfInputSaysGoodbye(t *testing.T) {
	h := &harness{}
	s := h.session("", Options{})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, StateTerminated, s.State())
	assert.Equal(t, "gitlet> \nGoodbye!\n", h.stdout.String())
}

// TestRun_QuitAnyCase verifies quit and exit end the session regardless of
// case and that later lines are never read.
func TestRun_QuitAnyCase(t *testing.T) {
	for _, word := range []string{"quit", "QUIT", "Quit", "exit", "EXIT", "  quit  "} {
		t.Run(word, func(t *testing.T) {
			h := &harness{}
			s := h.session(word+"\ncommit \"never\"\n", Options{})

			require.NoError(t, s.Run(context.Background()))
			assert.Equal(t, "gitlet> Goodbye!\n", h.stdout.String())
			assert.Empty(t, h.calls)
		})
	}
}

func TestRun_BlankLinesNeverDispatch(t *testing.T) {
	h := &harness{}
	s := h.session("\n   \n\t\n", Options{})

	require.NoError(t, s.Run(context.Background()))
	assert.Empty(t, h.calls)
	assert.Equal(t, "gitlet> gitlet> gitlet> gitlet> \nGoodbye!\n", h.stdout.String())
}

// TestRun_HelpDoesNotDispatch checks that help is a built-in even though a
// handler named "help" is registered in this harness.
func TestRun_HelpDoesNotDispatch(t *testing.T) {
	for _, word := range []string{"help", "HELP", "Help"} {
		t.Run(word, func(t *testing.T) {
			h := &harness{}
			s := h.session(word+"\n", Options{})

			require.NoError(t, s.Run(context.Background()))
			assert.Empty(t, h.calls)

			out := h.stdout.String()
			assert.Contains(t, out, "Available Gitlet commands:")
			assert.Contains(t, out, "Remote Operations:")
			assert.Contains(t, out, "Exit interactive mode\n\ngitlet> ")
		})
	}
}

func TestRun_DispatchesTokenizedLine(t *testing.T) {
	h := &harness{}
	s := h.session("commit \"my message\"\n", Options{})

	require.NoError(t, s.Run(context.Background()))
	require.Len(t, h.calls, 1)
	assert.Equal(t, []string{"commit", "my message"}, h.calls[0])
	assert.Equal(t, []model.ExecutionMode{model.ModeInteractive}, h.modes)
	assert.Equal(t, "gitlet> \ngitlet> \nGoodbye!\n", h.stdout.String())
}

// TestRun_DomainErrorContinues verifies a failing command prints its
// message once and the session keeps prompting.
func TestRun_DomainErrorContinues(t *testing.T) {
	h := &harness{}
	s := h.session("fail\ncommit m\n", Options{})

	require.NoError(t, s.Run(context.Background()))
	assert.Len(t, h.calls, 2)
	assert.Equal(t, 1, strings.Count(h.stdout.String(), "x\n"))
	assert.Equal(t, "gitlet> x\n\ngitlet> \ngitlet> \nGoodbye!\n", h.stdout.String())
}

func TestRun_UnexpectedErrorContinues(t *testing.T) {
	h := &harness{}
	s := h.session("crash\n", Options{})

	require.NoError(t, s.Run(context.Background()))
	assert.Contains(t, h.stdout.String(), "Unexpected error: boom\n\ngitlet> ")
	assert.NotEmpty(t, h.stderr.String())
}

func TestRun_UnknownCommandAddsHint(t *testing.T) {
	h := &harness{}
	s := h.session("bogus\n", Options{})

	require.NoError(t, s.Run(context.Background()))
	assert.Empty(t, h.calls)
	assert.Equal(t,
		"gitlet> No command with that name exists.\nType 'help' for available commands.\n\ngitlet> \nGoodbye!\n",
		h.stdout.String())
}

func TestRun_BannerAndCustomPrompt(t *testing.T) {
	h := &harness{}
	s := h.session("exit\n", Options{Banner: true, Prompt: "> "})

	require.NoError(t, s.Run(context.Background()))
	out := h.stdout.String()
	assert.True(t, strings.HasPrefix(out, bannerRule+"\nGitlet Interactive Mode\n"+bannerRule+"\n"))
	assert.True(t, strings.HasSuffix(out, "Type 'quit' or 'exit' to exit\n\n> Goodbye!\n"))
}

func TestStep_AfterTerminationIsNoop(t *testing.T) {
	h := &harness{}
	s := h.session("quit\n", Options{})

	require.NoError(t, s.Step(context.Background()))
	assert.Equal(t, StateTerminated, s.State())

	before := h.stdout.String()
	require.NoError(t, s.Step(context.Background()))
	assert.Equal(t, before, h.stdout.String())
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestRun_ReadErrorIsReturned(t *testing.T) {
	var stdout, stderr bytes.Buffer
	reg := registry.New()
	s := New(dispatch.New(reg, nil), catalog.MustLoad(), brokenReader{}, &stdout, &stderr, Options{})

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
	var unexpected *model.UnexpectedError
	assert.ErrorAs(t, err, &unexpected)
	assert.Equal(t, StateTerminated, s.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "prompting", StatePrompting.String())
	assert.Equal(t, "terminated", StateTerminated.String())
}

// TestRun_LongLineKeepsSession feeds a line far larger than any scanner
// buffer and checks it is dispatched whole and the session keeps reading.
func TestRun_LongLineKeepsSession(t *testing.T) {
	message := strings.Repeat("x", 2<<20)
	h := &harness{}
	s := h.session("commit \""+message+"\"\ncommit ok\n", Options{})

	require.NoError(t, s.Run(context.Background()))
	require.Len(t, h.calls, 2)
	assert.Equal(t, []string{"commit", message}, h.calls[0])
	assert.Equal(t, []string{"commit", "ok"}, h.calls[1])
	assert.True(t, strings.HasSuffix(h.stdout.String(), "gitlet> \nGoodbye!\n"))
}

// TestRun_LastLineWithoutNewline checks that unterminated final input is
// still served before end-of-input.
func TestRun_LastLineWithoutNewline(t *testing.T) {
	h := &harness{}
	s := h.session("commit last", Options{})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, [][]string{{"commit", "last"}}, h.calls)
	assert.Equal(t, "gitlet> \ngitlet> \nGoodbye!\n", h.stdout.String())
}

// TestRun_CRLFLines checks that carriage returns are trimmed with the line.
func TestRun_CRLFLines(t *testing.T) {
	h := &harness{}
	s := h.session("commit msg\r\nQUIT\r\n", Options{})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, [][]string{{"commit", "msg"}}, h.calls)
	assert.Equal(t, StateTerminated, s.State())
}
