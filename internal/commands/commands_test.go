package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/gitlet/internal/catalog"
	"github.com/shinji-kodama/gitlet/internal/dispatch"
	"github.com/shinji-kodama/gitlet/internal/model"
	"github.com/shinji-kodama/gitlet/internal/registry"
	"github.com/shinji-kodama/gitlet/internal/vcs"
)

// fakeEngine records every engine call as "method arg..." and returns the
// canned values configured on it.
type fakeEngine struct {
	notRepo  bool
	calls    []string
	commits  []vcs.Commit
	found    []string
	status   *vcs.Status
	merge    vcs.MergeResult
	failWith error
}

func (f *fakeEngine) record(call string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(call+" "+strings.Join(args, " ")))
	return f.failWith
}

func (f *fakeEngine) IsRepository(context.Context) (bool, error) { return !f.notRepo, nil }
func (f *fakeEngine) Init(context.Context) error                 { return f.record("Init") }
func (f *fakeEngine) Add(_ context.Context, file string) error   { return f.record("Add", file) }
func (f *fakeEngine) Commit(_ context.Context, msg string) error { return f.record("Commit", msg) }
func (f *fakeEngine) Remove(_ context.Context, file string) error {
	return f.record("Remove", file)
}
func (f *fakeEngine) Log(context.Context) ([]vcs.Commit, error) {
	return f.commits, f.record("Log")
}
func (f *fakeEngine) GlobalLog(context.Context) ([]vcs.Commit, error) {
	return f.commits, f.record("GlobalLog")
}
func (f *fakeEngine) Find(_ context.Context, msg string) ([]string, error) {
	return f.found, f.record("Find", msg)
}
func (f *fakeEngine) CheckoutFile(_ context.Context, id, file string) error {
	return f.record("CheckoutFile", id, file)
}
func (f *fakeEngine) CheckoutBranch(_ context.Context, b string) error {
	return f.record("CheckoutBranch", b)
}
func (f *fakeEngine) Status(context.Context) (*vcs.Status, error) {
	return f.status, f.record("Status")
}
func (f *fakeEngine) Branch(_ context.Context, n string) error { return f.record("Branch", n) }
func (f *fakeEngine) RemoveBranch(_ context.Context, n string) error {
	return f.record("RemoveBranch", n)
}
func (f *fakeEngine) Reset(_ context.Context, id string) error { return f.record("Reset", id) }
func (f *fakeEngine) Merge(_ context.Context, b string) (vcs.MergeResult, error) {
	return f.merge, f.record("Merge", b)
}
func (f *fakeEngine) AddRemote(_ context.Context, n, d string) error {
	return f.record("AddRemote", n, d)
}
func (f *fakeEngine) RemoveRemote(_ context.Context, n string) error {
	return f.record("RemoveRemote", n)
}
func (f *fakeEngine) Fetch(_ context.Context, r, b string) error { return f.record("Fetch", r, b) }
func (f *fakeEngine) Push(_ context.Context, r, b string) error  { return f.record("Push", r, b) }
func (f *fakeEngine) Pull(_ context.Context, r, b string) (vcs.MergeResult, error) {
	return f.merge, f.record("Pull", r, b)
}

type run struct {
	outcome  model.Outcome
	decision dispatch.Decision
	stdout   string
}

func execute(t *testing.T, engine *fakeEngine, mode model.ExecutionMode, args ...string) run {
	t.Helper()
	var stdout, stderr bytes.Buffer
	d := dispatch.New(NewRegistry(engine, catalog.MustLoad()), nil)
	inv := &registry.Invocation{Args: args, Mode: mode, Stdout: &stdout, Stderr: &stderr}
	outcome, decision := d.Run(context.Background(), inv)
	return run{outcome: outcome, decision: decision, stdout: stdout.String()}
}

// commandNames lists the eighteen documented commands in catalog order.
var commandNames = []string{
	"init", "add", "commit", "rm", "log", "global-log", "find", "checkout",
	"status", "branch", "rm-branch", "reset", "merge",
	"add-remote", "rm-remote", "fetch", "push", "pull",
}

// TestRegistry_Completeness dispatches a minimal valid vector for every
// documented command and checks each reaches its handler.
func TestRegistry_Completeness(t *testing.T) {
	minimal := map[string][]string{
		"init":       {"init"},
		"add":        {"add", "f"},
		"commit":     {"commit", "m"},
		"rm":         {"rm", "f"},
		"log":        {"log"},
		"global-log": {"global-log"},
		"find":       {"find", "m"},
		"checkout":   {"checkout", "b"},
		"status":     {"status"},
		"branch":     {"branch", "b"},
		"rm-branch":  {"rm-branch", "b"},
		"reset":      {"reset", "abc"},
		"merge":      {"merge", "b"},
		"add-remote": {"add-remote", "R1", "../d"},
		"rm-remote":  {"rm-remote", "R1"},
		"fetch":      {"fetch", "R1", "master"},
		"push":       {"push", "R1", "master"},
		"pull":       {"pull", "R1", "master"},
	}

	reg := NewRegistry(&fakeEngine{}, catalog.MustLoad())
	assert.Equal(t, 18, reg.Len())
	assert.ElementsMatch(t, commandNames, reg.Names())

	for _, name := range commandNames {
		t.Run(name, func(t *testing.T) {
			engine := &fakeEngine{found: []string{"abc"}, status: &vcs.Status{}}
			r := execute(t, engine, model.ModeBatch, minimal[name]...)
			assert.NotErrorIs(t, r.outcome.Err, dispatch.ErrUnknownCommand)
			assert.True(t, r.outcome.IsSuccess(), "outcome: %+v", r.outcome)
			assert.Len(t, engine.calls, 1)
		})
	}
}

// TestCatalog_CoversRegistry keeps the help text and the registry in step.
func TestCatalog_CoversRegistry(t *testing.T) {
	assert.Equal(t, commandNames, catalog.MustLoad().Operations())
}

func TestIncorrectOperands_Batch(t *testing.T) {
	engine := &fakeEngine{}
	r := execute(t, engine, model.ModeBatch, "add")

	assert.Equal(t, model.OutcomeDomainError, r.outcome.Kind)
	assert.Equal(t, "Incorrect operands.\n", r.stdout)
	assert.Equal(t, model.ExitFailure, r.decision.Status)
	assert.Empty(t, engine.calls)
}

// TestIncorrectOperands_Interactive checks the handler reports the usage
// itself and stops with an EarlyExit the classifier stays silent on.
func TestIncorrectOperands_Interactive(t *testing.T) {
	engine := &fakeEngine{}
	r := execute(t, engine, model.ModeInteractive, "checkout", "a", "b")

	assert.Equal(t, model.OutcomeEarlyExit, r.outcome.Kind)
	assert.Equal(t, "Incorrect operands.\n"+
		"Usage: checkout -- <file>\n"+
		"Usage: checkout <id> -- <file>\n"+
		"Usage: checkout <branch>\n", r.stdout)
	assert.False(t, r.decision.Terminate)
	assert.Empty(t, engine.calls)
}

func TestNotInitialized(t *testing.T) {
	engine := &fakeEngine{notRepo: true}
	r := execute(t, engine, model.ModeBatch, "status")

	assert.Equal(t, "Not in an initialized Gitlet directory.\n", r.stdout)
	assert.Empty(t, engine.calls)

	// init itself never requires a repository.
	r = execute(t, engine, model.ModeBatch, "init")
	assert.True(t, r.outcome.IsSuccess())
	assert.Equal(t, []string{"Init"}, engine.calls)
}

func TestCommit_Messages(t *testing.T) {
	engine := &fakeEngine{}

	r := execute(t, engine, model.ModeBatch, "commit")
	assert.Equal(t, "Please enter a commit message.\n", r.stdout)

	r = execute(t, engine, model.ModeBatch, "commit", "")
	assert.Equal(t, "Please enter a commit message.\n", r.stdout)

	r = execute(t, engine, model.ModeBatch, "commit", "a", "b")
	assert.Equal(t, "Incorrect operands.\n", r.stdout)

	r = execute(t, engine, model.ModeBatch, "commit", "my message")
	assert.True(t, r.outcome.IsSuccess())
	assert.Equal(t, []string{"Commit my message"}, engine.calls)
}

func TestCheckout_Forms(t *testing.T) {
	tests := []struct {
		args []string
		call string
	}{
		{[]string{"checkout", "--", "wug.txt"}, "CheckoutFile  wug.txt"},
		{[]string{"checkout", "abc123", "--", "wug.txt"}, "CheckoutFile abc123 wug.txt"},
		{[]string{"checkout", "other"}, "CheckoutBranch other"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			engine := &fakeEngine{}
			r := execute(t, engine, model.ModeBatch, tt.args...)
			require.True(t, r.outcome.IsSuccess())
			assert.Equal(t, []string{tt.call}, engine.calls)
		})
	}

	engine := &fakeEngine{}
	r := execute(t, engine, model.ModeBatch, "checkout", "abc123", "++", "wug.txt")
	assert.Equal(t, "Incorrect operands.\n", r.stdout)
	assert.Empty(t, engine.calls)
}

func TestFind(t *testing.T) {
	engine := &fakeEngine{found: []string{"a1", "b2"}}
	r := execute(t, engine, model.ModeBatch, "find", "initial commit")
	assert.Equal(t, "a1\nb2\n", r.stdout)

	engine = &fakeEngine{}
	r = execute(t, engine, model.ModeBatch, "find", "nothing")
	assert.Equal(t, "Found no commit with that message.\n", r.stdout)
	assert.Equal(t, model.ExitFailure, r.decision.Status)
}

func TestLog_Render(t *testing.T) {
	loc := time.FixedZone("PST", -8*60*60)
	engine := &fakeEngine{commits: []vcs.Commit{
		{
			ID:      "3e8bf1d794ca2e9ef8a4007275acf3751c7170ff",
			Parents: []string{"4975af1", "2c1ead1aaaaa"},
			Time:    time.Date(2017, time.November, 9, 20, 0, 5, 0, loc),
			Message: "Merged development into master.",
		},
		{
			ID:      "e881c9575d180a215d1a636545b8fd9abfb1d2bb",
			Time:    time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
			Message: "initial commit",
		},
	}}

	r := execute(t, engine, model.ModeBatch, "log")
	assert.Equal(t, "===\n"+
		"commit 3e8bf1d794ca2e9ef8a4007275acf3751c7170ff\n"+
		"Merge: 4975af1 2c1ead1\n"+
		"Date: Thu Nov 9 20:00:05 2017 -0800\n"+
		"Merged development into master.\n"+
		"\n"+
		"===\n"+
		"commit e881c9575d180a215d1a636545b8fd9abfb1d2bb\n"+
		"Date: Thu Jan 1 00:00:00 1970 +0000\n"+
		"initial commit\n"+
		"\n", r.stdout)
}

func TestStatus_Render(t *testing.T) {
	engine := &fakeEngine{status: &vcs.Status{
		Current:   "master",
		Branches:  []string{"master", "other-branch"},
		Staged:    []string{"wug.txt", "wug2.txt"},
		Removed:   []string{"goodbye.txt"},
		Modified:  []vcs.Change{{File: "junk.txt", Kind: vcs.ChangeDeleted}, {File: "wug3.txt", Kind: vcs.ChangeModified}},
		Untracked: []string{"random.stuff"},
	}}

	r := execute(t, engine, model.ModeBatch, "status")
	assert.Equal(t, "=== Branches ===\n"+
		"*master\n"+
		"other-branch\n"+
		"\n"+
		"=== Staged Files ===\n"+
		"wug.txt\n"+
		"wug2.txt\n"+
		"\n"+
		"=== Removed Files ===\n"+
		"goodbye.txt\n"+
		"\n"+
		"=== Modifications Not Staged For Commit ===\n"+
		"junk.txt (deleted)\n"+
		"wug3.txt (modified)\n"+
		"\n"+
		"=== Untracked Files ===\n"+
		"random.stuff\n"+
		"\n", r.stdout)
}

func TestMerge_Results(t *testing.T) {
	engine := &fakeEngine{merge: vcs.MergeResult{FastForward: true}}
	r := execute(t, engine, model.ModeBatch, "merge", "other")
	assert.Equal(t, "Current branch fast-forwarded.\n", r.stdout)

	engine = &fakeEngine{merge: vcs.MergeResult{Conflict: true}}
	r = execute(t, engine, model.ModeBatch, "pull", "R1", "master")
	assert.Equal(t, "Encountered a merge conflict.\n", r.stdout)
	assert.True(t, r.outcome.IsSuccess())
}

// TestEngineErrorsPassThrough checks engine domain errors keep their
// message and unexpected ones get the prefix.
func TestEngineErrorsPassThrough(t *testing.T) {
	engine := &fakeEngine{failWith: model.NewDomainError(vcs.MsgNoSuchBranch)}
	r := execute(t, engine, model.ModeInteractive, "checkout", "nope")
	assert.Equal(t, "No such branch exists.\n", r.stdout)
	assert.False(t, r.decision.Terminate)

	engine = &fakeEngine{failWith: model.WrapUnexpected("git branch failed", "fatal: broken", nil)}
	r = execute(t, engine, model.ModeBatch, "branch", "x")
	assert.Equal(t, "Unexpected error: git branch failed\n", r.stdout)
	assert.Equal(t, model.ExitFailure, r.decision.Status)
}
