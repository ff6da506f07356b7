package commands

import (
	"context"
	"fmt"

	"github.com/shinji-kodama/gitlet/internal/catalog"
	"github.com/shinji-kodama/gitlet/internal/model"
	"github.com/shinji-kodama/gitlet/internal/registry"
	"github.com/shinji-kodama/gitlet/internal/vcs"
)

// handlers binds the operation handlers to an engine and to the catalog
// used for usage hints.
type handlers struct {
	engine  vcs.Engine
	catalog *catalog.Catalog
}

// NewRegistry builds the immutable registry of all gitlet operations.
func NewRegistry(engine vcs.Engine, cat *catalog.Catalog) *registry.Registry {
	h := &handlers{engine: engine, catalog: cat}

	return registry.New(
		registry.Entry{Name: "init", Handler: h.init},
		registry.Entry{Name: "add", Handler: h.add},
		registry.Entry{Name: "commit", Handler: h.commit},
		registry.Entry{Name: "rm", Handler: h.rm},
		registry.Entry{Name: "log", Handler: h.log},
		registry.Entry{Name: "global-log", Handler: h.globalLog},
		registry.Entry{Name: "find", Handler: h.find},
		registry.Entry{Name: "checkout", Handler: h.checkout},
		registry.Entry{Name: "status", Handler: h.status},
		registry.Entry{Name: "branch", Handler: h.branch},
		registry.Entry{Name: "rm-branch", Handler: h.rmBranch},
		registry.Entry{Name: "reset", Handler: h.reset},
		registry.Entry{Name: "merge", Handler: h.merge},
		registry.Entry{Name: "add-remote", Handler: h.addRemote},
		registry.Entry{Name: "rm-remote", Handler: h.rmRemote},
		registry.Entry{Name: "fetch", Handler: h.fetch},
		registry.Entry{Name: "push", Handler: h.push},
		registry.Entry{Name: "pull", Handler: h.pull},
	)
}

// incorrectOperands reports a usage error. In Interactive mode the handler
// prints the message and the catalog usage itself and stops with an
// EarlyExit; in Batch mode the classifier prints the DomainError.
func (h *handlers) incorrectOperands(inv *registry.Invocation) error {
	if inv.Mode != model.ModeInteractive {
		return model.NewDomainError(vcs.MsgIncorrectOperands)
	}

	fmt.Fprintln(inv.Stdout, vcs.MsgIncorrectOperands)
	for _, usage := range h.catalog.Usages(inv.Args[0]) {
		fmt.Fprintln(inv.Stdout, "Usage: "+usage)
	}
	return model.NewEarlyExit(vcs.MsgIncorrectOperands)
}

// prepare checks that the vector has exactly n operands and that the
// working directory is an initialized repository.
func (h *handlers) prepare(ctx context.Context, inv *registry.Invocation, n int) error {
	if len(inv.Operands()) != n {
		return h.incorrectOperands(inv)
	}
	return h.requireRepository(ctx)
}

func (h *handlers) requireRepository(ctx context.Context) error {
	ok, err := h.engine.IsRepository(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return model.NewDomainError(vcs.MsgNotInitialized)
	}
	return nil
}

func (h *handlers) init(ctx context.Context, inv *registry.Invocation) error {
	if len(inv.Operands()) != 0 {
		return h.incorrectOperands(inv)
	}
	return h.engine.Init(ctx)
}

func (h *handlers) add(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 1); err != nil {
		return err
	}
	return h.engine.Add(ctx, inv.Args[1])
}

// commit treats a missing message as a blank one rather than a usage
// error.
func (h *handlers) commit(ctx context.Context, inv *registry.Invocation) error {
	ops := inv.Operands()
	if len(ops) > 1 {
		return h.incorrectOperands(inv)
	}
	if err := h.requireRepository(ctx); err != nil {
		return err
	}
	if len(ops) == 0 || ops[0] == "" {
		return model.NewDomainError(vcs.MsgEnterMessage)
	}
	return h.engine.Commit(ctx, ops[0])
}

func (h *handlers) rm(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 1); err != nil {
		return err
	}
	return h.engine.Remove(ctx, inv.Args[1])
}

func (h *handlers) log(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 0); err != nil {
		return err
	}
	commits, err := h.engine.Log(ctx)
	if err != nil {
		return err
	}
	return writeLog(inv.Stdout, commits)
}

func (h *handlers) globalLog(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 0); err != nil {
		return err
	}
	commits, err := h.engine.GlobalLog(ctx)
	if err != nil {
		return err
	}
	return writeLog(inv.Stdout, commits)
}

func (h *handlers) find(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 1); err != nil {
		return err
	}
	ids, err := h.engine.Find(ctx, inv.Args[1])
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return model.NewDomainError(vcs.MsgNoCommitWithMsg)
	}
	for _, id := range ids {
		fmt.Fprintln(inv.Stdout, id)
	}
	return nil
}

// checkout accepts the three forms
//
//	checkout -- <file>
//	checkout <id> -- <file>
//	checkout <branch>
func (h *handlers) checkout(ctx context.Context, inv *registry.Invocation) error {
	ops := inv.Operands()

	var run func() error
	switch {
	case len(ops) == 2 && ops[0] == "--":
		run = func() error { return h.engine.CheckoutFile(ctx, "", ops[1]) }
	case len(ops) == 3 && ops[1] == "--":
		run = func() error { return h.engine.CheckoutFile(ctx, ops[0], ops[2]) }
	case len(ops) == 1:
		run = func() error { return h.engine.CheckoutBranch(ctx, ops[0]) }
	default:
		return h.incorrectOperands(inv)
	}

	if err := h.requireRepository(ctx); err != nil {
		return err
	}
	return run()
}

func (h *handlers) status(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 0); err != nil {
		return err
	}
	st, err := h.engine.Status(ctx)
	if err != nil {
		return err
	}
	return writeStatus(inv.Stdout, st)
}

func (h *handlers) branch(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 1); err != nil {
		return err
	}
	return h.engine.Branch(ctx, inv.Args[1])
}

func (h *handlers) rmBranch(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 1); err != nil {
		return err
	}
	return h.engine.RemoveBranch(ctx, inv.Args[1])
}

func (h *handlers) reset(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 1); err != nil {
		return err
	}
	return h.engine.Reset(ctx, inv.Args[1])
}

func (h *handlers) merge(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 1); err != nil {
		return err
	}
	result, err := h.engine.Merge(ctx, inv.Args[1])
	if err != nil {
		return err
	}
	writeMergeResult(inv.Stdout, result)
	return nil
}

func (h *handlers) addRemote(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 2); err != nil {
		return err
	}
	return h.engine.AddRemote(ctx, inv.Args[1], inv.Args[2])
}

func (h *handlers) rmRemote(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 1); err != nil {
		return err
	}
	return h.engine.RemoveRemote(ctx, inv.Args[1])
}

func (h *handlers) fetch(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 2); err != nil {
		return err
	}
	return h.engine.Fetch(ctx, inv.Args[1], inv.Args[2])
}

func (h *handlers) push(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 2); err != nil {
		return err
	}
	return h.engine.Push(ctx, inv.Args[1], inv.Args[2])
}

func (h *handlers) pull(ctx context.Context, inv *registry.Invocation) error {
	if err := h.prepare(ctx, inv, 2); err != nil {
		return err
	}
	result, err := h.engine.Pull(ctx, inv.Args[1], inv.Args[2])
	if err != nil {
		return err
	}
	writeMergeResult(inv.Stdout, result)
	return nil
}
