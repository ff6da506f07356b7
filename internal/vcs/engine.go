package vcs

import (
	"context"
	"time"
)

// Engine is the version-control backend behind the eighteen gitlet
// commands. Paths are relative to the repository's working directory.
type Engine interface {
	// IsRepository reports whether the working directory belongs to an
	// initialized repository.
	IsRepository(ctx context.Context) (bool, error)

	// Init creates a repository with an initial commit on master.
	Init(ctx context.Context) error

	// Add stages the current contents of file.
	Add(ctx context.Context, file string) error

	// Commit records the staged changes with message.
	Commit(ctx context.Context, message string) error

	// Remove unstages file, or stages its removal if the head commit
	// tracks it.
	Remove(ctx context.Context, file string) error

	// Log returns the first-parent history from the head commit, newest
	// first.
	Log(ctx context.Context) ([]Commit, error)

	// GlobalLog returns every commit the repository knows of.
	GlobalLog(ctx context.Context) ([]Commit, error)

	// Find returns the ids of all commits whose message equals message.
	Find(ctx context.Context, message string) ([]string, error)

	// CheckoutFile restores file from commitID, or from the head commit
	// when commitID is empty.
	CheckoutFile(ctx context.Context, commitID, file string) error

	// CheckoutBranch makes branch the current branch.
	CheckoutBranch(ctx context.Context, branch string) error

	// Status describes branches, the staging area and the working tree.
	Status(ctx context.Context) (*Status, error)

	// Branch creates a branch at the head commit.
	Branch(ctx context.Context, name string) error

	// RemoveBranch deletes the branch pointer only.
	RemoveBranch(ctx context.Context, name string) error

	// Reset checks out commitID and moves the current branch to it.
	Reset(ctx context.Context, commitID string) error

	// Merge merges branch into the current branch.
	Merge(ctx context.Context, branch string) (MergeResult, error)

	// AddRemote records a named remote repository directory.
	AddRemote(ctx context.Context, name, dir string) error

	// RemoveRemote forgets a named remote.
	RemoveRemote(ctx context.Context, name string) error

	// Fetch copies remote's branch into the local branch "remote/branch".
	Fetch(ctx context.Context, remote, branch string) error

	// Push appends the current history to remote's branch.
	Push(ctx context.Context, remote, branch string) error

	// Pull fetches remote's branch and merges it into the current branch.
	Pull(ctx context.Context, remote, branch string) (MergeResult, error)
}

// Commit is one entry of log, global-log and find.
type Commit struct {
	// ID is the full commit id.
	ID string

	// Parents holds one id for a regular commit and two for a merge.
	Parents []string

	// Time is the commit timestamp.
	Time time.Time

	// Message is the commit message without a trailing newline.
	Message string
}

// IsMerge reports whether the commit has two parents.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// ChangeKind distinguishes unstaged modifications from deletions.
type ChangeKind string

const (
	// ChangeModified means the working copy differs from the tracked or
	// staged contents.
	ChangeModified ChangeKind = "modified"

	// ChangeDeleted means a tracked or staged file is missing from the
	// working directory.
	ChangeDeleted ChangeKind = "deleted"
)

// Change is one unstaged modification.
type Change struct {
	File string
	Kind ChangeKind
}

// Status is the result of the status command. All lists are sorted.
type Status struct {
	// Current is the checked-out branch.
	Current string

	// Branches lists every local branch, Current included.
	Branches []string

	// Staged lists files staged for addition.
	Staged []string

	// Removed lists files staged for removal.
	Removed []string

	// Modified lists unstaged changes.
	Modified []Change

	// Untracked lists files neither staged nor tracked.
	Untracked []string
}

// MergeResult describes how a merge or pull finished.
type MergeResult struct {
	// FastForward is true when the current branch was simply moved to
	// the given branch.
	FastForward bool

	// Conflict is true when the merge commit contains conflict markers.
	Conflict bool
}
