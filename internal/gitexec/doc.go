// Package gitexec implements vcs.Engine on top of the git command-line
// tool.
//
// All operations are performed via os/exec calls to the git binary, run
// with -C <dir> so the process working directory never changes. This
// keeps object storage, hashing, diffing and merging in git itself; the
// package only checks gitlet's preconditions, translates them into
// model.DomainError values and parses git's machine-readable output.
//
// A git invocation that fails after the preconditions passed is reported
// as model.UnexpectedError with git's stderr as diagnostic detail.
package gitexec
