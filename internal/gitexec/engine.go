package gitexec

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shinji-kodama/gitlet/internal/model"
	"github.com/shinji-kodama/gitlet/internal/vcs"
)

const (
	// defaultBranch is the branch init creates.
	defaultBranch = "master"

	// initialMessage is the message of the commit init creates.
	initialMessage = "initial commit"

	// logFormat separates fields with US and records with RS so that
	// multi-line messages parse unambiguously.
	logFormat = "--format=%H%x1f%P%x1f%at%x1f%B%x1e"
)

// compile-time check that Engine satisfies the handler contract.
var _ vcs.Engine = (*Engine)(nil)

// IsRepository reports whether the working directory is the top of an
// initialized repository. Subdirectories of a repository, the .git
// directory itself and enclosing repositories do not count, the same rule
// Init applies.
func (e *Engine) IsRepository(ctx context.Context) (bool, error) {
	if !e.hasGitDir() {
		return false, nil
	}
	return e.check(ctx, "rev-parse", "--is-inside-work-tree")
}

// hasGitDir reports whether the working directory holds repository
// metadata of its own.
func (e *Engine) hasGitDir() bool {
	_, err := os.Stat(filepath.Join(e.dir, ".git"))
	return err == nil
}

// Init creates a repository in the working directory with an empty
// initial commit on master.
func (e *Engine) Init(ctx context.Context) error {
	if e.hasGitDir() {
		return model.NewDomainError(vcs.MsgAlreadyExists)
	}

	if _, err := e.mustRun(ctx, "init", "-q"); err != nil {
		return err
	}
	if _, err := e.mustRun(ctx, "symbolic-ref", "HEAD", "refs/heads/"+defaultBranch); err != nil {
		return err
	}

	// The root commit is epoch-dated so every repository shares it.
	epoch := []string{"GIT_AUTHOR_DATE=@0 +0000", "GIT_COMMITTER_DATE=@0 +0000"}
	if _, err := e.runEnv(ctx, epoch, "commit", "-q", "--allow-empty", "-m", initialMessage); err != nil {
		return unexpected(err)
	}
	return nil
}

// Add stages file. The file must exist in the working directory.
func (e *Engine) Add(ctx context.Context, file string) error {
	if _, err := os.Stat(filepath.Join(e.dir, file)); err != nil {
		if os.IsNotExist(err) {
			return model.NewDomainError(vcs.MsgFileDoesNotExist)
		}
		return model.WrapUnexpected("failed to stat "+file, "", err)
	}
	_, err := e.mustRun(ctx, "add", "--", file)
	return err
}

// Commit records the staging area. An empty staging area is a domain
// error.
func (e *Engine) Commit(ctx context.Context, message string) error {
	staged, err := e.hasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged {
		return model.NewDomainError(vcs.MsgNoChanges)
	}
	_, err = e.mustRun(ctx, "commit", "-q", "-m", message)
	return err
}

// Remove unstages a file staged for addition, or stages the removal of a
// file tracked by HEAD and deletes it from the working directory.
func (e *Engine) Remove(ctx context.Context, file string) error {
	tracked, err := e.check(ctx, "cat-file", "-e", "HEAD:./"+file)
	if err != nil {
		return err
	}
	inIndex, err := e.check(ctx, "ls-files", "--error-unmatch", "--", file)
	if err != nil {
		return err
	}

	switch {
	case tracked && inIndex:
		_, err = e.mustRun(ctx, "rm", "-q", "-f", "--", file)
	case tracked:
		// Already staged for removal.
		return nil
	case inIndex:
		_, err = e.mustRun(ctx, "rm", "-q", "-f", "--cached", "--", file)
	default:
		return model.NewDomainError(vcs.MsgNoReasonToRemove)
	}
	return err
}

// Log returns the first-parent history of HEAD.
func (e *Engine) Log(ctx context.Context) ([]vcs.Commit, error) {
	out, err := e.mustRun(ctx, "log", "--first-parent", logFormat, "HEAD")
	if err != nil {
		return nil, err
	}
	return parseCommits(out)
}

// GlobalLog returns every commit reachable from a ref or from the reflog,
// which includes commits abandoned by reset.
func (e *Engine) GlobalLog(ctx context.Context) ([]vcs.Commit, error) {
	out, err := e.mustRun(ctx, "log", "--all", "--reflog", logFormat)
	if err != nil {
		return nil, err
	}
	return parseCommits(out)
}

// Find returns the ids of every commit whose message is exactly message.
func (e *Engine) Find(ctx context.Context, message string) ([]string, error) {
	commits, err := e.GlobalLog(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, c := range commits {
		if c.Message == message {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

// CheckoutFile overwrites the working copy of file with its version in
// commitID (HEAD when empty). The staging area is left alone.
func (e *Engine) CheckoutFile(ctx context.Context, commitID, file string) error {
	rev := "HEAD"
	if commitID != "" {
		id, err := e.resolveCommit(ctx, commitID)
		if err != nil {
			return err
		}
		rev = id
	}

	exists, err := e.check(ctx, "cat-file", "-e", rev+":./"+file)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewDomainError(vcs.MsgFileNotInCommit)
	}

	_, err = e.mustRun(ctx, "restore", "--source="+rev, "--worktree", "--", file)
	return err
}

// CheckoutBranch switches to branch, overwriting tracked files and
// clearing the staging area.
func (e *Engine) CheckoutBranch(ctx context.Context, branch string) error {
	exists, err := e.branchExists(ctx, branch)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewDomainError(vcs.MsgNoSuchBranch)
	}

	current, err := e.currentBranch(ctx)
	if err != nil {
		return err
	}
	if current == branch {
		return model.NewDomainError(vcs.MsgAlreadyOnBranch)
	}

	if err := e.guardUntracked(ctx, "refs/heads/"+branch); err != nil {
		return err
	}
	_, err = e.mustRun(ctx, "checkout", "-q", "-f", branch, "--")
	return err
}

// Status collects branches and the staging/working-tree state.
func (e *Engine) Status(ctx context.Context) (*vcs.Status, error) {
	current, err := e.currentBranch(ctx)
	if err != nil {
		return nil, err
	}
	branches, err := e.mustRun(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads/")
	if err != nil {
		return nil, err
	}
	porcelain, err := e.mustRun(ctx, "status", "--porcelain=v1", "-z", "--untracked-files=all")
	if err != nil {
		return nil, err
	}

	st := parsePorcelain(porcelain)
	st.Current = current
	st.Branches = splitLines(branches)
	sort.Strings(st.Branches)
	return st, nil
}

// Branch creates name at HEAD without switching to it.
func (e *Engine) Branch(ctx context.Context, name string) error {
	exists, err := e.branchExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return model.NewDomainError(vcs.MsgBranchExists)
	}
	_, err = e.mustRun(ctx, "branch", name)
	return err
}

// RemoveBranch deletes the branch pointer; commits stay in the repository.
func (e *Engine) RemoveBranch(ctx context.Context, name string) error {
	exists, err := e.branchExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewDomainError(vcs.MsgBranchDoesNotExist)
	}
	current, err := e.currentBranch(ctx)
	if err != nil {
		return err
	}
	if current == name {
		return model.NewDomainError(vcs.MsgCannotRemoveCurrent)
	}
	_, err = e.mustRun(ctx, "branch", "-D", name)
	return err
}

// Reset moves the current branch to commitID and checks it out.
func (e *Engine) Reset(ctx context.Context, commitID string) error {
	id, err := e.resolveCommit(ctx, commitID)
	if err != nil {
		return err
	}
	if err := e.guardUntracked(ctx, id); err != nil {
		return err
	}
	_, err = e.mustRun(ctx, "reset", "-q", "--hard", id)
	return err
}

// Merge merges branch into the current branch. Conflicts are committed
// with their markers in place.
func (e *Engine) Merge(ctx context.Context, branch string) (vcs.MergeResult, error) {
	staged, err := e.hasStagedChanges(ctx)
	if err != nil {
		return vcs.MergeResult{}, err
	}
	if staged {
		return vcs.MergeResult{}, model.NewDomainError(vcs.MsgUncommittedChanges)
	}

	exists, err := e.branchExists(ctx, branch)
	if err != nil {
		return vcs.MergeResult{}, err
	}
	if !exists {
		return vcs.MergeResult{}, model.NewDomainError(vcs.MsgBranchDoesNotExist)
	}

	current, err := e.currentBranch(ctx)
	if err != nil {
		return vcs.MergeResult{}, err
	}
	if current == branch {
		return vcs.MergeResult{}, model.NewDomainError(vcs.MsgMergeWithSelf)
	}

	ref := "refs/heads/" + branch
	if err := e.guardUntracked(ctx, ref); err != nil {
		return vcs.MergeResult{}, err
	}

	givenIsAncestor, err := e.check(ctx, "merge-base", "--is-ancestor", ref, "HEAD")
	if err != nil {
		return vcs.MergeResult{}, err
	}
	if givenIsAncestor {
		return vcs.MergeResult{}, model.NewDomainError(vcs.MsgGivenIsAncestor)
	}

	fastForward, err := e.check(ctx, "merge-base", "--is-ancestor", "HEAD", ref)
	if err != nil {
		return vcs.MergeResult{}, err
	}
	if fastForward {
		if _, err := e.mustRun(ctx, "merge", "-q", "--ff-only", ref); err != nil {
			return vcs.MergeResult{}, err
		}
		return vcs.MergeResult{FastForward: true}, nil
	}

	message := vcs.MergeMessage(branch, current)
	_, mergeErr := e.run(ctx, "merge", "-q", "--no-ff", "--no-edit", "-m", message, ref)
	if mergeErr == nil {
		return vcs.MergeResult{}, nil
	}

	conflicted, err := e.mustRun(ctx, "diff", "--name-only", "--diff-filter=U", "-z")
	if err != nil {
		return vcs.MergeResult{}, err
	}
	files := splitNul(conflicted)
	if len(files) == 0 {
		return vcs.MergeResult{}, unexpected(mergeErr)
	}

	if _, err := e.mustRun(ctx, append([]string{"add", "--"}, files...)...); err != nil {
		return vcs.MergeResult{}, err
	}
	if _, err := e.mustRun(ctx, "commit", "-q", "-m", message); err != nil {
		return vcs.MergeResult{}, err
	}
	return vcs.MergeResult{Conflict: true}, nil
}

// AddRemote records name for dir. Gitlet-style paths ending in /.gitlet
// name the repository metadata directory and are mapped to its parent.
func (e *Engine) AddRemote(ctx context.Context, name, dir string) error {
	exists, err := e.remoteExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return model.NewDomainError(vcs.MsgRemoteExists)
	}
	_, err = e.mustRun(ctx, "remote", "add", name, remotePath(dir))
	return err
}

// RemoveRemote forgets name.
func (e *Engine) RemoveRemote(ctx context.Context, name string) error {
	exists, err := e.remoteExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewDomainError(vcs.MsgRemoteDoesNotExist)
	}
	_, err = e.mustRun(ctx, "remote", "remove", name)
	return err
}

// Fetch copies remote's branch into the local branch "remote/branch".
func (e *Engine) Fetch(ctx context.Context, remote, branch string) error {
	if err := e.requireRemoteDir(ctx, remote); err != nil {
		return err
	}
	_, ok, err := e.remoteHead(ctx, remote, branch)
	if err != nil {
		return err
	}
	if !ok {
		return model.NewDomainError(vcs.MsgRemoteMissingBranch)
	}

	refspec := "+refs/heads/" + branch + ":refs/heads/" + remote + "/" + branch
	_, err = e.mustRun(ctx, "fetch", "-q", remote, refspec)
	return err
}

// Push appends HEAD's history to remote's branch. The remote head must
// already be in the local history.
func (e *Engine) Push(ctx context.Context, remote, branch string) error {
	if err := e.requireRemoteDir(ctx, remote); err != nil {
		return err
	}
	head, ok, err := e.remoteHead(ctx, remote, branch)
	if err != nil {
		return err
	}
	if ok {
		// merge-base fails for a commit this repository has never seen,
		// which is the same answer: pull first.
		inHistory, err := e.check(ctx, "merge-base", "--is-ancestor", head, "HEAD")
		if err != nil {
			return err
		}
		if !inHistory {
			return model.NewDomainError(vcs.MsgPullBeforePushing)
		}
	}
	_, err = e.mustRun(ctx, "push", "-q", remote, "HEAD:refs/heads/"+branch)
	return err
}

// Pull fetches remote's branch and merges "remote/branch" into the
// current branch.
func (e *Engine) Pull(ctx context.Context, remote, branch string) (vcs.MergeResult, error) {
	if err := e.Fetch(ctx, remote, branch); err != nil {
		return vcs.MergeResult{}, err
	}
	return e.Merge(ctx, remote+"/"+branch)
}

func (e *Engine) hasStagedChanges(ctx context.Context) (bool, error) {
	clean, err := e.check(ctx, "diff", "--cached", "--quiet")
	if err != nil {
		return false, err
	}
	return !clean, nil
}

func (e *Engine) branchExists(ctx context.Context, name string) (bool, error) {
	return e.check(ctx, "show-ref", "--verify", "--quiet", "refs/heads/"+name)
}

func (e *Engine) remoteExists(ctx context.Context, name string) (bool, error) {
	return e.check(ctx, "remote", "get-url", name)
}

// currentBranch returns the checked-out branch, or "" on a detached HEAD.
func (e *Engine) currentBranch(ctx context.Context) (string, error) {
	out, err := e.run(ctx, "symbolic-ref", "--quiet", "--short", "HEAD")
	if err != nil {
		var gerr *gitError
		if errors.As(err, &gerr) && gerr.exitCode() == 1 {
			return "", nil
		}
		return "", unexpected(err)
	}
	return strings.TrimSpace(out), nil
}

// resolveCommit expands a full or abbreviated commit id.
func (e *Engine) resolveCommit(ctx context.Context, id string) (string, error) {
	if id == "" || strings.HasPrefix(id, "-") {
		return "", model.NewDomainError(vcs.MsgNoSuchCommit)
	}
	out, err := e.run(ctx, "rev-parse", "--verify", "--quiet", id+"^{commit}")
	if err != nil {
		var gerr *gitError
		if errors.As(err, &gerr) && gerr.exitCode() > 0 {
			return "", model.NewDomainError(vcs.MsgNoSuchCommit)
		}
		return "", unexpected(err)
	}
	return strings.TrimSpace(out), nil
}

// guardUntracked fails when an untracked working file would be
// overwritten by checking out target.
func (e *Engine) guardUntracked(ctx context.Context, target string) error {
	out, err := e.mustRun(ctx, "ls-files", "--others", "--exclude-standard", "-z")
	if err != nil {
		return err
	}
	untracked := splitNul(out)
	if len(untracked) == 0 {
		return nil
	}

	out, err = e.mustRun(ctx, "ls-tree", "-r", "--name-only", "-z", target)
	if err != nil {
		return err
	}
	inTarget := make(map[string]bool)
	for _, f := range splitNul(out) {
		inTarget[f] = true
	}
	for _, f := range untracked {
		if inTarget[f] {
			return model.NewDomainError(vcs.MsgUntrackedInTheWay)
		}
	}
	return nil
}

// requireRemoteDir checks that remote is configured and, for local
// remotes, that its directory exists.
func (e *Engine) requireRemoteDir(ctx context.Context, remote string) error {
	out, err := e.run(ctx, "remote", "get-url", remote)
	if err != nil {
		var gerr *gitError
		if errors.As(err, &gerr) && gerr.exitCode() > 0 {
			return model.NewDomainError(vcs.MsgRemoteDirNotFound)
		}
		return unexpected(err)
	}

	url := strings.TrimSpace(out)
	if strings.Contains(url, "://") || strings.HasPrefix(url, "git@") {
		return nil
	}
	if !filepath.IsAbs(url) {
		url = filepath.Join(e.dir, url)
	}
	info, err := os.Stat(url)
	if err != nil || !info.IsDir() {
		return model.NewDomainError(vcs.MsgRemoteDirNotFound)
	}
	return nil
}

// remoteHead returns the commit remote's branch points to.
func (e *Engine) remoteHead(ctx context.Context, remote, branch string) (string, bool, error) {
	out, err := e.mustRun(ctx, "ls-remote", "--heads", remote, "refs/heads/"+branch)
	if err != nil {
		return "", false, err
	}
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == "refs/heads/"+branch {
			return fields[0], true, nil
		}
	}
	return "", false, nil
}

// remotePath converts a slash-separated remote directory to the OS form
// and strips a trailing .gitlet metadata directory.
func remotePath(dir string) string {
	p := filepath.FromSlash(dir)
	if filepath.Base(p) == ".gitlet" {
		p = filepath.Dir(p)
	}
	return p
}

// parseCommits parses output produced with logFormat.
func parseCommits(out string) ([]vcs.Commit, error) {
	var commits []vcs.Commit
	for _, record := range strings.Split(out, "\x1e") {
		record = strings.TrimLeft(record, "\n")
		if record == "" {
			continue
		}
		fields := strings.SplitN(record, "\x1f", 4)
		if len(fields) != 4 {
			return nil, model.WrapUnexpected("malformed git log record", record, nil)
		}
		seconds, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, model.WrapUnexpected("malformed commit timestamp", fields[2], err)
		}
		commits = append(commits, vcs.Commit{
			ID:      fields[0],
			Parents: strings.Fields(fields[1]),
			Time:    time.Unix(seconds, 0),
			Message: strings.TrimRight(fields[3], "\n"),
		})
	}
	return commits, nil
}

// parsePorcelain sorts `git status --porcelain=v1 -z` entries into the
// status sections. Rename and copy entries are followed by their source
// path, which is skipped.
func parsePorcelain(out string) *vcs.Status {
	st := &vcs.Status{}
	entries := strings.Split(out, "\x00")

	for i := 0; i < len(entries); i++ {
		entry := entries[i]
		if len(entry) < 4 {
			continue
		}
		x, y, path := entry[0], entry[1], entry[3:]

		if x == 'R' || x == 'C' {
			i++
		}

		switch {
		case x == '?' && y == '?':
			st.Untracked = append(st.Untracked, path)
			continue
		case x == '!':
			continue
		}

		switch x {
		case 'A', 'M', 'R', 'C', 'T':
			st.Staged = append(st.Staged, path)
		case 'D':
			st.Removed = append(st.Removed, path)
		}

		switch y {
		case 'M', 'T':
			st.Modified = append(st.Modified, vcs.Change{File: path, Kind: vcs.ChangeModified})
		case 'D':
			st.Modified = append(st.Modified, vcs.Change{File: path, Kind: vcs.ChangeDeleted})
		}
	}

	sort.Strings(st.Staged)
	sort.Strings(st.Removed)
	sort.Strings(st.Untracked)
	sort.Slice(st.Modified, func(i, j int) bool {
		return st.Modified[i].File < st.Modified[j].File
	})
	return st
}
