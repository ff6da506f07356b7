package vcs

// User-facing failure messages of the gitlet command set.
const (
	MsgIncorrectOperands = "Incorrect operands."
	MsgNotInitialized    = "Not in an initialized Gitlet directory."
	MsgAlreadyExists     = "A Gitlet version-control system already exists in the current directory."

	MsgFileDoesNotExist  = "File does not exist."
	MsgEnterMessage      = "Please enter a commit message."
	MsgNoChanges         = "No changes added to the commit."
	MsgNoReasonToRemove  = "No reason to remove the file."
	MsgNoCommitWithMsg   = "Found no commit with that message."
	MsgNoSuchCommit      = "No commit with that id exists."
	MsgFileNotInCommit   = "File does not exist in that commit."
	MsgNoSuchBranch      = "No such branch exists."
	MsgAlreadyOnBranch   = "No need to checkout the current branch."
	MsgUntrackedInTheWay = "There is an untracked file in the way; delete it, or add and commit it first."

	MsgBranchExists        = "A branch with that name already exists."
	MsgBranchDoesNotExist  = "A branch with that name does not exist."
	MsgCannotRemoveCurrent = "Cannot remove the current branch."

	MsgUncommittedChanges = "You have uncommitted changes."
	MsgMergeWithSelf      = "Cannot merge a branch with itself."
	MsgGivenIsAncestor    = "Given branch is an ancestor of the current branch."
	MsgFastForwarded      = "Current branch fast-forwarded."
	MsgMergeConflict      = "Encountered a merge conflict."

	MsgRemoteExists        = "A remote with that name already exists."
	MsgRemoteDoesNotExist  = "A remote with that name does not exist."
	MsgRemoteDirNotFound   = "Remote directory not found."
	MsgRemoteMissingBranch = "That remote does not have that branch."
	MsgPullBeforePushing   = "Please pull down remote changes before pushing."
)

// MergeMessage is the message of the commit a non-fast-forward merge
// creates.
func MergeMessage(given, current string) string {
	return "Merged " + given + " into " + current + "."
}
