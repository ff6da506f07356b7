package gitexec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/gitlet/internal/vcs"
)

// TestParseCommits checks that log records keep multi-line messages and
// both parents of a merge.
func TestParseCommits(t *testing.T) {
	out := "aaa\x1f\x1f1700000000\x1finitial commit\n\x1e\n" +
		"bbb\x1faaa ccc\x1f1700000100\x1fMerged a into b.\n\nbody line\n\x1e\n"

	commits, err := parseCommits(out)
	require.NoError(t, err)
	require.Len(t, commits, 2)

	assert.Equal(t, "aaa", commits[0].ID)
	assert.Empty(t, commits[0].Parents)
	assert.Equal(t, "initial commit", commits[0].Message)
	assert.Equal(t, time.Unix(1700000000, 0), commits[0].Time)

	assert.Equal(t, []string{"aaa", "ccc"}, commits[1].Parents)
	assert.True(t, commits[1].IsMerge())
	assert.Equal(t, "Merged a into b.\n\nbody line", commits[1].Message)
}

func TestParseCommits_Malformed(t *testing.T) {
	_, err := parseCommits("aaa\x1fonly two\x1e")
	assert.Error(t, err)

	_, err = parseCommits("aaa\x1f\x1fnot-a-number\x1fmsg\x1e")
	assert.Error(t, err)
}

func TestParseCommits_Empty(t *testing.T) {
	commits, err := parseCommits("")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

// TestParsePorcelain covers every section the status command renders,
// including the extra source field that follows a rename.
func TestParsePorcelain(t *testing.T) {
	out := "A  new.txt\x00" +
		"M  staged.txt\x00" +
		"D  gone.txt\x00" +
		" M edited.txt\x00" +
		" D deleted.txt\x00" +
		"MM both.txt\x00" +
		"R  after.txt\x00before.txt\x00" +
		"?? scratch.txt\x00" +
		"!! ignored.txt\x00"

	st := parsePorcelain(out)

	assert.Equal(t, []string{"after.txt", "both.txt", "new.txt", "staged.txt"}, st.Staged)
	assert.Equal(t, []string{"gone.txt"}, st.Removed)
	assert.Equal(t, []vcs.Change{
		{File: "both.txt", Kind: vcs.ChangeModified},
		{File: "deleted.txt", Kind: vcs.ChangeDeleted},
		{File: "edited.txt", Kind: vcs.ChangeModified},
	}, st.Modified)
	assert.Equal(t, []string{"scratch.txt"}, st.Untracked)
}

func TestRemotePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"../other", "../other"},
		{"../other/.gitlet", "../other"},
		{"/srv/repo/.gitlet", "/srv/repo"},
		{"/srv/repo", "/srv/repo"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, remotePath(tt.in))
		})
	}
}

func TestSplitHelpers(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, splitNul("a\x00b c\x00\x00"))
	assert.Nil(t, splitNul(""))
	assert.Equal(t, []string{"master", "other"}, splitLines("  master\n\nother\n"))
}
