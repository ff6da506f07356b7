package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/shinji-kodama/gitlet/internal/vcs"
)

// dateLayout matches the date line of gitlet log entries,
// e.g. "Thu Nov 9 20:00:05 2017 -0800".
const dateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// shortIDLen is the length of parent ids on a "Merge:" line.
const shortIDLen = 7

// writeLog prints commits as gitlet log entries:
//
//	===
//	commit <id>
//	Merge: <p1> <p2>      (merge commits only)
//	Date: <date>
//	<message>
//	<blank line>
func writeLog(w io.Writer, commits []vcs.Commit) error {
	var b strings.Builder
	for _, c := range commits {
		b.WriteString("===\n")
		fmt.Fprintf(&b, "commit %s\n", c.ID)
		if c.IsMerge() {
			fmt.Fprintf(&b, "Merge: %s %s\n", shortID(c.Parents[0]), shortID(c.Parents[1]))
		}
		fmt.Fprintf(&b, "Date: %s\n", c.Time.Format(dateLayout))
		b.WriteString(c.Message)
		b.WriteString("\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// writeStatus prints the five status sections, each followed by a blank
// line. The current branch is marked with '*'.
func writeStatus(w io.Writer, st *vcs.Status) error {
	branches := make([]string, 0, len(st.Branches))
	for _, name := range st.Branches {
		if name == st.Current {
			name = "*" + name
		}
		branches = append(branches, name)
	}

	changes := make([]string, 0, len(st.Modified))
	for _, c := range st.Modified {
		changes = append(changes, fmt.Sprintf("%s (%s)", c.File, c.Kind))
	}

	sections := []struct {
		title string
		lines []string
	}{
		{"Branches", branches},
		{"Staged Files", st.Staged},
		{"Removed Files", st.Removed},
		{"Modifications Not Staged For Commit", changes},
		{"Untracked Files", st.Untracked},
	}

	var b strings.Builder
	for _, sec := range sections {
		fmt.Fprintf(&b, "=== %s ===\n", sec.title)
		for _, line := range sec.lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMergeResult(w io.Writer, result vcs.MergeResult) {
	if result.FastForward {
		fmt.Fprintln(w, vcs.MsgFastForwarded)
	}
	if result.Conflict {
		fmt.Fprintln(w, vcs.MsgMergeConflict)
	}
}
