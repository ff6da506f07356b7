package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/gitlet/internal/ui"
)

func TestLoad_CategoryOrder(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	names := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		names = append(names, cat.Name)
	}
	assert.Equal(t, []string{
		"Repository Management",
		"File Operations",
		"Information",
		"Checkout",
		"Branching",
		"Advanced",
		"Remote Operations",
		"Other",
	}, names)
}

func TestOperations_EighteenCommands(t *testing.T) {
	c := MustLoad()
	ops := c.Operations()
	assert.Len(t, ops, 18)
	assert.NotContains(t, ops, "help")
	assert.NotContains(t, ops, "quit")
}

func TestUsages(t *testing.T) {
	c := MustLoad()
	assert.Equal(t, []string{"add <file>"}, c.Usages("add"))
	assert.Equal(t, []string{
		"checkout -- <file>",
		"checkout <id> -- <file>",
		"checkout <branch>",
	}, c.Usages("checkout"))
	assert.Empty(t, c.Usages("help"))
	assert.Empty(t, c.Usages("bogus"))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("categories: ["))
	assert.Error(t, err)

	_, err = Parse([]byte("categories:\n  - commands: []\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("categories:\n  - name: X\n    commands:\n      - name: a\n"))
	assert.Error(t, err)
}

// TestRender checks the help layout the interactive loop prints.
func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustLoad().Render(&buf, ui.Plain()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "\nAvailable Gitlet commands:\n\nRepository Management:\n"))
	assert.Contains(t, out, "  init                           Initialize a new Gitlet repository\n")
	assert.Contains(t, out, "  checkout <id> -- <file>        Checkout a file from a commit\n")
	assert.Contains(t, out, "\nRemote Operations:\n")
	assert.True(t, strings.HasSuffix(out, "  quit / exit                    Exit interactive mode\n"))
}
