// Package catalog loads the static gitlet command catalog and renders the
// interactive help text from it.
//
// The catalog is an embedded YAML document parsed with gopkg.in/yaml.v3.
// It is the single source of truth for category order, usage lines and
// one-line summaries; operation handlers use it to print usage hints.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/gitlet/internal/ui"
)

//go:embed catalog.yaml
var catalogYAML []byte

// usageWidth is the column the summary starts at, counted after the
// two-space indent.
const usageWidth = 31

// Command is one catalog line. A command with several forms (checkout)
// appears once per form.
type Command struct {
	Name    string `yaml:"name"`
	Usage   string `yaml:"usage"`
	Summary string `yaml:"summary"`

	// Builtin marks directives handled by the interactive loop itself.
	Builtin bool `yaml:"builtin,omitempty"`
}

// Category groups commands under a help header.
type Category struct {
	Name     string    `yaml:"name"`
	Commands []Command `yaml:"commands"`
}

// Catalog is the parsed help catalog.
type Catalog struct {
	Categories []Category `yaml:"categories"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// MustLoad is Load for package initialisation paths where a broken
// embedded document is a build defect.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a catalog document and checks that every category and
// command is named.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse command catalog: %w", err)
	}
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("command catalog: category without a name")
		}
		for _, cmd := range cat.Commands {
			if cmd.Name == "" || cmd.Usage == "" {
				return nil, fmt.Errorf("command catalog: entry in %q needs both name and usage", cat.Name)
			}
		}
	}
	return &c, nil
}

// Usages returns every usage form of the named operation, in catalog
// order. Built-ins are excluded.
func (c *Catalog) Usages(name string) []string {
	var usages []string
	for _, cat := range c.Categories {
		for _, cmd := range cat.Commands {
			if cmd.Name == name && !cmd.Builtin {
				usages = append(usages, cmd.Usage)
			}
		}
	}
	return usages
}

// Operations returns the distinct non-builtin command names in catalog
// order.
func (c *Catalog) Operations() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cat := range c.Categories {
		for _, cmd := range cat.Commands {
			if cmd.Builtin || seen[cmd.Name] {
				continue
			}
			seen[cmd.Name] = true
			names = append(names, cmd.Name)
		}
	}
	return names
}

// Render writes the help text: a blank line, the title, then each
// category header followed by its indented, column-aligned entries.
// Categories are separated by a blank line; no blank line follows the last.
func (c *Catalog) Render(w io.Writer, theme ui.Theme) error {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title("Available Gitlet commands:"))
	b.WriteString("\n\n")

	for i, cat := range c.Categories {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Header(cat.Name + ":"))
		b.WriteString("\n")
		for _, cmd := range cat.Commands {
			fmt.Fprintf(&b, "  %-*s%s\n", usageWidth, cmd.Usage, cmd.Summary)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
