// Package cli implements the cobra-based command line for gitlet.
//
// The root command has no cobra subcommands. Every positional argument
// belongs to gitlet: flag parsing stops at the first positional token, so
// "gitlet checkout -- f" reaches the dispatcher unchanged. This file
// defines the root command, mode selection and the process exit path.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/gitlet/internal/catalog"
	"github.com/shinji-kodama/gitlet/internal/commands"
	"github.com/shinji-kodama/gitlet/internal/config"
	"github.com/shinji-kodama/gitlet/internal/dispatch"
	"github.com/shinji-kodama/gitlet/internal/gitexec"
	"github.com/shinji-kodama/gitlet/internal/model"
	"github.com/shinji-kodama/gitlet/internal/registry"
	"github.com/shinji-kodama/gitlet/internal/repl"
	"github.com/shinji-kodama/gitlet/internal/ui"
)

// Version, Commit and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// rootOptions holds the global flag values of one root command.
type rootOptions struct {
	configPath string
	verbose    bool
	batch      bool
	dir        string
	noColor    bool
}

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "gitlet [command [operands...]]",
		Short: "A small version-control system with a batch and an interactive mode",
		Long: `gitlet runs one version-control command per invocation when given
arguments, and starts an interactive prompt when given none.

Type 'help' at the prompt for the list of commands.`,

		Args: cobra.ArbitraryArgs,

		// Usage on every failed command would bury gitlet's own messages.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := rootCmd.Flags()
	flags.SetInterspersed(false)
	flags.StringVar(&opts.configPath, "config", "", "Path to a config file (yaml, toml, json or jsonc)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	flags.BoolVar(&opts.batch, "batch", false, "Run in batch mode even without a command")
	flags.StringVarP(&opts.dir, "dir", "C", "", "Repository working directory (default: current directory)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable styled output")

	return rootCmd
}

// SelectMode fixes the execution mode of a run. Any positional argument,
// or --batch, selects Batch; otherwise the run is Interactive.
func SelectMode(args []string, forceBatch bool) model.ExecutionMode {
	if forceBatch || len(args) > 0 {
		return model.ModeBatch
	}
	return model.ModeInteractive
}

// run wires configuration, engine, registry and dispatcher, then serves
// one Batch command or an Interactive session.
func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, cfgPath, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	// Flags take precedence over the config file and environment.
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if opts.noColor {
		cfg.Color = false
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	logger := newLogger(stderr, cfg.Verbose)
	logger.Debug("configuration loaded", "file", cfgPath)

	cat, err := catalog.Load()
	if err != nil {
		return model.WrapUnexpected("failed to load command catalog", "", err)
	}

	engine := gitexec.New(gitexec.Options{
		Dir:         opts.dir,
		Binary:      cfg.Git.Binary,
		AuthorName:  cfg.Author.Name,
		AuthorEmail: cfg.Author.Email,
		Logger:      logger,
	})
	dispatcher := dispatch.New(commands.NewRegistry(engine, cat), logger)

	mode := SelectMode(args, opts.batch)
	logger.Debug("mode selected", "mode", mode, "dir", engine.Dir())

	if mode == model.ModeBatch {
		_, decision := dispatcher.Run(cmd.Context(), &registry.Invocation{
			Args:   args,
			Mode:   model.ModeBatch,
			Stdout: stdout,
			Stderr: stderr,
		})
		if decision.Status != model.ExitSuccess {
			return &ExitError{Code: decision.Status}
		}
		return nil
	}

	session := repl.New(dispatcher, cat, cmd.InOrStdin(), stdout, stderr, repl.Options{
		Prompt: cfg.Prompt,
		Banner: cfg.Banner,
		Theme:  ui.NewTheme(stdout, cfg.Color),
		Logger: logger,
	})
	return session.Run(cmd.Context())
}

// newLogger returns the stderr logger: debug level when verbose, warn
// otherwise.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "gitlet",
		Level:  level,
	})
}

// Execute runs the root command and exits the process with the status it
// produced. It is the only place gitlet calls os.Exit.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(int(reportError(os.Stderr, err)))
	}
}

// reportError writes a failure that escaped the dispatcher to w and
// returns the exit status for it. An ExitError was already reported by
// the classifier and is not printed again.
func reportError(w io.Writer, err error) model.ExitCode {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var unexpected *model.UnexpectedError
	if errors.As(err, &unexpected) {
		fmt.Fprintf(w, "Unexpected error: %s\n", unexpected.Message)
		if unexpected.Detail != "" {
			fmt.Fprintln(w, unexpected.Detail)
		}
		return model.ExitFailure
	}

	fmt.Fprintf(w, "Error: %s\n", err)
	return model.ExitFailure
}
