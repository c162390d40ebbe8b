package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const rootLongDesc = `
docrun smoke-tests the shell commands embedded in project documentation.

For a named target it extracts the fenced shell blocks from the target's
markdown document, rewrites them into a cheap test configuration (for example
swapping a full-size model for a small story model), drops commands that need
interactive authentication, and executes the result with command tracing.
Every generated script ends in a failure sentinel, so a broken or empty
extraction can never report success.

The built-in target table covers readme, quantization, gguf, advanced, and
evaluation; --config swaps in a custom table, and "docrun all" runs every
enabled target in order. Pass --tool to delegate extraction to an external
markdown-to-script converter instead of the built-in one.
`

func newRootCmd(stdout io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, logger: zap.NewNop()}
	cmd := &cobra.Command{
		Use:           "docrun [flags] <target>",
		Short:         "Extract and smoke-test shell commands from documentation",
		Long:          strings.TrimSpace(rootLongDesc),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	pflags := cmd.PersistentFlags()
	pflags.StringVar(&app.opts.configPath, "config", "", "load the target table from a YAML file")
	pflags.StringVarP(&app.opts.workdir, "workdir", "C", "", "directory documents are read from and scripts run in")

	flags := cmd.Flags()
	flags.StringVar(&app.opts.toolCmd, "tool", "", "external markdown-to-script converter command")
	flags.StringVar(&app.opts.shell, "shell", "bash", "interpreter for generated scripts")
	flags.BoolVar(&app.opts.dryRun, "dry-run", false, "generate and print the script without executing it")
	flags.BoolVarP(&app.opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		table, err := app.loadTable()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return append(table.names(), "all"), cobra.ShellCompDirectiveNoFileComp
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		logger, err := newLogger(app.opts.verbose)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		app.logger = logger
		return app.execute(ctx, args)
	}

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

// newLogger builds the stderr logger. Stdout stays reserved for the audited
// script and list output.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return logger, nil
}

func newListCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List configured documentation targets",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		table, err := app.loadTable()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TARGET\tDOCUMENT\tSECTIONS\tENABLED")
		for _, target := range table.targets {
			fmt.Fprintf(tw, "%s\t%s\t%t\t%t\n", target.Name, target.Document, target.Sections, target.Enabled)
		}
		return tw.Flush()
	}
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for docrun.

The output should be evaluated by your shell. For example:

  # bash
  docrun completion bash > /usr/local/etc/bash_completion.d/docrun

  # zsh
  docrun completion zsh > "${fpath[1]}/_docrun"

  # fish
  docrun completion fish | source

  # PowerShell
  docrun completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.ExactValidArgs(1),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate Markdown reference docs for the CLI",
		Long: strings.TrimSpace(`
Write a Markdown file per command (suitable for publishing CLI docs).

Example:

  docrun gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenMarkdownTree(root, target)
	}
	return cmd
}
