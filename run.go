package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	workdir    string
	toolCmd    string
	shell      string
	dryRun     bool
	verbose    bool
}

type cliApp struct {
	stdout io.Writer
	opts   options
	logger *zap.Logger
}

// scriptError carries the exit status of a failed generated script so main
// can propagate it as the process exit code.
type scriptError struct {
	target string
	code   int
}

func (e *scriptError) Error() string {
	return fmt.Sprintf("target %s: generated script exited with status %d", e.target, e.code)
}

func run(argv []string, stdout io.Writer) error {
	cmd := newRootCmd(stdout)
	if argv == nil {
		// SetArgs(nil) would make cobra fall back to os.Args.
		argv = []string{}
	}
	cmd.SetArgs(argv)
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context, positionals []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(positionals) == 0 {
		return errors.New("must specify document to run")
	}
	if len(positionals) > 1 {
		return errors.New("too many positional arguments")
	}
	table, err := app.loadTable()
	if err != nil {
		return err
	}
	name := positionals[0]
	if name == "all" {
		for _, target := range table.enabled() {
			if err := app.runTarget(ctx, target); err != nil {
				return err
			}
		}
		return nil
	}
	target, ok := table.lookup(name)
	if !ok {
		return fmt.Errorf("unknown target %q (valid targets: %s)", name, strings.Join(table.names(), ", "))
	}
	if !target.Enabled {
		app.logger.Info("target disabled, skipping", zap.String("target", target.Name))
		return nil
	}
	return app.runTarget(ctx, target)
}

func (app *cliApp) loadTable() (*targetTable, error) {
	if app.opts.configPath == "" {
		return defaultTargetTable(), nil
	}
	return loadTargetTable(app.opts.configPath)
}

func (app *cliApp) extractor() Extractor {
	if app.opts.toolCmd != "" {
		return toolExtractor{command: app.opts.toolCmd}
	}
	return markdownExtractor{}
}

// runTarget performs the four dispatcher steps for one target: extract,
// assemble with sentinel, print for the CI log, execute with tracing.
func (app *cliApp) runTarget(ctx context.Context, target Target) error {
	runID := uuid.NewString()
	log := app.logger.With(zap.String("target", target.Name), zap.String("run_id", runID))

	workdir := app.opts.workdir
	if workdir == "" {
		workdir = "."
	}
	req := Request{
		Document:     filepath.Join(workdir, target.Document),
		Sections:     target.Sections,
		Replacements: target.Replacements,
		Suppressions: target.Suppressions,
	}
	log.Debug("extracting commands", zap.String("document", req.Document), zap.Bool("sections", req.Sections))
	body, err := app.extractor().Extract(ctx, req)
	if err != nil {
		return fmt.Errorf("target %s: %w", target.Name, err)
	}

	script := assembleScript(target, body)
	path, err := writeScript(workdir, target, script)
	if err != nil {
		return fmt.Errorf("target %s: write script: %w", target.Name, err)
	}
	printScript(app.stdout, target.ScriptName(), script)

	if app.opts.dryRun {
		log.Info("dry run, skipping execution", zap.String("script", path))
		return nil
	}

	shell := app.opts.shell
	if shell == "" {
		shell = "bash"
	}
	log.Info("executing script", zap.String("script", path), zap.String("shell", shell))
	cmd := exec.CommandContext(ctx, shell, "-x", target.ScriptName())
	cmd.Dir = workdir
	cmd.Stdout = app.stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Error("script failed", zap.Int("exit_code", exitErr.ExitCode()))
			return &scriptError{target: target.Name, code: exitErr.ExitCode()}
		}
		return fmt.Errorf("target %s: execute script: %w", target.Name, err)
	}
	log.Info("script completed")
	return nil
}
