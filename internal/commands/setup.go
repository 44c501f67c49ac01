package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/simonhull/firebird-suite/nest/generator"
	"github.com/simonhull/firebird-suite/nest/input"
	"github.com/simonhull/firebird-suite/nest/internal/logging"
	"github.com/simonhull/firebird-suite/nest/internal/project"
	"github.com/simonhull/firebird-suite/nest/output"
	"github.com/spf13/cobra"
)

// errNameRequired is returned when no project name was given and none can be prompted for.
var errNameRequired = errors.New("project name is required")

type setupOptions struct {
	commonOptions

	args         []string // [project-name [option]]
	ignore       bool
	dryRun       bool
	allConflicts bool
	diff         bool
	confirm      bool
}

// SetupCmd creates and returns the 'setup' command
func SetupCmd() *cobra.Command {
	var opts setupOptions

	cmd := &cobra.Command{
		Use:   "setup [project-name] [option]",
		Short: "Generate the build files for a new project",
		Long: `Generates the solution, project, build and package files for a new
project in the root directory.

Every file is checked first. If any of them already exists the project is
considered set up and nothing is written.

Options:
  ignore   also add the generated files and the project directory to .gitignore

Example:
  nest setup Sandbox
  nest setup Sandbox ignore
  nest setup Sandbox --dry-run --all-conflicts`,
		Args: cobra.RangeArgs(0, 2),
		Run: func(cmd *cobra.Command, args []string) {
			opts.commonOptions = commonFromCmd(cmd)
			opts.args = args

			if err := runSetup(cmd.Context(), opts); err != nil {
				os.Exit(1)
			}
		},
	}

	addSourceFlags(cmd)
	cmd.Flags().BoolVar(&opts.ignore, "ignore", false, "Add generated files to .gitignore")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Check and show what would be generated without creating files")
	cmd.Flags().Bool("atomic", false, "Write through a staging directory and roll back on failure")
	cmd.Flags().BoolVar(&opts.allConflicts, "all-conflicts", false, "Check every file instead of stopping at the first conflict")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "Show how the first conflicting file differs from the generated one")
	cmd.Flags().BoolVar(&opts.confirm, "confirm", false, "Ask before writing")

	return cmd
}

// runSetup reports every failure through output before returning it.
func runSetup(ctx context.Context, opts setupOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	name, err := setupName(opts.args)
	if err != nil {
		output.Error(err.Error())
		return err
	}
	projectOpts := parseProjectOptions(opts.ignore, opts.args[min(1, len(opts.args)):])

	ws, err := openWorkspace(opts.commonOptions)
	if err != nil {
		output.Error(err.Error())
		return err
	}
	log := logging.Default().WithFields(logging.F("project", name), logging.F("root", ws.root))

	plan, err := ws.plan(name, projectOpts)
	if err != nil {
		output.Error(fmt.Sprintf("Failed setup %s: %v", name, err))
		return err
	}

	if !project.HasEngine(ws.root, ws.cfg.Engine.Name) {
		output.Warn(fmt.Sprintf("%s/CMakeLists.txt not found in %s; the solution will not configure until the engine is there", ws.cfg.Engine.Name, ws.root))
	}

	execOpts := generator.ExecuteOptions{
		DryRun:     opts.dryRun,
		Exhaustive: opts.allConflicts,
		Staged:     ws.cfg.Write.Atomic,
		Report:     output.Check,
	}

	if opts.confirm && !opts.dryRun {
		checked := execOpts
		checked.DryRun = true
		if _, err := generator.Execute(ctx, plan, checked); err != nil {
			return setupFailed(name, plan, opts, err)
		}
		if !input.Confirm(fmt.Sprintf("Write %d files to %s?", plan.Len(), ws.root), true) {
			output.Info("Setup cancelled, nothing was written")
			return nil
		}
		execOpts.Report = nil
	}

	log.Debug("executing plan", logging.F("dry_run", opts.dryRun), logging.F("staged", execOpts.Staged))
	res, err := generator.Execute(ctx, plan, execOpts)
	if err != nil {
		return setupFailed(name, plan, opts, err)
	}

	if opts.dryRun {
		output.Info("Dry run, nothing was written. Would create:")
		for _, op := range plan.Operations() {
			output.Step(op.Description())
		}
		return nil
	}

	for _, path := range res.Written {
		output.Verbose("created " + path)
	}
	log.Info("setup complete", logging.F("files", len(res.Written)))

	output.Success(fmt.Sprintf("Setup succeeded: %s", name))
	output.Info("Next steps:")
	output.Step("GenerateProjectFiles.bat   # generate the solution")
	output.Step("Build_Debug.bat            # build the Debug configuration")
	return nil
}

func setupName(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !input.IsInteractive() {
		return "", errNameRequired
	}
	return input.PromptValid("Project name", "", project.ValidateName)
}

// setupFailed prints the failure for err and returns it.
func setupFailed(name string, plan *generator.Plan, opts setupOptions, err error) error {
	var blocked *generator.BlockedError
	var checkErr *generator.CheckError
	var partial *generator.PartialWriteError

	switch {
	case errors.As(err, &blocked):
		output.Error(fmt.Sprintf("Failed setup %s: already set up, aborting", name))
		if len(blocked.Paths) > 1 {
			for _, p := range blocked.Paths {
				output.Step(p + " exists")
			}
		}
		if opts.diff && len(blocked.Paths) > 0 {
			showConflictDiff(plan, blocked.Paths[0])
		}

	case errors.As(err, &checkErr):
		output.Error(fmt.Sprintf("Failed setup %s: cannot check %s: %v", name, checkErr.Path, checkErr.Err))

	case errors.As(err, &partial):
		output.Error(fmt.Sprintf("Failed setup %s: failed writing %s: %v", name, partial.Path, partial.Err))
		if len(partial.Written) > 0 {
			output.Info("Files written before the failure:")
			for _, p := range partial.Written {
				output.Step(p)
			}
		}

	default:
		output.Error(fmt.Sprintf("Failed setup %s: %v", name, err))
	}

	return err
}

func showConflictDiff(plan *generator.Plan, path string) {
	diff, err := generator.ConflictDiff(plan, path)
	if err != nil {
		logging.Warn("cannot diff conflicting file", logging.F("path", path), logging.F("error", err))
		return
	}
	if err := generator.ShowDiff(output.Writer(), path, diff); err != nil {
		logging.Warn("cannot show diff", logging.F("path", path), logging.F("error", err))
	}
}
