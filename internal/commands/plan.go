package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/simonhull/firebird-suite/nest/generator"
	"github.com/simonhull/firebird-suite/nest/output"
	"github.com/spf13/cobra"
)

type planOptions struct {
	commonOptions

	args     []string
	ignore   bool
	show     string
	existing bool
}

// PlanCmd creates and returns the 'plan' command, which previews a setup
// without touching the disk.
func PlanCmd() *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan <project-name> [option]",
		Short: "Show the files setup would generate",
		Long: `Builds the setup plan for a project and prints it without checking or
writing anything.

Example:
  nest plan Sandbox
  nest plan Sandbox --show .gitignore --ignore
  nest plan Sandbox --existing`,
		Args: cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			opts.commonOptions = commonFromCmd(cmd)
			opts.args = args

			if err := runPlan(opts); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
		},
	}

	addSourceFlags(cmd)
	cmd.Flags().BoolVar(&opts.ignore, "ignore", false, "Plan with generated files added to .gitignore")
	cmd.Flags().StringVar(&opts.show, "show", "", "Print the generated content of one file")
	cmd.Flags().BoolVar(&opts.existing, "existing", false, "List planned files that already exist in the root")

	return cmd
}

func runPlan(opts planOptions) error {
	ws, err := openWorkspace(opts.commonOptions)
	if err != nil {
		return err
	}

	plan, err := ws.plan(opts.args[0], parseProjectOptions(opts.ignore, opts.args[1:]))
	if err != nil {
		return err
	}

	w := output.Writer()

	if opts.show != "" {
		entry, ok := plan.Entry(opts.show)
		if !ok {
			return fmt.Errorf("%s is not part of the plan; run 'nest plan %s' to list files", opts.show, opts.args[0])
		}
		_, err := w.Write(entry.Content)
		return err
	}

	if opts.existing {
		outcome := generator.Check(plan, generator.CheckOptions{Exhaustive: true})
		if err := outcome.Err(); err != nil && !errors.Is(err, generator.ErrPreconditionBlocked) {
			return err
		}

		found := 0
		for _, r := range outcome.Results {
			if r.Blocking() {
				output.Step(r.Path)
				found++
			}
		}
		if found == 0 {
			output.Info(fmt.Sprintf("None of the %d planned files exist in %s", plan.Len(), ws.root))
		} else {
			output.Info(fmt.Sprintf("%d of %d planned files already exist; setup would abort", found, plan.Len()))
		}
		return nil
	}

	output.Info(fmt.Sprintf("Plan for %s in %s:", opts.args[0], plan.Root()))
	for _, op := range plan.Operations() {
		output.Step(op.Description())
	}
	return nil
}
