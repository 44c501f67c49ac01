package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/nest/generator"
	"github.com/simonhull/firebird-suite/nest/internal/catalog"
	"github.com/simonhull/firebird-suite/nest/internal/config"
	"github.com/simonhull/firebird-suite/nest/internal/logging"
	"github.com/simonhull/firebird-suite/nest/internal/project"
	"github.com/simonhull/firebird-suite/nest/internal/scaffold"
	"github.com/simonhull/firebird-suite/nest/internal/templates"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// commonOptions are the settings every command resolves the same way.
type commonOptions struct {
	root       string
	configFile string
	flags      *pflag.FlagSet // bound onto config keys; may be nil
}

func commonFromCmd(cmd *cobra.Command) commonOptions {
	root, _ := cmd.Flags().GetString("root")
	configFile, _ := cmd.Flags().GetString("config")
	return commonOptions{root: root, configFile: configFile, flags: cmd.Flags()}
}

// addSourceFlags registers the flags that select templates and catalogue.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("templates", "", "Template directory (default: built-in templates)")
	cmd.Flags().String("catalog", "", "Artifact catalogue file (default: built-in catalogue)")
}

// workspace is everything a command needs to build plans for one root.
type workspace struct {
	root    string
	cfg     *config.Config
	store   *generator.Store
	catalog *catalog.Catalog
	builder *scaffold.Builder
}

func openWorkspace(opts commonOptions) (*workspace, error) {
	root, err := resolveRoot(opts.root)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(config.LoadOptions{Root: root, File: opts.configFile, Flags: opts.flags})
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		logging.Debug("loaded configuration", logging.F("file", cfg.File))
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	store := templates.NewStore(cfg.Templates.Dir)
	logging.Debug("template source",
		logging.F("dir", cfg.Templates.Dir),
		logging.F("catalog", cfg.Catalog.Path),
		logging.F("artifacts", len(cat.Artifacts)))

	return &workspace{
		root:    root,
		cfg:     cfg,
		store:   store,
		catalog: cat,
		builder: scaffold.NewBuilder(store, cat, cfg.Settings()),
	}, nil
}

// plan builds the plan for name in the workspace root.
func (w *workspace) plan(name string, opts project.Options) (*generator.Plan, error) {
	desc, err := project.New(name, w.root, opts)
	if err != nil {
		return nil, err
	}

	plan, err := w.builder.BuildPlan(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to build plan: %w", err)
	}
	logging.Debug("plan built", logging.F("project", name), logging.F("files", plan.Len()))
	return plan, nil
}

// resolveRoot returns root as an absolute path, defaulting to the working directory.
func resolveRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid root %q: %w", root, err)
	}
	return abs, nil
}

// parseProjectOptions combines the --ignore flag with the optional second
// positional argument.
func parseProjectOptions(ignoreFlag bool, args []string) project.Options {
	opts := project.Options{IgnoreGenerated: ignoreFlag}
	for _, arg := range args {
		var ok bool
		if opts, ok = project.ParseOption(arg, opts); !ok {
			logging.Debug("ignoring unrecognized option", logging.F("option", arg))
		}
	}
	return opts
}
