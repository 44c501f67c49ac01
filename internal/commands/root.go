package commands

import (
	"github.com/simonhull/firebird-suite/nest/internal/logging"
	"github.com/simonhull/firebird-suite/nest/output"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...commands.Version=...".
var Version = "dev"

// RootCmd creates and returns the root command for the nest CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "nest",
		Short: "Set up native game projects on the GameMaker engine",
		Long: `nest generates the build files for a new game project from templates:
• Solution and project CMakeLists.txt
• Build and package scripts for every build configuration
• GenerateProjectFiles.bat and HotReload.bat
• LICENSE.txt, .gitignore and a minimal Src/Main.cpp

It never overwrites anything: if any file it would create already exists,
nothing is written.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
			logging.Setup(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().String("config", "", "Configuration file (default: nest.yml in the project root)")
	cmd.PersistentFlags().String("root", "", "Project root directory (default: current directory)")

	return cmd
}
