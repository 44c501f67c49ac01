package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/simonhull/firebird-suite/nest/internal/commands"
	"github.com/simonhull/firebird-suite/nest/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := commands.RootCmd()
	rootCmd.AddCommand(commands.SetupCmd())
	rootCmd.AddCommand(commands.PlanCmd())
	rootCmd.AddCommand(commands.TemplatesCmd())
	rootCmd.AddCommand(commands.CatalogCmd())

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
