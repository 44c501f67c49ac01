package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/simonhull/firebird-suite/nest/generator"
	"github.com/simonhull/firebird-suite/nest/internal/catalog"
	"github.com/simonhull/firebird-suite/nest/output"
	"github.com/spf13/cobra"
)

// TemplatesCmd creates and returns the 'templates' command
func TemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates [category/name]",
		Short: "List templates, or print one",
		Long: `Lists the templates in the active template source with the placeholders
each one uses. With an id, prints that template's text.

Example:
  nest templates
  nest templates script/Build
  nest templates --templates ./my-templates`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := runTemplates(commonFromCmd(cmd), args); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
		},
	}

	addSourceFlags(cmd)
	return cmd
}

func runTemplates(opts commonOptions, args []string) error {
	ws, err := openWorkspace(opts)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		id, err := generator.ParseTemplateID(args[0])
		if err != nil {
			return err
		}
		text, err := ws.store.Load(id)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(output.Writer(), text)
		return err
	}

	ids, err := ws.store.List()
	if err != nil {
		return err
	}
	for _, id := range ids {
		text, err := ws.store.Load(id)
		if err != nil {
			return err
		}
		markers := generator.Markers(text)
		output.Step(fmt.Sprintf("%-30s %s", id, strings.Join(markers, ", ")))
	}
	return nil
}

// CatalogCmd creates and returns the 'catalog' command
func CatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the active artifact catalogue",
		Long: `Prints the catalogue of files setup generates, as YAML. Save the output,
edit it and pass it with --catalog (or catalog.path in nest.yml) to change
which files a setup creates.

Example:
  nest catalog > catalog.yml`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runCatalog(commonFromCmd(cmd)); err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}
		},
	}

	addSourceFlags(cmd)
	return cmd
}

func runCatalog(opts commonOptions) error {
	ws, err := openWorkspace(opts)
	if err != nil {
		return err
	}

	data, err := catalog.WriteBytes(ws.catalog)
	if err != nil {
		return err
	}
	_, err = output.Writer().Write(data)
	return err
}
