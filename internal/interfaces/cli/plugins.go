package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spf-project/spf/internal/discovery"
	"github.com/spf-project/spf/internal/module"
)

// PluginsFlags holds command-line flags for the plugins command
type PluginsFlags struct {
	Keys    bool
	Modules bool
}

// NewPluginsCommand creates the plugins command
func NewPluginsCommand(container *CLIContainer) *cobra.Command {
	flags := &PluginsFlags{}

	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List advertised plugins",
		Long: `List every plugin advertised in the configured entry point namespace,
with the module it lives in and whether the module or an attribute of it
gets registered. Entry points that cannot be imported are listed after the
table.

Examples:
  spf plugins            # Advertised plugins
  spf plugins --keys     # Every name a config file may use to reach them
  spf plugins --modules  # Every importable module and its attributes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if flags.Modules {
				return listModules(out, container.Container.Modules)
			}
			index, skipped := container.Container.Discoverer.Discover()
			if flags.Keys {
				return listKeys(out, index)
			}
			return listAdvertised(out, container, index, skipped)
		},
	}

	cmd.Flags().BoolVar(&flags.Keys, "keys", false, "List the lookup keys of the plugin index")
	cmd.Flags().BoolVar(&flags.Modules, "modules", false, "List importable modules instead of advertised plugins")
	cmd.MarkFlagsMutuallyExclusive("keys", "modules")

	return cmd
}

func listAdvertised(out io.Writer, container *CLIContainer, index *discovery.Index, skipped []error) error {
	descs := index.Descriptors()
	if len(descs) == 0 {
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("No plugins advertised in %q.", container.Container.Settings.Namespace)))
	} else {
		rows := make([][]string, 0, len(descs))
		for _, desc := range descs {
			rows = append(rows, []string{desc.Name, desc.Module.Path(), desc.Target.Kind().String()})
		}
		if err := renderTable(out, []string{"NAME", "MODULE", "TARGET"}, rows); err != nil {
			return err
		}
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d advertised, %d lookup keys.", len(descs), index.Len())))
	}

	for _, err := range skipped {
		fmt.Fprintln(out, warnStyle.Render("skipped: "+err.Error()))
	}
	return nil
}

func listKeys(out io.Writer, index *discovery.Index) error {
	keys := index.Keys()
	if len(keys) == 0 {
		_, err := fmt.Fprintln(out, mutedStyle.Render("The plugin index is empty."))
		return err
	}
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		desc, _ := index.Get(key)
		rows = append(rows, []string{key, desc.Name})
	}
	return renderTable(out, []string{"KEY", "PLUGIN"}, rows)
}

func listModules(out io.Writer, table *module.Table) error {
	paths := table.Paths()
	if len(paths) == 0 {
		_, err := fmt.Fprintln(out, mutedStyle.Render("No modules registered."))
		return err
	}
	rows := make([][]string, 0, len(paths))
	for _, path := range paths {
		m, err := table.Import(path)
		if err != nil {
			return err
		}
		attrs := strings.Join(m.AttrNames(), ",")
		if attrs == "" {
			attrs = "-"
		}
		rows = append(rows, []string{path, attrs})
	}
	return renderTable(out, []string{"MODULE", "ATTRIBUTES"}, rows)
}
