package cli

import (
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spf-project/spf/internal/loader"
)

// LoadFlags holds command-line flags for the load command
type LoadFlags struct {
	Output      string
	Interactive bool
}

// NewLoadCommand creates the load command
func NewLoadCommand(container *CLIContainer) *cobra.Command {
	flags := &LoadFlags{}

	cmd := &cobra.Command{
		Use:   "load [config-file]",
		Short: "Register the plugins listed in a config file",
		Long: `Read the [plugins] section of an INI config file and register every
plugin with the host application.

Each key is an advertised plugin name or a dotted module path; the value is
an optional comma separated option string. Values may reference other keys
with %(key)s; write %% for a literal percent sign:

  [plugins]
  AccessLog = remote_addr,format=%%(path)s,enabled=True
  cors = origins=https://example.com,max_age=600
  mypkg.plugin

Examples:
  spf load                     # Load the config file from settings
  spf load plugins.ini         # Load a specific file
  spf load -o yaml plugins.ini # Print the result as YAML
  spf load -i                  # Browse the result interactively`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := container.Container.Settings.ConfigFile
			if len(args) > 0 {
				filename = args[0]
			}
			return runLoad(cmd, container, filename, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Output, "output", "o", "table", "Output format (table, json, yaml)")
	cmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Browse registered plugins in a terminal UI")

	return cmd
}

func runLoad(cmd *cobra.Command, container *CLIContainer, filename string, flags *LoadFlags) error {
	result, err := container.Container.Loader.LoadConfigFile(filename)
	if err != nil {
		return err
	}

	if flags.Interactive {
		program := tea.NewProgram(newBrowserModel(container.Container.Framework.Name(), result),
			tea.WithContext(cmd.Context()),
			tea.WithAltScreen(),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.OutOrStdout()),
		)
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("plugin browser failed: %w", err)
		}
		return nil
	}

	out := cmd.OutOrStdout()
	if err := writeResult(out, result, flags.Output); err != nil {
		return err
	}
	if flags.Output == "table" {
		framework := container.Container.Framework
		fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d plugins registered with %s.", len(framework.Registered()), framework.Name())))
	}
	return nil
}

func writeResult(w io.Writer, result loader.Result, format string) error {
	reports := NewReports(result)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	case "table":
		if len(reports) == 0 {
			_, err := fmt.Fprintln(w, mutedStyle.Render("No plugins registered."))
			return err
		}
		rows := make([][]string, 0, len(reports))
		for _, assoc := range orderedAssociations(result) {
			rows = append(rows, []string{
				fmt.Sprint(assoc.Registration.Order),
				assoc.Registration.PluginName,
				formatArgs(assoc.Registration.Options),
			})
		}
		return renderTable(w, []string{"#", "PLUGIN", "ARGUMENTS"}, rows)
	default:
		return fmt.Errorf("unknown output format %q: want table, json or yaml", format)
	}
}
