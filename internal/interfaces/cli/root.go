package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/spf-project/spf/internal/interfaces/di"
	"github.com/spf-project/spf/internal/settings"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// ContainerFactory builds the dependency container once settings are known.
type ContainerFactory func(cmd *cobra.Command, s settings.Settings) *di.Container

// CLIContainer holds the dependencies shared by all commands. Container is
// set by the root command before any subcommand runs.
type CLIContainer struct {
	Container *di.Container
	factory   ContainerFactory
}

// NewCLIContainer creates a CLIContainer. A nil factory wires the
// process-wide registries and logs to the command's error stream.
func NewCLIContainer(factory ContainerFactory) *CLIContainer {
	if factory == nil {
		factory = func(cmd *cobra.Command, s settings.Settings) *di.Container {
			return di.NewContainer(s, cmd.ErrOrStderr())
		}
	}
	return &CLIContainer{factory: factory}
}

// NewRootCommand creates the spf command with all subcommands
func NewRootCommand(container *CLIContainer) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "spf",
		Short: "spf - plugin configuration loader",
		Long: `spf reads the [plugins] section of an INI file and registers every
listed plugin with the host application.

Plugins are found by their advertised name (case-insensitive) or imported by
their dotted module path. Each plugin may carry a comma separated option
string of positional and key=value arguments.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			container.Container = container.factory(cmd, s)
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().String("settings", "", "Settings file path (default is ./"+settings.DefaultPath+")")
	rootCmd.PersistentFlags().String("app", "", "Name of the host application")
	rootCmd.PersistentFlags().String("namespace", "", "Entry point namespace of advertised plugins")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(NewLoadCommand(container))
	rootCmd.AddCommand(NewPluginsCommand(container))
	rootCmd.AddCommand(NewOptionsCommand())
	rootCmd.AddCommand(NewSettingsCommand(container))

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// loadSettings reads the settings file and applies explicitly set flags on
// top of it.
func loadSettings(cmd *cobra.Command) (settings.Settings, error) {
	path, _ := cmd.Flags().GetString("settings")
	s, err := settings.Load(path)
	if err != nil {
		return settings.Settings{}, err
	}

	override := func(flag string, field *string) {
		if cmd.Flags().Changed(flag) {
			*field, _ = cmd.Flags().GetString(flag)
		}
	}
	override("app", &s.App)
	override("namespace", &s.Namespace)
	override("log-level", &s.Log.Level)
	override("log-format", &s.Log.Format)

	return s, s.Validate()
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context, container *CLIContainer) int {
	rootCmd := NewRootCommand(container)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
