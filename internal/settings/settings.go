// Package settings holds the settings of the spf command itself, read from a
// TOML file and overridden by SPF_* environment variables.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml"

	"github.com/spf-project/spf/internal/entrypoint"
)

// DefaultPath is the settings file looked up when none is given.
const DefaultPath = "spf.toml"

// Settings controls logging and where plugins are read from.
type Settings struct {
	// App is the name of the host application plugins are registered with.
	App string `toml:"app"`
	// ConfigFile is the INI file loaded when none is given on the command line.
	ConfigFile string `toml:"config_file"`
	// Namespace is the entry point namespace advertised plugins are read from.
	Namespace string `toml:"namespace"`
	Log       Log    `toml:"log"`
}

// Log configures the structured logger.
type Log struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		App:        "spf",
		ConfigFile: "spf.ini",
		Namespace:  entrypoint.Namespace,
		Log:        Log{Level: "info", Format: "text"},
	}
}

// Load reads the TOML file at path over Default and applies the environment.
// A missing file is not an error when path is DefaultPath.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	default:
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	s.ApplyEnv(os.LookupEnv)
	return s, s.Validate()
}

// ApplyEnv overrides fields from SPF_APP, SPF_CONFIG_FILE, SPF_NAMESPACE,
// SPF_LOG_LEVEL and SPF_LOG_FORMAT.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, field *string) {
		if v, ok := lookup(key); ok && v != "" {
			*field = v
		}
	}
	set("SPF_APP", &s.App)
	set("SPF_CONFIG_FILE", &s.ConfigFile)
	set("SPF_NAMESPACE", &s.Namespace)
	set("SPF_LOG_LEVEL", &s.Log.Level)
	set("SPF_LOG_FORMAT", &s.Log.Format)
}

// Validate checks the log settings.
func (s Settings) Validate() error {
	if _, err := s.Log.level(); err != nil {
		return err
	}
	switch strings.ToLower(s.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: want text or json", s.Log.Format)
	}
	return nil
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// Encode renders s as TOML.
func (s Settings) Encode() ([]byte, error) {
	return toml.Marshal(s)
}
