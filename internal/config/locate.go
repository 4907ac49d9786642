// Package config reads the plugin configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound is returned when the configuration path is not a regular file.
	ErrNotFound = errors.New("config file not found")
	// ErrNoPluginsSection is returned when the file has no [plugins] section.
	ErrNoPluginsSection = errors.New("no [plugins] section")
)

// FindConfigFile resolves filename to an absolute path and checks that a
// regular file exists there.
func FindConfigFile(filename string) (string, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrNotFound, filename, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s: %w", ErrNotFound, filename, fs.ErrNotExist)
		}
		return "", fmt.Errorf("%w: %s: %w", ErrNotFound, filename, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrNotFound, filename)
	}
	return abs, nil
}
