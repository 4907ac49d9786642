package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/ini.v1"
)

// PluginsSection is the section listing the plugins to register.
const PluginsSection = "plugins"

// Entry is one plugin reference from the [plugins] section.
type Entry struct {
	// Reference is the key: an advertised plugin name or a dotted module path.
	Reference string
	// Options is the raw option string. It is empty when HasOptions is false.
	Options string
	// HasOptions is false for a bare key without '=' or ':'.
	HasOptions bool
}

// Defaults returns the values seeded into the DEFAULT section before the
// file is read.
func Defaults() map[string]string {
	return map[string]string{}
}

func loadOptions(allowBareKeys bool) ini.LoadOptions {
	return ini.LoadOptions{
		AllowBooleanKeys:           allowBareKeys,
		SkipUnrecognizableLines:    !allowBareKeys,
		IgnoreInlineComment:        true,
		IgnoreContinuation:         true,
		PreserveSurroundedQuote:    true,
		AllowPythonMultilineValues: true,
		KeyValueDelimiters:         "=:",
	}
}

// ReadPlugins parses the INI file at path and returns the [plugins] entries
// in file order. Keys of the DEFAULT section are visible in [plugins] unless
// overridden there, and come first. A repeated key keeps its first position
// and its last value. Values are expanded with %(key)s references to other
// keys of the section and "%%" escapes.
func ReadPlugins(path string) ([]Entry, error) {
	return readPlugins(path)
}

// ParsePlugins is ReadPlugins for in-memory content.
func ParsePlugins(content []byte) ([]Entry, error) {
	return readPlugins(content)
}

func readPlugins(source any) ([]Entry, error) {
	file, err := ini.LoadSources(loadOptions(true), source)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if !file.HasSection(PluginsSection) {
		return nil, ErrNoPluginsSection
	}
	// A second pass that skips bare keys tells them apart from keys whose
	// value happens to read "true".
	valued, err := ini.LoadSources(loadOptions(false), source)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var entries []Entry
	positions := map[string]int{}
	put := func(e Entry) {
		if i, ok := positions[e.Reference]; ok {
			entries[i] = e
			return
		}
		positions[e.Reference] = len(entries)
		entries = append(entries, e)
	}

	defaults := Defaults()
	for _, key := range slices.Sorted(maps.Keys(defaults)) {
		put(Entry{Reference: key, Options: defaults[key], HasOptions: true})
	}
	for _, name := range []string{ini.DefaultSection, PluginsSection} {
		sec := file.Section(name)
		withValues := ownKeys(valued, name)
		for _, key := range sec.Keys() {
			e := Entry{Reference: key.Name()}
			if v, ok := withValues[key.Name()]; ok {
				e.Options = v
				e.HasOptions = true
			}
			put(e)
		}
	}

	vars := make(map[string]*string, len(entries))
	for i := range entries {
		if entries[i].HasOptions {
			vars[strings.ToLower(entries[i].Reference)] = &entries[i].Options
		} else {
			vars[strings.ToLower(entries[i].Reference)] = nil
		}
	}
	expanded := make([]Entry, len(entries))
	for i, e := range entries {
		if e.HasOptions {
			v, err := interpolate(e.Options, vars)
			if err != nil {
				return nil, &InterpolationError{Key: e.Reference, Value: e.Options, Err: err}
			}
			e.Options = v
		}
		expanded[i] = e
	}
	return expanded, nil
}

// ownKeys returns the keys defined directly in section name, without the
// values ini inherits from parent sections.
func ownKeys(file *ini.File, name string) map[string]string {
	keys := map[string]string{}
	sec, err := file.GetSection(name)
	if err != nil {
		return keys
	}
	for _, key := range sec.Keys() {
		keys[key.Name()] = key.Value()
	}
	return keys
}
