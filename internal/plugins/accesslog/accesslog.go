// Package accesslog is an advertised plugin that configures request access
// logging for the host application.
package accesslog

import (
	"fmt"

	"github.com/spf-project/spf/internal/entrypoint"
	"github.com/spf-project/spf/internal/module"
	"github.com/spf-project/spf/internal/option"
)

// ModulePath is the import path the plugin is registered under.
const ModulePath = "spf.plugins.accesslog"

// DefaultFormat is used when no format option is given.
const DefaultFormat = "%(method)s %(path)s %(status)d"

// Plugin holds the access log settings.
type Plugin struct {
	Format  string
	Enabled bool
	Fields  []string
}

// New creates the plugin with default settings.
func New() *Plugin {
	return &Plugin{Format: DefaultFormat, Enabled: true}
}

func (p *Plugin) Name() string { return "AccessLog" }

// Configure applies the options. Positional values replace the extra fields
// to log; the named options are format (string) and enabled (bool). Nothing
// changes when an option is invalid.
func (p *Plugin) Configure(opts option.Options) error {
	format, enabled := p.Format, p.Enabled
	if v, ok := opts.Lookup("format"); ok {
		s, isString := v.Str()
		if !isString {
			return fmt.Errorf("format must be a string, got %s", v.Kind())
		}
		format = s
	}
	if v, ok := opts.Lookup("enabled"); ok {
		b, isBool := v.Bool()
		if !isBool {
			return fmt.Errorf("enabled must be True or False, got %s", v)
		}
		enabled = b
	}

	fields := make([]string, 0, len(opts.Positional))
	for _, v := range opts.Positional {
		s, isString := v.Str()
		if !isString {
			s = v.String()
		}
		fields = append(fields, s)
	}

	p.Format, p.Enabled, p.Fields = format, enabled, fields
	return nil
}

// Instance is the object advertised for the plugin.
var Instance = New()

func init() {
	module.Register(ModulePath, map[string]any{"instance": Instance})
	entrypoint.Advertise("AccessLog = " + ModulePath + ":instance")
}
