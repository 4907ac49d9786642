// Package cors is an advertised plugin that sets cross-origin resource
// sharing policy. It is advertised without an attribute, so the module
// itself is registered and the host picks up its plugin attribute.
package cors

import (
	"fmt"
	"strings"

	"github.com/spf-project/spf/internal/entrypoint"
	"github.com/spf-project/spf/internal/module"
	"github.com/spf-project/spf/internal/option"
)

// ModulePath is the import path the plugin is registered under.
const ModulePath = "spf.plugins.cors"

// Plugin holds the cross-origin policy.
type Plugin struct {
	Origins          []string
	MaxAge           int64
	AllowCredentials bool
}

// Name returns "cors".
func (p *Plugin) Name() string { return "cors" }

// Configure reads origins (separated by spaces, since commas split options),
// max_age and allow_credentials. Positional values are further origins. The
// origins are replaced, and nothing changes when an option is invalid.
func (p *Plugin) Configure(opts option.Options) error {
	origins := make([]string, 0, len(opts.Positional))
	for _, v := range opts.Positional {
		s, ok := v.Str()
		if !ok {
			return fmt.Errorf("origin must be a string, got %s", v)
		}
		origins = append(origins, s)
	}
	if v, ok := opts.Lookup("origins"); ok {
		s, isString := v.Str()
		if !isString {
			return fmt.Errorf("origins must be a string, got %s", v)
		}
		origins = append(origins, strings.Fields(s)...)
	}

	maxAge := p.MaxAge
	if v, ok := opts.Lookup("max_age"); ok {
		n, isInt := v.Int()
		if !isInt || n < 0 {
			return fmt.Errorf("max_age must be a non-negative integer, got %s", v)
		}
		maxAge = n
	}

	allowCredentials := p.AllowCredentials
	if v, ok := opts.Lookup("allow_credentials"); ok {
		b, isBool := v.Bool()
		if !isBool {
			return fmt.Errorf("allow_credentials must be True or False, got %s", v)
		}
		allowCredentials = b
	}

	p.Origins, p.MaxAge, p.AllowCredentials = origins, maxAge, allowCredentials
	return nil
}

func init() {
	module.Register(ModulePath, map[string]any{"plugin": &Plugin{}})
	entrypoint.Advertise("cors = " + ModulePath)
}
