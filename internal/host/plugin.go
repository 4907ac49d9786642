// Package host is the application framework that plugins register with.
package host

import (
	"errors"

	"github.com/spf-project/spf/internal/option"
)

// Plugin is an extension that can be registered with a Framework.
type Plugin interface {
	// Name returns the canonical name of the plugin. It must be unique within
	// one Framework.
	Name() string
}

// Configurable may be implemented by plugins that accept the options from
// the configuration file. Configure is called once, at registration.
type Configurable interface {
	Configure(opts option.Options) error
}

// Registration records how a plugin was registered.
type Registration struct {
	// PluginName is the canonical name reported by the plugin.
	PluginName string
	// Options are the arguments the plugin was registered with.
	Options option.Options
	// Order is the zero-based position in registration order.
	Order int
}

// Association pairs a registered plugin with its registration record.
type Association struct {
	Plugin       Plugin
	Registration *Registration
}

// InstanceAttrs are the module attributes searched, in order, for the plugin
// when a module is registered.
var InstanceAttrs = []string{"instance", "plugin"}

var (
	// ErrNotAPlugin is returned when the registration target is not a plugin
	// and is not a module exposing one.
	ErrNotAPlugin = errors.New("not a plugin")
	// ErrEmptyName is returned for plugins whose Name is empty.
	ErrEmptyName = errors.New("plugin has an empty name")
)
