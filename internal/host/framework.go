package host

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/spf-project/spf/internal/module"
	"github.com/spf-project/spf/internal/option"
)

// Framework owns the table of registered plugins.
type Framework struct {
	name string
	log  *slog.Logger

	mu      sync.RWMutex
	plugins []Association
	byName  map[string]Association
}

// New creates a Framework for the application name.
func New(name string, log *slog.Logger) *Framework {
	if log == nil {
		log = slog.Default()
	}
	return &Framework{
		name:   name,
		log:    log.With("app", name),
		byName: make(map[string]Association),
	}
}

// Name returns the application name.
func (f *Framework) Name() string { return f.name }

// RegisterPlugin registers target with opts. The target is either a Plugin
// or a *module.Module exposing a Plugin under one of InstanceAttrs.
// Registering a plugin whose name is already registered returns the existing
// association unchanged.
func (f *Framework) RegisterPlugin(target any, opts option.Options) (Association, error) {
	p, err := resolvePlugin(target)
	if err != nil {
		return Association{}, err
	}
	name := p.Name()
	if name == "" {
		return Association{}, fmt.Errorf("register %T: %w", p, ErrEmptyName)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.byName[name]; ok {
		f.log.Warn("Plugin already registered.", "plugin", name)
		return existing, nil
	}

	if c, ok := p.(Configurable); ok {
		if err := c.Configure(opts); err != nil {
			return Association{}, fmt.Errorf("configure plugin %s: %w", name, err)
		}
	}

	assoc := Association{
		Plugin: p,
		Registration: &Registration{
			PluginName: name,
			Options:    opts,
			Order:      len(f.plugins),
		},
	}
	f.plugins = append(f.plugins, assoc)
	f.byName[name] = assoc

	f.log.Info("Plugin registered.", "plugin", name, "args", len(opts.Positional), "kwargs", len(opts.Named))
	return assoc, nil
}

// Registered returns all associations in registration order.
func (f *Framework) Registered() []Association {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.plugins)
}

// Lookup returns the association of the plugin registered under name.
func (f *Framework) Lookup(name string) (Association, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	assoc, ok := f.byName[name]
	return assoc, ok
}

func resolvePlugin(target any) (Plugin, error) {
	switch t := target.(type) {
	case Plugin:
		return t, nil
	case *module.Module:
		for _, attr := range InstanceAttrs {
			v, err := t.Attr(attr)
			if err != nil {
				if errors.Is(err, module.ErrAttributeNotFound) {
					continue
				}
				return nil, err
			}
			if p, ok := v.(Plugin); ok {
				return p, nil
			}
		}
		return nil, fmt.Errorf("%w: %s exposes none of %v", ErrNotAPlugin, t.Path(), InstanceAttrs)
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotAPlugin, target)
	}
}
