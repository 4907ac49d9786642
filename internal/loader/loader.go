// Package loader registers the plugins listed in a configuration file with a
// host framework.
package loader

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/spf-project/spf/internal/config"
	"github.com/spf-project/spf/internal/discovery"
	"github.com/spf-project/spf/internal/host"
	"github.com/spf-project/spf/internal/module"
	"github.com/spf-project/spf/internal/option"
)

// Registrar is the host capability plugins are registered through. Errors it
// returns are passed to the caller unchanged.
type Registrar interface {
	RegisterPlugin(target any, opts option.Options) (host.Association, error)
}

// Discoverer builds the index of advertised plugins.
type Discoverer interface {
	Discover() (*discovery.Index, []error)
}

// Result maps canonical plugin names to their associations.
type Result map[string]host.Association

// Loader resolves configuration entries to plugins and registers them.
type Loader struct {
	discoverer Discoverer
	importer   module.Importer
	registrar  Registrar
	log        *slog.Logger
}

// New creates a Loader. A nil log means slog.Default().
func New(discoverer Discoverer, importer module.Importer, registrar Registrar, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		discoverer: discoverer,
		importer:   importer,
		registrar:  registrar,
		log:        log,
	}
}

// LoadConfigFile registers every plugin listed in the [plugins] section of
// filename.
func (l *Loader) LoadConfigFile(filename string) (Result, error) {
	location, err := config.FindConfigFile(filename)
	if err != nil {
		return nil, err
	}

	log := l.log.With("load_id", uuid.NewString())
	log.Info(fmt.Sprintf("Loading spf config file %s.", location))

	entries, err := config.ReadPlugins(location)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}

	index, _ := l.discoverer.Discover()
	return l.registerAll(entries, index, log)
}

// RegisterAll registers entries in order against index. The first entry
// that cannot be resolved aborts the pass; plugins registered before it stay
// registered.
func (l *Loader) RegisterAll(entries []config.Entry, index *discovery.Index) (Result, error) {
	return l.registerAll(entries, index, l.log)
}

func (l *Loader) registerAll(entries []config.Entry, index *discovery.Index, log *slog.Logger) (Result, error) {
	registered := Result{}
	for _, entry := range entries {
		log.Info(fmt.Sprintf("Loading plugin: %s...", entry.Reference))

		opts := option.Empty()
		if entry.HasOptions && entry.Options != "" {
			opts = option.Parse(entry.Options)
		}

		assoc, err := l.register(entry.Reference, opts, index, log)
		if err != nil {
			return registered, err
		}
		registered[assoc.Registration.PluginName] = assoc
	}
	return registered, nil
}

func (l *Loader) register(reference string, opts option.Options, index *discovery.Index, log *slog.Logger) (host.Association, error) {
	if desc, ok := index.Lookup(reference); ok {
		log.Info(fmt.Sprintf("Found advertised plugin %s.", desc.Name))
		return l.registrar.RegisterPlugin(desc.Target.Object(), opts)
	}

	mod, err := l.importer.Import(reference)
	if err != nil {
		return host.Association{}, &UnresolvedPluginError{Reference: reference, Err: err}
	}
	return l.registrar.RegisterPlugin(mod, opts)
}
