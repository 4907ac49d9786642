// Package discovery builds the index of plugins advertised through an
// entry point registry.
package discovery

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/text/cases"

	"github.com/spf-project/spf/internal/entrypoint"
	"github.com/spf-project/spf/internal/module"
)

// Descriptor describes one advertised plugin.
type Descriptor struct {
	// Name is the advertised name with its original casing.
	Name string
	// Module is the imported module named by the entry point.
	Module *module.Module
	// Target is what gets registered: the resolved attribute when the entry
	// point names one and it is not nil, otherwise Module.
	Target Target
}

// ImportError reports an entry point whose module could not be imported.
type ImportError struct {
	EntryPoint entrypoint.EntryPoint
	Err        error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("Cannot import %s", e.EntryPoint.Module)
}

func (e *ImportError) Unwrap() error { return e.Err }

// AttributeError reports an entry point whose attribute could not be
// resolved on its module.
type AttributeError struct {
	EntryPoint entrypoint.EntryPoint
	Attr       string
	Err        error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("Cannot import %s from %s", e.Attr, e.EntryPoint.Module)
}

func (e *AttributeError) Unwrap() error { return e.Err }

// Discoverer enumerates advertised plugins.
type Discoverer struct {
	source    entrypoint.Source
	importer  module.Importer
	namespace string
	log       *slog.Logger
}

// NewDiscoverer creates a Discoverer reading namespace from source and
// importing modules through importer. An empty namespace means
// entrypoint.Namespace.
func NewDiscoverer(source entrypoint.Source, importer module.Importer, namespace string, log *slog.Logger) *Discoverer {
	if namespace == "" {
		namespace = entrypoint.Namespace
	}
	if log == nil {
		log = slog.Default()
	}
	return &Discoverer{
		source:    source,
		importer:  importer,
		namespace: namespace,
		log:       log,
	}
}

// Discover imports every advertised plugin and indexes it by name. Entry
// points that cannot be imported or resolved are logged and skipped; they
// are returned as the second result and never abort discovery.
func (d *Discoverer) Discover() (*Index, []error) {
	index := NewIndex()
	var skipped []error

	for _, ep := range d.source.Entries(d.namespace) {
		desc, err := d.resolve(ep)
		if err != nil {
			d.log.Error(err.Error(), "plugin", ep.Name, "error", errors.Unwrap(err))
			skipped = append(skipped, err)
			continue
		}
		index.Add(desc)
		d.log.Debug("Advertised plugin discovered.", "plugin", desc.Name, "module", ep.Module, "target", desc.Target.Kind())
	}
	return index, skipped
}

func (d *Discoverer) resolve(ep entrypoint.EntryPoint) (*Descriptor, error) {
	mod, err := d.importer.Import(ep.Module)
	if err != nil {
		return nil, &ImportError{EntryPoint: ep, Err: err}
	}

	desc := &Descriptor{Name: ep.Name, Module: mod, Target: ModuleTarget(mod)}
	if attr, ok := ep.Attr(); ok {
		inst, err := mod.Attr(attr)
		if err != nil {
			return nil, &AttributeError{EntryPoint: ep, Attr: attr, Err: err}
		}
		// A nil attribute leaves the module as the target.
		if inst != nil {
			desc.Target = InstanceTarget(inst)
		}
	}
	return desc, nil
}

// Fold returns the caseless form of s used for plugin name lookups.
func Fold(s string) string {
	return cases.Fold().String(s)
}
