// Package entrypoint holds the registry through which packages advertise
// plugins by name.
package entrypoint

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Namespace is the namespace under which plugins are advertised.
const Namespace = "spf_plugins"

// ErrInvalidEntryPoint is returned when an entry point cannot be parsed.
var ErrInvalidEntryPoint = errors.New("invalid entry point")

// EntryPoint maps a public name to a module and an optional attribute path.
type EntryPoint struct {
	Name   string
	Module string
	Attrs  []string
}

// String renders the entry point as "name = module:attr.path".
func (ep EntryPoint) String() string {
	s := ep.Name + " = " + ep.Module
	if len(ep.Attrs) > 0 {
		s += ":" + strings.Join(ep.Attrs, ".")
	}
	return s
}

// Attr returns the first declared attribute, if any.
func (ep EntryPoint) Attr() (string, bool) {
	if len(ep.Attrs) == 0 {
		return "", false
	}
	return ep.Attrs[0], true
}

// Parse reads the textual form "name = module.path:attr.path". The
// attribute part is optional.
func Parse(text string) (EntryPoint, error) {
	name, target, ok := strings.Cut(text, "=")
	name = strings.TrimSpace(name)
	target = strings.TrimSpace(target)
	if !ok || name == "" || target == "" {
		return EntryPoint{}, fmt.Errorf("%w: %q", ErrInvalidEntryPoint, text)
	}

	mod, attr, hasAttr := strings.Cut(target, ":")
	mod = strings.TrimSpace(mod)
	if mod == "" {
		return EntryPoint{}, fmt.Errorf("%w: %q has no module", ErrInvalidEntryPoint, text)
	}

	ep := EntryPoint{Name: name, Module: mod}
	if hasAttr {
		attr = strings.TrimSpace(attr)
		if attr == "" {
			return EntryPoint{}, fmt.Errorf("%w: %q has an empty attribute", ErrInvalidEntryPoint, text)
		}
		ep.Attrs = strings.Split(attr, ".")
	}
	return ep, nil
}

// Source enumerates the entry points published under a namespace.
type Source interface {
	Entries(namespace string) []EntryPoint
}

// Registry is an ordered, concurrency-safe collection of entry points per
// namespace.
type Registry struct {
	mu      sync.RWMutex
	entries map[string][]EntryPoint
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string][]EntryPoint)}
}

// Publish appends ep to namespace.
func (r *Registry) Publish(namespace string, ep EntryPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ep.Attrs = slices.Clone(ep.Attrs)
	r.entries[namespace] = append(r.entries[namespace], ep)
}

// Entries returns a copy of the entry points of namespace in publish order.
func (r *Registry) Entries(namespace string) []EntryPoint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries[namespace])
}

// Default is the process-wide registry.
var Default = NewRegistry()

// Advertise publishes the textual entry point under Namespace in Default.
// It panics on malformed text and is meant to be called from init functions.
func Advertise(text string) {
	ep, err := Parse(text)
	if err != nil {
		panic(err)
	}
	Default.Publish(Namespace, ep)
}

var _ Source = (*Registry)(nil)
