// Package module is the in-process table of importable plugin modules.
//
// Packages make themselves importable by dotted path from an init function:
//
//	func init() {
//		module.Register("mypkg.plugin", map[string]any{"instance": New()})
//	}
//
// and the loader later resolves configuration references through Import.
package module

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var (
	// ErrModuleNotFound is returned when no module is registered under a path.
	ErrModuleNotFound = errors.New("module not found")
	// ErrAttributeNotFound is returned when a module has no attribute of the
	// requested name.
	ErrAttributeNotFound = errors.New("attribute not found")
	// ErrDuplicateModule is returned when a path is registered twice.
	ErrDuplicateModule = errors.New("module already registered")
)

// Module is a named set of exported attributes.
type Module struct {
	path  string
	attrs map[string]any
}

// New creates a module with a copy of attrs.
func New(path string, attrs map[string]any) *Module {
	return &Module{path: path, attrs: maps.Clone(attrs)}
}

// Path returns the dotted import path of the module.
func (m *Module) Path() string { return m.path }

// Attr resolves a named attribute.
func (m *Module) Attr(name string) (any, error) {
	v, ok := m.attrs[name]
	if !ok {
		return nil, fmt.Errorf("%w: module %s has no attribute %s", ErrAttributeNotFound, m.path, name)
	}
	return v, nil
}

// AttrNames returns the sorted attribute names of the module.
func (m *Module) AttrNames() []string {
	return slices.Sorted(maps.Keys(m.attrs))
}

func (m *Module) String() string {
	return "module " + m.path
}

// Importer resolves a dotted path to a module.
type Importer interface {
	Import(path string) (*Module, error)
}

// Table is a concurrency-safe set of modules keyed by path.
type Table struct {
	mu      sync.RWMutex
	modules map[string]*Module
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{modules: make(map[string]*Module)}
}

// Add makes m importable by its path.
func (t *Table) Add(m *Module) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.modules[m.path]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateModule, m.path)
	}
	t.modules[m.path] = m
	return nil
}

// Import returns the module registered under path. Paths are case-sensitive.
func (t *Table) Import(path string) (*Module, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	m, ok := t.modules[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, path)
	}
	return m, nil
}

// Paths returns all registered paths, sorted.
func (t *Table) Paths() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Sorted(maps.Keys(t.modules))
}

// Default is the process-wide module table.
var Default = NewTable()

// Register adds a module to Default. It panics if path is already taken, so
// it is meant to be called from init functions.
func Register(path string, attrs map[string]any) *Module {
	m := New(path, attrs)
	if err := Default.Add(m); err != nil {
		panic(err)
	}
	return m
}

var _ Importer = (*Table)(nil)
