package discovery

import (
	"maps"
	"slices"
)

// Index maps advertised names to descriptors. Every descriptor is stored
// under its literal name and under its folded name; names that fold to the
// same key collide and the descriptor added last wins.
type Index struct {
	byName map[string]*Descriptor
	order  []*Descriptor
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{byName: make(map[string]*Descriptor)}
}

// Add indexes desc under its name and folded name.
func (i *Index) Add(desc *Descriptor) {
	i.byName[desc.Name] = desc
	i.byName[Fold(desc.Name)] = desc
	i.order = append(i.order, desc)
}

// Get returns the descriptor stored under exactly key.
func (i *Index) Get(key string) (*Descriptor, bool) {
	desc, ok := i.byName[key]
	return desc, ok
}

// Lookup folds reference and returns the matching descriptor.
func (i *Index) Lookup(reference string) (*Descriptor, bool) {
	return i.Get(Fold(reference))
}

// Keys returns every key in the index, sorted.
func (i *Index) Keys() []string {
	return slices.Sorted(maps.Keys(i.byName))
}

// Descriptors returns the indexed descriptors in discovery order, including
// ones shadowed by a later fold collision.
func (i *Index) Descriptors() []*Descriptor {
	return slices.Clone(i.order)
}

// Len returns the number of keys in the index.
func (i *Index) Len() int {
	return len(i.byName)
}
