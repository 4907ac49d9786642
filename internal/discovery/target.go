package discovery

import (
	"fmt"

	"github.com/spf-project/spf/internal/module"
)

// TargetKind tells which object of an advertised plugin gets registered.
type TargetKind int

const (
	// TargetModule registers the imported module itself.
	TargetModule TargetKind = iota
	// TargetInstance registers an attribute resolved from the module.
	TargetInstance
)

func (k TargetKind) String() string {
	switch k {
	case TargetModule:
		return "module"
	case TargetInstance:
		return "instance"
	default:
		return fmt.Sprintf("target(%d)", int(k))
	}
}

// Target is the object registered for an advertised plugin. It is fixed when
// the plugin is discovered.
type Target struct {
	kind     TargetKind
	module   *module.Module
	instance any
}

// ModuleTarget registers m itself.
func ModuleTarget(m *module.Module) Target {
	return Target{kind: TargetModule, module: m}
}

// InstanceTarget registers an object resolved from a module.
func InstanceTarget(instance any) Target {
	return Target{kind: TargetInstance, instance: instance}
}

// Kind returns whether t is a module or an instance.
func (t Target) Kind() TargetKind { return t.kind }

// Object returns the value handed to the registration callback.
func (t Target) Object() any {
	if t.kind == TargetInstance {
		return t.instance
	}
	return t.module
}
