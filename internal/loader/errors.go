package loader

import (
	"errors"
	"fmt"
)

// ErrUnresolvedPlugin is matched by every *UnresolvedPluginError.
var ErrUnresolvedPlugin = errors.New("unresolved plugin")

// UnresolvedPluginError reports a configured reference that is neither an
// advertised plugin nor an importable module.
type UnresolvedPluginError struct {
	Reference string
	Err       error
}

func (e *UnresolvedPluginError) Error() string {
	return fmt.Sprintf("Do not know how to register plugin: %s", e.Reference)
}

func (e *UnresolvedPluginError) Unwrap() []error {
	return []error{ErrUnresolvedPlugin, e.Err}
}
