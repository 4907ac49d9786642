// Package plugins links the builtin plugins into a binary. Importing it for
// its side effects makes every builtin importable and advertised.
package plugins

import (
	_ "github.com/spf-project/spf/internal/plugins/accesslog"
	_ "github.com/spf-project/spf/internal/plugins/cors"
)
