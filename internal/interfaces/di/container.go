package di

import (
	"io"
	"log/slog"

	"github.com/spf-project/spf/internal/discovery"
	"github.com/spf-project/spf/internal/entrypoint"
	"github.com/spf-project/spf/internal/host"
	"github.com/spf-project/spf/internal/loader"
	"github.com/spf-project/spf/internal/module"
	"github.com/spf-project/spf/internal/settings"
)

// Container holds all application dependencies
type Container struct {
	Settings settings.Settings
	Logger   *slog.Logger

	// Registries
	Modules     *module.Table
	EntryPoints *entrypoint.Registry

	// Services
	Framework  *host.Framework
	Discoverer *discovery.Discoverer
	Loader     *loader.Loader
}

// Option overrides a dependency of the container
type Option func(*Container)

// WithRegistries replaces the process-wide module table and entry point
// registry, mainly for tests.
func WithRegistries(modules *module.Table, entryPoints *entrypoint.Registry) Option {
	return func(c *Container) {
		c.Modules = modules
		c.EntryPoints = entryPoints
	}
}

// NewContainer creates and wires the dependency container. Logs are written
// to logOut.
func NewContainer(s settings.Settings, logOut io.Writer, opts ...Option) *Container {
	c := &Container{
		Settings:    s,
		Logger:      s.Log.NewLogger(logOut),
		Modules:     module.Default,
		EntryPoints: entrypoint.Default,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.initializeComponents()
	return c
}

// initializeComponents initializes all components with proper dependencies
func (c *Container) initializeComponents() {
	c.Framework = host.New(c.Settings.App, c.Logger)
	c.Discoverer = discovery.NewDiscoverer(c.EntryPoints, c.Modules, c.Settings.Namespace, c.Logger.With("subsystem", "discovery"))
	c.Loader = loader.New(c.Discoverer, c.Modules, c.Framework, c.Logger.With("subsystem", "loader"))
}
