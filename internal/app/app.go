package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/plugrid/internal/config"
	"github.com/vk/plugrid/internal/ctxlog"
	"github.com/vk/plugrid/internal/modules"
	"github.com/vk/plugrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	settings *config.Settings
	configs  *config.Catalog
	index    *modules.Index
	managers *registry.Catalog
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, module
// index and manager catalog. Extra entries let tests contribute service
// modules for workspace configs. Startup failures here are programmer or
// workspace errors without a recovery path, so they panic; the CLI
// entrypoint recovers and turns them into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, extra ...Entry) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	ws, err := loader.Load(ctx, appConfig.WorkspacePath)
	if err != nil {
		panic(fmt.Errorf("failed to load workspace: %w", err))
	}
	catalog, err := config.NewCatalog(ws)
	if err != nil {
		panic(fmt.Errorf("failed to build config catalog: %w", err))
	}
	logger.Debug("Config catalog built.",
		"configured", ws.Settings.Configured(),
		"user_configs", len(catalog.UserConfigs()))

	index := modules.New()
	for _, e := range coreModules {
		index.Register(e.Path, e.Module)
	}
	for _, e := range extra {
		index.Register(e.Path, e.Module)
	}
	logger.Debug("Module index populated.", "extra", len(extra))

	managers := registry.NewCatalog(&registry.Runtime{
		Settings: ws.Settings,
		Configs:  catalog,
		Importer: index,
	})
	for _, spec := range coreManagers {
		if _, err := managers.NewManager(spec.name, spec.lookup); err != nil {
			// A failing built-in manager declaration is a programmer error.
			panic(err)
		}
	}
	logger.Debug("Built-in managers registered.", "count", len(coreManagers))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		settings: ws.Settings,
		configs:  catalog,
		index:    index,
		managers: managers,
	}
}

// Managers returns the application's manager catalog. This is primarily
// for testing.
func (a *App) Managers() *registry.Catalog {
	return a.managers
}

// Configs returns the application's config catalog. This is primarily for
// testing.
func (a *App) Configs() *config.Catalog {
	return a.configs
}
