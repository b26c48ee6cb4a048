package registry

import (
	"context"

	"github.com/vk/plugrid/internal/config"
)

// Settings is the view of the workspace settings state the registry needs.
type Settings interface {
	// Configured reports whether a workspace definition was loaded. When
	// false, discovery and search only ever touch the core config.
	Configured() bool

	// ModuleName names the settings module for diagnostics.
	ModuleName() string
}

// ConfigCatalog enumerates and resolves the configs of a workspace.
type ConfigCatalog interface {
	CoreConfig() *config.Config
	CommonConfig() *config.Config
	PluginConfigs() []*config.Config

	// UserConfigs returns common + plugins + projects in catalog order.
	UserConfigs() []*config.Config

	// ActiveProjectConfig resolves the currently active project, failing
	// when none is selected or the selection is unknown.
	ActiveProjectConfig() (*config.Config, error)

	// ContainingConfig returns the config that owns a module path, or nil.
	ContainingConfig(modulePath string) *config.Config
}

// Importer loads a service module by path, running its registrations
// against the given binder. Absent paths are reported with
// ErrModuleNotFound; every other failure is propagated unchanged.
type Importer interface {
	Import(ctx context.Context, path string, b *Binder) error
}

// Module is the interface a service module implements to be importable.
// Register runs once, when the module's path is first imported during
// discovery, and declares the module's services against the binder.
type Module interface {
	Register(ctx context.Context, b *Binder) error
}

// Runtime bundles the external collaborators the registry depends on. It
// is constructed once at process start and threaded through the catalog to
// every manager; there is no ambient global registry state.
type Runtime struct {
	Settings Settings
	Configs  ConfigCatalog
	Importer Importer
}
