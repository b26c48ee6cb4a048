package registry

import (
	"log/slog"

	"github.com/vk/plugrid/internal/config"
)

// Catalog is the table of registered managers, keyed by unique manager
// name. Managers are registered once, at declaration time, and never
// removed.
type Catalog struct {
	rt       *Runtime
	managers map[string]*Manager
	order    []string
}

// NewCatalog creates an empty manager catalog bound to the given runtime.
func NewCatalog(rt *Runtime) *Catalog {
	if rt == nil || rt.Settings == nil || rt.Configs == nil || rt.Importer == nil {
		panic("registry: NewCatalog requires a fully populated runtime")
	}
	return &Catalog{
		rt:       rt,
		managers: make(map[string]*Manager),
	}
}

// ManagerOption customizes a manager at declaration time.
type ManagerOption func(*Manager)

// WithModulePaths overrides how a manager computes the module paths to
// import for a config. The default is "{config.Name}.{lookup_module}".
func WithModulePaths(fn func(cfg *config.Config) []string) ManagerOption {
	return func(m *Manager) {
		m.modulePaths = fn
	}
}

// NewManager declares a manager and registers it in the catalog. Both the
// name and the lookup module are mandatory; a duplicate name leaves the
// first registration intact.
func (c *Catalog) NewManager(name, lookupModule string, opts ...ManagerOption) (*Manager, error) {
	if name == "" {
		return nil, &ConfigurationError{Reason: "a manager must supply a name"}
	}
	if lookupModule == "" {
		return nil, &ConfigurationError{Reason: "manager " + name + " must supply a lookup module"}
	}
	if _, exists := c.managers[name]; exists {
		return nil, &DuplicateManagerError{Name: name, Known: c.names()}
	}

	m := &Manager{
		name:         name,
		lookupModule: lookupModule,
		catalog:      c,
		services:     make(map[string]map[string]map[string]*Service),
		imported:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	slog.Debug("Registering manager.", "name", name, "lookup_module", lookupModule)
	c.managers[name] = m
	c.order = append(c.order, name)
	return m, nil
}

// Lookup returns the manager registered under the given name.
func (c *Catalog) Lookup(name string) (*Manager, error) {
	m, ok := c.managers[name]
	if !ok {
		return nil, &ManagerNotFoundError{Name: name, Known: c.names()}
	}
	return m, nil
}

// Managers returns every registered manager in registration order. The
// order carries no meaning beyond making repeated discovery reproducible.
func (c *Catalog) Managers() []*Manager {
	out := make([]*Manager, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.managers[name])
	}
	return out
}

func (c *Catalog) names() []string {
	return append([]string(nil), c.order...)
}
