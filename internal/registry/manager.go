package registry

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/vk/plugrid/internal/config"
	"github.com/vk/plugrid/internal/ctxlog"
)

// Manager is an extension point: it owns one namespace of services, the
// discovery logic that populates it, and the search over it.
//
// Services are stored in a three-level table keyed by registry scope name,
// then config label, then service name. The outer key keeps identical
// service names in independent catalogs (plugins vs projects) from ever
// colliding.
type Manager struct {
	name         string
	lookupModule string
	modulePaths  func(cfg *config.Config) []string
	catalog      *Catalog

	// mu guards services and imported: two managers may legitimately run
	// discovery concurrently, but a manager's own state must not race.
	mu       sync.Mutex
	services map[string]map[string]map[string]*Service
	imported map[string]struct{}
}

// Name returns the manager's unique name.
func (m *Manager) Name() string {
	return m.name
}

// LookupModule returns the module path segment used for discovery.
func (m *Manager) LookupModule() string {
	return m.lookupModule
}

// ModulePaths computes the fully-qualified module paths to import for a
// config. The default is a single "{config.Name}.{lookup_module}" path.
func (m *Manager) ModulePaths(cfg *config.Config) []string {
	if m.modulePaths != nil {
		return m.modulePaths(cfg)
	}
	return []string{cfg.Name + "." + m.lookupModule}
}

// Discover imports the config's service modules so that every descriptor
// declared there registers itself. It is idempotent per config label: the
// label is marked imported before the first import attempt, so a failed or
// partial import is never retried. A module path that does not exist is
// skipped silently; any other import failure aborts discovery and
// propagates unchanged.
func (m *Manager) Discover(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	logger := ctxlog.FromContext(ctx)

	m.mu.Lock()
	if _, done := m.imported[cfg.Label]; done {
		m.mu.Unlock()
		return nil
	}
	m.imported[cfg.Label] = struct{}{}
	m.mu.Unlock()

	for _, path := range m.ModulePaths(cfg) {
		logger.Debug("Importing service module.", "manager", m.name, "config", cfg.Label, "path", path)
		err := m.catalog.rt.Importer.Import(ctx, path, NewBinder(m.catalog, path))
		if errors.Is(err, ErrModuleNotFound) {
			logger.Debug("No service module for config, skipping.", "manager", m.name, "path", path)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// AutoDiscover discovers services in every installed config, in fixed
// order: the core config first, then, only when the workspace settings
// are configured, the user's common config and every plugin and project
// config in catalog order. Core goes first so user services may shadow or
// extend what the built-ins registered.
func (m *Manager) AutoDiscover(ctx context.Context) error {
	rt := m.catalog.rt

	if err := m.Discover(ctx, rt.Configs.CoreConfig()); err != nil {
		return err
	}

	// User configs cannot be enumerated until the workspace is loaded.
	if !rt.Settings.Configured() {
		return nil
	}

	if err := m.Discover(ctx, rt.Configs.CommonConfig()); err != nil {
		return err
	}
	for _, cfg := range rt.Configs.UserConfigs() {
		if err := m.Discover(ctx, cfg); err != nil {
			return err
		}
	}
	return nil
}

// AddService registers a service under the given config. Duplicate
// detection is scoped to the exact (scope, label) cell: the same name may
// exist under two different configs. This is invoked as a side effect of
// importing a service module during Discover, never called directly by
// module authors.
func (m *Manager) AddService(cfg *config.Config, svc *Service) error {
	if svc == nil || svc.Name == "" {
		return &ConfigurationError{Reason: "a service must supply a name"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	scope, ok := m.services[cfg.Scope]
	if !ok {
		scope = make(map[string]map[string]*Service)
		m.services[cfg.Scope] = scope
	}
	cell, ok := scope[cfg.Label]
	if !ok {
		cell = make(map[string]*Service)
		scope[cfg.Label] = cell
	}

	if _, exists := cell[svc.Name]; exists {
		return &DuplicateServiceError{
			Name:     svc.Name,
			Scope:    cfg.Scope,
			Label:    cfg.Label,
			Existing: sortedKeys(cell),
		}
	}

	svc.Config = cfg
	cell[svc.Name] = svc
	slog.Debug("Registered service.", "manager", m.name, "service", svc.Name, "config", cfg.Label, "scope", cfg.Scope)
	return nil
}

// Services returns the name -> service mapping registered under the exact
// config. Absence is not an error: the mapping is empty when the config
// registered nothing.
func (m *Manager) Services(cfg *config.Config) map[string]*Service {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]*Service)
	for name, svc := range m.services[cfg.Scope][cfg.Label] {
		out[name] = svc
	}
	return out
}

// Service returns the named service registered under the exact config, or
// nil when not found. It is the primitive Search builds on.
func (m *Manager) Service(cfg *config.Config, name string) *Service {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.services[cfg.Scope][cfg.Label][name]
}

// ConfigsFor returns the labels of every config, across all scopes, that
// registered a service with the exact name. Used for diagnostics.
func (m *Manager) ConfigsFor(serviceName string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var holders []string
	for _, scopeName := range sortedKeys(m.services) {
		scope := m.services[scopeName]
		for _, label := range sortedKeys(scope) {
			if _, ok := scope[label][serviceName]; ok {
				holders = append(holders, label)
			}
		}
	}
	return holders
}

// HasServices reports, as a post-discovery sanity check, whether discovery
// ever populated the manager. It returns a ManagerNotHookedError when the
// whole table is empty.
func (m *Manager) HasServices() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, scope := range m.services {
		for _, cell := range scope {
			if len(cell) > 0 {
				return nil
			}
		}
	}
	return &ManagerNotHookedError{Manager: m.name}
}

// ServiceNames returns the deduplicated names of every registered service
// across all scopes and configs, sorted for reproducible output.
func (m *Manager) ServiceNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := make(map[string]struct{})
	for _, scope := range m.services {
		for _, cell := range scope {
			for name := range cell {
				set[name] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
