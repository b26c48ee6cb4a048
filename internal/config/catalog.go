package config

import (
	"fmt"
	"os"
	"strings"
)

// ActiveProjectEnv selects the project config that search treats as the
// current working context.
const ActiveProjectEnv = "PLUGRID_ACTIVE_PROJECT"

// Catalog enumerates the configs of one workspace in a fixed, deterministic
// order: core first, then common, then plugins, then projects, each group
// in declaration order.
type Catalog struct {
	core     *Config
	common   *Config
	plugins  []*Config
	projects []*Config
}

// NewCatalog builds a catalog from a parsed workspace. A nil workspace
// yields a catalog holding only the built-in core config. Label collisions
// anywhere in the workspace are rejected: the label is the storage key for
// discovery memoization and service tables, so it must be unique even
// across scopes.
func NewCatalog(ws *Workspace) (*Catalog, error) {
	c := &Catalog{
		core: &Config{Name: CoreName, Label: CoreName, Scope: ScopeCore},
	}
	if ws == nil {
		return c, nil
	}

	seen := map[string]string{c.core.Label: c.core.Scope}
	claim := func(cfg *Config) error {
		if cfg.Label == "" {
			return fmt.Errorf("config %q has an empty label", cfg.Name)
		}
		if other, ok := seen[cfg.Label]; ok {
			return fmt.Errorf("config label %q declared twice (%s and %s)", cfg.Label, other, cfg.Scope)
		}
		seen[cfg.Label] = cfg.Scope
		return nil
	}

	if ws.Common != nil {
		if err := claim(ws.Common); err != nil {
			return nil, err
		}
		c.common = ws.Common
	}
	for _, p := range ws.Plugins {
		if err := claim(p); err != nil {
			return nil, err
		}
		c.plugins = append(c.plugins, p)
	}
	for _, p := range ws.Projects {
		if err := claim(p); err != nil {
			return nil, err
		}
		c.projects = append(c.projects, p)
	}
	return c, nil
}

// CoreConfig returns the built-in config. It always exists.
func (c *Catalog) CoreConfig() *Config {
	return c.core
}

// CommonConfig returns the user's common config, or nil if the workspace
// does not declare one.
func (c *Catalog) CommonConfig() *Config {
	return c.common
}

// PluginConfigs returns every plugin config in declaration order.
func (c *Catalog) PluginConfigs() []*Config {
	return c.plugins
}

// ProjectConfigs returns every project config in declaration order.
func (c *Catalog) ProjectConfigs() []*Config {
	return c.projects
}

// UserConfigs returns every user-declared config (common, plugins,
// projects) in catalog order. Used for full discovery scans.
func (c *Catalog) UserConfigs() []*Config {
	var out []*Config
	if c.common != nil {
		out = append(out, c.common)
	}
	out = append(out, c.plugins...)
	out = append(out, c.projects...)
	return out
}

// ActiveProjectConfig resolves the currently active project from the
// environment. It returns an error when no project is selected or the
// selected label is unknown; callers that treat the active project as an
// optional hint swallow that error.
func (c *Catalog) ActiveProjectConfig() (*Config, error) {
	label := os.Getenv(ActiveProjectEnv)
	if label == "" {
		return nil, fmt.Errorf("no active project: %s is not set", ActiveProjectEnv)
	}
	for _, p := range c.projects {
		if p.Label == label {
			return p, nil
		}
	}
	return nil, fmt.Errorf("active project %q is not declared in the workspace", label)
}

// ByLabel returns the config with the given label, or nil. Labels are
// unique across the whole catalog, core included.
func (c *Catalog) ByLabel(label string) *Config {
	if c.core.Label == label {
		return c.core
	}
	for _, cfg := range c.UserConfigs() {
		if cfg.Label == label {
			return cfg
		}
	}
	return nil
}

// ContainingConfig returns the config whose name is the longest dotted
// prefix of the given module path, or nil when no config contains it.
func (c *Catalog) ContainingConfig(modulePath string) *Config {
	var best *Config
	all := append([]*Config{c.core}, c.UserConfigs()...)
	for _, cfg := range all {
		if modulePath != cfg.Name && !strings.HasPrefix(modulePath, cfg.Name+".") {
			continue
		}
		if best == nil || len(cfg.Name) > len(best.Name) {
			best = cfg
		}
	}
	return best
}
