package config

import "context"

// Registry scope names. A scope is the top-level namespace that keeps
// independent config catalogs (plugins vs projects) from colliding even
// when they contain identical labels or service names.
const (
	ScopeCore     = "core"
	ScopeCommon   = "common"
	ScopePlugins  = "plugins"
	ScopeProjects = "projects"
)

// CoreName is the module-path base of the built-in config. Built-in
// managers look up their services under "plugrid.<lookup_module>".
const CoreName = "plugrid"

// Config identifies one unit of code that may contribute services: the
// built-in core, the user's common config, a plugin, or a project.
type Config struct {
	// Name is the module-path base used to build discovery paths,
	// e.g. "acme.sites.siteA".
	Name string

	// Label uniquely identifies the config across the whole workspace.
	Label string

	// Scope is the registry scope name the config belongs to (ScopeCore,
	// ScopeCommon, ScopePlugins or ScopeProjects).
	Scope string
}

// Workspace is the format-agnostic representation of a parsed workspace
// file: the settings state plus every user-declared config, in declaration
// order.
type Workspace struct {
	Settings *Settings
	Common   *Config
	Plugins  []*Config
	Projects []*Config
}

// Loader is the interface for a format-specific workspace loader.
type Loader interface {
	// Load reads a workspace definition from the given path and translates
	// it into the format-agnostic model. A path that does not exist yields
	// an unconfigured workspace, not an error.
	Load(ctx context.Context, path string) (*Workspace, error)
}
