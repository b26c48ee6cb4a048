// Package schema defines the HCL-facing structure of a plugrid workspace
// file. These structs carry hcl tags only; internal/hcl translates them
// into the format-agnostic config model.
package schema

// Settings represents the optional `settings` block of a workspace file.
type Settings struct {
	// Module names the settings module in diagnostics. Defaults to the
	// workspace file path.
	Module string `hcl:"module,optional"`
}

// Common represents the `common` block: the user's shared config.
type Common struct {
	Label  string `hcl:"label,label"`
	Source string `hcl:"source,optional"`
}

// Plugin represents a `plugin` block.
type Plugin struct {
	Label  string `hcl:"label,label"`
	Source string `hcl:"source,optional"`
}

// Project represents a `project` block.
type Project struct {
	Label  string `hcl:"label,label"`
	Source string `hcl:"source,optional"`
}

// Workspace is the top-level structure of a workspace file.
type Workspace struct {
	Settings *Settings  `hcl:"settings,block"`
	Common   *Common    `hcl:"common,block"`
	Plugins  []*Plugin  `hcl:"plugin,block"`
	Projects []*Project `hcl:"project,block"`
}
