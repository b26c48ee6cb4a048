// Package config holds the format-agnostic model of a plugrid workspace:
// the configs (core, common, plugins, projects) that may contribute
// services, the settings state, and the catalog used to enumerate and
// resolve configs during discovery and search.
//
// The package contains no parsing logic. The internal/hcl
// package translates workspace files into this model, and internal/registry
// consumes it through small interfaces.
package config
