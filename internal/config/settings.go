package config

// Settings reports whether a workspace definition was successfully loaded.
// Discovery and search consult it before touching any user config: an
// unconfigured workspace still serves the built-in core config, nothing
// else.
type Settings struct {
	configured bool
	module     string
}

// NewSettings returns the configured settings state for a loaded workspace.
// The module name is only used in error messages that point users at the
// place their configs are declared.
func NewSettings(module string) *Settings {
	return &Settings{configured: true, module: module}
}

// UnconfiguredSettings returns the settings state used when no workspace
// definition could be found.
func UnconfiguredSettings() *Settings {
	return &Settings{}
}

// Configured reports whether a workspace definition was loaded.
func (s *Settings) Configured() bool {
	return s.configured
}

// ModuleName returns the name of the settings module for diagnostics. It
// falls back to a generic placeholder when unconfigured.
func (s *Settings) ModuleName() string {
	if s.module == "" {
		return "<unconfigured workspace>"
	}
	return s.module
}
