package hcl

import (
	"github.com/vk/plugrid/internal/config"
	"github.com/vk/plugrid/internal/schema"
)

// translate converts the HCL-specific workspace schema into the agnostic
// config model. A block without a source uses its label as the module-path
// base.
func translate(path string, s *schema.Workspace) *config.Workspace {
	module := path
	if s.Settings != nil && s.Settings.Module != "" {
		module = s.Settings.Module
	}

	ws := &config.Workspace{Settings: config.NewSettings(module)}
	if s.Common != nil {
		ws.Common = newConfig(s.Common.Label, s.Common.Source, config.ScopeCommon)
	}
	for _, p := range s.Plugins {
		ws.Plugins = append(ws.Plugins, newConfig(p.Label, p.Source, config.ScopePlugins))
	}
	for _, p := range s.Projects {
		ws.Projects = append(ws.Projects, newConfig(p.Label, p.Source, config.ScopeProjects))
	}
	return ws
}

func newConfig(label, source, scope string) *config.Config {
	if source == "" {
		source = label
	}
	return &config.Config{Name: source, Label: label, Scope: scope}
}
