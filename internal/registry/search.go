package registry

import "github.com/vk/plugrid/internal/config"

// SearchOptions narrows or widens a Search call. The zero value asks for a
// plain global search: no preferred config, no project consultation, and
// the full fallback scan enabled.
type SearchOptions struct {
	// Config, when set, is checked first. A match there wins immediately.
	Config *config.Config

	// SearchProject consults the currently active project config after the
	// explicit config. A missing or unknown active project is not an
	// error; the search falls through.
	SearchProject bool

	// LocalOnly suppresses the global fallback scan: when neither the
	// explicit config nor the active project matched, the search fails
	// instead of widening.
	LocalOnly bool
}

// Search looks a service up by name in strict precedence order and returns
// the first match:
//
//  1. the explicit config, when given;
//  2. the active project config, when SearchProject is set;
//  3. unless LocalOnly: the user's common config, every plugin config in
//     catalog order, and the core config always last, so user overrides
//     take priority over built-ins.
//
// When nothing matches it returns a ServiceNotFoundError.
func (m *Manager) Search(name string, opts SearchOptions) (*Service, error) {
	if opts.Config != nil {
		if svc := m.Service(opts.Config, name); svc != nil {
			return svc, nil
		}
	}

	if opts.SearchProject {
		if project, err := m.catalog.rt.Configs.ActiveProjectConfig(); err == nil {
			if svc := m.Service(project, name); svc != nil {
				return svc, nil
			}
		}
	}

	if opts.LocalOnly {
		return nil, &ServiceNotFoundError{Name: name, Manager: m.name}
	}

	rt := m.catalog.rt
	var scan []*config.Config
	if rt.Settings.Configured() {
		if common := rt.Configs.CommonConfig(); common != nil {
			scan = append(scan, common)
		}
		scan = append(scan, rt.Configs.PluginConfigs()...)
	}
	scan = append(scan, rt.Configs.CoreConfig())

	for _, cfg := range scan {
		if svc := m.Service(cfg, name); svc != nil {
			return svc, nil
		}
	}
	return nil, &ServiceNotFoundError{Name: name, Manager: m.name}
}
