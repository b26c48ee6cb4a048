package app

import (
	"context"
	"fmt"

	"github.com/vk/plugrid/internal/ctxlog"
	"github.com/vk/plugrid/internal/registry"
	"github.com/vk/plugrid/modules/reporters"
	"github.com/vk/plugrid/modules/transports"
)

// Run executes the main application logic: full discovery, then either a
// listing or a search, reported through the configured reporter service.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	for _, m := range a.managers.Managers() {
		if err := m.AutoDiscover(ctx); err != nil {
			return fmt.Errorf("discovery failed for manager %q: %w", m.Name(), err)
		}
		a.logger.Debug("Manager discovered.", "manager", m.Name(), "services", m.ServiceNames())
	}

	reporter, err := a.reporter()
	if err != nil {
		return err
	}

	if a.config.Manager == "" {
		return reporter.Report(a.outW, a.listAll())
	}

	mgr, err := a.managers.Lookup(a.config.Manager)
	if err != nil {
		return err
	}

	if a.config.Service == "" {
		if err := mgr.HasServices(); err != nil {
			return err
		}
		return reporter.Report(a.outW, a.listManager(mgr))
	}

	opts := registry.SearchOptions{
		SearchProject: a.config.SearchProject,
		LocalOnly:     a.config.LocalOnly,
	}
	if a.config.ConfigLabel != "" {
		cfg := a.configs.ByLabel(a.config.ConfigLabel)
		if cfg == nil {
			return fmt.Errorf("config %q is not declared in the workspace", a.config.ConfigLabel)
		}
		opts.Config = cfg
	}

	svc, err := mgr.Search(a.config.Service, opts)
	if err != nil {
		return err
	}
	if err := reporter.Report(a.outW, []reporters.Result{result(mgr, svc)}); err != nil {
		return err
	}

	if a.config.ProbeURL != "" {
		return a.probe(ctx, svc)
	}
	return nil
}

// reporter resolves the output renderer through the reporters manager, so
// user configs can shadow the built-in ones.
func (a *App) reporter() (reporters.Reporter, error) {
	mgr, err := a.managers.Lookup(reporters.ManagerName)
	if err != nil {
		return nil, err
	}
	svc, err := mgr.Search(a.config.Reporter, registry.SearchOptions{})
	if err != nil {
		return nil, err
	}
	r, ok := svc.New().(reporters.Reporter)
	if !ok {
		return nil, fmt.Errorf("service %q does not implement the reporter contract", svc.Name)
	}
	return r, nil
}

// probe instantiates a found transport service and checks the configured
// URL with it.
func (a *App) probe(ctx context.Context, svc *registry.Service) error {
	t, ok := svc.New().(transports.Transport)
	if !ok {
		return fmt.Errorf("service %q does not implement the transport contract", svc.Name)
	}
	a.logger.Info("Probing target.", "service", svc.Name, "target", a.config.ProbeURL)
	if err := t.Probe(ctx, a.config.ProbeURL); err != nil {
		return fmt.Errorf("probe with %q failed: %w", svc.Name, err)
	}
	a.logger.Info("Probe succeeded.", "service", svc.Name, "target", a.config.ProbeURL)
	return nil
}

func (a *App) listAll() []reporters.Result {
	var out []reporters.Result
	for _, m := range a.managers.Managers() {
		out = append(out, a.listManager(m)...)
	}
	return out
}

func (a *App) listManager(m *registry.Manager) []reporters.Result {
	var out []reporters.Result
	for _, name := range m.ServiceNames() {
		for _, label := range m.ConfigsFor(name) {
			cfg := a.configs.ByLabel(label)
			if cfg == nil {
				continue
			}
			if svc := m.Service(cfg, name); svc != nil {
				out = append(out, result(m, svc))
			}
		}
	}
	return out
}

func result(m *registry.Manager, svc *registry.Service) reporters.Result {
	return reporters.Result{
		Manager: m.Name(),
		Service: svc.Name,
		Config:  svc.Config.Label,
		Scope:   svc.Config.Scope,
		Module:  svc.Module,
	}
}
