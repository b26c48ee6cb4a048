package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/plugrid/internal/config"
	"github.com/vk/plugrid/internal/ctxlog"
)

// Test fixtures: one config per scope, shaped like a small real workspace.
var (
	coreCfg   = &config.Config{Name: "plugrid", Label: "plugrid", Scope: config.ScopeCore}
	commonCfg = &config.Config{Name: "acme.common", Label: "acme", Scope: config.ScopeCommon}
	pluginCfg = &config.Config{Name: "ext.plugina", Label: "plugina", Scope: config.ScopePlugins}
	siteCfg   = &config.Config{Name: "acme.sites.sitea", Label: "sitea", Scope: config.ScopeProjects}
)

type fakeSettings struct {
	configured bool
}

func (f *fakeSettings) Configured() bool { return f.configured }

func (f *fakeSettings) ModuleName() string { return "acme.settings" }

type fakeConfigs struct {
	common    *config.Config
	plugins   []*config.Config
	projects  []*config.Config
	active    *config.Config
	activeErr error
}

func (f *fakeConfigs) CoreConfig() *config.Config { return coreCfg }

func (f *fakeConfigs) CommonConfig() *config.Config { return f.common }

func (f *fakeConfigs) PluginConfigs() []*config.Config { return f.plugins }

func (f *fakeConfigs) UserConfigs() []*config.Config {
	var out []*config.Config
	if f.common != nil {
		out = append(out, f.common)
	}
	out = append(out, f.plugins...)
	out = append(out, f.projects...)
	return out
}

func (f *fakeConfigs) ActiveProjectConfig() (*config.Config, error) {
	if f.activeErr != nil {
		return nil, f.activeErr
	}
	if f.active == nil {
		return nil, fmt.Errorf("no active project")
	}
	return f.active, nil
}

func (f *fakeConfigs) ContainingConfig(modulePath string) *config.Config {
	var best *config.Config
	for _, cfg := range append([]*config.Config{coreCfg}, f.UserConfigs()...) {
		if modulePath != cfg.Name && !strings.HasPrefix(modulePath, cfg.Name+".") {
			continue
		}
		if best == nil || len(cfg.Name) > len(best.Name) {
			best = cfg
		}
	}
	return best
}

// moduleFunc adapts a function to the Module interface.
type moduleFunc func(ctx context.Context, b *Binder) error

func (fn moduleFunc) Register(ctx context.Context, b *Binder) error { return fn(ctx, b) }

// fakeImporter maps module paths to modules and keeps an ordered log of
// every import attempt, so tests can assert discovery order.
type fakeImporter struct {
	modules map[string]Module
	log     []string
}

func newFakeImporter() *fakeImporter {
	return &fakeImporter{modules: make(map[string]Module)}
}

func (f *fakeImporter) Import(ctx context.Context, path string, b *Binder) error {
	f.log = append(f.log, path)
	mod, ok := f.modules[path]
	if !ok {
		return fmt.Errorf("import %q: %w", path, ErrModuleNotFound)
	}
	return mod.Register(ctx, b)
}

// testRuntime bundles a catalog with its fakes for mutation in tests.
type testRuntime struct {
	settings *fakeSettings
	configs  *fakeConfigs
	importer *fakeImporter
	catalog  *Catalog
}

func newTestRuntime(t *testing.T) *testRuntime {
	t.Helper()
	rt := &testRuntime{
		settings: &fakeSettings{configured: true},
		configs: &fakeConfigs{
			common:   commonCfg,
			plugins:  []*config.Config{pluginCfg},
			projects: []*config.Config{siteCfg},
		},
		importer: newFakeImporter(),
	}
	rt.catalog = NewCatalog(&Runtime{
		Settings: rt.settings,
		Configs:  rt.configs,
		Importer: rt.importer,
	})
	return rt
}

func (rt *testRuntime) manager(t *testing.T, name, lookup string, opts ...ManagerOption) *Manager {
	t.Helper()
	m, err := rt.catalog.NewManager(name, lookup, opts...)
	require.NoError(t, err)
	return m
}

// addService registers a service directly, bypassing discovery.
func addService(t *testing.T, m *Manager, cfg *config.Config, name string) *Service {
	t.Helper()
	svc := &Service{Name: name, Manager: m.Name()}
	require.NoError(t, m.AddService(cfg, svc))
	return svc
}

func testContext() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}
