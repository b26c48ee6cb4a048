package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/plugrid/internal/config"
)

func TestAddService_DuplicateScopedToExactCell(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.manager(t, "backends", "backends")
	addService(t, m, siteCfg, "s3backend")

	t.Run("same name same config fails", func(t *testing.T) {
		err := m.AddService(siteCfg, &Service{Name: "s3backend"})
		var dupErr *DuplicateServiceError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "s3backend", dupErr.Name)
		assert.Equal(t, config.ScopeProjects, dupErr.Scope)
		assert.Equal(t, "sitea", dupErr.Label)
		assert.Equal(t, []string{"s3backend"}, dupErr.Existing)
	})

	t.Run("same name different config succeeds", func(t *testing.T) {
		otherProject := &config.Config{Name: "acme.sites.siteb", Label: "siteb", Scope: config.ScopeProjects}
		require.NoError(t, m.AddService(otherProject, &Service{Name: "s3backend"}))
	})

	t.Run("same name different scope succeeds", func(t *testing.T) {
		require.NoError(t, m.AddService(pluginCfg, &Service{Name: "s3backend"}))
	})
}

func TestAddService_RequiresName(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.manager(t, "backends", "backends")

	var cfgErr *ConfigurationError
	require.ErrorAs(t, m.AddService(siteCfg, &Service{}), &cfgErr)
}

func TestServices_AbsenceIsNotAnError(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.manager(t, "backends", "backends")

	assert.Empty(t, m.Services(siteCfg))
	assert.Nil(t, m.Service(siteCfg, "s3backend"))

	svc := addService(t, m, siteCfg, "s3backend")
	assert.Same(t, svc, m.Service(siteCfg, "s3backend"))
	assert.Len(t, m.Services(siteCfg), 1)
	assert.Same(t, siteCfg, svc.Config)
}

func TestConfigsFor_AcrossScopes(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.manager(t, "backends", "backends")
	addService(t, m, siteCfg, "deploy")
	addService(t, m, pluginCfg, "deploy")
	addService(t, m, coreCfg, "deploy")
	addService(t, m, coreCfg, "other")

	got := m.ConfigsFor("deploy")
	if diff := cmp.Diff([]string{"plugrid", "plugina", "sitea"}, got); diff != "" {
		t.Fatalf("holders mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, m.ConfigsFor("missing"))
}

func TestHasServices(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.manager(t, "backends", "backends")

	var hookErr *ManagerNotHookedError
	require.ErrorAs(t, m.HasServices(), &hookErr)
	assert.Equal(t, "backends", hookErr.Manager)

	addService(t, m, coreCfg, "s3backend")
	require.NoError(t, m.HasServices())
}

func TestServiceNames_Deduplicated(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.manager(t, "backends", "backends")
	addService(t, m, siteCfg, "deploy")
	addService(t, m, pluginCfg, "deploy")
	addService(t, m, coreCfg, "archive")

	assert.Equal(t, []string{"archive", "deploy"}, m.ServiceNames())
}

func TestModulePaths(t *testing.T) {
	rt := newTestRuntime(t)

	t.Run("default", func(t *testing.T) {
		m := rt.manager(t, "backends", "backends")
		assert.Equal(t, []string{"acme.sites.sitea.backends"}, m.ModulePaths(siteCfg))
	})

	t.Run("override", func(t *testing.T) {
		m := rt.manager(t, "hooks", "hooks", WithModulePaths(func(cfg *config.Config) []string {
			return []string{cfg.Name + ".hooks", cfg.Name + ".extra_hooks"}
		}))
		assert.Equal(t,
			[]string{"acme.sites.sitea.hooks", "acme.sites.sitea.extra_hooks"},
			m.ModulePaths(siteCfg))
	})
}

func TestDiscover_Idempotent(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.manager(t, "backends", "backends")

	imports := 0
	rt.importer.modules["acme.sites.sitea.backends"] = moduleFunc(func(ctx context.Context, b *Binder) error {
		imports++
		return b.Register(Descriptor{Name: "s3backend", Manager: "backends"})
	})

	ctx := testContext()
	require.NoError(t, m.Discover(ctx, siteCfg))
	require.NoError(t, m.Discover(ctx, siteCfg))

	assert.Equal(t, 1, imports)
	assert.NotNil(t, m.Service(siteCfg, "s3backend"))
}

func TestDiscover_NilConfigIsNoOp(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.manager(t, "backends", "backends")

	require.NoError(t, m.Discover(testContext(), nil))
	assert.Empty(t, rt.importer.log)
}

func TestDiscover_MissingModuleIsSkipped(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.manager(t, "backends", "backends")

	// Nothing registered under the computed path: not an error.
	require.NoError(t, m.Discover(testContext(), siteCfg))
	assert.Equal(t, []string{"acme.sites.sitea.backends"}, rt.importer.log)
}

func TestDiscover_FailedImportIsNeverRetried(t *testing.T) {
	rt := newTestRuntime(t)
	m := rt.manager(t, "backends", "backends")

	imports := 0
	boom := errors.New("boom: broken module body")
	rt.importer.modules["acme.sites.sitea.backends"] = moduleFunc(func(ctx context.Context, b *Binder) error {
		imports++
		return boom
	})

	ctx := testContext()
	require.ErrorIs(t, m.Discover(ctx, siteCfg), boom)

	// The config was marked imported before the attempt: no retry.
	require.NoError(t, m.Discover(ctx, siteCfg))
	assert.Equal(t, 1, imports)
}

func TestAutoDiscover_Order(t *testing.T) {
	t.Run("unconfigured settings stop after core", func(t *testing.T) {
		rt := newTestRuntime(t)
		rt.settings.configured = false
		m := rt.manager(t, "backends", "backends")

		require.NoError(t, m.AutoDiscover(testContext()))
		assert.Equal(t, []string{"plugrid.backends"}, rt.importer.log)
	})

	t.Run("configured settings scan core then user configs", func(t *testing.T) {
		rt := newTestRuntime(t)
		m := rt.manager(t, "backends", "backends")

		require.NoError(t, m.AutoDiscover(testContext()))
		want := []string{
			"plugrid.backends",
			"acme.common.backends",
			"ext.plugina.backends",
			"acme.sites.sitea.backends",
		}
		if diff := cmp.Diff(want, rt.importer.log); diff != "" {
			t.Fatalf("discovery order mismatch (-want +got):\n%s", diff)
		}
	})
}
