package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorkspace() *Workspace {
	return &Workspace{
		Settings: NewSettings("acme.settings"),
		Common:   &Config{Name: "acme.common", Label: "acme", Scope: ScopeCommon},
		Plugins: []*Config{
			{Name: "ext.plugina", Label: "plugina", Scope: ScopePlugins},
			{Name: "ext.pluginb", Label: "pluginb", Scope: ScopePlugins},
		},
		Projects: []*Config{
			{Name: "acme.sites.sitea", Label: "sitea", Scope: ScopeProjects},
			{Name: "acme.sites.siteb", Label: "siteb", Scope: ScopeProjects},
		},
	}
}

func TestNewCatalog_NilWorkspaceHasOnlyCore(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)

	core := c.CoreConfig()
	require.NotNil(t, core)
	assert.Equal(t, CoreName, core.Name)
	assert.Equal(t, ScopeCore, core.Scope)
	assert.Nil(t, c.CommonConfig())
	assert.Empty(t, c.UserConfigs())
}

func TestNewCatalog_LabelCollisions(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(ws *Workspace)
		wantErr string
	}{
		{
			name: "same label in two scopes",
			mutate: func(ws *Workspace) {
				ws.Projects[0].Label = "plugina"
			},
			wantErr: `label "plugina" declared twice`,
		},
		{
			name: "label shadowing the core",
			mutate: func(ws *Workspace) {
				ws.Plugins[0].Label = CoreName
			},
			wantErr: `label "plugrid" declared twice`,
		},
		{
			name: "empty label",
			mutate: func(ws *Workspace) {
				ws.Common.Label = ""
			},
			wantErr: "empty label",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ws := testWorkspace()
			tc.mutate(ws)
			_, err := NewCatalog(ws)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestCatalog_UserConfigsOrder(t *testing.T) {
	c, err := NewCatalog(testWorkspace())
	require.NoError(t, err)

	var labels []string
	for _, cfg := range c.UserConfigs() {
		labels = append(labels, cfg.Label)
	}
	want := []string{"acme", "plugina", "pluginb", "sitea", "siteb"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Errorf("user config order mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_ByLabel(t *testing.T) {
	c, err := NewCatalog(testWorkspace())
	require.NoError(t, err)

	assert.Same(t, c.CoreConfig(), c.ByLabel(CoreName))
	require.NotNil(t, c.ByLabel("sitea"))
	assert.Equal(t, "acme.sites.sitea", c.ByLabel("sitea").Name)
	assert.Nil(t, c.ByLabel("ghost"))
}

func TestCatalog_ActiveProjectConfig(t *testing.T) {
	c, err := NewCatalog(testWorkspace())
	require.NoError(t, err)

	t.Run("unset", func(t *testing.T) {
		t.Setenv(ActiveProjectEnv, "")
		_, err := c.ActiveProjectConfig()
		assert.Error(t, err)
	})

	t.Run("unknown label", func(t *testing.T) {
		t.Setenv(ActiveProjectEnv, "sitez")
		_, err := c.ActiveProjectConfig()
		assert.ErrorContains(t, err, `"sitez"`)
	})

	t.Run("declared project", func(t *testing.T) {
		t.Setenv(ActiveProjectEnv, "siteb")
		cfg, err := c.ActiveProjectConfig()
		require.NoError(t, err)
		assert.Equal(t, "acme.sites.siteb", cfg.Name)
	})
}

func TestCatalog_ContainingConfig(t *testing.T) {
	c, err := NewCatalog(testWorkspace())
	require.NoError(t, err)

	testCases := []struct {
		name       string
		modulePath string
		wantLabel  string
	}{
		{"core module", "plugrid.transports", CoreName},
		{"exact config name", "acme.common", "acme"},
		{"plugin module", "ext.plugina.backends", "plugina"},
		{"project module", "acme.sites.sitea.backends", "sitea"},
		{"prefix must end at a dot", "ext.pluginafake.backends", ""},
		{"unrelated path", "stray.backends", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := c.ContainingConfig(tc.modulePath)
			if tc.wantLabel == "" {
				assert.Nil(t, cfg)
				return
			}
			require.NotNil(t, cfg)
			assert.Equal(t, tc.wantLabel, cfg.Label)
		})
	}
}

func TestSettings(t *testing.T) {
	s := NewSettings("acme.settings")
	assert.True(t, s.Configured())
	assert.Equal(t, "acme.settings", s.ModuleName())

	u := UnconfiguredSettings()
	assert.False(t, u.Configured())
	assert.Equal(t, "<unconfigured workspace>", u.ModuleName())
}
