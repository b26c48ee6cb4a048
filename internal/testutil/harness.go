package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/plugrid/internal/app"
	"github.com/vk/plugrid/internal/hcl"
)

// HarnessResult holds the outcomes of an application test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// RunApp provides a standardized harness for application tests. It writes
// the given files into a temporary directory (relative paths, e.g.
// "workspace.hcl"), points the app at that workspace, registers any extra
// service modules, and runs the full discovery/search flow. Panics during
// startup are captured into Err, mirroring what the CLI entrypoint does.
func RunApp(t *testing.T, files map[string]string, cfg app.Config, extra ...app.Entry) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	if cfg.WorkspacePath != "" {
		cfg.WorkspacePath = filepath.Join(tmpDir, cfg.WorkspacePath)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	result := &HarnessResult{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("startup panic: %v", r)
			}
		}()
		result.App = app.NewApp(out, appConfig, hcl.NewLoader(), extra...)
		result.Err = result.App.Run(context.Background())
	}()

	result.Output = out.String()
	return result
}
