package hcl

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/plugrid/internal/config"
	"github.com/vk/plugrid/internal/ctxlog"
	"github.com/vk/plugrid/internal/fsutil"
	"github.com/vk/plugrid/internal/schema"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL workspace loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a workspace definition. The path may name a single .hcl file
// or a directory, in which case every .hcl file under it is parsed and
// merged in sorted path order. An empty or non-existent path yields an
// unconfigured workspace: that is the expected state for runs outside any
// workspace, not an error. Parse failures are fatal.
func (l *Loader) Load(ctx context.Context, path string) (*config.Workspace, error) {
	logger := ctxlog.FromContext(ctx)

	if path == "" {
		logger.Debug("No workspace path given, running unconfigured.")
		return &config.Workspace{Settings: config.UnconfiguredSettings()}, nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logger.Debug("Workspace path does not exist, running unconfigured.", "path", path)
		return &config.Workspace{Settings: config.UnconfiguredSettings()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat workspace path %s: %w", path, err)
	}

	filePaths := []string{path}
	if info.IsDir() {
		filePaths, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to walk workspace directory %s: %w", path, err)
		}
		sort.Strings(filePaths)
		if len(filePaths) == 0 {
			logger.Debug("No .hcl files in workspace directory, running unconfigured.", "path", path)
			return &config.Workspace{Settings: config.UnconfiguredSettings()}, nil
		}
	}

	parser := hclparse.NewParser()
	merged := &schema.Workspace{}
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse workspace file %s: %w", filePath, diags)
		}

		var ws schema.Workspace
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &ws); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode workspace file %s: %w", filePath, diags)
		}
		if err := merge(merged, &ws, filePath); err != nil {
			return nil, err
		}
		logger.Debug("Loaded workspace file.", "file", filePath)
	}

	out := translate(path, merged)
	logger.Info("Workspace loaded.",
		"settings_module", out.Settings.ModuleName(),
		"plugins", len(out.Plugins),
		"projects", len(out.Projects))
	return out, nil
}

// merge folds one parsed file into the accumulated workspace. The settings
// and common blocks are singletons across the whole workspace.
func merge(dst, src *schema.Workspace, filePath string) error {
	if src.Settings != nil {
		if dst.Settings != nil {
			return fmt.Errorf("duplicate settings block in %s", filePath)
		}
		dst.Settings = src.Settings
	}
	if src.Common != nil {
		if dst.Common != nil {
			return fmt.Errorf("duplicate common block in %s", filePath)
		}
		dst.Common = src.Common
	}
	dst.Plugins = append(dst.Plugins, src.Plugins...)
	dst.Projects = append(dst.Projects, src.Projects...)
	return nil
}
