// Package modules provides the static module index plugrid uses in place
// of dynamic imports: service modules are compiled in and registered under
// their module path at startup, and discovery "imports" a path by running
// the module's registrations once.
package modules

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vk/plugrid/internal/registry"
)

// Index maps module paths to compiled-in service modules. It implements
// registry.Importer.
type Index struct {
	// mu guards imported: several managers may run discovery concurrently
	// against one shared index.
	mu       sync.Mutex
	all      map[string]registry.Module
	imported map[string]struct{}
}

// New creates an empty module index.
func New() *Index {
	return &Index{
		all:      make(map[string]registry.Module),
		imported: make(map[string]struct{}),
	}
}

// Register adds a module under its path. Registering the same path twice
// is a programmer error at startup and panics.
func (i *Index) Register(path string, mod registry.Module) {
	if _, exists := i.all[path]; exists {
		panic(fmt.Sprintf("module with path '%s' already registered", path))
	}
	slog.Debug("Registering module.", "path", path)
	i.all[path] = mod
}

// Import runs the registrations of the module at the given path. A path
// with no entry reports registry.ErrModuleNotFound. A module body runs at
// most once: a second import of the same path is a no-op, so two managers
// sharing a module path never double-register its services. Registration
// failures propagate unchanged.
func (i *Index) Import(ctx context.Context, path string, b *registry.Binder) error {
	mod, ok := i.all[path]
	if !ok {
		return fmt.Errorf("import %q: %w", path, registry.ErrModuleNotFound)
	}

	i.mu.Lock()
	if _, done := i.imported[path]; done {
		i.mu.Unlock()
		return nil
	}
	// Marked before running so a partial failure is never replayed into a
	// double registration by another manager sharing this path.
	i.imported[path] = struct{}{}
	i.mu.Unlock()

	return mod.Register(ctx, b)
}
