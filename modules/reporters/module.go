// Package reporters is the built-in service module for the "reporters"
// extension point: pluggable renderers for discovery and search results.
// The CLI resolves its own output format through this manager, so user
// configs may ship their own reporters and shadow the built-ins.
package reporters

import (
	"context"
	"io"

	"github.com/vk/plugrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// ManagerName is the extension point the module's services register against.
const ManagerName = "reporters"

// Path is the module path the core config contributes this module under.
const Path = "plugrid.reporters"

// Result is one reported row: a service and the config that provides it.
type Result struct {
	Manager string `json:"manager"`
	Service string `json:"service"`
	Config  string `json:"config"`
	Scope   string `json:"scope"`
	Module  string `json:"module,omitempty"`
}

// Reporter renders results to a writer.
type Reporter interface {
	Report(w io.Writer, results []Result) error
}

// Module implements registry.Module for the built-in reporters.
type Module struct{}

// Register declares the built-in reporter services.
func (m *Module) Register(ctx context.Context, b *registry.Binder) error {
	base := &registry.Descriptor{
		Manager:  ManagerName,
		Abstract: true,
		Metadata: map[string]cty.Value{
			"builtin": cty.True,
		},
	}

	descriptors := []registry.Descriptor{
		{Base: base, New: func() any { return &Console{} }},
		{Base: base, New: func() any { return &JSONReport{} }},
	}

	for _, d := range descriptors {
		if err := b.Register(d); err != nil {
			return err
		}
	}
	return nil
}
