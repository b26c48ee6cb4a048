// Package transports is the built-in service module for the "transports"
// extension point: pluggable probes that check whether a target endpoint
// is reachable over a given protocol.
package transports

import (
	"context"

	"github.com/vk/plugrid/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// ManagerName is the extension point the module's services register against.
const ManagerName = "transports"

// Path is the module path the core config contributes this module under.
const Path = "plugrid.transports"

// Transport is the contract every transport service implementation
// satisfies.
type Transport interface {
	// Probe checks that the target is reachable. It returns nil on a
	// successful round trip.
	Probe(ctx context.Context, target string) error
}

// Module implements registry.Module for the built-in transports.
type Module struct{}

// Register declares the built-in transport services. Both concrete
// descriptors inherit the manager and the shared metadata from an abstract
// base, and derive their service names from their implementation types.
func (m *Module) Register(ctx context.Context, b *registry.Binder) error {
	base := &registry.Descriptor{
		Manager:  ManagerName,
		Abstract: true,
		Metadata: map[string]cty.Value{
			"builtin": cty.True,
		},
	}

	descriptors := []registry.Descriptor{
		{
			Base: base,
			New:  func() any { return NewHTTPProbe() },
			Metadata: map[string]cty.Value{
				"schemes": cty.StringVal("http,https"),
			},
		},
		{
			Base: base,
			New:  func() any { return NewSocketIOProbe() },
			Metadata: map[string]cty.Value{
				"schemes": cty.StringVal("ws,wss,http,https"),
			},
		},
	}

	for _, d := range descriptors {
		if err := b.Register(d); err != nil {
			return err
		}
	}
	return nil
}
