package testutil

import (
	"context"

	"github.com/vk/plugrid/internal/registry"
)

// StubModule is a test helper for easily creating a mock service module.
// It counts how often its body ran, which lets tests verify discovery
// memoization, and can be made to fail like a module with a broken body.
type StubModule struct {
	// Descriptors are registered in order when the module is imported.
	Descriptors []registry.Descriptor

	// Err, when set, is returned instead of registering anything.
	Err error

	// Imports counts how many times Register ran.
	Imports int
}

// Register implements the registry.Module interface.
func (m *StubModule) Register(ctx context.Context, b *registry.Binder) error {
	m.Imports++
	if m.Err != nil {
		return m.Err
	}
	for _, d := range m.Descriptors {
		if err := b.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// NoopModule satisfies registry.Module and registers nothing. It's useful
// for tests that need an importable path without any services behind it.
type NoopModule struct{}

// Register implements the registry.Module interface.
func (m *NoopModule) Register(ctx context.Context, b *registry.Binder) error {
	return nil
}
