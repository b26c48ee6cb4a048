// Package registry is the core of plugrid: a pluggable service registry.
//
// A Manager is an extension point. It owns a namespace of same-kind
// services, the logic to discover them from workspace configs, and a
// prioritized search over its three-level service table
// (scope -> config label -> service name). The Catalog is the process-wide
// table of managers, keyed by unique manager name.
//
// Service modules declare Descriptors; a Binder resolves each descriptor's
// identity (name, owning manager, containing config) and registers it with
// the right manager. Registration happens exactly once per descriptor, as a
// side effect of importing a config's service module during discovery.
//
// The registry never reaches for ambient global state: its external
// collaborators (settings, the config catalog and the module importer) are
// supplied once through a Runtime and threaded to every manager.
package registry
