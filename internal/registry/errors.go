package registry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrModuleNotFound is the distinguished condition an Importer reports when
// a module path simply does not exist. Discovery swallows it, since a
// config is not required to define services for every manager. Any other import
// failure propagates unchanged.
var ErrModuleNotFound = errors.New("module not found")

// ConfigurationError reports a malformed manager or service declaration:
// a missing mandatory attribute, or a service that cannot be linked to a
// manager. It surfaces at declaration time and is never recovered.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return e.Reason
}

// DuplicateManagerError reports a manager name collision in the catalog.
// The first registration stays intact.
type DuplicateManagerError struct {
	Name  string
	Known []string
}

func (e *DuplicateManagerError) Error() string {
	return fmt.Sprintf("manager names aren't unique, %q is already registered. Known managers: [%s]",
		e.Name, strings.Join(e.Known, ", "))
}

// ManagerNotFoundError reports a failed manager lookup by name.
type ManagerNotFoundError struct {
	Name  string
	Known []string
}

func (e *ManagerNotFoundError) Error() string {
	return fmt.Sprintf("manager %q does not exist. Choices are: [%s]",
		e.Name, strings.Join(e.Known, ", "))
}

// DuplicateServiceError reports a service name collision inside one
// (scope, config label) cell. The same name under a different config or a
// different scope is not a collision.
type DuplicateServiceError struct {
	Name     string
	Scope    string
	Label    string
	Existing []string
}

func (e *DuplicateServiceError) Error() string {
	return fmt.Sprintf("service %q already exists for config %q in scope %q. Registered there: [%s]",
		e.Name, e.Label, e.Scope, strings.Join(e.Existing, ", "))
}

// ManagerNotHookedError reports that a manager was queried for services but
// discovery never populated it.
type ManagerNotHookedError struct {
	Manager string
}

func (e *ManagerNotHookedError) Error() string {
	return fmt.Sprintf("manager %q does not contain any services", e.Manager)
}

// ServiceNotFoundError reports that a search exhausted every applicable
// scope without a match.
type ServiceNotFoundError struct {
	Name    string
	Manager string
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service %q was not found in manager %q", e.Name, e.Manager)
}
