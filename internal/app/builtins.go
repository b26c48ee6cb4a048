package app

import (
	"github.com/vk/plugrid/internal/registry"
	"github.com/vk/plugrid/modules/reporters"
	"github.com/vk/plugrid/modules/transports"
)

// Entry binds a service module to the module path discovery imports it
// under.
type Entry struct {
	Path   string
	Module registry.Module
}

// coreManagers is the definitive list of extension points compiled into
// the plugrid binary.
var coreManagers = []struct {
	name   string
	lookup string
}{
	{transports.ManagerName, "transports"},
	{reporters.ManagerName, "reporters"},
}

// coreModules is the core config's contribution: the service modules the
// built-in managers discover under "plugrid.<lookup>".
var coreModules = []Entry{
	{transports.Path, &transports.Module{}},
	{reporters.Path, &reporters.Module{}},
}
