package registry

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/plugrid/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// Descriptor is what a service module declares. Identity defaults are
// resolved with explicit fallback logic at registration time: the name
// falls back to the lower-cased type name of the value New constructs, the
// manager falls back through the Base chain, and metadata is merged down
// the chain with child keys winning.
type Descriptor struct {
	// Name identifies the service inside its (scope, config) cell. May be
	// left empty when New is set.
	Name string

	// Manager names the owning extension point. May be left empty when a
	// Base descriptor in the chain supplies it.
	Manager string

	// Abstract descriptors are never registered. They only serve as shared
	// bases for defaults and metadata.
	Abstract bool

	// Base is the descriptor this one inherits defaults from.
	Base *Descriptor

	// Metadata holds arbitrary additional attributes of the service.
	Metadata map[string]cty.Value

	// New constructs the service implementation.
	New func() any
}

// Service is a registered unit: a resolved descriptor bound to the config
// that contributed it. Services are never mutated after registration.
type Service struct {
	Name     string
	Manager  string
	Module   string
	Config   *config.Config
	Metadata map[string]cty.Value
	New      func() any
}

// Binder is the registration context handed to a service module while its
// path is being imported. It remembers the module path so each descriptor
// can be attributed to the config that contains it.
type Binder struct {
	catalog    *Catalog
	modulePath string
}

// NewBinder creates a binder for one module import.
func NewBinder(c *Catalog, modulePath string) *Binder {
	return &Binder{catalog: c, modulePath: modulePath}
}

// ModulePath returns the module path this binder attributes services to.
func (b *Binder) ModulePath() string {
	return b.modulePath
}

// Register resolves a descriptor and registers it with its manager.
// Abstract descriptors are skipped. A descriptor that cannot resolve a name
// or a manager fails with a ConfigurationError; an unknown manager fails
// with a ManagerNotFoundError. A module path that no workspace config
// contains is a structural misconfiguration of the discovery system itself
// and panics rather than returning a domain error.
func (b *Binder) Register(d Descriptor) error {
	if d.Abstract {
		return nil
	}

	name := d.resolvedName()
	if name == "" {
		return &ConfigurationError{Reason: fmt.Sprintf(
			"a service in module %q must supply a name or a New constructor", b.modulePath)}
	}
	managerName := d.resolvedManager()
	if managerName == "" {
		return &ConfigurationError{Reason: fmt.Sprintf(
			"service %q must be linked to a manager", name)}
	}

	manager, err := b.catalog.Lookup(managerName)
	if err != nil {
		return err
	}

	cfg := b.catalog.rt.Configs.ContainingConfig(b.modulePath)
	if cfg == nil {
		panic(fmt.Sprintf(
			"service %q (module %q) isn't contained in the core config, a plugin, a project or the common config; check the workspace settings %q",
			name, b.modulePath, b.catalog.rt.Settings.ModuleName()))
	}

	return manager.AddService(cfg, &Service{
		Name:     name,
		Manager:  managerName,
		Module:   b.modulePath,
		Metadata: d.resolvedMetadata(),
		New:      d.New,
	})
}

func (d *Descriptor) resolvedName() string {
	if d.Name != "" {
		return d.Name
	}
	if d.New == nil {
		return ""
	}
	v := d.New()
	if v == nil {
		return ""
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

func (d *Descriptor) resolvedManager() string {
	for cur := d; cur != nil; cur = cur.Base {
		if cur.Manager != "" {
			return cur.Manager
		}
	}
	return ""
}

func (d *Descriptor) resolvedMetadata() map[string]cty.Value {
	// Walk to the root first so children overwrite their bases.
	var chain []*Descriptor
	for cur := d; cur != nil; cur = cur.Base {
		chain = append(chain, cur)
	}

	merged := make(map[string]cty.Value)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].Metadata {
			merged[k] = v
		}
	}
	return merged
}
