package driver

import (
	"sync/atomic"

	"github.com/go-home-io/driverhost/plugins/driver"
)

// Immutable module set.
type registrySnapshot struct {
	modules []*driver.Module
	index   map[string]*driver.Module
}

// ModuleRegistry owns module set of a single driver instance.
// Reads are lock-free, re-builds swap a complete new set.
type ModuleRegistry struct {
	domain   string
	snapshot atomic.Value
}

// NewModuleRegistry constructs an empty registry for the domain.
func NewModuleRegistry(domain string) *ModuleRegistry {
	r := &ModuleRegistry{
		domain: domain,
	}

	r.snapshot.Store(emptySnapshot())
	return r
}

// List returns all modules in insertion order.
func (r *ModuleRegistry) List() []*driver.Module {
	s := r.load()
	result := make([]*driver.Module, len(s.modules))
	copy(result, s.modules)
	return result
}

// FindByAddress returns module with exactly this address.
func (r *ModuleRegistry) FindByAddress(address string) (*driver.Module, bool) {
	m, ok := r.load().index[address]
	return m, ok
}

// Len returns number of known modules.
func (r *ModuleRegistry) Len() int {
	return len(r.load().modules)
}

// Replace validates new module set and swaps it in.
// Previous set stays visible if validation fails.
func (r *ModuleRegistry) Replace(modules []*driver.Module) error {
	s := &registrySnapshot{
		modules: make([]*driver.Module, 0, len(modules)),
		index:   make(map[string]*driver.Module, len(modules)),
	}

	for _, v := range modules {
		if nil == v {
			continue
		}

		if "" == v.Address {
			return &ErrEmptyAddress{}
		}

		if v.Domain != r.domain {
			return &ErrDomainMismatch{Expected: r.domain, Actual: v.Domain}
		}

		if _, ok := s.index[v.Address]; ok {
			return &ErrDuplicateAddress{Address: v.Address}
		}

		m := *v
		s.modules = append(s.modules, &m)
		s.index[m.Address] = &m
	}

	r.snapshot.Store(s)
	return nil
}

// Clear swaps in an empty module set.
func (r *ModuleRegistry) Clear() {
	r.snapshot.Store(emptySnapshot())
}

func (r *ModuleRegistry) load() *registrySnapshot {
	return r.snapshot.Load().(*registrySnapshot)
}

func emptySnapshot() *registrySnapshot {
	return &registrySnapshot{
		modules: make([]*driver.Module, 0),
		index:   make(map[string]*driver.Module),
	}
}
