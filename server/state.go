package server

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/utils"
	"github.com/patrickmn/go-cache"
)

// IServerStateProvider defines host state logic.
type IServerStateProvider interface {
	AddInterface(provider string, d driver.IDriver) error
	GetInterface(domain string) (driver.IDriver, bool)
	GetInterfaces() []*knownInterface
	GetModules(domain string) ([]*knownModule, error)
	GetModule(domain string, address string) (*knownModule, error)
	PropertyChanged(*driver.PropertyChangedEvent)
	ModulesChanged(*driver.ModulesChangedEvent)
	CheckPresence()
	DisposeAll()
}

// Driver instance tracked by the host.
type loadedInterface struct {
	provider string
	driver   driver.IDriver
	present  bool
	lastSeen int64
}

// Host state.
type serverState struct {
	sync.RWMutex
	logger common.ILoggerProvider

	interfaces map[string]*loadedInterface
	properties *cache.Cache
}

// Constructs a new host state.
// Property values expire after ttl.
func newServerState(logger common.ILoggerProvider, ttl time.Duration) *serverState {
	return &serverState{
		logger:     logger,
		interfaces: make(map[string]*loadedInterface),
		properties: cache.New(ttl, 2*ttl),
	}
}

// AddInterface registers loaded driver.
func (s *serverState) AddInterface(provider string, d driver.IDriver) error {
	s.Lock()
	defer s.Unlock()

	domain := d.GetDomain()
	if _, ok := s.interfaces[domain]; ok {
		return &ErrDuplicateInterface{Domain: domain}
	}

	s.interfaces[domain] = &loadedInterface{
		provider: provider,
		driver:   d,
		present:  true,
	}

	return nil
}

// GetInterface returns driver by domain.
func (s *serverState) GetInterface(domain string) (driver.IDriver, bool) {
	s.RLock()
	defer s.RUnlock()

	i, ok := s.interfaces[domain]
	if !ok {
		return nil, false
	}

	return i.driver, true
}

// GetInterfaces returns all drivers sorted by domain.
func (s *serverState) GetInterfaces() []*knownInterface {
	s.RLock()
	defer s.RUnlock()

	result := make([]*knownInterface, 0, len(s.interfaces))
	for k, v := range s.interfaces {
		result = append(result, &knownInterface{
			Domain:    k,
			Provider:  v.provider,
			Connected: v.driver.IsConnected(),
			Enabled:   v.driver.IsEnabled(),
			Present:   v.present,
			Modules:   len(v.driver.GetModules()),
			LastSeen:  v.lastSeen,
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Domain < result[j].Domain })
	return result
}

// GetModules returns modules of the driver with cached properties.
func (s *serverState) GetModules(domain string) ([]*knownModule, error) {
	d, ok := s.GetInterface(domain)
	if !ok {
		return nil, &ErrUnknownInterface{Domain: domain}
	}

	modules := d.GetModules()
	result := make([]*knownModule, 0, len(modules))
	for _, v := range modules {
		result = append(result, s.withProperties(v))
	}

	return result, nil
}

// GetModule returns single module with cached properties.
func (s *serverState) GetModule(domain string, address string) (*knownModule, error) {
	d, ok := s.GetInterface(domain)
	if !ok {
		return nil, &ErrUnknownInterface{Domain: domain}
	}

	for _, v := range d.GetModules() {
		if v.Address == address {
			return s.withProperties(v), nil
		}
	}

	return nil, &ErrUnknownModule{Domain: domain, Address: address}
}

// PropertyChanged stores the latest property value.
func (s *serverState) PropertyChanged(event *driver.PropertyChangedEvent) {
	s.logger.Debug("Received property update", common.LogSystemToken, logSystem,
		common.LogDomainToken, event.Domain, common.LogModuleToken, event.Source,
		common.LogPropertyToken, event.PropertyPath)

	s.properties.Set(utils.PropertyKey(event.Domain, event.Source, event.PropertyPath), &propertyValue{
		Value:     event.Value,
		Timestamp: event.Timestamp,
	}, cache.DefaultExpiration)
}

// ModulesChanged drops cached properties of modules which are gone.
func (s *serverState) ModulesChanged(event *driver.ModulesChangedEvent) {
	s.Lock()
	i, ok := s.interfaces[event.Domain]
	if ok {
		i.lastSeen = utils.TimeNow()
	}
	s.Unlock()

	if !ok {
		s.logger.Warn("Received modules update from unknown interface", common.LogSystemToken, logSystem,
			common.LogDomainToken, event.Domain)
		return
	}

	modules := i.driver.GetModules()
	s.logger.Info("Interface modules updated", common.LogSystemToken, logSystem,
		common.LogDomainToken, event.Domain)

	prefixes := make([]string, 0, len(modules))
	for _, v := range modules {
		prefixes = append(prefixes, utils.PropertyKey(event.Domain, v.Address, ""))
	}

	domainPrefix := event.Domain + "/"
	for k := range s.properties.Items() {
		if !strings.HasPrefix(k, domainPrefix) {
			continue
		}

		keep := false
		for _, p := range prefixes {
			if strings.HasPrefix(k, p) {
				keep = true
				break
			}
		}

		if !keep {
			s.properties.Delete(k)
		}
	}
}

// CheckPresence polls every driver for its hardware.
// Enabled drivers are reconnected when hardware shows up
// and disconnected when it's gone.
func (s *serverState) CheckPresence() {
	s.RLock()
	all := make(map[string]*loadedInterface, len(s.interfaces))
	for k, v := range s.interfaces {
		all[k] = v
	}
	s.RUnlock()

	for domain, i := range all {
		present := i.driver.IsDevicePresent()

		s.Lock()
		changed := i.present != present
		i.present = present
		s.Unlock()

		if changed && present {
			s.logger.Info("Interface hardware appeared", common.LogSystemToken, logSystem,
				common.LogDomainToken, domain)
		} else if changed {
			s.logger.Warn("Interface hardware is gone", common.LogSystemToken, logSystem,
				common.LogDomainToken, domain)
		}

		var err error
		if present && i.driver.IsEnabled() && !i.driver.IsConnected() {
			err = i.driver.Connect()
		} else if !present && i.driver.IsConnected() {
			err = i.driver.Disconnect()
		}

		if err != nil {
			s.logger.Error("Failed to update interface connection", err, common.LogSystemToken, logSystem,
				common.LogDomainToken, domain)
		}
	}
}

// DisposeAll disposes every driver.
func (s *serverState) DisposeAll() {
	s.Lock()
	defer s.Unlock()

	for k, v := range s.interfaces {
		if err := v.driver.Dispose(); err != nil {
			s.logger.Error("Failed to dispose interface", err, common.LogSystemToken, logSystem,
				common.LogDomainToken, k)
		}
	}

	s.interfaces = make(map[string]*loadedInterface)
}

// Attaches cached properties to the module.
func (s *serverState) withProperties(module *driver.Module) *knownModule {
	prefix := utils.PropertyKey(module.Domain, module.Address, "")
	result := &knownModule{
		Module:     module,
		Properties: make(map[string]*propertyValue),
	}

	for k, v := range s.properties.Items() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}

		if p, ok := v.Object.(*propertyValue); ok {
			result.Properties[strings.TrimPrefix(k, prefix)] = p
		}
	}

	return result
}
