// Package driver contains generic device-interface driver implementation:
// module registry, command parsing and dispatching, and lifecycle.
package driver

import (
	"strconv"
	"sync"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/plugins/driver/enums"
	"github.com/pkg/errors"
)

// ConstructDriver has data required for a new driver.
type ConstructDriver struct {
	Domain      string
	Description string
	Logger      common.ILoggerProvider
	Sink        driver.INotificationSink
	Discovery   driver.DiscoveryFunc
	Presence    driver.PresenceFunc
	Handlers    map[enums.Command]CommandHandler
}

// Driver implements driver.IDriver on top of registry, parser and dispatcher.
type Driver struct {
	mu sync.RWMutex

	domain    string
	logger    common.ILoggerProvider
	sink      driver.INotificationSink
	discovery driver.DiscoveryFunc
	presence  driver.PresenceFunc

	registry   *ModuleRegistry
	parser     *CommandParser
	dispatcher *CommandDispatcher

	state   State
	enabled bool
	options map[string]*driver.Option
}

var _ driver.IDriver = (*Driver)(nil)

// NewDriver constructs a new disconnected driver.
func NewDriver(ctor *ConstructDriver) (*Driver, error) {
	if "" == ctor.Domain {
		return nil, &ErrEmptyDomain{}
	}

	if nil == ctor.Discovery {
		return nil, &ErrNoDiscovery{}
	}

	d := &Driver{
		domain:    ctor.Domain,
		logger:    ctor.Logger,
		sink:      ctor.Sink,
		discovery: ctor.Discovery,
		presence:  ctor.Presence,
		registry:  NewModuleRegistry(ctor.Domain),
		state:     StateDisconnected,
		options:   make(map[string]*driver.Option),
	}

	if nil == d.sink {
		d.sink = &nopSink{}
	}

	description := ctor.Description
	if "" == description {
		description = ctor.Domain
	}

	d.dispatcher = NewCommandDispatcher(&ConstructDispatcher{
		Description: description,
		Logger:      d.logger,
		Sink:        d.sink,
		Handlers:    ctor.Handlers,
	})
	d.parser = NewCommandParser(enums.CommandValues())

	return d, nil
}

// GetDomain returns driver domain.
func (d *Driver) GetDomain() string {
	return d.domain
}

// State returns current lifecycle state.
func (d *Driver) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// IsConnected returns whether driver is online.
func (d *Driver) IsConnected() bool {
	return d.State() == StateConnected
}

// IsEnabled returns value of the enabled flag.
func (d *Driver) IsEnabled() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.enabled
}

// Connect brings driver online and notifies about module set.
// Calling it on a connected driver only re-sends modules notification.
func (d *Driver) Connect() error {
	d.mu.Lock()
	if d.state == StateDisposed {
		d.mu.Unlock()
		return d.disposedError("connect")
	}

	if d.state != StateConnected {
		d.logger.Info("Starting interface", common.LogDomainToken, d.domain)

		modules, err := d.discovery(d.domain)
		if err != nil {
			d.mu.Unlock()
			d.logger.Error("Failed to discover modules", err, common.LogDomainToken, d.domain)
			return errors.Wrap(err, "discovery failed")
		}

		if err := d.registry.Replace(modules); err != nil {
			d.mu.Unlock()
			d.logger.Error("Discovered invalid module set", err, common.LogDomainToken, d.domain)
			return errors.Wrap(err, "module registration failed")
		}

		d.state = StateConnected
	}
	d.mu.Unlock()

	d.sink.ModulesChanged(&driver.ModulesChangedEvent{Domain: d.domain})
	return nil
}

// Disconnect takes driver offline.
func (d *Driver) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateDisposed {
		return d.disposedError("disconnect")
	}

	d.disconnect()
	return nil
}

// Dispose disconnects driver and drops its modules.
// Driver is not usable afterwards.
func (d *Driver) Dispose() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateDisposed {
		return d.disposedError("dispose")
	}

	d.disconnect()
	d.registry.Clear()
	d.state = StateDisposed
	d.logger.Info("Interface disposed", common.LogDomainToken, d.domain)
	return nil
}

// IsDevicePresent probes interface hardware.
// Drivers without a probe are considered present.
func (d *Driver) IsDevicePresent() bool {
	if nil == d.presence {
		return true
	}

	return d.presence()
}

// SetOption stores configuration value.
// Enabled driver is connected as a side effect.
func (d *Driver) SetOption(option *driver.Option) error {
	if nil == option || "" == option.Name {
		return &ErrInvalidOption{}
	}

	d.mu.Lock()
	if d.state == StateDisposed {
		d.mu.Unlock()
		return d.disposedError("set option")
	}

	disable := false
	if option.Name == driver.OptionEnabled {
		enabled, err := strconv.ParseBool(option.Value)
		if err != nil {
			d.mu.Unlock()
			return &ErrInvalidOption{Name: option.Name}
		}

		d.enabled = enabled
		disable = !enabled
	}

	o := *option
	d.options[o.Name] = &o
	enabled := d.enabled
	d.mu.Unlock()

	d.logger.Debug("Option updated", common.LogDomainToken, d.domain, common.LogOptionToken, option.Name)

	if enabled {
		return d.Connect()
	}

	if disable {
		return d.Disconnect()
	}

	return nil
}

// GetOption returns previously set option.
func (d *Driver) GetOption(name string) (*driver.Option, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	o, ok := d.options[name]
	if !ok {
		return nil, false
	}

	c := *o
	return &c, true
}

// GetModules returns current module set.
func (d *Driver) GetModules() []*driver.Module {
	return d.registry.List()
}

// Commands returns commands this driver handles.
func (d *Driver) Commands() []enums.Command {
	return d.dispatcher.Commands()
}

// InterfaceControl handles single inbound command.
// Every call produces exactly one response, failures are encoded in it.
// Only connected interface serves commands.
func (d *Driver) InterfaceControl(request *driver.CommandRequest) *driver.CommandResponse {
	if nil == request {
		return driver.NewResponseError("empty request")
	}

	switch d.State() {
	case StateDisposed:
		d.logger.Error("Command received by disposed interface", d.disposedError("interface control"),
			common.LogDomainToken, d.domain, common.LogModuleToken, request.Address)
		return driver.NewResponseError(ProblemDisposed)
	case StateDisconnected:
		d.logger.Warn("Command received by disconnected interface", common.LogDomainToken, d.domain,
			common.LogModuleToken, request.Address, common.LogCommandToken, request.Command)
		return driver.NewResponseError(ProblemNotConnected)
	}

	command := d.parser.Parse(request.Command)

	module, ok := d.registry.FindByAddress(request.Address)
	if !ok {
		d.logger.Warn("Command for unknown module", common.LogDomainToken, d.domain,
			common.LogModuleToken, request.Address, common.LogCommandToken, request.Command)
		return driver.NewResponseError(ProblemInvalidAddress)
	}

	return d.dispatcher.Dispatch(d.domain, module, command, request.Options)
}

// Must be called under lock.
func (d *Driver) disconnect() {
	if d.state != StateConnected {
		return
	}

	d.state = StateDisconnected
	d.logger.Info("Interface disconnected", common.LogDomainToken, d.domain)
}

func (d *Driver) disposedError(operation string) error {
	return &ErrDriverDisposed{Domain: d.domain, Operation: operation}
}
