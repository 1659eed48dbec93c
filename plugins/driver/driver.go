// Package driver contains device-interface driver definitions.
package driver

import (
	"github.com/go-home-io/driverhost/plugins/common"
)

// OptionEnabled is the name of the option which brings driver online.
const OptionEnabled = "Enabled"

// IDriver defines generic device-interface driver consumed by the host.
type IDriver interface {
	GetDomain() string
	Connect() error
	Disconnect() error
	Dispose() error
	IsConnected() bool
	IsEnabled() bool
	IsDevicePresent() bool
	SetOption(*Option) error
	GetOption(name string) (*Option, bool)
	GetModules() []*Module
	InterfaceControl(*CommandRequest) *CommandResponse
}

// INotificationSink defines host-side consumer of driver events.
// Calls are fire-and-forget: implementations must not block the driver.
type INotificationSink interface {
	ModulesChanged(*ModulesChangedEvent)
	PropertyChanged(*PropertyChangedEvent)
}

// DiscoveryFunc returns complete module set for the domain.
type DiscoveryFunc func(domain string) ([]*Module, error)

// PresenceFunc reports whether interface hardware is present.
type PresenceFunc func() bool

// InitDataDriver has data required for initializing a new driver.
type InitDataDriver struct {
	Logger common.ILoggerProvider
	Sink   INotificationSink
	Domain string
}

// IDriverProvider is implemented by every driver provider.
// Loader unmarshals raw provider config into Settings() result, validates it and then calls Init.
type IDriverProvider interface {
	Settings() interface{}
	Init(*InitDataDriver) (IDriver, error)
}

// ProviderFactory constructs a fresh driver provider.
type ProviderFactory func() IDriverProvider
