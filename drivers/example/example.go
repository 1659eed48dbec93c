// Package example contains reference device-interface driver.
// It has no hardware behind it: modules come from config and
// every command is answered with a synthetic property change.
package example

import (
	"fmt"

	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/plugins/driver/enums"
	systemDriver "github.com/go-home-io/driverhost/systems/driver"
)

// Domain is the default domain of the example interface.
const Domain = "Example.Interface"

// Example driver provider.
type provider struct {
	settings *Settings
}

// NewProvider constructs a new example driver provider.
func NewProvider() driver.IDriverProvider {
	return &provider{
		settings: &Settings{},
	}
}

// Settings returns object which receives provider config.
func (p *provider) Settings() interface{} {
	return p.settings
}

// Init constructs a new example driver.
func (p *provider) Init(data *driver.InitDataDriver) (driver.IDriver, error) {
	domain := data.Domain
	if "" == domain {
		domain = Domain
	}

	modules := p.settings.Modules
	if 0 == len(modules) {
		modules = defaultModules()
	}

	handlers := systemDriver.DefaultHandlers(p.readTemperature)
	handlers[enums.CmdGreetHello] = greet

	present := !p.settings.Absent

	d, err := systemDriver.NewDriver(&systemDriver.ConstructDriver{
		Domain:      domain,
		Description: p.settings.Description,
		Logger:      data.Logger,
		Sink:        data.Sink,
		Discovery:   discovery(modules),
		Presence:    func() bool { return present },
		Handlers:    handlers,
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Reads configured temperature.
func (p *provider) readTemperature(*driver.Module) (float64, error) {
	return p.settings.Temperature, nil
}

// Returns discovery function exposing configured modules.
func discovery(modules []*ModuleSettings) driver.DiscoveryFunc {
	return func(domain string) ([]*driver.Module, error) {
		result := make([]*driver.Module, 0, len(modules))
		for _, v := range modules {
			result = append(result, &driver.Module{
				Domain:     domain,
				Address:    v.Address,
				ModuleType: v.Type,
			})
		}

		return result, nil
	}
}

// Greets first option.
func greet(ctx *systemDriver.CommandContext) *driver.CommandResponse {
	ctx.Emit(enums.PropSensorMessage, fmt.Sprintf("Hello %s", ctx.Option(0)))
	return driver.NewResponseText("Hello World!")
}
