//+build !release

package mocks

import (
	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/providers"
)

// IFakeSettings adds additional capabilities to a fake settings provider.
type IFakeSettings interface {
	AddDrivers(drivers map[string]driver.IDriver)
	AddHostSettings(*providers.HostSettings)
	AddMQTTSettings(*providers.MQTTSettings)
}

type fakeSettings struct {
	logger       common.ILoggerProvider
	cron         providers.ICronProvider
	drivers      []*providers.RawDriver
	fanOut       providers.IInternalFanOutProvider
	loader       providers.IDriverLoaderProvider
	hostSettings *providers.HostSettings
	mqttSettings *providers.MQTTSettings
}

func (f *fakeSettings) SystemLogger() common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) PluginLogger(string, string) common.ILoggerProvider {
	return f.logger
}

func (f *fakeSettings) NodeID() string {
	return "driverhost-tests"
}

func (f *fakeSettings) Cron() providers.ICronProvider {
	return f.cron
}

func (f *fakeSettings) DriverLoader() providers.IDriverLoaderProvider {
	return f.loader
}

func (f *fakeSettings) Validator() providers.IValidatorProvider {
	return FakeNewValidator(true)
}

func (f *fakeSettings) FanOut() providers.IInternalFanOutProvider {
	return f.fanOut
}

func (f *fakeSettings) HostSettings() *providers.HostSettings {
	if nil != f.hostSettings {
		return f.hostSettings
	}

	return &providers.HostSettings{
		Port:            9999,
		PresenceSeconds: 30,
		PropertyMinutes: 60,
	}
}

func (f *fakeSettings) MQTTSettings() *providers.MQTTSettings {
	return f.mqttSettings
}

func (f *fakeSettings) DriversConfig() []*providers.RawDriver {
	return f.drivers
}

func (f *fakeSettings) AddDrivers(drivers map[string]driver.IDriver) {
	f.loader = FakeNewDriverLoader(drivers)
}

func (f *fakeSettings) AddHostSettings(s *providers.HostSettings) {
	f.hostSettings = s
}

func (f *fakeSettings) AddMQTTSettings(s *providers.MQTTSettings) {
	f.mqttSettings = s
}

// FakeNewSettings creates a new fake settings provider.
func FakeNewSettings(drivers []*providers.RawDriver, logCallback func(string)) providers.ISettingsProvider {
	return &fakeSettings{
		logger:  FakeNewLogger(logCallback),
		cron:    FakeNewCron(),
		drivers: drivers,
		fanOut:  FakeNewFanOut(),
		loader:  FakeNewDriverLoader(map[string]driver.IDriver{}),
	}
}
