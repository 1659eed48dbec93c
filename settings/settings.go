package settings

import (
	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/providers"
	"github.com/go-home-io/driverhost/systems/logger"
)

// SystemLogger returns default system logger.
func (s *settingsProvider) SystemLogger() common.ILoggerProvider {
	return s.logger
}

// PluginLogger returns logger specifically for a driver instance.
func (s *settingsProvider) PluginLogger(provider string, domain string) common.ILoggerProvider {
	return logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: s.logger,
		Provider:     provider,
		Domain:       domain,
	})
}

// NodeID returns current instance node ID.
func (s *settingsProvider) NodeID() string {
	return s.nodeID
}

// Cron returns system's cron provider.
func (s *settingsProvider) Cron() providers.ICronProvider {
	return s.cron
}

// DriverLoader returns driver loader provider.
func (s *settingsProvider) DriverLoader() providers.IDriverLoaderProvider {
	return s.loader
}

// Validator returns yaml validator provider.
func (s *settingsProvider) Validator() providers.IValidatorProvider {
	return s.validator
}

// FanOut returns fan out channel.
func (s *settingsProvider) FanOut() providers.IInternalFanOutProvider {
	return s.fanOut
}

// HostSettings returns host node settings.
func (s *settingsProvider) HostSettings() *providers.HostSettings {
	return s.hostSettings
}

// MQTTSettings returns MQTT bridge settings, nil if bridge is not configured.
func (s *settingsProvider) MQTTSettings() *providers.MQTTSettings {
	return s.mqttSettings
}

// DriversConfig returns raw drivers configs.
func (s *settingsProvider) DriversConfig() []*providers.RawDriver {
	return s.driversConfig
}
