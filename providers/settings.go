package providers

import (
	"github.com/go-home-io/driverhost/plugins/common"
)

// ISettingsProvider defines settings loader provider logic.
type ISettingsProvider interface {
	SystemLogger() common.ILoggerProvider
	PluginLogger(provider string, domain string) common.ILoggerProvider
	NodeID() string
	Cron() ICronProvider
	DriverLoader() IDriverLoaderProvider
	Validator() IValidatorProvider
	FanOut() IInternalFanOutProvider
	HostSettings() *HostSettings
	MQTTSettings() *MQTTSettings
	DriversConfig() []*RawDriver
}

// RawDriver has data describing a single driver instance,
// loaded from config files.
type RawDriver struct {
	Provider  string
	Domain    string
	Options   []*RawOption
	RawConfig []byte
}

// RawOption describes a single driver option from config file.
type RawOption struct {
	Name  string `yaml:"name" validate:"required"`
	Value string `yaml:"value"`
}

// HostSettings has configured data for the host node.
type HostSettings struct {
	Name            string   `yaml:"name"`
	Port            int      `yaml:"port" validate:"required,port" default:"8000"`
	PresenceSeconds int      `yaml:"presenceCheck" validate:"gte=10" default:"30"`
	PropertyMinutes int      `yaml:"propertyTTL" validate:"gte=1" default:"60"`
	AllowedOrigins  []string `yaml:"allowedOrigins"`
}

// MQTTSettings has configured data for the MQTT event bridge.
type MQTTSettings struct {
	Broker      string `yaml:"broker" validate:"required,broker"`
	ClientID    string `yaml:"clientId"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	TopicPrefix string `yaml:"topicPrefix" validate:"required" default:"driverhost"`
	QoS         int    `yaml:"qos" validate:"gte=0,lte=2"`
	Retained    bool   `yaml:"retained"`
	Filter      string `yaml:"filter" default:"*"`
	Payload     string `yaml:"payload"`
}
