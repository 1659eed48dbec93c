// Package settings is responsible for parsing yaml-based configuration.
package settings

import (
	"bytes"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/docker/docker/pkg/namesgenerator"
	"github.com/go-home-io/driverhost/drivers"
	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/providers"
	"github.com/go-home-io/driverhost/systems"
	"github.com/go-home-io/driverhost/systems/fanout"
	"github.com/go-home-io/driverhost/systems/logger"
	"github.com/go-home-io/driverhost/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "settings"
)

// StartUpOptions defines arguments allowed by the system.
type StartUpOptions struct {
	Config   string `short:"c" long:"config" description:"Config file or folder. Defaults to ./configs/driverhost.yaml."`
	Port     int    `short:"p" long:"port" description:"Overrides API port."`
	LogLevel string `short:"l" long:"log-level" description:"Overrides log level."`
}

// Defines loaded provider record.
type rawProvider struct {
	System   systems.SystemType
	Provider string
	Config   []byte
}

// Generic part of every driver section.
type driverSelector struct {
	Provider string            `yaml:"provider"`
	Domain   string            `yaml:"domain"`
	Enabled  *bool             `yaml:"enabled"`
	Options  map[string]string `yaml:"options"`
}

// System settings.
type settingsProvider struct {
	options *StartUpOptions

	logger    common.ILoggerProvider
	nodeID    string
	cron      providers.ICronProvider
	loader    providers.IDriverLoaderProvider
	validator providers.IValidatorProvider
	fanOut    providers.IInternalFanOutProvider

	hostSettings  *providers.HostSettings
	mqttSettings  *providers.MQTTSettings
	driversConfig []*providers.RawDriver
}

// Load reads system configuration from the location set in options.
func Load(options *StartUpOptions) (providers.ISettingsProvider, error) {
	location := options.Config
	if "" == location {
		location = utils.GetDefaultConfigFile()
	}

	s := newSettingsProvider(options)
	files, err := readConfigFiles(location, s.logger)
	if err != nil {
		return nil, err
	}

	if err := s.load(files); err != nil {
		return nil, err
	}

	return s, nil
}

// Constructs settings with the bootstrap logger.
func newSettingsProvider(options *StartUpOptions) *settingsProvider {
	s := &settingsProvider{
		options:       options,
		logger:        logger.NewConsoleLogger(&logger.ConstructLogger{Level: options.LogLevel}),
		driversConfig: make([]*providers.RawDriver, 0),
	}

	s.validator = utils.NewValidator(s.logger)
	return s
}

// Processes config files content.
func (s *settingsProvider) load(files [][]byte) error {
	tpl := newTemplateProvider(s.logger)
	allProviders := make([]*rawProvider, 0)
	for _, v := range files {
		data, err := tpl.Process(v)
		if err != nil {
			return err
		}

		allProviders = append(allProviders, s.loadFile(data)...)
	}

	host := s.singleSection(allProviders, systems.SysHost)
	if err := s.loadHostSettings(host); err != nil {
		return err
	}

	s.loadLogger(s.singleSection(allProviders, systems.SysLogger))

	if err := s.loadMQTTSettings(s.singleSection(allProviders, systems.SysMQTT)); err != nil {
		return err
	}

	s.fanOut = fanout.NewFanOut(s.logger)
	s.cron = utils.NewCron()
	s.loader = utils.NewDriverLoader(&utils.ConstructDriverLoader{
		Providers: drivers.Providers(),
		Validator: s.validator,
		Logger:    s.logger,
	})

	for _, v := range allProviders {
		if v.System != systems.SysDriver {
			continue
		}

		if err := s.loadDriver(v); err != nil {
			s.logger.Error("Failed to load driver config", err, common.LogSystemToken, logSystem,
				common.LogProviderToken, v.Provider)
		}
	}

	return nil
}

// Processes single yaml file.
func (s *settingsProvider) loadFile(fileData []byte) []*rawProvider {
	provs := make([]*rawProvider, 0)
	decoder := yaml.NewDecoder(bytes.NewReader(fileData))
	for {
		var value map[string]interface{}
		err := decoder.Decode(&value)
		if err == io.EOF {
			break
		}

		if err != nil {
			s.logger.Error("Failed to parse config file", err, common.LogSystemToken, logSystem)
			break
		}

		if nil == value {
			continue
		}

		componentType := ""
		componentProvider := ""

		if cs, ok := value["system"].(string); ok {
			componentType = strings.ToLower(cs)
		}

		if ct, ok := value["provider"].(string); ok {
			componentProvider = strings.ToLower(ct)
		}

		sys, err := systems.SystemTypeString(componentType)
		if err != nil {
			s.logger.Warn("Failed to parse a record in the config file: system is unknown",
				common.LogSystemToken, logSystem, common.LogFieldToken, componentType)
			continue
		}

		byteData, err := yaml.Marshal(value)
		if err != nil {
			s.logger.Error("Failed to parse config file", err, common.LogSystemToken, componentType,
				common.LogProviderToken, componentProvider)
			continue
		}

		provs = append(provs, &rawProvider{
			System:   sys,
			Provider: componentProvider,
			Config:   byteData,
		})
	}

	return provs
}

// Returns first section of the given system, duplicates are ignored.
func (s *settingsProvider) singleSection(provs []*rawProvider, sys systems.SystemType) *rawProvider {
	var result *rawProvider
	for _, v := range provs {
		if v.System != sys {
			continue
		}

		if nil != result {
			s.logger.Warn("Ignoring duplicated config section", common.LogSystemToken, sys.String())
			continue
		}

		result = v
	}

	return result
}

// Loads host node settings.
// Missing section means default settings.
func (s *settingsProvider) loadHostSettings(provider *rawProvider) error {
	set := &providers.HostSettings{}
	if nil != provider {
		if err := yaml.Unmarshal(provider.Config, set); err != nil {
			return errors.Wrap(err, "un-marshal host settings failed")
		}
	} else {
		s.logger.Warn("Host settings are not defined, using the default ones",
			common.LogSystemToken, logSystem)
	}

	if s.options.Port > 0 {
		set.Port = s.options.Port
	}

	if !s.validator.Validate(set) {
		return &ErrInvalidSection{System: systems.SysHost.String()}
	}

	if "" == set.Name {
		set.Name = namesgenerator.GetRandomName(0)
		s.logger.Warn("Generating random node name since it's not configured",
			common.LogSystemToken, logSystem, common.LogNodeToken, set.Name)
	}

	s.hostSettings = set
	s.nodeID = set.Name
	return nil
}

// Loads logger configuration.
// Command line level wins over the config one.
func (s *settingsProvider) loadLogger(provider *rawProvider) {
	set := &logger.Settings{}
	if nil != provider {
		if err := yaml.Unmarshal(provider.Config, set); err != nil {
			s.logger.Error("Failed to load logger settings", err, common.LogSystemToken, logSystem)
		}
	}

	if !s.validator.Validate(set) {
		s.logger.Warn("Incorrect logger settings, using the default ones", common.LogSystemToken, logSystem)
	}

	if "" != s.options.LogLevel {
		set.Level = s.options.LogLevel
	}

	s.logger = logger.NewConsoleLogger(&logger.ConstructLogger{
		Level:  set.Level,
		NodeID: s.nodeID,
	})

	s.validator.SetLogger(logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: s.logger,
		Provider:     "driverhost",
		Domain:       "validator",
	}))
}

// Loads MQTT bridge settings, bridge is disabled without them.
func (s *settingsProvider) loadMQTTSettings(provider *rawProvider) error {
	if nil == provider {
		return nil
	}

	set := &providers.MQTTSettings{}
	if err := yaml.Unmarshal(provider.Config, set); err != nil {
		return errors.Wrap(err, "un-marshal mqtt settings failed")
	}

	if !s.validator.Validate(set) {
		return &ErrInvalidSection{System: systems.SysMQTT.String()}
	}

	if "" == set.ClientID {
		set.ClientID = s.nodeID
	}

	s.mqttSettings = set
	return nil
}

// Loads single driver section.
func (s *settingsProvider) loadDriver(provider *rawProvider) error {
	selector := &driverSelector{}
	if err := yaml.Unmarshal(provider.Config, selector); err != nil {
		return errors.Wrap(err, "un-marshal driver selector failed")
	}

	if "" == selector.Provider {
		return &ErrInvalidSection{System: systems.SysDriver.String()}
	}

	if "" != selector.Domain {
		for _, v := range s.driversConfig {
			if v.Domain == selector.Domain {
				s.logger.Warn("Ignoring driver since domain is duplicated",
					common.LogProviderToken, provider.Provider, common.LogDomainToken, selector.Domain)
				return nil
			}
		}
	}

	s.driversConfig = append(s.driversConfig, &providers.RawDriver{
		Provider:  strings.ToLower(selector.Provider),
		Domain:    selector.Domain,
		Options:   driverOptions(selector),
		RawConfig: provider.Config,
	})

	return nil
}

// Converts options map into sorted list.
// Enabled always goes last, so driver receives its settings before going online.
func driverOptions(selector *driverSelector) []*providers.RawOption {
	names := make([]string, 0, len(selector.Options))
	for k := range selector.Options {
		if k == driver.OptionEnabled {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)

	result := make([]*providers.RawOption, 0, len(names)+1)
	for _, v := range names {
		result = append(result, &providers.RawOption{Name: v, Value: selector.Options[v]})
	}

	enabled := true
	if nil != selector.Enabled {
		enabled = *selector.Enabled
	}

	return append(result, &providers.RawOption{Name: driver.OptionEnabled, Value: strconv.FormatBool(enabled)})
}
