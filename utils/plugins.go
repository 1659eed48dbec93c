// Package utils contains various helpers.
package utils

import (
	"sort"
	"strings"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/providers"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "loader"
)

// ConstructDriverLoader contains params required for creating a new driver loader instance.
type ConstructDriverLoader struct {
	Providers map[string]driver.ProviderFactory
	Validator providers.IValidatorProvider
	Logger    common.ILoggerProvider
}

// Static drivers loader.
type driverLoader struct {
	validator providers.IValidatorProvider
	logger    common.ILoggerProvider

	factories map[string]driver.ProviderFactory
}

// NewDriverLoader creates a new drivers loader.
// Provider names are case-insensitive.
func NewDriverLoader(ctor *ConstructDriverLoader) providers.IDriverLoaderProvider {
	loader := driverLoader{
		validator: ctor.Validator,
		logger:    ctor.Logger,
		factories: make(map[string]driver.ProviderFactory, len(ctor.Providers)),
	}

	for k, v := range ctor.Providers {
		loader.factories[strings.ToLower(k)] = v
	}

	return &loader
}

// Providers returns sorted names of known driver providers.
func (l *driverLoader) Providers() []string {
	result := make([]string, 0, len(l.factories))
	for k := range l.factories {
		result = append(result, k)
	}

	sort.Strings(result)
	return result
}

// LoadDriver constructs requested driver.
// Raw config is un-marshaled into provider's settings object which is validated before init.
func (l *driverLoader) LoadDriver(request *providers.DriverLoadRequest) (driver.IDriver, error) {
	key := strings.ToLower(request.Provider)
	factory, ok := l.factories[key]
	if !ok {
		return nil, &ErrUnknownProvider{Provider: request.Provider}
	}

	l.logger.Info("Loading driver", common.LogSystemToken, logSystem, common.LogDriverToken, key)
	provider := factory()

	settings := provider.Settings()
	if nil != settings {
		if err := yaml.Unmarshal(request.RawConfig, settings); err != nil {
			return nil, errors.Wrap(err, "un-marshal settings failed")
		}

		if !l.validator.Validate(settings) {
			return nil, &ErrInvalidConfig{}
		}

		if s, ok := settings.(common.ISettings); ok {
			if err := s.Validate(); err != nil {
				return nil, errors.Wrap(err, "settings validation failed")
			}
		}
	}

	d, err := provider.Init(request.InitData)
	if err != nil {
		return nil, errors.Wrap(err, "init failed")
	}

	if nil == d {
		return nil, &ErrNoDriver{}
	}

	return d, nil
}
