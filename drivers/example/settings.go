package example

import (
	"github.com/go-home-io/driverhost/plugins/driver/enums"
)

// ModuleSettings describes a single module exposed by the example interface.
type ModuleSettings struct {
	Address string           `yaml:"address" validate:"required"`
	Type    enums.ModuleType `yaml:"type"`
}

// Settings has data required to start the example interface.
type Settings struct {
	Description string            `yaml:"description" default:"Test Interface"`
	Temperature float64           `yaml:"temperature" default:"19.75"`
	Absent      bool              `yaml:"absent"`
	Modules     []*ModuleSettings `yaml:"modules" validate:"dive"`
}

// Validate checks modules list.
func (s *Settings) Validate() error {
	seen := make(map[string]bool, len(s.Modules))
	for _, v := range s.Modules {
		if seen[v.Address] {
			return &ErrDuplicateModule{Address: v.Address}
		}

		seen[v.Address] = true
	}

	return nil
}

// Modules exposed when config doesn't list any.
func defaultModules() []*ModuleSettings {
	return []*ModuleSettings{
		{Address: "1", Type: enums.ModLight},
		{Address: "2", Type: enums.ModSensor},
		{Address: "3", Type: enums.ModSensor},
	}
}
