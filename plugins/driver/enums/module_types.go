package enums

import "fmt"

// ModuleType describes enum with known module capability tags.
type ModuleType int

const (
	// ModGeneric describes generic module.
	ModGeneric ModuleType = iota
	// ModProgram describes automation program module.
	ModProgram
	// ModSwitch describes on/off switch.
	ModSwitch
	// ModLight describes light.
	ModLight
	// ModDimmer describes dimmable light.
	ModDimmer
	// ModSensor describes generic sensor.
	ModSensor
	// ModTemperature describes temperature sensor.
	ModTemperature
	// ModSiren describes siren.
	ModSiren
	// ModFan describes fan.
	ModFan
	// ModThermostat describes thermostat.
	ModThermostat
	// ModShutter describes window shutter.
	ModShutter
	// ModDoorWindow describes door or window contact.
	ModDoorWindow
)

var moduleTypeNames = map[ModuleType]string{
	ModGeneric:     "generic",
	ModProgram:     "program",
	ModSwitch:      "switch",
	ModLight:       "light",
	ModDimmer:      "dimmer",
	ModSensor:      "sensor",
	ModTemperature: "temperature",
	ModSiren:       "siren",
	ModFan:         "fan",
	ModThermostat:  "thermostat",
	ModShutter:     "shutter",
	ModDoorWindow:  "door-window",
}

var moduleTypeByName = func() map[string]ModuleType {
	m := make(map[string]ModuleType, len(moduleTypeNames))
	for k, v := range moduleTypeNames {
		m[v] = k
	}
	return m
}()

// ModuleTypeString returns module type from its kebab-case name.
func ModuleTypeString(s string) (ModuleType, error) {
	if t, ok := moduleTypeByName[s]; ok {
		return t, nil
	}

	return ModGeneric, fmt.Errorf("%s does not belong to ModuleType values", s)
}

// String returns kebab-case module type name.
func (i ModuleType) String() string {
	name, ok := moduleTypeNames[i]
	if !ok {
		return fmt.Sprintf("ModuleType(%d)", i)
	}

	return name
}

// MarshalText implements the encoding.TextMarshaler interface.
func (i ModuleType) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (i *ModuleType) UnmarshalText(text []byte) error {
	var err error
	*i, err = ModuleTypeString(string(text))
	return err
}

// MarshalYAML implements a YAML Marshaler.
func (i ModuleType) MarshalYAML() (interface{}, error) {
	return i.String(), nil
}

// UnmarshalYAML implements a YAML Unmarshaler.
func (i *ModuleType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	var err error
	*i, err = ModuleTypeString(s)
	return err
}
