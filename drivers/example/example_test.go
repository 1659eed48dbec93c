package example

import (
	"testing"

	"github.com/go-home-io/driverhost/mocks"
	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/plugins/driver/enums"
	"github.com/go-home-io/driverhost/providers"
	"github.com/go-home-io/driverhost/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, config string) (driver.IDriver, mocks.IFakeFanOut) {
	logger := mocks.FakeNewLogger(nil)
	sink := mocks.FakeNewFanOut()
	loader := utils.NewDriverLoader(&utils.ConstructDriverLoader{
		Providers: map[string]driver.ProviderFactory{"example": NewProvider},
		Validator: utils.NewValidator(logger),
		Logger:    logger,
	})

	d, err := loader.LoadDriver(&providers.DriverLoadRequest{
		Provider:  "example",
		RawConfig: []byte(config),
		InitData:  &driver.InitDataDriver{Logger: logger, Sink: sink},
	})

	require.NoError(t, err)
	return d, sink
}

// Tests default modules.
func TestDefaultModules(t *testing.T) {
	d, sink := load(t, "")
	assert.Equal(t, Domain, d.GetDomain())
	assert.True(t, d.IsDevicePresent())

	require.NoError(t, d.SetOption(&driver.Option{Name: driver.OptionEnabled, Value: "true"}))
	assert.True(t, d.IsConnected())

	expected := []*driver.Module{
		{Domain: Domain, Address: "1", ModuleType: enums.ModLight},
		{Domain: Domain, Address: "2", ModuleType: enums.ModSensor},
		{Domain: Domain, Address: "3", ModuleType: enums.ModSensor},
	}

	if diff := cmp.Diff(expected, d.GetModules()); "" != diff {
		t.Fatalf("modules mismatch: %s", diff)
	}

	assert.Equal(t, 1, len(sink.ModulesEvents()))
}

// Tests every supported command.
func TestCommands(t *testing.T) {
	data := []struct {
		address  string
		command  string
		options  []string
		response string
		path     string
		value    interface{}
	}{
		{address: "1", command: "Control.On", response: "OK", path: "Status.Level", value: 1},
		{address: "1", command: "Control.Off", response: "OK", path: "Status.Level", value: 0},
		{address: "2", command: "Temperature.Get", response: "OK", path: "Sensor.Temperature", value: 19.75},
		{address: "3", command: "Greet.Hello", options: []string{"World"}, response: "Hello World!",
			path: "Sensor.Message", value: "Hello World"},
	}

	for _, v := range data {
		d, sink := load(t, "")
		require.NoError(t, d.Connect())

		resp := d.InterfaceControl(&driver.CommandRequest{
			Domain:  Domain,
			Address: v.address,
			Command: v.command,
			Options: v.options,
		})

		assert.Equal(t, v.response, resp.ResponseValue, v.command)
		events := sink.PropertyEvents()
		require.Equal(t, 1, len(events), v.command)
		assert.Equal(t, v.path, events[0].PropertyPath, v.command)
		assert.Equal(t, v.value, events[0].Value, v.command)
		assert.Equal(t, "Test Interface", events[0].Description, v.command)
	}
}

// Tests custom config.
func TestCustomConfig(t *testing.T) {
	config := `
description: Garage
temperature: 4.5
absent: true
modules:
  - address: A1
    type: dimmer
  - address: A2
    type: temperature
`
	d, sink := load(t, config)
	assert.False(t, d.IsDevicePresent())
	require.NoError(t, d.Connect())

	expected := []*driver.Module{
		{Domain: Domain, Address: "A1", ModuleType: enums.ModDimmer},
		{Domain: Domain, Address: "A2", ModuleType: enums.ModTemperature},
	}

	if diff := cmp.Diff(expected, d.GetModules()); "" != diff {
		t.Fatalf("modules mismatch: %s", diff)
	}

	d.InterfaceControl(&driver.CommandRequest{Address: "A2", Command: "Temperature.Get"})
	events := sink.PropertyEvents()
	require.Equal(t, 1, len(events))
	assert.Equal(t, 4.5, events[0].Value)
	assert.Equal(t, "Garage", events[0].Description)
}

// Tests configured domain.
func TestConfiguredDomain(t *testing.T) {
	p := NewProvider()
	d, err := p.Init(&driver.InitDataDriver{Logger: mocks.FakeNewLogger(nil), Domain: "Garage.Interface"})
	require.NoError(t, err)
	assert.Equal(t, "Garage.Interface", d.GetDomain())
	require.NoError(t, d.Connect())
	assert.Equal(t, "Garage.Interface", d.GetModules()[0].Domain)
}

// Tests invalid configs.
func TestInvalidConfig(t *testing.T) {
	data := []string{
		"modules:\n  - address: 1\n  - address: 1",
		"modules:\n  - type: light",
		"modules:\n  - address: 1\n    type: toaster",
		"temperature: hot",
	}

	for _, v := range data {
		logger := mocks.FakeNewLogger(nil)
		loader := utils.NewDriverLoader(&utils.ConstructDriverLoader{
			Providers: map[string]driver.ProviderFactory{"example": NewProvider},
			Validator: utils.NewValidator(logger),
			Logger:    logger,
		})

		_, err := loader.LoadDriver(&providers.DriverLoadRequest{
			Provider:  "example",
			RawConfig: []byte(v),
			InitData:  &driver.InitDataDriver{Logger: logger},
		})
		assert.Error(t, err, v)
	}
}
