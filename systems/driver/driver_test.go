package driver

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-home-io/driverhost/mocks"
	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/plugins/driver/enums"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDiscovery struct {
	sync.Mutex
	calls   int
	modules []*driver.Module
	err     error
}

func (f *fakeDiscovery) discover(domain string) ([]*driver.Module, error) {
	f.Lock()
	defer f.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return f.modules, nil
}

func (f *fakeDiscovery) Calls() int {
	f.Lock()
	defer f.Unlock()
	return f.calls
}

func getDefaultModules() []*driver.Module {
	return []*driver.Module{
		{Domain: testDomain, Address: "1", ModuleType: enums.ModLight},
		{Domain: testDomain, Address: "2", ModuleType: enums.ModSensor},
		{Domain: testDomain, Address: "3", ModuleType: enums.ModSensor},
	}
}

func getDriver(t *testing.T, discovery *fakeDiscovery) (*Driver, mocks.IFakeFanOut) {
	sink := mocks.FakeNewFanOut()
	handlers := DefaultHandlers(func(*driver.Module) (float64, error) { return 19.75, nil })
	handlers[enums.CmdGreetHello] = func(ctx *CommandContext) *driver.CommandResponse {
		ctx.Emit(enums.PropSensorMessage, "Hello "+ctx.Option(0))
		return driver.NewResponseText("Hello World!")
	}

	d, err := NewDriver(&ConstructDriver{
		Domain:      testDomain,
		Description: "Test Interface",
		Logger:      mocks.FakeNewLogger(nil),
		Sink:        sink,
		Discovery:   discovery.discover,
		Handlers:    handlers,
	})

	require.NoError(t, err)
	return d, sink
}

// Tests constructor validation.
func TestNewDriverErrors(t *testing.T) {
	_, err := NewDriver(&ConstructDriver{Discovery: (&fakeDiscovery{}).discover})
	assert.IsType(t, &ErrEmptyDomain{}, err)

	_, err = NewDriver(&ConstructDriver{Domain: testDomain})
	assert.IsType(t, &ErrNoDiscovery{}, err)
}

// Tests connect with module registration.
func TestConnect(t *testing.T) {
	d, sink := getDriver(t, &fakeDiscovery{modules: getDefaultModules()})

	assert.Equal(t, StateDisconnected, d.State())
	assert.Empty(t, d.GetModules())

	require.NoError(t, d.Connect())
	assert.True(t, d.IsConnected())

	modules := d.GetModules()
	if diff := cmp.Diff(getDefaultModules(), modules); "" != diff {
		t.Fatalf("modules mismatch: %s", diff)
	}

	seen := make(map[string]bool)
	for _, v := range modules {
		assert.Equal(t, testDomain, v.Domain)
		assert.False(t, seen[v.Address], v.Address)
		seen[v.Address] = true
	}

	events := sink.ModulesEvents()
	require.Equal(t, 1, len(events))
	assert.Equal(t, testDomain, events[0].Domain)
}

// Tests that repeated connect doesn't duplicate modules.
func TestConnectTwice(t *testing.T) {
	discovery := &fakeDiscovery{modules: getDefaultModules()}
	d, sink := getDriver(t, discovery)

	require.NoError(t, d.Connect())
	require.NoError(t, d.Connect())

	assert.True(t, d.IsConnected())
	assert.Equal(t, 3, len(d.GetModules()))
	assert.Equal(t, 2, len(sink.ModulesEvents()))
	assert.Equal(t, 1, discovery.Calls())
}

// Tests failed discovery.
func TestConnectErrors(t *testing.T) {
	data := []*fakeDiscovery{
		{err: errors.New("bus is down")},
		{modules: getModules("1", "1")},
		{modules: []*driver.Module{{Domain: "Other.Interface", Address: "1"}}},
		{modules: getModules("")},
	}

	for i, v := range data {
		d, sink := getDriver(t, v)
		assert.Error(t, d.Connect(), "case %d", i)
		assert.Equal(t, StateDisconnected, d.State(), "case %d", i)
		assert.Empty(t, d.GetModules(), "case %d", i)
		assert.Empty(t, sink.ModulesEvents(), "case %d", i)
	}
}

// Tests disconnect idempotency.
func TestDisconnect(t *testing.T) {
	d, _ := getDriver(t, &fakeDiscovery{modules: getDefaultModules()})

	assert.NoError(t, d.Disconnect())
	assert.Equal(t, StateDisconnected, d.State())

	require.NoError(t, d.Connect())
	assert.NoError(t, d.Disconnect())
	assert.NoError(t, d.Disconnect())
	assert.False(t, d.IsConnected())
	assert.Equal(t, 3, len(d.GetModules()), "modules survive disconnect")
}

// Tests that every operation fails after dispose.
func TestDispose(t *testing.T) {
	d, sink := getDriver(t, &fakeDiscovery{modules: getDefaultModules()})
	require.NoError(t, d.Connect())
	require.NoError(t, d.Dispose())

	assert.Equal(t, StateDisposed, d.State())
	assert.Empty(t, d.GetModules())

	assert.IsType(t, &ErrDriverDisposed{}, d.Connect())
	assert.IsType(t, &ErrDriverDisposed{}, d.Disconnect())
	assert.IsType(t, &ErrDriverDisposed{}, d.Dispose())
	assert.IsType(t, &ErrDriverDisposed{},
		d.SetOption(&driver.Option{Name: driver.OptionEnabled, Value: "true"}))

	resp := d.InterfaceControl(&driver.CommandRequest{Domain: testDomain, Address: "1", Command: "Control.On"})
	assert.True(t, resp.IsError)
	assert.Equal(t, "ERROR: interface disposed", resp.ResponseValue)
	assert.Empty(t, sink.PropertyEvents())
	assert.Equal(t, 1, len(sink.ModulesEvents()))
}

// Tests inbound commands.
func TestInterfaceControl(t *testing.T) {
	data := []struct {
		address  string
		command  string
		options  []string
		response string
		isError  bool
		path     string
		value    interface{}
	}{
		{address: "1", command: "Control.On", response: "OK", path: "Status.Level", value: 1},
		{address: "1", command: "Control.Off", response: "OK", path: "Status.Level", value: 0},
		{address: "2", command: "Temperature.Get", response: "OK", path: "Sensor.Temperature", value: 19.75},
		{address: "3", command: "Greet.Hello", options: []string{"Bob"}, response: "Hello World!",
			path: "Sensor.Message", value: "Hello Bob"},
		{address: "3", command: "Greet.Hello", response: "Hello World!", path: "Sensor.Message", value: "Hello "},
		{address: "1", command: "Control_On", response: "OK", path: "Status.Level", value: 1},
		{address: "1", command: "Make.Coffee", response: "OK"},
		{address: "1", command: "control.on", response: "OK"},
		{address: "1", command: "", response: "OK"},
		{address: "99", command: "Control.On", response: "ERROR: invalid module address", isError: true},
		{address: "", command: "Control.On", response: "ERROR: invalid module address", isError: true},
	}

	for _, v := range data {
		d, sink := getDriver(t, &fakeDiscovery{modules: getDefaultModules()})
		require.NoError(t, d.Connect())

		resp := d.InterfaceControl(&driver.CommandRequest{
			Domain:  testDomain,
			Address: v.address,
			Command: v.command,
			Options: v.options,
		})

		require.NotNil(t, resp, v.command)
		assert.Equal(t, v.response, resp.ResponseValue, v.command)
		assert.Equal(t, v.isError, resp.IsError, v.command)

		events := sink.PropertyEvents()
		if "" == v.path {
			assert.Empty(t, events, v.command)
			continue
		}

		require.Equal(t, 1, len(events), v.command)
		assert.Equal(t, testDomain, events[0].Domain, v.command)
		assert.Equal(t, v.address, events[0].Source, v.command)
		assert.Equal(t, "Test Interface", events[0].Description, v.command)
		assert.Equal(t, v.path, events[0].PropertyPath, v.command)
		assert.Equal(t, v.value, events[0].Value, v.command)
	}
}

// Tests that only connected interface serves commands.
func TestInterfaceControlNotConnected(t *testing.T) {
	d, sink := getDriver(t, &fakeDiscovery{modules: getDefaultModules()})

	resp := d.InterfaceControl(&driver.CommandRequest{Domain: testDomain, Address: "1", Command: "Control.On"})
	assert.True(t, resp.IsError)
	assert.Equal(t, "ERROR: interface not connected", resp.ResponseValue)

	require.NoError(t, d.Connect())
	resp = d.InterfaceControl(&driver.CommandRequest{Domain: testDomain, Address: "1", Command: "Control.On"})
	assert.False(t, resp.IsError)

	require.NoError(t, d.Disconnect())
	resp = d.InterfaceControl(&driver.CommandRequest{Domain: testDomain, Address: "1", Command: "Control.Off"})
	assert.True(t, resp.IsError)
	assert.Equal(t, "ERROR: interface not connected", resp.ResponseValue)
	assert.Equal(t, 1, len(sink.PropertyEvents()))

	resp = d.InterfaceControl(nil)
	assert.True(t, resp.IsError)
}

// Tests that known command without a handler is rejected and logged.
func TestInterfaceControlUnhandled(t *testing.T) {
	logger := mocks.FakeNewLogger(nil)
	sink := mocks.FakeNewFanOut()
	d, err := NewDriver(&ConstructDriver{
		Domain:    testDomain,
		Logger:    logger,
		Sink:      sink,
		Discovery: (&fakeDiscovery{modules: getDefaultModules()}).discover,
		Handlers:  DefaultHandlers(nil),
	})
	require.NoError(t, err)
	require.NoError(t, d.Connect())

	for _, v := range enums.CommandValues() {
		assert.Equal(t, v, d.parser.Parse(v.String()), v.String())
	}

	resp := d.InterfaceControl(&driver.CommandRequest{Domain: testDomain, Address: "2", Command: "Temperature.Get"})
	assert.True(t, resp.IsError)
	assert.Equal(t, "ERROR: command not supported", resp.ResponseValue)
	assert.Empty(t, sink.PropertyEvents())

	errs := logger.Errors()
	require.Equal(t, 1, len(errs))
	assert.IsType(t, &ErrUnhandledCommand{}, errs[0])

	resp = d.InterfaceControl(&driver.CommandRequest{Domain: testDomain, Address: "3", Command: "Greet.Hello"})
	assert.Equal(t, "ERROR: command not supported", resp.ResponseValue)
	assert.Equal(t, 2, len(logger.Errors()))
}

// Tests options handling.
func TestSetOption(t *testing.T) {
	d, sink := getDriver(t, &fakeDiscovery{modules: getDefaultModules()})

	assert.IsType(t, &ErrInvalidOption{}, d.SetOption(nil))
	assert.IsType(t, &ErrInvalidOption{}, d.SetOption(&driver.Option{}))
	assert.IsType(t, &ErrInvalidOption{}, d.SetOption(&driver.Option{Name: driver.OptionEnabled, Value: "maybe"}))

	require.NoError(t, d.SetOption(&driver.Option{Name: "Port", Value: "/dev/ttyUSB0"}))
	assert.False(t, d.IsConnected())

	o, ok := d.GetOption("Port")
	require.True(t, ok)
	assert.Equal(t, "/dev/ttyUSB0", o.Value)
	o.Value = "changed"
	o, _ = d.GetOption("Port")
	assert.Equal(t, "/dev/ttyUSB0", o.Value)

	_, ok = d.GetOption("Missing")
	assert.False(t, ok)

	require.NoError(t, d.SetOption(&driver.Option{Name: driver.OptionEnabled, Value: "true"}))
	assert.True(t, d.IsEnabled())
	assert.True(t, d.IsConnected())
	assert.Equal(t, 1, len(sink.ModulesEvents()))

	require.NoError(t, d.SetOption(&driver.Option{Name: driver.OptionEnabled, Value: "false"}))
	assert.False(t, d.IsEnabled())
	assert.False(t, d.IsConnected())
}

// Tests presence probe.
func TestIsDevicePresent(t *testing.T) {
	d, _ := getDriver(t, &fakeDiscovery{})
	assert.True(t, d.IsDevicePresent())

	d, err := NewDriver(&ConstructDriver{
		Domain:    testDomain,
		Logger:    mocks.FakeNewLogger(nil),
		Discovery: (&fakeDiscovery{}).discover,
		Presence:  func() bool { return false },
	})
	require.NoError(t, err)
	assert.False(t, d.IsDevicePresent())
	assert.Equal(t, testDomain, d.GetDomain())
}

// Tests that commands are served while module set is being rebuilt.
// Lookups never see a partial set: the only allowed failure is an offline interface.
func TestConcurrentControl(t *testing.T) {
	discovery := &fakeDiscovery{modules: getDefaultModules()}
	d, _ := getDriver(t, discovery)
	require.NoError(t, d.Connect())

	var wg sync.WaitGroup
	errs := make(chan string, 400)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				resp := d.InterfaceControl(&driver.CommandRequest{Domain: testDomain, Address: "3", Command: "Control.On"})
				if resp.IsError && "ERROR: interface not connected" != resp.ResponseValue {
					errs <- resp.ResponseValue
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		assert.NoError(t, d.Disconnect())
		assert.NoError(t, d.Connect())
	}

	wg.Wait()
	close(errs)
	assert.Empty(t, errs)
	assert.Equal(t, 51, discovery.Calls())
}

// Tests state names.
func TestStateString(t *testing.T) {
	assert.Equal(t, "disconnected", StateDisconnected.String())
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "disposed", StateDisposed.String())
	assert.Equal(t, "unknown", State(10).String())
}
