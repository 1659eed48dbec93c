package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-home-io/driverhost/drivers/example"
	"github.com/go-home-io/driverhost/mocks"
	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/plugins/driver/enums"
	"github.com/go-home-io/driverhost/providers"
	"github.com/go-home-io/driverhost/systems/mqtt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDomain = "Example.Interface"
	fakeDomain = "Fake.Interface"
)

type fakePublisher struct {
	sync.Mutex
	topics []string
	closed bool
}

func (f *fakePublisher) Publish(topic string, qos byte, retained bool, payload []byte) error {
	f.Lock()
	defer f.Unlock()
	f.topics = append(f.topics, topic)
	return nil
}

func (f *fakePublisher) Close() {
	f.Lock()
	defer f.Unlock()
	f.closed = true
}

func (f *fakePublisher) Topics() []string {
	f.Lock()
	defer f.Unlock()
	return append([]string{}, f.topics...)
}

func enabledOptions() []*providers.RawOption {
	return []*providers.RawOption{{Name: driver.OptionEnabled, Value: "true"}}
}

// Returns server with the example driver and a fake one.
func getServer(t *testing.T, mqttSettings *providers.MQTTSettings) (*HostServer, providers.ISettingsProvider) {
	settings := mocks.FakeNewSettings([]*providers.RawDriver{
		{Provider: "example", Domain: testDomain, Options: enabledOptions()},
		{Provider: "fake", Domain: fakeDomain, Options: enabledOptions()},
		{Provider: "missing", Domain: "Missing.Interface"},
	}, nil)

	d, err := example.NewProvider().Init(&driver.InitDataDriver{
		Logger: settings.SystemLogger(),
		Sink:   settings.FanOut(),
		Domain: testDomain,
	})
	require.NoError(t, err)

	fake := mocks.FakeNewDriver(fakeDomain, []*driver.Module{
		{Domain: fakeDomain, Address: "1", ModuleType: enums.ModSwitch},
	})

	fs := settings.(mocks.IFakeSettings)
	fs.AddDrivers(map[string]driver.IDriver{testDomain: d, fakeDomain: fake})
	fs.AddHostSettings(&providers.HostSettings{
		Port:            9999,
		PresenceSeconds: 30,
		PropertyMinutes: 60,
		AllowedOrigins:  []string{"http://localhost:3000"},
	})
	if nil != mqttSettings {
		fs.AddMQTTSettings(mqttSettings)
	}

	s, err := NewServer(settings)
	require.NoError(t, err)
	return s, settings
}

func doRequest(s *HostServer, method string, url string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	r := httptest.NewRecorder()
	s.Handler().ServeHTTP(r, req)
	return r
}

// Tests that only loadable drivers are registered.
func TestLoadDrivers(t *testing.T) {
	s, _ := getServer(t, nil)
	interfaces := s.state.GetInterfaces()
	require.Equal(t, 2, len(interfaces))
	assert.Equal(t, testDomain, interfaces[0].Domain)
	assert.Equal(t, "example", interfaces[0].Provider)
	assert.False(t, interfaces[0].Connected)

	s.start()
	defer s.Stop()

	interfaces = s.state.GetInterfaces()
	assert.True(t, interfaces[0].Connected)
	assert.True(t, interfaces[0].Enabled)
	assert.Equal(t, 3, interfaces[0].Modules)
	assert.True(t, interfaces[1].Connected)
}

// Tests duplicated domain.
func TestDuplicateDriver(t *testing.T) {
	settings := mocks.FakeNewSettings([]*providers.RawDriver{
		{Provider: "fake", Domain: fakeDomain},
		{Provider: "fake", Domain: fakeDomain},
	}, nil)
	fake := mocks.FakeNewDriver(fakeDomain, nil)
	settings.(mocks.IFakeSettings).AddDrivers(map[string]driver.IDriver{fakeDomain: fake})

	s, err := NewServer(settings)
	require.NoError(t, err)
	assert.Equal(t, 1, len(s.state.GetInterfaces()))
}

// Tests module commands over HTTP.
func TestCommandAPI(t *testing.T) {
	s, _ := getServer(t, nil)
	s.start()
	defer s.Stop()

	data := []struct {
		method   string
		url      string
		code     int
		response string
	}{
		{method: http.MethodGet, url: "/api/v1/Example.Interface/1/Control.On", code: http.StatusOK,
			response: "OK"},
		{method: http.MethodPost, url: "/api/v1/Example.Interface/2/Temperature.Get", code: http.StatusOK,
			response: "OK"},
		{method: http.MethodGet, url: "/api/v1/Example.Interface/3/Greet.Hello/World", code: http.StatusOK,
			response: "Hello World!"},
		{method: http.MethodGet, url: "/api/v1/Example.Interface/3/Greet.Hello/World/again", code: http.StatusOK,
			response: "Hello World!"},
		{method: http.MethodGet, url: "/api/v1/Example.Interface/1/Make.Coffee", code: http.StatusOK,
			response: "OK"},
		{method: http.MethodGet, url: "/api/v1/Example.Interface/99/Control.On", code: http.StatusBadRequest,
			response: "ERROR: invalid module address"},
	}

	for _, v := range data {
		r := doRequest(s, v.method, v.url, "")
		assert.Equal(t, v.code, r.Code, v.url)
		assert.NotEmpty(t, r.Header().Get(headerRequestID), v.url)

		resp := &driver.CommandResponse{}
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), resp), v.url)
		assert.Equal(t, v.response, resp.ResponseValue, v.url)
	}

	r := doRequest(s, http.MethodGet, "/api/v1/Unknown.Interface/1/Control.On", "")
	assert.Equal(t, http.StatusNotFound, r.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/Example.Interface/1/Control.On", nil)
	req.Header.Set(headerRequestID, "my-request")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "my-request", rec.Header().Get(headerRequestID))
}

// Tests options passed to the fake driver.
func TestCommandOptions(t *testing.T) {
	s, _ := getServer(t, nil)
	d, ok := s.state.GetInterface(fakeDomain)
	require.True(t, ok)

	r := doRequest(s, http.MethodPost, "/api/v1/Fake.Interface/1/Control.On/a/b", "")
	assert.Equal(t, http.StatusOK, r.Code)

	r = doRequest(s, http.MethodPost, "/api/v1/Fake.Interface/1/Control.Off", "")
	assert.Equal(t, http.StatusOK, r.Code)

	requests := d.(mocks.IFakeDriver).Received()
	require.Equal(t, 2, len(requests))
	assert.Equal(t, []string{"a", "b"}, requests[0].Options)
	assert.Equal(t, "Control.On", requests[0].Command)
	assert.Equal(t, "1", requests[0].Address)
	assert.Empty(t, requests[1].Options)
}

// Tests module listing with cached properties.
func TestModulesAPI(t *testing.T) {
	s, _ := getServer(t, nil)
	s.start()
	defer s.Stop()

	r := doRequest(s, http.MethodGet, "/api/v1/Example.Interface/1/Control.On", "")
	require.Equal(t, http.StatusOK, r.Code)

	assert.Eventually(t, func() bool {
		m, err := s.state.GetModule(testDomain, "1")
		return err == nil && 1 == len(m.Properties)
	}, 2*time.Second, 10*time.Millisecond)

	r = doRequest(s, http.MethodGet, "/api/v1/interfaces/Example.Interface/modules/1", "")
	require.Equal(t, http.StatusOK, r.Code)

	module := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(r.Body.Bytes(), &module))
	assert.Equal(t, "1", module["address"])
	assert.Equal(t, "light", module["type"])
	props := module["properties"].(map[string]interface{})
	assert.Equal(t, float64(1), props["Status.Level"].(map[string]interface{})["value"])

	r = doRequest(s, http.MethodGet, "/api/v1/interfaces/Example.Interface/modules", "")
	require.Equal(t, http.StatusOK, r.Code)
	modules := make([]map[string]interface{}, 0)
	require.NoError(t, json.Unmarshal(r.Body.Bytes(), &modules))
	assert.Equal(t, 3, len(modules))

	r = doRequest(s, http.MethodGet, "/api/v1/interfaces/Example.Interface/modules/99", "")
	assert.Equal(t, http.StatusNotFound, r.Code)
	r = doRequest(s, http.MethodGet, "/api/v1/interfaces/Unknown.Interface/modules", "")
	assert.Equal(t, http.StatusNotFound, r.Code)

	r = doRequest(s, http.MethodGet, "/api/v1/interfaces", "")
	require.Equal(t, http.StatusOK, r.Code)
	interfaces := make([]*knownInterface, 0)
	require.NoError(t, json.Unmarshal(r.Body.Bytes(), &interfaces))
	assert.Equal(t, 2, len(interfaces))

	r = doRequest(s, http.MethodGet, "/pub/ping", "")
	assert.Equal(t, http.StatusOK, r.Code)
}

// Tests set option API.
func TestSetOptionAPI(t *testing.T) {
	s, _ := getServer(t, nil)
	s.start()
	defer s.Stop()

	d, _ := s.state.GetInterface(testDomain)
	require.True(t, d.IsConnected())

	r := doRequest(s, http.MethodPost, "/api/v1/interfaces/Example.Interface/option",
		`{"name": "Enabled", "value": "false"}`)
	assert.Equal(t, http.StatusOK, r.Code)
	assert.False(t, d.IsConnected())

	r = doRequest(s, http.MethodGet, "/api/v1/Example.Interface/1/Control.On", "")
	assert.Equal(t, http.StatusBadRequest, r.Code)
	assert.Contains(t, r.Body.String(), "ERROR: interface not connected")

	r = doRequest(s, http.MethodPost, "/api/v1/interfaces/Example.Interface/option", `{"value": "1"}`)
	assert.Equal(t, http.StatusBadRequest, r.Code)

	r = doRequest(s, http.MethodPost, "/api/v1/interfaces/Example.Interface/option", `not json`)
	assert.Equal(t, http.StatusBadRequest, r.Code)

	r = doRequest(s, http.MethodPost, "/api/v1/interfaces/Example.Interface/option",
		`{"name": "Enabled", "value": "maybe"}`)
	assert.Equal(t, http.StatusInternalServerError, r.Code)

	r = doRequest(s, http.MethodPost, "/api/v1/interfaces/Unknown.Interface/option", `{"name": "A"}`)
	assert.Equal(t, http.StatusNotFound, r.Code)
}

// Tests CORS headers.
func TestCORS(t *testing.T) {
	s, _ := getServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/interfaces", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r := httptest.NewRecorder()
	s.Handler().ServeHTTP(r, req)

	assert.Equal(t, "http://localhost:3000", r.Header().Get("Access-Control-Allow-Origin"))
}

// Tests presence monitor.
func TestPresenceMonitor(t *testing.T) {
	s, settings := getServer(t, nil)
	s.start()
	defer s.Stop()

	cron := settings.Cron().(mocks.IFakeCron)
	assert.Equal(t, []string{"@every 30s"}, cron.Specs())

	d, _ := s.state.GetInterface(fakeDomain)
	fake := d.(mocks.IFakeDriver)

	fake.SetPresent(false)
	cron.RunAll()
	assert.False(t, d.IsConnected())
	assert.False(t, s.state.GetInterfaces()[1].Present)

	fake.SetPresent(true)
	cron.RunAll()
	assert.True(t, d.IsConnected())
	assert.True(t, s.state.GetInterfaces()[1].Present)
}

// Tests MQTT bridge wiring.
func TestMQTTBridge(t *testing.T) {
	s, _ := getServer(t, &providers.MQTTSettings{
		Broker:      "tcp://localhost:1883",
		TopicPrefix: "home",
		Filter:      "*",
	})

	pub := &fakePublisher{}
	s.NewPublisher = func(*providers.MQTTSettings, common.ILoggerProvider) (mqtt.IPublisher, error) {
		return pub, nil
	}

	s.start()
	doRequest(s, http.MethodGet, "/api/v1/Example.Interface/2/Temperature.Get", "")

	assert.Eventually(t, func() bool { return 1 == len(pub.Topics()) }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "home/Example.Interface/2/Sensor.Temperature", pub.Topics()[0])

	s.Stop()
	assert.True(t, pub.closed)
}

// Tests failed MQTT connection.
func TestMQTTBridgeError(t *testing.T) {
	s, _ := getServer(t, &providers.MQTTSettings{Broker: "tcp://localhost:1883", Filter: "*"})
	s.NewPublisher = func(*providers.MQTTSettings, common.ILoggerProvider) (mqtt.IPublisher, error) {
		return nil, errors.New("refused")
	}

	s.start()
	assert.Nil(t, s.bridge)
	s.Stop()
}

// Tests that stop disposes drivers.
func TestStop(t *testing.T) {
	s, _ := getServer(t, nil)
	s.start()

	d, _ := s.state.GetInterface(testDomain)
	s.Stop()
	s.Stop()

	assert.Empty(t, s.state.GetInterfaces())
	assert.Error(t, d.Connect())
}

// Tests recovery from handler panic.
func TestRecovery(t *testing.T) {
	s, _ := getServer(t, nil)
	s.state = nil

	var r *httptest.ResponseRecorder
	assert.NotPanics(t, func() {
		r = doRequest(s, http.MethodGet, "/api/v1/interfaces", "")
	})
	assert.Equal(t, http.StatusInternalServerError, r.Code)
}
