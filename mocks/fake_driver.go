//+build !release

package mocks

import (
	"errors"
	"sync"

	"github.com/go-home-io/driverhost/plugins/driver"
)

// IFakeDriver exposes fake driver internals.
type IFakeDriver interface {
	Received() []*driver.CommandRequest
	SetPresent(bool)
}

// Fake driver, records received requests and options.
type fakeDriver struct {
	sync.Mutex

	domain    string
	modules   []*driver.Module
	connected bool
	enabled   bool
	disposed  bool
	present   bool
	options   map[string]*driver.Option

	Requests []*driver.CommandRequest
	Response *driver.CommandResponse
}

func (f *fakeDriver) GetDomain() string {
	return f.domain
}

func (f *fakeDriver) Connect() error {
	f.Lock()
	defer f.Unlock()
	if f.disposed {
		return errors.New("disposed")
	}

	f.connected = true
	return nil
}

func (f *fakeDriver) Disconnect() error {
	f.Lock()
	defer f.Unlock()
	f.connected = false
	return nil
}

func (f *fakeDriver) Dispose() error {
	f.Lock()
	defer f.Unlock()
	if f.disposed {
		return errors.New("disposed")
	}

	f.connected = false
	f.disposed = true
	return nil
}

func (f *fakeDriver) IsConnected() bool {
	f.Lock()
	defer f.Unlock()
	return f.connected
}

func (f *fakeDriver) IsEnabled() bool {
	f.Lock()
	defer f.Unlock()
	return f.enabled
}

func (f *fakeDriver) IsDevicePresent() bool {
	f.Lock()
	defer f.Unlock()
	return f.present
}

func (f *fakeDriver) SetOption(o *driver.Option) error {
	f.Lock()
	f.options[o.Name] = o
	if o.Name == driver.OptionEnabled {
		f.enabled = o.Value == "true"
	}
	enabled := f.enabled
	f.Unlock()

	if enabled {
		return f.Connect()
	}
	return nil
}

func (f *fakeDriver) GetOption(name string) (*driver.Option, bool) {
	f.Lock()
	defer f.Unlock()
	o, ok := f.options[name]
	return o, ok
}

func (f *fakeDriver) GetModules() []*driver.Module {
	return f.modules
}

func (f *fakeDriver) InterfaceControl(r *driver.CommandRequest) *driver.CommandResponse {
	f.Lock()
	defer f.Unlock()

	f.Requests = append(f.Requests, r)
	if nil != f.Response {
		return f.Response
	}

	return driver.NewResponseOK()
}

// Received returns copy of all received requests.
func (f *fakeDriver) Received() []*driver.CommandRequest {
	f.Lock()
	defer f.Unlock()
	return append([]*driver.CommandRequest{}, f.Requests...)
}

// SetPresent changes presence probe result.
func (f *fakeDriver) SetPresent(present bool) {
	f.Lock()
	defer f.Unlock()
	f.present = present
}

// FakeNewDriver creates a new fake driver.
func FakeNewDriver(domain string, modules []*driver.Module) *fakeDriver {
	return &fakeDriver{
		domain:   domain,
		modules:  modules,
		present:  true,
		options:  make(map[string]*driver.Option),
		Requests: make([]*driver.CommandRequest, 0),
	}
}
