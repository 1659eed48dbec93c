//+build !release

package mocks

import (
	"errors"
	"sort"

	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/providers"
)

type fakeDriverLoader struct {
	drivers map[string]driver.IDriver
}

// LoadDriver returns driver registered for the requested domain.
func (f *fakeDriverLoader) LoadDriver(r *providers.DriverLoadRequest) (driver.IDriver, error) {
	d, ok := f.drivers[r.InitData.Domain]
	if !ok {
		return nil, errors.New("not found")
	}

	return d, nil
}

func (f *fakeDriverLoader) Providers() []string {
	result := make([]string, 0, len(f.drivers))
	for k := range f.drivers {
		result = append(result, k)
	}

	sort.Strings(result)
	return result
}

// FakeNewDriverLoader creates a fake loader returning drivers by domain.
func FakeNewDriverLoader(drivers map[string]driver.IDriver) providers.IDriverLoaderProvider {
	return &fakeDriverLoader{
		drivers: drivers,
	}
}
