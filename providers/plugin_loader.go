package providers

import (
	"github.com/go-home-io/driverhost/plugins/driver"
)

// IDriverLoaderProvider defines driver loader provider logic.
type IDriverLoaderProvider interface {
	LoadDriver(*DriverLoadRequest) (driver.IDriver, error)
	Providers() []string
}

// DriverLoadRequest has data required for loading a new driver.
type DriverLoadRequest struct {
	Provider  string
	RawConfig []byte
	InitData  *driver.InitDataDriver
}
