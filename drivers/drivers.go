// Package drivers lists device-interface drivers compiled into the host.
package drivers

import (
	"github.com/go-home-io/driverhost/drivers/example"
	"github.com/go-home-io/driverhost/plugins/driver"
)

// Providers returns factories of every known driver, keyed by provider name.
func Providers() map[string]driver.ProviderFactory {
	return map[string]driver.ProviderFactory{
		"example": example.NewProvider,
	}
}
