package utils

import "fmt"

// ErrUnknownProvider defines driver provider which is not registered.
type ErrUnknownProvider struct {
	Provider string
}

// Error formats output.
func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("driver provider %s is unknown", e.Provider)
}

// ErrInvalidConfig defines wrong configuration error.
type ErrInvalidConfig struct {
}

// Error formats output.
func (*ErrInvalidConfig) Error() string {
	return "config validation error"
}

// ErrNoDriver defines provider which didn't return a driver.
type ErrNoDriver struct {
}

// Error formats output.
func (*ErrNoDriver) Error() string {
	return "provider didn't return a driver"
}
