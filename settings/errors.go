package settings

import "fmt"

// ErrNoConfig defines missing configuration.
type ErrNoConfig struct {
	Location string
}

// Error formats output.
func (e *ErrNoConfig) Error() string {
	return fmt.Sprintf("no config files found at %s", e.Location)
}

// ErrInvalidSection defines config section which failed validation.
type ErrInvalidSection struct {
	System string
}

// Error formats output.
func (e *ErrInvalidSection) Error() string {
	return fmt.Sprintf("%s settings are invalid", e.System)
}
