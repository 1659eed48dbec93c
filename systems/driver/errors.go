package driver

import (
	"fmt"

	"github.com/go-home-io/driverhost/plugins/driver/enums"
)

// ErrDriverDisposed defines an operation invoked on a disposed driver.
type ErrDriverDisposed struct {
	Domain    string
	Operation string
}

// Error formats output.
func (e *ErrDriverDisposed) Error() string {
	return fmt.Sprintf("driver %s is disposed, %s is not allowed", e.Domain, e.Operation)
}

// ErrDuplicateAddress defines non-unique module address.
type ErrDuplicateAddress struct {
	Address string
}

// Error formats output.
func (e *ErrDuplicateAddress) Error() string {
	return fmt.Sprintf("module address %s is not unique", e.Address)
}

// ErrEmptyAddress defines module without an address.
type ErrEmptyAddress struct {
}

// Error formats output.
func (*ErrEmptyAddress) Error() string {
	return "module address is empty"
}

// ErrDomainMismatch defines module which doesn't belong to the driver domain.
type ErrDomainMismatch struct {
	Expected string
	Actual   string
}

// Error formats output.
func (e *ErrDomainMismatch) Error() string {
	return fmt.Sprintf("module domain %s doesn't match driver domain %s", e.Actual, e.Expected)
}

// ErrEmptyDomain defines driver constructed without a domain.
type ErrEmptyDomain struct {
}

// Error formats output.
func (*ErrEmptyDomain) Error() string {
	return "driver domain is empty"
}

// ErrNoDiscovery defines driver constructed without module discovery.
type ErrNoDiscovery struct {
}

// Error formats output.
func (*ErrNoDiscovery) Error() string {
	return "module discovery is not defined"
}

// ErrUnhandledCommand defines parsed command without a handler.
type ErrUnhandledCommand struct {
	Command enums.Command
}

// Error formats output.
func (e *ErrUnhandledCommand) Error() string {
	return fmt.Sprintf("command %s has no handler", e.Command.Name())
}

// ErrInvalidOption defines malformed driver option.
type ErrInvalidOption struct {
	Name string
}

// Error formats output.
func (e *ErrInvalidOption) Error() string {
	if "" == e.Name {
		return "option name is empty"
	}

	return fmt.Sprintf("option %s has invalid value", e.Name)
}
