package example

import "fmt"

// ErrDuplicateModule defines module address listed twice in config.
type ErrDuplicateModule struct {
	Address string
}

// Error formats output.
func (e *ErrDuplicateModule) Error() string {
	return fmt.Sprintf("module %s is defined more than once", e.Address)
}
