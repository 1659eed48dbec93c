package server

import "fmt"

// ErrUnknownInterface defines unknown driver domain error.
type ErrUnknownInterface struct {
	Domain string
}

// Error formats output.
func (e *ErrUnknownInterface) Error() string {
	return fmt.Sprintf("interface %s is unknown", e.Domain)
}

// ErrUnknownModule defines unknown module error.
type ErrUnknownModule struct {
	Domain  string
	Address string
}

// Error formats output.
func (e *ErrUnknownModule) Error() string {
	return fmt.Sprintf("module %s of %s is unknown", e.Address, e.Domain)
}

// ErrDuplicateInterface defines driver domain loaded twice.
type ErrDuplicateInterface struct {
	Domain string
}

// Error formats output.
func (e *ErrDuplicateInterface) Error() string {
	return fmt.Sprintf("interface %s is already loaded", e.Domain)
}

// ErrBadRequest defines generic server error.
type ErrBadRequest struct {
}

// Error formats output.
func (e *ErrBadRequest) Error() string {
	return "bad request"
}
