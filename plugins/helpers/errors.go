package helpers

import "fmt"

// ErrArgumentsMismatch defines incorrect number of arguments.
type ErrArgumentsMismatch struct {
	Function string
	Count    int
}

// Error formats output.
func (e *ErrArgumentsMismatch) Error() string {
	return fmt.Sprintf("%s: arguments count mismatch, received: %d", e.Function, e.Count)
}

// ErrWrongArgument defines wrong argument.
type ErrWrongArgument struct {
	Function string
	Message  string
}

// Error formats output.
func (e *ErrWrongArgument) Error() string {
	return fmt.Sprintf("%s: %s", e.Function, e.Message)
}
