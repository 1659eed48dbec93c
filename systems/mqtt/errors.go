package mqtt

import "fmt"

// ErrConnectionTimeout defines broker which didn't answer in time.
type ErrConnectionTimeout struct {
	Broker string
}

// Error formats output.
func (e *ErrConnectionTimeout) Error() string {
	return fmt.Sprintf("connection to %s timed out", e.Broker)
}

// ErrPublishTimeout defines message which wasn't acknowledged in time.
type ErrPublishTimeout struct {
	Topic string
}

// Error formats output.
func (e *ErrPublishTimeout) Error() string {
	return fmt.Sprintf("publish to %s timed out", e.Topic)
}
