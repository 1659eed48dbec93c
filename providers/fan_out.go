package providers

import "github.com/go-home-io/driverhost/plugins/driver"

// IInternalFanOutProvider defines internal interface for the fan-out channels.
// It's the notification sink passed to every driver.
type IInternalFanOutProvider interface {
	driver.INotificationSink

	SubscribePropertyChanges() (int64, chan *driver.PropertyChangedEvent)
	UnSubscribePropertyChanges(int64)
	SubscribeModulesChanges() (int64, chan *driver.ModulesChangedEvent)
	UnSubscribeModulesChanges(int64)
	Close()
}
