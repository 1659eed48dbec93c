// Package common contains shared data available for all drivers.
package common

// ILoggerProvider defines logger provider which will be passed to every driver.
// Fields are passed as flat key/value pairs.
type ILoggerProvider interface {
	Debug(msg string, fields ...string)
	Info(msg string, fields ...string)
	Warn(msg string, fields ...string)
	Error(msg string, err error, fields ...string)
	Fatal(msg string, err error, fields ...string)
}

// IPluginLoggerProvider defines additional method for adding extra fields.
type IPluginLoggerProvider interface {
	ILoggerProvider
	AddFields(map[string]string)
}

// ISettings describes interface used by every driver's settings object.
// After unmarshalling driver settings, loader will invoke internal validation and then call this method.
type ISettings interface {
	Validate() error
}
