//+build !release

// Package mocks contains fake providers used by tests.
package mocks

import (
	"sync"
)

// Fake logger.
type fakeLogger struct {
	sync.Mutex
	callback func(string)
	errors   []error
}

// Debug prints debug level message.
func (p *fakeLogger) Debug(msg string, fields ...string) {
	p.invoke(msg)
}

// Info prints info level message.
func (p *fakeLogger) Info(msg string, fields ...string) {
	p.invoke(msg)
}

// Warn prints warning level message.
func (p *fakeLogger) Warn(msg string, fields ...string) {
	p.invoke(msg)
}

// Error prints error level message.
func (p *fakeLogger) Error(msg string, err error, fields ...string) {
	p.Lock()
	p.errors = append(p.errors, err)
	p.Unlock()
	p.invoke(msg)
}

// Fatal prints fatal level message.
// Fake doesn't exit.
func (p *fakeLogger) Fatal(msg string, err error, fields ...string) {
	p.Error(msg, err, fields...)
}

// Errors returns all logged errors.
func (p *fakeLogger) Errors() []error {
	p.Lock()
	defer p.Unlock()

	result := make([]error, len(p.errors))
	copy(result, p.errors)
	return result
}

func (p *fakeLogger) invoke(msg string) {
	if p.callback != nil {
		p.callback(msg)
	}
}

// FakeNewLogger creates a fake logger provider.
func FakeNewLogger(callback func(string)) *fakeLogger {
	return &fakeLogger{
		callback: callback,
	}
}
