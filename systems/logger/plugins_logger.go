package logger

import (
	"sort"
	"sync"

	"github.com/go-home-io/driverhost/plugins/common"
)

// Plugin logger implementation.
type pluginLogger struct {
	sync.RWMutex
	systemLogger common.ILoggerProvider
	pluginFields []string
}

// ConstructPluginLogger has data required for a new plugin logger.
type ConstructPluginLogger struct {
	SystemLogger common.ILoggerProvider
	Provider     string
	Domain       string
}

// NewPluginLogger constructs a new plugin logger.
// This is another level of abstraction which adds driver provider
// and domain to the actual logger.
// This logger should be passed to actual driver.
func NewPluginLogger(ctor *ConstructPluginLogger) common.IPluginLoggerProvider {
	return &pluginLogger{
		systemLogger: ctor.SystemLogger,
		pluginFields: []string{common.LogDriverToken, ctor.Provider, common.LogDomainToken, ctor.Domain},
	}
}

// AddFields adds permanent fields to every message.
func (l *pluginLogger) AddFields(fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	l.Lock()
	defer l.Unlock()
	for _, k := range keys {
		l.pluginFields = append(l.pluginFields, k, fields[k])
	}
}

// Debug sends debug level message.
func (l *pluginLogger) Debug(msg string, fields ...string) {
	l.systemLogger.Debug(msg, l.fields(fields)...)
}

// Info sends info level message.
func (l *pluginLogger) Info(msg string, fields ...string) {
	l.systemLogger.Info(msg, l.fields(fields)...)
}

// Warn sends warning level message.
func (l *pluginLogger) Warn(msg string, fields ...string) {
	l.systemLogger.Warn(msg, l.fields(fields)...)
}

// Error sends error level message.
func (l *pluginLogger) Error(msg string, err error, fields ...string) {
	l.systemLogger.Error(msg, err, l.fields(fields)...)
}

// Fatal sends fatal level message and exits.
func (l *pluginLogger) Fatal(msg string, err error, fields ...string) {
	l.systemLogger.Fatal(msg, err, l.fields(fields)...)
}

// Plugin fields go last, so they win on key collision.
func (l *pluginLogger) fields(fields []string) []string {
	l.RLock()
	defer l.RUnlock()

	result := make([]string, 0, len(fields)+len(l.pluginFields))
	result = append(result, fields...)
	return append(result, l.pluginFields...)
}
