package logger

import (
	"io"
	"time"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/sirupsen/logrus"
)

// ConstructLogger has data required for a new console logger.
type ConstructLogger struct {
	Level  string
	NodeID string
	Output io.Writer
}

// Default console logger.
type consoleLogger struct {
	logger *logrus.Logger
	nodeID string
}

// NewConsoleLogger constructs a new console logger.
func NewConsoleLogger(ctor *ConstructLogger) common.ILoggerProvider {
	l := logrus.New()
	l.SetLevel(getLogLevel(ctor.Level))
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.StampMilli,
	})

	if nil != ctor.Output {
		l.SetOutput(ctor.Output)
	}

	return &consoleLogger{
		logger: l,
		nodeID: ctor.NodeID,
	}
}

// Debug prints debug level message.
func (p *consoleLogger) Debug(msg string, fields ...string) {
	p.entry(fields...).Debug(msg)
}

// Info prints info level message.
func (p *consoleLogger) Info(msg string, fields ...string) {
	p.entry(fields...).Info(msg)
}

// Warn prints warning level message.
func (p *consoleLogger) Warn(msg string, fields ...string) {
	p.entry(fields...).Warn(msg)
}

// Error prints error level message.
func (p *consoleLogger) Error(msg string, err error, fields ...string) {
	p.entry(appendError(fields, err)...).Error(msg)
}

// Fatal prints fatal level message and exits.
func (p *consoleLogger) Fatal(msg string, err error, fields ...string) {
	p.entry(appendError(fields, err)...).Fatal(msg)
}

// Extending logger fields with current node ID.
func (p *consoleLogger) entry(fields ...string) *logrus.Entry {
	f := withFields(fields...)
	if "" != p.nodeID {
		f[common.LogNodeToken] = p.nodeID
	}

	return p.logger.WithFields(f)
}

func appendError(fields []string, err error) []string {
	if nil == err {
		return fields
	}

	return append(fields, common.LogErrorToken, err.Error())
}
