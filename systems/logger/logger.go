// Package logger provides logrus-backed implementation of the host logger.
package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Settings has data of the `system: logger` config section.
type Settings struct {
	Level string `yaml:"level" default:"info"`
}

// Converts config value into logrus level.
// Unknown values fall back to info.
func getLogLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "dbg":
		return logrus.DebugLevel
	case "warning", "warn":
		return logrus.WarnLevel
	case "error", "err":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Helper method to add generic fields to the output.
func withFields(fields ...string) logrus.Fields {
	fLen := len(fields)
	result := make(logrus.Fields, int(fLen/2))
	for ii := 0; ii < fLen; ii += 2 {
		if ii+1 >= fLen {
			break
		}

		result[fields[ii]] = fields[ii+1]
	}

	return result
}
