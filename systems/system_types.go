// Package systems contains host system definitions.
package systems

import (
	"fmt"
	"strings"
)

// SystemType is an enum describing known config sections.
type SystemType int

const (
	// SysHost describes host node settings.
	SysHost SystemType = iota
	// SysLogger describes logger settings.
	SysLogger
	// SysMQTT describes MQTT event bridge settings.
	SysMQTT
	// SysDriver describes device-interface driver.
	SysDriver
)

var systemTypeNames = map[SystemType]string{
	SysHost:   "host",
	SysLogger: "logger",
	SysMQTT:   "mqtt",
	SysDriver: "driver",
}

// SystemTypeString returns system type from its name.
// Matching is case-insensitive.
func SystemTypeString(s string) (SystemType, error) {
	s = strings.ToLower(s)
	for k, v := range systemTypeNames {
		if v == s {
			return k, nil
		}
	}

	return SysHost, fmt.Errorf("%s does not belong to SystemType values", s)
}

// String returns system type name.
func (i SystemType) String() string {
	name, ok := systemTypeNames[i]
	if !ok {
		return fmt.Sprintf("SystemType(%d)", i)
	}

	return name
}
