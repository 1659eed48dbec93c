// Package enums contains various enumerations and rules for device-interface drivers.
package enums

import (
	"fmt"
	"strings"
)

const (
	// CommandSeparator separates command parts in the inbound command name, e.g. "Control.On".
	CommandSeparator = "."
	// CommandWordJoiner joins command parts in the internal command name, e.g. "Control_On".
	CommandWordJoiner = "_"
)

// Command describes enum with known module commands.
type Command int

const (
	// CmdNotSet describes absent or unparseable command.
	CmdNotSet Command = iota
	// CmdControlOn describes turning on command.
	CmdControlOn
	// CmdControlOff describes turning off command.
	CmdControlOff
	// CmdTemperatureGet describes temperature read command.
	CmdTemperatureGet
	// CmdGreetHello describes greeting command.
	CmdGreetHello
)

// Internal command names.
var commandNames = map[Command]string{
	CmdNotSet:         "NotSet",
	CmdControlOn:      "Control_On",
	CmdControlOff:     "Control_Off",
	CmdTemperatureGet: "Temperature_Get",
	CmdGreetHello:     "Greet_Hello",
}

var commandValues = []Command{CmdNotSet, CmdControlOn, CmdControlOff, CmdTemperatureGet, CmdGreetHello}

// Reverse lookup, internal name -> command.
var commandByName = func() map[string]Command {
	m := make(map[string]Command, len(commandNames))
	for k, v := range commandNames {
		m[v] = k
	}
	return m
}()

// CommandValues returns all known commands.
func CommandValues() []Command {
	result := make([]Command, len(commandValues))
	copy(result, commandValues)
	return result
}

// NormalizeCommandName converts inbound dotted command name into the internal one.
func NormalizeCommandName(name string) string {
	return strings.Replace(name, CommandSeparator, CommandWordJoiner, -1)
}

// CommandString returns command from its dotted or internal name.
// Matching is exact and case-sensitive.
func CommandString(s string) (Command, error) {
	if c, ok := commandByName[NormalizeCommandName(s)]; ok {
		return c, nil
	}

	return CmdNotSet, fmt.Errorf("%s does not belong to Command values", s)
}

// String returns canonical dotted command name.
func (i Command) String() string {
	name, ok := commandNames[i]
	if !ok {
		return fmt.Sprintf("Command(%d)", i)
	}

	return strings.Replace(name, CommandWordJoiner, CommandSeparator, -1)
}

// Name returns internal command name.
func (i Command) Name() string {
	name, ok := commandNames[i]
	if !ok {
		return fmt.Sprintf("Command(%d)", i)
	}

	return name
}

// IsACommand checks whether value belongs to known commands.
func (i Command) IsACommand() bool {
	_, ok := commandNames[i]
	return ok
}

// MarshalText implements the encoding.TextMarshaler interface.
func (i Command) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (i *Command) UnmarshalText(text []byte) error {
	var err error
	*i, err = CommandString(string(text))
	return err
}

// SliceContainsCommand checks whether slice contains certain command.
func SliceContainsCommand(s []Command, e Command) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}
