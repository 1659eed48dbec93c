package driver

import (
	"github.com/go-home-io/driverhost/plugins/driver/enums"
)

// CommandParser converts raw command names into known commands.
type CommandParser struct {
	known map[string]enums.Command
}

// NewCommandParser constructs a parser which recognizes only supplied commands.
func NewCommandParser(commands []enums.Command) *CommandParser {
	p := &CommandParser{
		known: make(map[string]enums.Command, len(commands)+1),
	}

	p.known[enums.CmdNotSet.Name()] = enums.CmdNotSet
	for _, v := range commands {
		if !v.IsACommand() {
			continue
		}
		p.known[v.Name()] = v
	}

	return p
}

// Parse returns command for the dotted name.
// Unknown names are never an error and resolve to CmdNotSet.
func (p *CommandParser) Parse(commandName string) enums.Command {
	c, ok := p.known[enums.NormalizeCommandName(commandName)]
	if !ok {
		return enums.CmdNotSet
	}

	return c
}
