package driver

import (
	"sort"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/plugins/driver/enums"
	"github.com/go-home-io/driverhost/utils"
)

const (
	// ProblemInvalidAddress is returned when module is not found.
	ProblemInvalidAddress = "invalid module address"
	// ProblemUnsupportedCommand is returned when command has no handler.
	ProblemUnsupportedCommand = "command not supported"
	// ProblemDisposed is returned when driver was disposed.
	ProblemDisposed = "interface disposed"
	// ProblemNotConnected is returned when driver is offline.
	ProblemNotConnected = "interface not connected"
)

// CommandHandler executes single command.
// Returning nil means default success response.
type CommandHandler func(ctx *CommandContext) *driver.CommandResponse

// TemperatureReader reads current temperature of the module.
type TemperatureReader func(module *driver.Module) (float64, error)

// CommandContext has data of a command being dispatched.
type CommandContext struct {
	Domain      string
	Module      *driver.Module
	Command     enums.Command
	Options     []string
	Description string

	sink   driver.INotificationSink
	logger common.ILoggerProvider
}

// Option returns positional option.
// Absent option is substituted with an empty string, handlers must treat it as "not provided".
func (c *CommandContext) Option(index int) string {
	if index < 0 || index >= len(c.Options) {
		return ""
	}

	return c.Options[index]
}

// Emit pushes property change of the current module to the notification sink.
func (c *CommandContext) Emit(propertyPath string, value interface{}) {
	c.logger.Debug("Emitting property change", common.LogDomainToken, c.Domain,
		common.LogModuleToken, c.Module.Address, common.LogPropertyToken, propertyPath)

	c.sink.PropertyChanged(&driver.PropertyChangedEvent{
		Domain:       c.Domain,
		Source:       c.Module.Address,
		Description:  c.Description,
		PropertyPath: propertyPath,
		Value:        value,
		Timestamp:    utils.TimeNowMillis(),
	})
}

// ConstructDispatcher has data required for a new dispatcher.
type ConstructDispatcher struct {
	Description string
	Logger      common.ILoggerProvider
	Sink        driver.INotificationSink
	Handlers    map[enums.Command]CommandHandler
}

// CommandDispatcher executes parsed commands against modules.
type CommandDispatcher struct {
	description string
	logger      common.ILoggerProvider
	sink        driver.INotificationSink
	handlers    map[enums.Command]CommandHandler
}

// NewCommandDispatcher constructs a new dispatcher.
// CmdNotSet is always a no-op and can't be overridden.
func NewCommandDispatcher(ctor *ConstructDispatcher) *CommandDispatcher {
	d := &CommandDispatcher{
		description: ctor.Description,
		logger:      ctor.Logger,
		sink:        ctor.Sink,
		handlers:    make(map[enums.Command]CommandHandler, len(ctor.Handlers)),
	}

	if nil == d.sink {
		d.sink = &nopSink{}
	}

	for k, v := range ctor.Handlers {
		if k == enums.CmdNotSet || nil == v {
			continue
		}
		d.handlers[k] = v
	}

	return d
}

// Commands returns commands with registered handlers.
func (d *CommandDispatcher) Commands() []enums.Command {
	result := make([]enums.Command, 0, len(d.handlers))
	for k := range d.handlers {
		result = append(result, k)
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Dispatch executes command against resolved module.
func (d *CommandDispatcher) Dispatch(domain string, module *driver.Module,
	command enums.Command, options []string) *driver.CommandResponse {
	if command == enums.CmdNotSet {
		return driver.NewResponseOK()
	}

	handler, ok := d.handlers[command]
	if !ok {
		d.logger.Error("Command not recognised", &ErrUnhandledCommand{Command: command},
			common.LogDomainToken, domain, common.LogModuleToken, module.Address,
			common.LogCommandToken, command.Name())
		return driver.NewResponseError(ProblemUnsupportedCommand)
	}

	d.logger.Debug("Invoking module command", common.LogDomainToken, domain,
		common.LogModuleToken, module.Address, common.LogCommandToken, command.String())

	ctx := &CommandContext{
		Domain:      domain,
		Module:      module,
		Command:     command,
		Options:     options,
		Description: d.description,
		sink:        d.sink,
		logger:      d.logger,
	}

	response := handler(ctx)
	if nil == response {
		response = driver.NewResponseOK()
	}

	return response
}

// DefaultHandlers returns handlers for the common commands.
// Temperature is served only if reader is supplied.
func DefaultHandlers(reader TemperatureReader) map[enums.Command]CommandHandler {
	h := map[enums.Command]CommandHandler{
		enums.CmdControlOn:  levelHandler(1),
		enums.CmdControlOff: levelHandler(0),
	}

	if nil != reader {
		h[enums.CmdTemperatureGet] = temperatureHandler(reader)
	}

	return h
}

// Emits output level.
func levelHandler(level int) CommandHandler {
	return func(ctx *CommandContext) *driver.CommandResponse {
		ctx.Emit(enums.PropStatusLevel, level)
		return nil
	}
}

// Reads and emits temperature.
func temperatureHandler(reader TemperatureReader) CommandHandler {
	return func(ctx *CommandContext) *driver.CommandResponse {
		val, err := reader(ctx.Module)
		if err != nil {
			ctx.logger.Error("Failed to read temperature", err, common.LogDomainToken, ctx.Domain,
				common.LogModuleToken, ctx.Module.Address)
			return driver.NewResponseError("temperature read failed")
		}

		ctx.Emit(enums.PropSensorTemperature, val)
		return nil
	}
}

// Sink used when host didn't supply one.
type nopSink struct {
}

func (*nopSink) ModulesChanged(*driver.ModulesChangedEvent) {
}

func (*nopSink) PropertyChanged(*driver.PropertyChangedEvent) {
}
