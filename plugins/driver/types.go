package driver

import (
	"strings"

	"github.com/go-home-io/driverhost/plugins/driver/enums"
)

const (
	// ResponseOK is the default success payload.
	ResponseOK = "OK"
	// ResponseErrorPrefix is prepended to every error payload.
	ResponseErrorPrefix = "ERROR: "
)

// Module describes an addressable device exposed by a driver.
type Module struct {
	Domain     string           `json:"domain" yaml:"domain"`
	Address    string           `json:"address" yaml:"address"`
	ModuleType enums.ModuleType `json:"type" yaml:"type"`
}

// CommandRequest has data describing a single inbound command.
type CommandRequest struct {
	Domain  string   `json:"domain"`
	Address string   `json:"address"`
	Command string   `json:"command"`
	Options []string `json:"options"`
}

// GetOption returns positional option.
// Absent option is substituted with an empty string.
func (r *CommandRequest) GetOption(index int) string {
	if nil == r || index < 0 || index >= len(r.Options) {
		return ""
	}

	return r.Options[index]
}

// OptionsString returns all options joined with "/".
func (r *CommandRequest) OptionsString() string {
	if nil == r {
		return ""
	}

	return strings.Join(r.Options, "/")
}

// CommandResponse contains result of a single command.
type CommandResponse struct {
	ResponseValue string `json:"ResponseValue"`
	IsError       bool   `json:"-"`
}

// NewResponseText constructs a success response.
func NewResponseText(text string) *CommandResponse {
	return &CommandResponse{
		ResponseValue: text,
	}
}

// NewResponseOK constructs the default success response.
func NewResponseOK() *CommandResponse {
	return NewResponseText(ResponseOK)
}

// NewResponseError constructs an error response.
func NewResponseError(problem string) *CommandResponse {
	return &CommandResponse{
		ResponseValue: ResponseErrorPrefix + problem,
		IsError:       true,
	}
}

// PropertyChangedEvent describes observable state transition of a module.
type PropertyChangedEvent struct {
	Domain       string      `json:"domain"`
	Source       string      `json:"source"`
	Description  string      `json:"description"`
	PropertyPath string      `json:"property"`
	Value        interface{} `json:"value"`
	Timestamp    int64       `json:"timestamp"`
}

// ModulesChangedEvent signals that module set of the domain was re-built.
type ModulesChangedEvent struct {
	Domain string `json:"domain"`
}

// Option describes a single driver configuration value.
type Option struct {
	Name  string `json:"name" yaml:"name" validate:"required"`
	Value string `json:"value" yaml:"value"`
}
