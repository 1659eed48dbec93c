package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/gorilla/mux"
)

// Returns all loaded interfaces.
func (s *HostServer) getInterfaces(writer http.ResponseWriter, request *http.Request) { //nolint: unparam
	respond(writer, http.StatusOK, s.state.GetInterfaces())
}

// Returns modules of the interface.
func (s *HostServer) getModules(writer http.ResponseWriter, request *http.Request) {
	vars := mux.Vars(request)
	modules, err := s.state.GetModules(vars[string(urlDomain)])
	if err != nil {
		respondOkError(writer, err)
		return
	}

	respond(writer, http.StatusOK, modules)
}

// Returns single module with its last known properties.
func (s *HostServer) getModule(writer http.ResponseWriter, request *http.Request) {
	vars := mux.Vars(request)
	module, err := s.state.GetModule(vars[string(urlDomain)], vars[string(urlAddress)])
	if err != nil {
		respondOkError(writer, err)
		return
	}

	respond(writer, http.StatusOK, module)
}

// Sets interface option.
func (s *HostServer) setOption(writer http.ResponseWriter, request *http.Request) {
	vars := mux.Vars(request)
	option := &driver.Option{}
	if err := json.NewDecoder(request.Body).Decode(option); err != nil || "" == option.Name {
		respondOkError(writer, &ErrBadRequest{})
		return
	}

	respondOkError(writer, s.commandSetOption(vars[string(urlDomain)], option))
}

// Executes module command.
// Options are the rest of the path split by "/".
func (s *HostServer) moduleCommand(writer http.ResponseWriter, request *http.Request) {
	vars := mux.Vars(request)
	commandRequest := &driver.CommandRequest{
		Domain:  vars[string(urlDomain)],
		Address: vars[string(urlAddress)],
		Command: vars[string(urlCommand)],
		Options: make([]string, 0),
	}

	if opt := vars[string(urlOptions)]; "" != opt {
		commandRequest.Options = strings.Split(opt, "/")
	}

	response, err := s.commandInvoke(commandRequest, getContextRequestID(request))
	if err != nil {
		respondOkError(writer, err)
		return
	}

	status := http.StatusOK
	if response.IsError {
		status = http.StatusBadRequest
	}

	respond(writer, status, response)
}

// Health check.
func (s *HostServer) ping(writer http.ResponseWriter, request *http.Request) { //nolint: unparam
	respondOk(writer)
}
