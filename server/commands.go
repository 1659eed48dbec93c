package server

import (
	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/plugins/driver"
)

// Sends command to the interface.
func (s *HostServer) commandInvoke(request *driver.CommandRequest, requestID string) (
	*driver.CommandResponse, error) {
	d, ok := s.state.GetInterface(request.Domain)
	if !ok {
		s.Logger.Warn("Command for unknown interface", common.LogSystemToken, logSystem,
			common.LogDomainToken, request.Domain, common.LogRequestToken, requestID)
		return nil, &ErrUnknownInterface{Domain: request.Domain}
	}

	s.Logger.Debug("Invoking interface command", common.LogSystemToken, logSystem,
		common.LogDomainToken, request.Domain, common.LogModuleToken, request.Address,
		common.LogCommandToken, request.Command, common.LogRequestToken, requestID)

	return d.InterfaceControl(request), nil
}

// Sets interface option.
func (s *HostServer) commandSetOption(domain string, option *driver.Option) error {
	d, ok := s.state.GetInterface(domain)
	if !ok {
		return &ErrUnknownInterface{Domain: domain}
	}

	s.Logger.Info("Setting interface option", common.LogSystemToken, logSystem,
		common.LogDomainToken, domain, common.LogOptionToken, option.Name)
	return d.SetOption(option)
}
