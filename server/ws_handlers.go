package server

import (
	"net/http"
	"net/url"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/plugins/helpers"
	"github.com/go-home-io/driverhost/utils"
	"github.com/gobwas/glob"
	"github.com/gorilla/websocket"
)

// Handles WS upgrade request.
// Optional filter query param is a glob matched against <domain>/<address>/<propertyPath>.
func (s *HostServer) handleWS(writer http.ResponseWriter, request *http.Request) {
	filter := request.URL.Query().Get(urlFilter)
	if "" == filter {
		filter = "*"
	}

	g, err := glob.Compile(filter)
	if err != nil {
		respondOkError(writer, &ErrBadRequest{})
		return
	}

	requestID := getContextRequestID(request)
	c, err := s.wsSettings.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to establish a WS connection", err, common.LogSystemToken, logSystem,
			common.LogRequestToken, requestID)
		return
	}

	go s.processWSConnection(c, g, requestID)
}

// Processes WS connection until either side closes it.
//noinspection GoUnhandledErrorResult
func (s *HostServer) processWSConnection(conn *websocket.Conn, filter glob.Glob, requestID string) {
	stop := make(chan bool, 1)
	go s.processIncomingWSMessages(conn, stop, requestID)

	propSubID, propUpd := s.Settings.FanOut().SubscribePropertyChanges()
	defer s.Settings.FanOut().UnSubscribePropertyChanges(propSubID)

	modSubID, modUpd := s.Settings.FanOut().SubscribeModulesChanges()
	defer s.Settings.FanOut().UnSubscribeModulesChanges(modSubID)

	for {
		var msg *wsEvent
		select {
		case <-stop:
			return
		case p, ok := <-propUpd:
			if !ok {
				conn.Close() // nolint: gosec, errcheck
				return
			}

			if !filter.Match(utils.PropertyKey(p.Domain, p.Source, p.PropertyPath)) {
				continue
			}

			msg = &wsEvent{Type: wsEventProperty, Property: p}
		case m, ok := <-modUpd:
			if !ok {
				conn.Close() // nolint: gosec, errcheck
				return
			}

			msg = &wsEvent{Type: wsEventModules, Modules: m}
		}

		if err := conn.WriteJSON(msg); err != nil {
			s.Logger.Warn("Failed to send WS message", common.LogSystemToken, logSystem,
				common.LogRequestToken, requestID)
			conn.Close() // nolint: gosec, errcheck
			return
		}
	}
}

// Reads incoming WS messages until connection is closed.
// Client messages are ignored, this is an outbound-only stream.
func (s *HostServer) processIncomingWSMessages(conn *websocket.Conn, stop chan bool, requestID string) {
	defer conn.Close() // nolint: errcheck
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.Logger.Debug("Closing WS connection", common.LogSystemToken, logSystem,
				common.LogRequestToken, requestID)
			stop <- true
			return
		}
	}
}

// Origin check for WS upgrade.
// Same host is always allowed.
func (s *HostServer) checkOrigin(request *http.Request) bool {
	origin := request.Header.Get("Origin")
	if "" == origin {
		return true
	}

	allowed := s.Settings.HostSettings().AllowedOrigins
	if helpers.SliceContainsString(allowed, "*") || helpers.SliceContainsString(allowed, origin) {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return u.Host == request.Host
}
