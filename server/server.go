// Package server contains driver host server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/providers"
	"github.com/go-home-io/driverhost/systems/mqtt"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	// Logger system representation.
	logSystem = "server"
	// Graceful shutdown timeout.
	shutdownTimeout = 5 * time.Second
)

// PublisherFactory constructs MQTT publisher.
type PublisherFactory func(*providers.MQTTSettings, common.ILoggerProvider) (mqtt.IPublisher, error)

// HostServer owns loaded drivers and serves them over HTTP.
type HostServer struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider

	// NewPublisher is used when MQTT bridge is configured.
	NewPublisher PublisherFactory

	state      IServerStateProvider
	options    map[string][]*providers.RawOption
	wsSettings websocket.Upgrader

	httpServer  *http.Server
	bridge      *mqtt.Bridge
	presenceJob int
	propSubID   int64
	modSubID    int64
	eventsDone  chan bool
	stopOnce    sync.Once
}

// NewServer constructs a new host and loads configured drivers.
// Drivers which failed to load are skipped.
func NewServer(settings providers.ISettingsProvider) (*HostServer, error) {
	ttl := time.Duration(settings.HostSettings().PropertyMinutes) * time.Minute
	s := &HostServer{
		Settings:     settings,
		Logger:       settings.SystemLogger(),
		NewPublisher: mqtt.NewPahoPublisher,
		state:        newServerState(settings.SystemLogger(), ttl),
		options:      make(map[string][]*providers.RawOption),
		presenceJob:  -1,
	}

	s.wsSettings = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	for _, v := range settings.DriversConfig() {
		s.loadDriver(v)
	}

	return s, nil
}

// Start launches host and blocks until stop signal.
func (s *HostServer) Start() {
	s.start()

	port := s.Settings.HostSettings().Port
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}

	go func() {
		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal("Failed to start server", err, common.LogSystemToken, logSystem)
		}
	}()

	s.Logger.Info(fmt.Sprintf("Started server on port %d", port), common.LogSystemToken, logSystem)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	s.Logger.Info("Received stop command, exiting", common.LogSystemToken, logSystem)
	s.Stop()
}

// Stop disposes drivers and releases every resource.
func (s *HostServer) Stop() {
	s.stopOnce.Do(func() {
		if nil != s.httpServer {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			if err := s.httpServer.Shutdown(ctx); err != nil {
				s.Logger.Error("Failed to stop server", err, common.LogSystemToken, logSystem)
			}
			cancel()
		}

		if -1 != s.presenceJob {
			s.Settings.Cron().RemoveFunc(s.presenceJob)
		}
		s.Settings.Cron().Stop()

		if nil != s.bridge {
			s.bridge.Stop()
		}

		if nil != s.eventsDone {
			s.Settings.FanOut().UnSubscribePropertyChanges(s.propSubID)
			s.Settings.FanOut().UnSubscribeModulesChanges(s.modSubID)
			<-s.eventsDone
		}

		s.state.DisposeAll()
		s.Settings.FanOut().Close()
	})
}

// Handler returns API handler.
func (s *HostServer) Handler() http.Handler {
	router := mux.NewRouter()
	s.registerAPI(router)

	var h http.Handler = router
	if origins := s.Settings.HostSettings().AllowedOrigins; len(origins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type", headerRequestID}),
			handlers.ExposedHeaders([]string{headerRequestID}),
		)(h)
	}

	return handlers.RecoveryHandler(handlers.RecoveryLogger(&recoveryLogger{logger: s.Logger}))(h)
}

// All API registration.
// Management routes go first, so they win over the command route.
func (s *HostServer) registerAPI(router *mux.Router) {
	router.HandleFunc("/pub/ping", s.ping).Methods(http.MethodGet)

	apiRouter := router.PathPrefix(routeAPI).Subrouter()
	apiRouter.HandleFunc("/events", s.handleWS).Methods(http.MethodGet)
	apiRouter.HandleFunc("/interfaces", s.getInterfaces).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/interfaces/{%s}/modules", urlDomain),
		s.getModules).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/interfaces/{%s}/modules/{%s}", urlDomain, urlAddress),
		s.getModule).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/interfaces/{%s}/option", urlDomain),
		s.setOption).Methods(http.MethodPost)
	apiRouter.HandleFunc(fmt.Sprintf("/{%s}/{%s}/{%s}", urlDomain, urlAddress, urlCommand),
		s.moduleCommand).Methods(http.MethodGet, http.MethodPost)
	apiRouter.HandleFunc(fmt.Sprintf("/{%s}/{%s}/{%s}/{%s:.+}", urlDomain, urlAddress, urlCommand, urlOptions),
		s.moduleCommand).Methods(http.MethodGet, http.MethodPost)
	apiRouter.Use(s.requestIDMiddleware)
	apiRouter.Use(s.logMiddleware)
}

// Starts everything except HTTP listener.
func (s *HostServer) start() {
	s.propSubID, s.modSubID = s.subscribe()

	for _, v := range s.state.GetInterfaces() {
		s.applyOptions(v.Domain)
	}

	spec := fmt.Sprintf("@every %ds", s.Settings.HostSettings().PresenceSeconds)
	id, err := s.Settings.Cron().AddFunc(spec, s.state.CheckPresence)
	if err != nil {
		s.Logger.Error("Failed to schedule presence monitor", err, common.LogSystemToken, logSystem)
	} else {
		s.presenceJob = id
	}

	s.startBridge()
}

// Subscribes state to fanout events.
func (s *HostServer) subscribe() (int64, int64) {
	propID, props := s.Settings.FanOut().SubscribePropertyChanges()
	modID, mods := s.Settings.FanOut().SubscribeModulesChanges()
	s.eventsDone = make(chan bool)

	go func() {
		defer close(s.eventsDone)
		for {
			select {
			case e, ok := <-props:
				if !ok {
					return
				}
				s.state.PropertyChanged(e)
			case e, ok := <-mods:
				if !ok {
					return
				}
				s.state.ModulesChanged(e)
			}
		}
	}()

	return propID, modID
}

// Loads single driver.
func (s *HostServer) loadDriver(raw *providers.RawDriver) {
	d, err := s.Settings.DriverLoader().LoadDriver(&providers.DriverLoadRequest{
		Provider:  raw.Provider,
		RawConfig: raw.RawConfig,
		InitData: &driver.InitDataDriver{
			Logger: s.Settings.PluginLogger(raw.Provider, raw.Domain),
			Sink:   s.Settings.FanOut(),
			Domain: raw.Domain,
		},
	})

	if err != nil {
		s.Logger.Error("Failed to load driver", err, common.LogSystemToken, logSystem,
			common.LogDriverToken, raw.Provider, common.LogDomainToken, raw.Domain)
		return
	}

	if err := s.state.AddInterface(raw.Provider, d); err != nil {
		s.Logger.Error("Failed to register driver", err, common.LogSystemToken, logSystem,
			common.LogDriverToken, raw.Provider, common.LogDomainToken, d.GetDomain())
		d.Dispose() // nolint: gosec, errcheck
		return
	}

	s.options[d.GetDomain()] = raw.Options
	s.Logger.Info("Loaded driver", common.LogSystemToken, logSystem,
		common.LogDriverToken, raw.Provider, common.LogDomainToken, d.GetDomain())
}

// Applies configured options, enabled driver goes online here.
func (s *HostServer) applyOptions(domain string) {
	d, ok := s.state.GetInterface(domain)
	if !ok {
		return
	}

	for _, v := range s.options[domain] {
		if err := d.SetOption(&driver.Option{Name: v.Name, Value: v.Value}); err != nil {
			s.Logger.Error("Failed to set driver option", err, common.LogSystemToken, logSystem,
				common.LogDomainToken, domain, common.LogOptionToken, v.Name)
		}
	}
}

// Starts MQTT bridge if configured.
func (s *HostServer) startBridge() {
	set := s.Settings.MQTTSettings()
	if nil == set {
		return
	}

	publisher, err := s.NewPublisher(set, s.Logger)
	if err != nil {
		s.Logger.Error("Failed to connect to MQTT broker, bridge is disabled", err,
			common.LogSystemToken, logSystem, common.LogURLToken, set.Broker)
		return
	}

	bridge, err := mqtt.NewBridge(&mqtt.ConstructBridge{
		Settings:  set,
		FanOut:    s.Settings.FanOut(),
		Publisher: publisher,
		Logger:    s.Logger,
	})

	if err != nil {
		s.Logger.Error("Failed to create MQTT bridge", err, common.LogSystemToken, logSystem)
		publisher.Close()
		return
	}

	s.bridge = bridge
	s.bridge.Start()
}
