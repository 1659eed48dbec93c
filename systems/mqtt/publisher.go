package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/providers"
	"github.com/pkg/errors"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 250
	keepAlive         = 60 * time.Second

	statusOnline  = "online"
	statusOffline = "offline"
)

// IPublisher defines MQTT publishing logic used by the bridge.
type IPublisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
	Close()
}

// Paho-backed publisher.
type pahoPublisher struct {
	client      paho.Client
	logger      common.ILoggerProvider
	statusTopic string
	qos         byte
}

// NewPahoPublisher connects to the configured broker.
// Host status is published retained to <prefix>/<clientID>/status,
// broker reports it offline if connection drops.
func NewPahoPublisher(settings *providers.MQTTSettings, logger common.ILoggerProvider) (IPublisher, error) {
	statusTopic := StatusTopic(settings.TopicPrefix, settings.ClientID)

	opts := paho.NewClientOptions()
	opts.AddBroker(settings.Broker)
	opts.SetClientID(settings.ClientID)
	if "" != settings.Username {
		opts.SetUsername(settings.Username)
		opts.SetPassword(settings.Password)
	}

	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetKeepAlive(keepAlive)
	opts.SetWill(statusTopic, statusOffline, 1, true)

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.Error("Lost connection to MQTT broker", err, common.LogSystemToken, logSystem,
			common.LogURLToken, settings.Broker)
	})
	opts.SetOnConnectHandler(func(_ paho.Client) {
		logger.Info("Connected to MQTT broker", common.LogSystemToken, logSystem,
			common.LogURLToken, settings.Broker)
	})

	p := &pahoPublisher{
		client:      paho.NewClient(opts),
		logger:      logger,
		statusTopic: statusTopic,
		qos:         byte(settings.QoS),
	}

	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, &ErrConnectionTimeout{Broker: settings.Broker}
	}

	if err := token.Error(); err != nil {
		return nil, errors.Wrap(err, "mqtt connect failed")
	}

	if err := p.Publish(statusTopic, 1, true, []byte(statusOnline)); err != nil {
		logger.Warn("Failed to publish online status", common.LogSystemToken, logSystem,
			common.LogTopicToken, statusTopic)
	}

	return p, nil
}

// Publish sends message and waits for acknowledgment.
func (p *pahoPublisher) Publish(topic string, qos byte, retained bool, payload []byte) error {
	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return &ErrPublishTimeout{Topic: topic}
	}

	return errors.Wrap(token.Error(), "mqtt publish failed")
}

// Close publishes offline status and disconnects.
func (p *pahoPublisher) Close() {
	if !p.client.IsConnected() {
		return
	}

	if err := p.Publish(p.statusTopic, 1, true, []byte(statusOffline)); err != nil {
		p.logger.Warn("Failed to publish offline status", common.LogSystemToken, logSystem,
			common.LogTopicToken, p.statusTopic)
	}

	p.client.Disconnect(disconnectQuiesce)
}

// StatusTopic returns topic with host online status.
func StatusTopic(prefix string, clientID string) string {
	return fmt.Sprintf("%s/%s/status", prefix, clientID)
}
