// Package mqtt contains MQTT bridge which publishes driver events.
package mqtt

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/plugins/helpers"
	"github.com/go-home-io/driverhost/providers"
	"github.com/go-home-io/driverhost/utils"
	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

const (
	// Logger system.
	logSystem = "mqtt"
)

// ConstructBridge has data required for a new bridge.
type ConstructBridge struct {
	Settings  *providers.MQTTSettings
	FanOut    providers.IInternalFanOutProvider
	Publisher IPublisher
	Logger    common.ILoggerProvider
}

// Message payload.
type propertyPayload struct {
	Value       interface{} `json:"value"`
	Description string      `json:"description"`
	Timestamp   int64       `json:"timestamp"`
}

// Bridge forwards property changes from the fanout to MQTT.
type Bridge struct {
	sync.Mutex

	settings  *providers.MQTTSettings
	fanOut    providers.IInternalFanOutProvider
	publisher IPublisher
	logger    common.ILoggerProvider
	filter    glob.Glob
	payload   helpers.IExpression

	subID   int64
	running bool
	done    chan bool
}

// NewBridge constructs a new stopped bridge.
// Filter is a glob matched against <domain>/<address>/<propertyPath>.
// Payload is an optional expression replacing the default JSON body.
func NewBridge(ctor *ConstructBridge) (*Bridge, error) {
	filter := ctor.Settings.Filter
	if "" == filter {
		filter = "*"
	}

	g, err := glob.Compile(filter)
	if err != nil {
		return nil, errors.Wrap(err, "invalid filter")
	}

	b := &Bridge{
		settings:  ctor.Settings,
		fanOut:    ctor.FanOut,
		publisher: ctor.Publisher,
		logger:    ctor.Logger,
		filter:    g,
	}

	if "" != ctor.Settings.Payload {
		b.payload, err = helpers.NewParser().Compile(ctor.Settings.Payload)
		if err != nil {
			return nil, errors.Wrap(err, "invalid payload expression")
		}
	}

	return b, nil
}

// Start subscribes to property changes.
func (b *Bridge) Start() {
	b.Lock()
	defer b.Unlock()

	if b.running {
		return
	}

	id, ch := b.fanOut.SubscribePropertyChanges()
	b.subID = id
	b.running = true
	b.done = make(chan bool)

	go b.cycle(ch, b.done)
	b.logger.Info("MQTT bridge started", common.LogSystemToken, logSystem,
		common.LogTopicToken, b.settings.TopicPrefix)
}

// Stop un-subscribes from the fanout and closes publisher.
func (b *Bridge) Stop() {
	b.Lock()
	defer b.Unlock()

	if !b.running {
		return
	}

	b.fanOut.UnSubscribePropertyChanges(b.subID)
	<-b.done
	b.running = false
	b.publisher.Close()
}

// Publishes every event until channel is closed.
func (b *Bridge) cycle(ch chan *driver.PropertyChangedEvent, done chan bool) {
	defer close(done)

	for event := range ch {
		b.publish(event)
	}
}

// Publishes single event if it passes the filter.
func (b *Bridge) publish(event *driver.PropertyChangedEvent) {
	if !b.filter.Match(utils.PropertyKey(event.Domain, event.Source, event.PropertyPath)) {
		return
	}

	topic := Topic(b.settings.TopicPrefix, event)
	payload, err := b.marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal property", err, common.LogSystemToken, logSystem,
			common.LogTopicToken, topic)
		return
	}

	err = b.publisher.Publish(topic, byte(b.settings.QoS), b.settings.Retained, payload)
	if err != nil {
		b.logger.Error("Failed to publish property", err, common.LogSystemToken, logSystem,
			common.LogTopicToken, topic)
		return
	}

	b.logger.Debug("Published property", common.LogSystemToken, logSystem, common.LogTopicToken, topic)
}

// Builds message body.
func (b *Bridge) marshal(event *driver.PropertyChangedEvent) ([]byte, error) {
	if nil == b.payload {
		return json.Marshal(&propertyPayload{
			Value:       event.Value,
			Description: event.Description,
			Timestamp:   event.Timestamp,
		})
	}

	val, err := b.payload.Evaluate(map[string]interface{}{
		"value":       event.Value,
		"description": event.Description,
		"domain":      event.Domain,
		"address":     event.Source,
		"property":    event.PropertyPath,
		"timestamp":   float64(event.Timestamp),
	})

	if err != nil {
		return nil, err
	}

	return []byte(fmt.Sprintf("%v", val)), nil
}

// Topic returns MQTT topic of the property event.
func Topic(prefix string, event *driver.PropertyChangedEvent) string {
	return fmt.Sprintf("%s/%s/%s/%s", prefix, utils.NormalizeTopicPart(event.Domain),
		utils.NormalizeTopicPart(event.Source), utils.NormalizeTopicPart(event.PropertyPath))
}
