// Package fanout contains implementation of pub-sub fanout channels.
package fanout

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/go-home-io/driverhost/plugins/driver"
	"github.com/go-home-io/driverhost/providers"
	"github.com/go-home-io/driverhost/utils"
)

const (
	// Logger system.
	logSystem = "fanout"
	// Subscriber channel capacity.
	subscriberBuffer = 100
)

// Implements IInternalFanOutProvider.
type provider struct {
	property sync.RWMutex
	modules  sync.RWMutex

	logger common.ILoggerProvider

	outPropertyUpdates map[int64]chan *driver.PropertyChangedEvent
	outModulesUpdates  map[int64]chan *driver.ModulesChangedEvent

	// Guarded by both mutexes.
	closed bool
}

// NewFanOut constructs new FanOut provider.
// Publishing never blocks: event is dropped for a subscriber with a full buffer.
func NewFanOut(logger common.ILoggerProvider) providers.IInternalFanOutProvider {
	return &provider{
		logger:             logger,
		outPropertyUpdates: make(map[int64]chan *driver.PropertyChangedEvent),
		outModulesUpdates:  make(map[int64]chan *driver.ModulesChangedEvent),
	}
}

// PropertyChanged broadcasts property update to every subscriber.
func (p *provider) PropertyChanged(event *driver.PropertyChangedEvent) {
	p.property.RLock()
	defer p.property.RUnlock()

	for id, v := range p.outPropertyUpdates {
		select {
		case v <- event:
		default:
			p.logger.Debug("Subscriber is full, dropping property update", common.LogSystemToken, logSystem,
				common.LogDomainToken, event.Domain, common.LogModuleToken, event.Source,
				common.LogRequestToken, strconv.FormatInt(id, 10))
		}
	}
}

// ModulesChanged broadcasts modules update to every subscriber.
func (p *provider) ModulesChanged(event *driver.ModulesChangedEvent) {
	p.modules.RLock()
	defer p.modules.RUnlock()

	for id, v := range p.outModulesUpdates {
		select {
		case v <- event:
		default:
			p.logger.Debug("Subscriber is full, dropping modules update", common.LogSystemToken, logSystem,
				common.LogDomainToken, event.Domain, common.LogRequestToken, strconv.FormatInt(id, 10))
		}
	}
}

// SubscribePropertyChanges allows to subscribe to the property updates.
// Channel of a closed fanout is returned already closed.
func (p *provider) SubscribePropertyChanges() (int64, chan *driver.PropertyChangedEvent) {
	p.property.Lock()
	defer p.property.Unlock()

	c := make(chan *driver.PropertyChangedEvent, subscriberBuffer)
	rnd := p.getID()
	if p.closed {
		close(c)
		return rnd, c
	}

	p.outPropertyUpdates[rnd] = c
	return rnd, c
}

// UnSubscribePropertyChanges allows to un-subscribe from the property updates.
// nolint:dupl
func (p *provider) UnSubscribePropertyChanges(id int64) {
	p.property.Lock()
	defer p.property.Unlock()

	c, ok := p.outPropertyUpdates[id]
	if !ok {
		return
	}

	close(c)
	delete(p.outPropertyUpdates, id)
}

// SubscribeModulesChanges allows to subscribe to the modules updates.
func (p *provider) SubscribeModulesChanges() (int64, chan *driver.ModulesChangedEvent) {
	p.modules.Lock()
	defer p.modules.Unlock()

	c := make(chan *driver.ModulesChangedEvent, subscriberBuffer)
	rnd := p.getID()
	if p.closed {
		close(c)
		return rnd, c
	}

	p.outModulesUpdates[rnd] = c
	return rnd, c
}

// UnSubscribeModulesChanges allows to un-subscribe from the modules updates.
// nolint:dupl
func (p *provider) UnSubscribeModulesChanges(id int64) {
	p.modules.Lock()
	defer p.modules.Unlock()

	c, ok := p.outModulesUpdates[id]
	if !ok {
		return
	}

	close(c)
	delete(p.outModulesUpdates, id)
}

// Close closes every subscriber channel.
func (p *provider) Close() {
	p.property.Lock()
	defer p.property.Unlock()
	p.modules.Lock()
	defer p.modules.Unlock()

	for k, v := range p.outPropertyUpdates {
		close(v)
		delete(p.outPropertyUpdates, k)
	}

	for k, v := range p.outModulesUpdates {
		close(v)
		delete(p.outModulesUpdates, k)
	}

	p.closed = true
}

// Returns random ID.
func (p *provider) getID() int64 {
	return utils.TimeNow() + rand.Int63()
}
