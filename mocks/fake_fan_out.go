//+build !release

package mocks

import (
	"sync"

	"github.com/go-home-io/driverhost/plugins/driver"
)

// IFakeFanOut exposes recorded events.
type IFakeFanOut interface {
	PropertyEvents() []*driver.PropertyChangedEvent
	ModulesEvents() []*driver.ModulesChangedEvent
}

// Fake notification sink, records every event and forwards it to subscribers.
type fakeFanOut struct {
	sync.Mutex

	Properties []*driver.PropertyChangedEvent
	Modules    []*driver.ModulesChangedEvent

	propSubs   map[int64]chan *driver.PropertyChangedEvent
	moduleSubs map[int64]chan *driver.ModulesChangedEvent
	lastID     int64
}

func (f *fakeFanOut) ModulesChanged(e *driver.ModulesChangedEvent) {
	f.Lock()
	defer f.Unlock()

	f.Modules = append(f.Modules, e)
	for _, v := range f.moduleSubs {
		select {
		case v <- e:
		default:
		}
	}
}

func (f *fakeFanOut) PropertyChanged(e *driver.PropertyChangedEvent) {
	f.Lock()
	defer f.Unlock()

	f.Properties = append(f.Properties, e)
	for _, v := range f.propSubs {
		select {
		case v <- e:
		default:
		}
	}
}

func (f *fakeFanOut) SubscribePropertyChanges() (int64, chan *driver.PropertyChangedEvent) {
	f.Lock()
	defer f.Unlock()

	f.lastID++
	c := make(chan *driver.PropertyChangedEvent, 10)
	f.propSubs[f.lastID] = c
	return f.lastID, c
}

func (f *fakeFanOut) UnSubscribePropertyChanges(id int64) {
	f.Lock()
	defer f.Unlock()

	if c, ok := f.propSubs[id]; ok {
		close(c)
		delete(f.propSubs, id)
	}
}

func (f *fakeFanOut) SubscribeModulesChanges() (int64, chan *driver.ModulesChangedEvent) {
	f.Lock()
	defer f.Unlock()

	f.lastID++
	c := make(chan *driver.ModulesChangedEvent, 10)
	f.moduleSubs[f.lastID] = c
	return f.lastID, c
}

func (f *fakeFanOut) UnSubscribeModulesChanges(id int64) {
	f.Lock()
	defer f.Unlock()

	if c, ok := f.moduleSubs[id]; ok {
		close(c)
		delete(f.moduleSubs, id)
	}
}

func (f *fakeFanOut) Close() {
	f.Lock()
	defer f.Unlock()

	for k, v := range f.propSubs {
		close(v)
		delete(f.propSubs, k)
	}

	for k, v := range f.moduleSubs {
		close(v)
		delete(f.moduleSubs, k)
	}
}

// PropertyEvents returns copy of recorded property events.
func (f *fakeFanOut) PropertyEvents() []*driver.PropertyChangedEvent {
	f.Lock()
	defer f.Unlock()
	return append([]*driver.PropertyChangedEvent{}, f.Properties...)
}

// ModulesEvents returns copy of recorded modules events.
func (f *fakeFanOut) ModulesEvents() []*driver.ModulesChangedEvent {
	f.Lock()
	defer f.Unlock()
	return append([]*driver.ModulesChangedEvent{}, f.Modules...)
}

// FakeNewFanOut creates a new recording notification sink.
func FakeNewFanOut() *fakeFanOut {
	return &fakeFanOut{
		Properties: make([]*driver.PropertyChangedEvent, 0),
		Modules:    make([]*driver.ModulesChangedEvent, 0),
		propSubs:   make(map[int64]chan *driver.PropertyChangedEvent),
		moduleSubs: make(map[int64]chan *driver.ModulesChangedEvent),
	}
}
