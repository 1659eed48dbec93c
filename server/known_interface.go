package server

import (
	"github.com/go-home-io/driverhost/plugins/driver"
)

// Loaded driver instance.
type knownInterface struct {
	Domain    string `json:"domain"`
	Provider  string `json:"provider"`
	Connected bool   `json:"connected"`
	Enabled   bool   `json:"enabled"`
	Present   bool   `json:"present"`
	Modules   int    `json:"modules"`
	LastSeen  int64  `json:"last_seen"`
}

// Module with its last known properties.
type knownModule struct {
	*driver.Module
	Properties map[string]*propertyValue `json:"properties"`
}

// Cached property value.
type propertyValue struct {
	Value     interface{} `json:"value"`
	Timestamp int64       `json:"timestamp"`
}

// Outbound websocket message.
type wsEvent struct {
	Type     string                       `json:"type"`
	Property *driver.PropertyChangedEvent `json:"property,omitempty"`
	Modules  *driver.ModulesChangedEvent  `json:"modules,omitempty"`
}

const (
	// wsEventProperty describes property change message.
	wsEventProperty = "property"
	// wsEventModules describes modules change message.
	wsEventModules = "modules"
)
