package enums

// Well-known property paths emitted by drivers.
const (
	// PropStatusLevel describes module output level, 0 is off.
	PropStatusLevel = "Status.Level"
	// PropSensorTemperature describes temperature reading.
	PropSensorTemperature = "Sensor.Temperature"
	// PropSensorMessage describes free-form text reading.
	PropSensorMessage = "Sensor.Message"
)
