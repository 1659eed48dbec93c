package common

const (
	// LogSystemToken describes system log entry.
	LogSystemToken = "system"
	// LogDriverToken describes driver provider log entry.
	LogDriverToken = "driver"
	// LogDomainToken describes driver domain log entry.
	LogDomainToken = "domain"
	// LogModuleToken describes module address log entry.
	LogModuleToken = "module"
	// LogModuleTypeToken describes module type log entry.
	LogModuleTypeToken = "module_type"
	// LogCommandToken describes module command log entry.
	LogCommandToken = "cmd"
	// LogPropertyToken describes module property path log entry.
	LogPropertyToken = "prop"
	// LogOptionToken describes driver option log entry.
	LogOptionToken = "option"
	// LogStateToken describes driver lifecycle state log entry.
	LogStateToken = "state"
	// LogURLToken describes URL log entry.
	LogURLToken = "url"
	// LogRequestToken describes API request ID log entry.
	LogRequestToken = "request_id"
	// LogTopicToken describes MQTT topic log entry.
	LogTopicToken = "topic"
)

const (
	// LogNodeToken describes node log entry.
	LogNodeToken = "node"
	// LogErrorToken describes error log entry.
	LogErrorToken = "error"
	// LogFileToken describes file log entry.
	LogFileToken = "file"
	// LogProviderToken describes provider log entry.
	LogProviderToken = "provider"
	// LogFieldToken describes field log entry.
	LogFieldToken = "field"
)
