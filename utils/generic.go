package utils

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// TimeNow returns epoch UTC.
func TimeNow() int64 {
	return time.Now().UTC().Unix()
}

// TimeNowMillis returns epoch UTC in milliseconds.
func TimeNowMillis() int64 {
	return time.Now().UTC().UnixNano() / int64(time.Millisecond)
}

// NormalizeTopicPart makes string safe to be used as a single MQTT topic level.
func NormalizeTopicPart(raw string) string {
	replacer := strings.NewReplacer("/", "_",
		"+", "_",
		"#", "_",
		" ", "_")
	return replacer.Replace(raw)
}

// PropertyKey returns flat key describing module property, used for filtering and caching.
func PropertyKey(domain string, address string, propertyPath string) string {
	return fmt.Sprintf("%s/%s/%s", domain, address, propertyPath)
}

// GetCurrentWorkingDir returns application working directory.
func GetCurrentWorkingDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		panic("Failed to get current working dir")
	}

	return cwd
}

// GetDefaultConfigFile returns default config file which is cwd/configs/driverhost.yaml.
func GetDefaultConfigFile() string {
	if ConfigFile != "" {
		return ConfigFile
	}

	return fmt.Sprintf("%s/configs/driverhost.yaml", GetCurrentWorkingDir())
}

// ConfigFile allows to re-write default config file location.
var ConfigFile = ""
