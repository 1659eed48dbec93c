package settings

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/pkg/errors"
)

// Checks whether file could be a config.
func isValidConfigFileName(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	return ext == ".yaml" || ext == ".yml"
}

// Reads config file or every yaml file in the config folder.
// Files are returned sorted by name.
func readConfigFiles(location string, logger common.ILoggerProvider) ([][]byte, error) {
	fi, err := os.Stat(location)
	if err != nil {
		return nil, errors.Wrap(err, "stat config location failed")
	}

	fileList := make([]string, 0)
	if !fi.IsDir() {
		fileList = append(fileList, location)
	} else {
		err = filepath.Walk(location, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				logger.Warn("Failed get folder files", common.LogFileToken, path)
				return err
			}

			if f.IsDir() || !isValidConfigFileName(path) {
				return nil
			}

			fileList = append(fileList, path)
			return nil
		})

		if err != nil {
			return nil, errors.Wrap(err, "walk config folder failed")
		}
	}

	sort.Strings(fileList)
	result := make([][]byte, 0, len(fileList))
	for _, v := range fileList {
		data, err := ioutil.ReadFile(v)
		if err != nil {
			logger.Error("Failed to read config file", err, common.LogFileToken, v)
			continue
		}

		logger.Debug("Loaded config file", common.LogFileToken, v)
		result = append(result, data)
	}

	if 0 == len(result) {
		return nil, &ErrNoConfig{Location: location}
	}

	return result, nil
}
