package settings

import (
	"bytes"
	"os"
	"text/template"

	"github.com/go-home-io/driverhost/plugins/common"
	"github.com/pkg/errors"
)

// ITemplateProvider defines template logic.
type ITemplateProvider interface {
	Process([]byte) ([]byte, error)
}

// Template engine provider.
type provider struct {
	logger    common.ILoggerProvider
	functions template.FuncMap
}

// Constructs a new template engine.
func newTemplateProvider(logger common.ILoggerProvider) *provider {
	p := &provider{
		logger: logger,
	}

	p.functions = template.FuncMap{
		"env": p.getEnvVariable,
	}

	return p
}

// Process applies template functions to the config data,
// which allows reading values from environment variables.
func (p *provider) Process(rawFile []byte) ([]byte, error) {
	tpl, err := template.New("driverhost").Funcs(p.functions).Parse(string(rawFile))
	if err != nil {
		return nil, errors.Wrap(err, "parse template failed")
	}

	b := bytes.Buffer{}
	if err := tpl.Execute(&b, nil); err != nil {
		return nil, errors.Wrap(err, "execute template failed")
	}

	return b.Bytes(), nil
}

// Returns environment variable.
func (p *provider) getEnvVariable(name string) string {
	p.logger.Debug("Template is requesting environment variable",
		common.LogFieldToken, name, common.LogSystemToken, logSystem)
	return os.Getenv(name)
}
