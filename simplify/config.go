package simplify

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/boolnorm/internal/expr"
	"github.com/gnolang/boolnorm/internal/normalform"
)

const DefaultConfigFile = ".boolnorm.yaml"

// RenderConfig mirrors expr.RenderSettings for the configuration file.
type RenderConfig struct {
	LaTeX            bool `yaml:"latex"`
	DarkMode         bool `yaml:"darkMode"`
	OmitAndOperator  bool `yaml:"omitAndOperator"`
	ForceParentheses bool `yaml:"forceParentheses"`
}

func (r RenderConfig) Settings() expr.RenderSettings {
	return expr.RenderSettings{
		LaTeX:            r.LaTeX,
		DarkMode:         r.DarkMode,
		OmitAndOperator:  r.OmitAndOperator,
		ForceParentheses: r.ForceParentheses,
	}
}

// Config represents the overall configuration of a boolnorm run.
type Config struct {
	Name              string `yaml:"name"`
	Form              string `yaml:"form"`
	normalform.Config `yaml:",inline"`
	Render            RenderConfig    `yaml:"render"`
	Laws              map[string]bool `yaml:"laws"`
	Variables         []string        `yaml:"variables,omitempty"`
	Verify            bool            `yaml:"verify"`
	// Cache is the directory of the result cache. Empty disables caching.
	Cache string `yaml:"cache,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Name:   "boolnorm",
		Form:   string(normalform.StageDNF),
		Config: normalform.DefaultConfig(),
		Laws:   map[string]bool{},
	}
}

// Stage returns the configured normal form.
func (c Config) Stage() (normalform.Stage, error) {
	if c.Form == "" {
		return normalform.StageDNF, nil
	}
	return normalform.ParseStage(c.Form)
}

// LoadConfig reads the configuration at path on top of the defaults. A
// missing default file yields the defaults; any other missing file is an
// error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}
	config, err := parseConfigurationFile(path)
	if errors.Is(err, os.ErrNotExist) && path == DefaultConfigFile {
		return DefaultConfig(), nil
	}
	return config, err
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	config := DefaultConfig()

	// Read the configuration file
	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	// Parse the configuration file
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("failed to parse %s: %w", configurationPath, err)
	}
	if _, err := config.Stage(); err != nil {
		return config, fmt.Errorf("%s: %w", configurationPath, err)
	}

	return config, nil
}

// WriteConfig writes config as YAML to path.
func WriteConfig(path string, config Config) error {
	if path == "" {
		path = DefaultConfigFile
	}

	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
