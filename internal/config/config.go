package config

import (
	"bytes"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of storyblocks. It mirrors the newest
// config file version.
type Config struct {
	Version string       `yaml:"version" validate:"required,oneof=v1alpha1"`
	Editor  ConfigEditor `yaml:"editor"`
	Render  ConfigRender `yaml:"render"`
	Store   ConfigStore  `yaml:"store"`
	Log     ConfigLog    `yaml:"log"`
	Filters []*Filter    `yaml:"filters" validate:"dive"`
}

type ConfigEditor struct {
	// FocusDelay is how long focus waits for the layout after a
	// structural edit.
	FocusDelay  time.Duration `yaml:"focus_delay" validate:"gte=0"`
	DefaultMode string        `yaml:"default_mode" validate:"omitempty,oneof=desktop mobile"`
}

type ConfigRender struct {
	ContainerClass string `yaml:"container_class"`
	CacheSize      int    `yaml:"cache_size" validate:"gte=1"`
}

type ConfigStore struct {
	Path string `yaml:"path"`
}

type ConfigLog struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Verbose bool   `yaml:"verbose"`
}

// Default returns a copy of the default configuration.
func Default() *Config {
	return defaults.clone()
}

// ParseYAML parses data on top of the defaults, so a config file only
// needs the fields it changes.
func ParseYAML(data []byte) (*Config, error) {
	return parseYAML(data, Default())
}

func parseYAML(data []byte, base *Config) (*Config, error) {
	version, err := parseVersionFromYAML(data)
	if err != nil {
		return nil, err
	}

	switch version {
	case "v1alpha1":
		cfg := base
		cfg.Filters = nil

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal v1alpha1 config")
		}

		if err := validateConfig(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to validate v1alpha1 config")
		}

		return cfg, nil
	default:
		return nil, errors.Errorf("unknown version: %s", version)
	}
}

type versionOnly struct {
	Version string `yaml:"version"`
}

func parseVersionFromYAML(data []byte) (string, error) {
	var result versionOnly

	if err := yaml.Unmarshal(data, &result); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal version")
	}

	return result.Version, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return errors.WithStack(err)
	}

	for _, f := range cfg.Filters {
		if err := f.Compile(); err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) clone() *Config {
	result := *c
	result.Filters = make([]*Filter, 0, len(c.Filters))
	for _, f := range c.Filters {
		result.Filters = append(result.Filters, &Filter{Type: f.Type, Condition: f.Condition})
	}
	return &result
}
