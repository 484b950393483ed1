package config

import (
	"io/fs"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrRootConfigNotFound = errors.New("root configuration file not found")

// Loader allows to load configuration files from file systems.
type Loader struct {
	// configRootPath is where the configuration file is looked up
	// first. Typically, it's the current working directory.
	configRootPath fs.FS

	// fallbackPaths are searched in order when configRootPath has no
	// configuration file, for example the user's config directory.
	fallbackPaths []fs.FS

	// configName is a name of the configuration file.
	configName string

	// configType is a type of the configuration file.
	// Together with configName it forms a configFile.
	configType string

	logger *zap.Logger
}

type LoaderOption func(*Loader)

func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

func WithFallbackPath(fsys fs.FS) LoaderOption {
	return func(l *Loader) {
		if fsys != nil {
			l.fallbackPaths = append(l.fallbackPaths, fsys)
		}
	}
}

func NewLoader(configName, configType string, configRootPath fs.FS, opts ...LoaderOption) *Loader {
	if configName == "" {
		panic("config name is not set")
	}

	l := &Loader{
		configRootPath: configRootPath,
		configName:     configName,
		configType:     configType,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = zap.NewNop()
	}

	return l
}

func (l *Loader) configFullName() string {
	if l.configType == "" {
		return l.configName
	}
	return l.configName + "." + l.configType
}

// RootConfig returns the content of the first configuration file found.
func (l *Loader) RootConfig() ([]byte, error) {
	name := l.configFullName()

	for i, fsys := range append([]fs.FS{l.configRootPath}, l.fallbackPaths...) {
		if fsys == nil {
			continue
		}
		data, err := fs.ReadFile(fsys, name)
		if err == nil {
			l.logger.Debug("found configuration file", zap.String("name", name), zap.Int("path", i))
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "failed to read %s", name)
		}
	}

	return nil, ErrRootConfigNotFound
}

// Load parses the root configuration file. Without one, it returns
// the defaults.
func (l *Loader) Load() (*Config, error) {
	data, err := l.RootConfig()
	if errors.Is(err, ErrRootConfigNotFound) {
		l.logger.Debug("using default configuration")
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return ParseYAML(data)
}
