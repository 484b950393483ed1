// autoconfig provides a way to create various instances from the [config.Config] like
// [store.ArticleStore], [render.Renderer], [zap.Logger].
//
// For example, to instantiate [store.ArticleStore], you can write:
//
//	autoconfig.NewBuilder().Invoke(func(s *store.ArticleStore) error {
//	    ...
//	})
//
// Treat it as a dependency injection mechanism.
package autoconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/stateful/storyblocks/internal/config"
	"github.com/stateful/storyblocks/internal/session"
	"github.com/stateful/storyblocks/internal/store"
	"github.com/stateful/storyblocks/pkg/document/render"
)

const (
	configName = "storyblocks"
	configType = "yaml"
)

// Builder wraps a dig container with the providers of storyblocks.
type Builder struct {
	container *dig.Container
}

func NewBuilder() *Builder {
	b := &Builder{container: dig.New()}

	mustProvide(b.container.Provide(getLoader))
	mustProvide(b.container.Provide(getConfig))
	mustProvide(b.container.Provide(getLogger))
	mustProvide(b.container.Provide(getFilters))
	mustProvide(b.container.Provide(getRenderer))
	mustProvide(b.container.Provide(getStore))
	mustProvide(b.container.Provide(getSessionOptions))

	return b
}

// Decorate replaces a provided value, for example the [config.Loader]
// when a config file is given explicitly.
func (b *Builder) Decorate(decorator interface{}, opts ...dig.DecorateOption) error {
	return dig.RootCause(b.container.Decorate(decorator, opts...))
}

// Invoke is used to invoke the function with the given dependencies.
// The package will automatically figure out how to instantiate them
// using the available configuration.
func (b *Builder) Invoke(function interface{}, opts ...dig.InvokeOption) error {
	return dig.RootCause(b.container.Invoke(function, opts...))
}

// UseConfigFile makes the builder read the config from path instead of
// looking it up.
func (b *Builder) UseConfigFile(path string) error {
	return b.Decorate(func(*config.Loader) *config.Loader {
		return newFileLoader(path)
	})
}

// UseLogger replaces the logger derived from the config.
func (b *Builder) UseLogger(logger *zap.Logger) error {
	return b.Decorate(func(*zap.Logger) *zap.Logger {
		return logger
	})
}

func mustProvide(err error) {
	if err != nil {
		panic("failed to provide: " + err.Error())
	}
}

func newFileLoader(path string) *config.Loader {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return config.NewLoader(
		strings.TrimSuffix(base, ext),
		strings.TrimPrefix(ext, "."),
		os.DirFS(filepath.Dir(path)),
	)
}

func getLoader() (*config.Loader, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var opts []config.LoaderOption
	if dir, err := os.UserConfigDir(); err == nil {
		opts = append(opts, config.WithFallbackPath(os.DirFS(filepath.Join(dir, configName))))
	}

	return config.NewLoader(configName, configType, os.DirFS(cwd), opts...), nil
}

func getConfig(loader *config.Loader) (*config.Config, error) {
	cfg, err := loader.Load()
	return cfg, errors.WithMessage(err, "failed to load config")
}

func getLogger(c *config.Config) (*zap.Logger, error) {
	if c == nil || !c.Log.Enabled {
		return zap.NewNop(), nil
	}

	zapConfig := zap.Config{
		Level:       zap.NewAtomicLevelAt(zap.InfoLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	if c.Log.Verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		zapConfig.Development = true
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	if c.Log.Path != "" {
		zapConfig.OutputPaths = []string{c.Log.Path}
		zapConfig.ErrorOutputPaths = []string{c.Log.Path}
	}

	l, err := zapConfig.Build()
	return l, errors.WithStack(err)
}

func getFilters(c *config.Config) []*config.Filter {
	return c.Filters
}

func getRenderer(c *config.Config, logger *zap.Logger) *render.Renderer {
	return render.NewRenderer(
		render.Options{ContainerClass: c.Render.ContainerClass},
		c.Render.CacheSize,
		logger,
	)
}

func getStore(c *config.Config, logger *zap.Logger) (*store.ArticleStore, error) {
	return store.Open(c.Store.Path, logger)
}

// SessionOptions are the session settings derived from the config.
// They do not include a saver, so creating a session does not open
// the store.
type SessionOptions []session.SessionOption

func getSessionOptions(c *config.Config, logger *zap.Logger) SessionOptions {
	return SessionOptions{
		session.WithMode(session.Mode(c.Editor.DefaultMode)),
		session.WithFocusDelay(c.Editor.FocusDelay),
		session.WithRender(c.Render.ContainerClass, c.Render.CacheSize),
		session.WithLogger(logger),
	}
}
