package autoconfig

import (
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stateful/storyblocks/internal/config"
	"github.com/stateful/storyblocks/internal/session"
	"github.com/stateful/storyblocks/internal/store"
	"github.com/stateful/storyblocks/pkg/document/render"
)

func TestBuilder_Config(t *testing.T) {
	builder := NewBuilder()
	configRootFS := fstest.MapFS{
		"storyblocks.yaml": {
			Data: []byte("version: v1alpha1\neditor:\n  focus_delay: 5ms\n"),
		},
	}
	err := builder.Decorate(
		func(*config.Loader) *config.Loader {
			return config.NewLoader("storyblocks", "yaml", configRootFS)
		},
	)
	require.NoError(t, err)

	err = builder.Invoke(func(cfg *config.Config, logger *zap.Logger) error {
		require.Equal(t, 5*time.Millisecond, cfg.Editor.FocusDelay)
		require.NotNil(t, logger)
		return nil
	})
	require.NoError(t, err)
}

func TestBuilder_InvalidConfig(t *testing.T) {
	builder := NewBuilder()
	err := builder.Decorate(
		func(*config.Loader) *config.Loader {
			return config.NewLoader("storyblocks", "yaml", fstest.MapFS{
				"storyblocks.yaml": {Data: []byte("version: v9\n")},
			})
		},
	)
	require.NoError(t, err)

	err = builder.Invoke(func(*config.Config) error { return nil })
	require.ErrorContains(t, err, "unknown version: v9")
}

func TestBuilder_StoreAndSession(t *testing.T) {
	temp := t.TempDir()
	dbPath := filepath.Join(temp, "articles.db")

	builder := NewBuilder()
	err := builder.Decorate(
		func(*config.Loader) *config.Loader {
			return config.NewLoader("storyblocks", "yaml", fstest.MapFS{
				"storyblocks.yaml": {Data: []byte("version: v1alpha1\nstore:\n  path: " + dbPath + "\neditor:\n  default_mode: mobile\n")},
			})
		},
	)
	require.NoError(t, err)

	err = builder.Invoke(func(s *store.ArticleStore, r *render.Renderer, opts SessionOptions) error {
		defer s.Close()

		require.NotNil(t, r)

		sess := session.New(append(opts, session.WithSaver(s))...)
		defer sess.Close()
		require.Equal(t, session.ModeMobile, sess.Mode())

		_, err := sess.Save(t.Context(), "Empty")
		return err
	})
	require.NoError(t, err)
}

func TestNewFileLoader(t *testing.T) {
	dir := t.TempDir()
	loader := newFileLoader(filepath.Join(dir, "custom.yml"))

	_, err := loader.RootConfig()
	require.ErrorIs(t, err, config.ErrRootConfigNotFound)
}

func TestBuilder_UseLogger(t *testing.T) {
	builder := NewBuilder()
	logger := zap.NewExample()

	require.NoError(t, builder.UseLogger(logger))

	err := builder.Invoke(func(l *zap.Logger) error {
		require.Same(t, logger, l)
		return nil
	})
	require.NoError(t, err)
}
