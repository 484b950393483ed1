package render

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/stateful/storyblocks/internal/lru"
	"github.com/stateful/storyblocks/pkg/document"
)

type article struct {
	key    string
	markup string
}

func (a article) Identifier() string { return a.key }

// Renderer serializes documents and caches the markup by content, so
// re-rendering an unchanged document is a lookup.
type Renderer struct {
	opts   Options
	cache  *lru.Cache[article]
	logger *zap.Logger
}

func NewRenderer(opts Options, cacheSize int, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		opts:   opts,
		cache:  lru.NewCache[article](cacheSize),
		logger: logger,
	}
}

func (r *Renderer) Render(doc *document.Document) string {
	blocks := doc.Blocks()

	key, err := digest(doc)
	if err != nil {
		r.logger.Debug("rendering without cache", zap.Error(err))
		return SerializeWith(blocks, r.opts)
	}

	a, _ := r.cache.GetOrCreate(key, func() (article, error) {
		r.logger.Debug("render cache miss", zap.String("key", key))
		return article{key: key, markup: SerializeWith(blocks, r.opts)}, nil
	})
	return a.markup
}

func (r *Renderer) Cached() int { return r.cache.Size() }

func digest(doc *document.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16), nil
}
