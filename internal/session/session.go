package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/storyblocks/pkg/document"
	"github.com/stateful/storyblocks/pkg/document/editor"
	"github.com/stateful/storyblocks/pkg/document/render"
)

type Mode string

const (
	ModeDesktop Mode = "desktop"
	ModeMobile  Mode = "mobile"
)

func (m Mode) Valid() bool {
	return m == ModeDesktop || m == ModeMobile
}

// MobileClass is appended to the container class of mobile previews.
const MobileClass = "mobile-preview"

var ErrNoSaver = errors.New("session has no saver")

// Saver persists articles.
type Saver interface {
	Save(ctx context.Context, article *document.Article) error
}

// Session is a single authoring session on one document. It turns host
// UI events into edits and keeps the preview and focus in step with
// them. Sessions are safe for concurrent use.
type Session struct {
	ID string

	mu        sync.Mutex
	editor    *editor.Editor
	drag      editor.DragTracker
	mode      Mode
	renderers map[Mode]*render.Renderer
	focus     *FocusScheduler
	focuser   Focuser
	saver     Saver
	logger    *zap.Logger
}

type sessionFactory struct {
	doc            *document.Document
	mode           Mode
	focusDelay     time.Duration
	focuser        Focuser
	saver          Saver
	containerClass string
	cacheSize      int
	newID          func() string
	logger         *zap.Logger
}

type SessionOption func(*sessionFactory) *sessionFactory

func WithDocument(doc *document.Document) SessionOption {
	return func(f *sessionFactory) *sessionFactory {
		f.doc = doc
		return f
	}
}

func WithMode(mode Mode) SessionOption {
	return func(f *sessionFactory) *sessionFactory {
		f.mode = mode
		return f
	}
}

func WithFocusDelay(delay time.Duration) SessionOption {
	return func(f *sessionFactory) *sessionFactory {
		f.focusDelay = delay
		return f
	}
}

func WithFocuser(focuser Focuser) SessionOption {
	return func(f *sessionFactory) *sessionFactory {
		f.focuser = focuser
		return f
	}
}

func WithSaver(saver Saver) SessionOption {
	return func(f *sessionFactory) *sessionFactory {
		f.saver = saver
		return f
	}
}

// WithRender configures the preview. An empty container class keeps
// the default one.
func WithRender(containerClass string, cacheSize int) SessionOption {
	return func(f *sessionFactory) *sessionFactory {
		f.containerClass = containerClass
		f.cacheSize = cacheSize
		return f
	}
}

// WithIDGenerator replaces the generator of block ids.
func WithIDGenerator(gen func() string) SessionOption {
	return func(f *sessionFactory) *sessionFactory {
		f.newID = gen
		return f
	}
}

func WithLogger(logger *zap.Logger) SessionOption {
	return func(f *sessionFactory) *sessionFactory {
		f.logger = logger
		return f
	}
}

func New(opts ...SessionOption) *Session {
	f := &sessionFactory{
		mode:           ModeDesktop,
		focusDelay:     DefaultFocusDelay,
		containerClass: render.ContainerClass,
		cacheSize:      64,
		logger:         zap.NewNop(),
	}

	for _, opt := range opts {
		f = opt(f)
	}

	if !f.mode.Valid() {
		f.mode = ModeDesktop
	}
	if f.containerClass == "" {
		f.containerClass = render.ContainerClass
	}

	id := uuid.NewString()
	logger := f.logger.With(zap.String("session", id))

	editorOpts := []editor.Option{editor.WithLogger(logger)}
	if f.doc != nil {
		editorOpts = append(editorOpts, editor.WithDocument(f.doc))
	}
	if f.newID != nil {
		editorOpts = append(editorOpts, editor.WithIDGenerator(f.newID))
	}

	s := &Session{
		ID:     id,
		editor: editor.New(editorOpts...),
		mode:   f.mode,
		renderers: map[Mode]*render.Renderer{
			ModeDesktop: render.NewRenderer(render.Options{ContainerClass: f.containerClass}, f.cacheSize, logger),
			ModeMobile:  render.NewRenderer(render.Options{ContainerClass: f.containerClass + " " + MobileClass}, f.cacheSize, logger),
		},
		focuser: f.focuser,
		saver:   f.saver,
		logger:  logger,
	}
	s.focus = NewFocusScheduler(f.focusDelay, s.applyFocus)

	return s
}

// Handle applies ev. Events that do not resolve to anything are
// ignored; the only error is an AddBlock of an unknown kind.
func (s *Session) Handle(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("handling event", zap.String("event", ev.name()))

	switch ev := ev.(type) {
	case DragStart:
		s.drag.Start(ev.ID)
	case DragOver:
		s.drag.Over(ev.OverID)
	case DragCancel:
		s.drag.Cancel()
	case DragEnd:
		cmd, ok := s.drag.End(ev.OverID)
		if !ok {
			return nil
		}
		if req, ok := s.editor.ApplyReorderCommand(cmd); ok {
			s.focus.Schedule(req)
		}
	case AddBlock:
		_, req, err := s.editor.AddBlock(ev.Kind, ev.Initial)
		if err != nil {
			return errors.Wrapf(err, "failed to add %q block", ev.Kind)
		}
		s.focus.Schedule(req)
	case UpdateBlock:
		s.editor.UpdateBlock(ev.ID, ev.Update)
	case DeleteBlock:
		s.editor.DeleteBlock(ev.ID)
	case AddListItem:
		req, ok := s.editor.AddListItem(ev.BlockID, ev.After)
		if !ok {
			return nil
		}
		s.focus.Adjust(func(r editor.FocusRequest) (editor.FocusRequest, bool) {
			return r.ListItemInserted(ev.BlockID, req.ListItem), true
		})
		s.focus.Schedule(req)
	case UpdateListItem:
		s.editor.UpdateListItem(ev.BlockID, ev.Index, ev.Text)
	case StyleListItem:
		s.editor.StyleListItem(ev.BlockID, ev.Index, ev.Style)
	case RemoveListItem:
		n := s.listLen(ev.BlockID)
		req, ok := s.editor.RemoveListItem(ev.BlockID, ev.Index)
		if !ok {
			return nil
		}
		// The last item is cleared rather than removed.
		if n > 1 {
			s.focus.Adjust(func(r editor.FocusRequest) (editor.FocusRequest, bool) {
				return r.ListItemRemoved(ev.BlockID, ev.Index)
			})
		}
		s.focus.Schedule(req)
	case AddCarouselImage:
		s.editor.AddCarouselImage(ev.BlockID, ev.URL, ev.Alt)
	case RemoveCarouselImage:
		s.editor.RemoveCarouselImage(ev.BlockID, ev.ImageID)
	case SetMode:
		if ev.Mode.Valid() {
			s.mode = ev.Mode
		}
	case Select:
		s.editor.Select(ev.ID)
	case Deselect:
		s.editor.Deselect()
	}

	return nil
}

func (s *Session) listLen(id string) int {
	b, ok := s.editor.Document().Get(id)
	if !ok {
		return 0
	}
	if l, ok := b.(*document.List); ok {
		return len(l.Items)
	}
	return 0
}

// applyFocus claims p under the session lock, so list edits handled
// before it already adjusted its request. The focuser gets a copy of
// the block and runs without the lock.
func (s *Session) applyFocus(p *PendingFocus) {
	s.mu.Lock()
	req, ok := s.focus.Take(p)
	if !ok {
		s.mu.Unlock()
		return
	}
	target, ok := editor.Resolve(s.editor.Document(), req)
	if ok {
		target.Block = target.Block.Clone()
	}
	s.mu.Unlock()

	if !ok {
		s.logger.Debug("focus target is gone", zap.String("id", req.BlockID), zap.Int("item", req.ListItem))
		return
	}
	if s.focuser != nil {
		s.focuser.Focus(target)
	}
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Document returns a copy of the edited document.
func (s *Session) Document() *document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Document().Clone()
}

func (s *Session) Selected() (document.Block, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.editor.Selected()
	if !ok {
		return nil, false
	}
	return b.Clone(), true
}

// Preview renders the document as it is published in the current mode.
func (s *Session) Preview() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderers[s.mode].Render(s.editor.Document())
}

// Save publishes the document under title. The session id is the
// article id, so saving again updates the same article.
func (s *Session) Save(ctx context.Context, title string) (*document.Article, error) {
	if s.saver == nil {
		return nil, ErrNoSaver
	}

	s.mu.Lock()
	doc := s.editor.Document().Clone()
	markup := s.renderers[ModeDesktop].Render(doc)
	s.mu.Unlock()

	if err := doc.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid document")
	}

	article := &document.Article{
		ID:       s.ID,
		Title:    title,
		Document: doc,
		Markup:   markup,
	}
	if err := s.saver.Save(ctx, article); err != nil {
		s.logger.Error("failed to save article", zap.Error(err))
		return nil, errors.WithMessage(err, "failed to save article")
	}

	s.logger.Info("saved article", zap.String("title", title), zap.Int("blocks", doc.Len()))

	return article, nil
}

// Close drops pending focus requests.
func (s *Session) Close() {
	s.focus.Stop()
}
