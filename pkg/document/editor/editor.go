package editor

import (
	"go.uber.org/zap"

	"github.com/stateful/storyblocks/internal/ulid"
	"github.com/stateful/storyblocks/pkg/document"
)

// Update is a partial change to a block. Nil fields are left untouched
// and fields that do not apply to the block's kind are ignored.
type Update struct {
	Content   *string              `json:"content,omitempty" yaml:"content,omitempty"`
	Level     *int                 `json:"level,omitempty" yaml:"level,omitempty"`
	URL       *string              `json:"url,omitempty" yaml:"url,omitempty"`
	Alt       *string              `json:"alt,omitempty" yaml:"alt,omitempty"`
	Align     *document.Align      `json:"align,omitempty" yaml:"align,omitempty"`
	Size      *document.ImageSize  `json:"imageSize,omitempty" yaml:"imageSize,omitempty"`
	ListStyle *document.ListStyle  `json:"listStyle,omitempty" yaml:"listStyle,omitempty"`
	TextStyle *document.StylePatch `json:"textStyle,omitempty" yaml:"textStyle,omitempty"`

	// Items and Images replace the whole sequence.
	Items  []document.ListItem      `json:"listItems,omitempty" yaml:"listItems,omitempty"`
	Images []document.CarouselImage `json:"images,omitempty" yaml:"images,omitempty"`

	// Deselect clears the selection whichever block is targeted.
	Deselect bool `json:"deselect,omitempty" yaml:"deselect,omitempty"`
}

// Editor applies structural and content edits to a document while
// keeping its invariants. It is not safe for concurrent use.
type Editor struct {
	doc      *document.Document
	selected string
	focus    *FocusTracker
	newID    func() string
	logger   *zap.Logger
}

type Option func(*Editor)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithDocument makes the editor operate on an existing document.
func WithDocument(doc *document.Document) Option {
	return func(e *Editor) {
		e.doc = doc
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(e *Editor) {
		e.newID = gen
	}
}

func New(opts ...Option) *Editor {
	e := &Editor{
		focus: newFocusTracker(),
		newID: ulid.GenerateID,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.doc == nil {
		e.doc = document.NewDocument()
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}

	return e
}

func (e *Editor) Document() *document.Document { return e.doc }

func (e *Editor) Blocks() []document.Block { return e.doc.Blocks() }

func (e *Editor) Focus() *FocusTracker { return e.focus }

// Selected returns the block currently selected for editing.
func (e *Editor) Selected() (document.Block, bool) {
	if e.selected == "" {
		return nil, false
	}
	return e.doc.Get(e.selected)
}

func (e *Editor) Select(id string) bool {
	if !e.doc.Contains(id) {
		return false
	}
	e.selected = id
	return true
}

func (e *Editor) Deselect() {
	e.selected = ""
}

// newBlock creates a block with a fresh id that is not in use yet.
func (e *Editor) newBlock(kind document.Kind, initial *Update) (document.Block, error) {
	id := e.newID()
	for e.doc.Contains(id) {
		id = e.newID()
	}

	b, err := document.New(kind, id)
	if err != nil {
		return nil, err
	}
	if initial != nil {
		applyUpdate(b, *initial)
	}
	return b, nil
}

// AddBlock appends a new block of the given kind, selects it and
// returns where focus should go.
func (e *Editor) AddBlock(kind document.Kind, initial *Update) (document.Block, FocusRequest, error) {
	b, err := e.newBlock(kind, initial)
	if err != nil {
		return nil, FocusRequest{}, err
	}

	e.doc.Append(b)
	req := e.created(b)

	e.logger.Debug("added block", zap.String("id", b.ID()), zap.String("kind", string(kind)))

	return b, req, nil
}

// insertAfter splices a new block right after the block at idx.
func (e *Editor) insertAfter(idx int, kind document.Kind, initial *Update) (document.Block, FocusRequest, error) {
	b, err := e.newBlock(kind, initial)
	if err != nil {
		return nil, FocusRequest{}, err
	}

	e.doc.Insert(idx+1, b)
	req := e.created(b)

	e.logger.Debug("inserted block", zap.String("id", b.ID()), zap.Int("index", idx+1))

	return b, req, nil
}

func (e *Editor) created(b document.Block) FocusRequest {
	e.selected = b.ID()

	req := focusBlock(b.ID())
	if _, ok := b.(*document.List); ok {
		req = focusListItem(b.ID(), 0)
	}
	e.focus.track(e.doc, req)
	return req
}

// UpdateBlock merges u into the block with the given id. A missing
// block is not an error: it was deleted while the edit was in flight.
func (e *Editor) UpdateBlock(id string, u Update) {
	if u.Deselect {
		e.selected = ""
	}

	b, ok := e.doc.Get(id)
	if !ok {
		e.logger.Debug("update of missing block ignored", zap.String("id", id))
		return
	}

	applyUpdate(b, u)
}

// DeleteBlock removes the block. Deleting a missing block is a no-op.
func (e *Editor) DeleteBlock(id string) {
	idx := e.doc.Index(id)
	if idx < 0 {
		return
	}
	e.doc.Remove(id)

	if e.selected == id {
		e.selected = ""
	}
	e.focus.removed(idx)

	e.logger.Debug("deleted block", zap.String("id", id))
}

// applyUpdate leaves unknown blocks alone: they are saved from their raw
// bytes, so any change would be lost.
func applyUpdate(b document.Block, u Update) {
	if _, ok := b.(*document.Unknown); ok {
		return
	}

	attrs := b.Common()
	if u.Align != nil && u.Align.Valid() {
		attrs.Align = *u.Align
	}
	if u.TextStyle != nil {
		attrs.TextStyle = attrs.TextStyle.Merge(*u.TextStyle)
	}

	switch b := b.(type) {
	case *document.Heading:
		setString(&b.Content, u.Content)
		if u.Level != nil {
			b.Level = document.ClampLevel(*u.Level)
		}
	case *document.Paragraph:
		setString(&b.Content, u.Content)
	case *document.Image:
		setString(&b.Content, u.Content)
		setString(&b.URL, u.URL)
		setString(&b.Alt, u.Alt)
		if u.Size != nil && u.Size.Valid() {
			b.Size = *u.Size
		}
	case *document.Carousel:
		setString(&b.Content, u.Content)
		if u.Images != nil {
			b.Images = append([]document.CarouselImage{}, u.Images...)
		}
		if u.Size != nil && u.Size.Valid() {
			b.Size = *u.Size
		}
	case *document.List:
		if u.Items != nil {
			b.Items = append([]document.ListItem{}, u.Items...)
			if len(b.Items) == 0 {
				b.Items = []document.ListItem{{}}
			}
		}
		if u.ListStyle != nil {
			style := *u.ListStyle
			if style.Type != document.Numbered {
				style.Type = document.Bulleted
			}
			b.Style = style
		}
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
