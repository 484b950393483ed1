package document

import (
	"encoding/json"
	"slices"

	"github.com/pkg/errors"
)

type Kind string

const (
	HeadingKind   Kind = "heading"
	ParagraphKind Kind = "paragraph"
	ImageKind     Kind = "image"
	CarouselKind  Kind = "carousel"
	ListKind      Kind = "list"
)

// Kinds lists the block kinds a document can be authored with, in palette order.
var Kinds = []Kind{HeadingKind, ParagraphKind, ImageKind, CarouselKind, ListKind}

func (k Kind) Valid() bool {
	return slices.Contains(Kinds, k)
}

var ErrUnknownKind = errors.New("unknown block kind")

const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 3
)

// Block is a single content node of a document. The concrete type
// determines which fields exist; see Heading, Paragraph, Image,
// Carousel, List and Unknown.
type Block interface {
	ID() string
	Kind() Kind
	Common() *Attrs
	Clone() Block
}

// Attrs are shared by all block kinds.
type Attrs struct {
	BlockID   string    `json:"id"`
	Align     Align     `json:"align,omitempty"`
	TextStyle TextStyle `json:"textStyle"`
}

func (a *Attrs) ID() string     { return a.BlockID }
func (a *Attrs) Common() *Attrs { return a }

type Heading struct {
	Attrs
	Content string `json:"content"`
	Level   int    `json:"level"`
}

var _ Block = (*Heading)(nil)

func (*Heading) Kind() Kind { return HeadingKind }

func (b *Heading) Clone() Block {
	clone := *b
	return &clone
}

type Paragraph struct {
	Attrs
	Content string `json:"content"`
}

var _ Block = (*Paragraph)(nil)

func (*Paragraph) Kind() Kind { return ParagraphKind }

func (b *Paragraph) Clone() Block {
	clone := *b
	return &clone
}

// Image holds a URL populated by an external uploader.
// Content is the caption.
type Image struct {
	Attrs
	Content string    `json:"content"`
	URL     string    `json:"url,omitempty"`
	Alt     string    `json:"alt,omitempty"`
	Size    ImageSize `json:"imageSize,omitempty"`
}

var _ Block = (*Image)(nil)

func (*Image) Kind() Kind { return ImageKind }

func (b *Image) Clone() Block {
	clone := *b
	return &clone
}

type CarouselImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type Carousel struct {
	Attrs
	Content string          `json:"content"`
	Images  []CarouselImage `json:"images"`
	Size    ImageSize       `json:"imageSize,omitempty"`
}

var _ Block = (*Carousel)(nil)

func (*Carousel) Kind() Kind { return CarouselKind }

func (b *Carousel) Clone() Block {
	clone := *b
	clone.Images = slices.Clone(b.Images)
	return &clone
}

// List always has at least one item.
type List struct {
	Attrs
	Items []ListItem `json:"listItems"`
	Style ListStyle  `json:"listStyle"`
}

var _ Block = (*List)(nil)

func (*List) Kind() Kind { return ListKind }

func (b *List) Clone() Block {
	clone := *b
	clone.Items = slices.Clone(b.Items)
	return &clone
}

// Unknown keeps a block of an unrecognized type that came from
// decoding. It renders to nothing but survives a round trip.
type Unknown struct {
	Attrs
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

var _ Block = (*Unknown)(nil)

func (*Unknown) Kind() Kind { return "" }

func (b *Unknown) Clone() Block {
	clone := *b
	clone.Raw = slices.Clone(b.Raw)
	return &clone
}

// New creates a block of the given kind with its defaults applied.
func New(kind Kind, id string) (Block, error) {
	attrs := Attrs{BlockID: id, Align: AlignLeft}

	switch kind {
	case HeadingKind:
		attrs.TextStyle.Bold = true
		return &Heading{Attrs: attrs, Level: MinHeadingLevel}, nil
	case ParagraphKind:
		return &Paragraph{Attrs: attrs}, nil
	case ImageKind:
		return &Image{Attrs: attrs, Size: SizeMedium}, nil
	case CarouselKind:
		return &Carousel{Attrs: attrs, Images: []CarouselImage{}, Size: SizeMedium}, nil
	case ListKind:
		return &List{
			Attrs: attrs,
			Items: []ListItem{{}},
			Style: ListStyle{Type: Bulleted},
		}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
}

// ClampLevel returns level limited to the supported heading levels.
func ClampLevel(level int) int {
	return min(max(level, MinHeadingLevel), MaxHeadingLevel)
}
