package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/stateful/storyblocks/internal/ulid"
	"github.com/stateful/storyblocks/pkg/document"
)

type Option func(*importer)

// WithIDGenerator replaces the generator of block ids.
func WithIDGenerator(gen func() string) Option {
	return func(i *importer) {
		i.newID = gen
	}
}

type importer struct {
	parser parser.Parser
	newID  func() string
	source []byte
}

// Import converts markdown into a block document. Only top level
// nodes become blocks; constructs without a block equivalent are
// flattened to paragraphs.
func Import(source []byte, opts ...Option) *document.Document {
	i := &importer{
		parser: goldmark.DefaultParser(),
		newID:  ulid.GenerateID,
		source: source,
	}
	for _, opt := range opts {
		opt(i)
	}

	root := i.parser.Parse(text.NewReader(source))

	doc := document.NewDocument()
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		if b := i.block(node); b != nil {
			doc.Append(b)
		}
	}
	return doc
}

func (i *importer) newBlock(kind document.Kind) document.Block {
	// Kinds below are all known, New cannot fail.
	b, _ := document.New(kind, i.newID())
	return b
}

func (i *importer) block(node ast.Node) document.Block {
	switch n := node.(type) {
	case *ast.Heading:
		b := i.newBlock(document.HeadingKind).(*document.Heading)
		b.Level = document.ClampLevel(n.Level)
		b.Content = i.inline(n)
		return b

	case *ast.Paragraph:
		if images := i.paragraphImages(n); len(images) == 1 {
			img := images[0]
			b := i.newBlock(document.ImageKind).(*document.Image)
			b.URL = string(img.Destination)
			b.Alt = i.inline(img)
			b.Content = string(img.Title)
			return b
		} else if len(images) > 1 {
			b := i.newBlock(document.CarouselKind).(*document.Carousel)
			for _, img := range images {
				b.Images = append(b.Images, document.CarouselImage{
					ID:  i.newID(),
					URL: string(img.Destination),
					Alt: i.inline(img),
				})
			}
			return b
		}

		b := i.newBlock(document.ParagraphKind).(*document.Paragraph)
		b.Content, b.TextStyle = i.styledInline(n)
		return b

	case *ast.List:
		b := i.newBlock(document.ListKind).(*document.List)
		if n.IsOrdered() {
			b.Style.Type = document.Numbered
		}
		b.Items = b.Items[:0]
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			text, style := i.listItem(item)
			b.Items = append(b.Items, document.ListItem{Text: text, Style: style})
		}
		if len(b.Items) == 0 {
			b.Items = []document.ListItem{{}}
		}
		return b

	case *ast.ThematicBreak, *ast.HTMLBlock, *ast.LinkReferenceDefinition:
		return nil

	default:
		content := strings.TrimSpace(i.lines(node))
		if content == "" {
			content = i.inline(node)
		}
		if content == "" {
			return nil
		}
		b := i.newBlock(document.ParagraphKind).(*document.Paragraph)
		b.Content = content
		return b
	}
}

// paragraphImages returns the images of a paragraph made of images only.
func (i *importer) paragraphImages(p *ast.Paragraph) []*ast.Image {
	var images []*ast.Image
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Image:
			images = append(images, c)
		case *ast.Text:
			if len(bytes.TrimSpace(c.Segment.Value(i.source))) > 0 {
				return nil
			}
		default:
			return nil
		}
	}
	return images
}

func (i *importer) listItem(item ast.Node) (string, document.TextStyle) {
	var (
		parts []string
		style document.TextStyle
	)
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		text, s := i.styledInline(c)
		if text == "" {
			continue
		}
		if len(parts) == 0 {
			style = s
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " "), style
}

// styledInline lifts emphasis that wraps the whole node into a style.
func (i *importer) styledInline(node ast.Node) (string, document.TextStyle) {
	var style document.TextStyle

	inner := node
	for inner.ChildCount() == 1 {
		em, ok := inner.FirstChild().(*ast.Emphasis)
		if !ok {
			break
		}
		if em.Level >= 2 {
			style.Bold = true
		} else {
			style.Italic = true
		}
		inner = em
	}

	return i.inline(inner), style
}

func (i *importer) inline(node ast.Node) string {
	var buf bytes.Buffer
	i.writeInline(&buf, node)
	return strings.TrimSpace(buf.String())
}

func (i *importer) writeInline(buf *bytes.Buffer, node ast.Node) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(i.source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(c.Value)
		case *ast.AutoLink:
			buf.Write(c.URL(i.source))
		case *ast.RawHTML:
			for j := 0; j < c.Segments.Len(); j++ {
				segment := c.Segments.At(j)
				buf.Write(segment.Value(i.source))
			}
		default:
			i.writeInline(buf, c)
		}
	}
}

func (i *importer) lines(node ast.Node) string {
	if node.Type() != ast.TypeBlock {
		return ""
	}
	var buf bytes.Buffer
	lines := node.Lines()
	for j := 0; j < lines.Len(); j++ {
		segment := lines.At(j)
		buf.Write(segment.Value(i.source))
	}
	return buf.String()
}
