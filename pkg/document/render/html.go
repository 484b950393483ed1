package render

import (
	"html"
	"strconv"
	"strings"

	"github.com/stateful/storyblocks/pkg/document"
)

type Options struct {
	// ContainerClass overrides the class of the wrapping element.
	ContainerClass string
}

// Serialize renders blocks as article markup. The output depends only on
// the input, so equal documents always produce byte-identical strings.
func Serialize(blocks []document.Block) string {
	return SerializeWith(blocks, Options{})
}

func SerializeWith(blocks []document.Block, opts Options) string {
	container := opts.ContainerClass
	if container == "" {
		container = ContainerClass
	}

	segments := make([]string, 0, len(blocks))
	for _, b := range blocks {
		segments = append(segments, Block(b))
	}

	var sb strings.Builder
	sb.WriteString(`<div class="`)
	sb.WriteString(html.EscapeString(container))
	sb.WriteString(`">`)
	sb.WriteByte('\n')
	sb.WriteString(strings.Join(segments, "\n"))
	sb.WriteByte('\n')
	sb.WriteString(`</div>`)
	return sb.String()
}

// Block renders a single block. Unknown blocks render as "".
func Block(b document.Block) string {
	switch b := b.(type) {
	case *document.Heading:
		return heading(b)
	case *document.Paragraph:
		return element("p", classes(alignClass(b.Align), styleClasses(b.TextStyle)...), b.Content)
	case *document.Image:
		return image(b)
	case *document.Carousel:
		return carousel(b)
	case *document.List:
		return list(b)
	default:
		return ""
	}
}

func heading(b *document.Heading) string {
	level := document.ClampLevel(b.Level)
	tag := "h" + strconv.Itoa(level)
	return element(tag, classes(headingClasses[level], append([]string{alignClass(b.Align)}, styleClasses(b.TextStyle)...)...), b.Content)
}

func image(b *document.Image) string {
	var sb strings.Builder
	openWrapper(&sb, "image-block", b.Size, b.Align)

	if b.URL == "" {
		placeholder(&sb)
	} else {
		img(&sb, b.URL, b.Alt)
		caption(&sb, b.Content, b.TextStyle)
	}

	sb.WriteString("</div>")
	return sb.String()
}

func carousel(b *document.Carousel) string {
	var sb strings.Builder
	openWrapper(&sb, "carousel-block", b.Size, b.Align)

	n := 0
	for _, i := range b.Images {
		if i.URL == "" {
			continue
		}
		img(&sb, i.URL, i.Alt)
		n++
	}
	if n == 0 {
		placeholder(&sb)
	} else {
		caption(&sb, b.Content, b.TextStyle)
	}

	sb.WriteString("</div>")
	return sb.String()
}

func list(b *document.List) string {
	tag := "ul"
	if b.Style.Type == document.Numbered {
		tag = "ol"
	}

	listClass := listClasses[b.Style.Type]
	if listClass == "" {
		listClass = listClasses[document.Bulleted]
	}

	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(tag)
	writeClass(&sb, classes(listClass, append([]string{alignClass(b.Align)}, styleClasses(b.TextStyle)...)...))
	if b.Style.Icon != "" {
		sb.WriteString(` data-icon="`)
		sb.WriteString(html.EscapeString(b.Style.Icon))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')

	for _, item := range b.Items {
		sb.WriteString(element("li", classes("", styleClasses(item.Style)...), item.Text))
	}

	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
	return sb.String()
}

func openWrapper(sb *strings.Builder, base string, size document.ImageSize, align document.Align) {
	sb.WriteString("<div")
	writeClass(sb, classes(base, sizeClass(size), alignClass(align)))
	sb.WriteByte('>')
}

func img(sb *strings.Builder, url, alt string) {
	sb.WriteString(`<img src="`)
	sb.WriteString(html.EscapeString(url))
	sb.WriteString(`" alt="`)
	sb.WriteString(html.EscapeString(alt))
	sb.WriteString(`">`)
}

func caption(sb *strings.Builder, text string, style document.TextStyle) {
	if text == "" {
		return
	}
	sb.WriteString(element("figcaption", classes("image-caption", styleClasses(style)...), text))
}

func placeholder(sb *strings.Builder) {
	sb.WriteString(`<div class="image-placeholder">`)
	sb.WriteString(placeholderText)
	sb.WriteString(`</div>`)
}

// element writes content verbatim; sanitizing rich text happens upstream.
func element(tag, class, content string) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(tag)
	writeClass(&sb, class)
	sb.WriteByte('>')
	sb.WriteString(content)
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
	return sb.String()
}

func writeClass(sb *strings.Builder, class string) {
	if class == "" {
		return
	}
	sb.WriteString(` class="`)
	sb.WriteString(class)
	sb.WriteByte('"')
}

func classes(first string, rest ...string) string {
	parts := make([]string, 0, len(rest)+1)
	if first != "" {
		parts = append(parts, first)
	}
	for _, c := range rest {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
