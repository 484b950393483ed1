package markdown

import (
	"strconv"
	"strings"

	"github.com/stateful/storyblocks/pkg/document"
)

// Export writes blocks as markdown, one block per paragraph. Underline
// has no markdown syntax and is written as inline HTML.
func Export(blocks []document.Block) string {
	var parts []string
	for _, b := range blocks {
		if s := exportBlock(b); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func exportBlock(b document.Block) string {
	switch b := b.(type) {
	case *document.Heading:
		return strings.Repeat("#", document.ClampLevel(b.Level)) + " " + b.Content
	case *document.Paragraph:
		return styled(b.Content, b.TextStyle)
	case *document.Image:
		if b.URL == "" {
			return ""
		}
		return image(b.URL, b.Alt, b.Content)
	case *document.Carousel:
		var images []string
		for _, img := range b.Images {
			if img.URL != "" {
				images = append(images, image(img.URL, img.Alt, ""))
			}
		}
		return strings.Join(images, "\n")
	case *document.List:
		lines := make([]string, 0, len(b.Items))
		for i, item := range b.Items {
			marker := "-"
			if b.Style.Type == document.Numbered {
				marker = strconv.Itoa(i+1) + "."
			}
			lines = append(lines, marker+" "+styled(item.Text, item.Style))
		}
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}

func image(url, alt, title string) string {
	var sb strings.Builder
	sb.WriteString("![")
	sb.WriteString(alt)
	sb.WriteString("](")
	sb.WriteString(url)
	if title != "" {
		sb.WriteString(` "`)
		sb.WriteString(strings.ReplaceAll(title, `"`, `\"`))
		sb.WriteByte('"')
	}
	sb.WriteByte(')')
	return sb.String()
}

func styled(text string, s document.TextStyle) string {
	if text == "" {
		return text
	}
	if s.Underline {
		text = "<u>" + text + "</u>"
	}
	if s.Italic {
		text = "_" + text + "_"
	}
	if s.Bold {
		text = "**" + text + "**"
	}
	return text
}
