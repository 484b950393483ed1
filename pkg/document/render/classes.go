package render

import (
	"github.com/stateful/storyblocks/pkg/document"
)

const ContainerClass = "article-content"

const placeholderText = "Image not available"

var alignClasses = map[document.Align]string{
	document.AlignLeft:   "text-left",
	document.AlignCenter: "text-center",
	document.AlignRight:  "text-right",
}

var headingClasses = map[int]string{
	1: "text-3xl",
	2: "text-2xl",
	3: "text-xl",
}

var sizeClasses = map[document.ImageSize]string{
	document.SizeSmall:  "w-1/4",
	document.SizeMedium: "w-1/2",
	document.SizeLarge:  "w-3/4",
	document.SizeFull:   "w-full",
}

var listClasses = map[document.ListType]string{
	document.Bulleted: "list-disc",
	document.Numbered: "list-decimal",
}

func alignClass(a document.Align) string {
	if c, ok := alignClasses[a]; ok {
		return c
	}
	return alignClasses[document.AlignLeft]
}

func sizeClass(s document.ImageSize) string {
	if c, ok := sizeClasses[s]; ok {
		return c
	}
	return sizeClasses[document.SizeMedium]
}

// styleClasses always emits bold, italic, underline in this order.
func styleClasses(s document.TextStyle) []string {
	var result []string
	if s.Bold {
		result = append(result, "font-bold")
	}
	if s.Italic {
		result = append(result, "italic")
	}
	if s.Underline {
		result = append(result, "underline")
	}
	return result
}
