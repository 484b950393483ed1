package document

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

func (a Align) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}

// OrDefault returns a, or AlignLeft when a is empty.
func (a Align) OrDefault() Align {
	if a == "" {
		return AlignLeft
	}
	return a
}

type ImageSize string

const (
	SizeSmall  ImageSize = "small"
	SizeMedium ImageSize = "medium"
	SizeLarge  ImageSize = "large"
	SizeFull   ImageSize = "full"
)

func (s ImageSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeFull:
		return true
	}
	return false
}

type TextStyle struct {
	Bold      bool `json:"bold"`
	Italic    bool `json:"italic"`
	Underline bool `json:"underline"`
}

// StylePatch is a partial TextStyle. Nil flags are left untouched.
type StylePatch struct {
	Bold      *bool `json:"bold,omitempty"`
	Italic    *bool `json:"italic,omitempty"`
	Underline *bool `json:"underline,omitempty"`
}

// Merge applies the non-nil flags of p on top of s.
func (s TextStyle) Merge(p StylePatch) TextStyle {
	if p.Bold != nil {
		s.Bold = *p.Bold
	}
	if p.Italic != nil {
		s.Italic = *p.Italic
	}
	if p.Underline != nil {
		s.Underline = *p.Underline
	}
	return s
}

type ListType string

const (
	Bulleted ListType = "bulleted"
	Numbered ListType = "numbered"
)

type ListStyle struct {
	Type ListType `json:"type"`
	Icon string   `json:"icon,omitempty"`
}

// ListItem is one entry of a List. Items carry their own style.
type ListItem struct {
	Text  string    `json:"text" yaml:"text"`
	Style TextStyle `json:"textStyle" yaml:"textStyle"`
}
