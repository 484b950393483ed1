package editor

import (
	"strings"

	"github.com/stateful/storyblocks/pkg/document"
)

const templatePrefix = "template:"

// Template is a palette entry the user can drag into a document.
type Template struct {
	Name    string
	Kind    document.Kind
	Label   string
	Initial *Update
}

// ID is the drag id of the template.
func (t Template) ID() string {
	return templatePrefix + t.Name
}

func level(n int) *Update {
	return &Update{Level: &n}
}

func listOf(t document.ListType) *Update {
	return &Update{ListStyle: &document.ListStyle{Type: t}}
}

// Palette is the fixed set of block templates offered by the toolbar.
var Palette = []Template{
	{Name: "heading-1", Kind: document.HeadingKind, Label: "Heading 1", Initial: level(1)},
	{Name: "heading-2", Kind: document.HeadingKind, Label: "Heading 2", Initial: level(2)},
	{Name: "heading-3", Kind: document.HeadingKind, Label: "Heading 3", Initial: level(3)},
	{Name: "paragraph", Kind: document.ParagraphKind, Label: "Paragraph"},
	{Name: "image", Kind: document.ImageKind, Label: "Image"},
	{Name: "carousel", Kind: document.CarouselKind, Label: "Carousel"},
	{Name: "bulleted-list", Kind: document.ListKind, Label: "Bulleted list", Initial: listOf(document.Bulleted)},
	{Name: "numbered-list", Kind: document.ListKind, Label: "Numbered list", Initial: listOf(document.Numbered)},
}

// LookupTemplate resolves a drag id to a palette template.
func LookupTemplate(dragID string) (Template, bool) {
	name, ok := strings.CutPrefix(dragID, templatePrefix)
	if !ok {
		return Template{}, false
	}
	for _, t := range Palette {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// DragTracker turns the drag lifecycle reported by the host UI into
// reorder commands.
type DragTracker struct {
	activeID string
	overID   string
}

func (d *DragTracker) Start(activeID string) {
	d.activeID = activeID
	d.overID = ""
}

// Over records the current hover target. It never mutates anything.
func (d *DragTracker) Over(overID string) {
	if d.activeID != "" {
		d.overID = overID
	}
}

func (d *DragTracker) Cancel() {
	d.activeID = ""
	d.overID = ""
}

func (d *DragTracker) Active() string { return d.activeID }
func (d *DragTracker) Hover() string  { return d.overID }

// End finishes the drag. With no drop target, or when the active id is
// an unknown template, there is no command.
func (d *DragTracker) End(overID string) (Command, bool) {
	activeID := d.activeID
	d.Cancel()

	if activeID == "" || overID == "" {
		return nil, false
	}

	if strings.HasPrefix(activeID, templatePrefix) {
		t, ok := LookupTemplate(activeID)
		if !ok {
			return nil, false
		}
		return InsertCommand{Kind: t.Kind, Initial: t.Initial, AfterID: overID}, true
	}

	return MoveCommand{SourceID: activeID, TargetID: overID}, true
}
