package session

import (
	"github.com/stateful/storyblocks/pkg/document"
	"github.com/stateful/storyblocks/pkg/document/editor"
)

// Event is a gesture or edit reported by the host UI.
type Event interface {
	name() string
}

// DragStart begins dragging a block or a palette template.
type DragStart struct {
	ID string
}

type DragOver struct {
	OverID string
}

// DragEnd drops the dragged item on OverID. An empty OverID means the
// drop landed outside any target.
type DragEnd struct {
	OverID string
}

type DragCancel struct{}

type AddBlock struct {
	Kind    document.Kind
	Initial *editor.Update
}

type UpdateBlock struct {
	ID     string
	Update editor.Update
}

type DeleteBlock struct {
	ID string
}

type AddListItem struct {
	BlockID string
	After   int
}

// UpdateListItem replaces the text of one list item.
type UpdateListItem struct {
	BlockID string
	Index   int
	Text    string
}

type StyleListItem struct {
	BlockID string
	Index   int
	Style   document.StylePatch
}

type RemoveListItem struct {
	BlockID string
	Index   int
}

type AddCarouselImage struct {
	BlockID string
	URL     string
	Alt     string
}

type RemoveCarouselImage struct {
	BlockID string
	ImageID string
}

type SetMode struct {
	Mode Mode
}

// Select makes a block the one being edited.
type Select struct {
	ID string
}

type Deselect struct{}

func (DragStart) name() string   { return "drag_start" }
func (DragOver) name() string    { return "drag_over" }
func (DragEnd) name() string     { return "drag_end" }
func (DragCancel) name() string  { return "drag_cancel" }
func (AddBlock) name() string    { return "add_block" }
func (UpdateBlock) name() string { return "update_block" }
func (DeleteBlock) name() string { return "delete_block" }
func (AddListItem) name() string { return "add_list_item" }
func (SetMode) name() string     { return "set_mode" }
func (Select) name() string      { return "select" }
func (Deselect) name() string    { return "deselect" }

func (UpdateListItem) name() string      { return "update_list_item" }
func (StyleListItem) name() string       { return "style_list_item" }
func (RemoveListItem) name() string      { return "remove_list_item" }
func (AddCarouselImage) name() string    { return "add_carousel_image" }
func (RemoveCarouselImage) name() string { return "remove_carousel_image" }
