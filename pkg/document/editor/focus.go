package editor

import (
	"github.com/stateful/storyblocks/pkg/document"
)

// PrimaryRegion addresses the main editable area of a block rather
// than one of its list items.
const PrimaryRegion = -1

// FocusRequest asks the shell to move input focus once the layout
// has settled after a structural edit.
type FocusRequest struct {
	BlockID  string
	ListItem int
}

func focusBlock(id string) FocusRequest {
	return FocusRequest{BlockID: id, ListItem: PrimaryRegion}
}

func focusListItem(id string, item int) FocusRequest {
	return FocusRequest{BlockID: id, ListItem: item}
}

func (r FocusRequest) IsZero() bool { return r.BlockID == "" }

// ListItemInserted keeps r on its item after an item was inserted at
// index of the list blockID.
func (r FocusRequest) ListItemInserted(blockID string, index int) FocusRequest {
	if r.BlockID == blockID && r.ListItem != PrimaryRegion && r.ListItem >= index {
		r.ListItem++
	}
	return r
}

// ListItemRemoved keeps r on its item after the item at index of the
// list blockID was removed. It fails when r pointed at the removed item.
func (r FocusRequest) ListItemRemoved(blockID string, index int) (FocusRequest, bool) {
	if r.BlockID != blockID || r.ListItem == PrimaryRegion {
		return r, true
	}
	switch {
	case r.ListItem == index:
		return FocusRequest{}, false
	case r.ListItem > index:
		r.ListItem--
	}
	return r, true
}

// FocusTarget is a resolved focus request.
type FocusTarget struct {
	Index    int
	Block    document.Block
	ListItem int
}

// FocusTracker remembers which block, and for lists which item, the
// last structural edit touched.
type FocusTracker struct {
	currentBlockIndex    int
	currentListItemIndex int
}

func newFocusTracker() *FocusTracker {
	return &FocusTracker{currentBlockIndex: -1, currentListItemIndex: PrimaryRegion}
}

func (t *FocusTracker) CurrentBlockIndex() int    { return t.currentBlockIndex }
func (t *FocusTracker) CurrentListItemIndex() int { return t.currentListItemIndex }

func (t *FocusTracker) track(doc *document.Document, req FocusRequest) {
	t.currentBlockIndex = doc.Index(req.BlockID)
	t.currentListItemIndex = req.ListItem
}

// removed keeps the tracker on the same block after the block at idx
// was deleted.
func (t *FocusTracker) removed(idx int) {
	switch {
	case idx < t.currentBlockIndex:
		t.currentBlockIndex--
	case idx == t.currentBlockIndex:
		t.reset()
	}
}

func (t *FocusTracker) reset() {
	t.currentBlockIndex = -1
	t.currentListItemIndex = PrimaryRegion
}

// Resolve maps req onto doc. It fails when the block, or the list item,
// no longer exists; callers skip the request in that case.
func Resolve(doc *document.Document, req FocusRequest) (FocusTarget, bool) {
	idx := doc.Index(req.BlockID)
	if idx < 0 {
		return FocusTarget{}, false
	}

	block := doc.At(idx)
	target := FocusTarget{Index: idx, Block: block, ListItem: PrimaryRegion}

	if req.ListItem == PrimaryRegion {
		return target, true
	}

	list, ok := block.(*document.List)
	if !ok || req.ListItem < 0 || req.ListItem >= len(list.Items) {
		return FocusTarget{}, false
	}
	target.ListItem = req.ListItem
	return target, true
}
