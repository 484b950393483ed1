package editor

import (
	"slices"

	"go.uber.org/zap"

	"github.com/stateful/storyblocks/pkg/document"
)

func (e *Editor) list(id string) (*document.List, bool) {
	b, ok := e.doc.Get(id)
	if !ok {
		return nil, false
	}
	l, ok := b.(*document.List)
	return l, ok
}

// AddListItem inserts an empty item after the item at index after and
// moves the list item focus onto it. An out of range index appends.
func (e *Editor) AddListItem(blockID string, after int) (FocusRequest, bool) {
	l, ok := e.list(blockID)
	if !ok {
		return FocusRequest{}, false
	}

	pos := after + 1
	if after < 0 || after >= len(l.Items) {
		pos = len(l.Items)
	}
	l.Items = slices.Insert(l.Items, pos, document.ListItem{})

	req := focusListItem(blockID, pos)
	e.focus.track(e.doc, req)

	e.logger.Debug("added list item", zap.String("id", blockID), zap.Int("item", pos))

	return req, true
}

func (e *Editor) UpdateListItem(blockID string, index int, text string) bool {
	l, ok := e.list(blockID)
	if !ok || index < 0 || index >= len(l.Items) {
		return false
	}
	l.Items[index].Text = text
	return true
}

func (e *Editor) StyleListItem(blockID string, index int, patch document.StylePatch) bool {
	l, ok := e.list(blockID)
	if !ok || index < 0 || index >= len(l.Items) {
		return false
	}
	l.Items[index].Style = l.Items[index].Style.Merge(patch)
	return true
}

// RemoveListItem deletes an item and focuses the one before it. The
// last remaining item is cleared instead of removed.
func (e *Editor) RemoveListItem(blockID string, index int) (FocusRequest, bool) {
	l, ok := e.list(blockID)
	if !ok || index < 0 || index >= len(l.Items) {
		return FocusRequest{}, false
	}

	if len(l.Items) == 1 {
		l.Items[0] = document.ListItem{}
		req := focusListItem(blockID, 0)
		e.focus.track(e.doc, req)
		return req, true
	}

	l.Items = slices.Delete(l.Items, index, index+1)

	req := focusListItem(blockID, max(index-1, 0))
	e.focus.track(e.doc, req)
	return req, true
}

func (e *Editor) AddCarouselImage(blockID, url, alt string) (document.CarouselImage, bool) {
	b, ok := e.doc.Get(blockID)
	if !ok {
		return document.CarouselImage{}, false
	}
	c, ok := b.(*document.Carousel)
	if !ok {
		return document.CarouselImage{}, false
	}

	img := document.CarouselImage{ID: e.newID(), URL: url, Alt: alt}
	c.Images = append(c.Images, img)
	return img, true
}

func (e *Editor) RemoveCarouselImage(blockID, imageID string) bool {
	b, ok := e.doc.Get(blockID)
	if !ok {
		return false
	}
	c, ok := b.(*document.Carousel)
	if !ok {
		return false
	}

	n := len(c.Images)
	c.Images = slices.DeleteFunc(c.Images, func(img document.CarouselImage) bool {
		return img.ID == imageID
	})
	return len(c.Images) != n
}
