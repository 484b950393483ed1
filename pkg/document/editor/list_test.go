package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/storyblocks/pkg/document"
)

func TestEditor_ListItems(t *testing.T) {
	e := New()
	b := mustAdd(t, e, document.ListKind)
	list := b.(*document.List)

	req, ok := e.AddListItem(b.ID(), 0)
	require.True(t, ok)
	assert.Equal(t, FocusRequest{BlockID: b.ID(), ListItem: 1}, req)
	assert.Equal(t, 1, e.Focus().CurrentListItemIndex())

	req, ok = e.AddListItem(b.ID(), 99)
	require.True(t, ok)
	assert.Equal(t, 2, req.ListItem)
	assert.Len(t, list.Items, 3)

	require.True(t, e.UpdateListItem(b.ID(), 0, "Pack sunscreen"))
	require.True(t, e.UpdateListItem(b.ID(), 2, "Book ferry"))
	assert.False(t, e.UpdateListItem(b.ID(), 3, "out of range"))

	req, ok = e.AddListItem(b.ID(), 0)
	require.True(t, ok)
	assert.Equal(t, 1, req.ListItem)
	assert.Equal(t, []string{"Pack sunscreen", "", "", "Book ferry"}, texts(list))

	require.True(t, e.StyleListItem(b.ID(), 3, document.StylePatch{Bold: ptr(true)}))
	require.True(t, e.StyleListItem(b.ID(), 3, document.StylePatch{Underline: ptr(true)}))
	assert.Equal(t, document.TextStyle{Bold: true, Underline: true}, list.Items[3].Style)
	assert.Equal(t, document.TextStyle{}, list.Items[0].Style)
}

func TestEditor_RemoveListItemKeepsOne(t *testing.T) {
	e := New()
	b := mustAdd(t, e, document.ListKind)
	list := b.(*document.List)

	e.AddListItem(b.ID(), 0)
	e.UpdateListItem(b.ID(), 0, "first")
	e.UpdateListItem(b.ID(), 1, "second")

	req, ok := e.RemoveListItem(b.ID(), 1)
	require.True(t, ok)
	assert.Equal(t, 0, req.ListItem)
	assert.Equal(t, []string{"first"}, texts(list))

	req, ok = e.RemoveListItem(b.ID(), 0)
	require.True(t, ok)
	assert.Equal(t, 0, req.ListItem)
	assert.Equal(t, []document.ListItem{{}}, list.Items)

	_, ok = e.RemoveListItem(b.ID(), 5)
	assert.False(t, ok)
}

func TestEditor_ListItemsOnOtherKinds(t *testing.T) {
	e := New()
	b := mustAdd(t, e, document.ParagraphKind)

	_, ok := e.AddListItem(b.ID(), 0)
	assert.False(t, ok)
	_, ok = e.AddListItem("missing", 0)
	assert.False(t, ok)
}

func TestEditor_ListInvariantAcrossEdits(t *testing.T) {
	e := New()
	b := mustAdd(t, e, document.ListKind)
	list := b.(*document.List)

	for i := 0; i < 20; i++ {
		switch i % 4 {
		case 0:
			e.AddListItem(b.ID(), i)
		case 1:
			e.RemoveListItem(b.ID(), 0)
		case 2:
			e.UpdateBlock(b.ID(), Update{Items: []document.ListItem{}})
		case 3:
			e.RemoveListItem(b.ID(), 0)
		}
		require.GreaterOrEqual(t, len(list.Items), 1)
	}
}

func TestEditor_CarouselImages(t *testing.T) {
	e := New()
	b := mustAdd(t, e, document.CarouselKind)

	img, ok := e.AddCarouselImage(b.ID(), "https://cdn.example.com/1.jpg", "Dunes")
	require.True(t, ok)
	_, ok = e.AddCarouselImage(b.ID(), "https://cdn.example.com/2.jpg", "")
	require.True(t, ok)
	assert.Len(t, b.(*document.Carousel).Images, 2)

	assert.True(t, e.RemoveCarouselImage(b.ID(), img.ID))
	assert.False(t, e.RemoveCarouselImage(b.ID(), img.ID))
	assert.Len(t, b.(*document.Carousel).Images, 1)

	p := mustAdd(t, e, document.ParagraphKind)
	_, ok = e.AddCarouselImage(p.ID(), "https://x", "")
	assert.False(t, ok)
}

func texts(l *document.List) []string {
	var result []string
	for _, item := range l.Items {
		result = append(result, item.Text)
	}
	return result
}
