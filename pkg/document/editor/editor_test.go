package editor

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/storyblocks/internal/ulid"
	"github.com/stateful/storyblocks/pkg/document"
)

func TestMain(m *testing.M) {
	ulid.MockSequence("blk")
	code := m.Run()
	ulid.ResetGenerator()
	os.Exit(code)
}

func ptr[T any](v T) *T { return &v }

func mustAdd(t *testing.T, e *Editor, kind document.Kind) document.Block {
	t.Helper()
	b, _, err := e.AddBlock(kind, nil)
	require.NoError(t, err)
	return b
}

func TestEditor_AddBlock(t *testing.T) {
	e := New()

	heading, req, err := e.AddBlock(document.HeadingKind, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Document().Len())
	assert.Equal(t, 1, heading.(*document.Heading).Level)
	assert.True(t, heading.Common().TextStyle.Bold)
	assert.Equal(t, FocusRequest{BlockID: heading.ID(), ListItem: PrimaryRegion}, req)

	selected, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, heading.ID(), selected.ID())

	list, req, err := e.AddBlock(document.ListKind, nil)
	require.NoError(t, err)
	assert.Equal(t, FocusRequest{BlockID: list.ID(), ListItem: 0}, req)
	assert.Equal(t, 1, e.Focus().CurrentBlockIndex())
	assert.Equal(t, 0, e.Focus().CurrentListItemIndex())

	_, _, err = e.AddBlock("video", nil)
	require.ErrorIs(t, err, document.ErrUnknownKind)
	assert.Equal(t, 2, e.Document().Len())
}

func TestEditor_AddBlockInitialData(t *testing.T) {
	e := New()

	b, _, err := e.AddBlock(document.HeadingKind, &Update{Level: ptr(5), Content: ptr("Day one")})
	require.NoError(t, err)

	heading := b.(*document.Heading)
	assert.Equal(t, 3, heading.Level)
	assert.Equal(t, "Day one", heading.Content)
}

func TestEditor_UniqueIDs(t *testing.T) {
	calls := 0
	// A generator that repeats itself must not produce duplicates.
	gen := func() string {
		calls++
		if calls <= 3 {
			return "same"
		}
		return ulid.GenerateID()
	}
	e := New(WithIDGenerator(gen))

	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, mustAdd(t, e, document.ParagraphKind).ID())
		if i%3 == 0 {
			e.DeleteBlock(ids[len(ids)/2])
		}
	}

	seen := map[string]bool{}
	for _, id := range e.Document().IDs() {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	require.NoError(t, e.Document().Validate())
}

func TestEditor_UpdateBlock(t *testing.T) {
	t.Run("MergesTextStyle", func(t *testing.T) {
		e := New()
		b := mustAdd(t, e, document.HeadingKind)

		e.UpdateBlock(b.ID(), Update{TextStyle: &document.StylePatch{Italic: ptr(true)}})

		assert.Equal(t, document.TextStyle{Bold: true, Italic: true, Underline: false}, b.Common().TextStyle)
	})

	t.Run("MissingBlockIsNoop", func(t *testing.T) {
		e := New()
		b := mustAdd(t, e, document.ParagraphKind)

		e.UpdateBlock("missing", Update{Content: ptr("x")})

		assert.Equal(t, "", b.(*document.Paragraph).Content)
	})

	t.Run("IgnoresForeignFields", func(t *testing.T) {
		e := New()
		b := mustAdd(t, e, document.ParagraphKind)

		e.UpdateBlock(b.ID(), Update{Level: ptr(2), URL: ptr("https://x"), Content: ptr("text")})

		assert.Equal(t, &document.Paragraph{
			Attrs:   document.Attrs{BlockID: b.ID(), Align: document.AlignLeft},
			Content: "text",
		}, b)
	})

	t.Run("ReplacesListItems", func(t *testing.T) {
		e := New()
		b := mustAdd(t, e, document.ListKind)

		e.UpdateBlock(b.ID(), Update{Items: []document.ListItem{{Text: "a"}, {Text: "b"}}})
		assert.Len(t, b.(*document.List).Items, 2)

		e.UpdateBlock(b.ID(), Update{Items: []document.ListItem{}})
		assert.Equal(t, []document.ListItem{{}}, b.(*document.List).Items)
	})

	t.Run("Deselect", func(t *testing.T) {
		e := New()
		first := mustAdd(t, e, document.ParagraphKind)
		mustAdd(t, e, document.ParagraphKind)

		e.UpdateBlock(first.ID(), Update{Deselect: true})
		_, ok := e.Selected()
		assert.False(t, ok)

		mustAdd(t, e, document.ParagraphKind)
		e.UpdateBlock("missing", Update{Deselect: true})
		_, ok = e.Selected()
		assert.False(t, ok)
	})

	t.Run("ImageFields", func(t *testing.T) {
		e := New()
		b := mustAdd(t, e, document.ImageKind)

		e.UpdateBlock(b.ID(), Update{
			URL:   ptr("https://cdn.example.com/a.jpg"),
			Alt:   ptr("Harbour"),
			Size:  ptr(document.SizeFull),
			Align: ptr(document.AlignRight),
		})

		img := b.(*document.Image)
		assert.Equal(t, "https://cdn.example.com/a.jpg", img.URL)
		assert.Equal(t, "Harbour", img.Alt)
		assert.Equal(t, document.SizeFull, img.Size)
		assert.Equal(t, document.AlignRight, img.Align)

		e.UpdateBlock(b.ID(), Update{Size: ptr(document.ImageSize("huge")), Align: ptr(document.Align("justify"))})
		assert.Equal(t, document.SizeFull, img.Size)
		assert.Equal(t, document.AlignRight, img.Align)
	})
}

func TestEditor_DeleteBlock(t *testing.T) {
	e := New()
	first := mustAdd(t, e, document.ParagraphKind)
	second := mustAdd(t, e, document.ParagraphKind)

	e.DeleteBlock(first.ID())
	selected, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, second.ID(), selected.ID())

	e.DeleteBlock(second.ID())
	_, ok = e.Selected()
	assert.False(t, ok)
	assert.Equal(t, 0, e.Document().Len())

	e.DeleteBlock("missing")
	assert.Equal(t, 0, e.Document().Len())
}

func TestEditor_DeleteBlockKeepsFocusIndex(t *testing.T) {
	e := newEditorWith(t, "A", "B", "C")

	_, ok := e.ApplyReorderCommand(InsertCommand{Kind: document.ParagraphKind, AfterID: "B"})
	require.True(t, ok)
	focused := e.Document().At(2).ID()
	assert.Equal(t, 2, e.Focus().CurrentBlockIndex())

	e.DeleteBlock("A")
	assert.Equal(t, 1, e.Focus().CurrentBlockIndex())
	assert.Equal(t, focused, e.Document().At(e.Focus().CurrentBlockIndex()).ID())

	e.DeleteBlock("C")
	assert.Equal(t, 1, e.Focus().CurrentBlockIndex())

	e.DeleteBlock(focused)
	assert.Equal(t, -1, e.Focus().CurrentBlockIndex())
}

func TestEditor_UpdateUnknownBlockIgnored(t *testing.T) {
	raw := `[{"type":"video","id":"v","src":"x.mp4"}]`
	doc, err := document.Parse([]byte(raw))
	require.NoError(t, err)

	e := New(WithDocument(doc))
	e.UpdateBlock("v", Update{Align: ptr(document.AlignCenter), TextStyle: &document.StylePatch{Bold: ptr(true)}})

	b, _ := e.Document().Get("v")
	assert.Equal(t, document.TextStyle{}, b.Common().TextStyle)

	data, err := json.Marshal(e.Document())
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(data))
}

func TestEditor_Select(t *testing.T) {
	e := New()
	first := mustAdd(t, e, document.ParagraphKind)
	mustAdd(t, e, document.ParagraphKind)

	require.True(t, e.Select(first.ID()))
	selected, _ := e.Selected()
	assert.Equal(t, first.ID(), selected.ID())

	assert.False(t, e.Select("missing"))
	e.Deselect()
	_, ok := e.Selected()
	assert.False(t, ok)
}
