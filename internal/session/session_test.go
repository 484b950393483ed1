package session

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/stateful/storyblocks/internal/ulid"
	"github.com/stateful/storyblocks/pkg/document"
	"github.com/stateful/storyblocks/pkg/document/editor"
)

func TestMain(m *testing.M) {
	ulid.MockSequence("blk")
	code := m.Run()
	ulid.ResetGenerator()
	os.Exit(code)
}

func ptr[T any](v T) *T { return &v }

type recordingFocuser struct {
	targets chan editor.FocusTarget
}

func newRecordingFocuser() *recordingFocuser {
	return &recordingFocuser{targets: make(chan editor.FocusTarget, 16)}
}

func (f *recordingFocuser) Focus(t editor.FocusTarget) {
	f.targets <- t
}

type memorySaver struct {
	mu       sync.Mutex
	articles map[string]*document.Article
	err      error
}

func (s *memorySaver) Save(_ context.Context, a *document.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.articles == nil {
		s.articles = make(map[string]*document.Article)
	}
	s.articles[a.ID] = a
	return nil
}

func TestSession_AddBlockFocuses(t *testing.T) {
	focuser := newRecordingFocuser()
	s := New(WithFocusDelay(time.Millisecond), WithFocuser(focuser))
	defer s.Close()

	require.NoError(t, s.Handle(AddBlock{Kind: document.ListKind}))

	select {
	case target := <-focuser.targets:
		assert.Equal(t, 0, target.Index)
		assert.Equal(t, 0, target.ListItem)
		assert.Equal(t, document.ListKind, target.Block.Kind())
	case <-time.After(time.Second):
		t.Fatal("focus was not applied")
	}
}

func TestSession_FocusSkippedForDeletedBlock(t *testing.T) {
	focuser := newRecordingFocuser()
	s := New(WithFocusDelay(50*time.Millisecond), WithFocuser(focuser))
	defer s.Close()

	require.NoError(t, s.Handle(AddBlock{Kind: document.ParagraphKind}))
	ids := s.Document().IDs()
	require.Len(t, ids, 1)
	require.NoError(t, s.Handle(DeleteBlock{ID: ids[0]}))

	select {
	case target := <-focuser.targets:
		t.Fatalf("unexpected focus on %s", target.Block.ID())
	case <-time.After(150 * time.Millisecond):
	}
	assert.Equal(t, 0, s.focus.Pending())
}

func TestSession_FocusFollowsListItem(t *testing.T) {
	focuser := newRecordingFocuser()
	s := New(WithFocusDelay(200*time.Millisecond), WithFocuser(focuser))
	defer s.Close()

	require.NoError(t, s.Handle(AddBlock{
		Kind:    document.ListKind,
		Initial: &editor.Update{Items: []document.ListItem{{Text: "first"}, {Text: "second"}, {Text: "fourth"}}},
	}))
	id := s.Document().IDs()[0]

	require.NoError(t, s.Handle(AddListItem{BlockID: id, After: 1}))
	require.NoError(t, s.Handle(UpdateListItem{BlockID: id, Index: 2, Text: "third"}))
	require.NoError(t, s.Handle(RemoveListItem{BlockID: id, Index: 0}))

	// The request for the removed "first" item is dropped.
	assert.Equal(t, 2, s.focus.Pending())

	var focused []string
	for len(focused) < 2 {
		select {
		case target := <-focuser.targets:
			list := target.Block.(*document.List)
			focused = append(focused, list.Items[target.ListItem].Text)
		case <-time.After(2 * time.Second):
			t.Fatalf("focus was not applied, got %v", focused)
		}
	}
	assert.ElementsMatch(t, []string{"third", "second"}, focused)

	select {
	case target := <-focuser.targets:
		t.Fatalf("unexpected focus on item %d", target.ListItem)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestSession_FocusTargetIsCopy(t *testing.T) {
	focuser := newRecordingFocuser()
	s := New(WithFocusDelay(time.Millisecond), WithFocuser(focuser))
	defer s.Close()

	require.NoError(t, s.Handle(AddBlock{Kind: document.ParagraphKind, Initial: &editor.Update{Content: ptr("before")}}))

	var target editor.FocusTarget
	select {
	case target = <-focuser.targets:
	case <-time.After(time.Second):
		t.Fatal("focus was not applied")
	}

	require.NoError(t, s.Handle(UpdateBlock{ID: target.Block.ID(), Update: editor.Update{Content: ptr("after")}}))
	assert.Equal(t, "before", target.Block.(*document.Paragraph).Content)
	assert.Equal(t, "after", s.Document().At(0).(*document.Paragraph).Content)
}

func TestSession_CloseDropsPendingFocus(t *testing.T) {
	focuser := newRecordingFocuser()
	s := New(WithFocusDelay(time.Hour), WithFocuser(focuser))

	require.NoError(t, s.Handle(AddBlock{Kind: document.HeadingKind}))
	assert.Equal(t, 1, s.focus.Pending())

	s.Close()
	assert.Equal(t, 0, s.focus.Pending())

	require.NoError(t, s.Handle(AddBlock{Kind: document.HeadingKind}))
	assert.Equal(t, 0, s.focus.Pending())
}

func TestSession_DragFromPalette(t *testing.T) {
	s := New(WithFocusDelay(time.Hour))
	defer s.Close()

	require.NoError(t, s.Handle(AddBlock{Kind: document.HeadingKind}))
	require.NoError(t, s.Handle(AddBlock{Kind: document.ParagraphKind}))
	first := s.Document().IDs()[0]

	require.NoError(t, s.Handle(DragStart{ID: "template:image"}))
	require.NoError(t, s.Handle(DragOver{OverID: first}))
	assert.Equal(t, 2, s.Document().Len(), "hovering never mutates")
	require.NoError(t, s.Handle(DragEnd{OverID: first}))

	blocks := s.Document().Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, document.ImageKind, blocks[1].Kind())

	selected, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, blocks[1].ID(), selected.ID())
}

func TestSession_DragWithoutTarget(t *testing.T) {
	s := New(WithFocusDelay(time.Hour))
	defer s.Close()

	require.NoError(t, s.Handle(AddBlock{Kind: document.HeadingKind}))
	require.NoError(t, s.Handle(DragStart{ID: "template:paragraph"}))
	require.NoError(t, s.Handle(DragEnd{}))
	assert.Equal(t, 1, s.Document().Len())

	require.NoError(t, s.Handle(DragStart{ID: "template:paragraph"}))
	require.NoError(t, s.Handle(DragCancel{}))
	require.NoError(t, s.Handle(DragEnd{OverID: editor.EndOfList}))
	assert.Equal(t, 1, s.Document().Len())
}

func TestSession_AddBlockUnknownKind(t *testing.T) {
	s := New()
	defer s.Close()

	err := s.Handle(AddBlock{Kind: "video"})
	require.ErrorIs(t, err, document.ErrUnknownKind)
}

func TestSession_Preview(t *testing.T) {
	s := New(WithFocusDelay(time.Hour))
	defer s.Close()

	require.NoError(t, s.Handle(AddBlock{
		Kind:    document.ParagraphKind,
		Initial: &editor.Update{Content: ptr("Hello")},
	}))

	desktop := s.Preview()
	assert.Equal(t, "<div class=\"article-content\">\n<p class=\"text-left\">Hello</p>\n</div>", desktop)

	require.NoError(t, s.Handle(SetMode{Mode: ModeMobile}))
	assert.Equal(t, ModeMobile, s.Mode())
	assert.True(t, strings.HasPrefix(s.Preview(), `<div class="article-content mobile-preview">`))

	require.NoError(t, s.Handle(SetMode{Mode: "tablet"}))
	assert.Equal(t, ModeMobile, s.Mode())
}

func TestSession_Save(t *testing.T) {
	saver := &memorySaver{}
	s := New(WithFocusDelay(time.Hour), WithSaver(saver))
	defer s.Close()

	require.NoError(t, s.Handle(AddBlock{Kind: document.HeadingKind, Initial: &editor.Update{Content: ptr("Porto")}}))

	article, err := s.Save(context.Background(), "Porto")
	require.NoError(t, err)
	assert.Equal(t, s.ID, article.ID)
	assert.Contains(t, article.Markup, "Porto</h1>")
	assert.Equal(t, 1, article.Document.Len())
	assert.Contains(t, saver.articles, s.ID)

	saver.err = errors.New("disk full")
	_, err = s.Save(context.Background(), "Porto")
	require.ErrorContains(t, err, "disk full")
}

func TestSession_SaveWithoutSaver(t *testing.T) {
	s := New()
	defer s.Close()

	_, err := s.Save(context.Background(), "draft")
	require.ErrorIs(t, err, ErrNoSaver)
}

func TestSession_ConcurrentEvents(t *testing.T) {
	s := New(WithFocusDelay(0), WithFocuser(FocuserFunc(func(editor.FocusTarget) {})))
	defer s.Close()

	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			if err := s.Handle(AddBlock{Kind: document.ListKind}); err != nil {
				return err
			}
			_ = s.Preview()
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 20, s.Document().Len())
	assert.NoError(t, s.Document().Validate())
}
