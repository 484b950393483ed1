package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/storyblocks/pkg/document"
)

func TestConfigFilter(t *testing.T) {
	testCases := []struct {
		name           string
		typ            string
		condition      string
		env            interface{}
		expectedResult bool
	}{
		{
			name:           "empty block env",
			typ:            FilterTypeBlock,
			condition:      "content != ''",
			env:            FilterBlockEnv{},
			expectedResult: false,
		},
		{
			name:           "empty document env",
			typ:            FilterTypeDocument,
			condition:      "blocks > 0",
			env:            FilterDocumentEnv{},
			expectedResult: false,
		},
		{
			name:           "heading level",
			typ:            FilterTypeBlock,
			condition:      "type == 'heading' && level <= 2",
			env:            FilterBlockEnv{Type: "heading", Level: 2},
			expectedResult: true,
		},
		{
			name:           "list items",
			typ:            FilterTypeBlock,
			condition:      "len(items) > 1",
			env:            FilterBlockEnv{Type: "list", Items: []string{"a", "b"}},
			expectedResult: true,
		},
		{
			name:           "document kinds",
			typ:            FilterTypeDocument,
			condition:      "'image' in kinds",
			env:            FilterDocumentEnv{Blocks: 1, Kinds: []string{"image"}},
			expectedResult: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			filter := Filter{
				Type:      tc.typ,
				Condition: tc.condition,
			}

			result, err := filter.Evaluate(tc.env)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedResult, result)
		})
	}
}

func TestConfigFilter_UnknownType(t *testing.T) {
	filter := Filter{Type: "FILTER_TYPE_PAGE", Condition: "true"}
	_, err := filter.Evaluate(FilterBlockEnv{})
	require.ErrorContains(t, err, "unknown filter type")
}

func newBlock(t *testing.T, kind document.Kind, id string) document.Block {
	t.Helper()
	b, err := document.New(kind, id)
	require.NoError(t, err)
	return b
}

func TestNewFilterBlockEnv(t *testing.T) {
	heading := newBlock(t, document.HeadingKind, "h").(*document.Heading)
	heading.Content = "Title"
	heading.Level = 2

	env := NewFilterBlockEnv(heading)
	assert.Equal(t, FilterBlockEnv{Type: "heading", Content: "Title", Level: 2, Align: "left", Bold: true}, env)

	list := newBlock(t, document.ListKind, "l").(*document.List)
	list.Items = []document.ListItem{{Text: "one"}, {Text: "two"}}
	assert.Equal(t, []string{"one", "two"}, NewFilterBlockEnv(list).Items)
}

func TestApplyFilters(t *testing.T) {
	heading := newBlock(t, document.HeadingKind, "h").(*document.Heading)
	heading.Content = "Title"
	empty := newBlock(t, document.ParagraphKind, "p1")
	body := newBlock(t, document.ParagraphKind, "p2").(*document.Paragraph)
	body.Content = "Body"

	doc := document.NewDocument(heading, empty, body)

	t.Run("block filters", func(t *testing.T) {
		filters := []*Filter{{Type: FilterTypeBlock, Condition: "type != 'paragraph' || content != ''"}}

		result, ok, err := ApplyFilters(filters, doc)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"h", "p2"}, result.IDs())
		assert.Equal(t, 3, doc.Len())
	})

	t.Run("document filters", func(t *testing.T) {
		filters := []*Filter{{Type: FilterTypeDocument, Condition: "'image' in kinds"}}

		result, ok, err := ApplyFilters(filters, doc)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, result)
	})

	t.Run("no filters", func(t *testing.T) {
		result, ok, err := ApplyFilters(nil, doc)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, doc.IDs(), result.IDs())
	})
}
