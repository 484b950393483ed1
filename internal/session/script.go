package session

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/stateful/storyblocks/pkg/document"
	"github.com/stateful/storyblocks/pkg/document/editor"
)

// Step is one entry of an edit script. Block ids may be given as
// references resolved when the step runs: "@last" for the last block,
// "@selected" for the selected one and "@N" for the block at index N.
// For example:
//
//	# a paragraph, then an image at the end
//	- action: add_block
//	  kind: paragraph
//	  update:
//	    content: Hello
//	- action: drag_start
//	  id: template:image
//	- action: drag_end
//	  over: __end__
type Step struct {
	Action string         `yaml:"action"`
	ID     string         `yaml:"id,omitempty"`
	Over   string         `yaml:"over,omitempty"`
	Kind   document.Kind  `yaml:"kind,omitempty"`
	After  *int           `yaml:"after,omitempty"`
	Mode   Mode           `yaml:"mode,omitempty"`
	Update *editor.Update `yaml:"update,omitempty"`

	// List item and carousel image steps.
	Index *int                 `yaml:"index,omitempty"`
	Text  string               `yaml:"text,omitempty"`
	Style *document.StylePatch `yaml:"style,omitempty"`
	URL   string               `yaml:"url,omitempty"`
	Alt   string               `yaml:"alt,omitempty"`
	Image string               `yaml:"image,omitempty"`
}

// Event converts the step into the event it describes.
func (s Step) Event() (Event, error) {
	switch s.Action {
	case "drag_start":
		if s.ID == "" {
			return nil, errors.New("drag_start requires an id")
		}
		return DragStart{ID: s.ID}, nil
	case "drag_over":
		return DragOver{OverID: s.Over}, nil
	case "drag_end":
		return DragEnd{OverID: s.Over}, nil
	case "drag_cancel":
		return DragCancel{}, nil
	case "add_block":
		if !s.Kind.Valid() {
			return nil, errors.Wrapf(document.ErrUnknownKind, "kind %q", s.Kind)
		}
		return AddBlock{Kind: s.Kind, Initial: s.Update}, nil
	case "update_block":
		if s.Update == nil {
			return nil, errors.New("update_block requires an update")
		}
		return UpdateBlock{ID: s.ID, Update: *s.Update}, nil
	case "delete_block":
		return DeleteBlock{ID: s.ID}, nil
	case "add_list_item":
		after := -1
		if s.After != nil {
			after = *s.After
		}
		return AddListItem{BlockID: s.ID, After: after}, nil
	case "update_list_item":
		if s.Index == nil {
			return nil, errors.New("update_list_item requires an index")
		}
		return UpdateListItem{BlockID: s.ID, Index: *s.Index, Text: s.Text}, nil
	case "style_list_item":
		if s.Index == nil || s.Style == nil {
			return nil, errors.New("style_list_item requires an index and a style")
		}
		return StyleListItem{BlockID: s.ID, Index: *s.Index, Style: *s.Style}, nil
	case "remove_list_item":
		if s.Index == nil {
			return nil, errors.New("remove_list_item requires an index")
		}
		return RemoveListItem{BlockID: s.ID, Index: *s.Index}, nil
	case "add_carousel_image":
		if s.URL == "" {
			return nil, errors.New("add_carousel_image requires a url")
		}
		return AddCarouselImage{BlockID: s.ID, URL: s.URL, Alt: s.Alt}, nil
	case "remove_carousel_image":
		return RemoveCarouselImage{BlockID: s.ID, ImageID: s.Image}, nil
	case "select":
		return Select{ID: s.ID}, nil
	case "set_mode":
		if !s.Mode.Valid() {
			return nil, errors.Errorf("unknown mode %q", s.Mode)
		}
		return SetMode{Mode: s.Mode}, nil
	case "deselect":
		return Deselect{}, nil
	default:
		return nil, errors.Errorf("unknown action %q", s.Action)
	}
}

// ParseScript reads a YAML list of steps.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step
	if err := yaml.NewDecoder(r).Decode(&steps); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to decode script")
	}
	return steps, nil
}

// Replay resolves and handles steps in order, stopping at the first
// invalid one.
func (s *Session) Replay(steps []Step) error {
	for i, step := range steps {
		step.ID = s.resolveRef(step.ID)
		step.Over = s.resolveRef(step.Over)

		ev, err := step.Event()
		if err != nil {
			return errors.Wrapf(err, "step %d", i+1)
		}
		if err := s.Handle(ev); err != nil {
			return errors.Wrapf(err, "step %d", i+1)
		}
	}
	return nil
}

func (s *Session) resolveRef(ref string) string {
	name, ok := strings.CutPrefix(ref, "@")
	if !ok {
		return ref
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.editor.Document().IDs()

	switch name {
	case "last":
		if len(ids) > 0 {
			return ids[len(ids)-1]
		}
	case "selected":
		if b, ok := s.editor.Selected(); ok {
			return b.ID()
		}
	default:
		if n, err := strconv.Atoi(name); err == nil && n >= 0 && n < len(ids) {
			return ids[n]
		}
	}
	return ref
}
