package document

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/stateful/storyblocks/internal/log"
)

type typeOnly struct {
	Type string `json:"type"`
}

// MarshalBlock encodes a block with its "type" discriminator.
func MarshalBlock(b Block) ([]byte, error) {
	switch b := b.(type) {
	case *Heading:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Heading
		}{HeadingKind, b})
	case *Paragraph:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Paragraph
		}{ParagraphKind, b})
	case *Image:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Image
		}{ImageKind, b})
	case *Carousel:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*Carousel
		}{CarouselKind, b})
	case *List:
		return json.Marshal(struct {
			Type Kind `json:"type"`
			*List
		}{ListKind, b})
	case *Unknown:
		if len(b.Raw) > 0 {
			return b.Raw, nil
		}
		return json.Marshal(struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		}{b.BlockID, b.Type})
	default:
		return nil, errors.Errorf("unsupported block implementation %T", b)
	}
}

// UnmarshalBlock decodes a single block. Unrecognized types decode
// into *Unknown rather than failing.
func UnmarshalBlock(data []byte) (Block, error) {
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(err, "failed to read block type")
	}

	var block Block

	switch Kind(t.Type) {
	case HeadingKind:
		block = &Heading{Level: MinHeadingLevel}
	case ParagraphKind:
		block = &Paragraph{}
	case ImageKind:
		block = &Image{}
	case CarouselKind:
		block = &Carousel{}
	case ListKind:
		block = &List{}
	default:
		var attrs Attrs
		if err := json.Unmarshal(data, &attrs); err != nil {
			return nil, errors.Wrap(err, "failed to decode block attributes")
		}
		return &Unknown{Attrs: attrs, Type: t.Type, Raw: bytes.Clone(data)}, nil
	}

	if err := json.Unmarshal(data, block); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s block", t.Type)
	}

	normalize(block)

	return block, nil
}

// malformed wraps a block that failed to decode. Its raw bytes are kept
// so saving the document does not lose it. The id and type are recovered
// only when they are strings.
func malformed(data []byte) *Unknown {
	u := &Unknown{Raw: bytes.Clone(data)}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return u
	}
	_ = json.Unmarshal(fields["id"], &u.BlockID)
	_ = json.Unmarshal(fields["type"], &u.Type)
	return u
}

// normalize restores invariants that a hand-written document may miss.
func normalize(b Block) {
	attrs := b.Common()
	attrs.Align = attrs.Align.OrDefault()

	switch b := b.(type) {
	case *Carousel:
		if b.Images == nil {
			b.Images = []CarouselImage{}
		}
	case *List:
		if len(b.Items) == 0 {
			b.Items = []ListItem{{}}
		}
		if b.Style.Type == "" {
			b.Style.Type = Bulleted
		}
	}
}

func (d *Document) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, 0, len(d.blocks))
	for _, b := range d.blocks {
		data, err := MarshalBlock(b)
		if err != nil {
			return nil, err
		}
		items = append(items, data)
	}
	return json.Marshal(items)
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return errors.Wrap(err, "document must be an array of blocks")
	}

	blocks := make([]Block, 0, len(items))
	for i, item := range items {
		b, err := UnmarshalBlock(item)
		if err != nil {
			log.Get().Debug("keeping malformed block as unknown", zap.Int("index", i), zap.Error(err))
			b = malformed(item)
		}
		blocks = append(blocks, b)
	}

	d.blocks = blocks
	return nil
}

// UnmarshalJSON accepts both a plain string and a {text, textStyle} object.
func (i *ListItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		i.Style = TextStyle{}
		return json.Unmarshal(data, &i.Text)
	}

	type plain ListItem
	var item plain
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*i = ListItem(item)
	return nil
}

// UnmarshalYAML accepts a plain string like UnmarshalJSON does.
func (i *ListItem) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*i = ListItem{Text: node.Value}
		return nil
	}

	type plain ListItem
	var item plain
	if err := node.Decode(&item); err != nil {
		return err
	}
	*i = ListItem(item)
	return nil
}

// Parse decodes a JSON document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
