package document

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Validate reports every invariant violation in the document.
// Unknown blocks are tolerated; they only need an id.
func (d *Document) Validate() error {
	var err error

	seen := make(map[string]int, len(d.blocks))
	for i, b := range d.blocks {
		id := b.ID()
		if id == "" {
			err = multierr.Append(err, errors.Errorf("block %d: empty id", i))
		} else if prev, ok := seen[id]; ok {
			err = multierr.Append(err, errors.Errorf("block %d: id %q already used by block %d", i, id, prev))
		} else {
			seen[id] = i
		}

		if align := b.Common().Align; align != "" && !align.Valid() {
			err = multierr.Append(err, errors.Errorf("block %d: invalid align %q", i, align))
		}

		switch b := b.(type) {
		case *Heading:
			if b.Level < MinHeadingLevel || b.Level > MaxHeadingLevel {
				err = multierr.Append(err, errors.Errorf("block %d: heading level %d out of range", i, b.Level))
			}
		case *Image:
			if b.Size != "" && !b.Size.Valid() {
				err = multierr.Append(err, errors.Errorf("block %d: invalid image size %q", i, b.Size))
			}
		case *Carousel:
			if b.Size != "" && !b.Size.Valid() {
				err = multierr.Append(err, errors.Errorf("block %d: invalid image size %q", i, b.Size))
			}
		case *List:
			if len(b.Items) == 0 {
				err = multierr.Append(err, errors.Errorf("block %d: list has no items", i))
			}
			if t := b.Style.Type; t != Bulleted && t != Numbered {
				err = multierr.Append(err, errors.Errorf("block %d: invalid list type %q", i, t))
			}
		}
	}

	return err
}
