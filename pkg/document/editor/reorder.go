package editor

import (
	"go.uber.org/zap"

	"github.com/stateful/storyblocks/pkg/document"
)

const (
	// EndOfList is the drop target placed after the last block.
	EndOfList = "__end__"
	// Container is reported when a drop lands on the document itself
	// rather than on a block.
	Container = "__container__"
)

// Command is a structural edit produced by the drag layer.
type Command interface {
	command()
}

// InsertCommand creates a new block from a palette template right
// after the block AfterID.
type InsertCommand struct {
	Kind    document.Kind
	Initial *Update
	AfterID string
}

// MoveCommand moves SourceID to the position TargetID occupies.
type MoveCommand struct {
	SourceID string
	TargetID string
}

func (InsertCommand) command() {}
func (MoveCommand) command()   {}

// ApplyReorderCommand applies cmd and reports whether the document
// changed. Unresolvable targets fall back to appending for inserts and
// to a no-op for moves.
func (e *Editor) ApplyReorderCommand(cmd Command) (FocusRequest, bool) {
	switch cmd := cmd.(type) {
	case InsertCommand:
		return e.applyInsert(cmd)
	case MoveCommand:
		return FocusRequest{}, e.applyMove(cmd)
	default:
		return FocusRequest{}, false
	}
}

func (e *Editor) applyInsert(cmd InsertCommand) (FocusRequest, bool) {
	idx := -1
	if cmd.AfterID != EndOfList && cmd.AfterID != Container {
		idx = e.doc.Index(cmd.AfterID)
	}

	var (
		req FocusRequest
		err error
	)
	if idx < 0 {
		_, req, err = e.AddBlock(cmd.Kind, cmd.Initial)
	} else {
		_, req, err = e.insertAfter(idx, cmd.Kind, cmd.Initial)
	}
	if err != nil {
		e.logger.Debug("palette insert rejected", zap.Error(err))
		return FocusRequest{}, false
	}
	return req, true
}

func (e *Editor) applyMove(cmd MoveCommand) bool {
	if cmd.SourceID == cmd.TargetID {
		return false
	}

	from := e.doc.Index(cmd.SourceID)
	to := e.doc.Index(cmd.TargetID)
	if from < 0 || to < 0 {
		e.logger.Debug(
			"move with unresolvable ids ignored",
			zap.String("source", cmd.SourceID),
			zap.String("target", cmd.TargetID),
		)
		return false
	}

	if !e.doc.Move(from, to) {
		return false
	}
	if e.focus.currentBlockIndex == from {
		e.focus.currentBlockIndex = to
	}

	e.logger.Debug("moved block", zap.String("id", cmd.SourceID), zap.Int("from", from), zap.Int("to", to))

	return true
}
