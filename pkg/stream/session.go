package stream

import (
	"strings"

	"go.uber.org/zap"

	"github.com/streambook/streambook/pkg/document"
	"github.com/streambook/streambook/pkg/notebook"
)

// createdCell binds a block index in the parsed buffer to the cell it
// materialized into. Within a session the list only grows, and index i
// always corresponds to block i.
type createdCell struct {
	id    notebook.CellID
	block int
}

// Session materializes one live text stream into notebook cells. It
// accumulates deltas into a buffer, re-parses the whole buffer on each
// delta, and keeps every parsed block bound to one stable cell:
// existing blocks update their cell in place (so an open trailing
// block streams into its cell), a new trailing block creates one.
type Session struct {
	editor  *notebook.Editor
	buffer  strings.Builder
	created []createdCell
	logger  *zap.Logger
}

func NewSession(editor *notebook.Editor, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{editor: editor, logger: logger}
}

// Append adds one delta to the buffer and materializes the result.
// Cells are created at the end of the notebook, one per new block; the
// count never shrinks because the buffer only grows.
func (s *Session) Append(delta string) error {
	s.buffer.WriteString(delta)

	blocks := document.ParseBlocks(s.buffer.String())
	for i, block := range blocks {
		if i < len(s.created) {
			if err := s.editor.UpdateStagedCell(s.created[i].id, block.Code); err != nil {
				return err
			}
			continue
		}

		id, err := s.editor.CreateStagedCell(block.Language, block.Code)
		if err != nil {
			return err
		}
		s.created = append(s.created, createdCell{id: id, block: i})
		s.logger.Debug("materialized new cell",
			zap.String("cell", string(id)),
			zap.Int("block", i),
			zap.String("language", block.Language),
		)
	}

	return nil
}

// Finish ends the stream. The buffer is dropped; the materialized
// cells are ordinary notebook cells now and stay untouched.
func (s *Session) Finish() {
	s.buffer.Reset()
}

// CreatedCells returns the identities of the cells this session has
// materialized, in block order.
func (s *Session) CreatedCells() []notebook.CellID {
	ids := make([]notebook.CellID, 0, len(s.created))
	for _, c := range s.created {
		ids = append(ids, c.id)
	}
	return ids
}
