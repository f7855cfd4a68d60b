package notebook

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/streambook/streambook/internal/ulid"
)

// ErrCellNotFound indicates that a cell identity is no longer known to
// the notebook, i.e. the caller's view of the notebook has desynced.
var ErrCellNotFound = errors.New("cell not found")

// CellID identifies a notebook cell across edits and stream sessions.
type CellID string

// AtEnd is the insertion position appending a cell after all others.
const AtEnd = -1

// CellController is the notebook surface this package mutates. The
// in-memory Notebook implements it; a host embedding the package wires
// its own notebook instead.
type CellController interface {
	// CreateCell inserts a new cell at the given position (AtEnd to
	// append) and returns its identity.
	CreateCell(at int, language, code string) (CellID, error)
	UpdateCellCode(id CellID, code string) error
	DeleteCell(id CellID) error
	CellCode(id CellID) (string, error)
	CellIDs() []CellID
}

// Cell is a single code cell.
type Cell struct {
	ID       CellID `json:"id"`
	Language string `json:"languageId,omitempty"`
	Code     string `json:"value"`
}

// Notebook is an in-memory, ordered collection of code cells. It is
// owned by a single goroutine: the event loop feeding the stream
// dispatcher and the host's edit actions.
type Notebook struct {
	cells []*Cell
	index map[CellID]*Cell
}

var _ CellController = (*Notebook)(nil)

func New() *Notebook {
	return &Notebook{index: make(map[CellID]*Cell)}
}

func (n *Notebook) CreateCell(at int, language, code string) (CellID, error) {
	cell := &Cell{
		ID:       CellID(ulid.GenerateID()),
		Language: language,
		Code:     code,
	}

	if at == AtEnd || at >= len(n.cells) {
		n.cells = append(n.cells, cell)
	} else if at >= 0 {
		n.cells = append(n.cells[:at], append([]*Cell{cell}, n.cells[at:]...)...)
	} else {
		return "", errors.Errorf("invalid cell position %d", at)
	}

	n.index[cell.ID] = cell
	return cell.ID, nil
}

func (n *Notebook) UpdateCellCode(id CellID, code string) error {
	cell, ok := n.index[id]
	if !ok {
		return errors.Wrapf(ErrCellNotFound, "update %q", id)
	}
	cell.Code = code
	return nil
}

func (n *Notebook) DeleteCell(id CellID) error {
	if _, ok := n.index[id]; !ok {
		return errors.Wrapf(ErrCellNotFound, "delete %q", id)
	}
	delete(n.index, id)
	for i, cell := range n.cells {
		if cell.ID == id {
			n.cells = append(n.cells[:i], n.cells[i+1:]...)
			break
		}
	}
	return nil
}

func (n *Notebook) CellCode(id CellID) (string, error) {
	cell, ok := n.index[id]
	if !ok {
		return "", errors.Wrapf(ErrCellNotFound, "read %q", id)
	}
	return cell.Code, nil
}

func (n *Notebook) CellIDs() []CellID {
	ids := make([]CellID, 0, len(n.cells))
	for _, cell := range n.cells {
		ids = append(ids, cell.ID)
	}
	return ids
}

// Cells returns a snapshot of the notebook's cells in order.
func (n *Notebook) Cells() []Cell {
	cells := make([]Cell, 0, len(n.cells))
	for _, cell := range n.cells {
		cells = append(cells, *cell)
	}
	return cells
}

// MarshalMarkdown renders the notebook as fenced markdown. A body that
// itself contains a backtick run gets a longer fence, mirroring how
// the parser matches fence lengths.
func (n *Notebook) MarshalMarkdown() []byte {
	var buf strings.Builder
	for i, cell := range n.cells {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fence := fenceFor(cell.Code)
		buf.WriteString(fence)
		buf.WriteString(cell.Language)
		buf.WriteByte('\n')
		buf.WriteString(cell.Code)
		if cell.Code != "" && !strings.HasSuffix(cell.Code, "\n") {
			buf.WriteByte('\n')
		}
		buf.WriteString(fence)
		buf.WriteByte('\n')
	}
	return []byte(buf.String())
}

func fenceFor(code string) string {
	longest := 0
	run := 0
	atLineStart := true
	for i := 0; i < len(code); i++ {
		if code[i] == '`' {
			if atLineStart || run > 0 {
				run++
				if run > longest {
					longest = run
				}
			}
		} else {
			run = 0
			atLineStart = code[i] == '\n'
			continue
		}
		atLineStart = false
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}
