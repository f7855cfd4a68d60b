package notebook

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrNoStagedEdit indicates an accept or revert for a cell without a
// pending record.
var ErrNoStagedEdit = errors.New("no staged edit for cell")

// Editor applies AI-driven mutations to a notebook and records each of
// them in a Ledger so the host can offer accept and revert. Both the
// streaming materializer and explicit edit tools go through the same
// Editor, so a cell is never double-booked.
type Editor struct {
	controller CellController
	ledger     *Ledger
	logger     *zap.Logger
}

func NewEditor(controller CellController, ledger *Ledger, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{
		controller: controller,
		ledger:     ledger,
		logger:     logger,
	}
}

func (e *Editor) Ledger() *Ledger { return e.ledger }

// CreateStagedCell appends a new cell and records it as added.
func (e *Editor) CreateStagedCell(language, code string) (CellID, error) {
	id, err := e.controller.CreateCell(AtEnd, language, code)
	if err != nil {
		return "", err
	}
	e.ledger.RecordAdd(id)
	e.logger.Debug("created staged cell", zap.String("cell", string(id)))
	return id, nil
}

// UpdateStagedCell replaces a cell's code, capturing the pre-edit code
// in the ledger on the first mutation of that cell.
func (e *Editor) UpdateStagedCell(id CellID, code string) error {
	previous, err := e.controller.CellCode(id)
	if err != nil {
		return err
	}
	e.ledger.RecordUpdate(id, previous)
	return e.controller.UpdateCellCode(id, code)
}

// DeleteStagedCell marks a cell for removal. The cell remains in the
// notebook until the host accepts the edit.
func (e *Editor) DeleteStagedCell(id CellID) error {
	previous, err := e.controller.CellCode(id)
	if err != nil {
		return err
	}
	e.ledger.RecordDelete(id, previous)
	return nil
}

// DeleteAllStagedCells marks every cell in the notebook for removal.
func (e *Editor) DeleteAllStagedCells() error {
	var result error
	for _, id := range e.controller.CellIDs() {
		result = multierr.Append(result, e.DeleteStagedCell(id))
	}
	return result
}

// Accept finalizes one pending edit: adds and updates simply become
// permanent, a pending delete actually removes the cell.
func (e *Editor) Accept(id CellID) error {
	edit, ok := e.ledger.Get(id)
	if !ok {
		return errors.Wrapf(ErrNoStagedEdit, "accept %q", id)
	}

	switch edit.(type) {
	case AddCell, UpdateCell:
		// Content already reflects the edit.
	case DeleteCell:
		if err := e.controller.DeleteCell(id); err != nil {
			return err
		}
	default:
		return errors.Errorf("unknown staged edit %T", edit)
	}

	e.ledger.Remove(id)
	return nil
}

// Revert rolls one pending edit back: an added cell is removed, an
// updated cell gets its pre-edit code back, a pending delete is
// cancelled.
func (e *Editor) Revert(id CellID) error {
	edit, ok := e.ledger.Get(id)
	if !ok {
		return errors.Wrapf(ErrNoStagedEdit, "revert %q", id)
	}

	switch edit := edit.(type) {
	case AddCell:
		if err := e.controller.DeleteCell(id); err != nil {
			return err
		}
	case UpdateCell:
		if err := e.controller.UpdateCellCode(id, edit.PreviousCode); err != nil {
			return err
		}
	case DeleteCell:
		// The cell was never removed; dropping the record cancels it.
	default:
		return errors.Errorf("unknown staged edit %T", edit)
	}

	e.ledger.Remove(id)
	return nil
}

// AcceptAll finalizes every pending edit, collecting per-cell failures.
func (e *Editor) AcceptAll() error {
	var result error
	for id := range e.ledger.Snapshot() {
		result = multierr.Append(result, e.Accept(id))
	}
	return result
}

// RevertAll rolls every pending edit back, collecting per-cell failures.
func (e *Editor) RevertAll() error {
	var result error
	for id := range e.ledger.Snapshot() {
		result = multierr.Append(result, e.Revert(id))
	}
	return result
}
