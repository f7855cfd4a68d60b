package notebook

// StagedEdit is one pending, revertible AI-driven mutation of a cell.
// It is a closed set: AddCell, UpdateCell or DeleteCell. Consumers
// switch exhaustively on the concrete type.
type StagedEdit interface {
	stagedEdit()
}

// AddCell marks a cell that did not exist before the AI created it.
// Reverting removes the cell.
type AddCell struct{}

// UpdateCell marks a cell the AI modified. PreviousCode is the code
// captured at the first AI mutation; reverting restores it.
type UpdateCell struct {
	PreviousCode string
}

// DeleteCell marks a cell for removal. The cell stays in the notebook
// until the host accepts the edit.
type DeleteCell struct {
	PreviousCode string
}

func (AddCell) stagedEdit()    {}
func (UpdateCell) stagedEdit() {}
func (DeleteCell) stagedEdit() {}

// Ledger tracks at most one StagedEdit per cell. It is pure
// bookkeeping: it never touches notebook content. Records outlive
// stream sessions and are dropped only on accept, revert or Clear.
type Ledger struct {
	edits map[CellID]StagedEdit
}

func NewLedger() *Ledger {
	return &Ledger{edits: make(map[CellID]StagedEdit)}
}

// RecordAdd notes that a cell was created. A no-op if the cell already
// has a record.
func (l *Ledger) RecordAdd(id CellID) {
	if _, ok := l.edits[id]; ok {
		return
	}
	l.edits[id] = AddCell{}
}

// RecordUpdate notes that a cell is about to be modified, capturing
// its pre-edit code. If any record already exists the call is a no-op:
// PreviousCode always reflects the state before the first AI edit.
func (l *Ledger) RecordUpdate(id CellID, previousCode string) {
	if _, ok := l.edits[id]; ok {
		return
	}
	l.edits[id] = UpdateCell{PreviousCode: previousCode}
}

// RecordDelete marks a cell for removal, superseding any pending add
// or update record for it.
func (l *Ledger) RecordDelete(id CellID, previousCode string) {
	l.edits[id] = DeleteCell{PreviousCode: previousCode}
}

func (l *Ledger) Get(id CellID) (StagedEdit, bool) {
	edit, ok := l.edits[id]
	return edit, ok
}

func (l *Ledger) Remove(id CellID) {
	delete(l.edits, id)
}

func (l *Ledger) Clear() {
	l.edits = make(map[CellID]StagedEdit)
}

func (l *Ledger) Len() int {
	return len(l.edits)
}

// Snapshot returns a copy of all pending edits, e.g. for rendering
// accept/revert affordances.
func (l *Ledger) Snapshot() map[CellID]StagedEdit {
	out := make(map[CellID]StagedEdit, len(l.edits))
	for id, edit := range l.edits {
		out[id] = edit
	}
	return out
}
