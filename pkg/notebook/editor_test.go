package notebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T) (*Editor, *Notebook) {
	t.Helper()
	nb := New()
	return NewEditor(nb, NewLedger(), nil), nb
}

func TestCreateStagedCell(t *testing.T) {
	editor, nb := newTestEditor(t)

	id, err := editor.CreateStagedCell("python", "x = 1\n")
	require.NoError(t, err)
	assert.Equal(t, []CellID{id}, nb.CellIDs())

	edit, ok := editor.Ledger().Get(id)
	require.True(t, ok)
	assert.Equal(t, AddCell{}, edit)
}

func TestUpdateStagedCellCapturesPreviousOnce(t *testing.T) {
	editor, nb := newTestEditor(t)

	id, err := nb.CreateCell(AtEnd, "python", "original\n")
	require.NoError(t, err)

	require.NoError(t, editor.UpdateStagedCell(id, "first edit\n"))
	require.NoError(t, editor.UpdateStagedCell(id, "second edit\n"))

	code, err := nb.CellCode(id)
	require.NoError(t, err)
	assert.Equal(t, "second edit\n", code)

	edit, ok := editor.Ledger().Get(id)
	require.True(t, ok)
	assert.Equal(t, UpdateCell{PreviousCode: "original\n"}, edit)
}

func TestUpdateStagedCellMissing(t *testing.T) {
	editor, _ := newTestEditor(t)

	err := editor.UpdateStagedCell("01JGONE", "x")
	assert.ErrorIs(t, err, ErrCellNotFound)
	assert.Equal(t, 0, editor.Ledger().Len())
}

func TestDeleteStagedCellIsDeferred(t *testing.T) {
	editor, nb := newTestEditor(t)

	id, err := nb.CreateCell(AtEnd, "python", "doomed\n")
	require.NoError(t, err)

	require.NoError(t, editor.DeleteStagedCell(id))

	// The cell is only marked; it stays in the notebook.
	assert.Equal(t, []CellID{id}, nb.CellIDs())
	edit, ok := editor.Ledger().Get(id)
	require.True(t, ok)
	assert.Equal(t, DeleteCell{PreviousCode: "doomed\n"}, edit)
}

func TestDeleteAllStagedCells(t *testing.T) {
	editor, nb := newTestEditor(t)

	first, err := nb.CreateCell(AtEnd, "python", "a")
	require.NoError(t, err)
	second, err := nb.CreateCell(AtEnd, "python", "b")
	require.NoError(t, err)

	require.NoError(t, editor.DeleteAllStagedCells())

	assert.Equal(t, 2, editor.Ledger().Len())
	assert.Equal(t, []CellID{first, second}, nb.CellIDs())
}

func TestAccept(t *testing.T) {
	t.Run("add becomes permanent", func(t *testing.T) {
		editor, nb := newTestEditor(t)
		id, err := editor.CreateStagedCell("python", "x")
		require.NoError(t, err)

		require.NoError(t, editor.Accept(id))
		assert.Equal(t, 0, editor.Ledger().Len())
		assert.Equal(t, []CellID{id}, nb.CellIDs())
	})

	t.Run("update keeps the new code", func(t *testing.T) {
		editor, nb := newTestEditor(t)
		id, err := nb.CreateCell(AtEnd, "python", "old")
		require.NoError(t, err)
		require.NoError(t, editor.UpdateStagedCell(id, "new"))

		require.NoError(t, editor.Accept(id))
		code, err := nb.CellCode(id)
		require.NoError(t, err)
		assert.Equal(t, "new", code)
		assert.Equal(t, 0, editor.Ledger().Len())
	})

	t.Run("delete removes the cell", func(t *testing.T) {
		editor, nb := newTestEditor(t)
		id, err := nb.CreateCell(AtEnd, "python", "doomed")
		require.NoError(t, err)
		require.NoError(t, editor.DeleteStagedCell(id))

		require.NoError(t, editor.Accept(id))
		assert.Empty(t, nb.CellIDs())
		assert.Equal(t, 0, editor.Ledger().Len())
	})

	t.Run("no staged edit", func(t *testing.T) {
		editor, _ := newTestEditor(t)
		assert.ErrorIs(t, editor.Accept("01JGONE"), ErrNoStagedEdit)
	})
}

func TestRevert(t *testing.T) {
	t.Run("add removes the cell", func(t *testing.T) {
		editor, nb := newTestEditor(t)
		id, err := editor.CreateStagedCell("python", "x")
		require.NoError(t, err)

		require.NoError(t, editor.Revert(id))
		assert.Empty(t, nb.CellIDs())
		assert.Equal(t, 0, editor.Ledger().Len())
	})

	t.Run("update restores the pre-edit code across multiple edits", func(t *testing.T) {
		editor, nb := newTestEditor(t)
		id, err := nb.CreateCell(AtEnd, "python", "original")
		require.NoError(t, err)
		require.NoError(t, editor.UpdateStagedCell(id, "first"))
		require.NoError(t, editor.UpdateStagedCell(id, "second"))

		require.NoError(t, editor.Revert(id))
		code, err := nb.CellCode(id)
		require.NoError(t, err)
		assert.Equal(t, "original", code)
	})

	t.Run("delete is cancelled", func(t *testing.T) {
		editor, nb := newTestEditor(t)
		id, err := nb.CreateCell(AtEnd, "python", "kept")
		require.NoError(t, err)
		require.NoError(t, editor.DeleteStagedCell(id))

		require.NoError(t, editor.Revert(id))
		code, err := nb.CellCode(id)
		require.NoError(t, err)
		assert.Equal(t, "kept", code)
		assert.Equal(t, 0, editor.Ledger().Len())
	})

	t.Run("no staged edit", func(t *testing.T) {
		editor, _ := newTestEditor(t)
		assert.ErrorIs(t, editor.Revert("01JGONE"), ErrNoStagedEdit)
	})
}

func TestAcceptAll(t *testing.T) {
	editor, nb := newTestEditor(t)

	added, err := editor.CreateStagedCell("python", "new cell")
	require.NoError(t, err)
	doomed, err := nb.CreateCell(AtEnd, "python", "doomed")
	require.NoError(t, err)
	require.NoError(t, editor.DeleteStagedCell(doomed))

	require.NoError(t, editor.AcceptAll())
	assert.Equal(t, 0, editor.Ledger().Len())
	assert.Equal(t, []CellID{added}, nb.CellIDs())
}

func TestRevertAll(t *testing.T) {
	editor, nb := newTestEditor(t)

	existing, err := nb.CreateCell(AtEnd, "python", "original")
	require.NoError(t, err)
	require.NoError(t, editor.UpdateStagedCell(existing, "changed"))
	_, err = editor.CreateStagedCell("python", "added")
	require.NoError(t, err)

	require.NoError(t, editor.RevertAll())
	assert.Equal(t, 0, editor.Ledger().Len())
	assert.Equal(t, []CellID{existing}, nb.CellIDs())

	code, err := nb.CellCode(existing)
	require.NoError(t, err)
	assert.Equal(t, "original", code)
}
