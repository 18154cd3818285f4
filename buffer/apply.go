package buffer

import "time"

type txState struct {
	versionBefore uint64
	cursorBefore  int
	selBefore     SelectionState
	startedAt     time.Time
	edits         []AppliedEdit
}

// Begin opens a transaction: every mutation until Commit lands in a single
// undo entry. Transactions do not nest.
func (b *Buffer) Begin() {
	if b.tx != nil {
		return
	}
	b.hist.breakRun()
	b.tx = &txState{
		versionBefore: b.version,
		cursorBefore:  b.cursor,
		selBefore:     selectionStateFromInternal(b.sel),
		startedAt:     b.opt.Clock(),
	}
}

// Commit closes the open transaction and records it as one change. A
// transaction with no effective edits records nothing.
func (b *Buffer) Commit() {
	tx := b.tx
	if tx == nil {
		return
	}
	b.tx = nil
	if len(tx.edits) == 0 {
		return
	}
	b.recordChange(Change{
		VersionBefore:   tx.versionBefore,
		VersionAfter:    b.version,
		CursorBefore:    tx.cursorBefore,
		CursorAfter:     b.cursor,
		SelectionBefore: tx.selBefore,
		SelectionAfter:  selectionStateFromInternal(b.sel),
		Edits:           tx.edits,
	}, editOther, tx.startedAt)
}

// Apply applies edits in order inside one transaction. Each edit's range
// addresses the buffer as it stands when that edit applies, and each range
// is validated the same way single edits are: the first invalid edit stops
// the batch, keeping what already applied as the recorded change.
//
// The cursor and selection translate across the edits rather than jumping
// to them.
func (b *Buffer) Apply(edits ...Edit) ([]AppliedEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	opened := b.tx == nil
	if opened {
		b.Begin()
	}

	var applied []AppliedEdit
	for _, e := range edits {
		a, changed, err := b.edit(e, false)
		if err != nil {
			if opened {
				b.Commit()
			}
			return applied, err
		}
		if changed {
			applied = append(applied, a)
		}
	}
	if opened {
		b.Commit()
	}
	return applied, nil
}
