package mdtable

import "strings"

// MergeVote folds a participant's submission into the table and returns the
// result as a new value; the input table is never mutated. Votes are keyed by
// slot index: index 0 is the first slot column (table column 1). A row whose
// name matches case-insensitively is replaced at its original position, so row
// order stays stable for everyone else; otherwise the new row is appended. The
// submitted casing of the name is kept, also on update. This function is the
// only writer path and therefore the sole enforcement of the one-row-per-name
// invariant. A nil table yields nil, matching BuildTimeSlots.
func MergeVote(table *Table, participantName string, votes map[int]bool) *Table {
	if table == nil {
		return nil
	}

	cells := make([]Cell, len(table.Headers))
	cells[0] = Cell{Value: participantName}
	for i := 1; i < len(table.Headers); i++ {
		if votes[i-1] {
			cells[i] = Cell{Value: PresenceMarker}
		}
	}
	newRow := Row{Cells: cells}

	merged := &Table{
		Headers: append([]string(nil), table.Headers...),
		Rows:    make([]Row, len(table.Rows)),
	}
	copy(merged.Rows, table.Rows)

	lowered := strings.ToLower(strings.TrimSpace(participantName))
	for i, row := range merged.Rows {
		if strings.ToLower(row.Name()) == lowered {
			merged.Rows[i] = newRow
			return merged
		}
	}

	merged.Rows = append(merged.Rows, newRow)
	return merged
}
