package mdtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pollTable() *Table {
	return &Table{
		Headers: []string{"Name", "05.06. 09:00", "06.06. 10:00"},
		Rows: []Row{
			{Cells: []Cell{{Value: "Organiser"}, {Value: "✅"}, {Value: ""}}},
		},
	}
}

func TestMergeVote(t *testing.T) {
	t.Run("New Participant Is Appended", func(t *testing.T) {
		table := pollTable()

		merged := MergeVote(table, "Alice", map[int]bool{0: true, 1: false})

		assert.Len(t, merged.Rows, 2)
		assert.Equal(t, "Alice", merged.Rows[1].Name())
		assert.Equal(t, "✅", merged.Rows[1].Cells[1].Value)
		assert.Equal(t, "", merged.Rows[1].Cells[2].Value)
	})

	t.Run("Existing Row Is Replaced In Place", func(t *testing.T) {
		table := pollTable()

		merged := MergeVote(table, "Organiser", map[int]bool{1: true})

		assert.Len(t, merged.Rows, 1)
		assert.Equal(t, "", merged.Rows[0].Cells[1].Value)
		assert.Equal(t, "✅", merged.Rows[0].Cells[2].Value)
	})

	t.Run("Idempotent For The Same Vote", func(t *testing.T) {
		votes := map[int]bool{0: true}

		once := MergeVote(pollTable(), "Alice", votes)
		twice := MergeVote(once, "Alice", votes)

		assert.Equal(t, once, twice)
		assert.Len(t, twice.Rows, 2, "exactly one Alice row after voting twice")
	})

	t.Run("Case Insensitive Match Preserves Submitted Casing", func(t *testing.T) {
		first := MergeVote(pollTable(), "alice", map[int]bool{0: true})
		second := MergeVote(first, "ALICE", map[int]bool{1: true})

		assert.Len(t, second.Rows, 2, "alice and ALICE are the same participant")
		assert.Equal(t, "ALICE", second.Rows[1].Cells[0].Value)
		assert.Equal(t, "", second.Rows[1].Cells[1].Value)
		assert.Equal(t, "✅", second.Rows[1].Cells[2].Value)
	})

	t.Run("Input Table Is Not Mutated", func(t *testing.T) {
		table := pollTable()

		MergeVote(table, "Organiser", map[int]bool{1: true})

		assert.Equal(t, pollTable(), table)
	})

	t.Run("Nil Table Yields Nil", func(t *testing.T) {
		assert.Nil(t, MergeVote(nil, "Alice", map[int]bool{0: true}))
	})

	t.Run("Missing Vote Entries Mean Not Available", func(t *testing.T) {
		merged := MergeVote(pollTable(), "Bob", map[int]bool{})

		assert.Equal(t, "", merged.Rows[1].Cells[1].Value)
		assert.Equal(t, "", merged.Rows[1].Cells[2].Value)
	})
}
