package mdtable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractTimezone(t *testing.T) {
	t.Run("Bracket Marker", func(t *testing.T) {
		assert.Equal(t, "Europe/Berlin", ExtractTimezone("[TIMEZONE: Europe/Berlin]"))
	})

	t.Run("Bracket Marker Inside Other Content", func(t *testing.T) {
		markdown := "# Team Dinner\n\n[TIMEZONE: America/New_York]\n\n| Name |"

		assert.Equal(t, "America/New_York", ExtractTimezone(markdown))
	})

	t.Run("Legacy Comment Marker", func(t *testing.T) {
		assert.Equal(t, "Asia/Tokyo", ExtractTimezone("<!-- TIMEZONE: Asia/Tokyo -->"))
	})

	t.Run("Case Insensitive", func(t *testing.T) {
		assert.Equal(t, "Europe/London", ExtractTimezone("[timezone: Europe/London]"))
	})

	t.Run("No Marker", func(t *testing.T) {
		assert.Equal(t, "", ExtractTimezone("no metadata here"))
	})
}

func TestBuildTimeSlots(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Participant Derivation", func(t *testing.T) {
		table := &Table{
			Headers: []string{"Name", "05.06. 09:00"},
			Rows: []Row{
				{Cells: []Cell{{Value: "Organiser"}, {Value: "✅"}}},
				{Cells: []Cell{{Value: "Bob"}, {Value: ""}}},
			},
		}

		slots, err := BuildTimeSlots(table, "UTC", now)

		assert.NoError(t, err)
		assert.Len(t, slots, 1)
		assert.Equal(t, []string{"Organiser"}, slots[0].Participants)
		assert.Equal(t, time.Date(2025, time.June, 5, 9, 0, 0, 0, time.UTC), slots[0].Instant)
		assert.Equal(t, 9, slots[0].Hour)
	})

	t.Run("Name Header Only Yields No Slots", func(t *testing.T) {
		table := &Table{Headers: []string{"Name"}}

		slots, err := BuildTimeSlots(table, "UTC", now)

		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Nil Table Yields No Slots", func(t *testing.T) {
		slots, err := BuildTimeSlots(nil, "UTC", now)

		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Undecodable Header Is Skipped", func(t *testing.T) {
		table := &Table{
			Headers: []string{"Name", "not a date", "05.06. 09:00"},
			Rows: []Row{
				{Cells: []Cell{{Value: "Alice"}, {Value: "✅"}, {Value: "✅"}}},
			},
		}

		slots, err := BuildTimeSlots(table, "UTC", now)

		assert.NoError(t, err)
		assert.Len(t, slots, 1, "one malformed header must not break the table")
		assert.Equal(t, []string{"Alice"}, slots[0].Participants)
	})

	t.Run("Blank Name Rows Are Ignored", func(t *testing.T) {
		table := &Table{
			Headers: []string{"Name", "05.06. 09:00"},
			Rows: []Row{
				{Cells: []Cell{{Value: "  "}, {Value: "✅"}}},
			},
		}

		slots, err := BuildTimeSlots(table, "UTC", now)

		assert.NoError(t, err)
		assert.Empty(t, slots[0].Participants)
	})

	t.Run("Short Rows Are Tolerated", func(t *testing.T) {
		table := &Table{
			Headers: []string{"Name", "05.06. 09:00", "06.06. 10:00"},
			Rows: []Row{
				{Cells: []Cell{{Value: "Alice"}, {Value: "✅"}}},
			},
		}

		slots, err := BuildTimeSlots(table, "UTC", now)

		assert.NoError(t, err)
		assert.Len(t, slots, 2)
		assert.Equal(t, []string{"Alice"}, slots[0].Participants)
		assert.Empty(t, slots[1].Participants)
	})

	t.Run("Creator Timezone Applies To Every Slot", func(t *testing.T) {
		table := &Table{
			Headers: []string{"Name", "15.03. 14:00"},
			Rows: []Row{
				{Cells: []Cell{{Value: "Organiser"}, {Value: "✅"}}},
			},
		}

		slots, err := BuildTimeSlots(table, "Europe/Berlin", now)

		assert.NoError(t, err)
		assert.Len(t, slots, 1)
		assert.Equal(t, time.Date(2025, time.March, 15, 13, 0, 0, 0, time.UTC), slots[0].Instant)
	})

	t.Run("Invalid Timezone Propagates", func(t *testing.T) {
		table := &Table{
			Headers: []string{"Name", "05.06. 09:00"},
		}

		_, err := BuildTimeSlots(table, "Bad/Zone", now)

		assert.Error(t, err)
	})
}
