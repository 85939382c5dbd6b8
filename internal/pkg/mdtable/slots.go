package mdtable

import (
	"regexp"
	"strings"
	"time"
)

// TimeSlot is the derived availability for one slot column. Slots are
// ephemeral: they are recomputed on every table load and never stored.
type TimeSlot struct {
	Instant      time.Time
	Hour         int
	Participants []string
}

var (
	timezoneMarkerPattern = regexp.MustCompile(`(?i)\[TIMEZONE:\s*([^\]]+)\]`)
	legacyMarkerPattern   = regexp.MustCompile(`(?i)<!--\s*TIMEZONE:\s*(\S+)\s*-->`)
)

// TimezoneMarker renders the timezone metadata block stored alongside the
// table in the document.
func TimezoneMarker(timezone string) string {
	return "[TIMEZONE: " + timezone + "]"
}

// ExtractTimezone scans markdown for a timezone marker, accepting the current
// bracket form and the legacy HTML-comment form written by older events. It
// returns "" when no marker is present; callers default to UTC.
func ExtractTimezone(markdown string) string {
	if m := timezoneMarkerPattern.FindStringSubmatch(markdown); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := legacyMarkerPattern.FindStringSubmatch(markdown); m != nil {
		return m[1]
	}
	return ""
}

// BuildTimeSlots projects a table into its ordered time slots. A table without
// slot columns (fewer than two headers) yields no slots — the normal "no slots
// yet" state, not an error. Columns whose header fails to decode are skipped
// so one malformed header never breaks the rest of the table. A participant is
// counted for a slot when the row's cell holds the presence marker and the
// row's name cell is non-empty; row order is preserved and duplicate names are
// not collapsed here — this is a pure projection that tolerates any input.
func BuildTimeSlots(table *Table, timezone string, now time.Time) ([]TimeSlot, error) {
	if table == nil || len(table.Headers) < 2 {
		return []TimeSlot{}, nil
	}

	slots := make([]TimeSlot, 0, len(table.Headers)-1)
	for i := 1; i < len(table.Headers); i++ {
		slotTime, err := ParseHeader(table.Headers[i], timezone, now)
		if err != nil {
			return nil, err
		}
		if slotTime == nil {
			continue
		}

		participants := []string{}
		for _, row := range table.Rows {
			if len(row.Cells) <= i {
				continue
			}
			name := row.Name()
			if name != "" && strings.TrimSpace(row.Cells[i].Value) == PresenceMarker {
				participants = append(participants, name)
			}
		}

		slots = append(slots, TimeSlot{
			Instant:      slotTime.Instant,
			Hour:         slotTime.Hour,
			Participants: participants,
		})
	}

	return slots, nil
}
