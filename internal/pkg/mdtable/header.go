package mdtable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Slot headers use the compact form "DD.MM. HH:MM": two-digit day and month,
// 24-hour clock, no year. The fields are interpreted in the timezone the event
// was created in, never the viewer's.
const headerLayout = "02.01. 15:04"

var (
	headerPattern     = regexp.MustCompile(`(\d{2})\.(\d{2})\.\s+(\d{2}):(\d{2})`)
	legacyDatePattern = regexp.MustCompile(`(\d{2})\.(\d{2})\.`)
	legacyTimePattern = regexp.MustCompile(`(\d{2}):(\d{2})`)
)

// SlotTime is the decoded form of one slot header.
type SlotTime struct {
	Instant time.Time
	Hour    int
}

// FormatHeader encodes a UTC instant as a slot header string rendered in the
// given timezone.
func FormatHeader(instant time.Time, timezone string) (string, error) {
	return FormatInstant(instant, timezone, headerLayout)
}

// ParseHeader decodes a slot header against the event timezone. The header
// carries no year, so the year is taken from now — headers decoded after the
// calendar year rolls over, or events spanning New Year's Eve, resolve to the
// wrong year. That ambiguity is inherent to the wire format and deliberately
// not guessed around here; a creation layer wanting stronger correctness must
// encode a year itself.
//
// A nil result means the column is not a time slot. An error is returned only
// for an invalid timezone.
func ParseHeader(header, timezone string, now time.Time) (*SlotTime, error) {
	// Old headers split date and time across two lines with a <br> marker.
	normalized := strings.TrimSpace(lineBreakPattern.ReplaceAllString(header, " "))

	day, month, hour, minute, ok := matchHeader(normalized)
	if !ok {
		return nil, nil
	}

	instant, err := ResolveWallClock(now.Year(), time.Month(month), day, hour, minute, timezone)
	if err != nil {
		return nil, err
	}

	return &SlotTime{Instant: instant, Hour: hour}, nil
}

func matchHeader(header string) (day, month, hour, minute int, ok bool) {
	if m := headerPattern.FindStringSubmatch(header); m != nil {
		return atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), true
	}

	// Legacy layout: date token and time token separated by whitespace.
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return 0, 0, 0, 0, false
	}
	dateMatch := legacyDatePattern.FindStringSubmatch(parts[0])
	timeMatch := legacyTimePattern.FindStringSubmatch(parts[1])
	if dateMatch == nil || timeMatch == nil {
		return 0, 0, 0, 0, false
	}
	return atoi(dateMatch[1]), atoi(dateMatch[2]), atoi(timeMatch[1]), atoi(timeMatch[2]), true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// SlotHeaders builds the header row for a new scheduling table: the name
// column label followed by one encoded header per slot instant.
func SlotHeaders(slots []time.Time, timezone string) ([]string, error) {
	headers := make([]string, 0, len(slots)+1)
	headers = append(headers, NameHeader)
	for _, slot := range slots {
		header, err := FormatHeader(slot, timezone)
		if err != nil {
			return nil, err
		}
		headers = append(headers, header)
	}
	return headers, nil
}

// HourRangeLabel renders a slot's hour range ("2:00 PM - 3:00 PM") in the
// given timezone for display next to the raw header.
func HourRangeLabel(instant time.Time, timezone string) (string, error) {
	start, err := FormatInstant(instant, timezone, "3:04 PM")
	if err != nil {
		return "", err
	}
	end, err := FormatInstant(instant.Add(time.Hour), timezone, "3:04 PM")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s - %s", start, end), nil
}
