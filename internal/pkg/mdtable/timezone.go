package mdtable

import (
	"time"

	"tablepoll-service/internal/pkg/exceptions"
)

// LoadTimezone resolves an IANA timezone identifier. An unknown identifier is
// an input error and is surfaced as such; computations never silently fall
// back to UTC, since that would shift every displayed slot without warning.
func LoadTimezone(timezone string) (*time.Location, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, exceptions.ErrInvalidTimezone(err, timezone)
	}
	return location, nil
}

// ResolveWallClock computes the UTC instant that displays the given wall-clock
// fields in the named timezone. Wall-clock times skipped by a DST
// spring-forward transition do not map to any instant; those resolve
// best-effort to the normalized time after the gap. Ambiguous times (fall-back
// transition) resolve to one of the two candidate offsets. Neither case is an
// error.
func ResolveWallClock(year int, month time.Month, day, hour, minute int, timezone string) (time.Time, error) {
	location, err := LoadTimezone(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, month, day, hour, minute, 0, 0, location).UTC(), nil
}

// FormatInstant renders a UTC instant's calendar and clock fields as they
// appear in the named timezone, using a time package layout string.
func FormatInstant(instant time.Time, timezone, layout string) (string, error) {
	location, err := LoadTimezone(timezone)
	if err != nil {
		return "", err
	}
	return instant.In(location).Format(layout), nil
}
