package timeutil

import (
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidTimezone is returned when a timezone identifier cannot be
// resolved against the runtime's tz database.
var ErrInvalidTimezone = errors.New("invalid timezone identifier")

// NextOccurrence returns the earliest UTC instant at or after ref whose local
// projection in the given zone reads (hour, minute). If that wall-clock time
// has already passed today, the occurrence is on the next calendar day. The
// day is advanced by calendar-date addition, so month and year boundaries and
// DST shifts are handled by the zone database rather than raw hour
// arithmetic.
//
// DST policy: a wall-clock time that does not exist on the target day
// (spring-forward gap) is shifted forward by the transition delta; an
// ambiguous time (fall-back overlap) resolves to the earlier of its two
// instants, the first moment the clock reads the requested time.
func NextOccurrence(hour, minute int, tzID string, ref time.Time) (time.Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, errors.Errorf("wall-clock time %02d:%02d out of range", hour, minute)
	}

	loc, err := time.LoadLocation(tzID)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidTimezone, "%q: %v", tzID, err)
	}

	local := ref.In(loc)
	candidate := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !candidate.After(local) {
		candidate = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	if alt, ok := earlierMapping(candidate, hour, minute, loc); ok && alt.After(local) {
		candidate = alt
	}

	return candidate.UTC().Truncate(time.Minute), nil
}

// earlierMapping returns the earlier of the two instants an ambiguous
// wall-clock time maps to during a fall-back overlap. time.Date yields the
// later mapping; the earlier one, when it exists, reads the same wall clock
// one offset change before.
func earlierMapping(candidate time.Time, hour, minute int, loc *time.Location) (time.Time, bool) {
	_, offAt := candidate.Zone()
	_, offBefore := candidate.Add(-6 * time.Hour).Zone()
	if offBefore <= offAt {
		return time.Time{}, false
	}
	alt := candidate.Add(-time.Duration(offBefore-offAt) * time.Second)
	if p := alt.In(loc); p.Hour() != hour || p.Minute() != minute {
		return time.Time{}, false
	}
	return alt, true
}
