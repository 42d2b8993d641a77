package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"studio-api/core/errors"
)

const (
	DateLayout = "2006-01-02"
	HourLayout = "15:04"
)

var hhmmPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseHourMinute validates a 24-hour "HH:MM" string and returns its
// components. Rejects anything the pattern does not match, including
// "9:00" and "24:00".
func ParseHourMinute(hhmm string) (hour, minute int, err error) {
	m := hhmmPattern.FindStringSubmatch(hhmm)
	if m == nil {
		return 0, 0, errors.NewAppError(errors.ErrInvalidTimeFormat,
			fmt.Sprintf("invalid time %q, expected 24-hour HH:MM", hhmm), nil)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

// ToUTCInstant interprets an "HH:MM" wall-clock time on the given
// calendar date in the given IANA zone and returns the UTC instant.
// The zone is the host's configured zone and is always passed in
// explicitly; no zone is compiled into this package.
func ToUTCInstant(date string, hhmm string, zone string) (time.Time, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date), err)
	}

	hour, minute, err := ParseHourMinute(hhmm)
	if err != nil {
		return time.Time{}, err
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("unknown timezone %q", zone), err)
	}

	local := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
	return local.UTC(), nil
}

// AddMinutes is pure instant arithmetic; instants carry no zone.
func AddMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// IntervalsOverlap reports whether [aStart,aEnd) and [bStart,bEnd)
// intersect. Half-open semantics: intervals that only touch at an
// endpoint do not overlap.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// MonthBoundsUTC returns [start, end) of the month computed directly in
// UTC, independent of any host zone. Callers near the zone boundary
// compensate on their side; see DESIGN.md for why this is kept.
func MonthBoundsUTC(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
