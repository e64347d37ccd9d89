// Package schedule implements the time-slot core of the booking system:
// wall-clock arithmetic on "HH:MM" strings, slot generation over a
// field's operating window, availability projection and interval
// conflict detection.  Everything in this package is a pure function of
// its inputs; persistence and HTTP concerns live elsewhere.
package schedule

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeFormat is returned when a wall-clock string does not
// match the zero-padded 24-hour "HH:MM" pattern or encodes an
// out-of-range hour or minute.
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

// Clock is a parsed wall-clock time of day.  It carries no date and no
// timezone; the whole system assumes one local timezone for all fields.
type Clock struct {
	Hours   int
	Minutes int
}

// ParseClock parses a "HH:MM" string.  Hours must be 0-23 and minutes
// 0-59; anything else, including missing zero padding or stray
// characters, yields ErrInvalidTimeFormat.
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return Clock{}, ErrInvalidTimeFormat
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return Clock{}, ErrInvalidTimeFormat
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return Clock{}, ErrInvalidTimeFormat
	}
	return Clock{Hours: h, Minutes: m}, nil
}

// MustMinutes converts a previously validated "HH:MM" string to minutes
// since midnight.  Invalid input maps to 0; callers that have not
// validated should use ToMinutes.
func MustMinutes(s string) int {
	n, err := ToMinutes(s)
	if err != nil {
		return 0
	}
	return n
}

// ToMinutes converts a "HH:MM" string to an integer count of minutes
// since 00:00.  All interval comparisons in this package are performed
// on this total-ordering representation.
func ToMinutes(s string) (int, error) {
	c, err := ParseClock(s)
	if err != nil {
		return 0, err
	}
	return c.Hours*60 + c.Minutes, nil
}

// FormatMinutes renders minutes-since-midnight back into a zero-padded
// "HH:MM" string.  Values outside one day are wrapped modulo 24 hours.
func FormatMinutes(minutes int) string {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddHours returns t plus the given number of hours as a "HH:MM"
// string.  The result wraps modulo 24 hours with no day tracking, so a
// 23:00 start plus 3 hours yields "02:00"; callers that care about the
// day boundary must reject such intervals before using the result.
func AddHours(t string, hours int) (string, error) {
	n, err := ToMinutes(t)
	if err != nil {
		return "", err
	}
	return FormatMinutes(n + hours*60), nil
}

// Overlaps reports whether the half-open intervals [startA, endA) and
// [startB, endB) intersect.  Touching intervals (endA == startB) do not
// overlap, which is what lets adjacent bookings share a boundary.
// Inputs are minutes since midnight.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && endA > startB
}
