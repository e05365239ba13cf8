// Package timeutil provides parsing, validation and comparison helpers for
// wall-clock "HH:MM" times at minute granularity.
package timeutil

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
)

// MinutesPerDay is the number of minutes in a single day.
const MinutesPerDay = 24 * 60

// ValidateFormat checks that s is a 24-hour "HH:MM" string
// (hours 00-23, minutes 00-59).
func ValidateFormat(s string) error {
	if !isClock(s) {
		return fmt.Errorf("%w, got %q", ErrInvalidTimeFormat, s)
	}
	return nil
}

// ToMinutes converts a validated "HH:MM" string to minutes since midnight,
// in [0, 1439]. Malformed input is reported as an internal inconsistency;
// callers are expected to have validated the string first.
func ToMinutes(s string) (int, error) {
	if !isClock(s) {
		return 0, fmt.Errorf("internal: ToMinutes called with malformed time %q", s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m, nil
}

// MinutesToClock converts minutes since midnight to "HH:MM", clamping to the
// valid range of a single day.
func MinutesToClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesPerDay {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ValidateRange checks that start is strictly before end.
// Both strings must already be format-validated.
func ValidateRange(start, end string) error {
	s, err := ToMinutes(start)
	if err != nil {
		return err
	}
	e, err := ToMinutes(end)
	if err != nil {
		return err
	}
	if s >= e {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidTimeRange, start, end)
	}
	return nil
}

// Overlaps reports whether the half-open intervals [start1,end1) and
// [start2,end2) intersect: start1 < end2 AND start2 < end1.
// Two intervals that touch exactly at a boundary do not overlap.
func Overlaps(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}

// Compare returns the sign of ToMinutes(t1) - ToMinutes(t2), for sorting.
// Both strings must already be format-validated.
func Compare(t1, t2 string) int {
	switch {
	case t1 < t2:
		return -1
	case t1 > t2:
		return 1
	default:
		return 0
	}
}

// isClock reports whether s matches 24-hour "HH:MM".
func isClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h <= 23 && m <= 59
}
