// Package timeutil converts between "HH:MM" time-of-day strings and minutes
// since midnight, and tests shift windows for overlap.
package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadTimeFormat indicates a time string that is not of the form "HH:MM"
// with a valid hour and minute.
var ErrBadTimeFormat = errors.New("bad time format")

// IsBadTimeFormat checks if an error stems from an unparseable time string.
func IsBadTimeFormat(err error) bool {
	return errors.Is(err, ErrBadTimeFormat)
}

// Range is a same-day time window. Start and End are "HH:MM" strings with
// Start < End; the window is half-open, so End is not part of the window.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ToMinutes parses an "HH:MM" string into minutes since midnight.
func ToMinutes(t string) (int, error) {
	hh, mm, ok := strings.Cut(t, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadTimeFormat, t)
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrBadTimeFormat, t)
	}

	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadTimeFormat, t)
	}

	return hours*60 + minutes, nil
}

// FromMinutes renders minutes since midnight as an "HH:MM" string.
func FromMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether two half-open windows share any time. Touching
/// endpoints (09:00-10:00 vs 10:00-11:00) do not overlap.
func Overlaps(a, b Range) (bool, error) {
	aStart, err := ToMinutes(a.Start)
	if err != nil {
		return false, err
	}

	aEnd, err := ToMinutes(a.End)
	if err != nil {
		return false, err
	}

	bStart, err := ToMinutes(b.Start)
	if err != nil {
		return false, err
	}

	bEnd, err := ToMinutes(b.End)
	if err != nil {
		return false, err
	}

	return aStart < bEnd && bStart < aEnd, nil
}

// DiffMinutes returns the absolute difference between two times of day.
func DiffMinutes(a, b string) (int, error) {
	aMin, err := ToMinutes(a)
	if err != nil {
		return 0, err
	}

	bMin, err := ToMinutes(b)
	if err != nil {
		return 0, err
	}

	if aMin > bMin {
		return aMin - bMin, nil
	}

	return bMin - aMin, nil
}
