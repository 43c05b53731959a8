package core

import (
	"fmt"
	"time"
)

// Layouts the provider has been observed to use for attrs.dateOfBirth.
var dateOfBirthLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDateOfBirth parses the raw provider date string. Unparseable input
// is ErrInvalidDate rather than a zero time, so callers never render a
// bogus age.
func ParseDateOfBirth(raw string) (time.Time, error) {
	for _, layout := range dateOfBirthLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// Age returns whole years between dateOfBirth and now, decremented by one
// when the birthday has not yet occurred this year. A date of birth in the
// future is ErrInvalidDate.
func Age(dateOfBirth string, now time.Time) (int, error) {
	dob, err := ParseDateOfBirth(dateOfBirth)
	if err != nil {
		return 0, err
	}
	if dob.After(now) {
		return 0, fmt.Errorf("%w: %q is in the future", ErrInvalidDate, dateOfBirth)
	}

	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, nil
}
