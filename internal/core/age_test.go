package core

import (
	"errors"
	"testing"
	"time"
)

func TestAge(t *testing.T) {
	cases := []struct {
		dob  string
		now  time.Time
		want int
	}{
		{"2000-06-15", time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), 23}, // birthday not yet occurred
		{"2000-06-15", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), 24},
		{"2000-06-15", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 24},
		{"2000-06-15T00:00:00Z", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 24},
		{"2000-01-01", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for i, tc := range cases {
		got, err := Age(tc.dob, tc.now)
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		if got != tc.want {
			t.Fatalf("case %d: Age(%q) = %d, want %d", i, tc.dob, got, tc.want)
		}
	}
}

func TestAgeInvalid(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	for _, dob := range []string{"", "not-a-date", "15/06/2000", "2030-01-01"} {
		if _, err := Age(dob, now); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("Age(%q) error = %v, want ErrInvalidDate", dob, err)
		}
	}
}
