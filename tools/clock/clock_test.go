package clock

import (
	"regexp"
	"testing"
	"time"
)

func TestFormatPositiveOffset(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	got := format(time.Date(2026, 8, 29, 14, 5, 9, 0, loc))
	want := "Saturday, 2026-08-29 14:05:09 (UTC+07:00)"
	if got != want {
		t.Errorf("format = %q, want %q", got, want)
	}
}

func TestFormatNegativeHalfHourOffset(t *testing.T) {
	loc := time.FixedZone("TEST", -(5*3600 + 30*60))
	got := format(time.Date(2026, 1, 1, 0, 0, 0, 0, loc))
	want := "Thursday, 2026-01-01 00:00:00 (UTC-05:30)"
	if got != want {
		t.Errorf("format = %q, want %q", got, want)
	}
}

func TestFormatUTC(t *testing.T) {
	got := format(time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC))
	want := "Monday, 2026-03-02 23:59:59 (UTC+00:00)"
	if got != want {
		t.Errorf("format = %q, want %q", got, want)
	}
}

func TestNowShape(t *testing.T) {
	pattern := regexp.MustCompile(`^\w+, \d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} \(UTC[+-]\d{2}:\d{2}\)$`)
	if got := Now(); !pattern.MatchString(got) {
		t.Errorf("Now() = %q does not match expected shape", got)
	}
}
