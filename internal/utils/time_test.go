package utils

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"23:59", 1439},
		{"08:30:00", 510}, // seconds tolerated
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "24:00", "siang", "99:99"} {
		if _, err := ParseClock(bad); err == nil {
			t.Errorf("ParseClock(%q) harus gagal", bad)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Now()
	if got := DaysUntil(now); got != 0 {
		t.Errorf("hari ini = %d, want 0", got)
	}
	if got := DaysUntil(now.AddDate(0, 0, 3)); got != 3 {
		t.Errorf("tiga hari lagi = %d, want 3", got)
	}
	if got := DaysUntil(now.AddDate(0, 0, -1)); got != -1 {
		t.Errorf("kemarin = %d, want -1", got)
	}
}

func TestDaysBetweenAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata tidak tersedia: %v", err)
	}
	// 2026-03-08 springs forward: the range holds one 23-hour local day.
	a := time.Date(2026, 3, 6, 12, 0, 0, 0, loc)
	b := time.Date(2026, 3, 11, 12, 0, 0, 0, loc)
	if got := daysBetween(a, b); got != 5 {
		t.Errorf("daysBetween melintasi DST = %d, want 5", got)
	}
	if got := daysBetween(b, a); got != -5 {
		t.Errorf("daysBetween arah balik = %d, want -5", got)
	}
}

func TestDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-08-28")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := FormatDate(d); got != "2026-08-28" {
		t.Errorf("round trip = %q", got)
	}
}
