package model

import (
	"testing"
	"time"
)

func TestCanonicalWeekday(t *testing.T) {
	cases := map[string]string{
		"monday":     "Monday",
		"  TUESDAY ": "Tuesday",
		"Wednesday":  "Wednesday",
		"sUnDaY":     "Sunday",
	}
	for in, want := range cases {
		got, ok := CanonicalWeekday(in)
		if !ok || got != want {
			t.Errorf("CanonicalWeekday(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := CanonicalWeekday("Funday"); ok {
		t.Error("expected Funday to be rejected")
	}
}

func TestParseClassDate_RoundTrip(t *testing.T) {
	d, err := ParseClassDate("November 4, 2024")
	if err != nil {
		t.Fatalf("ParseClassDate: %v", err)
	}
	if d.Weekday() != time.Monday {
		t.Errorf("November 4, 2024 is a Monday, got %s", d.Weekday())
	}
	if FormatClassDate(d) != "November 4, 2024" {
		t.Errorf("unexpected format: %s", FormatClassDate(d))
	}

	canon, err := CanonicalClassDate(" November 04, 2024 ")
	if err != nil {
		t.Fatalf("CanonicalClassDate: %v", err)
	}
	if canon != "November 4, 2024" {
		t.Errorf("expected canonical spelling, got %q", canon)
	}

	if _, err := ParseClassDate("2024-11-04"); err == nil {
		t.Error("expected ISO date to be rejected")
	}
}

func TestCompareClassDates_UsesCalendarValue(t *testing.T) {
	// "December" < "November" as strings, but not as dates.
	if CompareClassDates("November 30, 2024", "December 1, 2024") >= 0 {
		t.Error("November 30 should sort before December 1")
	}
	if CompareClassDates("January 1, 2025", "December 31, 2024") <= 0 {
		t.Error("January 1, 2025 should sort after December 31, 2024")
	}
	if CompareClassDates("garbage", "January 1, 2025") <= 0 {
		t.Error("unparseable dates should sort last")
	}
	if CompareClassDates("May 5, 2025", "May 5, 2025") != 0 {
		t.Error("equal dates should compare equal")
	}
}

func TestCompareTimesOfDay_UsesClockValue(t *testing.T) {
	if CompareTimesOfDay("9:00 AM", "10:00 AM") >= 0 {
		t.Error("9:00 AM should sort before 10:00 AM")
	}
	if CompareTimesOfDay("12:30 PM", "1:00 PM") >= 0 {
		t.Error("12:30 PM should sort before 1:00 PM")
	}
	if CompareTimesOfDay("18:00", "9:30 am") <= 0 {
		t.Error("18:00 should sort after 9:30 am")
	}
}

func TestFormatTimeOfDay_NormalisesInput(t *testing.T) {
	for in, want := range map[string]string{
		"9:30 am": "9:30 AM",
		"9:30AM":  "9:30 AM",
		"18:05":   "6:05 PM",
		"12:00":   "12:00 PM",
	} {
		clock, err := ParseTimeOfDay(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got := FormatTimeOfDay(clock); got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func TestCalendarDay_UTCMidnightOfLocalDate(t *testing.T) {
	// 23:30 on Nov 4 in UTC-5 is already Nov 5 in UTC; the local date wins.
	zone := time.FixedZone("UTC-5", -5*60*60)
	got := CalendarDay(time.Date(2024, time.November, 4, 23, 30, 0, 0, zone))

	want := time.Date(2024, time.November, 4, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Errorf("expected %v, got %v", want, got)
	}
}
