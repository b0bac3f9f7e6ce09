package model

import (
	"fmt"
	"strings"
	"time"
)

// ClassDateLayout is the stored and displayed class date format, e.g. "November 4, 2024".
const ClassDateLayout = "January 2, 2006"

// Weekdays lists the canonical day names in display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var timeOfDayLayouts = []string{"3:04 PM", "3:04PM", "15:04"}

// CanonicalWeekday maps a day name to its canonical spelling, ignoring case
// and surrounding space.
func CanonicalWeekday(day string) (string, bool) {
	d := strings.TrimSpace(day)
	for _, w := range Weekdays {
		if strings.EqualFold(w, d) {
			return w, true
		}
	}
	return "", false
}

// ParseClassDate parses a class date and returns it as midnight UTC.
func ParseClassDate(s string) (time.Time, error) {
	t, err := time.Parse(ClassDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not in %q form", s, ClassDateLayout)
	}
	return t, nil
}

// FormatClassDate renders the calendar day of t in ClassDateLayout.
func FormatClassDate(t time.Time) string {
	return t.Format(ClassDateLayout)
}

// CanonicalClassDate re-renders a class date in its canonical spelling.
func CanonicalClassDate(s string) (string, error) {
	t, err := ParseClassDate(s)
	if err != nil {
		return "", err
	}
	return FormatClassDate(t), nil
}

// CalendarDay returns midnight UTC of the calendar day t falls on in its own
// location, so days from different zones compare by date alone.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseTimeOfDay parses a course display time such as "9:30 AM" or "18:00".
func ParseTimeOfDay(s string) (time.Time, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeOfDayLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("time %q is not a clock time", s)
}

// FormatTimeOfDay renders a clock time in the 12-hour display form, e.g. "6:30 PM".
func FormatTimeOfDay(t time.Time) string {
	return t.Format(timeOfDayLayouts[0])
}

// CompareClassDates orders two class dates by calendar value.
// Unparseable dates sort after parseable ones.
func CompareClassDates(a, b string) int {
	return compareParsed(a, b, ParseClassDate)
}

// CompareTimesOfDay orders two course times by clock value.
// Unparseable times sort after parseable ones.
func CompareTimesOfDay(a, b string) int {
	return compareParsed(a, b, ParseTimeOfDay)
}

func compareParsed(a, b string, parse func(string) (time.Time, error)) int {
	ta, errA := parse(a)
	tb, errB := parse(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	default:
		return 0
	}
}
