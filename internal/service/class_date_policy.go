package service

import (
	"errors"
	"strings"
	"time"

	"github.com/thurahtetaung/universal-yoga/internal/model"
	pkgerrors "github.com/thurahtetaung/universal-yoga/pkg/errors"
)

// ErrInvalidClassDate is matched by the ValidationError returned when a
// class date is in the past or off the course weekday.
var ErrInvalidClassDate = errors.New("class date must be today or later and fall on the course day")

// IsValidClassDate reports whether a class of a course held on courseDay
// may be scheduled on candidate: not before today and on that weekday.
func IsValidClassDate(candidate time.Time, courseDay string) bool {
	return ValidClassDateOn(candidate, courseDay, time.Now())
}

// ValidClassDateOn is IsValidClassDate with an explicit today. Only the
// calendar days of candidate and today are compared.
func ValidClassDateOn(candidate time.Time, courseDay string, today time.Time) bool {
	day := model.CalendarDay(candidate)
	if day.Before(model.CalendarDay(today)) {
		return false
	}
	return strings.EqualFold(day.Weekday().String(), strings.TrimSpace(courseDay))
}

// UpcomingClassDates returns the first n valid dates for courseDay on or
// after from. An unknown day yields none.
func UpcomingClassDates(courseDay string, from time.Time, n int) []time.Time {
	canonical, ok := model.CanonicalWeekday(courseDay)
	if !ok || n <= 0 {
		return []time.Time{}
	}

	day := model.CalendarDay(from)
	for day.Weekday().String() != canonical {
		day = day.AddDate(0, 0, 1)
	}

	dates := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, day.AddDate(0, 0, 7*i))
	}
	return dates
}

// checkClassDate parses date and applies the policy, returning the
// canonical spelling to store.
func checkClassDate(date, courseDay string, today time.Time) (string, error) {
	t, err := model.ParseClassDate(date)
	if err != nil {
		return "", pkgerrors.NewValidation("date", err.Error())
	}
	if !ValidClassDateOn(t, courseDay, today) {
		return "", pkgerrors.WrapValidation("date", ErrInvalidClassDate)
	}
	return model.FormatClassDate(t), nil
}
