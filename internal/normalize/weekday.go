package normalize

import (
	"slices"

	"gopkg.in/guregu/null.v3"

	"github.com/gyeh/attstats/internal/model"
)

var weekdayNames = map[string]string{
	"Monday":    model.Monday,
	"Tuesday":   model.Tuesday,
	"Wednesday": model.Wednesday,
	"Thursday":  model.Thursday,
	"Friday":    model.Friday,
	"Saturday":  model.Saturday,
	"Sunday":    model.Sunday,
}

// TranslateWeekday maps an English day name to its report name.
func TranslateWeekday(english string) (string, bool) {
	name, ok := weekdayNames[english]
	return name, ok
}

// Weekday returns the report weekday name of t.
func Weekday(t null.Time) null.String {
	if !t.Valid {
		return null.String{}
	}
	name, ok := TranslateWeekday(t.Time.Weekday().String())
	if !ok {
		return null.String{}
	}
	return null.StringFrom(name)
}

// IsWeekend reports whether weekday is Saturday or Sunday. Missing is false.
func IsWeekend(weekday null.String) bool {
	return weekday.Valid && slices.Contains(model.WeekendDays, weekday.String)
}

// Shift classifies the hour of t: before 6, before 19, or later.
func Shift(t null.Time) null.String {
	if !t.Valid {
		return null.String{}
	}
	return null.StringFrom(ShiftForHour(t.Time.Hour()))
}

// ShiftForHour classifies an hour of day; boundaries are inclusive-low.
func ShiftForHour(hour int) string {
	switch {
	case hour < 6:
		return model.ShiftNightEarly
	case hour < 19:
		return model.ShiftDay
	default:
		return model.ShiftNight
	}
}
