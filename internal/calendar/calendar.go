// Package calendar provides the date arithmetic used by the weekly and
// monthly aggregators. Weeks run Monday through Sunday. All values are
// normalized to midnight UTC so dates compare and subtract cleanly.
package calendar

import "time"

// DaysPerWeek is the length of a weekly record.
const DaysPerWeek = 7

// Normalize truncates t to its calendar day at midnight UTC.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day.
func Today() time.Time {
	return Normalize(time.Now().UTC())
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	t = Normalize(t)
	weekday := t.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return t.AddDate(0, 0, -(int(weekday) - int(time.Monday)))
}

// WeekEnd returns the Sunday of t's week.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, DaysPerWeek-1)
}

// WeekDates returns the seven days of t's week in ascending order,
// starting at Monday.
func WeekDates(t time.Time) []time.Time {
	start := WeekStart(t)
	dates := make([]time.Time, DaysPerWeek)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// MonthStart returns the first day of t's calendar month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of t's calendar month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}
