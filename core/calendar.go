package core

import "time"

// Calendar fixes the timezone and week start used for day boundaries and
// calendar arithmetic. A nil Location means time.Local.
type Calendar struct {
	Location     *time.Location
	FirstWeekday time.Weekday
}

func NewCalendar(loc *time.Location, firstWeekday time.Weekday) Calendar {
	return Calendar{Location: loc, FirstWeekday: firstWeekday}
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// In converts t into the calendar's location.
func (c Calendar) In(t time.Time) time.Time {
	return t.In(c.location())
}

// IsSameDay compares year, month and day in the calendar's location.
func (c Calendar) IsSameDay(a, b time.Time) bool {
	ay, am, ad := c.In(a).Date()
	by, bm, bd := c.In(b).Date()
	return ay == by && am == bm && ad == bd
}

func (c Calendar) StartOfDay(t time.Time) time.Time {
	y, m, d := c.In(t).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.location())
}

// EndOfDay returns the last instant before the next midnight.
func (c Calendar) EndOfDay(t time.Time) time.Time {
	y, m, d := c.In(t).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, c.location()).Add(-time.Nanosecond)
}

// AddDays keeps the wall-clock time, so a day across a DST change is not 24h.
func (c Calendar) AddDays(t time.Time, n int) time.Time {
	return c.In(t).AddDate(0, 0, n)
}

// AddMonths clamps the day to the end of the target month instead of
// overflowing into the next one (Mar 31 - 1 month is Feb 28 or 29).
func (c Calendar) AddMonths(t time.Time, n int) time.Time {
	t = c.In(t)
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, c.location())
	ty, tm, _ := target.Date()
	d = min(d, DaysInMonth(ty, tm))
	return time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), c.location())
}

func (c Calendar) AddYears(t time.Time, n int) time.Time {
	return c.AddMonths(t, 12*n)
}

func (c Calendar) StartOfWeek(t time.Time) time.Time {
	start := c.StartOfDay(t)
	back := (int(start.Weekday()) - int(c.FirstWeekday) + 7) % 7
	return c.StartOfDay(start.AddDate(0, 0, -back))
}

func (c Calendar) StartOfMonth(t time.Time) time.Time {
	y, m, _ := c.In(t).Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, c.location())
}

func (c Calendar) StartOfYear(t time.Time) time.Time {
	return time.Date(c.In(t).Year(), time.January, 1, 0, 0, 0, 0, c.location())
}

// DaysInMonth handles leap years.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
