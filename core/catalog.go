package core

import (
	"fmt"
	"time"
)

// Single-date shortcuts.

// DateToday yields now.
func DateToday() Shortcut[Date] {
	return newShortcut("Today", PresetToday, func(now time.Time, _ Calendar) Date {
		return NewDate(now)
	})
}

// DateYesterday yields now - 1 day.
func DateYesterday() Shortcut[Date] {
	return newShortcut("Yesterday", PresetYesterday, func(now time.Time, cal Calendar) Date {
		return NewDate(cal.AddDays(now, -1))
	})
}

// DateTomorrow yields now + 1 day.
func DateTomorrow() Shortcut[Date] {
	return newShortcut("Tomorrow", PresetTomorrow, func(now time.Time, cal Calendar) Date {
		return NewDate(cal.AddDays(now, 1))
	})
}

// Range shortcuts. Each one ends at the end of today.

// RangeToday yields [startOfDay(now), endOfDay(now)].
func RangeToday() Shortcut[Range] {
	return newShortcut("Today", PresetToday, func(now time.Time, cal Calendar) Range {
		return NewRange(cal.StartOfDay(now), cal.EndOfDay(now))
	})
}

// RangeLastWeek starts 7 days ago.
func RangeLastWeek() Shortcut[Range] {
	return newShortcut("Last week", PresetLastWeek, func(now time.Time, cal Calendar) Range {
		return untilToday(cal, now, cal.AddDays(now, -7))
	})
}

// RangeLastMonth starts one calendar month ago.
func RangeLastMonth() Shortcut[Range] {
	return newShortcut("Last month", PresetLastMonth, func(now time.Time, cal Calendar) Range {
		return untilToday(cal, now, cal.AddMonths(now, -1))
	})
}

// RangeLastQuarter starts three calendar months ago.
func RangeLastQuarter() Shortcut[Range] {
	return newShortcut("Last Quarter", PresetLastQuarter, func(now time.Time, cal Calendar) Range {
		return untilToday(cal, now, cal.AddMonths(now, -3))
	})
}

// RangeLastYear starts one calendar year ago.
func RangeLastYear() Shortcut[Range] {
	return newShortcut("Last Year", PresetLastYear, func(now time.Time, cal Calendar) Range {
		return untilToday(cal, now, cal.AddYears(now, -1))
	})
}

// RangeThisWeek starts on the calendar's first weekday.
func RangeThisWeek() Shortcut[Range] {
	return newShortcut("This week", PresetThisWeek, func(now time.Time, cal Calendar) Range {
		return untilToday(cal, now, cal.StartOfWeek(now))
	})
}

func RangeThisMonth() Shortcut[Range] {
	return newShortcut("This month", PresetThisMonth, func(now time.Time, cal Calendar) Range {
		return untilToday(cal, now, cal.StartOfMonth(now))
	})
}

func RangeYearToDate() Shortcut[Range] {
	return newShortcut("Year to date", PresetYearToDate, func(now time.Time, cal Calendar) Range {
		return untilToday(cal, now, cal.StartOfYear(now))
	})
}

func untilToday(cal Calendar, now, from time.Time) Range {
	return NewRange(cal.StartOfDay(from), cal.EndOfDay(now))
}

var (
	dateCatalog = map[Preset]func() Shortcut[Date]{
		PresetToday:     DateToday,
		PresetYesterday: DateYesterday,
		PresetTomorrow:  DateTomorrow,
	}
	rangeCatalog = map[Preset]func() Shortcut[Range]{
		PresetToday:       RangeToday,
		PresetLastWeek:    RangeLastWeek,
		PresetLastMonth:   RangeLastMonth,
		PresetLastQuarter: RangeLastQuarter,
		PresetLastYear:    RangeLastYear,
		PresetThisWeek:    RangeThisWeek,
		PresetThisMonth:   RangeThisMonth,
		PresetYearToDate:  RangeYearToDate,
	}
)

// FromPreset builds the built-in shortcut p for mode V.
func FromPreset[V Variant](p Preset) (Shortcut[V], error) {
	var out any
	switch ModeOf[V]() {
	case ModeSingle:
		build, ok := dateCatalog[p]
		if !ok {
			return Shortcut[V]{}, fmt.Errorf("%w: %s in %s", ErrPresetMode, p, ModeSingle)
		}
		out = build()
	case ModeRange:
		build, ok := rangeCatalog[p]
		if !ok {
			return Shortcut[V]{}, fmt.Errorf("%w: %s in %s", ErrPresetMode, p, ModeRange)
		}
		out = build()
	}
	return out.(Shortcut[V]), nil
}

// DefaultShortcuts is the catalog shown when nothing is configured.
func DefaultShortcuts[V Variant]() []Shortcut[V] {
	var presets []Preset
	if ModeOf[V]() == ModeSingle {
		presets = []Preset{PresetToday, PresetYesterday, PresetTomorrow}
	} else {
		presets = []Preset{PresetToday, PresetLastWeek, PresetLastMonth}
	}
	out := make([]Shortcut[V], 0, len(presets))
	for _, p := range presets {
		s, _ := FromPreset[V](p)
		out = append(out, s)
	}
	return out
}

// Offset is a calendar displacement applied to now.
type Offset struct {
	Days   int
	Months int
	Years  int
}

// Apply adds years, then months, then days.
func (o Offset) Apply(cal Calendar, t time.Time) time.Time {
	t = cal.AddYears(t, o.Years)
	t = cal.AddMonths(t, o.Months)
	return cal.AddDays(t, o.Days)
}

// Relative builds a custom shortcut from an offset. In single mode it yields
// now + off. In range mode the range spans from the shifted day to today,
// in whichever order keeps From before To.
func Relative[V Variant](name string, off Offset) Shortcut[V] {
	var out any
	switch ModeOf[V]() {
	case ModeSingle:
		out = New(name, func(now time.Time, cal Calendar) Date {
			return NewDate(off.Apply(cal, now))
		})
	default:
		out = New(name, func(now time.Time, cal Calendar) Range {
			shifted := off.Apply(cal, now)
			if shifted.Before(now) {
				return NewRange(cal.StartOfDay(shifted), cal.EndOfDay(now))
			}
			return NewRange(cal.StartOfDay(now), cal.EndOfDay(shifted))
		})
	}
	return out.(Shortcut[V])
}
